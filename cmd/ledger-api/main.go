package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/lumibank/coreledger/config"
	"github.com/lumibank/coreledger/controllers"
	"github.com/lumibank/coreledger/models"
	"github.com/lumibank/coreledger/routes"
	"github.com/lumibank/coreledger/services"
)

func main() {
	godotenv.Load()

	if err := config.InitializeConfig(); err != nil {
		fmt.Println(err.Error())
		return
	}

	if err := models.Migrate(config.DataBase); err != nil {
		fmt.Println(err.Error())
		return
	}

	bank := services.NewBankService(config.DataBase)
	orders := services.NewStandingOrderService(config.DataBase, bank)
	interest := services.NewInterestService(bank, config.Scheduler.Interest.CalculationMode)

	controllers.Initialize(bank, orders, interest)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	r := routes.SetupRouter()
	r.Listen(":" + port)
}

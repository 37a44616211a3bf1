package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/lumibank/coreledger/config"
	"github.com/lumibank/coreledger/models"
	"github.com/lumibank/coreledger/services"
	"github.com/lumibank/coreledger/workers/daemons"
)

func CreateWorker(id string, orders *services.StandingOrderService, interest *services.InterestService) daemons.Worker {
	switch id {
	case "standing_orders":
		return daemons.NewStandingOrderWorker(orders, config.Scheduler.StandingOrderInterval())
	case "interest":
		return daemons.NewInterestWorker(interest, config.Scheduler.InterestInterval())
	case "cron_job":
		return daemons.NewCronJob(orders, interest)
	default:
		return nil
	}
}

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

	workers := []daemons.Worker{}

	for _, id := range os.Args[1:] {
		worker := CreateWorker(id, orders, interest)
		if worker == nil {
			fmt.Println("Unknown worker: " + id)
			return
		}

		fmt.Println("Start ledger-daemon: " + id)
		workers = append(workers, worker)
		go worker.Start()
	}

	if len(workers) == 0 {
		fmt.Println("Usage: ledger-daemon [standing_orders|interest|cron_job]...")
		return
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	for _, worker := range workers {
		worker.Stop()
	}
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lumibank/coreledger/controllers"
)

func SetupRouter() *fiber.App {
	app := fiber.New()

	app.Post("/api/v1/accounts", controllers.CreateAccount)
	app.Get("/api/v1/accounts", controllers.GetAccounts)
	app.Get("/api/v1/accounts/search", controllers.SearchAccounts)
	app.Get("/api/v1/accounts/:number", controllers.GetAccount)
	app.Delete("/api/v1/accounts/:number", controllers.CloseAccount)
	app.Post("/api/v1/accounts/:number/deposit", controllers.CreateDeposit)
	app.Post("/api/v1/accounts/:number/withdraw", controllers.CreateWithdrawal)
	app.Post("/api/v1/accounts/:number/interest", controllers.ApplyInterest)
	app.Get("/api/v1/accounts/:number/transactions", controllers.GetTransactions)
	app.Get("/api/v1/accounts/:number/projection", controllers.GetProjection)
	app.Get("/api/v1/accounts/:number/standing-orders", controllers.GetStandingOrders)

	app.Post("/api/v1/transfers", controllers.CreateTransfer)

	app.Post("/api/v1/standing-orders", controllers.CreateStandingOrder)
	app.Delete("/api/v1/standing-orders/:id", controllers.CancelStandingOrder)
	app.Post("/api/v1/standing-orders/process", controllers.ProcessStandingOrders)

	return app
}

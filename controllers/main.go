package controllers

import "github.com/lumibank/coreledger/services"

var (
	Bank           *services.BankService
	StandingOrders *services.StandingOrderService
	Interest       *services.InterestService
)

func Initialize(bank *services.BankService, orders *services.StandingOrderService, interest *services.InterestService) {
	Bank = bank
	StandingOrders = orders
	Interest = interest
}

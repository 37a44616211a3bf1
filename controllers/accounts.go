package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lumibank/coreledger/controllers/helpers"
	"github.com/lumibank/coreledger/models"
)

func CreateAccount(c *fiber.Ctx) error {
	errors := new(helpers.Errors)
	payload := new(helpers.CreateAccountPayload)

	if err := c.BodyParser(payload); err != nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.method.invalid_message_body"},
		})
	}

	helpers.Validate(payload, errors)
	payload.CheckTermMonths(errors)
	if errors.Size() > 0 {
		return c.Status(422).JSON(errors)
	}

	account := payload.Account()

	if err := Bank.CreateAccount(account); err != nil {
		return c.Status(helpers.StatusFor(err)).JSON(helpers.Errors{
			Errors: []string{err.Error()},
		})
	}

	return c.Status(201).JSON(account.ToJSON())
}

func GetAccounts(c *fiber.Ctx) error {
	accounts, err := Bank.GetAllAccounts()
	if err != nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{err.Error()},
		})
	}

	result := make([]models.AccountJSON, 0, len(accounts))
	for i := range accounts {
		result = append(result, accounts[i].ToJSON())
	}

	return c.Status(200).JSON(result)
}

func SearchAccounts(c *fiber.Ctx) error {
	accounts, err := Bank.SearchAccounts(c.Query("holder"))
	if err != nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{err.Error()},
		})
	}

	result := make([]models.AccountJSON, 0, len(accounts))
	for i := range accounts {
		result = append(result, accounts[i].ToJSON())
	}

	return c.Status(200).JSON(result)
}

func GetAccount(c *fiber.Ctx) error {
	account, err := Bank.GetAccount(c.Params("number"))
	if err != nil {
		return c.Status(helpers.StatusFor(err)).JSON(helpers.Errors{
			Errors: []string{err.Error()},
		})
	}

	return c.Status(200).JSON(account.ToJSON())
}

func CloseAccount(c *fiber.Ctx) error {
	if err := Bank.CloseAccount(c.Params("number")); err != nil {
		return c.Status(helpers.StatusFor(err)).JSON(helpers.Errors{
			Errors: []string{err.Error()},
		})
	}

	return c.Status(200).JSON(fiber.Map{"closed": true})
}

func GetTransactions(c *fiber.Ctx) error {
	transactions, err := Bank.GetTransactionHistory(c.Params("number"))
	if err != nil {
		return c.Status(helpers.StatusFor(err)).JSON(helpers.Errors{
			Errors: []string{err.Error()},
		})
	}

	result := make([]models.TransactionJSON, 0, len(transactions))
	for i := range transactions {
		result = append(result, transactions[i].ToJSON())
	}

	return c.Status(200).JSON(result)
}

func CreateDeposit(c *fiber.Ctx) error {
	errors := new(helpers.Errors)
	payload := new(helpers.AmountPayload)

	if err := c.BodyParser(payload); err != nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.method.invalid_message_body"},
		})
	}

	helpers.Validate(payload, errors)
	if errors.Size() > 0 {
		return c.Status(422).JSON(errors)
	}

	txn, err := Bank.Deposit(c.Params("number"), payload.Amount)
	if err != nil {
		return c.Status(helpers.StatusFor(err)).JSON(helpers.Errors{
			Errors: []string{err.Error()},
		})
	}

	return c.Status(200).JSON(txn.ToJSON())
}

func CreateWithdrawal(c *fiber.Ctx) error {
	errors := new(helpers.Errors)
	payload := new(helpers.AmountPayload)

	if err := c.BodyParser(payload); err != nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.method.invalid_message_body"},
		})
	}

	helpers.Validate(payload, errors)
	if errors.Size() > 0 {
		return c.Status(422).JSON(errors)
	}

	txn, err := Bank.Withdraw(c.Params("number"), payload.Amount)
	if err != nil {
		return c.Status(helpers.StatusFor(err)).JSON(helpers.Errors{
			Errors: []string{err.Error()},
		})
	}

	return c.Status(200).JSON(txn.ToJSON())
}

func ApplyInterest(c *fiber.Ctx) error {
	txn, err := Bank.ApplyInterest(c.Params("number"), Interest.Mode)
	if err != nil {
		return c.Status(helpers.StatusFor(err)).JSON(helpers.Errors{
			Errors: []string{err.Error()},
		})
	}

	if txn == nil {
		return c.Status(200).JSON(fiber.Map{"credited": false})
	}

	return c.Status(200).JSON(txn.ToJSON())
}

func GetProjection(c *fiber.Ctx) error {
	projection, err := Interest.Projection(c.Params("number"))
	if err != nil {
		return c.Status(helpers.StatusFor(err)).JSON(helpers.Errors{
			Errors: []string{err.Error()},
		})
	}

	return c.Status(200).JSON(projection)
}

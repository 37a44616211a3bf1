package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lumibank/coreledger/controllers/helpers"
)

func CreateTransfer(c *fiber.Ctx) error {
	errors := new(helpers.Errors)
	payload := new(helpers.CreateTransferPayload)

	if err := c.BodyParser(payload); err != nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.method.invalid_message_body"},
		})
	}

	helpers.Validate(payload, errors)
	if errors.Size() > 0 {
		return c.Status(422).JSON(errors)
	}

	txn, err := Bank.Transfer(payload.FromAccountNumber, payload.ToAccountNumber, payload.Amount)
	if err != nil {
		return c.Status(helpers.StatusFor(err)).JSON(helpers.Errors{
			Errors: []string{err.Error()},
		})
	}

	return c.Status(200).JSON(txn.ToJSON())
}

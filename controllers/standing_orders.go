package controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/volatiletech/null"

	"github.com/lumibank/coreledger/controllers/helpers"
	"github.com/lumibank/coreledger/models"
)

func CreateStandingOrder(c *fiber.Ctx) error {
	errors := new(helpers.Errors)
	payload := new(helpers.CreateStandingOrderPayload)

	if err := c.BodyParser(payload); err != nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.method.invalid_message_body"},
		})
	}

	helpers.Validate(payload, errors)
	if errors.Size() > 0 {
		return c.Status(422).JSON(errors)
	}

	startDate, _ := time.Parse(helpers.DateLayout, payload.StartDate)

	order := &models.StandingOrder{
		FromAccountNumber: payload.FromAccountNumber,
		ToAccountNumber:   payload.ToAccountNumber,
		Amount:            payload.Amount,
		Frequency:         payload.Frequency,
		StartDate:         startDate,
		Description:       payload.Description,
	}

	if payload.EndDate != "" {
		endDate, _ := time.Parse(helpers.DateLayout, payload.EndDate)
		order.EndDate = null.TimeFrom(endDate)
	}

	if err := StandingOrders.CreateStandingOrder(order); err != nil {
		return c.Status(helpers.StatusFor(err)).JSON(helpers.Errors{
			Errors: []string{err.Error()},
		})
	}

	return c.Status(201).JSON(order.ToJSON())
}

func GetStandingOrders(c *fiber.Ctx) error {
	orders, err := StandingOrders.GetStandingOrders(c.Params("number"))
	if err != nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{err.Error()},
		})
	}

	result := make([]models.StandingOrderJSON, 0, len(orders))
	for i := range orders {
		result = append(result, orders[i].ToJSON())
	}

	return c.Status(200).JSON(result)
}

func CancelStandingOrder(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{"standing_order.invalid_id"},
		})
	}

	if err := StandingOrders.CancelStandingOrder(id); err != nil {
		return c.Status(helpers.StatusFor(err)).JSON(helpers.Errors{
			Errors: []string{err.Error()},
		})
	}

	return c.Status(200).JSON(fiber.Map{"cancelled": true})
}

// ProcessStandingOrders triggers a tick on demand, outside the scheduler.
func ProcessStandingOrders(c *fiber.Ctx) error {
	summary, err := StandingOrders.ProcessStandingOrders(time.Now())
	if err != nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{err.Error()},
		})
	}

	return c.Status(200).JSON(summary)
}

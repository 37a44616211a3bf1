package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"
)

type Frequency string
type StandingOrderStatus string

const (
	FrequencyDaily     Frequency = "DAILY"
	FrequencyWeekly    Frequency = "WEEKLY"
	FrequencyMonthly   Frequency = "MONTHLY"
	FrequencyQuarterly Frequency = "QUARTERLY"
	FrequencyYearly    Frequency = "YEARLY"
)

const (
	OrderActive    StandingOrderStatus = "ACTIVE"
	OrderCancelled StandingOrderStatus = "CANCELLED"
	OrderCompleted StandingOrderStatus = "COMPLETED"
)

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		return true
	}

	return false
}

// StandingOrder is a recurring transfer instruction. Orders are terminated
// by status, never deleted; ACTIVE is the only state the scheduler picks up.
type StandingOrder struct {
	ID                uint64              `json:"id" gorm:"primaryKey"`
	FromAccountNumber string              `json:"from_account_number" gorm:"index" validate:"required"`
	ToAccountNumber   string              `json:"to_account_number" gorm:"index" validate:"required"`
	Amount            decimal.Decimal     `json:"amount" validate:"ValidateAmount"`
	Frequency         Frequency           `json:"frequency" validate:"required|ValidateFrequency"`
	StartDate         time.Time           `json:"start_date"`
	EndDate           null.Time           `json:"end_date" gorm:"type:timestamp"`
	NextExecutionDate time.Time           `json:"next_execution_date"`
	LastExecutionDate null.Time           `json:"last_execution_date" gorm:"type:timestamp"`
	Status            StandingOrderStatus `json:"status" gorm:"default:ACTIVE"`
	Description       string              `json:"description"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

func (o StandingOrder) ValidateAmount(Amount decimal.Decimal) bool {
	return Amount.IsPositive()
}

func (o StandingOrder) ValidateFrequency(Frequency Frequency) bool {
	return Frequency.Valid()
}

func (o *StandingOrder) Active() bool {
	return o.Status == OrderActive
}

// Expired reports whether the order's end date has already passed.
func (o *StandingOrder) Expired(asOf time.Time) bool {
	return o.EndDate.Valid && DateOnly(o.EndDate.Time).Before(DateOnly(asOf))
}

// NextDate advances the execution date by one frequency step. Month-based
// steps clamp to the last day of the target month, so a 31st-of-month order
// lands on Feb 29/28 instead of spilling into March. Unrecognized
// frequencies fall back to monthly.
func (o *StandingOrder) NextDate() time.Time {
	current := DateOnly(o.NextExecutionDate)

	switch o.Frequency {
	case FrequencyDaily:
		return current.AddDate(0, 0, 1)
	case FrequencyWeekly:
		return current.AddDate(0, 0, 7)
	case FrequencyMonthly:
		return addMonthsClamped(current, 1)
	case FrequencyQuarterly:
		return addMonthsClamped(current, 3)
	case FrequencyYearly:
		return addMonthsClamped(current, 12)
	default:
		return addMonthsClamped(current, 1)
	}
}

// DateOnly strips the clock from a timestamp, keeping its location.
func DateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()

	firstOfTarget := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()

	if day > lastDay {
		day = lastDay
	}

	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, t.Location())
}

type StandingOrderJSON struct {
	ID                uint64              `json:"id"`
	FromAccountNumber string              `json:"from_account_number"`
	ToAccountNumber   string              `json:"to_account_number"`
	Amount            decimal.Decimal     `json:"amount"`
	Frequency         Frequency           `json:"frequency"`
	StartDate         time.Time           `json:"start_date"`
	EndDate           *time.Time          `json:"end_date"`
	NextExecutionDate time.Time           `json:"next_execution_date"`
	LastExecutionDate *time.Time          `json:"last_execution_date"`
	Status            StandingOrderStatus `json:"status"`
	Description       string              `json:"description"`
}

func (o *StandingOrder) ToJSON() StandingOrderJSON {
	j := StandingOrderJSON{
		ID:                o.ID,
		FromAccountNumber: o.FromAccountNumber,
		ToAccountNumber:   o.ToAccountNumber,
		Amount:            o.Amount,
		Frequency:         o.Frequency,
		StartDate:         o.StartDate,
		NextExecutionDate: o.NextExecutionDate,
		Status:            o.Status,
		Description:       o.Description,
	}

	if o.EndDate.Valid {
		j.EndDate = &o.EndDate.Time
	}
	if o.LastExecutionDate.Valid {
		j.LastExecutionDate = &o.LastExecutionDate.Time
	}

	return j
}

package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestNextDateSimpleSteps(t *testing.T) {
	order := &StandingOrder{NextExecutionDate: date(2024, 1, 15)}

	order.Frequency = FrequencyDaily
	assert.Equal(t, date(2024, 1, 16), order.NextDate())

	order.Frequency = FrequencyWeekly
	assert.Equal(t, date(2024, 1, 22), order.NextDate())

	order.Frequency = FrequencyMonthly
	assert.Equal(t, date(2024, 2, 15), order.NextDate())

	order.Frequency = FrequencyQuarterly
	assert.Equal(t, date(2024, 4, 15), order.NextDate())

	order.Frequency = FrequencyYearly
	assert.Equal(t, date(2025, 1, 15), order.NextDate())
}

func TestNextDateClampsToMonthEnd(t *testing.T) {
	order := &StandingOrder{
		Frequency:         FrequencyMonthly,
		NextExecutionDate: date(2024, 1, 31),
	}

	next := order.NextDate()
	assert.Equal(t, date(2024, 2, 29), next)

	order.NextExecutionDate = next
	assert.Equal(t, date(2024, 3, 29), order.NextDate())

	// Non-leap February.
	order.NextExecutionDate = date(2023, 1, 31)
	assert.Equal(t, date(2023, 2, 28), order.NextDate())

	order.Frequency = FrequencyQuarterly
	order.NextExecutionDate = date(2024, 11, 30)
	assert.Equal(t, date(2025, 2, 28), order.NextDate())

	order.Frequency = FrequencyYearly
	order.NextExecutionDate = date(2024, 2, 29)
	assert.Equal(t, date(2025, 2, 28), order.NextDate())
}

func TestNextDateUnknownFrequencyDefaultsToMonthly(t *testing.T) {
	order := &StandingOrder{
		Frequency:         Frequency("FORTNIGHTLY"),
		NextExecutionDate: date(2024, 1, 15),
	}

	assert.Equal(t, date(2024, 2, 15), order.NextDate())
}

func TestFrequencyValid(t *testing.T) {
	assert.True(t, FrequencyDaily.Valid())
	assert.True(t, FrequencyYearly.Valid())
	assert.False(t, Frequency("HOURLY").Valid())
	assert.False(t, Frequency("").Valid())
}

func TestExpired(t *testing.T) {
	order := &StandingOrder{}
	assert.False(t, order.Expired(date(2024, 6, 1)))

	order.EndDate = null.TimeFrom(date(2024, 5, 31))
	assert.True(t, order.Expired(date(2024, 6, 1)))
	assert.False(t, order.Expired(date(2024, 5, 31)))
}

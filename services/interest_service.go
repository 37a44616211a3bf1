package services

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lumibank/coreledger/models"
	"github.com/lumibank/coreledger/types"
)

// InterestService drives periodic interest application and exposes the
// read-only projection math.
type InterestService struct {
	bank *BankService
	Mode types.CalculationMode
}

func NewInterestService(bank *BankService, mode types.CalculationMode) *InterestService {
	switch mode {
	case types.ModeDaily, types.ModeMonthly, types.ModeQuarterly, types.ModeYearly:
	default:
		mode = types.ModeMonthly
	}

	return &InterestService{
		bank: bank,
		Mode: mode,
	}
}

// Run is one interest tick across all ACTIVE accounts.
func (s *InterestService) Run(asOf time.Time) (types.InterestSummary, error) {
	return s.bank.ApplyInterestToAll(s.Mode)
}

// SimpleInterest returns principal * rate * days/365.
func SimpleInterest(principal, rate decimal.Decimal, days int) decimal.Decimal {
	years := decimal.NewFromInt(int64(days)).Div(decimal.NewFromInt(365))
	return principal.Mul(rate).Mul(years)
}

// CompoundInterest returns the future value of principal after the given
// number of days, compounded compoundingFrequency times a year. Projections
// are estimates, so the fractional exponent is computed in float64.
func CompoundInterest(principal, rate decimal.Decimal, days, compoundingFrequency int) decimal.Decimal {
	p, _ := principal.Float64()
	r, _ := rate.Float64()

	years := float64(days) / 365.0
	n := float64(compoundingFrequency)

	value := p * math.Pow(1+r/n, n*years)
	return decimal.NewFromFloat(value)
}

// InterestProjection is a read-only estimate report for one account; it
// never mutates state.
type InterestProjection struct {
	AccountNumber string          `json:"account_number"`
	Balance       decimal.Decimal `json:"balance"`
	AnnualRate    decimal.Decimal `json:"annual_rate"`
	Daily         decimal.Decimal `json:"daily"`
	Weekly        decimal.Decimal `json:"weekly"`
	Monthly       decimal.Decimal `json:"monthly"`
	Quarterly     decimal.Decimal `json:"quarterly"`
	Yearly        decimal.Decimal `json:"yearly"`
	AfterOneYear  decimal.Decimal `json:"after_one_year"`
	AfterFiveYear decimal.Decimal `json:"after_five_years"`
	AfterTenYear  decimal.Decimal `json:"after_ten_years"`
}

// Projection reports per-period interest estimates and compounded future
// values (monthly compounding) for the account's current balance and rate.
func (s *InterestService) Projection(accountNumber string) (*InterestProjection, error) {
	account, err := s.bank.GetAccount(accountNumber)
	if err != nil {
		return nil, err
	}

	balance := account.Balance
	rate := account.InterestRate

	return &InterestProjection{
		AccountNumber: account.AccountNumber,
		Balance:       balance,
		AnnualRate:    rate,
		Daily:         balance.Mul(rate).Div(decimal.NewFromInt(365)),
		Weekly:        balance.Mul(rate).Div(decimal.NewFromInt(52)),
		Monthly:       balance.Mul(rate).Div(decimal.NewFromInt(12)),
		Quarterly:     balance.Mul(rate).Div(decimal.NewFromInt(4)),
		Yearly:        balance.Mul(rate),
		AfterOneYear:  CompoundInterest(balance, rate, 365, 12),
		AfterFiveYear: CompoundInterest(balance, rate, 1825, 12),
		AfterTenYear:  CompoundInterest(balance, rate, 3650, 12),
	}, nil
}

// DaysSince counts whole days from a reference date to now, used by
// callers projecting accrual from account creation.
func DaysSince(t time.Time) int {
	return int(time.Since(models.DateOnly(t)).Hours() / 24)
}

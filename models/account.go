package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"
	"gorm.io/gorm"
)

type AccountType string
type AccountStatus string

const (
	TypeSavings      AccountType = "SAVINGS"
	TypeChecking     AccountType = "CHECKING"
	TypeFixedDeposit AccountType = "FIXED_DEPOSIT"
)

const (
	StatusActive AccountStatus = "ACTIVE"
	StatusClosed AccountStatus = "CLOSED"
)

// Per-type defaults carried over from the account opening rules.
var (
	SavingsMinimumBalance   = decimal.NewFromInt(100)
	CheckingOverdraftLimit  = decimal.NewFromInt(500)
	DefaultSavingsRate      = decimal.NewFromFloat(0.04)
	DefaultCheckingRate     = decimal.NewFromFloat(0.01)
	DefaultFixedDepositRate = decimal.NewFromFloat(0.07)
)

type Account struct {
	ID             uint64          `json:"id" gorm:"primaryKey"`
	AccountNumber  string          `json:"account_number" gorm:"uniqueIndex" validate:"required"`
	AccountHolder  string          `json:"account_holder" validate:"required"`
	Type           AccountType     `json:"type" validate:"required|ValidateType"`
	Balance        decimal.Decimal `json:"balance" validate:"ValidateBalance"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
	MinimumBalance decimal.Decimal `json:"minimum_balance"`
	OverdraftLimit decimal.Decimal `json:"overdraft_limit"`
	TermMonths     int             `json:"term_months"`
	MaturityDate   null.Time       `json:"maturity_date" gorm:"type:timestamp"`
	Status         AccountStatus   `json:"status" gorm:"default:ACTIVE"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (a Account) ValidateType(Type AccountType) bool {
	switch Type {
	case TypeSavings, TypeChecking, TypeFixedDeposit:
		return true
	}

	return false
}

func (a Account) ValidateBalance(Balance decimal.Decimal) bool {
	return Balance.GreaterThanOrEqual(decimal.Zero.Sub(a.OverdraftLimit))
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.InterestRate.IsZero() {
		switch a.Type {
		case TypeSavings:
			a.InterestRate = DefaultSavingsRate
		case TypeChecking:
			a.InterestRate = DefaultCheckingRate
		case TypeFixedDeposit:
			a.InterestRate = DefaultFixedDepositRate
		}
	}

	if a.Type == TypeSavings && a.MinimumBalance.IsZero() {
		a.MinimumBalance = SavingsMinimumBalance
	}

	if a.Type == TypeChecking && a.OverdraftLimit.IsZero() {
		a.OverdraftLimit = CheckingOverdraftLimit
	}

	if a.Type == TypeFixedDeposit && !a.MaturityDate.Valid && a.TermMonths > 0 {
		a.MaturityDate = null.TimeFrom(time.Now().AddDate(0, a.TermMonths, 0))
	}

	return nil
}

func (a *Account) Active() bool {
	return a.Status == StatusActive
}

func (a *Account) Matured(now time.Time) bool {
	if !a.MaturityDate.Valid {
		return true
	}

	return !now.Before(a.MaturityDate.Time)
}

// CanWithdraw is the per-type withdrawal policy. It never mutates the
// account; a nil return means the debit may proceed.
func (a *Account) CanWithdraw(amount decimal.Decimal, now time.Time) error {
	switch a.Type {
	case TypeSavings:
		if a.Balance.Sub(amount).LessThan(a.MinimumBalance) {
			return ErrInsufficientFunds
		}
	case TypeChecking:
		if a.Balance.Sub(amount).LessThan(a.OverdraftLimit.Neg()) {
			return ErrInsufficientFunds
		}
	case TypeFixedDeposit:
		if !a.Matured(now) {
			return ErrTermLocked
		}
		if a.Balance.LessThan(amount) {
			return ErrInsufficientFunds
		}
	default:
		if a.Balance.LessThan(amount) {
			return ErrInsufficientFunds
		}
	}

	return nil
}

func (a *Account) Credit(tx *gorm.DB, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	a.Balance = a.Balance.Add(amount)
	return tx.Save(a).Error
}

func (a *Account) Debit(tx *gorm.DB, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	a.Balance = a.Balance.Sub(amount)
	return tx.Save(a).Error
}

// InterestFor returns the interest a period credit would pay at the given
// annual-rate divisor. Zero and negative balances earn nothing.
func (a *Account) InterestFor(divisor int64) decimal.Decimal {
	if !a.Balance.IsPositive() {
		return decimal.Zero
	}

	return a.Balance.Mul(a.InterestRate).Div(decimal.NewFromInt(divisor))
}

type AccountJSON struct {
	AccountNumber string          `json:"account_number"`
	AccountHolder string          `json:"account_holder"`
	Type          AccountType     `json:"type"`
	Balance       decimal.Decimal `json:"balance"`
	InterestRate  decimal.Decimal `json:"interest_rate"`
	Status        AccountStatus   `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (a *Account) ToJSON() AccountJSON {
	return AccountJSON{
		AccountNumber: a.AccountNumber,
		AccountHolder: a.AccountHolder,
		Type:          a.Type,
		Balance:       a.Balance,
		InterestRate:  a.InterestRate,
		Status:        a.Status,
		CreatedAt:     a.CreatedAt,
	}
}

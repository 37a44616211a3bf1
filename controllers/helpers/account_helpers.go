package helpers

import (
	"time"

	"github.com/gookit/validate"
	"github.com/shopspring/decimal"

	"github.com/lumibank/coreledger/models"
)

const DateLayout = "2006-01-02"

type CreateAccountPayload struct {
	AccountNumber  string             `json:"account_number" form:"account_number" validate:"required"`
	AccountHolder  string             `json:"account_holder" form:"account_holder" validate:"required"`
	Type           models.AccountType `json:"type" form:"type" validate:"required|ValidateType"`
	InitialDeposit decimal.Decimal    `json:"initial_deposit" form:"initial_deposit" validate:"ValidateInitialDeposit"`
	TermMonths     int                `json:"term_months" form:"term_months"`
}

func (p CreateAccountPayload) Messages() map[string]string {
	invalidMessage := "account.invalid_{field}"

	return validate.MS{
		"required":               invalidMessage,
		"ValidateType":           "account.invalid_type",
		"ValidateInitialDeposit": "account.non_positive_initial_deposit",
	}
}

func (p CreateAccountPayload) ValidateType(Type models.AccountType) bool {
	switch Type {
	case models.TypeSavings, models.TypeChecking, models.TypeFixedDeposit:
		return true
	}

	return false
}

func (p CreateAccountPayload) ValidateInitialDeposit(InitialDeposit decimal.Decimal) bool {
	return InitialDeposit.IsPositive()
}

// CheckTermMonths runs outside the tag validators because a zero value
// would be skipped there. Fixed deposits require a term; other types must
// not carry one.
func (p CreateAccountPayload) CheckTermMonths(errSrc *Errors) {
	if p.Type == models.TypeFixedDeposit && p.TermMonths <= 0 {
		errSrc.Errors = append(errSrc.Errors, "account.missing_term_months")
	}

	if p.Type != models.TypeFixedDeposit && p.TermMonths != 0 {
		errSrc.Errors = append(errSrc.Errors, "account.unexpected_term_months")
	}
}

func (p CreateAccountPayload) Account() *models.Account {
	return &models.Account{
		AccountNumber: p.AccountNumber,
		AccountHolder: p.AccountHolder,
		Type:          p.Type,
		Balance:       p.InitialDeposit,
		TermMonths:    p.TermMonths,
	}
}

type AmountPayload struct {
	Amount decimal.Decimal `json:"amount" form:"amount" validate:"ValidateAmount"`
}

func (p AmountPayload) Messages() map[string]string {
	return validate.MS{
		"ValidateAmount": "operation.non_positive_amount",
	}
}

func (p AmountPayload) ValidateAmount(Amount decimal.Decimal) bool {
	return Amount.IsPositive()
}

type CreateTransferPayload struct {
	FromAccountNumber string          `json:"from_account_number" form:"from_account_number" validate:"required"`
	ToAccountNumber   string          `json:"to_account_number" form:"to_account_number" validate:"required"`
	Amount            decimal.Decimal `json:"amount" form:"amount" validate:"ValidateAmount"`
}

func (p CreateTransferPayload) Messages() map[string]string {
	invalidMessage := "transfer.invalid_{field}"

	return validate.MS{
		"required":       invalidMessage,
		"ValidateAmount": "transfer.non_positive_amount",
	}
}

func (p CreateTransferPayload) ValidateAmount(Amount decimal.Decimal) bool {
	return Amount.IsPositive()
}

type CreateStandingOrderPayload struct {
	FromAccountNumber string           `json:"from_account_number" form:"from_account_number" validate:"required"`
	ToAccountNumber   string           `json:"to_account_number" form:"to_account_number" validate:"required"`
	Amount            decimal.Decimal  `json:"amount" form:"amount" validate:"ValidateAmount"`
	Frequency         models.Frequency `json:"frequency" form:"frequency" validate:"required|ValidateFrequency"`
	StartDate         string           `json:"start_date" form:"start_date" validate:"required|ValidateStartDate"`
	EndDate           string           `json:"end_date" form:"end_date" validate:"ValidateEndDate"`
	Description       string           `json:"description" form:"description"`
}

func (p CreateStandingOrderPayload) Messages() map[string]string {
	invalidMessage := "standing_order.invalid_{field}"

	return validate.MS{
		"required":          invalidMessage,
		"ValidateAmount":    "standing_order.non_positive_amount",
		"ValidateFrequency": "standing_order.invalid_frequency",
		"ValidateStartDate": "standing_order.invalid_start_date",
		"ValidateEndDate":   "standing_order.invalid_end_date",
	}
}

func (p CreateStandingOrderPayload) ValidateAmount(Amount decimal.Decimal) bool {
	return Amount.IsPositive()
}

func (p CreateStandingOrderPayload) ValidateFrequency(Frequency models.Frequency) bool {
	return Frequency.Valid()
}

func (p CreateStandingOrderPayload) ValidateStartDate(StartDate string) bool {
	_, err := time.Parse(DateLayout, StartDate)
	return err == nil
}

func (p CreateStandingOrderPayload) ValidateEndDate(EndDate string) bool {
	if EndDate == "" {
		return true
	}

	end, err := time.Parse(DateLayout, EndDate)
	if err != nil {
		return false
	}

	start, err := time.Parse(DateLayout, p.StartDate)
	if err != nil {
		return true
	}

	return !end.Before(start)
}

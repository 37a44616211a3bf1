package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"
	"gorm.io/gorm"

	"github.com/lumibank/coreledger/config"
)

type TransactionType string

const (
	TxDeposit        TransactionType = "DEPOSIT"
	TxWithdrawal     TransactionType = "WITHDRAWAL"
	TxTransferIn     TransactionType = "TRANSFER_IN"
	TxTransferOut    TransactionType = "TRANSFER_OUT"
	TxInterest       TransactionType = "INTEREST"
	TxInitialDeposit TransactionType = "INITIAL_DEPOSIT"
)

// Transaction is an append-only ledger entry. Rows are never updated or
// deleted; BalanceAfter snapshots the account balance the write produced.
type Transaction struct {
	ID                  uint64          `json:"id" gorm:"primaryKey"`
	ReferenceID         uuid.UUID       `json:"reference_id" gorm:"type:uuid"`
	AccountNumber       string          `json:"account_number" gorm:"index" validate:"required"`
	Type                TransactionType `json:"type" validate:"required"`
	Amount              decimal.Decimal `json:"amount" validate:"ValidateAmount"`
	BalanceAfter        decimal.Decimal `json:"balance_after"`
	Description         null.String     `json:"description" gorm:"type:varchar(255)"`
	CounterpartyAccount null.String     `json:"counterparty_account" gorm:"type:varchar(32)"`
	CreatedAt           time.Time       `json:"created_at"`
}

func (t Transaction) ValidateAmount(Amount decimal.Decimal) bool {
	return Amount.IsPositive()
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ReferenceID == uuid.Nil {
		t.ReferenceID = uuid.New()
	}

	return nil
}

func (t *Transaction) WriteToInflux() {
	if config.InfluxDB == nil {
		return
	}

	amount, _ := t.Amount.Float64()
	balance_after, _ := t.BalanceAfter.Float64()

	tags := map[string]string{
		"account": t.AccountNumber,
		"type":    string(t.Type),
	}
	fields := map[string]interface{}{
		"reference_id":  t.ReferenceID.String(),
		"amount":        amount,
		"balance_after": balance_after,
		"created_at":    t.CreatedAt,
	}

	config.InfluxDB.NewPoint("transactions", tags, fields)
}

type TransactionJSON struct {
	ReferenceID         uuid.UUID       `json:"reference_id"`
	AccountNumber       string          `json:"account_number"`
	Type                TransactionType `json:"type"`
	Amount              decimal.Decimal `json:"amount"`
	BalanceAfter        decimal.Decimal `json:"balance_after"`
	Description         string          `json:"description"`
	CounterpartyAccount string          `json:"counterparty_account"`
	CreatedAt           time.Time       `json:"created_at"`
}

func (t *Transaction) ToJSON() TransactionJSON {
	return TransactionJSON{
		ReferenceID:         t.ReferenceID,
		AccountNumber:       t.AccountNumber,
		Type:                t.Type,
		Amount:              t.Amount,
		BalanceAfter:        t.BalanceAfter,
		Description:         t.Description.String,
		CounterpartyAccount: t.CounterpartyAccount.String,
		CreatedAt:           t.CreatedAt,
	}
}

package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lumibank/coreledger/config"
	"github.com/lumibank/coreledger/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	config.NewLoggerService()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.Migrate(db))

	return db
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func openAccount(t *testing.T, bank *BankService, accountType models.AccountType, number string, deposit int64) *models.Account {
	t.Helper()

	account := &models.Account{
		AccountNumber: number,
		AccountHolder: "Jordan Reeve",
		Type:          accountType,
		Balance:       decimal.NewFromInt(deposit),
	}

	if accountType == models.TypeFixedDeposit {
		account.TermMonths = 12
	}

	require.NoError(t, bank.CreateAccount(account))
	return account
}

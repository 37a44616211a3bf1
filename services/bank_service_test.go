package services

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null"

	"github.com/lumibank/coreledger/models"
	"github.com/lumibank/coreledger/types"
)

func TestCreateAccountRecordsInitialDeposit(t *testing.T) {
	bank := NewBankService(testDB(t))

	account := openAccount(t, bank, models.TypeSavings, "SAV-1001", 1000)
	assert.Equal(t, models.StatusActive, account.Status)
	assert.True(t, account.InterestRate.Equal(models.DefaultSavingsRate))
	assert.True(t, account.MinimumBalance.Equal(models.SavingsMinimumBalance))

	history, err := bank.GetTransactionHistory("SAV-1001")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, models.TxInitialDeposit, history[0].Type)
	assert.True(t, history[0].Amount.Equal(decimal.NewFromInt(1000)))
	assert.True(t, history[0].BalanceAfter.Equal(decimal.NewFromInt(1000)))
}

func TestCreateAccountRejectsNonPositiveDeposit(t *testing.T) {
	bank := NewBankService(testDB(t))

	err := bank.CreateAccount(&models.Account{
		AccountNumber: "SAV-1001",
		AccountHolder: "Jordan Reeve",
		Type:          models.TypeSavings,
		Balance:       decimal.Zero,
	})

	assert.ErrorIs(t, err, models.ErrInvalidAmount)
}

func TestDepositUpdatesBalanceAndAppendsLedgerRow(t *testing.T) {
	bank := NewBankService(testDB(t))
	openAccount(t, bank, models.TypeChecking, "CHK-2001", 500)

	txn, err := bank.Deposit("CHK-2001", decimal.NewFromInt(250))
	require.NoError(t, err)
	assert.Equal(t, models.TxDeposit, txn.Type)
	assert.True(t, txn.BalanceAfter.Equal(decimal.NewFromInt(750)))

	account, err := bank.GetAccount("CHK-2001")
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(750)))

	history, err := bank.GetTransactionHistory("CHK-2001")
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestDepositValidation(t *testing.T) {
	bank := NewBankService(testDB(t))
	openAccount(t, bank, models.TypeChecking, "CHK-2001", 500)

	_, err := bank.Deposit("CHK-2001", decimal.Zero)
	assert.ErrorIs(t, err, models.ErrInvalidAmount)

	_, err = bank.Deposit("CHK-2001", decimal.NewFromInt(-10))
	assert.ErrorIs(t, err, models.ErrInvalidAmount)

	_, err = bank.Deposit("NOPE-1", decimal.NewFromInt(10))
	assert.ErrorIs(t, err, models.ErrAccountNotFound)
}

func TestSavingsWithdrawalRespectsMinimumBalance(t *testing.T) {
	bank := NewBankService(testDB(t))
	openAccount(t, bank, models.TypeSavings, "SAV-1001", 1000)

	_, err := bank.Withdraw("SAV-1001", decimal.NewFromInt(950))
	assert.ErrorIs(t, err, models.ErrInsufficientFunds)

	account, err := bank.GetAccount("SAV-1001")
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(1000)))

	txn, err := bank.Withdraw("SAV-1001", decimal.NewFromInt(900))
	require.NoError(t, err)
	assert.True(t, txn.BalanceAfter.Equal(decimal.NewFromInt(100)))

	history, err := bank.GetTransactionHistory("SAV-1001")
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestCheckingWithdrawalStopsAtOverdraftLimit(t *testing.T) {
	bank := NewBankService(testDB(t))
	openAccount(t, bank, models.TypeChecking, "CHK-2001", 100)

	txn, err := bank.Withdraw("CHK-2001", decimal.NewFromInt(600))
	require.NoError(t, err)
	assert.True(t, txn.BalanceAfter.Equal(decimal.NewFromInt(-500)))

	_, err = bank.Withdraw("CHK-2001", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, models.ErrInsufficientFunds)
}

func TestFixedDepositWithdrawalLockedUntilMaturity(t *testing.T) {
	db := testDB(t)
	bank := NewBankService(db)
	account := openAccount(t, bank, models.TypeFixedDeposit, "FXD-3001", 10000)

	_, err := bank.Withdraw("FXD-3001", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, models.ErrTermLocked)

	// Mature the term, then the balance check applies.
	account.MaturityDate = null.TimeFrom(date(2020, 1, 1))
	require.NoError(t, db.Save(account).Error)

	_, err = bank.Withdraw("FXD-3001", decimal.NewFromInt(10001))
	assert.ErrorIs(t, err, models.ErrInsufficientFunds)

	txn, err := bank.Withdraw("FXD-3001", decimal.NewFromInt(10000))
	require.NoError(t, err)
	assert.True(t, txn.BalanceAfter.IsZero())
}

func TestTransferMovesBothLegs(t *testing.T) {
	bank := NewBankService(testDB(t))
	openAccount(t, bank, models.TypeChecking, "CHK-2001", 1000)
	openAccount(t, bank, models.TypeSavings, "SAV-1001", 500)

	txn, err := bank.Transfer("CHK-2001", "SAV-1001", decimal.NewFromInt(300))
	require.NoError(t, err)
	assert.Equal(t, models.TxTransferOut, txn.Type)
	assert.Equal(t, "SAV-1001", txn.CounterpartyAccount.String)

	from, _ := bank.GetAccount("CHK-2001")
	to, _ := bank.GetAccount("SAV-1001")
	assert.True(t, from.Balance.Equal(decimal.NewFromInt(700)))
	assert.True(t, to.Balance.Equal(decimal.NewFromInt(800)))

	fromHistory, err := bank.GetTransactionHistory("CHK-2001")
	require.NoError(t, err)
	require.Len(t, fromHistory, 2)
	assert.Equal(t, models.TxTransferOut, fromHistory[1].Type)

	toHistory, err := bank.GetTransactionHistory("SAV-1001")
	require.NoError(t, err)
	require.Len(t, toHistory, 2)
	assert.Equal(t, models.TxTransferIn, toHistory[1].Type)
	assert.Equal(t, "CHK-2001", toHistory[1].CounterpartyAccount.String)
}

func TestTransferValidation(t *testing.T) {
	bank := NewBankService(testDB(t))
	openAccount(t, bank, models.TypeChecking, "CHK-2001", 1000)

	_, err := bank.Transfer("CHK-2001", "CHK-2001", decimal.NewFromInt(10))
	assert.ErrorIs(t, err, models.ErrSameAccount)

	_, err = bank.Transfer("CHK-2001", "NOPE-1", decimal.NewFromInt(10))
	assert.ErrorIs(t, err, models.ErrAccountNotFound)

	_, err = bank.Transfer("CHK-2001", "NOPE-1", decimal.Zero)
	assert.ErrorIs(t, err, models.ErrInvalidAmount)

	account, _ := bank.GetAccount("CHK-2001")
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(1000)))
}

func TestTransferRejectedByPolicyLeavesNoTrace(t *testing.T) {
	bank := NewBankService(testDB(t))
	openAccount(t, bank, models.TypeSavings, "SAV-1001", 120)
	openAccount(t, bank, models.TypeSavings, "SAV-1002", 120)

	_, err := bank.Transfer("SAV-1001", "SAV-1002", decimal.NewFromInt(50))
	assert.ErrorIs(t, err, models.ErrInsufficientFunds)

	from, _ := bank.GetAccount("SAV-1001")
	to, _ := bank.GetAccount("SAV-1002")
	assert.True(t, from.Balance.Equal(decimal.NewFromInt(120)))
	assert.True(t, to.Balance.Equal(decimal.NewFromInt(120)))

	fromHistory, _ := bank.GetTransactionHistory("SAV-1001")
	toHistory, _ := bank.GetTransactionHistory("SAV-1002")
	assert.Len(t, fromHistory, 1)
	assert.Len(t, toHistory, 1)
}

func TestTransferRollsBackWhenLedgerWriteFails(t *testing.T) {
	db := testDB(t)
	bank := NewBankService(db)
	openAccount(t, bank, models.TypeChecking, "CHK-2001", 1000)
	openAccount(t, bank, models.TypeChecking, "CHK-2002", 1000)

	// Losing the transactions table makes the ledger append fail after
	// both balances were already written inside the unit.
	require.NoError(t, db.Migrator().DropTable(&models.Transaction{}))

	_, err := bank.Transfer("CHK-2001", "CHK-2002", decimal.NewFromInt(300))
	require.Error(t, err)

	from, _ := bank.GetAccount("CHK-2001")
	to, _ := bank.GetAccount("CHK-2002")
	assert.True(t, from.Balance.Equal(decimal.NewFromInt(1000)))
	assert.True(t, to.Balance.Equal(decimal.NewFromInt(1000)))
}

func TestConcurrentDepositsDoNotLoseUpdates(t *testing.T) {
	bank := NewBankService(testDB(t))
	openAccount(t, bank, models.TypeChecking, "CHK-2001", 100)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := bank.Deposit("CHK-2001", decimal.NewFromInt(100))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	account, err := bank.GetAccount("CHK-2001")
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(300)))

	history, err := bank.GetTransactionHistory("CHK-2001")
	require.NoError(t, err)
	assert.Len(t, history, 3)
}

func TestApplyInterestCreditsOnePeriod(t *testing.T) {
	bank := NewBankService(testDB(t))
	openAccount(t, bank, models.TypeSavings, "SAV-1001", 1200)

	txn, err := bank.ApplyInterest("SAV-1001", types.ModeMonthly)
	require.NoError(t, err)
	require.NotNil(t, txn)
	assert.Equal(t, models.TxInterest, txn.Type)
	// 1200 * 0.04 / 12
	assert.True(t, txn.Amount.Equal(decimal.NewFromInt(4)))
	assert.True(t, txn.BalanceAfter.Equal(decimal.NewFromInt(1204)))
}

func TestApplyInterestSkipsNonPositiveBalance(t *testing.T) {
	bank := NewBankService(testDB(t))
	openAccount(t, bank, models.TypeChecking, "CHK-2001", 100)

	_, err := bank.Withdraw("CHK-2001", decimal.NewFromInt(300))
	require.NoError(t, err)

	txn, err := bank.ApplyInterest("CHK-2001", types.ModeMonthly)
	require.NoError(t, err)
	assert.Nil(t, txn)

	history, _ := bank.GetTransactionHistory("CHK-2001")
	assert.Len(t, history, 2)
}

func TestApplyInterestToAllSkipsClosedAccounts(t *testing.T) {
	bank := NewBankService(testDB(t))
	openAccount(t, bank, models.TypeSavings, "SAV-1001", 1200)
	openAccount(t, bank, models.TypeSavings, "SAV-1002", 600)
	require.NoError(t, bank.CloseAccount("SAV-1002"))

	summary, err := bank.ApplyInterestToAll(types.ModeMonthly)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.AccountsProcessed)
	assert.True(t, summary.TotalInterestPaid.Equal(decimal.NewFromInt(4)))
}

func TestCloseAccountBlocksMovements(t *testing.T) {
	bank := NewBankService(testDB(t))
	openAccount(t, bank, models.TypeChecking, "CHK-2001", 500)

	require.NoError(t, bank.CloseAccount("CHK-2001"))
	assert.ErrorIs(t, bank.CloseAccount("CHK-2001"), models.ErrAccountClosed)

	_, err := bank.Deposit("CHK-2001", decimal.NewFromInt(10))
	assert.ErrorIs(t, err, models.ErrAccountClosed)

	_, err = bank.Withdraw("CHK-2001", decimal.NewFromInt(10))
	assert.ErrorIs(t, err, models.ErrAccountClosed)

	// History survives closure.
	history, err := bank.GetTransactionHistory("CHK-2001")
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestSearchAccounts(t *testing.T) {
	bank := NewBankService(testDB(t))
	openAccount(t, bank, models.TypeChecking, "CHK-2001", 500)

	require.NoError(t, bank.CreateAccount(&models.Account{
		AccountNumber: "SAV-9001",
		AccountHolder: "Ada Okafor",
		Type:          models.TypeSavings,
		Balance:       decimal.NewFromInt(300),
	}))

	matches, err := bank.SearchAccounts("Okafor")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "SAV-9001", matches[0].AccountNumber)

	matches, err = bank.SearchAccounts("nobody")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

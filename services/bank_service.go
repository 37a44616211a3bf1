package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lumibank/coreledger/config"
	"github.com/lumibank/coreledger/models"
	"github.com/lumibank/coreledger/types"
)

// BankService is the single choke point for balance mutation. Every
// deposit, withdrawal, transfer leg and interest credit runs inside one
// database transaction while holding the account's process lock, and pairs
// the balance change with exactly one ledger row.
type BankService struct {
	db    *gorm.DB
	locks *accountLocks
}

func NewBankService(db *gorm.DB) *BankService {
	return &BankService{
		db:    db,
		locks: newAccountLocks(),
	}
}

// CreateAccount persists the account and its opening INITIAL_DEPOSIT entry
// as one unit. The account's Balance carries the opening deposit.
func (s *BankService) CreateAccount(account *models.Account) error {
	if !account.Balance.IsPositive() {
		return models.ErrInvalidAmount
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(account).Error; err != nil {
			return err
		}

		txn := &models.Transaction{
			AccountNumber: account.AccountNumber,
			Type:          models.TxInitialDeposit,
			Amount:        account.Balance,
			BalanceAfter:  account.Balance,
			Description:   null.StringFrom("Account opening deposit"),
		}

		return tx.Create(txn).Error
	})
}

func (s *BankService) Deposit(accountNumber string, amount decimal.Decimal) (*models.Transaction, error) {
	if !amount.IsPositive() {
		return nil, models.ErrInvalidAmount
	}

	release := s.locks.Acquire(accountNumber)
	defer release()

	var txn *models.Transaction

	err := s.db.Transaction(func(tx *gorm.DB) error {
		account, err := s.findForUpdate(tx, accountNumber)
		if err != nil {
			return err
		}

		if !account.Active() {
			return models.ErrAccountClosed
		}

		if err := account.Credit(tx, amount); err != nil {
			return err
		}

		txn = &models.Transaction{
			AccountNumber: accountNumber,
			Type:          models.TxDeposit,
			Amount:        amount,
			BalanceAfter:  account.Balance,
			Description:   null.StringFrom("Cash deposit"),
		}

		return tx.Create(txn).Error
	})

	if err != nil {
		return nil, err
	}

	txn.WriteToInflux()
	return txn, nil
}

func (s *BankService) Withdraw(accountNumber string, amount decimal.Decimal) (*models.Transaction, error) {
	if !amount.IsPositive() {
		return nil, models.ErrInvalidAmount
	}

	release := s.locks.Acquire(accountNumber)
	defer release()

	var txn *models.Transaction

	err := s.db.Transaction(func(tx *gorm.DB) error {
		account, err := s.findForUpdate(tx, accountNumber)
		if err != nil {
			return err
		}

		if !account.Active() {
			return models.ErrAccountClosed
		}

		if err := account.CanWithdraw(amount, time.Now()); err != nil {
			return err
		}

		if err := account.Debit(tx, amount); err != nil {
			return err
		}

		txn = &models.Transaction{
			AccountNumber: accountNumber,
			Type:          models.TxWithdrawal,
			Amount:        amount,
			BalanceAfter:  account.Balance,
			Description:   null.StringFrom("Cash withdrawal"),
		}

		return tx.Create(txn).Error
	})

	if err != nil {
		return nil, err
	}

	txn.WriteToInflux()
	return txn, nil
}

// Transfer moves amount between two accounts as one atomic unit: both
// balance updates and both ledger rows commit together or not at all.
func (s *BankService) Transfer(fromNumber, toNumber string, amount decimal.Decimal) (*models.Transaction, error) {
	if !amount.IsPositive() {
		return nil, models.ErrInvalidAmount
	}

	if fromNumber == toNumber {
		return nil, models.ErrSameAccount
	}

	release := s.locks.Acquire(fromNumber, toNumber)
	defer release()

	var outTxn *models.Transaction
	var inTxn *models.Transaction

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Rows are locked in account-number order, matching the
		// process-lock order above.
		first, second := fromNumber, toNumber
		if second < first {
			first, second = second, first
		}

		accounts := map[string]*models.Account{}
		for _, number := range []string{first, second} {
			account, err := s.findForUpdate(tx, number)
			if err != nil {
				return err
			}
			accounts[number] = account
		}

		from := accounts[fromNumber]
		to := accounts[toNumber]

		if !from.Active() || !to.Active() {
			return models.ErrAccountClosed
		}

		if err := from.CanWithdraw(amount, time.Now()); err != nil {
			return err
		}

		if err := from.Debit(tx, amount); err != nil {
			return err
		}

		if err := to.Credit(tx, amount); err != nil {
			return err
		}

		outTxn = &models.Transaction{
			AccountNumber:       fromNumber,
			Type:                models.TxTransferOut,
			Amount:              amount,
			BalanceAfter:        from.Balance,
			Description:         null.StringFrom("Transfer to " + toNumber),
			CounterpartyAccount: null.StringFrom(toNumber),
		}

		inTxn = &models.Transaction{
			AccountNumber:       toNumber,
			Type:                models.TxTransferIn,
			Amount:              amount,
			BalanceAfter:        to.Balance,
			Description:         null.StringFrom("Transfer from " + fromNumber),
			CounterpartyAccount: null.StringFrom(fromNumber),
		}

		if err := tx.Create(outTxn).Error; err != nil {
			return err
		}

		return tx.Create(inTxn).Error
	})

	if err != nil {
		return nil, err
	}

	outTxn.WriteToInflux()
	inTxn.WriteToInflux()
	return outTxn, nil
}

// ApplyInterest credits one period of interest at the given calculation
// mode. A zero or negative balance earns nothing and produces no ledger row.
func (s *BankService) ApplyInterest(accountNumber string, mode types.CalculationMode) (*models.Transaction, error) {
	release := s.locks.Acquire(accountNumber)
	defer release()

	var txn *models.Transaction

	err := s.db.Transaction(func(tx *gorm.DB) error {
		account, err := s.findForUpdate(tx, accountNumber)
		if err != nil {
			return err
		}

		if !account.Active() {
			return models.ErrAccountClosed
		}

		interest := account.InterestFor(types.PeriodsPerYear(mode))
		if !interest.IsPositive() {
			return nil
		}

		if err := account.Credit(tx, interest); err != nil {
			return err
		}

		txn = &models.Transaction{
			AccountNumber: accountNumber,
			Type:          models.TxInterest,
			Amount:        interest,
			BalanceAfter:  account.Balance,
			Description:   null.StringFrom("Interest credit"),
		}

		return tx.Create(txn).Error
	})

	if err != nil {
		return nil, err
	}

	if txn != nil {
		txn.WriteToInflux()
	}

	return txn, nil
}

// ApplyInterestToAll runs the interest credit across every ACTIVE account.
// A failure on one account is logged and does not stop the batch.
func (s *BankService) ApplyInterestToAll(mode types.CalculationMode) (types.InterestSummary, error) {
	summary := types.InterestSummary{TotalInterestPaid: decimal.Zero}

	accounts, err := s.GetActiveAccounts()
	if err != nil {
		return summary, err
	}

	for _, account := range accounts {
		txn, err := s.ApplyInterest(account.AccountNumber, mode)
		if err != nil {
			config.Logger.Errorf("Failed to apply interest to %s: %v", account.AccountNumber, err)
			continue
		}

		if txn != nil {
			summary.AccountsProcessed++
			summary.TotalInterestPaid = summary.TotalInterestPaid.Add(txn.Amount)
		}
	}

	return summary, nil
}

func (s *BankService) GetAccount(accountNumber string) (*models.Account, error) {
	var account models.Account

	if err := s.db.Where("account_number = ?", accountNumber).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrAccountNotFound
		}
		return nil, err
	}

	return &account, nil
}

func (s *BankService) GetAllAccounts() ([]models.Account, error) {
	var accounts []models.Account

	err := s.db.Order("account_number asc").Find(&accounts).Error
	return accounts, err
}

func (s *BankService) GetActiveAccounts() ([]models.Account, error) {
	var accounts []models.Account

	err := s.db.Where("status = ?", models.StatusActive).Order("account_number asc").Find(&accounts).Error
	return accounts, err
}

func (s *BankService) SearchAccounts(holderName string) ([]models.Account, error) {
	var accounts []models.Account

	err := s.db.Where("account_holder LIKE ?", "%"+holderName+"%").Order("account_number asc").Find(&accounts).Error
	return accounts, err
}

func (s *BankService) GetTransactionHistory(accountNumber string) ([]models.Transaction, error) {
	if _, err := s.GetAccount(accountNumber); err != nil {
		return nil, err
	}

	var transactions []models.Transaction

	err := s.db.Where("account_number = ?", accountNumber).Order("id asc").Find(&transactions).Error
	return transactions, err
}

// CloseAccount flips the account to CLOSED. The row and its ledger history
// stay; a closed account rejects every money movement.
func (s *BankService) CloseAccount(accountNumber string) error {
	release := s.locks.Acquire(accountNumber)
	defer release()

	return s.db.Transaction(func(tx *gorm.DB) error {
		account, err := s.findForUpdate(tx, accountNumber)
		if err != nil {
			return err
		}

		if !account.Active() {
			return models.ErrAccountClosed
		}

		account.Status = models.StatusClosed
		return tx.Save(account).Error
	})
}

// findForUpdate loads an account with a row lock on engines that support
// one. On sqlite the process lock registry is the only serialization.
func (s *BankService) findForUpdate(tx *gorm.DB, accountNumber string) (*models.Account, error) {
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var account models.Account
	if err := q.Where("account_number = ?", accountNumber).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrAccountNotFound
		}
		return nil, err
	}

	return &account, nil
}

package services

import (
	"errors"
	"time"

	"github.com/volatiletech/null"
	"gorm.io/gorm"

	"github.com/lumibank/coreledger/config"
	"github.com/lumibank/coreledger/models"
	"github.com/lumibank/coreledger/types"
)

// StandingOrderService owns the recurring-transfer state machine:
// ACTIVE orders are executed when due, advanced by their frequency, and
// terminated to COMPLETED (end date reached) or CANCELLED (explicit).
type StandingOrderService struct {
	db   *gorm.DB
	bank *BankService
}

func NewStandingOrderService(db *gorm.DB, bank *BankService) *StandingOrderService {
	return &StandingOrderService{
		db:   db,
		bank: bank,
	}
}

func (s *StandingOrderService) CreateStandingOrder(order *models.StandingOrder) error {
	if !order.Amount.IsPositive() {
		return models.ErrInvalidAmount
	}

	if !order.Frequency.Valid() {
		return models.ErrInvalidFrequency
	}

	if order.FromAccountNumber == order.ToAccountNumber {
		return models.ErrSameAccount
	}

	if _, err := s.bank.GetAccount(order.FromAccountNumber); err != nil {
		return err
	}
	if _, err := s.bank.GetAccount(order.ToAccountNumber); err != nil {
		return err
	}

	order.StartDate = models.DateOnly(order.StartDate)
	order.NextExecutionDate = order.StartDate
	order.Status = models.OrderActive

	if order.EndDate.Valid {
		order.EndDate = null.TimeFrom(models.DateOnly(order.EndDate.Time))
	}

	return s.db.Create(order).Error
}

// CancelStandingOrder moves an ACTIVE order to CANCELLED. Terminal orders
// stay terminal.
func (s *StandingOrderService) CancelStandingOrder(id uint64) error {
	order, err := s.GetStandingOrder(id)
	if err != nil {
		return err
	}

	if !order.Active() {
		return models.ErrOrderNotActive
	}

	order.Status = models.OrderCancelled
	return s.db.Save(order).Error
}

func (s *StandingOrderService) GetStandingOrder(id uint64) (*models.StandingOrder, error) {
	var order models.StandingOrder

	if err := s.db.First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrOrderNotFound
		}
		return nil, err
	}

	return &order, nil
}

// GetStandingOrders returns the ACTIVE orders the account participates in,
// on either side.
func (s *StandingOrderService) GetStandingOrders(accountNumber string) ([]models.StandingOrder, error) {
	var orders []models.StandingOrder

	err := s.db.
		Where("status = ?", models.OrderActive).
		Where("from_account_number = ? OR to_account_number = ?", accountNumber, accountNumber).
		Order("id asc").
		Find(&orders).Error

	return orders, err
}

// DueStandingOrders lists the ACTIVE orders whose next execution date has
// arrived, oldest due date first.
func (s *StandingOrderService) DueStandingOrders(asOf time.Time) ([]models.StandingOrder, error) {
	var orders []models.StandingOrder

	err := s.db.
		Where("status = ?", models.OrderActive).
		Where("next_execution_date <= ?", models.DateOnly(asOf)).
		Order("next_execution_date asc, id asc").
		Find(&orders).Error

	return orders, err
}

// ProcessStandingOrders is one scheduler tick: execute every due order,
// advance or complete it, then sweep expired orders that were never picked
// up. A failed order keeps its due date and is retried next tick; one
// order's failure never aborts the rest.
func (s *StandingOrderService) ProcessStandingOrders(asOf time.Time) (types.StandingOrderSummary, error) {
	summary := types.StandingOrderSummary{}

	due, err := s.DueStandingOrders(asOf)
	if err != nil {
		return summary, err
	}

	summary.Due = len(due)

	for i := range due {
		order := &due[i]

		if err := s.processStandingOrder(order, asOf); err != nil {
			summary.Failed++
			config.Logger.Errorf("Standing order %d failed: %v", order.ID, err)
			continue
		}

		summary.Processed++
	}

	completed, err := s.completeExpiredStandingOrders(asOf)
	if err != nil {
		return summary, err
	}

	summary.Completed = completed

	return summary, nil
}

func (s *StandingOrderService) processStandingOrder(order *models.StandingOrder, asOf time.Time) error {
	if _, err := s.bank.Transfer(order.FromAccountNumber, order.ToAccountNumber, order.Amount); err != nil {
		return err
	}

	next := order.NextDate()
	order.LastExecutionDate = null.TimeFrom(models.DateOnly(asOf))

	if order.EndDate.Valid && next.After(order.EndDate.Time) {
		order.Status = models.OrderCompleted
	} else {
		order.NextExecutionDate = next
	}

	return s.db.Save(order).Error
}

// completeExpiredStandingOrders covers orders whose end date passed while
// the scheduler was down, so they never became due again.
func (s *StandingOrderService) completeExpiredStandingOrders(asOf time.Time) (int, error) {
	result := s.db.
		Model(&models.StandingOrder{}).
		Where("status = ?", models.OrderActive).
		Where("end_date IS NOT NULL AND end_date < ?", models.DateOnly(asOf)).
		Update("status", models.OrderCompleted)

	return int(result.RowsAffected), result.Error
}

package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/ledger"
	"spendwise/internal/models"
)

// budgetService handles direct reads and writes of a user's budget.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// GetCurrentBudget returns the user's remaining budget.
func (s *budgetService) GetCurrentBudget(userID string) (decimal.Decimal, error) {
	user, err := s.findUser(userID, "current_budget")
	if err != nil {
		return decimal.Zero, err
	}
	return user.CurrentBudget, nil
}

// UpdateBudget replaces the user's budget outright. The new value is not
// reconciled with existing spending records.
func (s *budgetService) UpdateBudget(userID, rawBudget string) (decimal.Decimal, error) {
	budget, err := ledger.SetAbsolute(rawBudget)
	if err != nil {
		return decimal.Zero, err
	}

	result := s.db.Model(&models.User{}).Where("id = ?", userID).Update("current_budget", budget)
	if result.Error != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return decimal.Zero, apperrors.ErrUserNotFound
	}
	return budget, nil
}

// GetJoinDate returns when the user registered.
func (s *budgetService) GetJoinDate(userID string) (time.Time, error) {
	user, err := s.findUser(userID, "join_date")
	if err != nil {
		return time.Time{}, err
	}
	return user.JoinDate, nil
}

func (s *budgetService) findUser(userID string, columns ...string) (*models.User, error) {
	var user models.User
	if err := s.db.Select(columns).Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

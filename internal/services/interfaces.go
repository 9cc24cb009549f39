package services

import (
	"time"

	"github.com/shopspring/decimal"

	"spendwise/internal/models"
)

// UserServicer defines the contract for identity and credential logic.
type UserServicer interface {
	CreateUser(name, email, password string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreActiveToken(userID, token string) error
}

// BudgetServicer defines the contract for reading and replacing a user's budget.
type BudgetServicer interface {
	GetCurrentBudget(userID string) (decimal.Decimal, error)
	UpdateBudget(userID, rawBudget string) (decimal.Decimal, error)
	GetJoinDate(userID string) (time.Time, error)
}

// SpendingInput carries the editable fields of a spending record.
type SpendingInput struct {
	Date         time.Time
	Product      string
	Price        decimal.Decimal
	PrimaryTag   string
	SecondaryTag string
}

// SpendingServicer defines the contract for spending records. Every mutation
// commits the record change and the resulting budget together.
type SpendingServicer interface {
	CreateSpending(userID string, input SpendingInput) (*models.SpendingRecord, error)
	UpdateSpending(userID, recordID string, input SpendingInput) (*models.SpendingRecord, error)
	DeleteSpending(userID, recordID string) error
	GetUserSpending(userID string) ([]models.SpendingRecord, error)
	GetSpendingInRange(userID string, startDate, endDate time.Time) ([]models.SpendingRecord, error)
	GetSpendingByTag(userID string, kind models.TagKind, tag string) ([]models.SpendingRecord, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}

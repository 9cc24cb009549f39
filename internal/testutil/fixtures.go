package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"spendwise/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password, unique email and no budget.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	return createUser(t, db, email, decimal.Zero)
}

// CreateTestUserWithBudget creates a user whose current budget is budget.
func CreateTestUserWithBudget(t *testing.T, db *gorm.DB, budget int64) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return createUser(t, db, email, decimal.NewFromInt(budget))
}

func createUser(t *testing.T, db *gorm.DB, email string, budget decimal.Decimal) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Name:          fmt.Sprintf("Test User %d", nextID()),
		Email:         email,
		Password:      string(hash),
		CurrentBudget: budget,
		JoinDate:      time.Now().UTC(),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestSpending inserts a record directly, without touching the budget.
func CreateTestSpending(t *testing.T, db *gorm.DB, userID string, date time.Time, price int64, primaryTag, secondaryTag string) *models.SpendingRecord {
	t.Helper()

	record := &models.SpendingRecord{
		UserID:       userID,
		Date:         date,
		Product:      fmt.Sprintf("Test Product %d", nextID()),
		Price:        decimal.NewFromInt(price),
		PrimaryTag:   primaryTag,
		SecondaryTag: secondaryTag,
	}
	if err := db.Create(record).Error; err != nil {
		t.Fatalf("failed to create test spending record: %v", err)
	}
	return record
}

// ReloadUser fetches the current state of a user.
func ReloadUser(t *testing.T, db *gorm.DB, userID string) *models.User {
	t.Helper()

	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		t.Fatalf("failed to reload user %s: %v", userID, err)
	}
	return &user
}

// CountSpending returns how many live spending records the user owns.
func CountSpending(t *testing.T, db *gorm.DB, userID string) int64 {
	t.Helper()

	var count int64
	if err := db.Model(&models.SpendingRecord{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count spending records: %v", err)
	}
	return count
}

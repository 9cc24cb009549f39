package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents an account holder and owner of a spending collection.
type User struct {
	Base
	Name          string           `gorm:"not null" json:"name"`
	Email         string           `gorm:"uniqueIndex;not null" json:"email"`
	Password      string           `gorm:"not null" json:"-"`
	ActiveToken   string           `gorm:"type:text" json:"-"`
	CurrentBudget decimal.Decimal  `gorm:"type:numeric(14,2);not null;default:0" json:"currentBudget"`
	JoinDate      time.Time        `gorm:"not null" json:"joinDate"`
	Spending      []SpendingRecord `gorm:"foreignKey:UserID" json:"spending,omitempty"`
}

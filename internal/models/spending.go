package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TagKind selects which category label a tag query filters on.
type TagKind string

const (
	TagKindPrimary   TagKind = "primary"
	TagKindSecondary TagKind = "secondary"
)

// Column returns the database column holding tags of this kind.
func (k TagKind) Column() string {
	if k == TagKindSecondary {
		return "secondary_tag"
	}
	return "primary_tag"
}

// SpendingRecord is a single dated expenditure owned by exactly one user.
type SpendingRecord struct {
	Base
	UserID       string          `gorm:"type:uuid;not null;index" json:"userId"`
	Date         time.Time       `gorm:"not null;index" json:"date"`
	Product      string          `gorm:"not null" json:"product"`
	Price        decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"price"`
	PrimaryTag   string          `gorm:"index" json:"primaryTag,omitempty"`
	SecondaryTag string          `gorm:"index" json:"secondaryTag,omitempty"`
}

package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/ledger"
	"spendwise/internal/models"
	"spendwise/internal/uuid"
)

// spendingService handles spending records and keeps the owner's budget in
// step with them.
type spendingService struct {
	db *gorm.DB
}

// NewSpendingService creates a new SpendingServicer.
func NewSpendingService(db *gorm.DB) SpendingServicer {
	return &spendingService{db: db}
}

// CreateSpending debits the record's price from the budget and appends the
// record. Nothing is written when the budget cannot cover the price.
func (s *spendingService) CreateSpending(userID string, input SpendingInput) (*models.SpendingRecord, error) {
	input, err := normalizeSpendingInput(input)
	if err != nil {
		return nil, err
	}

	record := &models.SpendingRecord{
		UserID:       userID,
		Date:         input.Date,
		Product:      input.Product,
		Price:        input.Price,
		PrimaryTag:   input.PrimaryTag,
		SecondaryTag: input.SecondaryTag,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		user, err := lockUser(tx, userID)
		if err != nil {
			return err
		}

		newBudget, err := ledger.Reserve(user, record.Price)
		if err != nil {
			return err
		}

		if err := tx.Create(record).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return saveBudget(tx, userID, newBudget)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// UpdateSpending replaces a record's fields. Raising the price debits the
// difference from the budget; lowering it refunds the difference.
func (s *spendingService) UpdateSpending(userID, recordID string, input SpendingInput) (*models.SpendingRecord, error) {
	input, err := normalizeSpendingInput(input)
	if err != nil {
		return nil, err
	}

	var record *models.SpendingRecord
	err = s.db.Transaction(func(tx *gorm.DB) error {
		user, err := lockUser(tx, userID)
		if err != nil {
			return err
		}

		record, err = findRecord(tx, userID, recordID)
		if err != nil {
			return err
		}

		priceDelta := input.Price.Sub(record.Price)
		newBudget, err := ledger.Adjust(user, priceDelta.Neg())
		if err != nil {
			return err
		}

		record.Date = input.Date
		record.Product = input.Product
		record.Price = input.Price
		record.PrimaryTag = input.PrimaryTag
		record.SecondaryTag = input.SecondaryTag

		if err := tx.Save(record).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return saveBudget(tx, userID, newBudget)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// DeleteSpending removes a record and credits its price back to the budget.
func (s *spendingService) DeleteSpending(userID, recordID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		user, err := lockUser(tx, userID)
		if err != nil {
			return err
		}

		record, err := findRecord(tx, userID, recordID)
		if err != nil {
			return err
		}

		newBudget, err := ledger.Adjust(user, record.Price)
		if err != nil {
			return err
		}

		if err := tx.Delete(record).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return saveBudget(tx, userID, newBudget)
	})
}

// GetUserSpending returns every record the user owns in insertion order.
func (s *spendingService) GetUserSpending(userID string) ([]models.SpendingRecord, error) {
	return s.find(s.db.Where("user_id = ?", userID))
}

// GetSpendingInRange returns records dated from the start of startDate
// through the last millisecond of endDate.
func (s *spendingService) GetSpendingInRange(userID string, startDate, endDate time.Time) ([]models.SpendingRecord, error) {
	from := startOfDay(startDate)
	to := endOfDay(endDate)
	if to.Before(from) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "startDate must not be after endDate")
	}

	return s.find(s.db.Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to))
}

// GetSpendingByTag returns records whose primary or secondary tag matches,
// ignoring case. An empty result is reported as ErrNoMatchingRecords.
func (s *spendingService) GetSpendingByTag(userID string, kind models.TagKind, tag string) ([]models.SpendingRecord, error) {
	switch kind {
	case models.TagKindPrimary, models.TagKindSecondary:
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "tag kind must be primary or secondary")
	}

	tag = normalizeTag(tag)
	if tag == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, string(kind)+" tag is required")
	}

	records, err := s.find(s.db.Where("user_id = ? AND "+kind.Column()+" = ?", userID, tag))
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrNoMatchingRecords,
			"No spending records found for "+string(kind)+" tag: "+tag)
	}
	return records, nil
}

func (s *spendingService) find(q *gorm.DB) ([]models.SpendingRecord, error) {
	records := []models.SpendingRecord{}
	if err := q.Order("id ASC").Find(&records).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return records, nil
}

// lockUser loads the owner inside tx. PostgreSQL takes a row lock so that
// concurrent mutations for the same user queue behind each other; SQLite
// already serializes writers and has no FOR UPDATE.
func lockUser(tx *gorm.DB, userID string) (*models.User, error) {
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var user models.User
	if err := q.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

func findRecord(tx *gorm.DB, userID, recordID string) (*models.SpendingRecord, error) {
	// Postgres rejects malformed values for a uuid column outright.
	if !uuid.IsValid(recordID) {
		return nil, apperrors.ErrRecordNotFound
	}

	var record models.SpendingRecord
	if err := tx.Where("id = ? AND user_id = ?", recordID, userID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRecordNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &record, nil
}

func saveBudget(tx *gorm.DB, userID string, budget decimal.Decimal) error {
	if err := tx.Model(&models.User{}).Where("id = ?", userID).Update("current_budget", budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func normalizeSpendingInput(in SpendingInput) (SpendingInput, error) {
	fields := map[string]string{}

	in.Product = strings.TrimSpace(in.Product)
	if in.Product == "" {
		fields["product"] = "Product name is required"
	}

	in.Price = in.Price.Round(2)
	if !in.Price.IsPositive() {
		fields["price"] = "Price must be greater than zero"
	}

	if in.Date.IsZero() {
		fields["date"] = "Date must be a valid date"
	}

	if len(fields) > 0 {
		return in, apperrors.WithFields(apperrors.ErrInvalidInput, "Invalid spending record", fields)
	}

	in.Date = startOfDay(in.Date)
	in.PrimaryTag = normalizeTag(in.PrimaryTag)
	in.SecondaryTag = normalizeTag(in.SecondaryTag)
	return in, nil
}

func normalizeTag(tag string) string {
	return strings.ToUpper(strings.TrimSpace(tag))
}

// startOfDay maps t to midnight UTC of its calendar date.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// endOfDay maps t to 23:59:59.999 UTC of its calendar date.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), time.UTC)
}

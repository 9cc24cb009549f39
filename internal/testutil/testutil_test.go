package testutil_test

import (
	"testing"
	"time"

	"spendwise/internal/errors"
	"spendwise/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	var count int64
	for _, table := range []string{"users", "spending_records", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestSetupTestDB_isolated(t *testing.T) {
	first := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, first)
	second := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, second)

	testutil.CreateTestUser(t, first)

	var count int64
	second.Table("users").Count(&count)
	if count != 0 {
		t.Errorf("expected second database to be empty, found %d users", count)
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUserWithBudget(t, db, 100)
	if user.ID == "" {
		t.Fatal("user should have an ID")
	}
	testutil.AssertDecimal(t, testutil.ReloadUser(t, db, user.ID).CurrentBudget, "100")

	record := testutil.CreateTestSpending(t, db, user.ID, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 25, "FOOD", "")
	if record.ID == "" {
		t.Fatal("spending record should have an ID")
	}
	if n := testutil.CountSpending(t, db, user.ID); n != 1 {
		t.Errorf("expected 1 spending record, got %d", n)
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrRecordNotFound, "custom message")
	testutil.AssertAppError(t, err, "RECORD_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}

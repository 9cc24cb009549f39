package services

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"spendwise/internal/testutil"
)

func TestCreateUser(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("Alice", "alice@example.com", "password123")
		testutil.AssertNoError(t, err)

		if user.ID == "" {
			t.Fatal("expected user ID to be assigned")
		}
		if user.Name != "Alice" {
			t.Errorf("expected name Alice, got %s", user.Name)
		}
		if !user.CurrentBudget.IsZero() {
			t.Errorf("expected zero starting budget, got %s", user.CurrentBudget)
		}
		if user.JoinDate.IsZero() {
			t.Error("expected join date to be set")
		}
	})

	t.Run("email_taken", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("First", "dup@example.com", "password123")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateUser("Second", "dup@example.com", "password456")
		testutil.AssertAppError(t, err, "EMAIL_TAKEN")
	})

	t.Run("email_taken_ignores_case", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("First", "dup@example.com", "password123")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateUser("Second", "DUP@Example.com", "password456")
		testutil.AssertAppError(t, err, "EMAIL_TAKEN")
	})

	t.Run("missing_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("  ", "noname@example.com", "password123")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("empty_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("Bob", "test@example.com", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("password_is_hashed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("Hash", "hash@example.com", "mypassword")
		testutil.AssertNoError(t, err)

		if user.Password == "mypassword" {
			t.Error("password should be hashed, not stored as plaintext")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("mypassword")); err != nil {
			t.Error("password hash should be valid bcrypt")
		}
	})
}

// An insert that loses the race against another signup for the same email
// still reports EMAIL_TAKEN. The competing row is written from inside the
// create transaction, after the existence check has already passed.
func TestCreateUser_email_claimed_concurrently(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db)

	claimed := false
	err := db.Callback().Create().Before("gorm:create").Register("claim_email", func(tx *gorm.DB) {
		if claimed || tx.Statement.Table != "users" {
			return
		}
		claimed = true
		now := time.Now().UTC()
		tx.Session(&gorm.Session{NewDB: true}).Exec(
			"INSERT INTO users (id, name, email, password, current_budget, join_date, created_at, updated_at) VALUES (?, ?, ?, ?, 0, ?, ?, ?)",
			"0190a9b2-0000-7000-8000-00000000000a", "Other", "race@example.com", "x", now, now, now,
		)
	})
	testutil.AssertNoError(t, err)

	_, err = svc.CreateUser("Racer", "race@example.com", "password123")
	testutil.AssertAppError(t, err, "EMAIL_TAKEN")
}

func TestGetUserByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		created := testutil.CreateTestUser(t, db)
		user, err := svc.GetUserByID(created.ID)
		testutil.AssertNoError(t, err)

		if user.Email != created.Email {
			t.Errorf("expected email %s, got %s", created.Email, user.Email)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.GetUserByID("0190a9b2-0000-7000-8000-000000000000")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestAttemptLogin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		created, err := svc.CreateUser("Login", "login@example.com", "password123")
		testutil.AssertNoError(t, err)

		user, err := svc.AttemptLogin("Login@Example.com", "password123")
		testutil.AssertNoError(t, err)
		if user.ID != created.ID {
			t.Errorf("expected user %s, got %s", created.ID, user.ID)
		}
	})

	t.Run("wrong_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		testutil.CreateTestUserWithEmail(t, db, "fail@example.com")

		_, err := svc.AttemptLogin("fail@example.com", "wrongpassword")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("unknown_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.AttemptLogin("nobody@example.com", "password123")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})
}

func TestStoreActiveToken(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db)

	user := testutil.CreateTestUser(t, db)

	testutil.AssertNoError(t, svc.StoreActiveToken(user.ID, "first-token"))
	testutil.AssertNoError(t, svc.StoreActiveToken(user.ID, "second-token"))

	if got := testutil.ReloadUser(t, db, user.ID).ActiveToken; got != "second-token" {
		t.Errorf("expected latest token to be stored, got %q", got)
	}

	err := svc.StoreActiveToken("0190a9b2-0000-7000-8000-000000000000", "token")
	testutil.AssertAppError(t, err, "USER_NOT_FOUND")
}

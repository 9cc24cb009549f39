package services

import (
	"strings"
	"testing"

	"spendwise/internal/models"
	"spendwise/internal/testutil"
)

func TestAuditLog(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAuditService(db)
	user := testutil.CreateTestUser(t, db)

	svc.Log(user.ID, "CREATE_SPENDING", "spending", "rec-1", "127.0.0.1",
		map[string]interface{}{"price": "40"})
	svc.Log(user.ID, "LOGIN", "user", user.ID, "127.0.0.1", nil)

	var entries []models.AuditLog
	if err := db.Where("user_id = ?", user.ID).Order("id ASC").Find(&entries).Error; err != nil {
		t.Fatalf("failed to read audit log: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(entries))
	}
	if entries[0].Action != "CREATE_SPENDING" || !strings.Contains(entries[0].Changes, `"price":"40"`) {
		t.Errorf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Changes != "" {
		t.Errorf("expected empty changes for nil map, got %q", entries[1].Changes)
	}
}

package database

import (
	"path/filepath"
	"strings"
	"testing"

	"spendwise/internal/config"
	"spendwise/internal/logger"
)

func init() {
	logger.Init("test")
}

func TestNewConfig_rejects_unknown_driver(t *testing.T) {
	_, err := NewConfig(&config.Config{DBDriver: "mysql"})
	if err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestConfig_DSN(t *testing.T) {
	pg := &Config{Driver: DriverPostgres, Host: "db", Port: "5432", User: "u", Password: "p", DBName: "n", SSLMode: "disable"}
	if dsn := pg.DSN(); !strings.Contains(dsn, "host=db") || !strings.Contains(dsn, "dbname=n") {
		t.Errorf("unexpected postgres DSN: %s", dsn)
	}
	if url := pg.MigrationURL(); url != "postgres://u:p@db:5432/n?sslmode=disable" {
		t.Errorf("unexpected migration URL: %s", url)
	}

	lite := &Config{Driver: DriverSQLite, Path: "data.db"}
	if dsn := lite.DSN(); dsn != "data.db" {
		t.Errorf("expected sqlite path as DSN, got %s", dsn)
	}
}

func TestManager_sqlite_migrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spendwise.db")
	mgr, err := NewManager(&Config{Driver: DriverSQLite, Path: path})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	defer func() {
		if err := mgr.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	}()

	if err := mgr.Migrate(); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	for _, table := range []string{"users", "spending_records", "audit_logs"} {
		if !mgr.DB().Migrator().HasTable(table) {
			t.Errorf("expected table %q after migration", table)
		}
	}
}

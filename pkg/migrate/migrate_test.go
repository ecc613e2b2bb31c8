package migrate

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/angelmondragon/shopdash/pkg/db"
	"github.com/angelmondragon/shopdash/pkg/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestEmbeddedMigrationsAreValid(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestValidateFSRejectsBadNames(t *testing.T) {
	fsys := fstest.MapFS{
		"m/create.sql": {Data: []byte("-- +goose Up\n-- +goose Down\n")},
	}
	if err := ValidateFS(fsys, "m"); err == nil || !strings.Contains(err.Error(), "invalid migration filename") {
		t.Fatalf("expected filename error, got %v", err)
	}
}

func TestValidateFSRequiresDownSection(t *testing.T) {
	fsys := fstest.MapFS{
		"m/20260101000000_only_up.sql": {Data: []byte("-- +goose Up\nSELECT 1;\n")},
	}
	if err := ValidateFS(fsys, "m"); err == nil {
		t.Fatalf("expected missing down section error")
	}
}

func TestApplyCreatesClientStateTable(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := Apply(context.Background(), logger.Nop(), db.Wrap(conn, db.DriverSQLite)); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !conn.Migrator().HasTable("client_state") {
		t.Fatalf("expected client_state table to exist")
	}
}

// Package dbtest opens throwaway databases for tests.
package dbtest

import (
	"fmt"
	"testing"

	"yatube/internal/db"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Open returns a migrated, private in-memory SQLite database that is
// closed when the test ends.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := db.Open("sqlite", dsn, "silent")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return conn
}

package test

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/envelope-zero/budget-analytics/internal/models"
	"github.com/google/uuid"
)

// TmpFile returns the path of a new SQLite file in a temporary directory
// owned by t. The directory is removed when t finishes.
func TmpFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), fmt.Sprintf("budget-%s.db", uuid.NewString()))
}

// Connect points models.DB to an empty, migrated database for t and closes
// it when t finishes.
func Connect(t *testing.T) {
	t.Helper()

	err := models.Connect(TmpFile(t))
	if err != nil {
		t.Fatalf("database initialization failed: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, err := models.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
}

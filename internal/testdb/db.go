package testdb

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/intakelog/backend/internal/database"
)

var dbSeq atomic.Int64

// New returns an isolated in-memory database with the full schema applied.
// Each call gets its own database, so tests can run in parallel.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	// A named shared-cache database keeps the schema visible across pooled
	// connections while staying private to this test.
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, database.RunMigrations(db))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

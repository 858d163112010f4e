package service_test

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/theheadmen/coffeeloyalty/internal/dbconnector"
)

// newTestStorage поднимает sqlite в памяти со всей схемой.
func newTestStorage(t *testing.T) *dbconnector.DBConnector {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// одна in-memory база на все соединения пула
	sqlDB.SetMaxOpenConns(1)

	storage := dbconnector.NewDBConnector(db)
	require.NoError(t, storage.DBInitialize())
	return storage
}

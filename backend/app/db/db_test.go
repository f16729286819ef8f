package db

import (
	"testing"

	"smart-pantry/backend/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestConnectSQLiteMigrates(t *testing.T) {
	gdb, err := Connect(Config{Driver: DriverSQLite, Path: ":memory:", LogLevel: logger.Silent})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(gdb) })

	assert.True(t, gdb.Migrator().HasTable(&models.User{}))
	assert.True(t, gdb.Migrator().HasTable(&models.Item{}))
}

func TestConnectRejectsUnknownDriver(t *testing.T) {
	_, err := Connect(Config{Driver: "oracle"})
	assert.ErrorContains(t, err, "unsupported db driver")
}

func TestCloseNil(t *testing.T) {
	assert.NoError(t, Close(nil))
}

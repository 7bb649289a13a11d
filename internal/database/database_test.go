package database

import (
	"path/filepath"
	"testing"

	"github.com/bettyshin1213/hbd-public/internal/config"
	"github.com/bettyshin1213/hbd-public/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestConfig(t *testing.T, portfolio bool) *config.AppConfig {
	t.Helper()
	return &config.AppConfig{
		Env: "test",
		Database: config.DatabaseRuntimeConfig{
			Driver: config.DriverSQLite,
			DSN:    filepath.Join(t.TempDir(), "test.db"),
		},
		BirthdayUsername: "birthday-user",
		BirthdayPass:     "cake",
		PortfolioMode:    portfolio,
	}
}

func count(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestSeedPortfolioIsIdempotent(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t, true)
	db, err := Connect(cfg, true)
	require.NoError(t, err)

	require.NoError(t, Seed(db, cfg))
	require.NoError(t, Seed(db, cfg))

	assert.EqualValues(t, 1, count(t, db, &models.OwnerNoteModel{}))
	assert.EqualValues(t, 1, count(t, db, &models.MessageModel{}))
	assert.EqualValues(t, 1, count(t, db, &models.UserModel{}))

	var user models.UserModel
	require.NoError(t, db.First(&user).Error)
	assert.True(t, user.IsBirthday)
	assert.True(t, user.CheckPassword("cake"))
	assert.False(t, user.CheckPassword("pie"))
}

func TestSeedWithoutPortfolioLeavesContentEmpty(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t, false)
	db, err := Connect(cfg, true)
	require.NoError(t, err)
	require.NoError(t, Seed(db, cfg))

	assert.Zero(t, count(t, db, &models.OwnerNoteModel{}))
	assert.Zero(t, count(t, db, &models.MessageModel{}))
}

func TestSeedRotatesBirthdayPassword(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t, false)
	db, err := Connect(cfg, true)
	require.NoError(t, err)
	require.NoError(t, Seed(db, cfg))

	cfg.BirthdayPass = "pie"
	require.NoError(t, Seed(db, cfg))

	var user models.UserModel
	require.NoError(t, db.First(&user).Error)
	assert.True(t, user.CheckPassword("pie"))
	assert.False(t, user.CheckPassword("cake"))
	assert.EqualValues(t, 1, count(t, db, &models.UserModel{}))
}

func TestConnectRejectsUnknownDriver(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t, false)
	cfg.Database.Driver = "postgres"
	_, err := Connect(cfg, false)
	assert.Error(t, err)
}

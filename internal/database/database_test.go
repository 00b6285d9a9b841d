package database

import (
	"path/filepath"
	"testing"

	"studypal-backend/internal/config"
	"studypal-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLiteAndMigrate(t *testing.T) {
	cfg := &config.Config{DBDriver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "studypal.db")}

	db, err := Open(cfg)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	user := models.User{Username: "ada", Email: "ada@example.com"}
	require.NoError(t, db.Create(&user).Error)

	var got models.User
	require.NoError(t, db.First(&got, user.ID).Error)
	assert.Equal(t, "medium", got.DifficultyLevel)
	assert.Equal(t, models.DefaultAvatar, got.Avatar)
	assert.True(t, db.Migrator().HasTable(&models.StudySession{}))
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

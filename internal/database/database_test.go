package database

import (
	"testing"

	"configurator/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsMemory(t *testing.T) {
	assert.True(t, IsMemory(""))
	assert.True(t, IsMemory("memory://"))
	assert.False(t, IsMemory("sqlite://file::memory:"))
	assert.False(t, IsMemory("postgres://localhost/catalog"))
}

func TestNewSQLiteMigratesSofas(t *testing.T) {
	db, err := New("sqlite://file:dbtest?mode=memory&cache=shared", false)
	require.NoError(t, err)
	defer db.Close()

	assert.True(t, db.DB.Migrator().HasTable(&models.Sofa{}))
}

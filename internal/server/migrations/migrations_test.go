package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_Embedded(t *testing.T) {
	entries, err := fs.ReadDir(Migrations, ".")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	for _, e := range entries {
		b, err := fs.ReadFile(Migrations, e.Name())
		require.NoError(t, err)
		assert.Contains(t, string(b), "-- +goose Up", e.Name())
		assert.Contains(t, string(b), "-- +goose Down", e.Name())
	}
}

func TestMigrations_UniqueConstraints(t *testing.T) {
	users, err := fs.ReadFile(Migrations, "00001_create_users.sql")
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(users), "username      TEXT NOT NULL UNIQUE"))

	saved, err := fs.ReadFile(Migrations, "00002_create_saved_books.sql")
	require.NoError(t, err)
	assert.Contains(t, string(saved), "UNIQUE (user_id, title, author)")
}

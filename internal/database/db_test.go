package database

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/recipe-api/internal/database/migrations"
)

func TestDSN(t *testing.T) {
	assert.Equal(t,
		"app:pw@tcp(db:3306)/recipes?charset=utf8mb4&parseTime=true&loc=UTC",
		DSN("app", "pw", "db", "3306", "recipes"))
	assert.Equal(t,
		"root@tcp(localhost:3306)/recipes?charset=utf8mb4&parseTime=true&loc=UTC",
		DSN("root", "", "localhost", "3306", "recipes"))
}

func TestMigrationsEmbedded(t *testing.T) {
	names, err := fs.Glob(migrations.FS, "*.sql")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"00001_create_users.sql",
		"00002_create_auth_tokens.sql",
		"00003_create_tags.sql",
	}, names)
}

func TestMigrate_WrapsError(t *testing.T) {
	orig := gooseUp
	t.Cleanup(func() { gooseUp = orig })

	var gotDir string
	gooseUp = func(_ context.Context, _ *sql.DB, dir string) error {
		gotDir = dir
		return errors.New("boom")
	}

	err := Migrate(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrate: boom")
	assert.Equal(t, ".", gotDir)
}

package postgres

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"000002_add_aliases.up.sql",
		"000001_create_index_tables.down.sql",
		"000001_create_index_tables.up.sql",
		"000002_add_aliases.down.sql",
		"README.md",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o644))
	}

	up, err := MigrationFiles(dir, MigrateUp)
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_create_index_tables.up.sql", "000002_add_aliases.up.sql"}, up)

	down, err := MigrationFiles(dir, MigrateDown)
	require.NoError(t, err)
	assert.Equal(t, []string{"000002_add_aliases.down.sql", "000001_create_index_tables.down.sql"}, down)

	_, err = MigrationFiles(dir, "sideways")
	assert.Error(t, err)

	_, err = MigrationFiles(filepath.Join(dir, "missing"), MigrateUp)
	assert.Error(t, err)
}

func TestMigrationFiles_Repository(t *testing.T) {
	files, err := MigrationFiles("../../../migrations", MigrateUp)
	require.NoError(t, err)
	assert.Contains(t, files, "000001_create_index_tables.up.sql")
}

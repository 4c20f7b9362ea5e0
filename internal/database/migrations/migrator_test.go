package migrations

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSQLMigrations_RegistersSQLFilesOnly(t *testing.T) {
	fsys := fstest.MapFS{
		"9001_a.sql":   {Data: []byte("SELECT 1")},
		"9002_b.sql":   {Data: []byte("SELECT 2")},
		"README.md":    {Data: []byte("docs")},
		"nested/x.sql": {Data: []byte("SELECT 3")},
	}
	t.Cleanup(func() {
		mu.Lock()
		defer mu.Unlock()
		delete(migrations, "9001_a")
		delete(migrations, "9002_b")
	})

	require.NoError(t, LoadSQLMigrations(fsys))

	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, migrations, "9001_a")
	assert.Contains(t, migrations, "9002_b")
	assert.NotContains(t, migrations, "README")
	assert.NotContains(t, migrations, "x")
}

func TestEmbeddedMigrationsPresent(t *testing.T) {
	entries, err := sqlFiles.ReadDir(".")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(entries), 2)
}

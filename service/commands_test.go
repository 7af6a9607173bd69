package service

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"postlikes/app/config"
	"postlikes/app/models"
	"postlikes/app/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	configPath string
	dataDir    string
	backupDir  string
}

func setupTestEnv(t *testing.T) *testEnv {
	for _, k := range []string{"POSTLIKES_ADDR", "POSTLIKES_STORE", "POSTLIKES_DATA_DIR", "DATABASE_URL"} {
		t.Setenv(k, "")
	}

	tmpDir := t.TempDir()
	env := &testEnv{
		configPath: filepath.Join(tmpDir, "config.yaml"),
		dataDir:    filepath.Join(tmpDir, "badger"),
		backupDir:  filepath.Join(tmpDir, "backups"),
	}

	cfg := config.Default()
	cfg.Store.DataDir = env.dataDir
	cfg.Store.BackupDir = env.backupDir
	cfg.Log.Level = "error"
	require.NoError(t, cfg.Save(env.configPath))
	return env
}

// run executes the CLI with args and stdin and returns stdout.
func (e *testEnv) run(t *testing.T, stdin string, args ...string) (string, error) {
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", e.configPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func (e *testEnv) seedUser(t *testing.T, username string) {
	store, err := repositories.NewBadgerStore(e.dataDir, nil)
	require.NoError(t, err)
	defer store.Close()

	user := &models.User{Username: username, PasswordHash: "x"}
	require.NoError(t, store.Users().Create(context.Background(), user))
}

func (e *testEnv) hasUser(t *testing.T, username string) bool {
	store, err := repositories.NewBadgerStore(e.dataDir, nil)
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Users().GetByUsername(context.Background(), username)
	return err == nil
}

func TestVersionCommand(t *testing.T) {
	env := setupTestEnv(t)
	out, err := env.run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "postlikes version "+Version+"\n", out)
}

func TestUnknownCommand(t *testing.T) {
	env := setupTestEnv(t)
	_, err := env.run(t, "", "unknown")
	assert.Error(t, err)
}

func TestRestoreRequiresFile(t *testing.T) {
	env := setupTestEnv(t)
	_, err := env.run(t, "", "restore")
	assert.Error(t, err)
}

func TestMissingConfigFile(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), "init"})
	assert.Error(t, cmd.Execute())
}

func TestInitCommand(t *testing.T) {
	env := setupTestEnv(t)

	out, err := env.run(t, "", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Database initialized successfully")
	assert.DirExists(t, env.dataDir)

	out, err = env.run(t, "", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Database already exists")
}

func TestCleanCommand(t *testing.T) {
	env := setupTestEnv(t)

	t.Run("nothing to clean", func(t *testing.T) {
		out, err := env.run(t, "", "clean")
		require.NoError(t, err)
		assert.Contains(t, out, "Database is already clean")
	})

	_, err := env.run(t, "", "init")
	require.NoError(t, err)

	t.Run("cancelled", func(t *testing.T) {
		out, err := env.run(t, "n\n", "clean")
		require.NoError(t, err)
		assert.Contains(t, out, "Operation cancelled")
		assert.DirExists(t, env.dataDir)
	})

	t.Run("confirmed", func(t *testing.T) {
		out, err := env.run(t, "y\n", "clean")
		require.NoError(t, err)
		assert.Contains(t, out, "Database cleaned successfully")
		assert.NoDirExists(t, env.dataDir)
	})

	t.Run("yes flag", func(t *testing.T) {
		_, err := env.run(t, "", "init")
		require.NoError(t, err)

		out, err := env.run(t, "", "clean", "--yes")
		require.NoError(t, err)
		assert.Contains(t, out, "Database cleaned successfully")
		assert.NoDirExists(t, env.dataDir)
	})
}

func TestBackupAndRestore(t *testing.T) {
	env := setupTestEnv(t)

	t.Run("backup without database", func(t *testing.T) {
		out, err := env.run(t, "", "backup")
		require.NoError(t, err)
		assert.Contains(t, out, "No database exists to backup")
	})

	env.seedUser(t, "alice")

	backupFile := filepath.Join(env.backupDir, "manual.db")
	out, err := env.run(t, "", "backup", "--output", backupFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Database backed up successfully to "+backupFile)

	t.Run("default backup location", func(t *testing.T) {
		out, err := env.run(t, "", "backup")
		require.NoError(t, err)
		assert.Contains(t, out, env.backupDir)
	})

	t.Run("restore missing file", func(t *testing.T) {
		_, err := env.run(t, "", "restore", filepath.Join(env.backupDir, "missing.db"))
		assert.Error(t, err)
	})

	t.Run("restore empty file", func(t *testing.T) {
		empty := filepath.Join(env.backupDir, "empty.db")
		require.NoError(t, os.WriteFile(empty, nil, 0600))
		_, err := env.run(t, "", "restore", empty)
		assert.Error(t, err)
	})

	t.Run("restore cancelled", func(t *testing.T) {
		out, err := env.run(t, "n\n", "restore", backupFile)
		require.NoError(t, err)
		assert.Contains(t, out, "Operation cancelled")
	})

	t.Run("restore replaces database", func(t *testing.T) {
		_, err := env.run(t, "", "clean", "--yes")
		require.NoError(t, err)
		env.seedUser(t, "bob")

		out, err := env.run(t, "y\n", "restore", backupFile)
		require.NoError(t, err)
		assert.Contains(t, out, "Database restored successfully")

		assert.True(t, env.hasUser(t, "alice"))
		assert.False(t, env.hasUser(t, "bob"))
	})
}

func TestPostgresOnlyAndBadgerOnlyCommands(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.run(t, "", "migrate")
	assert.Error(t, err)

	t.Setenv("POSTLIKES_STORE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/unused")
	for _, args := range [][]string{{"clean", "--yes"}, {"backup"}} {
		_, err := env.run(t, "", args...)
		assert.ErrorIs(t, err, errBadgerOnly)
	}
}

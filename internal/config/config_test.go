package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdirForTest(t, t.TempDir())
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("WAHLFANG_STATE_DB", "")
	t.Setenv("WAHLFANG_LOGOUT_TIMEOUT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".config", "wahlfang", "state.db"), cfg.State.DatabasePath)
	assert.Equal(t, 10*time.Second, cfg.Logout.Timeout)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoad_FromEnvFile(t *testing.T) {
	dir := t.TempDir()
	chdirForTest(t, dir)
	t.Setenv("WAHLFANG_STATE_DB", "")
	t.Setenv("WAHLFANG_LOGOUT_TIMEOUT", "")
	os.Unsetenv("WAHLFANG_STATE_DB")
	os.Unsetenv("WAHLFANG_LOGOUT_TIMEOUT")

	env := "WAHLFANG_STATE_DB=/tmp/wahlfang-test.db\nWAHLFANG_LOGOUT_TIMEOUT=250ms\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/wahlfang-test.db", cfg.State.DatabasePath)
	assert.Equal(t, 250*time.Millisecond, cfg.Logout.Timeout)
}

func TestLoad_InvalidTimeout(t *testing.T) {
	chdirForTest(t, t.TempDir())

	for _, raw := range []string{"soon", "-1s", "0s"} {
		t.Setenv("WAHLFANG_LOGOUT_TIMEOUT", raw)
		_, err := Load()
		assert.Error(t, err, "timeout %q", raw)
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("TABLE_PREFIX", "")
	t.Setenv("EDITORIAL_POLICY", "")
	t.Setenv("LOG_MAX_FILES", "")
	t.Setenv("DEBUG", "")
	t.Setenv("SUPABASE_URL", "https://example.supabase.co")

	cfg := Load()

	assert.Equal(t, "dev", cfg.Environment)
	assert.Equal(t, "dev_", cfg.TablePrefix)
	assert.Equal(t, "strict", cfg.EditorialPolicy)
	assert.Equal(t, 10, cfg.LogMaxFiles)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "https://example.supabase.co/auth/v1/.well-known/jwks.json", cfg.SupabaseJWKSURL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "prod")
	t.Setenv("TABLE_PREFIX", "")
	t.Setenv("EDITORIAL_POLICY", "counts_only")
	t.Setenv("LOG_MAX_FILES", "3")
	t.Setenv("DEBUG", "")

	cfg := Load()

	assert.Equal(t, "prod_", cfg.TablePrefix)
	assert.Equal(t, "counts_only", cfg.EditorialPolicy)
	assert.Equal(t, 3, cfg.LogMaxFiles)
	assert.False(t, cfg.Debug)

	t.Setenv("TABLE_PREFIX", "custom_")
	t.Setenv("LOG_MAX_FILES", "-2")
	cfg = Load()
	assert.Equal(t, "custom_", cfg.TablePrefix)
	assert.Equal(t, 10, cfg.LogMaxFiles)
}

func TestSetupLogFile_Prunes(t *testing.T) {
	dir := t.TempDir()
	for _, stamp := range []string{"2024-01-01T00-00-00", "2024-01-02T00-00-00", "2024-01-03T00-00-00"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, logFilePrefix+stamp+".log"), nil, 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "unrelated.txt"), nil, 0o644))

	f, err := SetupLogFile(dir, 2)
	require.NoError(t, err)
	defer f.Close()

	logs, err := filepath.Glob(filepath.Join(dir, logFilePrefix+"*.log"))
	require.NoError(t, err)
	assert.Len(t, logs, 2)
	assert.Contains(t, logs, f.Name())
	assert.FileExists(t, filepath.Join(dir, "unrelated.txt"))
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"SERVER_PORT", "STORE_BACKEND", "MODEL_PATH", "MODEL_BOOTSTRAP",
		"RECONCILE_MAX_ATTEMPTS", "DB_NAME", "SERVER_READ_TIMEOUT", "SERVER_BODY_LIMIT_MB",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 16<<20, cfg.Server.BodyLimit)
	assert.Equal(t, BackendPostgres, cfg.Store.Backend)
	assert.Equal(t, "item_pairs", cfg.Database.DBName)
	assert.Equal(t, "models/similarity_model.json", cfg.Model.Path)
	assert.True(t, cfg.Model.Bootstrap)
	assert.Equal(t, 3, cfg.Reconcile.MaxAttempts)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORE_BACKEND", "MEMORY")
	t.Setenv("MODEL_BOOTSTRAP", "false")
	t.Setenv("RECONCILE_MAX_ATTEMPTS", "5")
	t.Setenv("SQLITE_PATH", "/tmp/pairs.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, BackendMemory, cfg.Store.Backend)
	assert.False(t, cfg.Model.Bootstrap)
	assert.Equal(t, 5, cfg.Reconcile.MaxAttempts)
	assert.Equal(t, "/tmp/pairs.db", cfg.SQLite.Path)
}

func TestLoadRejectsBadAttempts(t *testing.T) {
	t.Setenv("RECONCILE_MAX_ATTEMPTS", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Reconcile.MaxAttempts)
}

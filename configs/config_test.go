package configs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "surfstore", cfg.App.Name)
	assert.Equal(t, ":8080", cfg.App.HTTPAddr)
	assert.True(t, cfg.Store.Seed)
	assert.False(t, cfg.Store.StrictAvailability)
	assert.Equal(t, 5, cfg.Store.LowStockThreshold)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  http_addr: ":9090"
store:
  strict_availability: true
  low_stock_threshold: 3
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.App.HTTPAddr)
	assert.True(t, cfg.Store.StrictAvailability)
	assert.Equal(t, 3, cfg.Store.LowStockThreshold)
	assert.Equal(t, "surfstore", cfg.App.Name, "untouched keys keep defaults")
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("SURFSTORE_APP__HTTP_ADDR", ":7070")
	t.Setenv("SURFSTORE_STORE__STRICT_TRANSITIONS", "true")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.App.HTTPAddr)
	assert.True(t, cfg.Store.StrictTransitions)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.App.HTTPAddr = ""
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Store.LowStockThreshold = -1
	assert.Error(t, cfg.Validate())

	assert.NoError(t, Default().Validate())
}

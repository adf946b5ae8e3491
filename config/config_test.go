// SPDX-License-Identifier: MIT

package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dynprog/config"
	"github.com/katalvlaran/dynprog/scenario"
)

func TestDefault_Valid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1, cfg.Solver.Workers)
	assert.Equal(t, "plain", cfg.Trading.Variant)
	assert.Equal(t, scenario.DefaultGrid, cfg.Designer.Grid)
}

// TestLoad_FileThenEnv applies the file over defaults and the environment
// over the file.
func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dpctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
solver:
  workers: 2
trading:
  variant: linear
  horizon: 10
store:
  dsn: file:policies.db
`), 0o600))
	t.Setenv("DPCTL_SOLVER_WORKERS", "8")
	t.Setenv("DPCTL_DESIGNER_PRIOR", "0.25")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Solver.Workers)
	assert.Equal(t, "linear", cfg.Trading.Variant)
	assert.Equal(t, 10, cfg.Trading.Horizon)
	assert.Equal(t, "file:policies.db", cfg.Store.DSN)
	assert.Equal(t, 0.25, cfg.Designer.Prior)
	// Untouched sections keep their defaults.
	assert.Equal(t, scenario.DefaultCapacity, cfg.Inventory.Capacity)
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDecode_UnknownField(t *testing.T) {
	cfg := config.Default()
	err := config.Decode(strings.NewReader("solver:\n  threads: 4\n"), &cfg)
	assert.Error(t, err)

	require.NoError(t, config.Decode(strings.NewReader(""), &cfg))
	assert.Equal(t, config.Default(), cfg)
}

func TestParseEnv_BadValue(t *testing.T) {
	t.Setenv("DPCTL_SIMULATE_WALKS", "many")
	cfg := config.Default()
	assert.Error(t, config.ParseEnv(&cfg))
}

// TestValidate lists every problem at once.
func TestValidate(t *testing.T) {
	cfg := config.Default()
	cfg.Solver.Workers = 0
	cfg.Log.Level = "chatty"
	cfg.Trading.Variant = "momentum"
	cfg.Trading.MinPosition = 1
	cfg.Inventory.ReorderPoint = cfg.Inventory.Capacity
	cfg.Designer.Prior = 2

	err := cfg.Validate()
	require.ErrorIs(t, err, config.ErrInvalidConfig)
	for _, want := range []string{"solver.workers", "log.level", "momentum", "position range", "reorder_point", "designer.prior"} {
		assert.Contains(t, err.Error(), want)
	}
}

// TestScenarioOptions builds every scenario from the defaults.
func TestScenarioOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Trading.Variant = "short-holding"

	inv, err := scenario.Inventory(cfg.InventoryOptions()...)
	require.NoError(t, err)
	assert.Equal(t, cfg.Inventory.Horizon, inv.Horizon())

	_, err = scenario.InventoryChain(cfg.InventoryOptions()...)
	require.NoError(t, err)

	v, opts, err := cfg.TradingOptions()
	require.NoError(t, err)
	assert.Equal(t, scenario.ShortHolding, v)
	tr, err := scenario.Trading(v, opts...)
	require.NoError(t, err)
	assert.Equal(t, cfg.Trading.Levels, tr.Levels())

	d, err := scenario.Designer(cfg.DesignerOptions()...)
	require.NoError(t, err)
	assert.Equal(t, 600, d.Initial())
}

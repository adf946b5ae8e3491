// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dynprog/config"
)

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err = execute(context.Background(), append([]string{"--no-color"}, args...), &out, &errOut)
	return out.String(), errOut.String(), err
}

// small keeps the larger scenarios quick.
func small(t *testing.T) {
	t.Setenv("DPCTL_TRADING_HORIZON", "3")
	t.Setenv("DPCTL_TRADING_LEVELS", "3")
	t.Setenv("DPCTL_DESIGNER_GRID", "20")
}

func TestSolve_Inventory(t *testing.T) {
	out, _, err := run(t, "solve", "inventory", "-w", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "inventory  t=0  (7 states)")
	assert.Regexp(t, `(?m)^0\s+4\s+`, out)
	assert.Regexp(t, `(?m)^1\s+3\s+`, out)
	assert.Regexp(t, `(?m)^6\s+0\s+`, out)
}

func TestSolve_TradingLastStage(t *testing.T) {
	small(t)
	t.Setenv("DPCTL_TRADING_VARIANT", "linear")
	out, _, err := run(t, "solve", "trading", "--stage", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "trading/linear  t=2")
	assert.Regexp(t, `(?m)^\(3,0\)\s+-3\s+0\.000000$`, out)

	_, _, err = run(t, "solve", "trading", "--stage", "3")
	assert.ErrorContains(t, err, "stage 3 outside [0, 3)")
}

func TestSolve_BadInput(t *testing.T) {
	_, _, err := run(t, "solve", "roulette")
	assert.Error(t, err)

	_, _, err = run(t, "solve", "inventory", "--workers", "0")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestSimulate(t *testing.T) {
	out, _, err := run(t, "simulate", "--walks", "1000", "--seed", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "exact cost   23.1286")
	assert.Contains(t, out, "(1000 walks, seed 7)")
	assert.Contains(t, out, "agree")
	assert.NotContains(t, out, "disagree")
}

func TestValidate(t *testing.T) {
	small(t)
	for name, want := range map[string]string{
		"inventory": "inventory: 7 distributions ok",
		"trading":   "trading: 7 distributions ok",
		"designer":  "designer: 84 distributions ok",
	} {
		out, _, err := run(t, "validate", name)
		require.NoError(t, err, name)
		assert.Contains(t, out, want)
	}
}

func TestPlot(t *testing.T) {
	small(t)
	dir := t.TempDir()
	for _, name := range []string{"inventory", "trading", "designer"} {
		path := filepath.Join(dir, name+".html")
		out, _, err := run(t, "plot", name, "-o", path)
		require.NoError(t, err, name)
		assert.Contains(t, out, "wrote "+path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "<html")
	}
}

// TestStore_SolveShow saves a solve and reads it back.
func TestStore_SolveShow(t *testing.T) {
	small(t)
	_, _, err := run(t, "show")
	require.ErrorIs(t, err, errNoStore)

	t.Setenv("DPCTL_STORE_DSN", "file:"+filepath.Join(t.TempDir(), "runs.db"))
	out, _, err := run(t, "solve", "designer")
	require.NoError(t, err)
	m := regexp.MustCompile(`saved run ([0-9a-f-]{36})`).FindStringSubmatch(out)
	require.Len(t, m, 2)
	id := m[1]

	out, _, err = run(t, "show")
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "designer")

	out, _, err = run(t, "show", id, "--stage", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "T=3")
	assert.Regexp(t, `(?m)^2\s+0\s+3\s+0\.000000$`, out)
	assert.NotRegexp(t, `(?m)^1\s+`, out)

	_, _, err = run(t, "show", "not-a-uuid")
	assert.Error(t, err)
}

func TestTelemetry(t *testing.T) {
	t.Setenv("DPCTL_TELEMETRY_METRICS", "true")
	t.Setenv("DPCTL_TELEMETRY_TRACING", "true")
	t.Setenv("DPCTL_INVENTORY_HORIZON", "2")
	_, stderr, err := run(t, "solve", "inventory")
	require.NoError(t, err)
	assert.Contains(t, stderr, "# dpctl metrics")
	assert.Contains(t, stderr, `dynprog_induction_stages_total{result="ok",solver="inventory"} 2`)
	assert.Contains(t, stderr, "induction.stage")
}

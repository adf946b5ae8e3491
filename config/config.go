// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/dynprog/prob"
	"github.com/katalvlaran/dynprog/scenario"
)

// EnvPrefix prefixes every environment override, e.g. DPCTL_SOLVER_WORKERS.
const EnvPrefix = "DPCTL_"

// ErrInvalidConfig is returned by Validate and Load for out-of-range values.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the dpctl configuration. Values come from Default, then the
// YAML file, then DPCTL_* environment variables.
type Config struct {
	Solver    SolverConfig    `yaml:"solver" envPrefix:"SOLVER_"`
	Log       LogConfig       `yaml:"log" envPrefix:"LOG_"`
	Telemetry TelemetryConfig `yaml:"telemetry" envPrefix:"TELEMETRY_"`
	Store     StoreConfig     `yaml:"store" envPrefix:"STORE_"`
	Simulate  SimulateConfig  `yaml:"simulate" envPrefix:"SIMULATE_"`
	Inventory InventoryConfig `yaml:"inventory" envPrefix:"INVENTORY_"`
	Trading   TradingConfig   `yaml:"trading" envPrefix:"TRADING_"`
	Designer  DesignerConfig  `yaml:"designer" envPrefix:"DESIGNER_"`
}

// SolverConfig tunes backward induction.
type SolverConfig struct {
	Workers   int     `yaml:"workers" env:"WORKERS"`
	Tolerance float64 `yaml:"tolerance" env:"TOLERANCE"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`
}

// TelemetryConfig toggles the metrics dump and span export.
type TelemetryConfig struct {
	Metrics bool `yaml:"metrics" env:"METRICS"`
	Tracing bool `yaml:"tracing" env:"TRACING"`
}

// StoreConfig locates the policy store. An empty DSN disables it.
type StoreConfig struct {
	DSN string `yaml:"dsn" env:"DSN"`
}

// SimulateConfig drives Monte-Carlo walks.
type SimulateConfig struct {
	Walks int   `yaml:"walks" env:"WALKS"`
	Seed  int64 `yaml:"seed" env:"SEED"`
}

// InventoryConfig parameterises the stock scenarios.
type InventoryConfig struct {
	Horizon      int     `yaml:"horizon" env:"HORIZON"`
	Capacity     int     `yaml:"capacity" env:"CAPACITY"`
	ReorderPoint int     `yaml:"reorder_point" env:"REORDER_POINT"`
	HoldingCost  float64 `yaml:"holding_cost" env:"HOLDING_COST"`
	OrderCost    float64 `yaml:"order_cost" env:"ORDER_COST"`
}

// TradingConfig parameterises the trading scenario.
type TradingConfig struct {
	Horizon     int     `yaml:"horizon" env:"HORIZON"`
	Variant     string  `yaml:"variant" env:"VARIANT"`
	MinPosition int     `yaml:"min_position" env:"MIN_POSITION"`
	MaxPosition int     `yaml:"max_position" env:"MAX_POSITION"`
	Gamma       float64 `yaml:"gamma" env:"GAMMA"`
	Levels      int     `yaml:"levels" env:"LEVELS"`
}

// DesignerConfig parameterises the query designer.
type DesignerConfig struct {
	Horizon int     `yaml:"horizon" env:"HORIZON"`
	Grid    int     `yaml:"grid" env:"GRID"`
	Prior   float64 `yaml:"prior" env:"PRIOR"`
	Penalty float64 `yaml:"penalty" env:"PENALTY"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Solver:    SolverConfig{Workers: 1, Tolerance: prob.DefaultTolerance},
		Log:       LogConfig{Level: "info", Format: "text"},
		Store:     StoreConfig{},
		Simulate:  SimulateConfig{Walks: 1000, Seed: 1},
		Inventory: InventoryConfig{
			Horizon:      scenario.DefaultInventoryHorizon,
			Capacity:     scenario.DefaultCapacity,
			ReorderPoint: scenario.DefaultReorderPoint,
			HoldingCost:  scenario.DefaultHoldingCost,
			OrderCost:    scenario.DefaultOrderCost,
		},
		Trading: TradingConfig{
			Horizon:     scenario.DefaultTradingHorizon,
			Variant:     scenario.Plain.String(),
			MinPosition: scenario.DefaultMinPosition,
			MaxPosition: scenario.DefaultMaxPosition,
			Gamma:       scenario.DefaultGamma,
			Levels:      scenario.DefaultPriceLevels,
		},
		Designer: DesignerConfig{
			Horizon: scenario.DefaultDesignerHorizon,
			Grid:    scenario.DefaultGrid,
			Prior:   scenario.DefaultPrior,
			Penalty: scenario.DefaultPenalty,
		},
	}
}

// Load builds a Config from the defaults, the YAML file at path (skipped
// when path is empty) and the environment, then validates it.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err = Decode(bytes.NewReader(data), &cfg); err != nil {
			return cfg, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Decode overlays YAML from r onto cfg. Unknown keys are rejected; an
// empty document leaves cfg unchanged.
func Decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode yaml: %w", err)
	}

	return nil
}

// ParseEnv overlays DPCTL_* variables onto cfg. Unset variables leave the
// current values alone.
func ParseEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}

	return nil
}

// Validate reports every out-of-range value in one error wrapping
// ErrInvalidConfig.
func (c Config) Validate() error {
	var problems []string
	check := func(ok bool, format string, args ...any) {
		if !ok {
			problems = append(problems, fmt.Sprintf(format, args...))
		}
	}

	check(c.Solver.Workers >= 1, "solver.workers must be >= 1, got %d", c.Solver.Workers)
	check(c.Solver.Tolerance > 0, "solver.tolerance must be > 0, got %v", c.Solver.Tolerance)
	var level slog.Level
	check(level.UnmarshalText([]byte(c.Log.Level)) == nil, "log.level %q is unknown", c.Log.Level)
	check(c.Log.Format == "text" || c.Log.Format == "json", "log.format must be text or json, got %q", c.Log.Format)
	check(c.Simulate.Walks >= 1, "simulate.walks must be >= 1, got %d", c.Simulate.Walks)

	inv := c.Inventory
	check(inv.Horizon >= 1, "inventory.horizon must be >= 1, got %d", inv.Horizon)
	check(inv.Capacity >= 1, "inventory.capacity must be >= 1, got %d", inv.Capacity)
	check(inv.ReorderPoint >= 0 && inv.ReorderPoint < inv.Capacity,
		"inventory.reorder_point must be in [0, capacity), got %d", inv.ReorderPoint)
	check(inv.HoldingCost >= 0 && inv.OrderCost >= 0, "inventory costs must be >= 0")

	tr := c.Trading
	check(tr.Horizon >= 1, "trading.horizon must be >= 1, got %d", tr.Horizon)
	_, err := scenario.ParseVariant(tr.Variant)
	check(err == nil, "trading.variant %q is unknown", tr.Variant)
	check(tr.MinPosition <= 0 && tr.MaxPosition >= 0,
		"trading position range [%d, %d] must contain 0", tr.MinPosition, tr.MaxPosition)
	check(tr.Gamma > 0, "trading.gamma must be > 0, got %v", tr.Gamma)
	check(tr.Levels >= 1, "trading.levels must be >= 1, got %d", tr.Levels)

	d := c.Designer
	check(d.Horizon >= 1, "designer.horizon must be >= 1, got %d", d.Horizon)
	check(d.Grid >= 1, "designer.grid must be >= 1, got %d", d.Grid)
	check(d.Prior >= 0 && d.Prior <= 1, "designer.prior must be in [0, 1], got %v", d.Prior)
	check(d.Penalty >= 0, "designer.penalty must be >= 0, got %v", d.Penalty)

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}

	return nil
}

// InventoryOptions converts the inventory section into scenario options.
// Call Validate first; the options panic on out-of-range values.
func (c Config) InventoryOptions() []scenario.Option {
	inv := c.Inventory
	return []scenario.Option{
		scenario.WithHorizon(inv.Horizon),
		scenario.WithCapacity(inv.Capacity),
		scenario.WithReorderPoint(inv.ReorderPoint),
		scenario.WithCosts(inv.HoldingCost, inv.OrderCost),
	}
}

// TradingOptions converts the trading section into a variant and options.
func (c Config) TradingOptions() (scenario.Variant, []scenario.Option, error) {
	tr := c.Trading
	v, err := scenario.ParseVariant(tr.Variant)
	if err != nil {
		return 0, nil, err
	}

	return v, []scenario.Option{
		scenario.WithHorizon(tr.Horizon),
		scenario.WithPositionRange(tr.MinPosition, tr.MaxPosition),
		scenario.WithPriceGrid(tr.Gamma, tr.Levels),
	}, nil
}

// DesignerOptions converts the designer section into scenario options.
func (c Config) DesignerOptions() []scenario.Option {
	d := c.Designer
	return []scenario.Option{
		scenario.WithHorizon(d.Horizon),
		scenario.WithGrid(d.Grid),
		scenario.WithPrior(d.Prior),
		scenario.WithPenalty(d.Penalty),
	}
}

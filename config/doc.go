// SPDX-License-Identifier: MIT

// Package config loads the dpctl configuration: built-in defaults, then an
// optional YAML file, then DPCTL_* environment variables (nested sections
// join with an underscore, e.g. DPCTL_TRADING_VARIANT). Validate rejects
// values the scenario options would panic on.
package config

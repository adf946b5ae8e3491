// SPDX-License-Identifier: MIT

// Package plot renders solved policies as standalone HTML pages with
// go-echarts: a 3-D scatter of one stage (Stage3D) and line charts of
// per-stage values (Series, ValueSeries).
package plot

// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/dynprog/plot"
	"github.com/katalvlaran/dynprog/policy"
	"github.com/katalvlaran/dynprog/scenario"
)

func newPlotCmd(a *app) *cobra.Command {
	var (
		output string
		stage  int
	)
	cmd := &cobra.Command{
		Use:   "plot {inventory|trading|designer}",
		Short: "Render a solved scenario as an HTML chart",
		Long: "inventory plots the value of every stock level across stages; " +
			"trading and designer plot one stage as a 3-D scatter.",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: scenarioNames,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if output == "" {
				output = args[0] + ".html"
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := f.Close(); err == nil {
					err = cerr
				}
			}()

			ctx := cmd.Context()
			switch args[0] {
			case scenarioInventory:
				err = plotInventory(ctx, a, f)
			case scenarioTrading:
				err = plotTrading(ctx, a, f, stage)
			default:
				err = plotDesigner(ctx, a, f, stage)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)

			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <scenario>.html)")
	cmd.Flags().IntVarP(&stage, "stage", "t", 0, "stage to plot (trading, designer)")

	return cmd
}

func plotInventory(ctx context.Context, a *app, w io.Writer) error {
	m, err := scenario.Inventory(a.cfg.InventoryOptions()...)
	if err != nil {
		return err
	}
	tbl, err := solve(ctx, a, scenarioInventory, m.Problem())
	if err != nil {
		return err
	}
	lines := make([]plot.Line, 0, len(m.Levels()))
	for _, x := range m.Levels() {
		lines = append(lines, plot.ValueSeries(fmt.Sprintf("stock %d", x), tbl, x))
	}

	return plot.Series(w, "inventory cost-to-go", "stage", lines...)
}

func plotTrading(ctx context.Context, a *app, w io.Writer, t int) error {
	m, err := a.trading()
	if err != nil {
		return err
	}
	name := scenarioTrading + "/" + m.Variant().String()
	tbl, err := solve(ctx, a, name, m.Problem())
	if err != nil {
		return err
	}
	s, err := stageOf(tbl, t)
	if err != nil {
		return err
	}

	return plot.Stage3D(w, name, plot.Axes{X: "quantity", Y: "price", Z: "action"}, s,
		func(x scenario.Position, d policy.Decision[int]) (plot.Point, bool) {
			return plot.Point{X: float64(x.Q), Y: m.Price(x.Level), Z: float64(d.Action)}, true
		})
}

func plotDesigner(ctx context.Context, a *app, w io.Writer, t int) error {
	m, err := scenario.Designer(a.cfg.DesignerOptions()...)
	if err != nil {
		return err
	}
	tbl, err := solve(ctx, a, scenarioDesigner, m.Problem())
	if err != nil {
		return err
	}
	s, err := stageOf(tbl, t)
	if err != nil {
		return err
	}

	return plot.Stage3D(w, scenarioDesigner, plot.Axes{X: "belief", Y: "test", Z: "cost"}, s,
		func(n int, d policy.Decision[int]) (plot.Point, bool) {
			return plot.Point{X: float64(n), Y: float64(d.Action), Z: d.Value}, true
		})
}

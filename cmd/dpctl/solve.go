// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/dynprog/mdp"
	"github.com/katalvlaran/dynprog/policy"
	"github.com/katalvlaran/dynprog/policystore"
	"github.com/katalvlaran/dynprog/scenario"
)

func newSolveCmd(a *app) *cobra.Command {
	var stage int
	cmd := &cobra.Command{
		Use:       "solve {inventory|trading|designer}",
		Short:     "Solve a scenario and print one stage of the optimal policy",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: scenarioNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			switch args[0] {
			case scenarioInventory:
				m, err := scenario.Inventory(a.cfg.InventoryOptions()...)
				if err != nil {
					return err
				}
				return solveAndReport(ctx, a, cmd, scenarioInventory, m.Problem(), stage)
			case scenarioTrading:
				m, err := a.trading()
				if err != nil {
					return err
				}
				return solveAndReport(ctx, a, cmd, scenarioTrading+"/"+m.Variant().String(), m.Problem(), stage)
			default:
				m, err := scenario.Designer(a.cfg.DesignerOptions()...)
				if err != nil {
					return err
				}
				return solveAndReport(ctx, a, cmd, scenarioDesigner, m.Problem(), stage)
			}
		},
	}
	cmd.Flags().IntVarP(&stage, "stage", "t", 0, "stage to print")

	return cmd
}

func (a *app) trading() (*scenario.TradingModel, error) {
	v, opts, err := a.cfg.TradingOptions()
	if err != nil {
		return nil, err
	}
	return scenario.Trading(v, opts...)
}

// solve runs p with the app's solver options and tolerance.
func solve[S comparable, A any, W comparable](ctx context.Context, a *app, name string, p mdp.Problem[S, A, W]) (*policy.Table[S, A], error) {
	p.Tolerance = a.cfg.Solver.Tolerance
	tbl, err := mdp.Solve(p, a.solverOptions(ctx, name)...)
	if err != nil {
		return nil, fmt.Errorf("solve %s: %w", name, err)
	}
	a.logger.Info("solved", slog.String("scenario", name), slog.Int("horizon", tbl.Horizon()))

	return tbl, nil
}

func stageOf[S comparable, A any](tbl *policy.Table[S, A], t int) (*policy.Stage[S, A], error) {
	s, ok := tbl.Stage(t)
	if !ok {
		return nil, fmt.Errorf("stage %d outside [0, %d)", t, tbl.Horizon())
	}
	return s, nil
}

// solveAndReport solves p, prints stage t and stores the table when a
// store is configured.
func solveAndReport[S comparable, A any, W comparable](ctx context.Context, a *app, cmd *cobra.Command, name string, p mdp.Problem[S, A, W], t int) error {
	tbl, err := solve(ctx, a, name, p)
	if err != nil {
		return err
	}
	s, err := stageOf(tbl, t)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	printStage(out, a.au, name, s)

	store, err := a.openStore()
	if err != nil || store == nil {
		return err
	}
	run, err := policystore.Save(ctx, store, name, tbl)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "saved run %s\n", run.ID)

	return nil
}

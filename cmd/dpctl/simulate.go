// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/dynprog/markov"
	"github.com/katalvlaran/dynprog/scenario"
)

// agreementSigmas bounds |exact − estimate| in standard errors.
const agreementSigmas = 5

func newSimulateCmd(a *app) *cobra.Command {
	var (
		walks int
		seed  int64
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Compare the inventory chain's exact expected cost with a Monte-Carlo estimate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("walks") {
				a.cfg.Simulate.Walks = walks
			}
			if cmd.Flags().Changed("seed") {
				a.cfg.Simulate.Seed = seed
			}
			ch, err := scenario.InventoryChain(a.cfg.InventoryOptions()...)
			if err != nil {
				return err
			}

			var exact float64
			for _, j := range markov.ExpectedCosts(ch.Initial, ch.Model, ch.Horizon, ch.Cost) {
				exact = j
			}
			est, err := markov.EstimateCost(cmd.Context(), ch.Initial, ch.Model, ch.Horizon, ch.Cost, markov.EstimateConfig{
				Walks:   a.cfg.Simulate.Walks,
				Seed:    a.cfg.Simulate.Seed,
				Workers: a.cfg.Solver.Workers,
			})
			if err != nil {
				return err
			}
			mean, err := est.Mean()
			if err != nil {
				return err
			}
			se, err := est.StdErr()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "exact cost   %.4f\n", exact)
			fmt.Fprintf(out, "monte carlo  %.4f ± %.4f (%d walks, seed %d)\n", mean, se, est.Count(), a.cfg.Simulate.Seed)
			if math.Abs(mean-exact) <= agreementSigmas*se {
				fmt.Fprintln(out, a.au.Green("agree"))
			} else {
				fmt.Fprintln(out, a.au.Red(fmt.Sprintf("disagree by %.1f standard errors", math.Abs(mean-exact)/se)))
			}

			return nil
		},
	}
	cmd.Flags().IntVarP(&walks, "walks", "n", 0, "number of walks (overrides simulate.walks)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "RNG seed (overrides simulate.seed)")

	return cmd
}

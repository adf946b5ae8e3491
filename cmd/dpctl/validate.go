// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/dynprog/scenario"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "validate {inventory|trading|designer}",
		Short:     "Check every transition distribution of a scenario",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: scenarioNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			tol := a.cfg.Solver.Tolerance
			n := 0
			switch args[0] {
			case scenarioInventory:
				ch, err := scenario.InventoryChain(a.cfg.InventoryOptions()...)
				if err != nil {
					return err
				}
				if err = ch.Model.Validate(tol); err != nil {
					return err
				}
				n = len(ch.Model)
			case scenarioTrading:
				m, err := a.trading()
				if err != nil {
					return err
				}
				for k := -m.Levels(); k <= m.Levels(); k++ {
					if err = m.Moves(k).Validate(tol); err != nil {
						return fmt.Errorf("price level %d: %w", k, err)
					}
					n++
				}
			default:
				m, err := scenario.Designer(a.cfg.DesignerOptions()...)
				if err != nil {
					return err
				}
				for x := 0; x <= m.Grid(); x++ {
					for k := range m.Tests() {
						if err = m.Transition(x, k).Validate(tol); err != nil {
							return fmt.Errorf("belief %d test %d: %w", x, k, err)
						}
						n++
					}
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d distributions %s\n", args[0], n, a.au.Green("ok"))

			return nil
		},
	}
}

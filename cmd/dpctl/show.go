// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var errNoStore = errors.New("no policy store configured (set store.dsn or DPCTL_STORE_DSN)")

func newShowCmd(a *app) *cobra.Command {
	var stage int
	cmd := &cobra.Command{
		Use:   "show [run-id]",
		Short: "List stored runs, or print the decisions of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			if store == nil {
				return errNoStore
			}
			ctx, out := cmd.Context(), cmd.OutOrStdout()

			if len(args) == 0 {
				runs, err := store.List(ctx)
				if err != nil {
					return err
				}
				for _, run := range runs {
					fmt.Fprintf(out, "%s  %-24s T=%-4d %s\n",
						run.ID, run.Scenario, run.Horizon, run.Created.Format("2006-01-02 15:04:05"))
				}
				return nil
			}

			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("run id %q: %w", args[0], err)
			}
			run, entries, err := store.Load(ctx, id)
			if err != nil {
				return err
			}
			printEntries(out, a.au, run, entries, stage)

			return nil
		},
	}
	cmd.Flags().IntVarP(&stage, "stage", "t", -1, "only print this stage (-1 prints all)")

	return cmd
}

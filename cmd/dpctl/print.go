// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/logrusorgru/aurora"

	"github.com/katalvlaran/dynprog/policy"
	"github.com/katalvlaran/dynprog/policystore"
)

// printStage writes one row per state: state, action, value. Infeasible
// states print their value in red.
func printStage[S comparable, A any](w io.Writer, au aurora.Aurora, title string, s *policy.Stage[S, A]) {
	fmt.Fprintf(w, "%s\n", au.Bold(fmt.Sprintf("%s  t=%d  (%d states)", title, s.T(), s.Len())))
	fmt.Fprintf(w, "%-12s %-8s %s\n", "state", "action", "value")
	for x, d := range s.All() {
		fmt.Fprintf(w, "%-12v %-8s %s\n", x, au.Cyan(fmt.Sprint(d.Action)), value(au, d.Value))
	}
}

// printEntries writes stored entries, optionally restricted to one stage.
func printEntries(w io.Writer, au aurora.Aurora, run policystore.Run, entries []policystore.Entry, stage int) {
	fmt.Fprintf(w, "%s\n", au.Bold(fmt.Sprintf("run %s  %s  T=%d  %s",
		run.ID, run.Scenario, run.Horizon, run.Created.Format("2006-01-02 15:04:05"))))
	fmt.Fprintf(w, "%-6s %-12s %-8s %s\n", "stage", "state", "action", "value")
	for _, e := range entries {
		if stage >= 0 && e.Stage != stage {
			continue
		}
		fmt.Fprintf(w, "%-6d %-12s %-8s %s\n", e.Stage, e.State, au.Cyan(e.Action), value(au, e.Value))
	}
}

func value(au aurora.Aurora, v float64) aurora.Value {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return au.Red(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return au.Green(strconv.FormatFloat(v, 'f', 6, 64))
}

// SPDX-License-Identifier: MIT

package scenario_test

import (
	"fmt"

	"github.com/katalvlaran/dynprog/scenario"
)

// ExampleDesigner shows the last decision at an even belief.
func ExampleDesigner() {
	m, err := scenario.Designer(scenario.WithHorizon(1))
	if err != nil {
		panic(err)
	}
	tbl, err := m.Solve()
	if err != nil {
		panic(err)
	}
	d, _ := tbl.Decision(0, m.Grid()/2)
	fmt.Printf("test %d, expected cost %.2f\n", d.Action, d.Value)
	// Output: test 2, expected cost 12.00
}

// ExampleParseVariant lists the trading cost models.
func ExampleParseVariant() {
	for _, v := range scenario.Variants() {
		fmt.Println(v)
	}
	v, _ := scenario.ParseVariant("linear")
	fmt.Println(v == scenario.Linear)
	// Output:
	// plain
	// short-holding
	// linear
	// short-nonlinear
	// true
}

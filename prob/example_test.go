// SPDX-License-Identifier: MIT

package prob_test

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/dynprog/prob"
)

// ExampleCumulative shows the canonical enumeration order driving the
// inverse-transform lookup.
func ExampleCumulative() {
	demand := prob.FromMap(map[int]float64{2: 0.1, 0: 0.7, 1: 0.2})
	c, _ := prob.Cumulative(demand)

	for _, u := range []float64{0.05, 0.75, 0.95} {
		fmt.Printf("u=%.2f -> %d\n", u, c.Pick(u))
	}
	// Output:
	// u=0.05 -> 0
	// u=0.75 -> 1
	// u=0.95 -> 2
}

// ExampleTotalVariation compares two demand models.
func ExampleTotalVariation() {
	a := prob.FromMap(map[int]float64{0: 0.7, 1: 0.2, 2: 0.1})
	b := prob.FromMap(map[int]float64{0: 0.5, 1: 0.5})

	fmt.Printf("tv=%.2f\n", prob.TotalVariation(a, b))
	// Output:
	// tv=0.30
}

// ExampleMonteCarlo averages squared demand over a fixed list of outcomes.
func ExampleMonteCarlo() {
	m, err := prob.MonteCarlo(slices.Values([]int{0, 1, 2, 1}), func(x int) float64 {
		return float64(x * x)
	})
	fmt.Println(m, err)

	_, err = prob.MonteCarlo(slices.Values([]int{}), func(int) float64 { return 0 })
	fmt.Println(err)
	// Output:
	// 1.5 <nil>
	// prob: empty sample
}

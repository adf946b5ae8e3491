// SPDX-License-Identifier: MIT

// Package scenario ships ready-made decision problems built on mdp and
// markov, configured through functional options.
//
//   - Inventory:      single-item stock control with random demand.
//   - InventoryChain: the same store under a fixed refill policy, as a
//     Markov chain with stage cost.
//   - Trading:        executing a position on a discrete price grid, in four
//     cost variants (Plain, ShortHolding, Linear, ShortNonLinear).
//   - Designer:       choosing noisy binary tests to classify a hidden
//     truth, with a misclassification penalty after the last test.
//
// Options that are nonsense on their own (WithHorizon(0), WithPrior(2), ...)
// panic when constructed. Constructors return ErrBadParameter, wrapped with
// the method token (MethodInventory, MethodTrading, ...), when otherwise
// valid options do not fit together.
package scenario

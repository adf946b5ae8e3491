// SPDX-License-Identifier: MIT

package scenario

// Method tokens prefix every constructor error.
const (
	MethodInventory      = "Inventory"
	MethodInventoryChain = "InventoryChain"
	MethodTrading        = "Trading"
	MethodDesigner       = "Designer"
)

// Inventory defaults: a six-unit store with demand {0:.7, 1:.2, 2:.1}.
const (
	DefaultInventoryHorizon = 50
	DefaultCapacity         = 6
	DefaultReorderPoint     = 1
	DefaultHoldingCost      = 0.1
	DefaultOrderCost        = 1.0
)

// Trading defaults.
const (
	DefaultTradingHorizon = 25
	DefaultMinPosition    = -5
	DefaultMaxPosition    = 15
	DefaultGamma          = 0.005
	DefaultPriceLevels    = 20
)

// Trading fee constants used by the cost variants.
const (
	shortHoldingFee   = 0.005
	linearTradeFee    = 0.005
	shortNonLinearFee = 0.0001
	nonLinearExponent = 1.5
)

// Price-move probabilities are clamped into [minMove, maxMove].
const (
	baseMove = 0.4
	minMove  = 0.01
	maxMove  = 0.98
)

// Designer defaults.
const (
	DefaultDesignerHorizon = 3
	DefaultGrid            = 1000
	DefaultPrior           = 0.6
	DefaultPenalty         = 100.0
)

// posteriorEpsilon absorbs rounding when a posterior lands on a grid point.
const posteriorEpsilon = 1e-9

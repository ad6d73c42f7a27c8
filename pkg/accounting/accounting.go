// Package accounting computes margin, leverage, liquidation and exposure
// metrics for leveraged Tracer positions.
//
// All functions are pure and never fail. Undefined results are reported
// through sentinels: Leverage returns -1 when there is no margin, TotalMargin
// clamps at zero, and Withdrawable goes negative when an account is below its
// minimum margin.
package accounting

import "github.com/shopspring/decimal"

const (
	// DefaultLiquidationGasCost is the protocol's gas reserve for one liquidation, in quote units
	DefaultLiquidationGasCost = 25

	// Minimum margin reserves six liquidation gas costs
	minimumMarginGasMultiple = 6
	// A liquidation only pays once the account is one gas cost below minimum margin
	profitableLiquidationGasMultiple = 5
)

var (
	one = decimal.NewFromInt(1)

	// UndefinedLeverage is returned by Leverage for an account with no margin
	UndefinedLeverage = decimal.NewFromInt(-1)
)

// Calculator holds the protocol constants that gas-dependent formulas need
type Calculator struct {
	LiquidationGasCost decimal.Decimal
}

// Default uses DefaultLiquidationGasCost
var Default = NewCalculator(decimal.NewFromInt(DefaultLiquidationGasCost))

// NewCalculator returns a Calculator with a custom liquidation gas cost
func NewCalculator(liquidationGasCost decimal.Decimal) Calculator {
	return Calculator{LiquidationGasCost: liquidationGasCost}
}

// NotionalValue returns |base| × price
func NotionalValue(base, price decimal.Decimal) decimal.Decimal {
	return base.Abs().Mul(price)
}

// equity is quote + base × price before clamping
func equity(quote, base, price decimal.Decimal) decimal.Decimal {
	return quote.Add(base.Mul(price))
}

// TotalMargin returns quote + base × price, clamped at zero
func TotalMargin(quote, base, price decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, equity(quote, base, price))
}

// Borrowed returns the part of the position's notional value financed by the
// protocol. For a long this is the quote debt; for a short it is the notional
// value less the account's equity. Never negative.
func Borrowed(quote, base, price decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, NotionalValue(base, price).Sub(equity(quote, base, price)))
}

// Leverage returns notional value / total margin, or -1 if total margin is zero
func Leverage(quote, base, price decimal.Decimal) decimal.Decimal {
	margin := TotalMargin(quote, base, price)
	if margin.IsZero() {
		return UndefinedLeverage
	}
	return NotionalValue(base, price).Div(margin)
}

// MinimumMargin returns notional / maxLeverage plus six liquidation gas costs.
// A non-positive maxLeverage is treated as 1x.
func (c Calculator) MinimumMargin(quote, base, price, maxLeverage decimal.Decimal) decimal.Decimal {
	if !maxLeverage.IsPositive() {
		maxLeverage = one
	}
	return NotionalValue(base, price).Div(maxLeverage).Add(c.gasReserve(minimumMarginGasMultiple))
}

// Withdrawable returns total margin minus minimum margin. Negative means the
// account is already below minimum margin.
func (c Calculator) Withdrawable(quote, base, price, maxLeverage decimal.Decimal) decimal.Decimal {
	return TotalMargin(quote, base, price).Sub(c.MinimumMargin(quote, base, price, maxLeverage))
}

// LiquidationPrice returns the mark price at which total margin equals
// minimum margin. Zero for a flat position, or when no positive price
// would liquidate the account.
func (c Calculator) LiquidationPrice(quote, base, price, maxLeverage decimal.Decimal) decimal.Decimal {
	return c.solvePrice(quote, base, maxLeverage, c.gasReserve(minimumMarginGasMultiple))
}

// ProfitableLiquidationPrice returns the mark price at which liquidating the
// account covers the liquidator's gas on top of the minimum margin shortfall.
func (c Calculator) ProfitableLiquidationPrice(quote, base, price, maxLeverage decimal.Decimal) decimal.Decimal {
	return c.solvePrice(quote, base, maxLeverage, c.gasReserve(profitableLiquidationGasMultiple))
}

// solvePrice solves quote + base·P = |base|·P / maxLeverage + reserve for P
func (c Calculator) solvePrice(quote, base, maxLeverage, reserve decimal.Decimal) decimal.Decimal {
	if base.IsZero() {
		return decimal.Zero
	}
	if !maxLeverage.IsPositive() {
		maxLeverage = one
	}

	denominator := base.Sub(base.Abs().Div(maxLeverage))
	if denominator.IsZero() {
		return decimal.Zero
	}
	p := reserve.Sub(quote).Div(denominator)
	if p.IsNegative() {
		return decimal.Zero
	}
	return p
}

func (c Calculator) gasReserve(multiple int64) decimal.Decimal {
	return c.LiquidationGasCost.Mul(decimal.NewFromInt(multiple))
}

// MinimumMargin uses the Default calculator
func MinimumMargin(quote, base, price, maxLeverage decimal.Decimal) decimal.Decimal {
	return Default.MinimumMargin(quote, base, price, maxLeverage)
}

// Withdrawable uses the Default calculator
func Withdrawable(quote, base, price, maxLeverage decimal.Decimal) decimal.Decimal {
	return Default.Withdrawable(quote, base, price, maxLeverage)
}

// LiquidationPrice uses the Default calculator
func LiquidationPrice(quote, base, price, maxLeverage decimal.Decimal) decimal.Decimal {
	return Default.LiquidationPrice(quote, base, price, maxLeverage)
}

// ProfitableLiquidationPrice uses the Default calculator
func ProfitableLiquidationPrice(quote, base, price, maxLeverage decimal.Decimal) decimal.Decimal {
	return Default.ProfitableLiquidationPrice(quote, base, price, maxLeverage)
}

package accounting

import "github.com/shopspring/decimal"

// ExposurePrecision is the number of decimal places Exposure is rounded to
const ExposurePrecision = 10

// BookLevel is one level of resting liquidity
type BookLevel struct {
	Price  decimal.Decimal
	Amount decimal.Decimal
}

// Exposure is the result of walking the book with a given buying power
type Exposure struct {
	Exposure   decimal.Decimal // base units filled
	TradePrice decimal.Decimal // average fill price
	Slippage   decimal.Decimal // (TradePrice - best) / best
}

// TradeExposure walks levels (best price first) spending quote × leverage of
// buying power. Whole levels are taken while affordable; the first level that
// is not is partially filled with whatever buying power is left, and the walk
// stops. Buying power beyond the depth of the book is left unused.
//
// TradePrice averages the consumed level prices: fully taken levels are
// weighted by their amount, the partially taken level by the buying power
// spent on it.
//
// An empty book gives all zeros. No buying power gives zero exposure at the
// best level's price.
func TradeExposure(quote, leverage decimal.Decimal, levels []BookLevel) Exposure {
	if len(levels) == 0 {
		return Exposure{Exposure: decimal.Zero, TradePrice: decimal.Zero, Slippage: decimal.Zero}
	}

	best := levels[0].Price
	remaining := quote.Mul(leverage)
	if !remaining.IsPositive() {
		return Exposure{Exposure: decimal.Zero, TradePrice: best, Slippage: decimal.Zero}
	}

	exposure := decimal.Zero
	weightedPrice := decimal.Zero
	weight := decimal.Zero

	for _, level := range levels {
		if !remaining.IsPositive() {
			break
		}
		if !level.Price.IsPositive() || !level.Amount.IsPositive() {
			continue
		}

		cost := level.Amount.Mul(level.Price)
		if cost.LessThanOrEqual(remaining) {
			exposure = exposure.Add(level.Amount)
			weightedPrice = weightedPrice.Add(level.Price.Mul(level.Amount))
			weight = weight.Add(level.Amount)
			remaining = remaining.Sub(cost)
			continue
		}

		exposure = exposure.Add(remaining.Div(level.Price))
		weightedPrice = weightedPrice.Add(level.Price.Mul(remaining))
		weight = weight.Add(remaining)
		remaining = decimal.Zero
	}

	tradePrice := best
	if weight.IsPositive() {
		tradePrice = weightedPrice.Div(weight)
	}
	slippage := decimal.Zero
	if !best.IsZero() {
		slippage = tradePrice.Sub(best).Div(best)
	}

	return Exposure{
		Exposure:   exposure.Round(ExposurePrecision),
		TradePrice: tradePrice,
		Slippage:   slippage,
	}
}

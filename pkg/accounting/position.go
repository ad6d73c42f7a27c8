package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Position is a margin account snapshot at a mark price
type Position struct {
	Quote       decimal.Decimal // quote currency balance (may be negative)
	Base        decimal.Decimal // base asset balance (+ve = long, -ve = short)
	Price       decimal.Decimal // mark price
	MaxLeverage decimal.Decimal // protocol leverage ceiling
}

// Health is every metric for one position
type Health struct {
	Notional                   decimal.Decimal
	TotalMargin                decimal.Decimal
	Borrowed                   decimal.Decimal
	Leverage                   decimal.Decimal
	MinimumMargin              decimal.Decimal
	Withdrawable               decimal.Decimal
	LiquidationPrice           decimal.Decimal
	ProfitableLiquidationPrice decimal.Decimal
}

// Liquidatable reports whether the account is below its minimum margin
func (h Health) Liquidatable() bool {
	return h.Withdrawable.IsNegative()
}

// NewPosition parses decimal strings into a Position
func NewPosition(quote, base, price, maxLeverage string) (Position, error) {
	values := make([]decimal.Decimal, 4)
	for i, s := range []string{quote, base, price, maxLeverage} {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return Position{}, fmt.Errorf("invalid decimal %q: %w", s, err)
		}
		values[i] = d
	}
	return Position{Quote: values[0], Base: values[1], Price: values[2], MaxLeverage: values[3]}, nil
}

func (p Position) IsLong() bool  { return p.Base.IsPositive() }
func (p Position) IsShort() bool { return p.Base.IsNegative() }

func (p Position) NotionalValue() decimal.Decimal { return NotionalValue(p.Base, p.Price) }
func (p Position) TotalMargin() decimal.Decimal   { return TotalMargin(p.Quote, p.Base, p.Price) }
func (p Position) Borrowed() decimal.Decimal      { return Borrowed(p.Quote, p.Base, p.Price) }
func (p Position) Leverage() decimal.Decimal      { return Leverage(p.Quote, p.Base, p.Price) }

// Health computes every metric with the Default calculator
func (p Position) Health() Health {
	return Default.Health(p)
}

// Health computes every metric for p
func (c Calculator) Health(p Position) Health {
	return Health{
		Notional:                   p.NotionalValue(),
		TotalMargin:                p.TotalMargin(),
		Borrowed:                   p.Borrowed(),
		Leverage:                   p.Leverage(),
		MinimumMargin:              c.MinimumMargin(p.Quote, p.Base, p.Price, p.MaxLeverage),
		Withdrawable:               c.Withdrawable(p.Quote, p.Base, p.Price, p.MaxLeverage),
		LiquidationPrice:           c.LiquidationPrice(p.Quote, p.Base, p.Price, p.MaxLeverage),
		ProfitableLiquidationPrice: c.ProfitableLiquidationPrice(p.Quote, p.Base, p.Price, p.MaxLeverage),
	}
}

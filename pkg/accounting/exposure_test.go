package accounting

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
)

var orders = []BookLevel{
	{Amount: d("10"), Price: d("1")},
	{Amount: d("20"), Price: d("1.1")},
	{Amount: d("30"), Price: d("1.2")},
}

func TestTradeExposure(t *testing.T) {
	tests := []struct {
		name       string
		quote      string
		leverage   string
		levels     []BookLevel
		exposure   string
		tradePrice string
		slippage   string
	}{
		{"no orders", "0", "1", nil, "0", "0", "0"},
		{"no orders with margin", "100", "1", []BookLevel{}, "0", "0", "0"},
		{"no margin, no exposure", "0", "1", orders, "0", "1", "0"},
		{"quote <= first level notional", "10", "1", orders, "10", "1", "0"},
		{"quote within second level", "20", "1", orders, "19.0909090909", "1.05", "0.05"},
		// 10 at $1, 20 at $1.1, 30 at $1.2 costs exactly 68
		{"takes all orders", "68", "1", orders, "60", "1.1333333333333333", "0.1333333333333333"},
		{"takes all orders and beyond", "300", "1", orders, "60", "1.1333333333333333", "0.1333333333333333"},
		{"takes all orders with leverage", "34", "2", orders, "60", "1.1333333333333333", "0.1333333333333333"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TradeExposure(d(tt.quote), d(tt.leverage), tt.levels)
			assertEqual(t, "exposure", got.Exposure, tt.exposure)
			assertEqual(t, "trade price", got.TradePrice, tt.tradePrice)
			assertApprox(t, "slippage", got.Slippage, tt.slippage, "0.00001")
		})
	}
}

func TestTradeExposureSkipsEmptyLevels(t *testing.T) {
	levels := []BookLevel{
		{Amount: d("10"), Price: d("1")},
		{Amount: d("0"), Price: d("1.05")},
		{Amount: d("20"), Price: d("1.1")},
	}
	got := TradeExposure(d("20"), d("1"), levels)
	assertEqual(t, "exposure", got.Exposure, "19.0909090909")
	assertEqual(t, "trade price", got.TradePrice, "1.05")
}

func TestTradeExposureProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		n := 1 + rng.Intn(6)
		levels := make([]BookLevel, n)
		depth := decimal.Zero
		price := decimal.NewFromInt(100 + rng.Int63n(50))
		for j := range levels {
			amount := decimal.NewFromInt(1 + rng.Int63n(100))
			levels[j] = BookLevel{Price: price, Amount: amount}
			depth = depth.Add(amount)
			price = price.Add(decimal.NewFromInt(1 + rng.Int63n(5)))
		}
		best := levels[0].Price
		worst := levels[n-1].Price

		quote := decimal.NewFromInt(rng.Int63n(20000))
		leverage := decimal.NewFromInt(1 + rng.Int63n(10))
		got := TradeExposure(quote, leverage, levels)

		if got.Exposure.GreaterThan(depth) {
			t.Fatalf("exposure %s exceeds depth %s", got.Exposure, depth)
		}
		if got.TradePrice.LessThan(best) || got.TradePrice.GreaterThan(worst) {
			t.Fatalf("trade price %s outside [%s, %s]", got.TradePrice, best, worst)
		}
		if got.Slippage.IsNegative() {
			t.Fatalf("negative slippage %s on an ascending book", got.Slippage)
		}

		// No buying power never fills anything
		zero := TradeExposure(decimal.Zero, leverage, levels)
		if !zero.Exposure.IsZero() || !zero.Slippage.IsZero() {
			t.Fatalf("zero quote filled %s", zero.Exposure)
		}
	}
}

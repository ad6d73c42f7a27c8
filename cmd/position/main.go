package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tracer-protocol/tracer-utils/params"
	"github.com/tracer-protocol/tracer-utils/pkg/accounting"
	"github.com/tracer-protocol/tracer-utils/pkg/util"
)

func main() {
	var (
		envPath  = flag.String("env", "", "path to .env file (default ./.env)")
		quote    = flag.String("quote", "0", "quote balance")
		base     = flag.String("base", "0", "base balance (+long / -short)")
		price    = flag.String("price", "0", "mark price")
		maxLev   = flag.String("max-leverage", "", "leverage ceiling (default MAX_LEVERAGE)")
		book     = flag.String("book", "", "book levels as price:amount,price:amount best first")
		leverage = flag.String("leverage", "1", "leverage applied to quote when walking -book")
	)
	flag.Parse()

	cfg := params.LoadFromEnv(*envPath)
	logger, err := util.NewLogger(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	if *maxLev == "" {
		*maxLev = cfg.Accounting.MaxLeverage.String()
	}
	pos, err := accounting.NewPosition(*quote, *base, *price, *maxLev)
	if err != nil {
		sugar.Fatalw("invalid_position", "err", err)
	}

	calc := accounting.NewCalculator(cfg.Accounting.LiquidationGasCost)
	h := calc.Health(pos)
	sugar.Infow("position_health",
		"notional", h.Notional.String(),
		"total_margin", h.TotalMargin.String(),
		"leverage", h.Leverage.String(),
		"liquidatable", h.Liquidatable(),
	)

	fmt.Printf("Notional value:               %s\n", h.Notional.StringFixed(4))
	fmt.Printf("Total margin:                 %s\n", h.TotalMargin.StringFixed(4))
	fmt.Printf("Borrowed:                     %s\n", h.Borrowed.StringFixed(4))
	fmt.Printf("Leverage:                     %s\n", h.Leverage.StringFixed(4))
	fmt.Printf("Minimum margin:               %s\n", h.MinimumMargin.StringFixed(4))
	fmt.Printf("Withdrawable:                 %s\n", h.Withdrawable.StringFixed(4))
	fmt.Printf("Liquidation price:            %s\n", h.LiquidationPrice.StringFixed(4))
	fmt.Printf("Profitable liquidation price: %s\n", h.ProfitableLiquidationPrice.StringFixed(4))

	if *book != "" {
		if err := printExposure(pos.Quote, *leverage, *book); err != nil {
			sugar.Fatalw("invalid_book", "err", err)
		}
	}

	_ = logger.Sync()
	os.Exit(exitCode(h.Liquidatable()))
}

// exitCode is 2 for a position that can be liquidated, 0 otherwise
func exitCode(liquidatable bool) int {
	if liquidatable {
		return 2
	}
	return 0
}

func printExposure(quote decimal.Decimal, leverage, book string) error {
	levels, err := parseBook(book)
	if err != nil {
		return err
	}
	lev, err := decimal.NewFromString(leverage)
	if err != nil {
		return fmt.Errorf("leverage %q: %w", leverage, err)
	}

	exp := accounting.TradeExposure(quote, lev, levels)
	fmt.Printf("\nTrade exposure:               %s\n", exp.Exposure)
	fmt.Printf("Trade price:                  %s\n", exp.TradePrice.StringFixed(6))
	fmt.Printf("Slippage:                     %s%%\n", exp.Slippage.Mul(decimal.NewFromInt(100)).StringFixed(4))
	return nil
}

// parseBook reads "1:10,1.1:20" into levels
func parseBook(s string) ([]accounting.BookLevel, error) {
	var levels []accounting.BookLevel
	for _, entry := range strings.Split(s, ",") {
		parts := strings.SplitN(strings.TrimSpace(entry), ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("level %q is not price:amount", entry)
		}
		price, err := decimal.NewFromString(parts[0])
		if err != nil {
			return nil, fmt.Errorf("level %q price: %w", entry, err)
		}
		amount, err := decimal.NewFromString(parts[1])
		if err != nil {
			return nil, fmt.Errorf("level %q amount: %w", entry, err)
		}
		levels = append(levels, accounting.BookLevel{Price: price, Amount: amount})
	}
	return levels, nil
}

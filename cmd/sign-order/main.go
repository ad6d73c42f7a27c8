package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/big"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tracer-protocol/tracer-utils/params"
	"github.com/tracer-protocol/tracer-utils/pkg/crypto"
	"github.com/tracer-protocol/tracer-utils/pkg/ome"
	"github.com/tracer-protocol/tracer-utils/pkg/order"
	"github.com/tracer-protocol/tracer-utils/pkg/util"
)

func main() {
	var (
		envPath = flag.String("env", "", "path to .env file (default ./.env)")
		short   = flag.Bool("short", false, "sell instead of buy")
		price   = flag.String("price", "100000000", "limit price in on-chain units")
		amount  = flag.String("amount", "1000000", "amount in on-chain units")
		ttl     = flag.Duration("ttl", time.Hour, "time until the order expires")
		count   = flag.Int("count", 1, "number of orders to sign (consecutive nonces)")
	)
	flag.Parse()
	if *count < 1 {
		*count = 1
	}

	cfg := params.LoadFromEnv(*envPath)

	logger, err := util.NewLogger(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// Step 1: Pick a signer: wallet over RPC, configured key, or a throwaway key
	var (
		signer  crypto.TypedDataSigner
		account common.Address
	)
	switch {
	case cfg.Signing.RPCURL != "":
		rpcSigner, err := crypto.DialRPCSigner(ctx, cfg.Signing.RPCURL)
		if err != nil {
			sugar.Fatalw("signer_dial_failed", "url", cfg.Signing.RPCURL, "err", err)
		}
		defer rpcSigner.Close()
		if cfg.Signing.TraderAddress == "" {
			sugar.Fatalw("missing_account", "hint", "TRADER_ADDRESS is required with SIGNER_RPC_URL")
		}
		signer = rpcSigner
	default:
		var key *crypto.KeySigner
		if cfg.Signing.PrivateKeyHex != "" {
			key, err = crypto.FromPrivateKeyHex(cfg.Signing.PrivateKeyHex)
		} else {
			key, err = crypto.GenerateKey()
		}
		if err != nil {
			sugar.Fatalw("key_load_failed", "err", err)
		}
		signer = key
		account = key.Address()
	}

	trader, err := addressOrZero(cfg.Signing.TraderAddress)
	if err != nil {
		sugar.Fatalw("invalid_trader_address", "err", err)
	}
	if account == (common.Address{}) {
		account = trader
	}
	tracer, err := addressOrZero(cfg.Signing.TargetTracer)
	if err != nil {
		sugar.Fatalw("invalid_target_tracer", "err", err)
	}

	// Step 2: Build orders
	p, ok := new(big.Int).SetString(*price, 10)
	if !ok {
		sugar.Fatalw("invalid_price", "price", *price)
	}
	a, ok := new(big.Int).SetString(*amount, 10)
	if !ok {
		sugar.Fatalw("invalid_amount", "amount", *amount)
	}
	startNonce, err := crypto.GenerateNonce()
	if err != nil {
		sugar.Fatalw("nonce_failed", "err", err)
	}

	orders := make([]order.Order, *count)
	for i := range orders {
		orders[i] = order.Order{
			User:         account,
			TargetTracer: tracer,
			Side:         !*short,
			Price:        p,
			Amount:       a,
			Expiration:   big.NewInt(time.Now().Add(*ttl).Unix()),
			Nonce:        new(big.Int).Add(new(big.Int).SetUint64(startNonce), big.NewInt(int64(i))),
		}
		if err := orders[i].Validate(); err != nil {
			sugar.Fatalw("invalid_order", "index", i, "err", err)
		}
	}
	sugar.Infow("orders_built", "count", len(orders), "user", account.Hex(), "side", orders[0].SideString())

	// Step 3: Sign concurrently, then transcode each result for the OME
	pending := crypto.SignOrders(ctx, signer, orders, trader, cfg.Signing.ChainID, crypto.WithLogger(logger))
	failed := 0
	for i, po := range pending {
		signed, err := po.Wait(ctx)
		if err != nil {
			failed++
			continue
		}
		if err := writeOMEOrder(os.Stdout, signed); err != nil {
			sugar.Errorw("encode_failed", "index", i, "err", err)
			failed++
			continue
		}
		sugar.Infow("order_signed", "index", i, "nonce", signed.Order.Nonce.String(), "v", signed.SigV)
	}

	if failed > 0 {
		sugar.Errorw("orders_failed", "failed", failed, "total", len(orders))
		_ = logger.Sync()
		os.Exit(1)
	}
}

// writeOMEOrder prints one OME order per line. Logs go to stderr, so stdout
// carries only these lines.
func writeOMEOrder(w io.Writer, signed order.SignedOrder) error {
	payload, err := ome.OrderToOMEOrder(signed).Encode()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(payload))
	return err
}

func addressOrZero(s string) (common.Address, error) {
	if s == "" {
		return common.Address{}, nil
	}
	return crypto.ParseChecksumAddress(s)
}

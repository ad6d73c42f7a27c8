package order

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Order is an off-chain limit order intent, immutable once signed.
// Price and Amount are raw on-chain integer units (signed as uint256).
type Order struct {
	User         common.Address // Trader placing the order
	TargetTracer common.Address // Tracer market contract the order trades on
	Side         bool           // true = long (Bid), false = short (Ask)
	Price        *big.Int
	Amount       *big.Int
	Expiration   *big.Int // Unix seconds
	Nonce        *big.Int
}

// SignedOrder is an Order plus the split ECDSA signature over its EIP-712 hash
type SignedOrder struct {
	Order Order
	SigR  common.Hash
	SigS  common.Hash
	SigV  uint8
}

// SideString returns "long" or "short"
func (o Order) SideString() string {
	if o.Side {
		return "long"
	}
	return "short"
}

// Validate checks that numeric fields are present and non-negative
func (o Order) Validate() error {
	fields := []struct {
		name string
		v    *big.Int
	}{
		{"price", o.Price},
		{"amount", o.Amount},
		{"expiration", o.Expiration},
		{"nonce", o.Nonce},
	}
	for _, f := range fields {
		if f.v == nil {
			return fmt.Errorf("missing order %s", f.name)
		}
		if f.v.Sign() < 0 {
			return fmt.Errorf("negative order %s: %s", f.name, f.v)
		}
	}
	if o.User == (common.Address{}) {
		return fmt.Errorf("missing order user")
	}
	return nil
}

// Equal reports whether two orders carry the same values
func (o Order) Equal(other Order) bool {
	return o.User == other.User &&
		o.TargetTracer == other.TargetTracer &&
		o.Side == other.Side &&
		bigEqual(o.Price, other.Price) &&
		bigEqual(o.Amount, other.Amount) &&
		bigEqual(o.Expiration, other.Expiration) &&
		bigEqual(o.Nonce, other.Nonce)
}

// Equal reports whether two signed orders carry the same order and signature
func (s SignedOrder) Equal(other SignedOrder) bool {
	return s.Order.Equal(other.Order) &&
		s.SigR == other.SigR &&
		s.SigS == other.SigS &&
		s.SigV == other.SigV
}

func bigEqual(a, b *big.Int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Cmp(b) == 0
}

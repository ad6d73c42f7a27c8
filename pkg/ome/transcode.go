package ome

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	ethCrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/tracer-protocol/tracer-utils/pkg/crypto"
	"github.com/tracer-protocol/tracer-utils/pkg/order"
)

var ErrInvalidSide = errors.New("invalid order side")

// SideFromBool maps a long/short flag to Bid/Ask
func SideFromBool(long bool) Side {
	if long {
		return Bid
	}
	return Ask
}

// Bool maps Bid/Ask back to long/short
func (s Side) Bool() (bool, error) {
	switch s {
	case Bid:
		return true, nil
	case Ask:
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrInvalidSide, string(s))
	}
}

// OrderToOMEOrder converts a signed order into the matching engine format.
// The id is the keccak256 of the signature, unique per signed order.
func OrderToOMEOrder(signed order.SignedOrder) OMEOrder {
	sig := crypto.JoinSignature(signed.SigR, signed.SigS, signed.SigV)
	o := signed.Order

	return OMEOrder{
		ID:           ethCrypto.Keccak256Hash(sig).Hex(),
		User:         o.User.Hex(),
		TargetTracer: o.TargetTracer.Hex(),
		Side:         SideFromBool(o.Side),
		Price:        copyBig(o.Price),
		Amount:       copyBig(o.Amount),
		Expiration:   copyBig(o.Expiration),
		SignedData:   SignedData(sig),
		Nonce:        hexutil.EncodeBig(orZero(o.Nonce)),
	}
}

// OMEOrderToOrder converts a matching engine order back into a signed order
// that can be submitted to the contracts.
func OMEOrderToOrder(o OMEOrder) (order.SignedOrder, error) {
	user, err := crypto.ParseChecksumAddress(o.User)
	if err != nil {
		return order.SignedOrder{}, fmt.Errorf("user: %w", err)
	}
	targetTracer, err := crypto.ParseChecksumAddress(o.TargetTracer)
	if err != nil {
		return order.SignedOrder{}, fmt.Errorf("target_tracer: %w", err)
	}
	side, err := o.Side.Bool()
	if err != nil {
		return order.SignedOrder{}, err
	}
	nonce, err := hexutil.DecodeBig(o.Nonce)
	if err != nil {
		return order.SignedOrder{}, fmt.Errorf("nonce: %w", err)
	}
	r, s, v, err := crypto.SplitSignature(o.SignedData)
	if err != nil {
		return order.SignedOrder{}, fmt.Errorf("signed_data: %w", err)
	}

	return order.SignedOrder{
		Order: order.Order{
			User:         user,
			TargetTracer: targetTracer,
			Side:         side,
			Price:        copyBig(o.Price),
			Amount:       copyBig(o.Amount),
			Expiration:   copyBig(o.Expiration),
			Nonce:        nonce,
		},
		SigR: r,
		SigS: s,
		SigV: v,
	}, nil
}

func copyBig(v *big.Int) *big.Int {
	return new(big.Int).Set(orZero(v))
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}

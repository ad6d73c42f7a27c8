package crypto

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"go.uber.org/zap"

	"github.com/tracer-protocol/tracer-utils/pkg/order"
)

// TypedDataSigner produces a 65-byte [R || S || V] signature over EIP-712
// typed data on behalf of account. Implementations may be a local key, a
// wallet over JSON-RPC, or anything else that can sign.
type TypedDataSigner interface {
	SignTypedData(ctx context.Context, account common.Address, data apitypes.TypedData) ([]byte, error)
}

// TypedDataSignerFunc adapts a function to TypedDataSigner
type TypedDataSignerFunc func(ctx context.Context, account common.Address, data apitypes.TypedData) ([]byte, error)

func (f TypedDataSignerFunc) SignTypedData(ctx context.Context, account common.Address, data apitypes.TypedData) ([]byte, error) {
	return f(ctx, account, data)
}

// SignOrder asks signer for a signature over data and splits it into R, S, V.
// Signer errors are returned wrapped; there is no retry.
func SignOrder(ctx context.Context, signer TypedDataSigner, account common.Address, data apitypes.TypedData) (r, s common.Hash, v uint8, err error) {
	signature, err := signer.SignTypedData(ctx, account, data)
	if err != nil {
		return common.Hash{}, common.Hash{}, 0, fmt.Errorf("failed to sign order: %w", err)
	}
	return SplitSignature(signature)
}

// PendingOrder is the in-flight signature of one order from SignOrders
type PendingOrder struct {
	done   chan struct{}
	signed order.SignedOrder
	err    error
}

// Done is closed once the signature has resolved
func (p *PendingOrder) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the signature resolves or ctx is cancelled
func (p *PendingOrder) Wait(ctx context.Context) (order.SignedOrder, error) {
	select {
	case <-p.done:
		return p.signed, p.err
	case <-ctx.Done():
		return order.SignedOrder{}, ctx.Err()
	}
}

type signOptions struct {
	logger *zap.Logger
}

// SignOption configures SignOrders
type SignOption func(*signOptions)

// WithLogger logs per-order signing failures to logger
func WithLogger(logger *zap.Logger) SignOption {
	return func(o *signOptions) {
		o.logger = logger
	}
}

// SignOrders signs every order concurrently under the domain of traderAddress.
// Each order is signed by its own User. The returned slice matches the input
// order, and one failed signature does not affect the others.
func SignOrders(ctx context.Context, signer TypedDataSigner, orders []order.Order, traderAddress common.Address, chainID *big.Int, opts ...SignOption) []*PendingOrder {
	options := signOptions{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&options)
	}
	domain := GenerateDomainData(traderAddress, chainID)

	pending := make([]*PendingOrder, len(orders))
	for i, o := range orders {
		p := &PendingOrder{done: make(chan struct{})}
		pending[i] = p

		go func(i int, o order.Order) {
			defer close(p.done)

			r, s, v, err := SignOrder(ctx, signer, o.User, NewSigningData(domain, o))
			if err != nil {
				options.logger.Warn("order_sign_failed",
					zap.Int("index", i),
					zap.String("user", o.User.Hex()),
					zap.Error(err))
				p.err = err
				return
			}
			p.signed = order.SignedOrder{Order: o, SigR: r, SigS: s, SigV: v}
		}(i, o)
	}
	return pending
}

// WaitAll waits for every pending signature. Both slices are indexed like
// pending; errs[i] is nil when signed[i] is valid.
func WaitAll(ctx context.Context, pending []*PendingOrder) (signed []order.SignedOrder, errs []error) {
	signed = make([]order.SignedOrder, len(pending))
	errs = make([]error, len(pending))
	for i, p := range pending {
		signed[i], errs[i] = p.Wait(ctx)
	}
	return signed, errs
}

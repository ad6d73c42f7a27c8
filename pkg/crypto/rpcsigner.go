package crypto

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

// SignTypedDataMethod is the wallet JSON-RPC method for EIP-712 signing
const SignTypedDataMethod = "eth_signTypedData_v4"

// RPCSigner delegates signing to a wallet or node over JSON-RPC
type RPCSigner struct {
	client *rpc.Client
}

// NewRPCSigner wraps an existing rpc client
func NewRPCSigner(client *rpc.Client) *RPCSigner {
	return &RPCSigner{client: client}
}

// DialRPCSigner connects to a wallet endpoint (http, ws or ipc)
func DialRPCSigner(ctx context.Context, rawurl string) (*RPCSigner, error) {
	client, err := rpc.DialContext(ctx, rawurl)
	if err != nil {
		return nil, fmt.Errorf("failed to dial signer: %w", err)
	}
	return NewRPCSigner(client), nil
}

// SignTypedData implements TypedDataSigner
func (s *RPCSigner) SignTypedData(ctx context.Context, account common.Address, data apitypes.TypedData) ([]byte, error) {
	var signature hexutil.Bytes
	if err := s.client.CallContext(ctx, &signature, SignTypedDataMethod, account, data); err != nil {
		return nil, err
	}
	if len(signature) != SignatureLength {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSignatureLength, len(signature))
	}
	return signature, nil
}

// Close releases the underlying connection
func (s *RPCSigner) Close() {
	s.client.Close()
}

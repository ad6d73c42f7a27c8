package crypto

import (
	"context"
	"crypto/ecdsa"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

// SignatureLength is the size of an R || S || V signature
const SignatureLength = 65

var (
	ErrInvalidSignatureLength = errors.New("invalid signature length")
	ErrUnknownAccount         = errors.New("unknown signing account")
)

// KeySigner signs typed data with an in-memory secp256k1 key.
// Signatures carry V = 27/28, the same as a browser wallet returns.
type KeySigner struct {
	privateKey *ecdsa.PrivateKey
	address    common.Address
}

// GenerateKey creates a KeySigner with a new random key
func GenerateKey() (*KeySigner, error) {
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	return newKeySigner(privateKey), nil
}

// FromPrivateKeyHex creates a KeySigner from "0x1234..." or "1234..." (64 hex chars)
func FromPrivateKeyHex(hexKey string) (*KeySigner, error) {
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	return newKeySigner(privateKey), nil
}

func newKeySigner(privateKey *ecdsa.PrivateKey) *KeySigner {
	return &KeySigner{
		privateKey: privateKey,
		address:    crypto.PubkeyToAddress(privateKey.PublicKey),
	}
}

// Address returns the Ethereum address derived from the public key
func (s *KeySigner) Address() common.Address {
	return s.address
}

// PrivateKeyHex returns the private key as hex string (WITHOUT 0x prefix)
// WARNING: Keep this secret! Never expose to users or logs
func (s *KeySigner) PrivateKeyHex() string {
	return fmt.Sprintf("%x", crypto.FromECDSA(s.privateKey))
}

// Sign signs a 32-byte hash and returns [R || S || V] with V as 0/1
func (s *KeySigner) Sign(hash []byte) ([]byte, error) {
	if len(hash) != 32 {
		return nil, fmt.Errorf("hash must be 32 bytes, got %d", len(hash))
	}

	signature, err := crypto.Sign(hash, s.privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign: %w", err)
	}
	return signature, nil
}

// SignTypedData implements TypedDataSigner
func (s *KeySigner) SignTypedData(ctx context.Context, account common.Address, data apitypes.TypedData) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if account != s.address {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAccount, account.Hex())
	}

	hash, err := HashTypedData(data)
	if err != nil {
		return nil, err
	}

	signature, err := s.Sign(hash)
	if err != nil {
		return nil, err
	}
	signature[64] += 27
	return signature, nil
}

// RecoverAddress recovers the signer's address from a hash and a V=0/1 signature
func RecoverAddress(hash []byte, signature []byte) (common.Address, error) {
	if len(signature) != SignatureLength {
		return common.Address{}, fmt.Errorf("%w: %d", ErrInvalidSignatureLength, len(signature))
	}
	if len(hash) != 32 {
		return common.Address{}, fmt.Errorf("invalid hash length: %d", len(hash))
	}

	publicKey, err := crypto.SigToPub(hash, signature)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to recover public key: %w", err)
	}
	return crypto.PubkeyToAddress(*publicKey), nil
}

// SplitSignature splits a 65-byte signature into R, S, V components
func SplitSignature(signature []byte) (r, s common.Hash, v uint8, err error) {
	if len(signature) != SignatureLength {
		return common.Hash{}, common.Hash{}, 0, fmt.Errorf("%w: %d", ErrInvalidSignatureLength, len(signature))
	}

	r = common.BytesToHash(signature[:32])
	s = common.BytesToHash(signature[32:64])
	v = signature[64]
	return r, s, v, nil
}

// JoinSignature combines R, S, V into a 65-byte signature
func JoinSignature(r, s common.Hash, v uint8) []byte {
	signature := make([]byte, SignatureLength)
	copy(signature[:32], r[:])
	copy(signature[32:64], s[:])
	signature[64] = v
	return signature
}

// GenerateNonce generates a cryptographically secure random nonce
func GenerateNonce() (uint64, error) {
	nonceBytes := make([]byte, 8)
	if _, err := rand.Read(nonceBytes); err != nil {
		return 0, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return binary.LittleEndian.Uint64(nonceBytes), nil
}

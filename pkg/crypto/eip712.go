package crypto

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"github.com/tracer-protocol/tracer-utils/pkg/order"
)

const (
	DomainName    = "Tracer Protocol"
	DomainVersion = "1.0"

	// PrimaryType is the EIP-712 struct name the Tracer contracts hash orders under
	PrimaryType = "LimitOrder"
)

// DefaultChainID is used when no chain id is given (local dev chain)
var DefaultChainID = big.NewInt(1337)

// DomainData is the EIP-712 domain separator input.
// VerifyingContract is the trader contract that checks order signatures.
type DomainData struct {
	Name              string
	Version           string
	ChainID           *big.Int
	VerifyingContract common.Address
}

// DomainType is the literal EIP712Domain schema
var DomainType = []apitypes.Type{
	{Name: "name", Type: "string"},
	{Name: "version", Type: "string"},
	{Name: "chainId", Type: "uint256"},
	{Name: "verifyingContract", Type: "address"},
}

// LimitOrderType is the literal LimitOrder schema. Field names and types must
// match the on-chain struct exactly or signatures will not verify.
var LimitOrderType = []apitypes.Type{
	{Name: "amount", Type: "uint256"},
	{Name: "price", Type: "uint256"},
	{Name: "side", Type: "bool"},
	{Name: "user", Type: "address"},
	{Name: "expiration", Type: "uint256"},
	{Name: "targetTracer", Type: "address"},
	{Name: "nonce", Type: "uint256"},
}

// GenerateDomainData builds the domain for orders verified by traderAddress.
// A nil chainID falls back to DefaultChainID.
func GenerateDomainData(traderAddress common.Address, chainID *big.Int) DomainData {
	if chainID == nil {
		chainID = DefaultChainID
	}
	return DomainData{
		Name:              DomainName,
		Version:           DomainVersion,
		ChainID:           new(big.Int).Set(chainID),
		VerifyingContract: traderAddress,
	}
}

// TypedDataDomain converts the domain to the apitypes representation
func (d DomainData) TypedDataDomain() apitypes.TypedDataDomain {
	return apitypes.TypedDataDomain{
		Name:              d.Name,
		Version:           d.Version,
		ChainId:           (*math.HexOrDecimal256)(d.ChainID),
		VerifyingContract: d.VerifyingContract.Hex(),
	}
}

// OrderMessage returns the LimitOrder message payload for o
func OrderMessage(o order.Order) apitypes.TypedDataMessage {
	return apitypes.TypedDataMessage{
		"amount":       bigString(o.Amount),
		"price":        bigString(o.Price),
		"side":         o.Side,
		"user":         o.User.Hex(),
		"expiration":   bigString(o.Expiration),
		"targetTracer": o.TargetTracer.Hex(),
		"nonce":        bigString(o.Nonce),
	}
}

// NewSigningData assembles the full typed-data document a wallet signs
func NewSigningData(domain DomainData, o order.Order) apitypes.TypedData {
	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": DomainType,
			PrimaryType:    LimitOrderType,
		},
		PrimaryType: PrimaryType,
		Domain:      domain.TypedDataDomain(),
		Message:     OrderMessage(o),
	}
}

// HashTypedData returns the EIP-712 digest of data
func HashTypedData(data apitypes.TypedData) ([]byte, error) {
	domainSeparator, err := data.HashStruct("EIP712Domain", data.Domain.Map())
	if err != nil {
		return nil, fmt.Errorf("failed to hash domain: %w", err)
	}

	typedDataHash, err := data.HashStruct(data.PrimaryType, data.Message)
	if err != nil {
		return nil, fmt.Errorf("failed to hash message: %w", err)
	}

	// keccak256("\x19\x01" || domainSeparator || typedDataHash)
	rawData := []byte(fmt.Sprintf("\x19\x01%s%s", string(domainSeparator), string(typedDataHash)))
	return crypto.Keccak256Hash(rawData).Bytes(), nil
}

// HashOrder hashes o under domain
func HashOrder(domain DomainData, o order.Order) ([]byte, error) {
	return HashTypedData(NewSigningData(domain, o))
}

// RecoverOrderSigner recovers the address that produced signed's signature
func RecoverOrderSigner(domain DomainData, signed order.SignedOrder) (common.Address, error) {
	hash, err := HashOrder(domain, signed.Order)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to hash order: %w", err)
	}

	sig := JoinSignature(signed.SigR, signed.SigS, signed.SigV)
	// Wallets return V as 27/28, Ecrecover wants the raw recovery id
	if sig[64] >= 27 {
		sig[64] -= 27
	}
	return RecoverAddress(hash, sig)
}

// VerifySignedOrder reports whether signed was signed by its own order's user
func VerifySignedOrder(domain DomainData, signed order.SignedOrder) (bool, error) {
	addr, err := RecoverOrderSigner(domain, signed)
	if err != nil {
		return false, err
	}
	return addr == signed.Order.User, nil
}

// SigningDataJSON renders data the way eth_signTypedData_v4 expects it
func SigningDataJSON(data apitypes.TypedData) (string, error) {
	jsonBytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(jsonBytes), nil
}

func bigString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

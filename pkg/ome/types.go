package ome

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// Side is the matching engine's order side
type Side string

const (
	Bid Side = "Bid" // long
	Ask Side = "Ask" // short
)

// SignedData is the 65-byte R || S || V signature. On the wire it is a JSON
// array of byte values, not base64.
type SignedData []byte

// OMEOrder is the order record consumed and produced by the matching engine
type OMEOrder struct {
	ID           string     `json:"id"`
	User         string     `json:"user"`          // EIP-55 checksummed
	TargetTracer string     `json:"target_tracer"` // EIP-55 checksummed
	Side         Side       `json:"side"`
	Price        *big.Int   `json:"price"`
	Amount       *big.Int   `json:"amount"`
	Expiration   *big.Int   `json:"expiration"`
	SignedData   SignedData `json:"signed_data"`
	Nonce        string     `json:"nonce"` // 0x-prefixed hex
}

// MarshalJSON encodes as [b0,b1,...]
func (d SignedData) MarshalJSON() ([]byte, error) {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, b := range d {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(int(b)))
	}
	sb.WriteByte(']')
	return []byte(sb.String()), nil
}

// UnmarshalJSON decodes [b0,b1,...]; every element must fit in a byte
func (d *SignedData) UnmarshalJSON(data []byte) error {
	var values []int
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("signed_data: %w", err)
	}
	out := make(SignedData, len(values))
	for i, v := range values {
		if v < 0 || v > 255 {
			return fmt.Errorf("signed_data[%d] out of byte range: %d", i, v)
		}
		out[i] = byte(v)
	}
	*d = out
	return nil
}

// Encode serializes o to JSON
func (o OMEOrder) Encode() ([]byte, error) {
	return json.Marshal(o)
}

// Decode parses a JSON OMEOrder
func Decode(data []byte) (*OMEOrder, error) {
	var o OMEOrder
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ome order: %w", err)
	}
	return &o, nil
}

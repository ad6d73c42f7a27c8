package crypto

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"
)

var ErrInvalidAddress = errors.New("invalid address")

// ToChecksumAddress validates a hex address of any casing and returns its
// EIP-55 checksummed form.
func ToChecksumAddress(address string) (string, error) {
	if !common.IsHexAddress(address) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}
	return EIP55(common.HexToAddress(address).Bytes()), nil
}

// ParseChecksumAddress is ToChecksumAddress returning a common.Address
func ParseChecksumAddress(address string) (common.Address, error) {
	checksummed, err := ToChecksumAddress(address)
	if err != nil {
		return common.Address{}, err
	}
	return common.HexToAddress(checksummed), nil
}

// EIP55 computes the checksummed hex address string from 20-byte raw address.
func EIP55(addr20 []byte) string {
	hexaddr := hex.EncodeToString(addr20)
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(hexaddr))
	hash := h.Sum(nil)

	out := make([]byte, 2+len(hexaddr))
	copy(out, "0x")
	for i, c := range []byte(hexaddr) {
		if c >= '0' && c <= '9' {
			out[2+i] = c
			continue
		}
		// i>>1 picks the hash byte, even/odd picks the high/low nibble
		nibble := hash[i>>1]
		if i%2 == 0 {
			nibble >>= 4
		}
		if nibble&0x0f >= 8 {
			c -= 'a' - 'A'
		}
		out[2+i] = c
	}
	return string(out)
}

// Package hexutil implements 0x-prefixed hex encoding as used in tool output
// and proof payloads.
package hexutil

import (
	"encoding/hex"
	"errors"
	"strings"
)

var (
	// ErrMissingPrefix is returned when input lacks the 0x prefix.
	ErrMissingPrefix = errors.New("hex string without 0x prefix")
	// ErrOddLength is returned when input has an odd number of hex digits.
	ErrOddLength = errors.New("hex string of odd length")
)

// Encode encodes b as a 0x-prefixed hex string.
func Encode(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

// Decode decodes a 0x-prefixed hex string.
func Decode(s string) ([]byte, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return nil, ErrMissingPrefix
	}
	s = s[2:]
	if len(s)%2 != 0 {
		return nil, ErrOddLength
	}
	return hex.DecodeString(s)
}

// MustDecode decodes s or panics. Intended for compile-time constants.
func MustDecode(s string) []byte {
	b, err := Decode(s)
	if err != nil {
		panic(err)
	}
	return b
}

// Package common contains the 20-byte address and 32-byte hash value types
// used throughout the engine, plus conversions between them and big integers.
package common

import (
	"encoding/hex"
	"errors"
	"math/big"
	"strings"
)

const (
	// AddressLength is the expected length of an address in bytes.
	AddressLength = 20
	// HashLength is the expected length of a hash (and storage word) in bytes.
	HashLength = 32
)

// Address represents a 20-byte account address.
type Address [AddressLength]byte

// BytesToAddress returns an Address with b right-aligned into it.
func BytesToAddress(b []byte) Address {
	var a Address
	a.SetBytes(b)
	return a
}

// HexToAddress parses s (with or without 0x prefix) into an Address.
func HexToAddress(s string) Address {
	return BytesToAddress(fromHex(s))
}

// IsHexAddress reports whether s is a valid hex-encoded address.
func IsHexAddress(s string) bool {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s) != 2*AddressLength {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

// SetBytes sets the address to the value of b, keeping the rightmost 20 bytes.
func (a *Address) SetBytes(b []byte) {
	if len(b) > AddressLength {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
}

// Bytes returns the address as a byte slice.
func (a Address) Bytes() []byte { return a[:] }

// Hex returns the 0x-prefixed hex encoding of the address.
func (a Address) Hex() string { return "0x" + hex.EncodeToString(a[:]) }

// String implements fmt.Stringer.
func (a Address) String() string { return a.Hex() }

// Big converts the address to a big integer.
func (a Address) Big() *big.Int { return new(big.Int).SetBytes(a[:]) }

// MarshalText encodes the address as a 0x-prefixed hex string.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.Hex()), nil
}

// UnmarshalText decodes a 0x-prefixed hex string into the address.
func (a *Address) UnmarshalText(input []byte) error {
	b, err := hexFixed(string(input), AddressLength)
	if err != nil {
		return err
	}
	copy(a[:], b)
	return nil
}

// Hash represents a 32-byte Keccak hash or storage word.
type Hash [HashLength]byte

// BytesToHash returns a Hash with b right-aligned into it.
func BytesToHash(b []byte) Hash {
	var h Hash
	h.SetBytes(b)
	return h
}

// BigToHash converts a big integer to a Hash, truncating to 32 bytes.
func BigToHash(b *big.Int) Hash { return BytesToHash(b.Bytes()) }

// HexToHash parses s into a Hash.
func HexToHash(s string) Hash { return BytesToHash(fromHex(s)) }

// SetBytes sets the hash to the value of b, keeping the rightmost 32 bytes.
func (h *Hash) SetBytes(b []byte) {
	if len(b) > HashLength {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
}

// Bytes returns the hash as a byte slice.
func (h Hash) Bytes() []byte { return h[:] }

// Hex returns the 0x-prefixed hex encoding of the hash.
func (h Hash) Hex() string { return "0x" + hex.EncodeToString(h[:]) }

// String implements fmt.Stringer.
func (h Hash) String() string { return h.Hex() }

// Big converts the hash to a big integer.
func (h Hash) Big() *big.Int { return new(big.Int).SetBytes(h[:]) }

// MarshalText encodes the hash as a 0x-prefixed hex string.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.Hex()), nil
}

// UnmarshalText decodes a 0x-prefixed hex string into the hash.
func (h *Hash) UnmarshalText(input []byte) error {
	b, err := hexFixed(string(input), HashLength)
	if err != nil {
		return err
	}
	copy(h[:], b)
	return nil
}

// hexFixed decodes a 0x-prefixed hex string of exactly n bytes.
func hexFixed(s string, n int) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if len(b) != n {
		return nil, errors.New("hex string has wrong length")
	}
	return b, nil
}

// fromHex decodes a hex string with optional 0x prefix, padding odd lengths.
func fromHex(s string) []byte {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil
	}
	return b
}

// Package rawdb contains the low-level accessors for committed engine state.
package rawdb

import (
	"github.com/xfuel-network/xfengine/common"
)

// Database key prefixes. Committed state lives in a flat keyspace:
//
//	balancePrefix + address                -> account balance (big-endian bytes)
//	storagePrefix + address + slot         -> 32-byte storage word
//	logKey + 8-byte index                  -> JSON-encoded log record
var (
	balancePrefix = []byte("xfb") // balancePrefix + address -> balance
	storagePrefix = []byte("xfs") // storagePrefix + address + slot -> word
	logPrefix     = []byte("xfl") // logPrefix + index -> log record
	logCountKey   = []byte("xflCount")
)

// balanceKey = balancePrefix + address
func balanceKey(addr common.Address) []byte {
	return append(append([]byte{}, balancePrefix...), addr.Bytes()...)
}

// storageKey = storagePrefix + address + slot
func storageKey(addr common.Address, slot common.Hash) []byte {
	key := append(append([]byte{}, storagePrefix...), addr.Bytes()...)
	return append(key, slot.Bytes()...)
}

// Package types holds the shared record types emitted by engine components.
package types

import (
	"github.com/xfuel-network/xfengine/common"
)

// Log is an append-only audit record emitted by a component when a
// state-mutating operation succeeds. Logs are journaled together with state:
// a reverted operation leaves no log behind.
type Log struct {
	// Address of the component that emitted the record.
	Address common.Address `json:"address"`
	// Topics identify the event; Topics[0] is the Keccak256 hash of the
	// event name, further topics carry indexed parameters.
	Topics []common.Hash `json:"topics"`
	// Data is the JSON-encoded event payload.
	Data []byte `json:"data"`

	// Time is the engine time at which the operation executed.
	Time uint64 `json:"time"`
	// Index is the position of the log within its state database.
	Index uint `json:"index"`
}

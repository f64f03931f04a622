package sysaction

import (
	"encoding/json"

	"github.com/xfuel-network/xfengine/common"
	"github.com/xfuel-network/xfengine/core/types"
	"github.com/xfuel-network/xfengine/core/vm"
	"github.com/xfuel-network/xfengine/crypto"
	"github.com/xfuel-network/xfengine/log"
)

// EmitLog appends an audit record for a successful operation. Topic zero is
// the Keccak256 hash of the event name; payload is JSON-encoded into Data.
// Emitted logs are journaled and revert together with the operation.
func EmitLog(db vm.StateDB, emitter common.Address, event string, time uint64, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Error("Failed to encode event payload", "event", event, "err", err)
		data = nil
	}
	db.AddLog(&types.Log{
		Address: emitter,
		Topics:  []common.Hash{crypto.Keccak256Hash([]byte(event))},
		Data:    data,
		Time:    time,
	})
}

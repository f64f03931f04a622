// Package engine assembles the tokenomics components over one state
// database and exposes the action entry point the surrounding runtime
// calls.
package engine

import (
	"math/big"

	"github.com/xfuel-network/xfengine/buyback"
	"github.com/xfuel-network/xfengine/common"
	"github.com/xfuel-network/xfengine/core/state"
	"github.com/xfuel-network/xfengine/earnproof"
	"github.com/xfuel-network/xfengine/escrow"
	"github.com/xfuel-network/xfengine/feepolicy"
	"github.com/xfuel-network/xfengine/log"
	"github.com/xfuel-network/xfengine/params"
	"github.com/xfuel-network/xfengine/receipt"
	"github.com/xfuel-network/xfengine/revenue"
	"github.com/xfuel-network/xfengine/sysaction"
	"github.com/xfuel-network/xfengine/treasury"
	"github.com/xfuel-network/xfengine/xfdb"
)

// Engine is a fully wired tokenomics engine over a journaled state
// database. Operations are serialized by the caller; Engine itself adds no
// locking.
type Engine struct {
	state *state.StateDB
	owner common.Address
}

// New opens an engine over the given store (nil for in-memory) and
// initializes every component with the owner address.
func New(db xfdb.KeyValueStore, owner common.Address) *Engine {
	e := &Engine{state: state.New(db), owner: owner}
	e.setup()
	return e
}

// setup seeds component ownership on first use. A store that already holds
// an initialized engine is left untouched so committed configuration
// survives reopening. The earnings verifier is registered as the escrow's
// multiplier authority.
func (e *Engine) setup() {
	if escrow.Owner(e.state) != (common.Address{}) {
		log.Debug("Engine state already initialized", "owner", escrow.Owner(e.state))
		return
	}
	escrow.Initialize(e.state, e.owner)
	if err := escrow.SetVerifier(e.state, e.owner, params.ProofRegistryAddress); err != nil {
		log.Error("Failed to register escrow verifier", "err", err)
	}
	earnproof.Initialize(e.state, e.owner)
	receipt.Initialize(e.state, e.owner)
	buyback.Initialize(e.state, e.owner)
	revenue.Initialize(e.state, e.owner)
	feepolicy.Initialize(e.state, e.owner)
	treasury.Initialize(e.state, e.owner)
	log.Info("Engine initialized", "owner", e.owner)
}

// StateDB exposes the underlying state for reads and tests.
func (e *Engine) StateDB() *state.StateDB { return e.state }

// Execute runs an encoded system action from a caller at the given engine
// time. The action applies atomically.
func (e *Engine) Execute(from common.Address, value *big.Int, now uint64, data []byte) error {
	return sysaction.Execute(&sysaction.Context{
		From: from, Value: value, Time: now, StateDB: e.state,
	}, data)
}

// ExecuteAction runs a decoded system action.
func (e *Engine) ExecuteAction(from common.Address, value *big.Int, now uint64, sa *sysaction.SysAction) error {
	return sysaction.ExecuteAction(&sysaction.Context{
		From: from, Value: value, Time: now, StateDB: e.state,
	}, sa)
}

// Commit flushes dirty state to the backing store.
func (e *Engine) Commit() error {
	return e.state.Commit()
}

// Package vm defines the StateDB interface engine components execute against.
package vm

import (
	"math/big"

	"github.com/xfuel-network/xfengine/common"
	"github.com/xfuel-network/xfengine/core/types"
)

// StateDB is the mutable world-state surface available to component handlers.
// All mutations are journaled; RevertToSnapshot undoes everything recorded
// after the corresponding Snapshot call, including emitted logs.
type StateDB interface {
	GetBalance(common.Address) *big.Int
	AddBalance(common.Address, *big.Int)
	SubBalance(common.Address, *big.Int)

	GetState(common.Address, common.Hash) common.Hash
	SetState(common.Address, common.Hash, common.Hash)

	AddLog(*types.Log)

	Snapshot() int
	RevertToSnapshot(int)
}

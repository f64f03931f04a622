package state

import (
	"math/big"

	"github.com/xfuel-network/xfengine/common"
)

// journalEntry is a modification entry in the state change journal that can
// be reverted on demand.
type journalEntry interface {
	// revert undoes the change introduced by this journal entry.
	revert(*StateDB)
}

type (
	balanceChange struct {
		account common.Address
		prev    *big.Int
	}
	storageChange struct {
		account  common.Address
		key      common.Hash
		prevalue common.Hash
	}
	addLogChange struct{}
)

func (ch balanceChange) revert(s *StateDB) {
	s.balances[ch.account] = ch.prev
}

func (ch storageChange) revert(s *StateDB) {
	s.storage[ch.account][ch.key] = ch.prevalue
}

func (ch addLogChange) revert(s *StateDB) {
	s.logs = s.logs[:len(s.logs)-1]
}

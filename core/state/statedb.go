// Package state implements the journaled state database engine components
// execute against. Every mutation is recorded in a journal so that an
// in-flight operation can be reverted atomically; Commit persists the settled
// state through core/rawdb into a backing key-value store.
package state

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/xfuel-network/xfengine/common"
	"github.com/xfuel-network/xfengine/core/rawdb"
	"github.com/xfuel-network/xfengine/core/types"
	"github.com/xfuel-network/xfengine/xfdb"
)

// revision is an identified point in the journal that can be reverted to.
type revision struct {
	id           int
	journalIndex int
}

// StateDB holds account balances, per-address storage words and pending audit
// logs. A nil backing store gives a purely in-memory instance (tests).
type StateDB struct {
	db xfdb.KeyValueStore

	balances map[common.Address]*big.Int
	storage  map[common.Address]map[common.Hash]common.Hash
	logs     []*types.Log

	// Journal of state modifications for snapshot/revert.
	journal        []journalEntry
	validRevisions []revision
	nextRevisionID int

	// Dirty tracking for Commit.
	dirtyBalances map[common.Address]struct{}
	dirtyStorage  map[common.Address]map[common.Hash]struct{}
}

// New creates a state database over the given backing store. Uncached reads
// fall through to the store; a nil store reads as empty state.
func New(db xfdb.KeyValueStore) *StateDB {
	return &StateDB{
		db:            db,
		balances:      make(map[common.Address]*big.Int),
		storage:       make(map[common.Address]map[common.Hash]common.Hash),
		dirtyBalances: make(map[common.Address]struct{}),
		dirtyStorage:  make(map[common.Address]map[common.Hash]struct{}),
	}
}

// GetBalance returns the balance of addr. Callers must not mutate the result.
func (s *StateDB) GetBalance(addr common.Address) *big.Int {
	if bal, ok := s.balances[addr]; ok {
		return bal
	}
	bal := new(big.Int)
	if s.db != nil {
		bal = rawdb.ReadBalance(s.db, addr)
	}
	s.balances[addr] = bal
	return bal
}

// AddBalance adds amount to the balance of addr.
func (s *StateDB) AddBalance(addr common.Address, amount *big.Int) {
	if amount == nil || amount.Sign() == 0 {
		return
	}
	prev := s.GetBalance(addr)
	s.journal = append(s.journal, balanceChange{account: addr, prev: prev})
	s.balances[addr] = new(big.Int).Add(prev, amount)
	s.dirtyBalances[addr] = struct{}{}
}

// SubBalance subtracts amount from the balance of addr. Balances are allowed
// to go negative only transiently inside an operation; handlers are expected
// to validate funds before moving them.
func (s *StateDB) SubBalance(addr common.Address, amount *big.Int) {
	if amount == nil || amount.Sign() == 0 {
		return
	}
	prev := s.GetBalance(addr)
	s.journal = append(s.journal, balanceChange{account: addr, prev: prev})
	s.balances[addr] = new(big.Int).Sub(prev, amount)
	s.dirtyBalances[addr] = struct{}{}
}

// GetState returns the storage word at (addr, key).
func (s *StateDB) GetState(addr common.Address, key common.Hash) common.Hash {
	if slots, ok := s.storage[addr]; ok {
		if val, ok := slots[key]; ok {
			return val
		}
	}
	var val common.Hash
	if s.db != nil {
		val = rawdb.ReadStorageSlot(s.db, addr, key)
	}
	if s.storage[addr] == nil {
		s.storage[addr] = make(map[common.Hash]common.Hash)
	}
	s.storage[addr][key] = val
	return val
}

// SetState writes the storage word at (addr, key).
func (s *StateDB) SetState(addr common.Address, key, value common.Hash) {
	prev := s.GetState(addr, key)
	if prev == value {
		return
	}
	s.journal = append(s.journal, storageChange{account: addr, key: key, prevalue: prev})
	s.storage[addr][key] = value
	if s.dirtyStorage[addr] == nil {
		s.dirtyStorage[addr] = make(map[common.Hash]struct{})
	}
	s.dirtyStorage[addr][key] = struct{}{}
}

// AddLog appends an audit log. Logs revert together with state.
func (s *StateDB) AddLog(l *types.Log) {
	s.journal = append(s.journal, addLogChange{})
	l.Index = uint(len(s.logs))
	s.logs = append(s.logs, l)
}

// Logs returns the audit logs accumulated since the last Commit.
func (s *StateDB) Logs() []*types.Log {
	return s.logs
}

// Snapshot returns an identifier for the current revision of the state.
func (s *StateDB) Snapshot() int {
	id := s.nextRevisionID
	s.nextRevisionID++
	s.validRevisions = append(s.validRevisions, revision{id, len(s.journal)})
	return id
}

// RevertToSnapshot reverts all state changes made since the given revision.
func (s *StateDB) RevertToSnapshot(revid int) {
	// Find the snapshot in the stack of valid snapshots.
	idx := sort.Search(len(s.validRevisions), func(i int) bool {
		return s.validRevisions[i].id >= revid
	})
	if idx == len(s.validRevisions) || s.validRevisions[idx].id != revid {
		panic(fmt.Errorf("revision id %v cannot be reverted", revid))
	}
	snapshot := s.validRevisions[idx].journalIndex

	// Replay the journal to undo changes and remove invalidated snapshots.
	for i := len(s.journal) - 1; i >= snapshot; i-- {
		s.journal[i].revert(s)
	}
	s.journal = s.journal[:snapshot]
	s.validRevisions = s.validRevisions[:idx]
}

// Commit flushes dirty balances, storage words and pending logs into the
// backing store. It is a no-op without a backing store.
func (s *StateDB) Commit() error {
	if s.db == nil {
		return nil
	}
	batch := s.db.NewBatch()
	for addr := range s.dirtyBalances {
		rawdb.WriteBalance(batch, addr, s.balances[addr])
	}
	for addr, slots := range s.dirtyStorage {
		for key := range slots {
			rawdb.WriteStorageSlot(batch, addr, key, s.storage[addr][key])
		}
	}
	count := rawdb.ReadLogCount(s.db)
	for _, l := range s.logs {
		rawdb.WriteLog(batch, count, l)
		count++
	}
	rawdb.WriteLogCount(batch, count)
	if err := batch.Write(); err != nil {
		return err
	}
	s.logs = nil
	s.dirtyBalances = make(map[common.Address]struct{})
	s.dirtyStorage = make(map[common.Address]map[common.Hash]struct{})
	s.journal = s.journal[:0]
	s.validRevisions = s.validRevisions[:0]
	return nil
}

package rawdb

import (
	"encoding/binary"
	"encoding/json"
	"math/big"

	"github.com/xfuel-network/xfengine/common"
	"github.com/xfuel-network/xfengine/core/types"
	"github.com/xfuel-network/xfengine/log"
	"github.com/xfuel-network/xfengine/xfdb"
)

// ReadBalance retrieves the committed balance of an account; missing accounts
// read as zero.
func ReadBalance(db xfdb.KeyValueReader, addr common.Address) *big.Int {
	data, err := db.Get(balanceKey(addr))
	if err != nil || len(data) == 0 {
		return new(big.Int)
	}
	return new(big.Int).SetBytes(data)
}

// WriteBalance stores the balance of an account. Zero balances delete the key.
func WriteBalance(db xfdb.KeyValueWriter, addr common.Address, balance *big.Int) {
	if balance.Sign() == 0 {
		if err := db.Delete(balanceKey(addr)); err != nil {
			log.Error("Failed to delete account balance", "addr", addr, "err", err)
		}
		return
	}
	if err := db.Put(balanceKey(addr), balance.Bytes()); err != nil {
		log.Error("Failed to store account balance", "addr", addr, "err", err)
	}
}

// ReadStorageSlot retrieves a committed storage word; missing slots read as
// the zero word.
func ReadStorageSlot(db xfdb.KeyValueReader, addr common.Address, slot common.Hash) common.Hash {
	data, err := db.Get(storageKey(addr, slot))
	if err != nil || len(data) == 0 {
		return common.Hash{}
	}
	return common.BytesToHash(data)
}

// WriteStorageSlot stores a storage word. Zero words delete the key.
func WriteStorageSlot(db xfdb.KeyValueWriter, addr common.Address, slot, value common.Hash) {
	if value == (common.Hash{}) {
		if err := db.Delete(storageKey(addr, slot)); err != nil {
			log.Error("Failed to delete storage slot", "addr", addr, "slot", slot, "err", err)
		}
		return
	}
	if err := db.Put(storageKey(addr, slot), value.Bytes()); err != nil {
		log.Error("Failed to store storage slot", "addr", addr, "slot", slot, "err", err)
	}
}

// ReadLogCount returns the number of committed audit logs.
func ReadLogCount(db xfdb.KeyValueReader) uint64 {
	data, err := db.Get(logCountKey)
	if err != nil || len(data) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(data)
}

// WriteLogCount stores the number of committed audit logs.
func WriteLogCount(db xfdb.KeyValueWriter, n uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], n)
	if err := db.Put(logCountKey, buf[:]); err != nil {
		log.Error("Failed to store log count", "err", err)
	}
}

// ReadLog retrieves the i-th committed audit log, or nil if absent.
func ReadLog(db xfdb.KeyValueReader, i uint64) *types.Log {
	var idx [8]byte
	binary.BigEndian.PutUint64(idx[:], i)
	data, err := db.Get(append(append([]byte{}, logPrefix...), idx[:]...))
	if err != nil || len(data) == 0 {
		return nil
	}
	l := new(types.Log)
	if err := json.Unmarshal(data, l); err != nil {
		log.Error("Invalid committed log record", "index", i, "err", err)
		return nil
	}
	return l
}

// WriteLog stores an audit log at the given index.
func WriteLog(db xfdb.KeyValueWriter, i uint64, l *types.Log) {
	data, err := json.Marshal(l)
	if err != nil {
		log.Error("Failed to encode log record", "index", i, "err", err)
		return
	}
	var idx [8]byte
	binary.BigEndian.PutUint64(idx[:], i)
	if err := db.Put(append(append([]byte{}, logPrefix...), idx[:]...), data); err != nil {
		log.Error("Failed to store log record", "index", i, "err", err)
	}
}

package state

import (
	"math/big"
	"testing"

	"github.com/xfuel-network/xfengine/common"
	"github.com/xfuel-network/xfengine/core/rawdb"
	"github.com/xfuel-network/xfengine/core/types"
	"github.com/xfuel-network/xfengine/xfdb/memorydb"
)

func TestSnapshotRevert(t *testing.T) {
	st := New(nil)
	addr := common.Address{0x01}
	key := common.Hash{0xaa}

	st.AddBalance(addr, big.NewInt(100))
	st.SetState(addr, key, common.Hash{0x01})

	snap := st.Snapshot()
	st.SubBalance(addr, big.NewInt(40))
	st.SetState(addr, key, common.Hash{0x02})
	st.AddLog(&types.Log{Address: addr})

	if got := st.GetBalance(addr); got.Cmp(big.NewInt(60)) != 0 {
		t.Fatalf("balance before revert: %v", got)
	}
	st.RevertToSnapshot(snap)

	if got := st.GetBalance(addr); got.Cmp(big.NewInt(100)) != 0 {
		t.Errorf("balance after revert: %v", got)
	}
	if got := st.GetState(addr, key); got != (common.Hash{0x01}) {
		t.Errorf("storage after revert: %v", got)
	}
	if len(st.Logs()) != 0 {
		t.Errorf("logs after revert: %d", len(st.Logs()))
	}
}

func TestNestedSnapshots(t *testing.T) {
	st := New(nil)
	addr := common.Address{0x02}

	st.AddBalance(addr, big.NewInt(1))
	outer := st.Snapshot()
	st.AddBalance(addr, big.NewInt(2))
	inner := st.Snapshot()
	st.AddBalance(addr, big.NewInt(4))

	st.RevertToSnapshot(inner)
	if got := st.GetBalance(addr); got.Cmp(big.NewInt(3)) != 0 {
		t.Fatalf("after inner revert: %v", got)
	}
	st.RevertToSnapshot(outer)
	if got := st.GetBalance(addr); got.Cmp(big.NewInt(1)) != 0 {
		t.Fatalf("after outer revert: %v", got)
	}
}

func TestLogIndexing(t *testing.T) {
	st := New(nil)
	for i := 0; i < 3; i++ {
		st.AddLog(&types.Log{Address: common.Address{byte(i)}})
	}
	for i, l := range st.Logs() {
		if l.Index != uint(i) {
			t.Errorf("log %d: index %d", i, l.Index)
		}
	}
}

func TestCommitAndReload(t *testing.T) {
	db := memorydb.New()
	st := New(db)
	addr := common.Address{0x03}
	key := common.Hash{0xbb}

	st.AddBalance(addr, big.NewInt(777))
	st.SetState(addr, key, common.Hash{0x07})
	st.AddLog(&types.Log{Address: addr, Time: 42})
	if err := st.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if len(st.Logs()) != 0 {
		t.Errorf("logs survive commit: %d", len(st.Logs()))
	}

	fresh := New(db)
	if got := fresh.GetBalance(addr); got.Cmp(big.NewInt(777)) != 0 {
		t.Errorf("reloaded balance: %v", got)
	}
	if got := fresh.GetState(addr, key); got != (common.Hash{0x07}) {
		t.Errorf("reloaded storage: %v", got)
	}
	if got := rawdb.ReadLogCount(db); got != 1 {
		t.Errorf("persisted log count: %d", got)
	}
	if l := rawdb.ReadLog(db, 0); l == nil || l.Address != addr || l.Time != 42 {
		t.Errorf("persisted log: %+v", l)
	}
}

func TestCommitWithoutStore(t *testing.T) {
	st := New(nil)
	st.AddBalance(common.Address{0x04}, big.NewInt(1))
	if err := st.Commit(); err != nil {
		t.Fatalf("commit without store: %v", err)
	}
}

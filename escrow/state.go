package escrow

import (
	"encoding/binary"
	"math/big"

	"github.com/xfuel-network/xfengine/common"
	"github.com/xfuel-network/xfengine/core/vm"
	"github.com/xfuel-network/xfengine/crypto"
	"github.com/xfuel-network/xfengine/params"
)

// --- slot derivation ---

// escrowSlot hashes (addr[20B] || 0x00 || field) for a per-account storage slot.
func escrowSlot(addr common.Address, field string) common.Hash {
	key := make([]byte, 0, 21+len(field))
	key = append(key, addr.Bytes()...)
	key = append(key, 0x00)
	key = append(key, field...)
	return common.BytesToHash(crypto.Keccak256(key))
}

// globalSlot hashes ("escrow" || 0x00 || field) for a ledger-wide slot.
func globalSlot(field string) common.Hash {
	return common.BytesToHash(crypto.Keccak256(append([]byte("escrow\x00"), field...)))
}

// holderListSlot returns the slot for the i-th lock holder (0-based). The
// list is append-only; withdrawn holders remain with zero principal.
func holderListSlot(i uint64) common.Hash {
	var idx [8]byte
	binary.BigEndian.PutUint64(idx[:], i)
	return common.BytesToHash(crypto.Keccak256(append([]byte("escrow\x00holderList\x00"), idx[:]...)))
}

// --- per-account state ---

func getPrincipal(db vm.StateDB, addr common.Address) *big.Int {
	return db.GetState(params.EscrowAddress, escrowSlot(addr, "principal")).Big()
}

func setPrincipal(db vm.StateDB, addr common.Address, amount *big.Int) {
	db.SetState(params.EscrowAddress, escrowSlot(addr, "principal"), common.BigToHash(amount))
}

func getUnlockTime(db vm.StateDB, addr common.Address) uint64 {
	return db.GetState(params.EscrowAddress, escrowSlot(addr, "unlockTime")).Big().Uint64()
}

func setUnlockTime(db vm.StateDB, addr common.Address, t uint64) {
	db.SetState(params.EscrowAddress, escrowSlot(addr, "unlockTime"),
		common.BigToHash(new(big.Int).SetUint64(t)))
}

func getMultiplierBps(db vm.StateDB, addr common.Address) uint64 {
	bps := db.GetState(params.EscrowAddress, escrowSlot(addr, "permMultiplier")).Big().Uint64()
	if bps == 0 {
		return params.TierBaseMultiplierBps
	}
	return bps
}

func setMultiplierBps(db vm.StateDB, addr common.Address, bps uint64) {
	db.SetState(params.EscrowAddress, escrowSlot(addr, "permMultiplier"),
		common.BigToHash(new(big.Int).SetUint64(bps)))
}

func getYieldDebt(db vm.StateDB, addr common.Address) *big.Int {
	return db.GetState(params.EscrowAddress, escrowSlot(addr, "yieldDebt")).Big()
}

func setYieldDebt(db vm.StateDB, addr common.Address, debt *big.Int) {
	db.SetState(params.EscrowAddress, escrowSlot(addr, "yieldDebt"), common.BigToHash(debt))
}

func getPendingYield(db vm.StateDB, addr common.Address) *big.Int {
	return db.GetState(params.EscrowAddress, escrowSlot(addr, "pendingYield")).Big()
}

func setPendingYield(db vm.StateDB, addr common.Address, amount *big.Int) {
	db.SetState(params.EscrowAddress, escrowSlot(addr, "pendingYield"), common.BigToHash(amount))
}

func isListed(db vm.StateDB, addr common.Address) bool {
	return db.GetState(params.EscrowAddress, escrowSlot(addr, "listed")) != (common.Hash{})
}

func setListed(db vm.StateDB, addr common.Address) {
	db.SetState(params.EscrowAddress, escrowSlot(addr, "listed"),
		common.BigToHash(big.NewInt(1)))
}

// --- ledger-wide state ---

func getTotalLocked(db vm.StateDB) *big.Int {
	return db.GetState(params.EscrowAddress, globalSlot("totalLocked")).Big()
}

func setTotalLocked(db vm.StateDB, amount *big.Int) {
	db.SetState(params.EscrowAddress, globalSlot("totalLocked"), common.BigToHash(amount))
}

func getYieldPerUnit(db vm.StateDB) *big.Int {
	return db.GetState(params.EscrowAddress, globalSlot("yieldPerUnit")).Big()
}

func setYieldPerUnit(db vm.StateDB, v *big.Int) {
	db.SetState(params.EscrowAddress, globalSlot("yieldPerUnit"), common.BigToHash(v))
}

func getTotalYieldDistributed(db vm.StateDB) *big.Int {
	return db.GetState(params.EscrowAddress, globalSlot("totalYieldDistributed")).Big()
}

func setTotalYieldDistributed(db vm.StateDB, v *big.Int) {
	db.SetState(params.EscrowAddress, globalSlot("totalYieldDistributed"), common.BigToHash(v))
}

func readHolderCount(db vm.StateDB) uint64 {
	return db.GetState(params.EscrowAddress, globalSlot("holderCount")).Big().Uint64()
}

func writeHolderCount(db vm.StateDB, n uint64) {
	db.SetState(params.EscrowAddress, globalSlot("holderCount"),
		common.BigToHash(new(big.Int).SetUint64(n)))
}

func readHolderAt(db vm.StateDB, i uint64) common.Address {
	raw := db.GetState(params.EscrowAddress, holderListSlot(i))
	return common.BytesToAddress(raw[12:])
}

func appendHolder(db vm.StateDB, addr common.Address) {
	n := readHolderCount(db)
	var val common.Hash
	copy(val[12:], addr.Bytes())
	db.SetState(params.EscrowAddress, holderListSlot(n), val)
	writeHolderCount(db, n+1)
	setListed(db, addr)
}

func getOwner(db vm.StateDB) common.Address {
	raw := db.GetState(params.EscrowAddress, globalSlot("owner"))
	return common.BytesToAddress(raw[12:])
}

func getVerifier(db vm.StateDB) common.Address {
	raw := db.GetState(params.EscrowAddress, globalSlot("verifier"))
	return common.BytesToAddress(raw[12:])
}

func writeAddressSlot(db vm.StateDB, slot common.Hash, addr common.Address) {
	var val common.Hash
	copy(val[12:], addr.Bytes())
	db.SetState(params.EscrowAddress, slot, val)
}

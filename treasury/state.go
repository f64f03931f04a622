package treasury

import (
	"encoding/binary"
	"math/big"

	"github.com/xfuel-network/xfengine/common"
	"github.com/xfuel-network/xfengine/core/vm"
	"github.com/xfuel-network/xfengine/crypto"
	"github.com/xfuel-network/xfengine/params"
)

const descChunkSize = 32

// govSlot hashes ("treasury" || 0x00 || field) for a governor-wide slot.
func govSlot(field string) common.Hash {
	return common.BytesToHash(crypto.Keccak256(append([]byte("treasury\x00"), field...)))
}

// proposalSlot hashes ("treasury" || 0x00 || id[8] || 0x00 || field) for a
// per-proposal slot.
func proposalSlot(id uint64, field string) common.Hash {
	var idb [8]byte
	binary.BigEndian.PutUint64(idb[:], id)
	key := make([]byte, 0, 18+len(field))
	key = append(key, "treasury\x00"...)
	key = append(key, idb[:]...)
	key = append(key, 0x00)
	key = append(key, field...)
	return common.BytesToHash(crypto.Keccak256(key))
}

// voteSlot hashes the has-voted marker for (id, voter).
func voteSlot(id uint64, voter common.Address) common.Hash {
	var idb [8]byte
	binary.BigEndian.PutUint64(idb[:], id)
	key := make([]byte, 0, 18+20)
	key = append(key, "treasury\x00"...)
	key = append(key, idb[:]...)
	key = append(key, 0x00)
	key = append(key, voter.Bytes()...)
	return common.BytesToHash(crypto.Keccak256(append(key, "voted"...)))
}

func vaultSlot(v Vault) common.Hash {
	return govSlot("vault\x00" + v.String())
}

func getVaultBalance(db vm.StateDB, v Vault) *big.Int {
	return db.GetState(params.TreasuryGovernorAddress, vaultSlot(v)).Big()
}

func setVaultBalance(db vm.StateDB, v Vault, amount *big.Int) {
	db.SetState(params.TreasuryGovernorAddress, vaultSlot(v), common.BigToHash(amount))
}

func getProposalCount(db vm.StateDB) uint64 {
	return db.GetState(params.TreasuryGovernorAddress, govSlot("proposalCount")).Big().Uint64()
}

func setProposalCount(db vm.StateDB, n uint64) {
	db.SetState(params.TreasuryGovernorAddress, govSlot("proposalCount"),
		common.BigToHash(new(big.Int).SetUint64(n)))
}

func getOwner(db vm.StateDB) common.Address {
	return common.BytesToAddress(db.GetState(params.TreasuryGovernorAddress, govSlot("owner")).Bytes())
}

func setOwner(db vm.StateDB, owner common.Address) {
	db.SetState(params.TreasuryGovernorAddress, govSlot("owner"), common.BytesToHash(owner.Bytes()))
}

func getPropBig(db vm.StateDB, id uint64, field string) *big.Int {
	return db.GetState(params.TreasuryGovernorAddress, proposalSlot(id, field)).Big()
}

func setPropBig(db vm.StateDB, id uint64, field string, v *big.Int) {
	db.SetState(params.TreasuryGovernorAddress, proposalSlot(id, field), common.BigToHash(v))
}

func getPropUint(db vm.StateDB, id uint64, field string) uint64 {
	return getPropBig(db, id, field).Uint64()
}

func setPropUint(db vm.StateDB, id uint64, field string, v uint64) {
	setPropBig(db, id, field, new(big.Int).SetUint64(v))
}

func getPropAddr(db vm.StateDB, id uint64, field string) common.Address {
	return common.BytesToAddress(db.GetState(params.TreasuryGovernorAddress, proposalSlot(id, field)).Bytes())
}

func setPropAddr(db vm.StateDB, id uint64, field string, addr common.Address) {
	db.SetState(params.TreasuryGovernorAddress, proposalSlot(id, field), common.BytesToHash(addr.Bytes()))
}

func getPropFlag(db vm.StateDB, id uint64, field string) bool {
	return getPropBig(db, id, field).Sign() != 0
}

func setPropFlag(db vm.StateDB, id uint64, field string, v bool) {
	h := common.Hash{}
	if v {
		h = common.BigToHash(common.Big1)
	}
	db.SetState(params.TreasuryGovernorAddress, proposalSlot(id, field), h)
}

// Descriptions are stored as a length slot followed by 32-byte chunks.

func descChunkSlot(id uint64, i uint64) common.Hash {
	var ib [8]byte
	binary.BigEndian.PutUint64(ib[:], i)
	return proposalSlot(id, "desc\x00"+string(ib[:]))
}

func setDescription(db vm.StateDB, id uint64, desc string) {
	data := []byte(desc)
	setPropUint(db, id, "descLen", uint64(len(data)))
	for i := 0; i*descChunkSize < len(data); i++ {
		chunk := data[i*descChunkSize:]
		if len(chunk) > descChunkSize {
			chunk = chunk[:descChunkSize]
		}
		var word [descChunkSize]byte
		copy(word[:], chunk)
		db.SetState(params.TreasuryGovernorAddress, descChunkSlot(id, uint64(i)),
			common.BytesToHash(word[:]))
	}
}

func getDescription(db vm.StateDB, id uint64) string {
	n := getPropUint(db, id, "descLen")
	if n == 0 {
		return ""
	}
	data := make([]byte, 0, n)
	for i := uint64(0); i*descChunkSize < n; i++ {
		word := db.GetState(params.TreasuryGovernorAddress, descChunkSlot(id, i))
		data = append(data, word.Bytes()...)
	}
	return string(data[:n])
}

func hasVoted(db vm.StateDB, id uint64, voter common.Address) bool {
	return db.GetState(params.TreasuryGovernorAddress, voteSlot(id, voter)).Big().Sign() != 0
}

func markVoted(db vm.StateDB, id uint64, voter common.Address) {
	db.SetState(params.TreasuryGovernorAddress, voteSlot(id, voter), common.BigToHash(common.Big1))
}

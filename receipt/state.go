package receipt

import (
	"math/big"

	"github.com/xfuel-network/xfengine/common"
	"github.com/xfuel-network/xfengine/core/vm"
	"github.com/xfuel-network/xfengine/crypto"
	"github.com/xfuel-network/xfengine/params"
)

// receiptSlot hashes (addr[20B] || 0x00 || field) for per-account state
// under the receipt token address.
func receiptSlot(addr common.Address, field string) common.Hash {
	key := make([]byte, 0, 21+len(field))
	key = append(key, addr.Bytes()...)
	key = append(key, 0x00)
	key = append(key, field...)
	return common.BytesToHash(crypto.Keccak256(key))
}

// tokenSlot hashes ("receipt" || 0x00 || field) for a token-wide slot.
func tokenSlot(field string) common.Hash {
	return common.BytesToHash(crypto.Keccak256(append([]byte("receipt\x00"), field...)))
}

func getAmount(db vm.StateDB, addr common.Address) *big.Int {
	return db.GetState(params.ReceiptAddress, receiptSlot(addr, "amount")).Big()
}

func setAmount(db vm.StateDB, addr common.Address, amount *big.Int) {
	db.SetState(params.ReceiptAddress, receiptSlot(addr, "amount"), common.BigToHash(amount))
}

func getMintTime(db vm.StateDB, addr common.Address) uint64 {
	return db.GetState(params.ReceiptAddress, receiptSlot(addr, "mintTime")).Big().Uint64()
}

func setMintTime(db vm.StateDB, addr common.Address, t uint64) {
	db.SetState(params.ReceiptAddress, receiptSlot(addr, "mintTime"),
		common.BigToHash(new(big.Int).SetUint64(t)))
}

func getRedemptionPeriod(db vm.StateDB, addr common.Address) uint64 {
	return db.GetState(params.ReceiptAddress, receiptSlot(addr, "period")).Big().Uint64()
}

func setRedemptionPeriod(db vm.StateDB, addr common.Address, period uint64) {
	db.SetState(params.ReceiptAddress, receiptSlot(addr, "period"),
		common.BigToHash(new(big.Int).SetUint64(period)))
}

func getPriorityFlag(db vm.StateDB, addr common.Address) bool {
	return db.GetState(params.ReceiptAddress, receiptSlot(addr, "priority")).Big().Sign() != 0
}

func setPriorityFlag(db vm.StateDB, addr common.Address, flag bool) {
	v := common.Hash{}
	if flag {
		v = common.BigToHash(common.Big1)
	}
	db.SetState(params.ReceiptAddress, receiptSlot(addr, "priority"), v)
}

func isMinter(db vm.StateDB, addr common.Address) bool {
	return db.GetState(params.ReceiptAddress, receiptSlot(addr, "minter")).Big().Sign() != 0
}

func setMinter(db vm.StateDB, addr common.Address, ok bool) {
	v := common.Hash{}
	if ok {
		v = common.BigToHash(common.Big1)
	}
	db.SetState(params.ReceiptAddress, receiptSlot(addr, "minter"), v)
}

func getTotalSupply(db vm.StateDB) *big.Int {
	return db.GetState(params.ReceiptAddress, tokenSlot("totalSupply")).Big()
}

func setTotalSupply(db vm.StateDB, total *big.Int) {
	db.SetState(params.ReceiptAddress, tokenSlot("totalSupply"), common.BigToHash(total))
}

func getOwner(db vm.StateDB) common.Address {
	return common.BytesToAddress(db.GetState(params.ReceiptAddress, tokenSlot("owner")).Bytes())
}

func setOwner(db vm.StateDB, owner common.Address) {
	db.SetState(params.ReceiptAddress, tokenSlot("owner"), common.BytesToHash(owner.Bytes()))
}

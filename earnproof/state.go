package earnproof

import (
	"math/big"

	"github.com/xfuel-network/xfengine/common"
	"github.com/xfuel-network/xfengine/core/vm"
	"github.com/xfuel-network/xfengine/crypto"
	"github.com/xfuel-network/xfengine/params"
)

// proofSlot hashes (account[20B] || 0x00 || field) for per-account registry
// state under the proof registry address.
func proofSlot(addr common.Address, field string) common.Hash {
	key := make([]byte, 0, 21+len(field))
	key = append(key, addr.Bytes()...)
	key = append(key, 0x00)
	key = append(key, field...)
	return common.BytesToHash(crypto.Keccak256(key))
}

// registrySlot hashes ("earnproof" || 0x00 || field) for a registry-wide slot.
func registrySlot(field string) common.Hash {
	return common.BytesToHash(crypto.Keccak256(append([]byte("earnproof\x00"), field...)))
}

// proofID identifies a consumed attestation by its (account, nonce) pair.
// Earnings are deliberately excluded so a replayed nonce is rejected even
// with a different amount.
func proofID(account common.Address, nonce uint64) common.Hash {
	return common.BytesToHash(crypto.Keccak256(
		account.Bytes(),
		common.BigToHash(new(big.Int).SetUint64(nonce)).Bytes(),
	))
}

func isConsumed(db vm.StateDB, id common.Hash) bool {
	return db.GetState(params.ProofRegistryAddress, id).Big().Sign() != 0
}

func markConsumed(db vm.StateDB, id common.Hash) {
	db.SetState(params.ProofRegistryAddress, id, common.BigToHash(common.Big1))
}

func getCumulativeEarnings(db vm.StateDB, account common.Address) *big.Int {
	return db.GetState(params.ProofRegistryAddress, proofSlot(account, "cumulative")).Big()
}

func setCumulativeEarnings(db vm.StateDB, account common.Address, total *big.Int) {
	db.SetState(params.ProofRegistryAddress, proofSlot(account, "cumulative"), common.BigToHash(total))
}

func isAuthorizedSigner(db vm.StateDB, signer common.Address) bool {
	return db.GetState(params.ProofRegistryAddress, proofSlot(signer, "signer")).Big().Sign() != 0
}

func setAuthorizedSigner(db vm.StateDB, signer common.Address, ok bool) {
	v := common.Hash{}
	if ok {
		v = common.BigToHash(common.Big1)
	}
	db.SetState(params.ProofRegistryAddress, proofSlot(signer, "signer"), v)
}

func getOwner(db vm.StateDB) common.Address {
	return common.BytesToAddress(db.GetState(params.ProofRegistryAddress, registrySlot("owner")).Bytes())
}

func setOwner(db vm.StateDB, owner common.Address) {
	db.SetState(params.ProofRegistryAddress, registrySlot("owner"), common.BytesToHash(owner.Bytes()))
}

// gen_genesis_slots prints the storage slots a genesis file needs to
// pre-seed the tokenomics engine: component owners, the escrow's registered
// verifier, the revenue treasury destination, the fee switch defaults, the
// splitter's receipt minting right, and any authorized attestation signers.
//
// Usage: gen_genesis_slots <owner> [signer1] [signer2] ...
package main

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"

	"github.com/xfuel-network/xfengine/common"
	"github.com/xfuel-network/xfengine/crypto"
	"github.com/xfuel-network/xfengine/params"
)

// accountSlot hashes (addr[20B] || 0x00 || field), the per-account scheme
// shared by every component.
func accountSlot(addr common.Address, field string) common.Hash {
	key := make([]byte, 0, common.AddressLength+1+len(field))
	key = append(key, addr.Bytes()...)
	key = append(key, 0x00)
	key = append(key, field...)
	return common.BytesToHash(crypto.Keccak256(key))
}

// componentSlot hashes (prefix || 0x00 || field), the component-wide scheme.
func componentSlot(prefix, field string) common.Hash {
	key := append([]byte(prefix+"\x00"), field...)
	return common.BytesToHash(crypto.Keccak256(key))
}

func addrHash(a common.Address) common.Hash {
	return common.BytesToHash(a.Bytes())
}

func uint64Hash(n uint64) common.Hash {
	return common.BigToHash(new(big.Int).SetUint64(n))
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_genesis_slots <owner> [signer1] [signer2] ...")
		os.Exit(1)
	}
	owner := common.HexToAddress(os.Args[1])
	var signers []common.Address
	for _, arg := range os.Args[2:] {
		signers = append(signers, common.HexToAddress(arg))
	}

	storage := map[common.Address]map[string]string{}
	put := func(account common.Address, slot, value common.Hash) {
		m, ok := storage[account]
		if !ok {
			m = map[string]string{}
			storage[account] = m
		}
		m[slot.Hex()] = value.Hex()
	}

	ownerHash := addrHash(owner)
	put(params.EscrowAddress, componentSlot("escrow", "owner"), ownerHash)
	put(params.EscrowAddress, componentSlot("escrow", "verifier"), addrHash(params.ProofRegistryAddress))
	put(params.ProofRegistryAddress, componentSlot("earnproof", "owner"), ownerHash)
	put(params.ReceiptAddress, componentSlot("receipt", "owner"), ownerHash)
	put(params.ReceiptAddress, accountSlot(params.RevenueAddress, "minter"), uint64Hash(1))
	put(params.BuybackAddress, componentSlot("buyback", "owner"), ownerHash)
	put(params.BuybackAddress, componentSlot("buyback", "splitter"), addrHash(params.RevenueAddress))
	put(params.RevenueAddress, componentSlot("revenue", "owner"), ownerHash)
	put(params.RevenueAddress, componentSlot("revenue", "treasury"), addrHash(params.DefaultTreasuryAddress))
	put(params.FeePolicyAddress, componentSlot("feepolicy", "owner"), ownerHash)
	put(params.FeePolicyAddress, componentSlot("feepolicy", "enabled"), uint64Hash(1))
	put(params.FeePolicyAddress, componentSlot("feepolicy", "feeBps"), uint64Hash(params.GrowthFeeBps))
	put(params.TreasuryGovernorAddress, componentSlot("treasury", "owner"), ownerHash)

	for _, s := range signers {
		put(params.ProofRegistryAddress, accountSlot(s, "signer"), uint64Hash(1))
	}

	out := map[string]map[string]string{}
	for account, slots := range storage {
		out[account.Hex()] = slots
	}
	enc, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "encode:", err)
		os.Exit(1)
	}
	fmt.Println(string(enc))
}

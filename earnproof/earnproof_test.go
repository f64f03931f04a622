package earnproof

import (
	"math/big"
	"testing"

	"github.com/xfuel-network/xfengine/common"
	"github.com/xfuel-network/xfengine/core/state"
	"github.com/xfuel-network/xfengine/crypto"
	"github.com/xfuel-network/xfengine/escrow"
	"github.com/xfuel-network/xfengine/params"
)

const t0 = uint64(1_000_000)

var owner = common.Address{0xee}

// newTestState creates a StateDB with the registry and escrow initialized
// and the registry wired as the escrow's multiplier authority.
func newTestState(t *testing.T) *state.StateDB {
	t.Helper()
	st := state.New(nil)
	escrow.Initialize(st, owner)
	if err := escrow.SetVerifier(st, owner, params.ProofRegistryAddress); err != nil {
		t.Fatalf("set verifier: %v", err)
	}
	Initialize(st, owner)
	return st
}

func tAddr(b byte) common.Address { return common.Address{b} }

// tokens converts whole tokens to base units.
func tokens(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), params.TokenScale)
}

func TestSignerManagement(t *testing.T) {
	st := newTestState(t)
	signer := tAddr(0x01)

	if err := AuthorizeSigner(st, tAddr(0x02), signer); err != ErrNotOwner {
		t.Errorf("authorize by stranger: want ErrNotOwner, got %v", err)
	}
	if err := AuthorizeSigner(st, owner, common.Address{}); err != ErrInvalidSigner {
		t.Errorf("authorize zero: want ErrInvalidSigner, got %v", err)
	}
	if err := AuthorizeSigner(st, owner, signer); err != nil {
		t.Fatalf("authorize: %v", err)
	}
	if !IsAuthorizedSigner(st, signer) {
		t.Error("signer not authorized after add")
	}
	if err := RevokeSigner(st, owner, signer); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if IsAuthorizedSigner(st, signer) {
		t.Error("signer still authorized after revoke")
	}
}

func TestSignRecoverRoundtrip(t *testing.T) {
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	account := tAddr(0x03)
	earnings := tokens(12_000)

	sig, err := SignProof(key, account, earnings, 7)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	got, err := RecoverSigner(account, earnings, 7, sig)
	if err != nil {
		t.Fatalf("recover: %v", err)
	}
	if want := crypto.PubkeyToAddress(key.PublicKey); got != want {
		t.Errorf("recovered signer: want %v, got %v", want, got)
	}

	// Legacy 27/28 recovery ids are accepted too.
	legacy := make([]byte, len(sig))
	copy(legacy, sig)
	legacy[crypto.RecoveryIDOffset] += 27
	got, err = RecoverSigner(account, earnings, 7, legacy)
	if err != nil {
		t.Fatalf("recover legacy: %v", err)
	}
	if want := crypto.PubkeyToAddress(key.PublicKey); got != want {
		t.Errorf("legacy recovered signer: want %v, got %v", want, got)
	}

	// A different tuple recovers a different signer.
	other, err := RecoverSigner(account, earnings, 8, sig)
	if err == nil && other == crypto.PubkeyToAddress(key.PublicKey) {
		t.Error("signature valid for a different nonce")
	}

	if _, err := RecoverSigner(account, earnings, 7, sig[:64]); err != ErrInvalidSignature {
		t.Errorf("short signature: want ErrInvalidSignature, got %v", err)
	}
}

func TestVerifyProof(t *testing.T) {
	st := newTestState(t)
	key, _ := crypto.GenerateKey()
	signer := crypto.PubkeyToAddress(key.PublicKey)
	account := tAddr(0x04)

	earnings := tokens(12_000)
	sig, err := SignProof(key, account, earnings, 1)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if err := VerifyProof(st, common.Address{}, earnings, 1, sig, t0); err != ErrInvalidAccount {
		t.Errorf("zero account: want ErrInvalidAccount, got %v", err)
	}
	if err := VerifyProof(st, account, big.NewInt(0), 1, sig, t0); err != ErrZeroEarnings {
		t.Errorf("zero earnings: want ErrZeroEarnings, got %v", err)
	}
	// Signer not yet authorized.
	if err := VerifyProof(st, account, earnings, 1, sig, t0); err != ErrUnauthorizedSigner {
		t.Errorf("unauthorized: want ErrUnauthorizedSigner, got %v", err)
	}

	if err := AuthorizeSigner(st, owner, signer); err != nil {
		t.Fatalf("authorize: %v", err)
	}
	if err := VerifyProof(st, account, earnings, 1, sig, t0); err != nil {
		t.Fatalf("verify: %v", err)
	}

	if got := TotalProvenEarnings(st, account); got.Cmp(earnings) != 0 {
		t.Errorf("cumulative: want %v, got %v", earnings, got)
	}
	if !IsProofConsumed(st, account, 1) {
		t.Error("proof not marked consumed")
	}
	// Replay fails regardless of amount.
	if err := VerifyProof(st, account, earnings, 1, sig, t0); err != ErrProofConsumed {
		t.Errorf("replay: want ErrProofConsumed, got %v", err)
	}

	// 12k cumulative crosses tier one: multiplier 1.5x in the escrow.
	if got := escrow.PermanentMultiplier(st, account); got != params.TierOneMultiplierBps {
		t.Errorf("escrow multiplier: want %d, got %d", params.TierOneMultiplierBps, got)
	}
}

func TestVerifyProofTiers(t *testing.T) {
	st := newTestState(t)
	key, _ := crypto.GenerateKey()
	if err := AuthorizeSigner(st, owner, crypto.PubkeyToAddress(key.PublicKey)); err != nil {
		t.Fatalf("authorize: %v", err)
	}
	account := tAddr(0x05)

	steps := []struct {
		earnings *big.Int
		wantBps  uint64
	}{
		{tokens(5_000), params.TierBaseMultiplierBps},  // 5k: below tier one
		{tokens(5_000), params.TierOneMultiplierBps},   // 10k: tier one
		{tokens(40_000), params.TierTwoMultiplierBps},   // 50k: tier two
		{tokens(50_000), params.TierThreeMultiplierBps}, // 100k: tier three
	}
	for i, step := range steps {
		sig, err := SignProof(key, account, step.earnings, uint64(i))
		if err != nil {
			t.Fatalf("sign %d: %v", i, err)
		}
		if err := VerifyProof(st, account, step.earnings, uint64(i), sig, t0); err != nil {
			t.Fatalf("verify %d: %v", i, err)
		}
		if got := GetMultiplier(st, account); got != step.wantBps {
			t.Errorf("step %d multiplier: want %d, got %d", i, step.wantBps, got)
		}
		if got := escrow.PermanentMultiplier(st, account); got != step.wantBps {
			t.Errorf("step %d escrow multiplier: want %d, got %d", i, step.wantBps, got)
		}
	}
}

func TestMultiplierFor(t *testing.T) {
	cases := []struct {
		cumulative *big.Int
		want       uint64
	}{
		{big.NewInt(0), params.TierBaseMultiplierBps},
		{new(big.Int).Sub(params.TierOneEarnings, big.NewInt(1)), params.TierBaseMultiplierBps},
		{params.TierOneEarnings, params.TierOneMultiplierBps},
		{params.TierTwoEarnings, params.TierTwoMultiplierBps},
		{params.TierThreeEarnings, params.TierThreeMultiplierBps},
		{tokens(1_000_000), params.TierThreeMultiplierBps},
	}
	for _, c := range cases {
		if got := MultiplierFor(c.cumulative); got != c.want {
			t.Errorf("MultiplierFor(%v): want %d, got %d", c.cumulative, c.want, got)
		}
	}
}

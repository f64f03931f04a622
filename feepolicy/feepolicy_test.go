package feepolicy

import (
	"math/big"
	"testing"

	"github.com/xfuel-network/xfengine/common"
	"github.com/xfuel-network/xfengine/core/state"
	"github.com/xfuel-network/xfengine/escrow"
	"github.com/xfuel-network/xfengine/params"
)

const t0 = uint64(1_000_000)

var owner = common.Address{0xee}

func newTestState() *state.StateDB {
	st := state.New(nil)
	escrow.Initialize(st, owner)
	Initialize(st, owner)
	return st
}

func tAddr(b byte) common.Address { return common.Address{b} }

// lockFor gives an address voting power by locking for the full duration.
func lockFor(t *testing.T, st *state.StateDB, a common.Address, amount *big.Int) {
	t.Helper()
	st.AddBalance(a, amount)
	if err := escrow.CreateLock(st, a, amount, t0+params.MaxLockDuration, t0); err != nil {
		t.Fatalf("lock: %v", err)
	}
}

func TestInitialState(t *testing.T) {
	st := newTestState()
	if !IsFeesEnabled(st) {
		t.Error("fees not enabled initially")
	}
	if got := GetFeeMode(st); got != ModeGrowth {
		t.Errorf("mode: want growth, got %v", got)
	}
	if got := GetFeeMultiplier(st); got != params.GrowthFeeBps {
		t.Errorf("multiplier: want %d, got %d", params.GrowthFeeBps, got)
	}
}

func TestAuthorization(t *testing.T) {
	st := newTestState()
	stranger := tAddr(0x01)
	whale := tAddr(0x02)

	if err := SetFeesEnabled(st, stranger, false, t0); err != ErrUnauthorized {
		t.Errorf("stranger: want ErrUnauthorized, got %v", err)
	}
	if err := SetFeesEnabled(st, owner, false, t0); err != nil {
		t.Fatalf("owner: %v", err)
	}

	// Voting power at the threshold authorizes a non-owner. A full-duration
	// lock carries a 4x multiplier, so a quarter of the threshold suffices.
	principal := new(big.Int).Div(params.MinVotingPowerForFeeChange, big.NewInt(4))
	lockFor(t, st, whale, principal)
	if err := SetFeesEnabled(st, whale, true, t0); err != nil {
		t.Errorf("whale: %v", err)
	}
}

func TestFeeModeAndCooldown(t *testing.T) {
	st := newTestState()

	if err := SetFeeMode(st, owner, ModeExtraction, t0); err != nil {
		t.Fatalf("set extraction: %v", err)
	}
	if got := GetFeeMultiplier(st); got != params.ExtractionFeeBps {
		t.Errorf("multiplier: want %d, got %d", params.ExtractionFeeBps, got)
	}

	// Inside the cooldown both gated setters fail; the enable flag is
	// exempt.
	if err := SetFeeMode(st, owner, ModeGrowth, t0+1); err != ErrCooldownActive {
		t.Errorf("mode in cooldown: want ErrCooldownActive, got %v", err)
	}
	if err := SetCustomFee(st, owner, 500, t0+1); err != ErrCooldownActive {
		t.Errorf("custom in cooldown: want ErrCooldownActive, got %v", err)
	}
	if err := SetFeesEnabled(st, owner, false, t0+1); err != nil {
		t.Errorf("enable flag in cooldown: %v", err)
	}

	if !IsCooldownActive(st, t0+1) {
		t.Error("cooldown not reported active")
	}
	if got := GetCooldownTimeRemaining(st, t0+1); got != params.FeeChangeCooldown-1 {
		t.Errorf("remaining: want %d, got %d", params.FeeChangeCooldown-1, got)
	}

	after := t0 + params.FeeChangeCooldown
	if IsCooldownActive(st, after) {
		t.Error("cooldown still active after window")
	}
	if err := SetFeeMode(st, owner, ModeGrowth, after); err != nil {
		t.Fatalf("set growth after cooldown: %v", err)
	}
	if got := GetFeeMode(st); got != ModeGrowth {
		t.Errorf("mode: want growth, got %v", got)
	}
}

func TestSetCustomFee(t *testing.T) {
	st := newTestState()

	if err := SetCustomFee(st, owner, 0, t0); err != ErrZeroFee {
		t.Errorf("zero fee: want ErrZeroFee, got %v", err)
	}
	if err := SetCustomFee(st, owner, params.MaxFeeBps+1, t0); err != ErrFeeTooHigh {
		t.Errorf("too high: want ErrFeeTooHigh, got %v", err)
	}
	if err := SetCustomFee(st, owner, 500, t0); err != nil {
		t.Fatalf("set custom: %v", err)
	}
	if got := GetFeeMultiplier(st); got != 500 {
		t.Errorf("multiplier: want 500, got %d", got)
	}
}

func TestEffectiveFee(t *testing.T) {
	st := newTestState()
	base := big.NewInt(1_000_000)

	// Growth mode: 10 bps.
	if got := GetEffectiveFee(st, base); got.Cmp(big.NewInt(1_000)) != 0 {
		t.Errorf("growth fee: want 1000, got %v", got)
	}
	if err := SetFeeMode(st, owner, ModeExtraction, t0); err != nil {
		t.Fatalf("set extraction: %v", err)
	}
	if got := GetEffectiveFee(st, base); got.Cmp(big.NewInt(10_000)) != 0 {
		t.Errorf("extraction fee: want 10000, got %v", got)
	}

	// Disabled: everything reads zero.
	if err := SetFeesEnabled(st, owner, false, t0); err != nil {
		t.Fatalf("disable: %v", err)
	}
	if got := GetEffectiveFee(st, base); got.Sign() != 0 {
		t.Errorf("disabled fee: want 0, got %v", got)
	}
	if got := GetFeeMultiplier(st); got != 0 {
		t.Errorf("disabled multiplier: want 0, got %d", got)
	}
}

func TestSetMinVotingPower(t *testing.T) {
	st := newTestState()
	voter := tAddr(0x03)

	if err := SetMinVotingPower(st, voter, big.NewInt(1)); err != ErrNotOwner {
		t.Errorf("set by stranger: want ErrNotOwner, got %v", err)
	}
	// Lower the bar so a tiny lock authorizes.
	if err := SetMinVotingPower(st, owner, big.NewInt(1)); err != nil {
		t.Fatalf("set min: %v", err)
	}
	lockFor(t, st, voter, big.NewInt(1))
	if err := SetFeeMode(st, voter, ModeExtraction, t0); err != nil {
		t.Errorf("low-power change after lowering bar: %v", err)
	}
}

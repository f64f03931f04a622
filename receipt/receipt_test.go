package receipt

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

// fundReserve backs redemptions with balance at the token address.
func fundReserve(st *state.StateDB, amount int64) {
	st.AddBalance(params.ReceiptAddress, big.NewInt(amount))
}

func TestMintValidation(t *testing.T) {
	st := newTestState()
	a := tAddr(0x01)

	if err := Mint(st, tAddr(0x02), a, big.NewInt(100), 0, false, t0); err != ErrNotMinter {
		t.Errorf("mint by stranger: want ErrNotMinter, got %v", err)
	}
	if err := Mint(st, owner, common.Address{}, big.NewInt(100), 0, false, t0); err != ErrMintToZero {
		t.Errorf("mint to zero: want ErrMintToZero, got %v", err)
	}
	if err := Mint(st, owner, a, big.NewInt(0), 0, false, t0); err != ErrZeroAmount {
		t.Errorf("zero amount: want ErrZeroAmount, got %v", err)
	}
	if err := Mint(st, owner, a, big.NewInt(100), params.MinRedemptionPeriod-1, false, t0); err != ErrPeriodTooShort {
		t.Errorf("short period: want ErrPeriodTooShort, got %v", err)
	}
	if err := Mint(st, owner, a, big.NewInt(100), params.MaxRedemptionPeriod+1, false, t0); err != ErrPeriodTooLong {
		t.Errorf("long period: want ErrPeriodTooLong, got %v", err)
	}

	if err := Mint(st, owner, a, big.NewInt(100), 0, false, t0); err != nil {
		t.Fatalf("mint: %v", err)
	}
	r := GetReceipt(st, a)
	if r.Amount.Cmp(big.NewInt(100)) != 0 {
		t.Errorf("amount: want 100, got %v", r.Amount)
	}
	if r.RedemptionPeriod != params.DefaultRedemptionPeriod {
		t.Errorf("period: want default %d, got %d", params.DefaultRedemptionPeriod, r.RedemptionPeriod)
	}
	if r.PriorityFlag {
		t.Error("priority flag set unexpectedly")
	}
	if got := TotalSupply(st); got.Cmp(big.NewInt(100)) != 0 {
		t.Errorf("total supply: want 100, got %v", got)
	}
}

func TestMintAccumulatesLatestGoverns(t *testing.T) {
	st := newTestState()
	a := tAddr(0x03)

	if err := Mint(st, owner, a, big.NewInt(100), 0, false, t0); err != nil {
		t.Fatalf("first mint: %v", err)
	}
	custom := uint64(180 * 24 * 3600)
	if err := Mint(st, owner, a, big.NewInt(50), custom, true, t0+1000); err != nil {
		t.Fatalf("second mint: %v", err)
	}
	r := GetReceipt(st, a)
	if r.Amount.Cmp(big.NewInt(150)) != 0 {
		t.Errorf("amount: want 150, got %v", r.Amount)
	}
	if r.MintTime != t0+1000 {
		t.Errorf("mint time: want %d, got %d", t0+1000, r.MintTime)
	}
	if r.RedemptionPeriod != custom {
		t.Errorf("period: want %d, got %d", custom, r.RedemptionPeriod)
	}
	if !HasPriorityFlag(st, a) {
		t.Error("priority flag lost")
	}
}

func TestMinterSet(t *testing.T) {
	st := newTestState()
	minter := tAddr(0x04)
	a := tAddr(0x05)

	if err := AddMinter(st, minter, minter); err != ErrNotOwner {
		t.Errorf("add by stranger: want ErrNotOwner, got %v", err)
	}
	if err := AddMinter(st, owner, minter); err != nil {
		t.Fatalf("add minter: %v", err)
	}
	if err := Mint(st, minter, a, big.NewInt(100), 0, false, t0); err != nil {
		t.Fatalf("mint by minter: %v", err)
	}
	if err := RemoveMinter(st, owner, minter); err != nil {
		t.Fatalf("remove minter: %v", err)
	}
	if err := Mint(st, minter, a, big.NewInt(100), 0, false, t0); err != ErrNotMinter {
		t.Errorf("mint by removed minter: want ErrNotMinter, got %v", err)
	}
	// The revenue splitter is a minter out of the box.
	if !IsMinter(st, params.RevenueAddress) {
		t.Error("revenue splitter not a default minter")
	}
}

func TestAdminMintBatch(t *testing.T) {
	st := newTestState()
	a, b := tAddr(0x06), tAddr(0x07)

	err := AdminMintBatch(st, owner,
		[]common.Address{a},
		[]*big.Int{big.NewInt(100), big.NewInt(200)},
		[]uint64{0},
		[]bool{false},
		t0)
	if err != ErrLengthMismatch {
		t.Errorf("mismatched slices: want ErrLengthMismatch, got %v", err)
	}

	err = AdminMintBatch(st, owner,
		[]common.Address{a, b},
		[]*big.Int{big.NewInt(100), big.NewInt(200)},
		[]uint64{0, 0},
		[]bool{false, true},
		t0)
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if got := BalanceOf(st, a); got.Cmp(big.NewInt(100)) != 0 {
		t.Errorf("balance a: want 100, got %v", got)
	}
	if got := BalanceOf(st, b); got.Cmp(big.NewInt(200)) != 0 {
		t.Errorf("balance b: want 200, got %v", got)
	}
	if !HasPriorityFlag(st, b) {
		t.Error("priority flag missing on b")
	}
}

func TestSoulbound(t *testing.T) {
	st := newTestState()
	a, b := tAddr(0x08), tAddr(0x09)
	if err := Mint(st, owner, a, big.NewInt(100), 0, false, t0); err != nil {
		t.Fatalf("mint: %v", err)
	}

	if err := Transfer(st, a, b, big.NewInt(50)); err != ErrSoulboundTransfer {
		t.Errorf("transfer: want ErrSoulboundTransfer, got %v", err)
	}
	if err := TransferFrom(st, b, a, b, big.NewInt(50)); err != ErrSoulboundTransfer {
		t.Errorf("transferFrom: want ErrSoulboundTransfer, got %v", err)
	}
	if err := Approve(st, a, b, big.NewInt(50)); err != ErrSoulboundApproval {
		t.Errorf("approve: want ErrSoulboundApproval, got %v", err)
	}
	if got := Allowance(st, a, b); got.Sign() != 0 {
		t.Errorf("allowance: want 0, got %v", got)
	}
}

func TestRedeem(t *testing.T) {
	st := newTestState()
	a := tAddr(0x0a)
	fundReserve(st, 1000)

	if err := Redeem(st, a, big.NewInt(100), t0); err != ErrNoReceipt {
		t.Errorf("redeem without receipt: want ErrNoReceipt, got %v", err)
	}
	if err := Mint(st, owner, a, big.NewInt(1000), 0, false, t0); err != nil {
		t.Fatalf("mint: %v", err)
	}

	if err := Redeem(st, a, big.NewInt(100), t0+params.DefaultRedemptionPeriod-1); err != ErrPeriodNotElapsed {
		t.Errorf("early redeem: want ErrPeriodNotElapsed, got %v", err)
	}
	mature := t0 + params.DefaultRedemptionPeriod
	if err := Redeem(st, a, big.NewInt(2000), mature); err != ErrExceedsReceipt {
		t.Errorf("over redeem: want ErrExceedsReceipt, got %v", err)
	}
	if err := Redeem(st, a, big.NewInt(300), mature); err != nil {
		t.Fatalf("partial redeem: %v", err)
	}
	if got := st.GetBalance(a); got.Cmp(big.NewInt(300)) != 0 {
		t.Errorf("released: want 300, got %v", got)
	}
	if got := BalanceOf(st, a); got.Cmp(big.NewInt(700)) != 0 {
		t.Errorf("outstanding: want 700, got %v", got)
	}

	// Full redemption deletes the receipt.
	if err := Redeem(st, a, big.NewInt(700), mature); err != nil {
		t.Fatalf("full redeem: %v", err)
	}
	r := GetReceipt(st, a)
	if r.Amount.Sign() != 0 || r.MintTime != 0 || r.RedemptionPeriod != 0 || r.PriorityFlag {
		t.Errorf("receipt not deleted: %+v", r)
	}
	if got := TotalSupply(st); got.Sign() != 0 {
		t.Errorf("total supply: want 0, got %v", got)
	}
}

func TestRedeemReserveGuard(t *testing.T) {
	st := newTestState()
	a := tAddr(0x0b)
	if err := Mint(st, owner, a, big.NewInt(1000), 0, false, t0); err != nil {
		t.Fatalf("mint: %v", err)
	}
	// Reserve only covers half.
	fundReserve(st, 500)
	mature := t0 + params.DefaultRedemptionPeriod
	if err := Redeem(st, a, big.NewInt(1000), mature); err != ErrInsufficientReserve {
		t.Errorf("uncovered redeem: want ErrInsufficientReserve, got %v", err)
	}
	if err := Redeem(st, a, big.NewInt(500), mature); err != nil {
		t.Fatalf("covered redeem: %v", err)
	}
}

func TestCanRedeem(t *testing.T) {
	st := newTestState()
	a := tAddr(0x0c)

	ok, amount, remaining := CanRedeem(st, a, t0)
	if ok || amount.Sign() != 0 || remaining != 0 {
		t.Errorf("no receipt: got (%v, %v, %d)", ok, amount, remaining)
	}
	if err := Mint(st, owner, a, big.NewInt(100), 0, false, t0); err != nil {
		t.Fatalf("mint: %v", err)
	}
	ok, amount, remaining = CanRedeem(st, a, t0+1000)
	if ok {
		t.Error("redeemable before period elapsed")
	}
	if amount.Cmp(big.NewInt(100)) != 0 {
		t.Errorf("amount: want 100, got %v", amount)
	}
	if want := params.DefaultRedemptionPeriod - uint64(1000); remaining != want {
		t.Errorf("remaining: want %d, got %d", want, remaining)
	}
	ok, _, remaining = CanRedeem(st, a, t0+params.DefaultRedemptionPeriod)
	if !ok || remaining != 0 {
		t.Errorf("mature receipt: got (%v, %d)", ok, remaining)
	}
}

func TestVotingBoost(t *testing.T) {
	st := newTestState()
	a := tAddr(0x0d)
	st.AddBalance(a, big.NewInt(1000))

	if err := Mint(st, owner, a, big.NewInt(250), 0, false, t0); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if got := VotingBoost(st, a); got.Cmp(big.NewInt(1000)) != 0 {
		t.Errorf("boost: want 1000, got %v", got)
	}

	// Boost stacks on top of escrow voting power.
	unlock := t0 + params.MaxLockDuration
	if err := escrow.CreateLock(st, a, big.NewInt(1000), unlock, t0); err != nil {
		t.Fatalf("lock: %v", err)
	}
	if got := BoostedVotingPower(st, a, t0); got.Cmp(big.NewInt(5000)) != 0 {
		t.Errorf("boosted power: want 5000, got %v", got)
	}
}

package engine

import (
	"math/big"
	"testing"

	"github.com/xfuel-network/xfengine/buyback"
	"github.com/xfuel-network/xfengine/common"
	"github.com/xfuel-network/xfengine/common/hexutil"
	"github.com/xfuel-network/xfengine/crypto"
	"github.com/xfuel-network/xfengine/earnproof"
	"github.com/xfuel-network/xfengine/escrow"
	"github.com/xfuel-network/xfengine/feepolicy"
	"github.com/xfuel-network/xfengine/params"
	"github.com/xfuel-network/xfengine/receipt"
	"github.com/xfuel-network/xfengine/revenue"
	"github.com/xfuel-network/xfengine/sysaction"
	"github.com/xfuel-network/xfengine/treasury"
	"github.com/xfuel-network/xfengine/xfdb/memorydb"
)

const t0 = uint64(1_700_000_000)

var owner = common.Address{0xee}

func action(t *testing.T, kind sysaction.ActionKind, payload interface{}) []byte {
	t.Helper()
	data, err := sysaction.MakeSysAction(kind, payload)
	if err != nil {
		t.Fatalf("encode %s: %v", kind, err)
	}
	return data
}

func TestEngineRevenueFlow(t *testing.T) {
	e := New(nil, owner)
	st := e.StateDB()

	locker := common.Address{0x01}
	protocol := common.Address{0x02}
	st.AddBalance(locker, big.NewInt(1_000))
	st.AddBalance(protocol, big.NewInt(100_000))

	// Lock principal through the action path.
	data := action(t, sysaction.ActionLockCreate, map[string]uint64{
		"unlock_time": t0 + params.MaxLockDuration,
	})
	if err := e.Execute(locker, big.NewInt(1_000), t0, data); err != nil {
		t.Fatalf("lock create: %v", err)
	}
	if got := st.GetBalance(locker); got.Sign() != 0 {
		t.Errorf("locker balance after lock: %v", got)
	}

	// Split 10,000 of protocol revenue: 5000 yield, 2500 buyback,
	// 1500 receipts, 1000 treasury.
	if err := e.Execute(protocol, big.NewInt(10_000), t0, action(t, sysaction.ActionRevenueSplit, nil)); err != nil {
		t.Fatalf("revenue split: %v", err)
	}

	if got := escrow.PendingYield(st, locker); got.Cmp(big.NewInt(5_000)) != 0 {
		t.Errorf("pending yield: want 5000, got %v", got)
	}
	if got := buyback.Balance(st); got.Cmp(big.NewInt(2_500)) != 0 {
		t.Errorf("buyback balance: want 2500, got %v", got)
	}
	if got := receipt.BalanceOf(st, protocol); got.Cmp(big.NewInt(1_500)) != 0 {
		t.Errorf("receipt balance: want 1500, got %v", got)
	}
	if got := st.GetBalance(params.DefaultTreasuryAddress); got.Cmp(big.NewInt(1_000)) != 0 {
		t.Errorf("treasury balance: want 1000, got %v", got)
	}
	if got := revenue.TotalSplit(st); got.Cmp(big.NewInt(10_000)) != 0 {
		t.Errorf("total split: want 10000, got %v", got)
	}

	// Claim the yield.
	if err := e.Execute(locker, nil, t0, action(t, sysaction.ActionYieldClaim, nil)); err != nil {
		t.Fatalf("yield claim: %v", err)
	}
	if got := st.GetBalance(locker); got.Cmp(big.NewInt(5_000)) != 0 {
		t.Errorf("locker balance after claim: want 5000, got %v", got)
	}

	// Receipts redeem after the default period elapses.
	later := t0 + params.DefaultRedemptionPeriod
	redeem := action(t, sysaction.ActionReceiptRedeem, receipt.RedeemPayload{Amount: "1500"})
	if err := e.Execute(protocol, nil, t0+1, redeem); err != receipt.ErrPeriodNotElapsed {
		t.Errorf("early redeem: want ErrPeriodNotElapsed, got %v", err)
	}
	if err := e.Execute(protocol, nil, later, redeem); err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if got := receipt.BalanceOf(st, protocol); got.Sign() != 0 {
		t.Errorf("receipt balance after redeem: %v", got)
	}
	// 100_000 - 10_000 split + 1_500 redeemed.
	if got := st.GetBalance(protocol); got.Cmp(big.NewInt(91_500)) != 0 {
		t.Errorf("protocol balance after redeem: want 91500, got %v", got)
	}
}

func TestEngineFailedActionLeavesNoTrace(t *testing.T) {
	e := New(nil, owner)
	st := e.StateDB()

	protocol := common.Address{0x03}
	st.AddBalance(protocol, big.NewInt(10_000))

	// Splitting with no lockers fails inside yield distribution; the whole
	// action rolls back.
	err := e.Execute(protocol, big.NewInt(10_000), t0, action(t, sysaction.ActionRevenueSplit, nil))
	if err != escrow.ErrNoRecipients {
		t.Fatalf("want ErrNoRecipients, got %v", err)
	}
	if got := st.GetBalance(protocol); got.Cmp(big.NewInt(10_000)) != 0 {
		t.Errorf("caller balance not restored: %v", got)
	}
	if got := st.GetBalance(params.DefaultTreasuryAddress); got.Sign() != 0 {
		t.Errorf("treasury credited by failed split: %v", got)
	}
	if logs := st.Logs(); len(logs) != 0 {
		t.Errorf("failed action left %d logs", len(logs))
	}
}

func TestEngineProofRaisesMultiplier(t *testing.T) {
	e := New(nil, owner)
	st := e.StateDB()

	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatal(err)
	}
	signer := crypto.PubkeyToAddress(key.PublicKey)
	if err := earnproof.AuthorizeSigner(st, owner, signer); err != nil {
		t.Fatalf("authorize signer: %v", err)
	}

	account := common.Address{0x04}
	st.AddBalance(account, big.NewInt(1_000))
	lock := action(t, sysaction.ActionLockCreate, map[string]uint64{
		"unlock_time": t0 + params.MaxLockDuration,
	})
	if err := e.Execute(account, big.NewInt(1_000), t0, lock); err != nil {
		t.Fatalf("lock: %v", err)
	}
	base := escrow.VotingPower(st, account, t0)

	earnings := new(big.Int).Mul(big.NewInt(10_000), params.TokenScale)
	sig, err := earnproof.SignProof(key, account, earnings, 1)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	verify := action(t, sysaction.ActionProofVerify, earnproof.ProofPayload{
		Account:   account,
		Earnings:  earnings.String(),
		Nonce:     1,
		Signature: hexutil.Encode(sig),
	})
	if err := e.Execute(account, nil, t0, verify); err != nil {
		t.Fatalf("verify proof: %v", err)
	}

	if got := earnproof.GetMultiplier(st, account); got != params.TierOneMultiplierBps {
		t.Errorf("multiplier: want %d, got %d", params.TierOneMultiplierBps, got)
	}
	boosted := escrow.VotingPower(st, account, t0)
	want := new(big.Int).Mul(base, big.NewInt(params.TierOneMultiplierBps))
	want.Div(want, big.NewInt(params.BpsDenominator))
	if boosted.Cmp(want) != 0 {
		t.Errorf("boosted power: want %v, got %v", want, boosted)
	}

	// Replays fail and change nothing.
	if err := e.Execute(account, nil, t0, verify); err != earnproof.ErrProofConsumed {
		t.Errorf("replay: want ErrProofConsumed, got %v", err)
	}
}

func TestEngineFeePolicyActions(t *testing.T) {
	e := New(nil, owner)
	st := e.StateDB()

	if err := e.Execute(owner, nil, t0, action(t, sysaction.ActionFeeSetMode, feepolicy.ModePayload{Mode: "extraction"})); err != nil {
		t.Fatalf("set mode: %v", err)
	}
	if got := feepolicy.GetFeeMultiplier(st); got != params.ExtractionFeeBps {
		t.Errorf("fee multiplier: want %d, got %d", params.ExtractionFeeBps, got)
	}
	// Cooldown blocks the next change.
	err := e.Execute(owner, nil, t0+1, action(t, sysaction.ActionFeeSetCustom, feepolicy.CustomFeePayload{FeeBps: 50}))
	if err != feepolicy.ErrCooldownActive {
		t.Errorf("cooldown: want ErrCooldownActive, got %v", err)
	}
	if err := e.Execute(owner, nil, t0+params.FeeChangeCooldown, action(t, sysaction.ActionFeeSetCustom, feepolicy.CustomFeePayload{FeeBps: 50})); err != nil {
		t.Fatalf("custom fee: %v", err)
	}
	if got := feepolicy.GetFeeMultiplier(st); got != 50 {
		t.Errorf("custom fee: want 50, got %d", got)
	}
}

func TestEngineGovernanceLifecycle(t *testing.T) {
	e := New(nil, owner)
	st := e.StateDB()

	voter := common.Address{0x05}
	recipient := common.Address{0x06}
	principal := new(big.Int).Div(params.MinVotingPowerForProposal, big.NewInt(4))
	st.AddBalance(voter, principal)
	lock := action(t, sysaction.ActionLockCreate, map[string]uint64{
		"unlock_time": t0 + params.MaxLockDuration,
	})
	if err := e.Execute(voter, principal, t0, lock); err != nil {
		t.Fatalf("lock: %v", err)
	}

	funder := common.Address{0x07}
	st.AddBalance(funder, big.NewInt(50_000))
	deposit := action(t, sysaction.ActionVaultDeposit, treasury.DepositPayload{Vault: "builder"})
	if err := e.Execute(funder, big.NewInt(50_000), t0, deposit); err != nil {
		t.Fatalf("deposit: %v", err)
	}

	create := action(t, sysaction.ActionProposalCreate, treasury.ProposalPayload{
		Vault: "builder", Recipient: recipient, Amount: "20000",
		Description: "tooling grant",
	})
	if err := e.Execute(voter, nil, t0, create); err != nil {
		t.Fatalf("create proposal: %v", err)
	}
	if got := treasury.ProposalCount(st); got != 1 {
		t.Fatalf("proposal count: want 1, got %d", got)
	}

	vote := action(t, sysaction.ActionProposalVote, treasury.VotePayload{ID: 1, Support: true})
	if err := e.Execute(voter, nil, t0, vote); err != nil {
		t.Fatalf("vote: %v", err)
	}

	execute := action(t, sysaction.ActionProposalExecute, treasury.IDPayload{ID: 1})
	if err := e.Execute(voter, nil, t0, execute); err != treasury.ErrVotingActive {
		t.Errorf("early execute: want ErrVotingActive, got %v", err)
	}
	if err := e.Execute(voter, nil, t0+params.VotingPeriod, execute); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got := st.GetBalance(recipient); got.Cmp(big.NewInt(20_000)) != 0 {
		t.Errorf("recipient: want 20000, got %v", got)
	}
	if got, _ := treasury.VaultBalance(st, treasury.VaultBuilder); got.Cmp(big.NewInt(30_000)) != 0 {
		t.Errorf("vault: want 30000, got %v", got)
	}
}

func TestEngineUnknownAction(t *testing.T) {
	e := New(nil, owner)
	err := e.Execute(common.Address{0x08}, nil, t0, []byte(`{"action":"BOGUS"}`))
	if err == nil {
		t.Fatal("want error for unknown action")
	}
}

func TestEngineCommitPersists(t *testing.T) {
	db := memorydb.New()

	e := New(db, owner)
	locker := common.Address{0x09}
	e.StateDB().AddBalance(locker, big.NewInt(500))
	lock := action(t, sysaction.ActionLockCreate, map[string]uint64{
		"unlock_time": t0 + params.MaxLockDuration,
	})
	if err := e.Execute(locker, big.NewInt(500), t0, lock); err != nil {
		t.Fatalf("lock: %v", err)
	}
	if err := e.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	// A fresh engine over the same store sees the lock.
	reopened := New(db, owner)
	l := escrow.GetLock(reopened.StateDB(), locker)
	if l.Principal.Cmp(big.NewInt(500)) != 0 {
		t.Errorf("persisted lock principal: want 500, got %v", l.Principal)
	}
	if got := escrow.TotalLocked(reopened.StateDB()); got.Cmp(big.NewInt(500)) != 0 {
		t.Errorf("persisted total locked: want 500, got %v", got)
	}
}

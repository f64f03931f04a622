package escrow

import (
	"math/big"

	"github.com/xfuel-network/xfengine/common"
	"github.com/xfuel-network/xfengine/core/vm"
	"github.com/xfuel-network/xfengine/log"
	"github.com/xfuel-network/xfengine/params"
	"github.com/xfuel-network/xfengine/sysaction"
)

// Initialize writes the ledger owner. Called once at engine setup.
func Initialize(db vm.StateDB, owner common.Address) {
	writeAddressSlot(db, globalSlot("owner"), owner)
}

// Owner returns the ledger owner, zero when uninitialized.
func Owner(db vm.StateDB) common.Address {
	return getOwner(db)
}

// SetVerifier registers the address allowed to raise permanent multipliers.
// Owner-only configuration.
func SetVerifier(db vm.StateDB, caller, verifier common.Address) error {
	if caller != getOwner(db) {
		return ErrNotOwner
	}
	writeAddressSlot(db, globalSlot("verifier"), verifier)
	return nil
}

// CreateLock escrows amount from the caller until unlockTime. An existing,
// unexpired lock is extended: the principal accumulates and the new unlock
// time must be strictly later than the current one. An expired lock must be
// withdrawn before a new one can be created.
func CreateLock(db vm.StateDB, from common.Address, amount *big.Int, unlockTime, now uint64) error {
	if amount == nil || amount.Sign() <= 0 {
		return ErrZeroAmount
	}
	if db.GetBalance(from).Cmp(amount) < 0 {
		return ErrInsufficient
	}

	principal := getPrincipal(db, from)
	if principal.Sign() > 0 {
		current := getUnlockTime(db, from)
		if now >= current {
			return ErrLockExpired
		}
		if unlockTime <= current {
			return ErrUnlockNotLater
		}
		if unlockTime-now > params.MaxLockDuration {
			return ErrLockTooLong
		}
	} else {
		if unlockTime <= now {
			return ErrUnlockInPast
		}
		duration := unlockTime - now
		if duration < params.MinLockDuration {
			return ErrLockTooShort
		}
		if duration > params.MaxLockDuration {
			return ErrLockTooLong
		}
	}

	// Accrued yield settles against the old principal before it changes.
	settleYield(db, from)

	setPrincipal(db, from, new(big.Int).Add(principal, amount))
	setUnlockTime(db, from, unlockTime)
	if !isListed(db, from) {
		appendHolder(db, from)
	}

	db.SubBalance(from, amount)
	db.AddBalance(params.EscrowAddress, amount)
	setTotalLocked(db, new(big.Int).Add(getTotalLocked(db), amount))

	sysaction.EmitLog(db, params.EscrowAddress, "LockCreated", now, lockEvent{
		Account: from, Amount: amount.String(), UnlockTime: unlockTime,
	})
	log.Trace("escrow: lock created", "account", from, "amount", amount, "unlock", unlockTime)
	return nil
}

// IncreaseAmount adds amount to the caller's existing, unexpired lock
// without touching its unlock time.
func IncreaseAmount(db vm.StateDB, from common.Address, amount *big.Int, now uint64) error {
	if amount == nil || amount.Sign() <= 0 {
		return ErrZeroAmount
	}
	principal := getPrincipal(db, from)
	if principal.Sign() == 0 {
		return ErrNoLock
	}
	if now >= getUnlockTime(db, from) {
		return ErrLockExpired
	}
	if db.GetBalance(from).Cmp(amount) < 0 {
		return ErrInsufficient
	}

	settleYield(db, from)

	setPrincipal(db, from, new(big.Int).Add(principal, amount))
	db.SubBalance(from, amount)
	db.AddBalance(params.EscrowAddress, amount)
	setTotalLocked(db, new(big.Int).Add(getTotalLocked(db), amount))

	sysaction.EmitLog(db, params.EscrowAddress, "AmountIncreased", now, lockEvent{
		Account: from, Amount: amount.String(), UnlockTime: getUnlockTime(db, from),
	})
	return nil
}

// IncreaseUnlockTime extends the caller's existing, unexpired lock. The new
// unlock time must be strictly later and within the maximum duration.
func IncreaseUnlockTime(db vm.StateDB, from common.Address, unlockTime, now uint64) error {
	principal := getPrincipal(db, from)
	if principal.Sign() == 0 {
		return ErrNoLock
	}
	current := getUnlockTime(db, from)
	if now >= current {
		return ErrLockExpired
	}
	if unlockTime <= current {
		return ErrUnlockNotLater
	}
	if unlockTime-now > params.MaxLockDuration {
		return ErrLockTooLong
	}

	setUnlockTime(db, from, unlockTime)
	sysaction.EmitLog(db, params.EscrowAddress, "UnlockTimeIncreased", now, lockEvent{
		Account: from, Amount: principal.String(), UnlockTime: unlockTime,
	})
	return nil
}

// Withdraw returns the caller's full principal after lock expiry and zeroes
// the lock. Accrued yield stays claimable.
func Withdraw(db vm.StateDB, from common.Address, now uint64) (*big.Int, error) {
	principal := getPrincipal(db, from)
	if principal.Sign() == 0 {
		return nil, ErrNoLockToWithdraw
	}
	if now < getUnlockTime(db, from) {
		return nil, ErrLockNotExpired
	}

	settleYield(db, from)

	setPrincipal(db, from, new(big.Int))
	setUnlockTime(db, from, 0)
	setTotalLocked(db, new(big.Int).Sub(getTotalLocked(db), principal))

	db.SubBalance(params.EscrowAddress, principal)
	db.AddBalance(from, principal)

	sysaction.EmitLog(db, params.EscrowAddress, "Withdrawn", now, lockEvent{
		Account: from, Amount: principal.String(),
	})
	log.Trace("escrow: withdrawn", "account", from, "amount", principal)
	return principal, nil
}

// DistributeYield moves amount from the caller into the yield pool and bumps
// the per-unit accumulator. Fails when nothing is locked: there is no sink
// for yield with no holders.
func DistributeYield(db vm.StateDB, from common.Address, amount *big.Int, now uint64) error {
	if amount == nil || amount.Sign() <= 0 {
		return ErrZeroAmount
	}
	totalLocked := getTotalLocked(db)
	if totalLocked.Sign() == 0 {
		return ErrNoRecipients
	}
	if db.GetBalance(from).Cmp(amount) < 0 {
		return ErrInsufficient
	}

	db.SubBalance(from, amount)
	db.AddBalance(params.EscrowAddress, amount)

	delta := new(big.Int).Mul(amount, params.YieldPrecision)
	delta.Div(delta, totalLocked)
	setYieldPerUnit(db, new(big.Int).Add(getYieldPerUnit(db), delta))
	setTotalYieldDistributed(db, new(big.Int).Add(getTotalYieldDistributed(db), amount))

	sysaction.EmitLog(db, params.EscrowAddress, "YieldDistributed", now, yieldEvent{
		From: from, Amount: amount.String(),
	})
	log.Trace("escrow: yield distributed", "from", from, "amount", amount)
	return nil
}

// ClaimYield pays out the caller's settled yield. Claiming with nothing
// accrued is a no-op.
func ClaimYield(db vm.StateDB, from common.Address, now uint64) (*big.Int, error) {
	settleYield(db, from)

	pending := getPendingYield(db, from)
	if pending.Sign() == 0 {
		return new(big.Int), nil
	}
	setPendingYield(db, from, new(big.Int))
	db.SubBalance(params.EscrowAddress, pending)
	db.AddBalance(from, pending)

	sysaction.EmitLog(db, params.EscrowAddress, "YieldClaimed", now, yieldEvent{
		From: from, Amount: pending.String(),
	})
	return pending, nil
}

// SetPermanentMultiplier raises an account's permanent voting multiplier.
// Only the registered verifier may call it, and the multiplier never
// decreases.
func SetPermanentMultiplier(db vm.StateDB, caller, account common.Address, bps uint64) error {
	if caller != getVerifier(db) {
		return ErrNotVerifier
	}
	if bps < params.TierBaseMultiplierBps {
		return ErrMultiplierBelow
	}
	current := getMultiplierBps(db, account)
	if bps < current {
		return ErrMultiplierLower
	}
	if bps == current {
		return nil
	}
	setMultiplierBps(db, account, bps)
	sysaction.EmitLog(db, params.EscrowAddress, "MultiplierRaised", 0, multiplierEvent{
		Account: account, MultiplierBps: bps,
	})
	return nil
}

// settleYield moves accrued yield into pendingYield and snapshots the
// accumulator. Must run before any principal change.
func settleYield(db vm.StateDB, addr common.Address) {
	ypu := getYieldPerUnit(db)
	principal := getPrincipal(db, addr)
	if principal.Sign() > 0 {
		debt := getYieldDebt(db, addr)
		diff := new(big.Int).Sub(ypu, debt)
		if diff.Sign() > 0 {
			earned := new(big.Int).Mul(principal, diff)
			earned.Div(earned, params.YieldPrecision)
			if earned.Sign() > 0 {
				setPendingYield(db, addr, new(big.Int).Add(getPendingYield(db, addr), earned))
			}
		}
	}
	setYieldDebt(db, addr, ypu)
}

// --- reads ---

// GetLock returns the account's escrow position.
func GetLock(db vm.StateDB, addr common.Address) Lock {
	return Lock{
		Principal:  getPrincipal(db, addr),
		UnlockTime: getUnlockTime(db, addr),
	}
}

// VotingPower computes the account's current voting power:
// principal scaled by the remaining-lock multiplier (1x..4x, linear in the
// remaining fraction of the maximum duration) and by the permanent
// multiplier. Exactly zero at or after unlock. Never cached; always derived
// from (principal, unlockTime, multiplier, now).
func VotingPower(db vm.StateDB, addr common.Address, now uint64) *big.Int {
	principal := getPrincipal(db, addr)
	if principal.Sign() == 0 {
		return new(big.Int)
	}
	unlock := getUnlockTime(db, addr)
	if now >= unlock {
		return new(big.Int)
	}
	remaining := new(big.Int).SetUint64(unlock - now)

	bonus := new(big.Int).Mul(remaining, big.NewInt(params.BonusEscrowMultiplierBps))
	bonus.Div(bonus, big.NewInt(params.MaxLockDuration))
	multBps := new(big.Int).Add(big.NewInt(params.BaseEscrowMultiplierBps), bonus)

	vp := new(big.Int).Mul(principal, multBps)
	vp.Div(vp, big.NewInt(params.BpsDenominator))

	vp.Mul(vp, new(big.Int).SetUint64(getMultiplierBps(db, addr)))
	vp.Div(vp, big.NewInt(params.BpsDenominator))
	return vp
}

// BalanceOf is an alias of VotingPower.
func BalanceOf(db vm.StateDB, addr common.Address, now uint64) *big.Int {
	return VotingPower(db, addr, now)
}

// TotalSupply sums the voting power of every holder ever listed.
func TotalSupply(db vm.StateDB, now uint64) *big.Int {
	total := new(big.Int)
	for i, n := uint64(0), readHolderCount(db); i < n; i++ {
		total.Add(total, VotingPower(db, readHolderAt(db, i), now))
	}
	return total
}

// TotalLocked returns the sum of all locked principal.
func TotalLocked(db vm.StateDB) *big.Int {
	return getTotalLocked(db)
}

// TotalYieldDistributed returns the lifetime yield routed into the pool.
func TotalYieldDistributed(db vm.StateDB) *big.Int {
	return getTotalYieldDistributed(db)
}

// PendingYield returns the yield addr could claim right now.
func PendingYield(db vm.StateDB, addr common.Address) *big.Int {
	pending := new(big.Int).Set(getPendingYield(db, addr))
	principal := getPrincipal(db, addr)
	if principal.Sign() == 0 {
		return pending
	}
	diff := new(big.Int).Sub(getYieldPerUnit(db), getYieldDebt(db, addr))
	if diff.Sign() <= 0 {
		return pending
	}
	earned := new(big.Int).Mul(principal, diff)
	earned.Div(earned, params.YieldPrecision)
	return pending.Add(pending, earned)
}

// PermanentMultiplier returns the account's permanent multiplier in bps.
func PermanentMultiplier(db vm.StateDB, addr common.Address) uint64 {
	return getMultiplierBps(db, addr)
}

// event payloads

type lockEvent struct {
	Account    common.Address `json:"account"`
	Amount     string         `json:"amount"`
	UnlockTime uint64         `json:"unlockTime,omitempty"`
}

type yieldEvent struct {
	From   common.Address `json:"from"`
	Amount string         `json:"amount"`
}

type multiplierEvent struct {
	Account       common.Address `json:"account"`
	MultiplierBps uint64         `json:"multiplierBps"`
}

// Package escrow implements the vote-escrow balance ledger: locked principal
// per account, time-decaying voting power, the permanent multiplier raised by
// the earnings proof verifier, and pull-based yield accrual.
package escrow

import (
	"errors"
	"math/big"
)

var (
	ErrZeroAmount       = errors.New("escrow: amount must be greater than 0")
	ErrUnlockInPast     = errors.New("escrow: unlock time must be in future")
	ErrLockTooShort     = errors.New("escrow: lock duration too short")
	ErrLockTooLong      = errors.New("escrow: lock duration too long")
	ErrNoLock           = errors.New("escrow: no existing lock")
	ErrLockExpired      = errors.New("escrow: lock expired")
	ErrUnlockNotLater   = errors.New("escrow: new unlock time must be later")
	ErrLockNotExpired   = errors.New("escrow: lock not expired")
	ErrNoLockToWithdraw = errors.New("escrow: no lock to withdraw")
	ErrNoRecipients     = errors.New("escrow: no yield recipients")
	ErrInsufficient     = errors.New("escrow: insufficient balance")
	ErrNotOwner         = errors.New("escrow: caller is not the owner")
	ErrNotVerifier      = errors.New("escrow: caller is not the verifier")
	ErrMultiplierBelow  = errors.New("escrow: multiplier below base")
	ErrMultiplierLower  = errors.New("escrow: multiplier may only increase")
)

// Lock is the in-memory view of one account's escrow position.
type Lock struct {
	Principal  *big.Int
	UnlockTime uint64
}

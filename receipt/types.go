// Package receipt implements the soulbound revenue receipt token rXF.
// Receipts are minted against revenue events, redeem 1:1 from the reserve
// held at params.ReceiptAddress after a per-receipt redemption period, and
// cannot be transferred or approved. Holding receipts boosts an account's
// governance voting power.
package receipt

import (
	"errors"
	"math/big"
)

// Receipt describes an account's outstanding receipt position. Repeated
// mints accumulate Amount; MintTime, RedemptionPeriod and PriorityFlag
// always reflect the latest mint.
type Receipt struct {
	Amount           *big.Int
	MintTime         uint64
	RedemptionPeriod uint64
	PriorityFlag     bool
}

var (
	// ErrMintToZero is returned when minting to the zero address.
	ErrMintToZero = errors.New("receipt: mint to zero address")

	// ErrZeroAmount is returned when an amount must be greater than zero.
	ErrZeroAmount = errors.New("receipt: amount must be greater than 0")

	// ErrPeriodTooShort is returned when a redemption period is below the
	// minimum.
	ErrPeriodTooShort = errors.New("receipt: redemption period too short")

	// ErrPeriodTooLong is returned when a redemption period exceeds the
	// maximum.
	ErrPeriodTooLong = errors.New("receipt: redemption period too long")

	// ErrNotMinter is returned when the caller is neither owner nor a
	// registered minter.
	ErrNotMinter = errors.New("receipt: not authorized to mint")

	// ErrNotOwner is returned on owner-only operations.
	ErrNotOwner = errors.New("receipt: caller is not the owner")

	// ErrLengthMismatch is returned when batch argument slices differ in
	// length.
	ErrLengthMismatch = errors.New("receipt: array length mismatch")

	// ErrSoulboundTransfer is returned by transfer attempts.
	ErrSoulboundTransfer = errors.New("receipt: soulbound token, transfers not allowed")

	// ErrSoulboundApproval is returned by approval attempts.
	ErrSoulboundApproval = errors.New("receipt: soulbound token, approvals not allowed")

	// ErrPeriodNotElapsed is returned when redeeming before the redemption
	// period has passed.
	ErrPeriodNotElapsed = errors.New("receipt: redemption period not elapsed")

	// ErrExceedsReceipt is returned when redeeming more than the
	// outstanding receipt amount.
	ErrExceedsReceipt = errors.New("receipt: amount exceeds receipt")

	// ErrNoReceipt is returned when the account holds no receipt.
	ErrNoReceipt = errors.New("receipt: no receipt")

	// ErrInsufficientReserve is returned when the reserve cannot cover a
	// redemption.
	ErrInsufficientReserve = errors.New("receipt: insufficient reserve")
)

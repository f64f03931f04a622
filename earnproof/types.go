// Package earnproof verifies signed attestations of off-chain earnings and
// raises permanent voting multipliers in the escrow ledger as cumulative
// attested earnings cross tier thresholds.
package earnproof

import "errors"

var (
	ErrInvalidAccount     = errors.New("earnproof: invalid account")
	ErrZeroEarnings       = errors.New("earnproof: earnings must be greater than 0")
	ErrProofConsumed      = errors.New("earnproof: proof already verified")
	ErrInvalidSignature   = errors.New("earnproof: invalid signature")
	ErrUnauthorizedSigner = errors.New("earnproof: unauthorized signer")
	ErrInvalidSigner      = errors.New("earnproof: invalid signer address")
	ErrNotOwner           = errors.New("earnproof: caller is not the owner")
)

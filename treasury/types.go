// Package treasury implements the governed treasury: three spending vaults
// funded by deposits and drained only through proposals that pass a
// voting-power quorum and strict majority inside a fixed voting window.
package treasury

import (
	"errors"
	"math/big"

	"github.com/xfuel-network/xfengine/common"
)

// Vault identifies one of the treasury spending buckets.
type Vault uint8

const (
	// VaultBuilder funds ecosystem development grants.
	VaultBuilder Vault = iota
	// VaultAcquisition funds user and partner acquisition.
	VaultAcquisition
	// VaultMoonshot funds high-risk strategic bets.
	VaultMoonshot

	vaultCount = 3
)

func (v Vault) String() string {
	switch v {
	case VaultBuilder:
		return "builder"
	case VaultAcquisition:
		return "acquisition"
	case VaultMoonshot:
		return "moonshot"
	}
	return "unknown"
}

// Valid reports whether v names an existing vault.
func (v Vault) Valid() bool { return v < vaultCount }

// Proposal is a treasury spend request.
type Proposal struct {
	ID           uint64
	Proposer     common.Address
	Vault        Vault
	Recipient    common.Address
	Amount       *big.Int
	Description  string
	EndTime      uint64
	ForVotes     *big.Int
	AgainstVotes *big.Int
	Executed     bool
	Cancelled    bool
}

var (
	// ErrZeroAmount is returned when an amount must be greater than zero.
	ErrZeroAmount = errors.New("treasury: amount must be > 0")

	// ErrBadVault is returned for an unknown vault.
	ErrBadVault = errors.New("treasury: unknown vault")

	// ErrInsufficientPower is returned when the proposer lacks the minimum
	// voting power.
	ErrInsufficientPower = errors.New("treasury: insufficient voting power")

	// ErrInsufficientVault is returned when a vault cannot cover the
	// proposal amount.
	ErrInsufficientVault = errors.New("treasury: insufficient vault balance")

	// ErrBadRecipient is returned for a zero recipient address.
	ErrBadRecipient = errors.New("treasury: invalid recipient")

	// ErrNoDescription is returned when a proposal has no description.
	ErrNoDescription = errors.New("treasury: description required")

	// ErrNoProposal is returned for an unknown proposal id.
	ErrNoProposal = errors.New("treasury: no such proposal")

	// ErrAlreadyVoted is returned when an account votes twice.
	ErrAlreadyVoted = errors.New("treasury: already voted")

	// ErrVotingEnded is returned when voting after the window closed.
	ErrVotingEnded = errors.New("treasury: voting ended")

	// ErrNoVotingPower is returned when the voter has no voting power.
	ErrNoVotingPower = errors.New("treasury: no voting power")

	// ErrVotingActive is returned when executing during the window.
	ErrVotingActive = errors.New("treasury: voting still active")

	// ErrQuorumNotMet is returned when turnout is below the quorum.
	ErrQuorumNotMet = errors.New("treasury: quorum not met")

	// ErrMajorityNotMet is returned without a strict for-majority.
	ErrMajorityNotMet = errors.New("treasury: majority not met")

	// ErrProposalClosed is returned when acting on an executed or
	// cancelled proposal.
	ErrProposalClosed = errors.New("treasury: proposal closed")

	// ErrNotAuthorized is returned when cancel is called by neither the
	// proposer nor the owner.
	ErrNotAuthorized = errors.New("treasury: not authorized")

	// ErrInsufficient is returned when a depositor balance cannot cover
	// the deposit.
	ErrInsufficient = errors.New("treasury: insufficient balance")
)

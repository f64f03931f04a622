package treasury

import (
	"math/big"

	"github.com/xfuel-network/xfengine/common"
	"github.com/xfuel-network/xfengine/core/vm"
	"github.com/xfuel-network/xfengine/escrow"
	"github.com/xfuel-network/xfengine/log"
	"github.com/xfuel-network/xfengine/params"
	"github.com/xfuel-network/xfengine/sysaction"
)

type depositEvent struct {
	From   common.Address `json:"from"`
	Vault  string         `json:"vault"`
	Amount string         `json:"amount"`
}

type proposalEvent struct {
	ID        uint64         `json:"id"`
	Proposer  common.Address `json:"proposer,omitempty"`
	Vault     string         `json:"vault,omitempty"`
	Recipient common.Address `json:"recipient,omitempty"`
	Amount    string         `json:"amount,omitempty"`
}

type voteEvent struct {
	ID      uint64         `json:"id"`
	Voter   common.Address `json:"voter"`
	Support bool           `json:"support"`
	Weight  string         `json:"weight"`
}

// Initialize records the governor owner.
func Initialize(db vm.StateDB, owner common.Address) {
	setOwner(db, owner)
}

// Deposit moves funds from the caller into a vault.
func Deposit(db vm.StateDB, from common.Address, vault Vault, amount *big.Int, now uint64) error {
	if !vault.Valid() {
		return ErrBadVault
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrZeroAmount
	}
	if db.GetBalance(from).Cmp(amount) < 0 {
		return ErrInsufficient
	}
	db.SubBalance(from, amount)
	db.AddBalance(params.TreasuryGovernorAddress, amount)
	setVaultBalance(db, vault, new(big.Int).Add(getVaultBalance(db, vault), amount))

	sysaction.EmitLog(db, params.TreasuryGovernorAddress, "VaultDeposit", now, depositEvent{
		From: from, Vault: vault.String(), Amount: amount.String(),
	})
	return nil
}

// CreateProposal opens a spend proposal against a vault. The proposer needs
// the minimum voting power, the amount must fit the vault, and the voting
// window starts immediately.
func CreateProposal(db vm.StateDB, proposer common.Address, vault Vault, recipient common.Address, amount *big.Int, description string, now uint64) (uint64, error) {
	if !vault.Valid() {
		return 0, ErrBadVault
	}
	if escrow.VotingPower(db, proposer, now).Cmp(params.MinVotingPowerForProposal) < 0 {
		return 0, ErrInsufficientPower
	}
	if amount == nil || amount.Sign() <= 0 {
		return 0, ErrZeroAmount
	}
	if amount.Cmp(getVaultBalance(db, vault)) > 0 {
		return 0, ErrInsufficientVault
	}
	if recipient == (common.Address{}) {
		return 0, ErrBadRecipient
	}
	if description == "" {
		return 0, ErrNoDescription
	}

	id := getProposalCount(db) + 1
	setProposalCount(db, id)
	setPropAddr(db, id, "proposer", proposer)
	setPropUint(db, id, "vault", uint64(vault))
	setPropAddr(db, id, "recipient", recipient)
	setPropBig(db, id, "amount", amount)
	setDescription(db, id, description)
	setPropUint(db, id, "endTime", now+params.VotingPeriod)

	sysaction.EmitLog(db, params.TreasuryGovernorAddress, "ProposalCreated", now, proposalEvent{
		ID: id, Proposer: proposer, Vault: vault.String(),
		Recipient: recipient, Amount: amount.String(),
	})
	log.Debug("treasury: proposal created", "id", id, "proposer", proposer,
		"vault", vault, "amount", amount)
	return id, nil
}

// Vote casts the caller's full current voting power for or against a
// proposal. One vote per account per proposal, inside the window only.
func Vote(db vm.StateDB, voter common.Address, id uint64, support bool, now uint64) error {
	if id == 0 || id > getProposalCount(db) {
		return ErrNoProposal
	}
	if getPropFlag(db, id, "executed") || getPropFlag(db, id, "cancelled") {
		return ErrProposalClosed
	}
	if now >= getPropUint(db, id, "endTime") {
		return ErrVotingEnded
	}
	if hasVoted(db, id, voter) {
		return ErrAlreadyVoted
	}
	weight := escrow.VotingPower(db, voter, now)
	if weight.Sign() == 0 {
		return ErrNoVotingPower
	}

	markVoted(db, id, voter)
	field := "againstVotes"
	if support {
		field = "forVotes"
	}
	setPropBig(db, id, field, new(big.Int).Add(getPropBig(db, id, field), weight))

	sysaction.EmitLog(db, params.TreasuryGovernorAddress, "VoteCast", now, voteEvent{
		ID: id, Voter: voter, Support: support, Weight: weight.String(),
	})
	return nil
}

// ExecuteProposal pays out a passed proposal: window closed, turnout at
// least the quorum share of total voting power, strictly more for than
// against, and the vault still covers the amount. Terminal.
func ExecuteProposal(db vm.StateDB, id uint64, now uint64) error {
	if id == 0 || id > getProposalCount(db) {
		return ErrNoProposal
	}
	if getPropFlag(db, id, "executed") || getPropFlag(db, id, "cancelled") {
		return ErrProposalClosed
	}
	if now < getPropUint(db, id, "endTime") {
		return ErrVotingActive
	}

	forVotes := getPropBig(db, id, "forVotes")
	againstVotes := getPropBig(db, id, "againstVotes")
	turnout := new(big.Int).Add(forVotes, againstVotes)
	quorum := new(big.Int).Mul(escrow.TotalSupply(db, now), big.NewInt(params.QuorumBps))
	quorum.Div(quorum, big.NewInt(params.BpsDenominator))
	if turnout.Cmp(quorum) < 0 {
		return ErrQuorumNotMet
	}
	if forVotes.Cmp(againstVotes) <= 0 {
		return ErrMajorityNotMet
	}

	vault := Vault(getPropUint(db, id, "vault"))
	amount := getPropBig(db, id, "amount")
	balance := getVaultBalance(db, vault)
	if balance.Cmp(amount) < 0 {
		return ErrInsufficientVault
	}

	setPropFlag(db, id, "executed", true)
	setVaultBalance(db, vault, new(big.Int).Sub(balance, amount))
	db.SubBalance(params.TreasuryGovernorAddress, amount)
	db.AddBalance(getPropAddr(db, id, "recipient"), amount)

	sysaction.EmitLog(db, params.TreasuryGovernorAddress, "ProposalExecuted", now, proposalEvent{
		ID: id, Vault: vault.String(), Amount: amount.String(),
	})
	log.Debug("treasury: proposal executed", "id", id, "vault", vault, "amount", amount)
	return nil
}

// CancelProposal closes a proposal before execution. Proposer or owner
// only.
func CancelProposal(db vm.StateDB, caller common.Address, id uint64, now uint64) error {
	if id == 0 || id > getProposalCount(db) {
		return ErrNoProposal
	}
	if getPropFlag(db, id, "executed") || getPropFlag(db, id, "cancelled") {
		return ErrProposalClosed
	}
	if caller != getPropAddr(db, id, "proposer") && caller != getOwner(db) {
		return ErrNotAuthorized
	}
	setPropFlag(db, id, "cancelled", true)

	sysaction.EmitLog(db, params.TreasuryGovernorAddress, "ProposalCancelled", now, proposalEvent{
		ID: id,
	})
	return nil
}

// GetProposal returns a proposal by id.
func GetProposal(db vm.StateDB, id uint64) (Proposal, error) {
	if id == 0 || id > getProposalCount(db) {
		return Proposal{}, ErrNoProposal
	}
	return Proposal{
		ID:           id,
		Proposer:     getPropAddr(db, id, "proposer"),
		Vault:        Vault(getPropUint(db, id, "vault")),
		Recipient:    getPropAddr(db, id, "recipient"),
		Amount:       getPropBig(db, id, "amount"),
		Description:  getDescription(db, id),
		EndTime:      getPropUint(db, id, "endTime"),
		ForVotes:     getPropBig(db, id, "forVotes"),
		AgainstVotes: getPropBig(db, id, "againstVotes"),
		Executed:     getPropFlag(db, id, "executed"),
		Cancelled:    getPropFlag(db, id, "cancelled"),
	}, nil
}

// HasVoted reports whether the account voted on the proposal.
func HasVoted(db vm.StateDB, id uint64, voter common.Address) bool {
	return hasVoted(db, id, voter)
}

// VaultBalance returns a vault's balance.
func VaultBalance(db vm.StateDB, vault Vault) (*big.Int, error) {
	if !vault.Valid() {
		return nil, ErrBadVault
	}
	return getVaultBalance(db, vault), nil
}

// ProposalCount returns the number of proposals ever created.
func ProposalCount(db vm.StateDB) uint64 {
	return getProposalCount(db)
}

package treasury

import (
	"fmt"
	"math/big"

	"github.com/xfuel-network/xfengine/common"
	"github.com/xfuel-network/xfengine/sysaction"
)

func init() {
	sysaction.DefaultRegistry.Register(&treasuryHandler{})
}

// treasuryHandler implements sysaction.Handler for vault and proposal
// actions.
type treasuryHandler struct{}

func (h *treasuryHandler) CanHandle(kind sysaction.ActionKind) bool {
	switch kind {
	case sysaction.ActionVaultDeposit,
		sysaction.ActionProposalCreate,
		sysaction.ActionProposalVote,
		sysaction.ActionProposalExecute,
		sysaction.ActionProposalCancel:
		return true
	}
	return false
}

// DepositPayload names the target vault; the amount rides in the action
// value.
type DepositPayload struct {
	Vault string `json:"vault"`
}

// ProposalPayload carries PROPOSAL_CREATE arguments. Amount is a decimal
// string.
type ProposalPayload struct {
	Vault       string         `json:"vault"`
	Recipient   common.Address `json:"recipient"`
	Amount      string         `json:"amount"`
	Description string         `json:"description"`
}

// VotePayload carries a PROPOSAL_VOTE ballot.
type VotePayload struct {
	ID      uint64 `json:"id"`
	Support bool   `json:"support"`
}

// IDPayload carries a proposal id for execute and cancel.
type IDPayload struct {
	ID uint64 `json:"id"`
}

func parseVault(s string) (Vault, error) {
	switch s {
	case "builder":
		return VaultBuilder, nil
	case "acquisition":
		return VaultAcquisition, nil
	case "moonshot":
		return VaultMoonshot, nil
	}
	return 0, ErrBadVault
}

func (h *treasuryHandler) Handle(ctx *sysaction.Context, sa *sysaction.SysAction) error {
	db := ctx.StateDB

	switch sa.Action {
	case sysaction.ActionVaultDeposit:
		var p DepositPayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return fmt.Errorf("vault deposit: %w", err)
		}
		vault, err := parseVault(p.Vault)
		if err != nil {
			return err
		}
		value := ctx.Value
		if value == nil {
			value = new(big.Int)
		}
		return Deposit(db, ctx.From, vault, value, ctx.Time)

	case sysaction.ActionProposalCreate:
		var p ProposalPayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return fmt.Errorf("proposal create: %w", err)
		}
		vault, err := parseVault(p.Vault)
		if err != nil {
			return err
		}
		amount, ok := new(big.Int).SetString(p.Amount, 10)
		if !ok {
			return fmt.Errorf("proposal create: bad amount %q", p.Amount)
		}
		_, err = CreateProposal(db, ctx.From, vault, p.Recipient, amount, p.Description, ctx.Time)
		return err

	case sysaction.ActionProposalVote:
		var p VotePayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return fmt.Errorf("proposal vote: %w", err)
		}
		return Vote(db, ctx.From, p.ID, p.Support, ctx.Time)

	case sysaction.ActionProposalExecute:
		var p IDPayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return fmt.Errorf("proposal execute: %w", err)
		}
		return ExecuteProposal(db, p.ID, ctx.Time)

	case sysaction.ActionProposalCancel:
		var p IDPayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return fmt.Errorf("proposal cancel: %w", err)
		}
		return CancelProposal(db, ctx.From, p.ID, ctx.Time)
	}
	return fmt.Errorf("treasury handler: unsupported action %q", sa.Action)
}

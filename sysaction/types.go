// Package sysaction implements the engine action protocol.
//
// Engine actions are messages addressed to params.SystemActionAddress whose
// data field is a JSON-encoded SysAction envelope. Execute() dispatches the
// envelope to the component handler registered for its kind, wrapped in a
// state snapshot so that a failing operation leaves no trace.
package sysaction

import "encoding/json"

// ActionKind identifies the type of engine action.
type ActionKind string

const (
	// Vote-escrow ledger
	ActionLockCreate         ActionKind = "LOCK_CREATE"
	ActionLockIncreaseAmount ActionKind = "LOCK_INCREASE_AMOUNT"
	ActionLockExtend         ActionKind = "LOCK_EXTEND"
	ActionLockWithdraw       ActionKind = "LOCK_WITHDRAW"
	ActionYieldDistribute    ActionKind = "YIELD_DISTRIBUTE"
	ActionYieldClaim         ActionKind = "YIELD_CLAIM"

	// Earnings proof verifier
	ActionProofVerify ActionKind = "PROOF_VERIFY"

	// Receipt token
	ActionReceiptMint   ActionKind = "RECEIPT_MINT"
	ActionReceiptRedeem ActionKind = "RECEIPT_REDEEM"

	// Revenue splitter
	ActionRevenueSplit       ActionKind = "REVENUE_SPLIT"
	ActionRevenueSplitNative ActionKind = "REVENUE_SPLIT_NATIVE"

	// Buyback accumulator
	ActionBuybackReceive ActionKind = "BUYBACK_RECEIVE"
	ActionBuybackRecord  ActionKind = "BUYBACK_RECORD"

	// Fee policy switch
	ActionFeesSetEnabled ActionKind = "FEES_SET_ENABLED"
	ActionFeeSetMode     ActionKind = "FEE_SET_MODE"
	ActionFeeSetCustom   ActionKind = "FEE_SET_CUSTOM"

	// Treasury governor
	ActionVaultDeposit    ActionKind = "VAULT_DEPOSIT"
	ActionProposalCreate  ActionKind = "PROPOSAL_CREATE"
	ActionProposalVote    ActionKind = "PROPOSAL_VOTE"
	ActionProposalExecute ActionKind = "PROPOSAL_EXECUTE"
	ActionProposalCancel  ActionKind = "PROPOSAL_CANCEL"
)

// SysAction is the top-level envelope carried in an engine action message.
type SysAction struct {
	Action  ActionKind      `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

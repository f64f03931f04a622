package receipt

import (
	"fmt"
	"math/big"

	"github.com/xfuel-network/xfengine/common"
	"github.com/xfuel-network/xfengine/sysaction"
)

func init() {
	sysaction.DefaultRegistry.Register(&receiptHandler{})
}

// receiptHandler implements sysaction.Handler for receipt mint and redeem.
type receiptHandler struct{}

func (h *receiptHandler) CanHandle(kind sysaction.ActionKind) bool {
	switch kind {
	case sysaction.ActionReceiptMint, sysaction.ActionReceiptRedeem:
		return true
	}
	return false
}

// MintPayload carries RECEIPT_MINT arguments. Amount is a decimal string;
// a zero Period selects the default redemption period.
type MintPayload struct {
	To           common.Address `json:"to"`
	Amount       string         `json:"amount"`
	Period       uint64         `json:"period"`
	PriorityFlag bool           `json:"priority_flag"`
}

// RedeemPayload carries the RECEIPT_REDEEM amount as a decimal string.
type RedeemPayload struct {
	Amount string `json:"amount"`
}

func (h *receiptHandler) Handle(ctx *sysaction.Context, sa *sysaction.SysAction) error {
	switch sa.Action {
	case sysaction.ActionReceiptMint:
		var p MintPayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return fmt.Errorf("receipt mint: %w", err)
		}
		amount, ok := new(big.Int).SetString(p.Amount, 10)
		if !ok {
			return fmt.Errorf("receipt mint: bad amount %q", p.Amount)
		}
		return Mint(ctx.StateDB, ctx.From, p.To, amount, p.Period, p.PriorityFlag, ctx.Time)

	case sysaction.ActionReceiptRedeem:
		var p RedeemPayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return fmt.Errorf("receipt redeem: %w", err)
		}
		amount, ok := new(big.Int).SetString(p.Amount, 10)
		if !ok {
			return fmt.Errorf("receipt redeem: bad amount %q", p.Amount)
		}
		return Redeem(ctx.StateDB, ctx.From, amount, ctx.Time)
	}
	return fmt.Errorf("receipt handler: unsupported action %q", sa.Action)
}

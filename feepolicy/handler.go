package feepolicy

import (
	"fmt"

	"github.com/xfuel-network/xfengine/sysaction"
)

func init() {
	sysaction.DefaultRegistry.Register(&feeHandler{})
}

// feeHandler implements sysaction.Handler for fee policy actions.
type feeHandler struct{}

func (h *feeHandler) CanHandle(kind sysaction.ActionKind) bool {
	switch kind {
	case sysaction.ActionFeesSetEnabled,
		sysaction.ActionFeeSetMode,
		sysaction.ActionFeeSetCustom:
		return true
	}
	return false
}

// EnabledPayload carries the FEES_SET_ENABLED flag.
type EnabledPayload struct {
	Enabled bool `json:"enabled"`
}

// ModePayload carries the FEE_SET_MODE mode name ("growth"/"extraction").
type ModePayload struct {
	Mode string `json:"mode"`
}

// CustomFeePayload carries the FEE_SET_CUSTOM fee in basis points.
type CustomFeePayload struct {
	FeeBps uint64 `json:"fee_bps"`
}

func (h *feeHandler) Handle(ctx *sysaction.Context, sa *sysaction.SysAction) error {
	switch sa.Action {
	case sysaction.ActionFeesSetEnabled:
		var p EnabledPayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return fmt.Errorf("fees set enabled: %w", err)
		}
		return SetFeesEnabled(ctx.StateDB, ctx.From, p.Enabled, ctx.Time)

	case sysaction.ActionFeeSetMode:
		var p ModePayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return fmt.Errorf("fee set mode: %w", err)
		}
		mode, err := ParseMode(p.Mode)
		if err != nil {
			return err
		}
		return SetFeeMode(ctx.StateDB, ctx.From, mode, ctx.Time)

	case sysaction.ActionFeeSetCustom:
		var p CustomFeePayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return fmt.Errorf("fee set custom: %w", err)
		}
		return SetCustomFee(ctx.StateDB, ctx.From, p.FeeBps, ctx.Time)
	}
	return fmt.Errorf("fee handler: unsupported action %q", sa.Action)
}

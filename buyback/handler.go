package buyback

import (
	"fmt"
	"math/big"

	"github.com/xfuel-network/xfengine/sysaction"
)

func init() {
	sysaction.DefaultRegistry.Register(&buybackHandler{})
}

// buybackHandler implements sysaction.Handler for accumulator actions.
type buybackHandler struct{}

func (h *buybackHandler) CanHandle(kind sysaction.ActionKind) bool {
	switch kind {
	case sysaction.ActionBuybackReceive, sysaction.ActionBuybackRecord:
		return true
	}
	return false
}

// RecordPayload carries BUYBACK_RECORD amounts as decimal strings.
type RecordPayload struct {
	Spent  string `json:"spent"`
	Burned string `json:"burned"`
}

func (h *buybackHandler) Handle(ctx *sysaction.Context, sa *sysaction.SysAction) error {
	switch sa.Action {
	case sysaction.ActionBuybackReceive:
		value := ctx.Value
		if value == nil {
			value = new(big.Int)
		}
		return ReceiveRevenue(ctx.StateDB, ctx.From, value, ctx.Time)

	case sysaction.ActionBuybackRecord:
		var p RecordPayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return fmt.Errorf("buyback record: %w", err)
		}
		spent := new(big.Int)
		if p.Spent != "" {
			v, ok := new(big.Int).SetString(p.Spent, 10)
			if !ok {
				return fmt.Errorf("buyback record: bad spent %q", p.Spent)
			}
			spent = v
		}
		burned, ok := new(big.Int).SetString(p.Burned, 10)
		if !ok {
			return fmt.Errorf("buyback record: bad burned %q", p.Burned)
		}
		return RecordBuyback(ctx.StateDB, ctx.From, spent, burned, ctx.Time)
	}
	return fmt.Errorf("buyback handler: unsupported action %q", sa.Action)
}

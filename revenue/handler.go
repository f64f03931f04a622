package revenue

import (
	"fmt"
	"math/big"

	"github.com/xfuel-network/xfengine/sysaction"
)

func init() {
	sysaction.DefaultRegistry.Register(&revenueHandler{})
}

// revenueHandler implements sysaction.Handler for split actions. The event
// amount rides in the action value.
type revenueHandler struct{}

func (h *revenueHandler) CanHandle(kind sysaction.ActionKind) bool {
	switch kind {
	case sysaction.ActionRevenueSplit, sysaction.ActionRevenueSplitNative:
		return true
	}
	return false
}

func (h *revenueHandler) Handle(ctx *sysaction.Context, sa *sysaction.SysAction) error {
	value := ctx.Value
	if value == nil {
		value = new(big.Int)
	}
	switch sa.Action {
	case sysaction.ActionRevenueSplit:
		return SplitRevenue(ctx.StateDB, ctx.From, value, ctx.Time)
	case sysaction.ActionRevenueSplitNative:
		return SplitRevenueNative(ctx.StateDB, ctx.From, value, ctx.Time)
	}
	return fmt.Errorf("revenue handler: unsupported action %q", sa.Action)
}

package escrow

import (
	"fmt"
	"math/big"

	"github.com/xfuel-network/xfengine/sysaction"
)

func init() {
	sysaction.DefaultRegistry.Register(&escrowHandler{})
}

// escrowHandler implements sysaction.Handler for lock and yield actions.
type escrowHandler struct{}

func (h *escrowHandler) CanHandle(kind sysaction.ActionKind) bool {
	switch kind {
	case sysaction.ActionLockCreate,
		sysaction.ActionLockIncreaseAmount,
		sysaction.ActionLockExtend,
		sysaction.ActionLockWithdraw,
		sysaction.ActionYieldDistribute,
		sysaction.ActionYieldClaim:
		return true
	}
	return false
}

// LockPayload carries the unlock time for LOCK_CREATE / LOCK_EXTEND.
type LockPayload struct {
	UnlockTime uint64 `json:"unlock_time"`
}

func (h *escrowHandler) Handle(ctx *sysaction.Context, sa *sysaction.SysAction) error {
	db := ctx.StateDB
	value := ctx.Value
	if value == nil {
		value = new(big.Int)
	}

	switch sa.Action {
	case sysaction.ActionLockCreate:
		var p LockPayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return fmt.Errorf("lock create: %w", err)
		}
		return CreateLock(db, ctx.From, value, p.UnlockTime, ctx.Time)

	case sysaction.ActionLockIncreaseAmount:
		return IncreaseAmount(db, ctx.From, value, ctx.Time)

	case sysaction.ActionLockExtend:
		var p LockPayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return fmt.Errorf("lock extend: %w", err)
		}
		return IncreaseUnlockTime(db, ctx.From, p.UnlockTime, ctx.Time)

	case sysaction.ActionLockWithdraw:
		_, err := Withdraw(db, ctx.From, ctx.Time)
		return err

	case sysaction.ActionYieldDistribute:
		return DistributeYield(db, ctx.From, value, ctx.Time)

	case sysaction.ActionYieldClaim:
		_, err := ClaimYield(db, ctx.From, ctx.Time)
		return err
	}
	return fmt.Errorf("escrow handler: unsupported action %q", sa.Action)
}

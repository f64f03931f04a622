package sysaction

import (
	"fmt"
	"math/big"

	"github.com/xfuel-network/xfengine/common"
	"github.com/xfuel-network/xfengine/core/vm"
)

// Context carries information available to an engine action handler.
type Context struct {
	From    common.Address
	Value   *big.Int // funds attached to the action, nil means zero
	Time    uint64   // engine time, unix seconds
	StateDB vm.StateDB
}

// Handler is implemented by each engine component.
type Handler interface {
	CanHandle(kind ActionKind) bool
	Handle(ctx *Context, sa *SysAction) error
}

// Registry holds registered handlers.
type Registry struct{ handlers []Handler }

// DefaultRegistry is the process-wide handler registry.
var DefaultRegistry = &Registry{}

// Register adds a handler to the registry.
func (r *Registry) Register(h Handler) { r.handlers = append(r.handlers, h) }

// Execute decodes an action from data and dispatches it to a registered
// handler. The handler runs inside a state snapshot: on error all state
// mutations, balance moves and emitted logs are reverted, so every operation
// either applies in full or not at all.
func Execute(ctx *Context, data []byte) error {
	sa, err := Decode(data)
	if err != nil {
		return err
	}
	return ExecuteAction(ctx, sa)
}

// ExecuteAction dispatches a decoded SysAction under a state snapshot.
func ExecuteAction(ctx *Context, sa *SysAction) error {
	for _, h := range DefaultRegistry.handlers {
		if h.CanHandle(sa.Action) {
			snap := ctx.StateDB.Snapshot()
			if err := h.Handle(ctx, sa); err != nil {
				ctx.StateDB.RevertToSnapshot(snap)
				return err
			}
			return nil
		}
	}
	return fmt.Errorf("unknown system action: %q", sa.Action)
}

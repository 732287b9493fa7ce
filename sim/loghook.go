package sim

import (
	"log"
)

// LogHookBase proovides the common logic for all LogHooks
type LogHookBase struct {
	*log.Logger
}

// PositionLogger logs the name of the domain and the hook position every time
// it is invoked at one of the positions it watches.
type PositionLogger struct {
	LogHookBase

	positions []*HookPos
}

// NewPositionLogger creates a PositionLogger that writes to the given logger.
// If no positions are given, every invocation is logged.
func NewPositionLogger(logger *log.Logger, positions ...*HookPos) *PositionLogger {
	return &PositionLogger{
		LogHookBase: LogHookBase{Logger: logger},
		positions:   positions,
	}
}

// Func writes the log line.
func (h *PositionLogger) Func(ctx HookCtx) {
	if !h.watches(ctx.Pos) {
		return
	}

	name := ""
	if named, ok := ctx.Domain.(Named); ok {
		name = named.Name()
	}

	h.Printf("%s: %s %v", name, ctx.Pos.Name, ctx.Item)
}

func (h *PositionLogger) watches(pos *HookPos) bool {
	if len(h.positions) == 0 {
		return true
	}

	for _, p := range h.positions {
		if p == pos {
			return true
		}
	}

	return false
}

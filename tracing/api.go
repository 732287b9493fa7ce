// Package tracing records what a simulation spent its simulated time on.
package tracing

import (
	"github.com/sarchlab/rcsim/sim"
)

// A list of hook poses for the hooks to apply to
var (
	HookPosTaskStart = &sim.HookPos{Name: "HookPosTaskStart"}
	HookPosTaskEnd   = &sim.HookPos{Name: "HookPosTaskEnd"}
)

// StartTask notifies the hooks that hook to the domain about the start of a
// task.
func StartTask(
	id string,
	parentID string,
	domain sim.NamedHookable,
	kind string,
	what string,
	now sim.VTimeInSec,
) {
	allRequiredFieldsMustBeNotEmpty(id, domain, kind, what)

	if domain.NumHooks() == 0 {
		return
	}

	domainMustHaveName(domain)

	task := Task{
		ID:        id,
		ParentID:  parentID,
		Kind:      kind,
		What:      what,
		Location:  domain.Name(),
		StartTime: now,
	}
	ctx := sim.HookCtx{
		Domain: domain,
		Pos:    HookPosTaskStart,
		Item:   task,
	}
	domain.InvokeHook(ctx)
}

func allRequiredFieldsMustBeNotEmpty(
	id string,
	domain sim.NamedHookable,
	kind string,
	what string,
) {
	if id == "" {
		panic("id must not be empty")
	}

	if domain == nil {
		panic("domain must not be nil")
	}

	if kind == "" {
		panic("kind must not be empty")
	}

	if what == "" {
		panic("what must not be empty")
	}
}

func domainMustHaveName(domain sim.NamedHookable) {
	if domain.Name() == "" {
		panic("domain must have a name")
	}
}

// EndTask notifies the hooks about the end of a task.
func EndTask(id string, domain sim.NamedHookable, now sim.VTimeInSec) {
	if domain.NumHooks() == 0 {
		return
	}

	task := Task{
		ID:      id,
		EndTime: now,
	}
	ctx := sim.HookCtx{
		Domain: domain,
		Pos:    HookPosTaskEnd,
		Item:   task,
	}
	domain.InvokeHook(ctx)
}

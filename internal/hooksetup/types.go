// Package hooksetup reconciles desired ccgadget hook bindings against the
// hooks already present in a host settings file.
package hooksetup

import (
	"context"
	"fmt"

	"github.com/ccgadget/ccgadget/internal/config"
)

// Action is the user's choice for a conflicting event
type Action int

const (
	ActionReplace Action = iota
	ActionAppend
	ActionSkip
)

func (a Action) String() string {
	switch a {
	case ActionReplace:
		return "replace"
	case ActionAppend:
		return "append"
	case ActionSkip:
		return "skip"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Label is the menu title of an action
func (a Action) Label() string {
	switch a {
	case ActionReplace:
		return "Replace existing hooks"
	case ActionAppend:
		return "Append after existing hooks"
	case ActionSkip:
		return "Skip this event"
	default:
		return a.String()
	}
}

// Description says what the action does to the event's hooks
func (a Action) Description() string {
	switch a {
	case ActionReplace:
		return "remove existing hooks for this event and install ccgadget's"
	case ActionAppend:
		return "keep other hooks and add ccgadget's after them"
	case ActionSkip:
		return "leave this event unchanged"
	default:
		return ""
	}
}

// Actions lists every valid Action in prompt order
var Actions = []Action{ActionReplace, ActionAppend, ActionSkip}

// Result is the per-event outcome reported to the user
type Result int

const (
	ResultAdded Result = iota
	ResultSkipped
	ResultAlreadyExists
)

func (r Result) String() string {
	switch r {
	case ResultAdded:
		return "added"
	case ResultSkipped:
		return "skipped"
	case ResultAlreadyExists:
		return "already exists"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// Reason explains why the user is being asked
type Reason int

const (
	// ReasonMismatched means a related but imperfect ccgadget hook exists
	ReasonMismatched Reason = iota
	// ReasonOtherHooks means only hooks owned by something else exist
	ReasonOtherHooks
)

func (r Reason) String() string {
	switch r {
	case ReasonMismatched:
		return "existing hook does not match"
	case ReasonOtherHooks:
		return "event has other hooks"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}

// ActionRequest carries everything a Prompter needs to ask about one event
type ActionRequest struct {
	Event   string
	Command string
	Groups  []Group
	Reason  Reason
}

// Prompter asks the user how to handle a conflicting event. Implementations
// must return one of Actions or an error.
type Prompter interface {
	AskHookAction(ctx context.Context, req ActionRequest) (Action, error)
}

// PrompterFunc adapts a function to Prompter
type PrompterFunc func(ctx context.Context, req ActionRequest) (Action, error)

func (f PrompterFunc) AskHookAction(ctx context.Context, req ActionRequest) (Action, error) {
	return f(ctx, req)
}

// Options are the run-wide flags for a reconciliation pass
type Options struct {
	Scope config.Scope
	// Force replaces related but mismatched hooks without asking
	Force bool
	// AutoApprove answers every prompt with the non-interactive default
	AutoApprove bool
}

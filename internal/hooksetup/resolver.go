package hooksetup

import (
	"context"
	"errors"
	"fmt"

	"github.com/ccgadget/ccgadget/internal/config"
)

// Decision is what the engine does to one event
type Decision int

const (
	// DecisionCreate writes a fresh group list for an event that had none
	DecisionCreate Decision = iota
	DecisionAlreadyExists
	DecisionReplace
	DecisionAppend
	DecisionSkip
)

func (d Decision) String() string {
	switch d {
	case DecisionCreate:
		return "create"
	case DecisionAlreadyExists:
		return "already-exists"
	case DecisionReplace:
		return "replace"
	case DecisionAppend:
		return "append"
	case DecisionSkip:
		return "skip"
	default:
		return fmt.Sprintf("Decision(%d)", int(d))
	}
}

// Result maps a decision to the outcome reported for the event
func (d Decision) Result() Result {
	switch d {
	case DecisionCreate, DecisionReplace, DecisionAppend:
		return ResultAdded
	case DecisionAlreadyExists:
		return ResultAlreadyExists
	case DecisionSkip:
		return ResultSkipped
	default:
		panic(fmt.Sprintf("hooksetup: unhandled decision %d", int(d)))
	}
}

// ErrNoPrompter is wrapped in a prompt error when a question must be asked
// but no Prompter was configured.
var ErrNoPrompter = errors.New("no interactive prompt available; rerun with --yes")

// Resolver picks a Decision for one event. It asks Prompter only when
// neither flag settles the question.
type Resolver struct {
	Prompter Prompter
}

// Resolve classifies groups against command and returns the decision.
// present is false when the event key is absent from the hooks object.
func (r *Resolver) Resolve(ctx context.Context, event, command string, groups []Group, present bool, opts Options) (Decision, error) {
	if !present {
		return DecisionCreate, nil
	}

	if IsExactMatch(groups, command) {
		return DecisionAlreadyExists, nil
	}

	if AnyRelatedMatch(groups, command) {
		if opts.Force || opts.AutoApprove {
			return DecisionReplace, nil
		}
		return r.ask(ctx, ActionRequest{Event: event, Command: command, Groups: groups, Reason: ReasonMismatched})
	}

	// force is deliberately ignored here; foreign hooks need --yes or an answer
	if HasUnrelatedGroups(groups, command) {
		if opts.AutoApprove {
			return DecisionAppend, nil
		}
		return r.ask(ctx, ActionRequest{Event: event, Command: command, Groups: groups, Reason: ReasonOtherHooks})
	}

	return DecisionAppend, nil
}

func (r *Resolver) ask(ctx context.Context, req ActionRequest) (Decision, error) {
	if r.Prompter == nil {
		return 0, config.NewConfigError(config.KindPromptIO, "", req.Event, ErrNoPrompter)
	}

	action, err := r.Prompter.AskHookAction(ctx, req)
	if err != nil {
		var cfgErr *config.ConfigError
		if errors.As(err, &cfgErr) {
			return 0, err
		}
		return 0, config.NewConfigError(config.KindPromptIO, "", req.Event, err)
	}

	switch action {
	case ActionReplace:
		return DecisionReplace, nil
	case ActionAppend:
		return DecisionAppend, nil
	case ActionSkip:
		return DecisionSkip, nil
	default:
		return 0, config.NewConfigError(config.KindPromptIO, "", req.Event, fmt.Errorf("prompt returned unknown action %d", int(action)))
	}
}

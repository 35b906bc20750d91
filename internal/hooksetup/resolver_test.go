package hooksetup

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/ccgadget/ccgadget/internal/config"
)

// scriptedPrompter answers from a fixed list and records each request
type scriptedPrompter struct {
	answers  []Action
	err      error
	requests []ActionRequest
}

func (p *scriptedPrompter) AskHookAction(_ context.Context, req ActionRequest) (Action, error) {
	p.requests = append(p.requests, req)
	if p.err != nil {
		return 0, p.err
	}
	if len(p.answers) == 0 {
		return 0, errors.New("scriptedPrompter: no answers left")
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a, nil
}

const (
	exactSrc   = `[{"matcher":"","hooks":[{"type":"command","command":"ccgadget trigger"}]}]`
	relatedSrc = `[{"matcher":"","hooks":[{"type":"command","command":"/old/ccgadget trigger --v"}]}]`
	foreignSrc = `[{"matcher":"*.py","hooks":[{"type":"command","command":"lint.sh"}]}]`
	emptySrc   = `[{"matcher":"","hooks":[]}]`
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		src        string // empty means the event is absent
		opts       Options
		answers    []Action
		want       Decision
		wantPrompt bool
		wantReason Reason
	}{
		{name: "absent event", want: DecisionCreate},
		{name: "absent event with flags", opts: Options{Force: true, AutoApprove: true}, want: DecisionCreate},
		{name: "exact match", src: exactSrc, want: DecisionAlreadyExists},
		{name: "exact match never prompts", src: exactSrc, opts: Options{Force: true}, want: DecisionAlreadyExists},
		{name: "related with force", src: relatedSrc, opts: Options{Force: true}, want: DecisionReplace},
		{name: "related with yes", src: relatedSrc, opts: Options{AutoApprove: true}, want: DecisionReplace},
		{name: "related prompts append", src: relatedSrc, answers: []Action{ActionAppend}, want: DecisionAppend, wantPrompt: true, wantReason: ReasonMismatched},
		{name: "related prompts skip", src: relatedSrc, answers: []Action{ActionSkip}, want: DecisionSkip, wantPrompt: true, wantReason: ReasonMismatched},
		{name: "foreign with yes", src: foreignSrc, opts: Options{AutoApprove: true}, want: DecisionAppend},
		{name: "foreign ignores force", src: foreignSrc, opts: Options{Force: true}, answers: []Action{ActionSkip}, want: DecisionSkip, wantPrompt: true, wantReason: ReasonOtherHooks},
		{name: "foreign prompts replace", src: foreignSrc, answers: []Action{ActionReplace}, want: DecisionReplace, wantPrompt: true, wantReason: ReasonOtherHooks},
		{name: "empty groups append", src: emptySrc, want: DecisionAppend},
		{name: "empty list append", src: `[]`, want: DecisionAppend},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var groups []Group
			present := tt.src != ""
			if present {
				groups = mustGroups(t, tt.src)
			}
			p := &scriptedPrompter{answers: tt.answers}
			r := &Resolver{Prompter: p}

			got, err := r.Resolve(context.Background(), "UserPromptSubmit", target, groups, present, tt.opts)
			if err != nil {
				t.Fatalf("Resolve() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve() = %s, want %s", got, tt.want)
			}
			if prompted := len(p.requests) > 0; prompted != tt.wantPrompt {
				t.Fatalf("prompted = %v, want %v", prompted, tt.wantPrompt)
			}
			if tt.wantPrompt {
				req := p.requests[0]
				if req.Reason != tt.wantReason || req.Event != "UserPromptSubmit" || req.Command != target {
					t.Errorf("request = %+v", req)
				}
				if len(req.Groups) != len(groups) {
					t.Errorf("request carried %d groups, want %d", len(req.Groups), len(groups))
				}
			}
		})
	}
}

func TestResolvePromptErrors(t *testing.T) {
	groups := mustGroups(t, foreignSrc)

	t.Run("no prompter", func(t *testing.T) {
		_, err := (&Resolver{}).Resolve(context.Background(), "Stop", target, groups, true, Options{})
		if !errors.Is(err, config.ErrPromptIO) || !errors.Is(err, ErrNoPrompter) {
			t.Errorf("error = %v, want prompt error wrapping ErrNoPrompter", err)
		}
	})

	t.Run("closed input", func(t *testing.T) {
		r := &Resolver{Prompter: &scriptedPrompter{err: io.EOF}}
		_, err := r.Resolve(context.Background(), "Stop", target, groups, true, Options{})
		if !errors.Is(err, config.ErrPromptIO) || !errors.Is(err, io.EOF) {
			t.Errorf("error = %v, want prompt error wrapping EOF", err)
		}
	})

	t.Run("unknown action", func(t *testing.T) {
		r := &Resolver{Prompter: PrompterFunc(func(context.Context, ActionRequest) (Action, error) {
			return Action(42), nil
		})}
		_, err := r.Resolve(context.Background(), "Stop", target, groups, true, Options{})
		if !errors.Is(err, config.ErrPromptIO) {
			t.Errorf("error = %v, want ErrPromptIO", err)
		}
	})
}

func TestDecisionResult(t *testing.T) {
	tests := map[Decision]Result{
		DecisionCreate:        ResultAdded,
		DecisionReplace:       ResultAdded,
		DecisionAppend:        ResultAdded,
		DecisionAlreadyExists: ResultAlreadyExists,
		DecisionSkip:          ResultSkipped,
	}
	for d, want := range tests {
		if got := d.Result(); got != want {
			t.Errorf("%s.Result() = %s, want %s", d, got, want)
		}
	}
}

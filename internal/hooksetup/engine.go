package hooksetup

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ccgadget/ccgadget/internal/config"
	"github.com/ccgadget/ccgadget/internal/settings"
)

// Outcome records what happened to one binding
type Outcome struct {
	Event    string
	Command  string
	Decision Decision
	Result   Result
}

// Report summarizes a reconciliation pass
type Report struct {
	SettingsPath string
	Outcomes     []Outcome
}

// Added counts events that received a new hook
func (r *Report) Added() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Result == ResultAdded {
			n++
		}
	}
	return n
}

// Skipped lists events the user chose to leave alone
func (r *Report) Skipped() []string {
	var events []string
	for _, o := range r.Outcomes {
		if o.Result == ResultSkipped {
			events = append(events, o.Event)
		}
	}
	return events
}

// Summary renders the aggregate result line
func (r *Report) Summary() string {
	added := r.Added()
	skipped := r.Skipped()

	var b strings.Builder
	switch {
	case added == 0 && len(skipped) == 0:
		b.WriteString("All hooks already configured")
	case added == 1:
		b.WriteString("Added 1 hook")
	default:
		fmt.Fprintf(&b, "Added %d hooks", added)
	}
	if len(skipped) > 0 {
		fmt.Fprintf(&b, "; skipped %s", strings.Join(skipped, ", "))
	}
	if r.SettingsPath != "" {
		fmt.Fprintf(&b, " (%s)", r.SettingsPath)
	}
	return b.String()
}

// Engine drives one load, reconcile, save pass over a settings file.
type Engine struct {
	Store    config.SettingsStore
	Prompter Prompter
}

// NewEngine creates an engine over the given store and prompter
func NewEngine(store config.SettingsStore, prompter Prompter) *Engine {
	return &Engine{Store: store, Prompter: prompter}
}

// Run reconciles bindings in order and saves the document once. Nothing is
// written if any binding fails.
func (e *Engine) Run(ctx context.Context, bindings []config.HookBinding, opts Options) (*Report, error) {
	path, err := e.Store.Path(opts.Scope)
	if err != nil {
		return nil, err
	}

	doc, err := e.Store.Load(path)
	if err != nil {
		return nil, err
	}

	if _, err := doc.EnsureHooks(); err != nil {
		return nil, config.NewConfigError(config.KindSettingsSchema, path, "", err)
	}

	resolver := &Resolver{Prompter: e.Prompter}
	report := &Report{SettingsPath: path}

	for _, b := range bindings {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, present := doc.Event(b.Event)
		var groups []Group
		if present {
			groups, err = ParseGroups(raw)
			if err != nil {
				return nil, config.NewConfigError(config.KindSettingsSchema, path, b.Event, err)
			}
		}

		decision, err := resolver.Resolve(ctx, b.Event, b.Command, groups, present, opts)
		if err != nil {
			var cfgErr *config.ConfigError
			if errors.As(err, &cfgErr) && cfgErr.Path == "" {
				cfgErr.Path = path
			}
			return nil, err
		}

		if err := apply(doc, b, decision, raw, groups); err != nil {
			return nil, config.NewConfigError(config.KindSettingsSchema, path, b.Event, err)
		}

		report.Outcomes = append(report.Outcomes, Outcome{
			Event:    b.Event,
			Command:  b.Command,
			Decision: decision,
			Result:   decision.Result(),
		})
	}

	if err := e.Store.Save(path, doc); err != nil {
		return nil, err
	}
	return report, nil
}

// apply performs the single mutation for a decision. groups is the snapshot
// parsed from raw, index for index.
func apply(doc *settings.Document, b config.HookBinding, d Decision, raw any, groups []Group) error {
	switch d {
	case DecisionAlreadyExists, DecisionSkip:
		return nil
	case DecisionCreate, DecisionReplace:
		return doc.SetEvent(b.Event, []any{newGroup(b.Command)})
	case DecisionAppend:
		list, _ := raw.([]any)
		kept := make([]any, 0, len(list)+1)
		for i, g := range list {
			if groups[i].related(b.Command) {
				continue
			}
			kept = append(kept, g)
		}
		return doc.SetEvent(b.Event, append(kept, newGroup(b.Command)))
	default:
		return fmt.Errorf("unhandled decision %s", d)
	}
}

func newGroup(command string) map[string]any {
	return map[string]any{
		"matcher": "",
		"hooks": []any{
			map[string]any{"type": commandType, "command": command},
		},
	}
}

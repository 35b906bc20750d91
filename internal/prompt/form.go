package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ccgadget/ccgadget/internal/config"
	"github.com/ccgadget/ccgadget/internal/device"
	"github.com/ccgadget/ccgadget/internal/hooksetup"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// FormPrompt asks through an interactive huh select. It needs a terminal.
type FormPrompt struct {
	theme *huh.Theme
}

// NewFormPrompt creates a form prompt with the ccgadget theme
func NewFormPrompt() *FormPrompt {
	return &FormPrompt{theme: newTheme()}
}

func (p *FormPrompt) AskHookAction(ctx context.Context, req hooksetup.ActionRequest) (hooksetup.Action, error) {
	action := hooksetup.ActionAppend
	sel := huh.NewSelect[hooksetup.Action]().
		Title(fmt.Sprintf("%s: %s", req.Event, req.Reason)).
		Description(DescribeGroups(req.Groups) + "   ccgadget wants to install: " + req.Command).
		Options(actionOptions()...).
		Value(&action)

	if err := p.run(ctx, sel, req.Event); err != nil {
		return 0, err
	}
	return action, nil
}

func (p *FormPrompt) SelectDevice(ctx context.Context, devices []device.Device) (int, error) {
	opts, choice := deviceOptions(devices)
	sel := huh.NewSelect[int]().
		Title("Select a CCGadget to pair").
		Options(opts...).
		Value(&choice)

	if err := p.run(ctx, sel, ""); err != nil {
		return -1, err
	}
	return choice - 1, nil
}

func actionOptions() []huh.Option[hooksetup.Action] {
	opts := make([]huh.Option[hooksetup.Action], 0, len(hooksetup.Actions))
	for _, a := range hooksetup.Actions {
		opts = append(opts, huh.NewOption(a.Label(), a))
	}
	return opts
}

// deviceOptions lists devices as 1-based values with 0 for Cancel. The
// initial value is the first device so Enter pairs instead of cancelling.
func deviceOptions(devices []device.Device) ([]huh.Option[int], int) {
	opts := make([]huh.Option[int], 0, len(devices)+1)
	for i, d := range devices {
		opts = append(opts, huh.NewOption(d.String(), i+1))
	}
	opts = append(opts, huh.NewOption("Cancel", 0))
	if len(devices) == 0 {
		return opts, 0
	}
	return opts, 1
}

func (p *FormPrompt) run(ctx context.Context, field huh.Field, event string) error {
	if err := ctx.Err(); err != nil {
		return config.NewConfigError(config.KindPromptIO, "", event, err)
	}
	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(p.theme).
		WithAccessible(false)
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return config.NewConfigError(config.KindPromptIO, "", event, errors.New("aborted by user"))
		}
		return config.NewConfigError(config.KindPromptIO, "", event, err)
	}
	return nil
}

func newTheme() *huh.Theme {
	t := huh.ThemeBase()

	primary := lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#F59E0B"}
	green := lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"}
	muted := lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"}

	t.Focused.Title = t.Focused.Title.Foreground(primary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(muted)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(primary).SetString("▸ ")
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(green)
	t.Blurred = t.Focused
	return t
}

// IsTerminal reports whether f is an interactive terminal
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Interactive is what the CLI needs from a prompt
type Interactive interface {
	hooksetup.Prompter
	device.Selector
}

// New picks a form prompt when in is a terminal and a line prompt otherwise.
func New(in *os.File, out io.Writer) Interactive {
	if IsTerminal(in) {
		return NewFormPrompt()
	}
	return NewLinePrompt(in, out)
}

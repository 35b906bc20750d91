// Package prompt asks the user how to resolve hook conflicts and which
// gadget to pair with, either as a TTY form or as plain line input.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ccgadget/ccgadget/internal/config"
	"github.com/ccgadget/ccgadget/internal/device"
	"github.com/ccgadget/ccgadget/internal/hooksetup"
)

// LinePrompt reads one answer per line. Unrecognized answers are asked again.
type LinePrompt struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompt reads answers from in and writes questions to out
func NewLinePrompt(in io.Reader, out io.Writer) *LinePrompt {
	return &LinePrompt{in: bufio.NewReader(in), out: out}
}

// ParseAction maps an answer to an Action. It accepts the action name, its
// first letter, or its 1-based menu number.
func ParseAction(answer string) (hooksetup.Action, bool) {
	a := strings.ToLower(strings.TrimSpace(answer))
	if a == "" {
		return 0, false
	}
	for i, action := range hooksetup.Actions {
		name := action.String()
		if a == name || a == name[:1] || a == strconv.Itoa(i+1) {
			return action, true
		}
	}
	return 0, false
}

func (p *LinePrompt) AskHookAction(ctx context.Context, req hooksetup.ActionRequest) (hooksetup.Action, error) {
	fmt.Fprintf(p.out, "\n⚠️  %s: %s\n", req.Event, req.Reason)
	fmt.Fprint(p.out, DescribeGroups(req.Groups))
	fmt.Fprintf(p.out, "   ccgadget wants to install: %s\n", req.Command)
	for i, action := range hooksetup.Actions {
		name := action.String()
		fmt.Fprintf(p.out, "   %d. %-7s - %s\n", i+1, strings.ToUpper(name[:1])+name[1:], action.Description())
	}

	for {
		fmt.Fprint(p.out, "Choose [r]eplace, [a]ppend or [s]kip: ")
		line, err := p.readLine(ctx, req.Event)
		if err != nil {
			return 0, err
		}
		if action, ok := ParseAction(line); ok {
			return action, nil
		}
		fmt.Fprintf(p.out, "   ❌ Invalid choice %q. Please try again.\n", strings.TrimSpace(line))
	}
}

func (p *LinePrompt) SelectDevice(ctx context.Context, devices []device.Device) (int, error) {
	for {
		fmt.Fprintf(p.out, "Select a device (1-%d, 0 to cancel): ", len(devices))
		line, err := p.readLine(ctx, "")
		if err != nil {
			return -1, err
		}
		n, convErr := strconv.Atoi(strings.TrimSpace(line))
		switch {
		case convErr != nil || n < 0 || n > len(devices):
			fmt.Fprintln(p.out, "   ❌ Invalid selection. Please try again.")
		case n == 0:
			return -1, nil
		default:
			return n - 1, nil
		}
	}
}

// readLine returns the next line. A final line without a newline is still
// returned; end of input with nothing read is a prompt error.
func (p *LinePrompt) readLine(ctx context.Context, event string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", config.NewConfigError(config.KindPromptIO, "", event, err)
	}
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && strings.TrimSpace(line) != "" {
			return line, nil
		}
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return "", config.NewConfigError(config.KindPromptIO, "", event, fmt.Errorf("input closed: %w", err))
	}
	return line, nil
}

// DescribeGroups renders the existing hook groups of an event, one line per entry.
func DescribeGroups(groups []hooksetup.Group) string {
	if len(groups) == 0 {
		return "   (no existing hooks)\n"
	}
	var b strings.Builder
	b.WriteString("   Existing hooks:\n")
	for i, g := range groups {
		matcher := g.Matcher
		if matcher == "" {
			matcher = "(all)"
		}
		fmt.Fprintf(&b, "   [%d] matcher %s\n", i+1, matcher)
		if len(g.Entries) == 0 {
			b.WriteString("       (empty)\n")
		}
		for _, e := range g.Entries {
			fmt.Fprintf(&b, "       - %s: %s\n", e.Type, e.Command)
		}
	}
	return b.String()
}

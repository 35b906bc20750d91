// Package trigger records hook payloads sent by the host application so the
// gadget can be updated from them.
package trigger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/brads3290/cchooks"
	"github.com/ccgadget/ccgadget/internal/config"
	"github.com/ccgadget/ccgadget/internal/constants"
	"github.com/mattn/go-isatty"
)

// HookInput is the subset of a hook payload ccgadget understands. Every
// field is optional; event-specific fields are set only for their events.
type HookInput struct {
	SessionID      string `json:"session_id,omitempty"`
	TranscriptPath string `json:"transcript_path,omitempty"`
	CWD            string `json:"cwd,omitempty"`
	HookEventName  string `json:"hook_event_name,omitempty"`

	// UserPromptSubmit
	Prompt string `json:"prompt,omitempty"`
	// Notification
	Message string `json:"message,omitempty"`
	// PreToolUse and PostToolUse
	ToolName     string          `json:"tool_name,omitempty"`
	ToolInput    json.RawMessage `json:"tool_input,omitempty"`
	ToolResponse json.RawMessage `json:"tool_response,omitempty"`
}

// LogMetadata identifies the writer of a log entry
type LogMetadata struct {
	Version string `json:"version"`
	Source  string `json:"source"`
}

// LogEntry is one line of the daily trigger log
type LogEntry struct {
	Timestamp time.Time   `json:"timestamp"`
	HookInput *HookInput  `json:"hook_input"`
	Metadata  LogMetadata `json:"metadata"`
}

// ParseHookInput decodes a payload. Blank input yields nil without error.
func ParseHookInput(raw string) (*HookInput, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var in HookInput
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		return nil, err
	}
	return &in, nil
}

// Logger appends entries to ~/.ccgadget/logs/trigger-YYYY-MM-DD.log
type Logger struct {
	Dir      string
	Rotation config.LogRotationConfig
	Now      func() time.Time
}

// NewLogger returns a logger writing under dir
func NewLogger(dir string, rotation config.LogRotationConfig) *Logger {
	return &Logger{Dir: dir, Rotation: rotation, Now: time.Now}
}

// Log writes one entry and returns the file it went to
func (l *Logger) Log(in *HookInput) (string, error) {
	now := time.Now
	if l.Now != nil {
		now = l.Now
	}
	ts := now().UTC()
	path := config.GetTriggerLogPath(l.Dir, ts)

	writer := config.SetupLogRotation(path, l.Rotation)
	if writer == nil {
		return path, fmt.Errorf("failed to create log directory %s", l.Dir)
	}
	defer writer.Close()

	line, err := json.Marshal(LogEntry{
		Timestamp: ts,
		HookInput: in,
		Metadata:  LogMetadata{Version: constants.AppVersion, Source: constants.LogSource},
	})
	if err != nil {
		return path, fmt.Errorf("failed to encode log entry: %w", err)
	}
	if _, err := writer.Write(append(line, '\n')); err != nil {
		return path, fmt.Errorf("failed to write log entry: %w", err)
	}

	if err := config.CleanupOldLogs(l.Dir, l.Rotation.MaxAge); err != nil {
		log.Printf("Failed to clean up old trigger logs: %v", err)
	}
	return path, nil
}

// Handler turns a raw hook payload into a log entry and a short report.
type Handler struct {
	Logger *Logger
	Out    io.Writer
	Err    io.Writer
}

// Raw is the cchooks raw handler. Every payload is answered with exit code
// 0 so the runner stops here and the host is never blocked.
func (h *Handler) Raw() func(context.Context, string) *cchooks.RawResponse {
	return func(ctx context.Context, rawJSON string) *cchooks.RawResponse {
		h.Handle(ctx, rawJSON)
		return &cchooks.RawResponse{ExitCode: 0}
	}
}

// NewRunner wires h into a cchooks runner. Errors raised before Raw runs,
// such as an unreadable stdin, still produce a log entry and exit 0.
func (h *Handler) NewRunner(exit func(int)) *cchooks.Runner {
	handled := false
	raw := h.Raw()
	return &cchooks.Runner{
		Raw: func(ctx context.Context, rawJSON string) *cchooks.RawResponse {
			handled = true
			return raw(ctx, rawJSON)
		},
		Error: func(ctx context.Context, rawJSON string, err error) *cchooks.RawResponse {
			fmt.Fprintf(h.Err, "   ⚠️ Hook input error: %v\n", err)
			if !handled {
				handled = true
				h.Handle(ctx, rawJSON)
			}
			return &cchooks.RawResponse{ExitCode: 0}
		},
		ExitFn: exit,
	}
}

// exitSignal unwinds the runner after it picks an exit code. cchooks
// re-panics this exact value instead of treating it as a handler failure.
const exitSignal = "exit"

// Run feeds stdin through a cchooks runner and returns the exit code it
// chose. A terminal carries no payload and is handled without the runner.
func (h *Handler) Run(ctx context.Context, stdin *os.File) (code int) {
	if isTerminal(stdin) {
		h.Handle(ctx, "")
		return 0
	}

	// the runner always reads os.Stdin
	if stdin != nil && stdin != os.Stdin {
		saved := os.Stdin
		os.Stdin = stdin
		defer func() { os.Stdin = saved }()
	}

	defer func() {
		if p := recover(); p != nil && p != exitSignal {
			panic(p)
		}
	}()
	h.NewRunner(func(c int) {
		code = c
		panic(exitSignal)
	}).RunContext(ctx)
	return code
}

// Handle processes one payload and reports whether it was logged
func (h *Handler) Handle(_ context.Context, rawJSON string) bool {
	fmt.Fprintln(h.Out, "⚡ Triggering immediate data transmission...")

	in, err := ParseHookInput(rawJSON)
	if err != nil {
		fmt.Fprintf(h.Err, "   ⚠️ Failed to parse hook input: %v\n", err)
		in = nil
	}

	logged := true
	if path, err := h.Logger.Log(in); err != nil {
		fmt.Fprintf(h.Err, "   ❌ Failed to log payload: %v\n", err)
		logged = false
	} else {
		fmt.Fprintf(h.Out, "   ✅ Payload logged to: %s\n", path)
	}

	if in != nil {
		h.printDetails(in)
	}
	fmt.Fprintln(h.Out, "   Status: Payload logged for debugging")
	return logged
}

func (h *Handler) printDetails(in *HookInput) {
	event := in.HookEventName
	if event == "" {
		event = "(unknown)"
	}
	fmt.Fprintf(h.Out, "   Hook Event: %s\n", event)
	if in.SessionID != "" {
		fmt.Fprintf(h.Out, "   Session ID: %s\n", in.SessionID)
	}
	if in.CWD != "" {
		fmt.Fprintf(h.Out, "   Working Directory: %s\n", in.CWD)
	}

	switch in.HookEventName {
	case "UserPromptSubmit":
		if in.Prompt != "" {
			fmt.Fprintf(h.Out, "   Prompt: %s\n", in.Prompt)
		}
	case "Notification":
		if in.Message != "" {
			fmt.Fprintf(h.Out, "   Message: %s\n", in.Message)
		}
	case "PreToolUse":
		if in.ToolName != "" {
			fmt.Fprintf(h.Out, "   Tool: %s\n", in.ToolName)
		}
		if len(in.ToolInput) > 0 {
			fmt.Fprintf(h.Out, "   Tool Input: %s\n", pretty(in.ToolInput))
		}
	case "PostToolUse":
		if in.ToolName != "" {
			fmt.Fprintf(h.Out, "   Tool: %s\n", in.ToolName)
		}
		if len(in.ToolResponse) > 0 {
			fmt.Fprintf(h.Out, "   Tool Response: %s\n", pretty(in.ToolResponse))
		}
	}
}

func pretty(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

func isTerminal(f *os.File) bool {
	return f != nil && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

package config

import (
	"errors"
	"fmt"
)

// Sentinel errors for settings reconciliation. Every ConfigError matches
// exactly one of these through errors.Is.
var (
	ErrSettingsIO     = errors.New("settings: I/O failure")
	ErrSettingsParse  = errors.New("settings: invalid JSON")
	ErrSettingsSchema = errors.New("settings: unexpected hook structure")
	ErrPromptIO       = errors.New("prompt: input unavailable")
)

// ErrorKind classifies a ConfigError
type ErrorKind int

const (
	KindSettingsIO ErrorKind = iota
	KindSettingsParse
	KindSettingsSchema
	KindPromptIO
)

func (k ErrorKind) String() string {
	switch k {
	case KindSettingsIO:
		return "settings-io"
	case KindSettingsParse:
		return "settings-parse"
	case KindSettingsSchema:
		return "settings-schema"
	case KindPromptIO:
		return "prompt-io"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindSettingsIO:
		return ErrSettingsIO
	case KindSettingsParse:
		return ErrSettingsParse
	case KindSettingsSchema:
		return ErrSettingsSchema
	case KindPromptIO:
		return ErrPromptIO
	default:
		return nil
	}
}

// ConfigError wraps a failure with the settings path and, when known, the
// hook event being processed.
type ConfigError struct {
	Kind  ErrorKind
	Path  string
	Event string
	Err   error
}

func (e *ConfigError) Error() string {
	var msg string
	switch e.Kind {
	case KindSettingsIO:
		msg = "failed to access settings file"
	case KindSettingsParse:
		msg = "failed to parse settings file"
	case KindSettingsSchema:
		msg = "unexpected settings structure"
	case KindPromptIO:
		msg = "failed to read answer"
	default:
		msg = "settings error"
	}
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Event != "" {
		msg += fmt.Sprintf(" (event %s)", e.Event)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *ConfigError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// NewConfigError creates a ConfigError of the given kind
func NewConfigError(kind ErrorKind, path, event string, err error) *ConfigError {
	return &ConfigError{Kind: kind, Path: path, Event: event, Err: err}
}

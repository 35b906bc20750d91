package config

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
)

func TestConfigErrorIs(t *testing.T) {
	sentinels := map[ErrorKind]error{
		KindSettingsIO:     ErrSettingsIO,
		KindSettingsParse:  ErrSettingsParse,
		KindSettingsSchema: ErrSettingsSchema,
		KindPromptIO:       ErrPromptIO,
	}

	for kind, want := range sentinels {
		t.Run(kind.String(), func(t *testing.T) {
			err := fmt.Errorf("wrapped: %w", NewConfigError(kind, "/tmp/settings.json", "Stop", io.EOF))
			if !errors.Is(err, want) {
				t.Errorf("errors.Is(%v, %v) = false", err, want)
			}
			if !errors.Is(err, io.EOF) {
				t.Error("underlying error should stay reachable")
			}
			for other, s := range sentinels {
				if other != kind && errors.Is(err, s) {
					t.Errorf("error of kind %s also matched %v", kind, s)
				}
			}
		})
	}
}

func TestConfigErrorMessage(t *testing.T) {
	err := NewConfigError(KindSettingsSchema, "/home/u/.claude/settings.json", "PreToolUse", errors.New("group 0 is not an object"))
	msg := err.Error()
	for _, part := range []string{"unexpected settings structure", "/home/u/.claude/settings.json", "PreToolUse", "group 0 is not an object"} {
		if !strings.Contains(msg, part) {
			t.Errorf("message %q missing %q", msg, part)
		}
	}
}

package config

import (
	"fmt"
	"strings"

	"github.com/ccgadget/ccgadget/internal/constants"
)

// DefaultScanSeconds is the Bluetooth scan window used when none is configured
const DefaultScanSeconds = 10

// HookBinding is one desired (event, command) pair installed by setup-hook
type HookBinding struct {
	Event   string `json:"event" yaml:"event" toml:"event"`
	Command string `json:"command" yaml:"command" toml:"command"`
}

// DeviceConfig remembers the paired gadget
type DeviceConfig struct {
	Address     string `json:"address,omitempty" yaml:"address,omitempty" toml:"address,omitempty"`
	ScanSeconds int    `json:"scanSeconds" yaml:"scanSeconds" toml:"scanSeconds"`
}

// AppConfig is ccgadget's own configuration file
type AppConfig struct {
	Hooks       []HookBinding     `json:"hooks" yaml:"hooks" toml:"hooks"`
	LogRotation LogRotationConfig `json:"logRotation" yaml:"logRotation" toml:"logRotation"`
	Device      DeviceConfig      `json:"device" yaml:"device" toml:"device"`
}

// DefaultHookEvents are the host events ccgadget listens to out of the box
var DefaultHookEvents = []string{"UserPromptSubmit", "PreToolUse", "PostToolUse", "Notification"}

// DefaultBindings binds every default event to the trigger command
func DefaultBindings() []HookBinding {
	bindings := make([]HookBinding, 0, len(DefaultHookEvents))
	for _, ev := range DefaultHookEvents {
		bindings = append(bindings, HookBinding{Event: ev, Command: constants.TriggerCommand})
	}
	return bindings
}

// DefaultAppConfig returns the configuration used when no file exists
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Hooks:       DefaultBindings(),
		LogRotation: DefaultLogRotationConfig(),
		Device:      DeviceConfig{ScanSeconds: DefaultScanSeconds},
	}
}

// Bindings returns a copy of the configured hook bindings
func (c *AppConfig) Bindings() []HookBinding {
	out := make([]HookBinding, len(c.Hooks))
	copy(out, c.Hooks)
	return out
}

// Validate normalizes the config and rejects bindings that cannot be installed.
func (c *AppConfig) Validate() error {
	seen := make(map[string]bool, len(c.Hooks))
	for i := range c.Hooks {
		b := &c.Hooks[i]
		b.Event = strings.TrimSpace(b.Event)
		b.Command = strings.TrimSpace(b.Command)
		if b.Event == "" {
			return fmt.Errorf("hooks[%d]: event is required", i)
		}
		if b.Command == "" {
			return fmt.Errorf("hooks[%d] (%s): command is required", i, b.Event)
		}
		if seen[b.Event] {
			return fmt.Errorf("hooks[%d]: event %s is bound more than once", i, b.Event)
		}
		seen[b.Event] = true
	}
	if c.Device.ScanSeconds <= 0 {
		c.Device.ScanSeconds = DefaultScanSeconds
	}
	return nil
}

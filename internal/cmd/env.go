package cmd

import (
	"io"
	"os"

	"github.com/ccgadget/ccgadget/internal/config"
	"github.com/ccgadget/ccgadget/internal/constants"
	"github.com/ccgadget/ccgadget/internal/device"
	"github.com/ccgadget/ccgadget/internal/prompt"
)

// Env carries the process resources commands use. Zero fields are filled
// from the real process by DefaultEnv.
type Env struct {
	Stdin  *os.File
	Stdout io.Writer
	Stderr io.Writer

	Store config.SettingsStore
	XDG   *config.XDGConfig
	// LogDir overrides ~/.ccgadget/logs
	LogDir string

	// Prompt overrides TTY detection
	Prompt prompt.Interactive
	// Scanner overrides the Bluetooth or demo scanner
	Scanner device.Scanner
}

// DefaultEnv wires commands to the real process
func DefaultEnv() *Env {
	return &Env{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Store:  config.NewFileSettingsStore(),
		XDG:    config.NewXDGConfig(),
	}
}

func (e *Env) prompter() prompt.Interactive {
	if e.Prompt != nil {
		return e.Prompt
	}
	return prompt.New(e.Stdin, e.Stdout)
}

func (e *Env) logDir() (string, error) {
	if e.LogDir != "" {
		return e.LogDir, nil
	}
	return config.GetLogDir()
}

// scanner picks the configured scanner, the demo radio, or real Bluetooth.
func (e *Env) scanner(target string) (device.Scanner, bool) {
	if e.Scanner != nil {
		return e.Scanner, false
	}
	if device.IsDemoMode(constants.DemoModeEnv) {
		return device.DemoScanner{Target: target}, true
	}
	return device.NewBLEScanner(), false
}

// loadConfig returns the app config and the file it came from, or the
// defaults and "" when there is none.
func (e *Env) loadConfig() (*config.AppConfig, string, error) {
	return e.XDG.Load()
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ccgadget/ccgadget/internal/constants"
	"github.com/ccgadget/ccgadget/internal/device"
	"github.com/ccgadget/ccgadget/internal/prompt"
	"github.com/urfave/cli/v3"
)

var demoHint = fmt.Sprintf("%s=1 %s pair", constants.DemoModeEnv, constants.BinaryName)

// NewPairCmd creates the pair command
func NewPairCmd(env *Env) *cli.Command {
	return &cli.Command{
		Name:  "pair",
		Usage: "Pair with a CCGadget device over Bluetooth",
		Description: `Scan for nearby CCGadget devices and pair with one.

With --device the named device (address or advertised name) is searched for
directly. Otherwise every CCGadget heard during a scan is listed and you pick
one. Set ` + constants.DemoModeEnv + ` to simulate the radio.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "device",
				Aliases: []string{"d"},
				Usage:   "Device address or name to pair with",
			},
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "Pair again even when a device is already remembered",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runPair(ctx, env, strings.TrimSpace(cmd.String("device")), cmd.Bool("force"))
		},
	}
}

func runPair(ctx context.Context, env *Env, target string, force bool) error {
	out := env.Stdout
	fmt.Fprintln(out, titleStyle.Render("🔵 Pairing with CCGadget device..."))
	if force {
		fmt.Fprintln(out, "   Force pairing enabled")
	}

	cfg, source, err := env.loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config %s: %w\n  Suggestion: Fix the file or run 'ccgadget config init --force'", source, err)
	}
	if target == "" && !force && cfg.Device.Address != "" {
		fmt.Fprintf(out, "   ℹ️ Already paired with %s\n", cfg.Device.Address)
		fmt.Fprintln(out, mutedStyle.Render("   💡 Use --force to pair with a different device"))
		return nil
	}

	scanner, demo := env.scanner(target)
	var selector device.Selector
	if demo {
		fmt.Fprintln(out, "   🔧 Running in demo/test mode - simulating pairing")
		selector = device.AutoSelector{Index: 0}
	} else {
		fmt.Fprintf(out, "   💡 If this hangs or fails, use: %s\n", demoHint)
		selector = env.prompter()
	}

	pairer := device.NewPairer(scanner, selector, out)
	if cfg.Device.ScanSeconds > 0 {
		pairer.ScanWindow = secondsDuration(cfg.Device.ScanSeconds)
	}
	if f, ok := env.Stderr.(*os.File); ok && prompt.IsTerminal(f) {
		pairer.Progress = f
	}

	if target == "" {
		fmt.Fprintln(out, "   Scanning for nearby Bluetooth devices...")
	}
	result, err := pairer.Pair(ctx, target)
	if err != nil {
		if errors.Is(err, device.ErrCanceled) {
			fmt.Fprintln(out, "   ℹ️ No device selected. Pairing cancelled.")
			return nil
		}
		return describePairError(err)
	}

	fmt.Fprintln(out, successStyle.Render("   ✅ Pairing completed successfully!"))
	if demo {
		fmt.Fprintln(out, "   ℹ️ Note: This was a simulated pairing for demo/testing purposes")
		return nil
	}

	cfg.Device.Address = result.Device.Address
	if path, err := saveConfig(env, cfg, source); err != nil {
		fmt.Fprintf(env.Stderr, "   ⚠️ Failed to remember device: %v\n", err)
	} else {
		fmt.Fprintln(out, mutedStyle.Render("   Saved device to "+path))
	}
	return nil
}

func describePairError(err error) error {
	switch {
	case errors.Is(err, device.ErrBluetoothUnavailable):
		return fmt.Errorf("%w\n  Suggestion: Enable Bluetooth and grant this terminal Bluetooth permission, or try: %s", err, demoHint)
	case errors.Is(err, device.ErrBluetoothTimeout):
		return fmt.Errorf("%w\n  Suggestion: The Bluetooth service may not be running or permission was denied; try: %s", err, demoHint)
	case errors.Is(err, device.ErrNoDevices):
		return fmt.Errorf("%w\n  Suggestion: Make sure Bluetooth is enabled and devices are nearby", err)
	case errors.Is(err, device.ErrNoCCGadget):
		return fmt.Errorf("%w\n  Suggestion: Make sure your CCGadget is powered on, in pairing mode and within range", err)
	case errors.Is(err, device.ErrDeviceNotFound):
		return fmt.Errorf("%w\n  Suggestion: Check the address or name, or run 'ccgadget pair' without --device to list devices", err)
	default:
		return err
	}
}

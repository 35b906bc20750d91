package device

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// PairResult describes a completed pairing
type PairResult struct {
	Device   Device
	Services []string
}

// Pairer runs the scan, select, connect flow and narrates it to Out.
type Pairer struct {
	Scanner  Scanner
	Selector Selector
	Out      io.Writer
	// Progress receives the scan progress bar; nil hides it
	Progress io.Writer

	ScanWindow   time.Duration
	FindTimeout  time.Duration
	PollInterval time.Duration
}

// NewPairer returns a Pairer with the default timings
func NewPairer(scanner Scanner, selector Selector, out io.Writer) *Pairer {
	return &Pairer{
		Scanner:      scanner,
		Selector:     selector,
		Out:          out,
		ScanWindow:   10 * time.Second,
		FindTimeout:  FindTimeout,
		PollInterval: PollInterval,
	}
}

// Pair pairs with target (an address or name), or with a device the user
// picks from a scan when target is empty. ErrCanceled means the user chose
// not to pair.
func (p *Pairer) Pair(ctx context.Context, target string) (*PairResult, error) {
	fmt.Fprintln(p.Out, "   🔍 Initializing Bluetooth adapter...")
	if err := p.Scanner.Enable(ctx); err != nil {
		return nil, err
	}
	fmt.Fprintln(p.Out, "   ✅ Bluetooth adapter ready")

	var (
		dev Device
		err error
	)
	if target != "" {
		dev, err = p.find(ctx, target)
	} else {
		dev, err = p.choose(ctx)
	}
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(p.Out, "   🔗 Connecting to %s...\n", dev.DisplayName())
	services, err := p.Scanner.Pair(ctx, dev)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(p.Out, "   📋 Device services discovered: %d service(s)\n", len(services))
	for _, uuid := range services {
		fmt.Fprintf(p.Out, "      - Service UUID: %s\n", uuid)
	}
	return &PairResult{Device: dev, Services: services}, nil
}

// Discover scans for the configured window and returns the CCGadget devices heard.
func (p *Pairer) Discover(ctx context.Context) ([]Device, error) {
	fmt.Fprintf(p.Out, "   📡 Starting Bluetooth scan (%d seconds)...\n", int(p.ScanWindow/time.Second))
	all, err := p.scan(ctx, p.ScanWindow, "Scanning", nil)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, ErrNoDevices
	}
	gadgets := FilterCCGadgets(all)
	if len(gadgets) == 0 {
		return nil, ErrNoCCGadget
	}
	return gadgets, nil
}

func (p *Pairer) choose(ctx context.Context) (Device, error) {
	gadgets, err := p.Discover(ctx)
	if err != nil {
		return Device{}, err
	}

	fmt.Fprintf(p.Out, "   📱 Found %d CCGadget device(s):\n", len(gadgets))
	for i, d := range gadgets {
		fmt.Fprintf(p.Out, "   %d. %s\n", i+1, d)
	}
	fmt.Fprintln(p.Out, "   0. Cancel")

	idx, err := p.Selector.SelectDevice(ctx, gadgets)
	if err != nil {
		return Device{}, err
	}
	if idx < 0 || idx >= len(gadgets) {
		return Device{}, ErrCanceled
	}
	dev := gadgets[idx]
	fmt.Fprintf(p.Out, "   Selected device: %s\n", dev.DisplayName())
	return dev, nil
}

func (p *Pairer) find(ctx context.Context, target string) (Device, error) {
	fmt.Fprintf(p.Out, "   🎯 Target device: %s\n", target)
	fmt.Fprintln(p.Out, "   📡 Scanning for target device...")

	var match Device
	found := func(devices []Device) bool {
		for _, d := range devices {
			if d.Matches(target) {
				match = d
				return true
			}
		}
		return false
	}

	if _, err := p.scan(ctx, p.FindTimeout, "Searching", found); err != nil {
		return Device{}, err
	}
	if match.Address == "" {
		return Device{}, fmt.Errorf("%w: %s (searched for %s)", ErrDeviceNotFound, target, p.FindTimeout)
	}
	fmt.Fprintf(p.Out, "   ✅ Found target device: %s\n", match)
	return match, nil
}

// scan runs one-interval scan slices for total, merging results by address.
// It stops early once done reports true.
func (p *Pairer) scan(ctx context.Context, total time.Duration, desc string, done func([]Device) bool) ([]Device, error) {
	interval := p.PollInterval
	if interval <= 0 {
		interval = PollInterval
	}
	steps := int(total / interval)
	if steps < 1 {
		steps = 1
	}

	bar := p.newBar(steps, desc)
	seen := make(map[string]int)
	var devices []Device

	for i := 0; i < steps; i++ {
		batch, err := p.Scanner.Scan(ctx, interval)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		for _, d := range batch {
			if idx, ok := seen[d.Address]; ok {
				devices[idx] = d
				continue
			}
			seen[d.Address] = len(devices)
			devices = append(devices, d)
		}
		if bar != nil {
			_ = bar.Add(1)
		}
		if done != nil && done(devices) {
			break
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}
	return devices, nil
}

func (p *Pairer) newBar(steps int, desc string) *progressbar.ProgressBar {
	if p.Progress == nil {
		return nil
	}
	return progressbar.NewOptions(steps,
		progressbar.OptionSetWriter(p.Progress),
		progressbar.OptionSetDescription("   "+desc),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

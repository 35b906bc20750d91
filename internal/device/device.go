// Package device discovers and pairs with CCGadget hardware over Bluetooth LE.
package device

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// EnableTimeout bounds how long the Bluetooth adapter may take to come up
	EnableTimeout = 5 * time.Second
	// FindTimeout bounds the search for a named device
	FindTimeout = 15 * time.Second
	// PollInterval is the length of one scan slice
	PollInterval = time.Second
)

var (
	ErrBluetoothUnavailable = errors.New("bluetooth is not available")
	ErrBluetoothTimeout     = errors.New("bluetooth adapter timed out")
	ErrNoDevices            = errors.New("no Bluetooth devices found")
	ErrNoCCGadget           = errors.New("no CCGadget devices found")
	ErrDeviceNotFound       = errors.New("target device not found")
	ErrCanceled             = errors.New("no device selected")
)

// Device is one advertising peripheral seen during a scan
type Device struct {
	Name    string
	Address string
	RSSI    int
}

// DisplayName returns the advertised name or "Unknown"
func (d Device) DisplayName() string {
	if d.Name == "" {
		return "Unknown"
	}
	return d.Name
}

func (d Device) String() string {
	return fmt.Sprintf("%s (%s) - Signal: %ddBm", d.DisplayName(), d.Address, d.RSSI)
}

// Matches reports whether target names this device by address or name, ignoring case.
func (d Device) Matches(target string) bool {
	target = strings.TrimSpace(target)
	if target == "" {
		return false
	}
	return strings.EqualFold(d.Address, target) || strings.EqualFold(d.Name, target)
}

// IsCCGadget reports whether an advertised name belongs to a CCGadget
func IsCCGadget(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "ccgadget") ||
		strings.HasPrefix(lower, "ccg-") ||
		strings.Contains(lower, "esp32-ccg")
}

// FilterCCGadgets keeps only CCGadget devices, preserving order
func FilterCCGadgets(devices []Device) []Device {
	var out []Device
	for _, d := range devices {
		if IsCCGadget(d.Name) {
			out = append(out, d)
		}
	}
	return out
}

// Scanner is the radio the pairing flow drives.
type Scanner interface {
	// Enable powers up the adapter
	Enable(ctx context.Context) error
	// Scan listens for advertisements for window and returns what it heard
	Scan(ctx context.Context, window time.Duration) ([]Device, error)
	// Pair connects to d, lists its service UUIDs and disconnects
	Pair(ctx context.Context, d Device) ([]string, error)
}

// Selector lets the user pick one of devices. It returns -1 to cancel.
type Selector interface {
	SelectDevice(ctx context.Context, devices []Device) (int, error)
}

// AutoSelector always picks the same index
type AutoSelector struct {
	Index int
}

func (a AutoSelector) SelectDevice(_ context.Context, devices []Device) (int, error) {
	if a.Index < 0 || a.Index >= len(devices) {
		return -1, nil
	}
	return a.Index, nil
}

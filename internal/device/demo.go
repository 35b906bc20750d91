package device

import (
	"context"
	"os"
	"time"
)

// DemoDevices are the simulated gadgets reported in demo mode
var DemoDevices = []Device{
	{Name: "CCGadget-Demo", Address: "AA:BB:CC:DD:EE:FF", RSSI: -45},
	{Name: "CCG-Office", Address: "11:22:33:44:55:66", RSSI: -67},
	{Name: "ESP32-CCG-Lab", Address: "99:88:77:66:55:44", RSSI: -72},
}

// DemoServices are the service UUIDs every simulated gadget reports
var DemoServices = []string{
	"12345678-1234-5678-9abc-123456789abc",
	"87654321-4321-8765-cba9-987654321abc",
}

// IsDemoMode reports whether the named environment variable is set
func IsDemoMode(envVar string) bool {
	_, ok := os.LookupEnv(envVar)
	return ok
}

// DemoScanner simulates a radio without touching Bluetooth. When Target is
// set and matches no demo device, a device with that name is simulated too.
type DemoScanner struct {
	Target string
}

func (DemoScanner) Enable(ctx context.Context) error {
	return ctx.Err()
}

func (s DemoScanner) Scan(ctx context.Context, _ time.Duration) ([]Device, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	devices := append([]Device(nil), DemoDevices...)
	if s.Target == "" {
		return devices, nil
	}
	for _, d := range devices {
		if d.Matches(s.Target) {
			return devices, nil
		}
	}
	return append(devices, Device{Name: s.Target, Address: "00:11:22:33:44:55", RSSI: -50}), nil
}

func (DemoScanner) Pair(ctx context.Context, _ Device) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]string(nil), DemoServices...), nil
}

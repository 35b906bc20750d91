package device

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"tinygo.org/x/bluetooth"
)

// BLEScanner drives the host's default Bluetooth adapter
type BLEScanner struct {
	adapter *bluetooth.Adapter

	mu   sync.Mutex
	seen map[string]bluetooth.Address
}

// NewBLEScanner returns a scanner over bluetooth.DefaultAdapter
func NewBLEScanner() *BLEScanner {
	return &BLEScanner{
		adapter: bluetooth.DefaultAdapter,
		seen:    make(map[string]bluetooth.Address),
	}
}

func (s *BLEScanner) Enable(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, EnableTimeout)
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- s.adapter.Enable() }()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBluetoothUnavailable, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w after %s", ErrBluetoothTimeout, EnableTimeout)
	}
}

func (s *BLEScanner) Scan(ctx context.Context, window time.Duration) ([]Device, error) {
	found := make(map[string]Device)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.adapter.Scan(func(_ *bluetooth.Adapter, r bluetooth.ScanResult) {
			addr := r.Address.String()
			s.mu.Lock()
			found[addr] = Device{Name: r.LocalName(), Address: addr, RSSI: int(r.RSSI)}
			s.seen[addr] = r.Address
			s.mu.Unlock()
		})
	}()

	timer := time.NewTimer(window)
	defer timer.Stop()

	select {
	case err := <-errCh:
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
	case <-timer.C:
		_ = s.adapter.StopScan()
		if err := <-errCh; err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
	case <-ctx.Done():
		_ = s.adapter.StopScan()
		<-errCh
		return nil, ctx.Err()
	}

	s.mu.Lock()
	devices := make([]Device, 0, len(found))
	for _, d := range found {
		devices = append(devices, d)
	}
	s.mu.Unlock()

	sort.Slice(devices, func(i, j int) bool { return devices[i].RSSI > devices[j].RSSI })
	return devices, nil
}

func (s *BLEScanner) Pair(ctx context.Context, d Device) ([]string, error) {
	s.mu.Lock()
	addr, ok := s.seen[d.Address]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s was not seen during the scan", ErrDeviceNotFound, d.Address)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	conn, err := s.adapter.Connect(addr, bluetooth.ConnectionParams{})
	if err != nil {
		return nil, fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = conn.Disconnect() }()

	services, err := conn.DiscoverServices(nil)
	if err != nil {
		return nil, fmt.Errorf("service discovery failed: %w", err)
	}

	uuids := make([]string, 0, len(services))
	for _, svc := range services {
		uuids = append(uuids, svc.UUID().String())
	}
	return uuids, nil
}

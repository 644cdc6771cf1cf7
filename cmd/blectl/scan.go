package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"tinygo.org/x/bluetooth"

	"github.com/bluekit/ble-host/hostenv"
	"github.com/bluekit/ble-host/hub"
	"github.com/bluekit/ble-host/system"
)

// runScan resolves the adapter through the hub, then listens for
// advertisements for the given window and prints each device once.
func runScan(cfg *Config, logger *zap.Logger, window time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
	defer cancel()

	h := hub.New(hostenv.System(),
		hub.WithLogger(logger),
		hub.WithService(cfg.Service))

	a, err := h.Adapter(ctx)
	if err != nil {
		return err
	}

	sys, ok := a.(*system.Adapter)
	if !ok {
		return fmt.Errorf("adapter %T does not expose the platform scan surface", a)
	}
	raw := sys.Underlying()

	stop := time.AfterFunc(window, func() {
		_ = raw.StopScan()
	})
	defer stop.Stop()

	fmt.Printf("Scanning for %s...\n", window)

	seen := make(map[string]bool)
	err = raw.Scan(func(_ *bluetooth.Adapter, res bluetooth.ScanResult) {
		addr := res.Address.String()
		if seen[addr] {
			return
		}
		seen[addr] = true

		name := res.LocalName()
		if name == "" {
			name = "(unknown)"
		}
		fmt.Printf("%s  %4d dBm  %s\n", addr, res.RSSI, name)
	})
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	fmt.Printf("%d device(s)\n", len(seen))
	return nil
}

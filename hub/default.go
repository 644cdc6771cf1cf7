package hub

import (
	"context"
	"sync"

	blehost "github.com/bluekit/ble-host"
	"github.com/bluekit/ble-host/hostenv"
)

var (
	defaultOnce sync.Once
	defaultHub  *Hub
)

// Default returns the process-wide hub, backed by the host environment's
// default service table. The same hub is returned on every call.
func Default() *Hub {
	defaultOnce.Do(func() {
		defaultHub = New(hostenv.System())
	})
	return defaultHub
}

// Manager returns the shared Bluetooth manager from the default hub.
func Manager(ctx context.Context) (blehost.Manager, error) {
	return Default().Manager(ctx)
}

// Adapter returns the shared default adapter from the default hub.
func Adapter(ctx context.Context) (blehost.Adapter, error) {
	return Default().Adapter(ctx)
}

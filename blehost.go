package blehost

import "context"

// ServiceBluetooth is the well-known name of the host Bluetooth service.
// Environments that expose a Bluetooth manager register it under this name.
const ServiceBluetooth = "bluetooth"

// Environment resolves named services from the host platform.
//
// Service returns the live handle registered under name. Resolution may be
// expensive (driver probes, IPC); implementations are not required to cache,
// as memoization is the hub's job. A service that cannot be resolved yields
// a nil handle and a non-nil error, never both nil.
type Environment interface {
	Service(ctx context.Context, name string) (any, error)
}

// Manager is the top-level handle to the host Bluetooth subsystem.
//
// Adapter returns the default adapter managed by this subsystem. Managers on
// hosts without a usable radio return an error; they never return a nil
// Adapter with a nil error.
type Manager interface {
	Adapter() (Adapter, error)
}

// Adapter is a handle to a single Bluetooth radio.
type Adapter interface {
	// Address reports the adapter's hardware address in canonical
	// colon-separated form, e.g. "E4:5F:01:AA:BB:CC".
	Address() (string, error)
}

package system

import (
	"sync"

	"tinygo.org/x/bluetooth"

	blehost "github.com/bluekit/ble-host"
	"github.com/bluekit/ble-host/errors"
	"github.com/bluekit/ble-host/internal/memo"
)

// Manager is the host Bluetooth subsystem. It wraps the platform's default
// radio and enables the stack on first adapter request.
type Manager struct {
	raw     *bluetooth.Adapter
	adapter memo.Cell[*Adapter]
}

var (
	managerOnce sync.Once
	manager     *Manager
)

// Default returns the host Bluetooth manager. The same manager is returned
// on every call; all callers share one radio handle.
func Default() *Manager {
	managerOnce.Do(func() {
		manager = &Manager{raw: bluetooth.DefaultAdapter}
	})
	return manager
}

// Adapter returns the default adapter, enabling the radio stack on first
// use. A failed enable is not cached: the radio is probed again on the next
// call.
func (m *Manager) Adapter() (blehost.Adapter, error) {
	a, err := m.adapter.Get(func() (*Adapter, error) {
		if m.raw == nil {
			return nil, errors.AdapterUnavailable(errors.Platform("open default radio", nil))
		}
		if err := m.raw.Enable(); err != nil {
			return nil, errors.AdapterUnavailable(errors.Platform("enable radio stack", err))
		}
		return &Adapter{raw: m.raw}, nil
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Adapter is a handle to the host radio.
type Adapter struct {
	raw *bluetooth.Adapter
}

// Address reports the radio's hardware address in colon-separated form.
func (a *Adapter) Address() (string, error) {
	addr, err := a.raw.Address()
	if err != nil {
		return "", errors.Platform("read adapter address", err)
	}
	return addr.String(), nil
}

// Underlying returns the tinygo.org/x/bluetooth adapter for callers that
// need the full platform API (scanning, connections, GATT).
func (a *Adapter) Underlying() *bluetooth.Adapter {
	return a.raw
}

var _ blehost.Manager = (*Manager)(nil)
var _ blehost.Adapter = (*Adapter)(nil)

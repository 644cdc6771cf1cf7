// Package envtest provides fake environments and handles for testing code
// built on ble-host. Fakes record call counts so tests can assert how often
// construction actually ran.
//
// Configure the exported knobs before handing a fake to concurrent code.
package envtest

import (
	"context"
	"sync"

	blehost "github.com/bluekit/ble-host"
	"github.com/bluekit/ble-host/errors"
)

// Adapter is a fake Bluetooth adapter.
type Adapter struct {
	Addr       string
	AddressErr error
}

// Address returns the scripted address or error.
func (a *Adapter) Address() (string, error) {
	if a.AddressErr != nil {
		return "", a.AddressErr
	}
	return a.Addr, nil
}

// Manager is a fake Bluetooth manager. Default is the adapter it hands out;
// AdapterErr, when set, makes every Adapter call fail instead.
type Manager struct {
	Default    *Adapter
	AdapterErr error

	mu    sync.Mutex
	calls int
}

// NewManager creates a manager whose adapter reports addr.
func NewManager(addr string) *Manager {
	return &Manager{Default: &Adapter{Addr: addr}}
}

// Adapter returns the fake adapter, one call at a time.
func (m *Manager) Adapter() (blehost.Adapter, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.AdapterErr != nil {
		return nil, m.AdapterErr
	}
	return m.Default, nil
}

// AdapterCalls reports how many times Adapter was invoked.
func (m *Manager) AdapterCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Env is a scripted environment that records per-service lookup counts.
type Env struct {
	mu      sync.Mutex
	handles map[string]any
	errs    map[string]error
	calls   map[string]int
}

// NewEnv creates an empty scripted environment. Unscripted names resolve to
// a service_unavailable error, like a host without the capability.
func NewEnv() *Env {
	return &Env{
		handles: make(map[string]any),
		errs:    make(map[string]error),
		calls:   make(map[string]int),
	}
}

// SetHandle scripts a successful resolution for name.
func (e *Env) SetHandle(name string, h any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handles[name] = h
	delete(e.errs, name)
}

// SetError scripts a failed resolution for name. A nil err clears the
// failure, leaving any scripted handle in place.
func (e *Env) SetError(name string, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err == nil {
		delete(e.errs, name)
		return
	}
	e.errs[name] = err
}

// Service resolves a scripted handle and counts the lookup.
func (e *Env) Service(ctx context.Context, name string) (any, error) {
	e.mu.Lock()
	e.calls[name]++
	err := e.errs[name]
	h, ok := e.handles[name]
	e.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.ServiceUnavailable(name, nil)
	}
	return h, nil
}

// Calls reports how many times name was looked up.
func (e *Env) Calls(name string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls[name]
}

var _ blehost.Environment = (*Env)(nil)
var _ blehost.Manager = (*Manager)(nil)
var _ blehost.Adapter = (*Adapter)(nil)

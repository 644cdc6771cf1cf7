package hostenv

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/bluekit/ble-host/errors"
)

// Builder constructs a live service handle.
// Implementations must be safe to call concurrently.
type Builder func(ctx context.Context) (any, error)

// Table is a name-keyed registry of service builders.
// It is safe for concurrent use.
type Table struct {
	mu     sync.RWMutex
	data   map[string]Builder
	sealed atomic.Bool // when true, further Register calls fail
}

// NewTable creates an empty builder table.
func NewTable() *Table {
	return &Table{
		data: make(map[string]Builder),
	}
}

// Register adds a builder for the given service name. Registering a name
// twice or registering into a sealed table fails.
func (t *Table) Register(name string, b Builder) error {
	if t.Sealed() {
		return errors.Sealed(name)
	}
	if name == "" {
		return errors.InvalidInput(errors.PhaseRegister, "empty service name")
	}
	if b == nil {
		return errors.InvalidInput(errors.PhaseRegister, "nil builder")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.data[name]; exists {
		return errors.Duplicate(name)
	}
	t.data[name] = b
	return nil
}

// MustRegister panics on registration error. Useful from init() blocks.
func (t *Table) MustRegister(name string, b Builder) {
	if err := t.Register(name, b); err != nil {
		panic(err)
	}
}

// Lookup returns the builder for name, if present.
func (t *Table) Lookup(name string) (Builder, bool) {
	t.mu.RLock()
	b, ok := t.data[name]
	t.mu.RUnlock()
	return b, ok
}

// Names returns all registered service names in lexicographic order.
func (t *Table) Names() []string {
	t.mu.RLock()
	names := make([]string, 0, len(t.data))
	for name := range t.data {
		names = append(names, name)
	}
	t.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Seal prevents further registrations. It is idempotent and safe for
// concurrent use. Returns true if this call changed the state from unsealed
// to sealed.
func (t *Table) Seal() bool { return !t.sealed.Swap(true) }

// Sealed reports whether the table is sealed.
func (t *Table) Sealed() bool { return t.sealed.Load() }

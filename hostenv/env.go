package hostenv

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/bluekit/ble-host/errors"
)

// Env resolves service handles from a Table. It implements the root package's
// Environment contract.
//
// Env does not cache: each Service call runs the registered builder. Handles
// that must be process-wide singletons are memoized one level up, in the hub.
type Env struct {
	table  *Table
	logger *zap.Logger
}

// Option configures an Env.
type Option func(*Env)

// WithLogger sets the logger used for resolution diagnostics.
// The default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Env) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an Env resolving services from table.
func New(table *Table, opts ...Option) *Env {
	e := &Env{
		table:  table,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Table returns the table this environment resolves from.
func (e *Env) Table() *Table {
	return e.table
}

// Service resolves the handle registered under name.
//
// Misses and builder failures are reported as service_unavailable errors; a
// builder error that already carries that kind passes through unchanged.
func (e *Env) Service(ctx context.Context, name string) (any, error) {
	if name == "" {
		return nil, errors.InvalidInput(errors.PhaseResolve, "empty service name")
	}

	b, ok := e.table.Lookup(name)
	if !ok {
		e.logger.Debug("service not registered", zap.String("service", name))
		return nil, errors.ServiceUnavailable(name, errors.NotFound(name))
	}

	h, err := b(ctx)
	if err != nil {
		e.logger.Debug("service build failed",
			zap.String("service", name),
			zap.Error(err))
		if errors.IsServiceUnavailable(err) {
			return nil, err
		}
		return nil, errors.ServiceUnavailable(name, err)
	}
	if h == nil {
		return nil, errors.New(errors.PhaseResolve, errors.KindServiceUnavailable).
			Service(name).
			Detail("builder returned no handle").
			Build()
	}

	e.logger.Debug("service resolved", zap.String("service", name))
	return h, nil
}

var (
	defaultTable = NewTable()

	systemOnce sync.Once
	systemEnv  *Env
)

// Default returns the process-wide default table. Platform packages register
// their builders here from init().
func Default() *Table {
	return defaultTable
}

// Register adds a builder to the process-wide default table.
func Register(name string, b Builder) error {
	return defaultTable.Register(name, b)
}

// MustRegister panics if registering into the default table fails.
// Intended for init() blocks in platform packages.
func MustRegister(name string, b Builder) {
	defaultTable.MustRegister(name, b)
}

// System returns the environment backed by the process-wide default table.
// The same Env is returned on every call.
func System() *Env {
	systemOnce.Do(func() {
		systemEnv = New(defaultTable)
	})
	return systemEnv
}

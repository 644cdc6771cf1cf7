package hub

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	blehost "github.com/bluekit/ble-host"
	"github.com/bluekit/ble-host/errors"
	"github.com/bluekit/ble-host/internal/memo"
)

// Hub resolves and caches the process-wide Bluetooth handles.
// It is safe for concurrent use.
type Hub struct {
	env     blehost.Environment
	logger  *zap.Logger
	service string

	manager memo.Cell[blehost.Manager]
	adapter memo.Cell[blehost.Adapter]
}

// Option configures a Hub.
type Option func(*Hub)

// WithLogger sets the logger used for resolution diagnostics.
// The default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(h *Hub) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithService overrides the service name the manager is resolved from.
// The default is blehost.ServiceBluetooth.
func WithService(name string) Option {
	return func(h *Hub) {
		if name != "" {
			h.service = name
		}
	}
}

// New creates a hub resolving handles from env.
func New(env blehost.Environment, opts ...Option) *Hub {
	h := &Hub{
		env:     env,
		logger:  zap.NewNop(),
		service: blehost.ServiceBluetooth,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Service returns the service name the manager is resolved from.
func (h *Hub) Service() string {
	return h.service
}

// Manager returns the shared Bluetooth manager, resolving it from the
// environment on first use. Every caller receives the same handle.
//
// A failed resolution is not cached: the error goes to the caller and the
// next Manager call resolves again.
func (h *Hub) Manager(ctx context.Context) (blehost.Manager, error) {
	return h.manager.Get(func() (blehost.Manager, error) {
		raw, err := h.env.Service(ctx, h.service)
		if err != nil {
			h.logger.Debug("manager resolution failed",
				zap.String("service", h.service),
				zap.Error(err))
			if errors.IsServiceUnavailable(err) {
				return nil, err
			}
			return nil, errors.ServiceUnavailable(h.service, err)
		}

		mgr, ok := raw.(blehost.Manager)
		if !ok {
			return nil, errors.TypeMismatch(h.service, fmt.Sprintf("%T", raw), "blehost.Manager")
		}

		h.logger.Debug("manager resolved", zap.String("service", h.service))
		return mgr, nil
	})
}

// Adapter returns the shared default adapter, resolving the manager first
// when needed. Every caller receives the same handle.
//
// Manager resolution errors pass through unchanged; a manager that yields no
// adapter is reported as adapter_unavailable. Neither failure is cached.
func (h *Hub) Adapter(ctx context.Context) (blehost.Adapter, error) {
	return h.adapter.Get(func() (blehost.Adapter, error) {
		mgr, err := h.Manager(ctx)
		if err != nil {
			return nil, err
		}

		a, err := mgr.Adapter()
		if err != nil {
			h.logger.Debug("adapter derivation failed",
				zap.String("service", h.service),
				zap.Error(err))
			if errors.IsAdapterUnavailable(err) {
				return nil, err
			}
			return nil, errors.AdapterUnavailable(err)
		}
		if a == nil {
			return nil, errors.AdapterUnavailable(nil)
		}

		h.logger.Debug("adapter resolved", zap.String("service", h.service))
		return a, nil
	})
}

// ManagerResolved reports whether the manager handle is already cached.
// It never triggers resolution.
func (h *Hub) ManagerResolved() bool {
	return h.manager.Done()
}

// AdapterResolved reports whether the adapter handle is already cached.
// It never triggers resolution.
func (h *Hub) AdapterResolved() bool {
	return h.adapter.Done()
}

package hub

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	blehost "github.com/bluekit/ble-host"
	"github.com/bluekit/ble-host/hostenv"
)

// Params are the hub's container dependencies.
type Params struct {
	fx.In

	Env    blehost.Environment
	Logger *zap.Logger `optional:"true"`
}

func provideHub(p Params) *Hub {
	var opts []Option
	if p.Logger != nil {
		opts = append(opts, WithLogger(p.Logger))
	}
	return New(p.Env, opts...)
}

func provideManager(h *Hub) (blehost.Manager, error) {
	return h.Manager(context.Background())
}

func provideAdapter(h *Hub) (blehost.Adapter, error) {
	return h.Adapter(context.Background())
}

// Module provides the Hub, Manager and Adapter to an fx application.
// The application must provide a blehost.Environment; a *zap.Logger is
// picked up when present.
var Module = fx.Module(
	"blehost",
	fx.Provide(
		provideHub,
		provideManager,
		provideAdapter,
	),
)

// SystemModule is Module plus the host environment backed by the default
// service table. Blank-import a platform package to populate it:
//
//	import _ "github.com/bluekit/ble-host/system"
var SystemModule = fx.Module(
	"blehost.system",
	fx.Provide(func() blehost.Environment {
		return hostenv.System()
	}),
	Module,
)

// Package hub hands out process-wide Bluetooth handles.
//
// A Hub memoizes two handles resolved from an Environment: the Manager
// (looked up by service name, "bluetooth" by default) and the Adapter
// (derived from the manager). Each handle is constructed at most once per
// hub, no matter how many goroutines ask; a failed construction is reported
// to the caller and retried on the next request.
//
//	h := hub.New(hostenv.System())
//
//	mgr, err := h.Manager(ctx)
//	adapter, err := h.Adapter(ctx)
//
// Asking for the adapter resolves the manager first; callers never have to
// sequence the two themselves.
//
// Most applications use the process-wide default hub through the package
// functions:
//
//	adapter, err := hub.Adapter(ctx)
//
// # Error Contract
//
// Manager reports a service_unavailable error when the environment cannot
// provide the service. Adapter passes manager errors through unchanged and
// reports adapter_unavailable when the manager exists but yields no adapter.
// Classify with errors.IsServiceUnavailable and errors.IsAdapterUnavailable.
//
// # Fx Integration
//
//	app := fx.New(
//	    hub.SystemModule,
//	    fx.Invoke(func(a blehost.Adapter) {
//	        addr, _ := a.Address()
//	        fmt.Println(addr)
//	    }),
//	)
package hub

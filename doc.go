// Package blehost provides shared, lazily-constructed handles to the host's
// Bluetooth subsystem.
//
// The library answers one question for an application: "give me the Bluetooth
// manager and its adapter, exactly once, no matter how many components ask."
// Handles are resolved from the host environment on first request, cached for
// the life of the process, and handed out by reference to every caller.
//
// # Architecture Overview
//
// The library is organized into small packages with distinct responsibilities:
//
//	blehost/        Root package with the Environment, Manager and Adapter contracts
//	├── hub/        The provider registry: memoized Manager/Adapter accessors
//	├── hostenv/    Host environment resolving named system services
//	│   └── envtest/  Test doubles with construction-count probes
//	├── system/     tinygo.org/x/bluetooth backed host service
//	├── errors/     Structured error types (resolution and derivation failures)
//	└── cmd/blectl  Inspection CLI with an interactive monitor
//
// # Quick Start
//
// Resolve the shared handles through the process-wide hub:
//
//	import (
//	    "github.com/bluekit/ble-host/hub"
//	    _ "github.com/bluekit/ble-host/system" // install the host Bluetooth service
//	)
//
//	adapter, err := hub.Adapter(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	addr, _ := adapter.Address()
//
// Or build an explicit, test-injectable hub:
//
//	h := hub.New(hostenv.System())
//	mgr, err := h.Manager(ctx)
//
// # Resolution Flow
//
// Resolution is strictly linear and pull-based:
//
//  1. A consumer asks the hub for the Adapter.
//  2. The hub resolves the Manager from the Environment first (if not cached).
//  3. The hub derives the Adapter from the Manager (if not cached).
//
// Each step is memoized independently. A failed step leaves its slot empty, so
// a later call may succeed once host conditions change; a successful step is
// permanent for the process lifetime.
//
// # Failure Modes
//
// Absence of the Bluetooth capability surfaces as an explicit error at first
// use, never as a nil handle:
//
//	errors.IsServiceUnavailable(err)  // host cannot resolve the service
//	errors.IsAdapterUnavailable(err)  // manager exists, no usable adapter
//
// Neither failure is retried by the library; retry policy belongs to callers.
//
// # Thread Safety
//
// Hub, Env and the handles they return are safe for concurrent use.
// Construction happens at most once per handle even under concurrent first
// access; once constructed, reads are lock-free.
//
// # Dependency Injection
//
// For fx-based applications, hub.Module provides the hub and both handles as
// container-scoped singletons; hub.SystemModule additionally binds the host
// environment. See the hub package documentation.
package blehost

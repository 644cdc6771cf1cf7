package hub

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"

	blehost "github.com/bluekit/ble-host"
	"github.com/bluekit/ble-host/errors"
	"github.com/bluekit/ble-host/hostenv/envtest"
)

func newTestHub() (*Hub, *envtest.Env, *envtest.Manager) {
	env := envtest.NewEnv()
	mgr := envtest.NewManager("E4:5F:01:AA:BB:CC")
	env.SetHandle(blehost.ServiceBluetooth, mgr)
	return New(env), env, mgr
}

func TestHub_ManagerSingleton(t *testing.T) {
	ctx := context.Background()
	h, env, mgr := newTestHub()

	m1, err := h.Manager(ctx)
	if err != nil {
		t.Fatalf("first manager: %v", err)
	}
	m2, err := h.Manager(ctx)
	if err != nil {
		t.Fatalf("second manager: %v", err)
	}

	if m1 != m2 {
		t.Error("repeat calls should return the identical manager")
	}
	if m1 != mgr {
		t.Error("manager should be the environment's handle")
	}
	if got := env.Calls(blehost.ServiceBluetooth); got != 1 {
		t.Errorf("environment lookups = %d, want 1", got)
	}
}

func TestHub_AdapterSingleton(t *testing.T) {
	ctx := context.Background()
	h, env, mgr := newTestHub()

	a1, err := h.Adapter(ctx)
	if err != nil {
		t.Fatalf("first adapter: %v", err)
	}
	a2, err := h.Adapter(ctx)
	if err != nil {
		t.Fatalf("second adapter: %v", err)
	}

	if a1 != a2 {
		t.Error("repeat calls should return the identical adapter")
	}
	if a1 != mgr.Default {
		t.Error("adapter should be the manager's default adapter")
	}
	if got := mgr.AdapterCalls(); got != 1 {
		t.Errorf("adapter derivations = %d, want 1", got)
	}
	if got := env.Calls(blehost.ServiceBluetooth); got != 1 {
		t.Errorf("environment lookups = %d, want 1", got)
	}
}

func TestHub_AdapterResolvesManagerFirst(t *testing.T) {
	ctx := context.Background()
	h, env, _ := newTestHub()

	// Ask for the adapter without ever touching the manager.
	if _, err := h.Adapter(ctx); err != nil {
		t.Fatalf("adapter: %v", err)
	}

	if !h.ManagerResolved() {
		t.Error("adapter resolution should resolve the manager first")
	}

	// The manager is already cached; no further environment lookup.
	if _, err := h.Manager(ctx); err != nil {
		t.Fatalf("manager: %v", err)
	}
	if got := env.Calls(blehost.ServiceBluetooth); got != 1 {
		t.Errorf("environment lookups = %d, want 1", got)
	}
}

func TestHub_ServiceUnavailable(t *testing.T) {
	ctx := context.Background()
	h := New(envtest.NewEnv()) // nothing scripted

	_, err := h.Manager(ctx)
	if !errors.IsServiceUnavailable(err) {
		t.Errorf("manager err = %v, want service_unavailable", err)
	}

	// The same classification surfaces through Adapter, unchanged.
	_, err = h.Adapter(ctx)
	if !errors.IsServiceUnavailable(err) {
		t.Errorf("adapter err = %v, want service_unavailable", err)
	}
	if errors.IsAdapterUnavailable(err) {
		t.Error("missing service must not be reported as adapter_unavailable")
	}
}

func TestHub_AdapterUnavailable(t *testing.T) {
	ctx := context.Background()
	h, _, mgr := newTestHub()
	mgr.AdapterErr = stderrors.New("radio powered off")

	_, err := h.Adapter(ctx)
	if !errors.IsAdapterUnavailable(err) {
		t.Errorf("err = %v, want adapter_unavailable", err)
	}
	if errors.IsServiceUnavailable(err) {
		t.Error("derivation failure must not be reported as service_unavailable")
	}

	// The manager itself resolved fine and stays cached.
	if !h.ManagerResolved() {
		t.Error("manager should be cached despite adapter failure")
	}
	if h.AdapterResolved() {
		t.Error("failed adapter must not be cached")
	}
}

func TestHub_FailureNotCached(t *testing.T) {
	ctx := context.Background()

	t.Run("manager", func(t *testing.T) {
		env := envtest.NewEnv()
		env.SetError(blehost.ServiceBluetooth, stderrors.New("stack not up"))
		h := New(env)

		if _, err := h.Manager(ctx); err == nil {
			t.Fatal("first manager call should fail")
		}

		// Host conditions change: the service appears.
		mgr := envtest.NewManager("E4:5F:01:AA:BB:CC")
		env.SetHandle(blehost.ServiceBluetooth, mgr)

		m, err := h.Manager(ctx)
		if err != nil {
			t.Fatalf("second manager call: %v", err)
		}
		if m != mgr {
			t.Error("second call should return the new handle")
		}
		if got := env.Calls(blehost.ServiceBluetooth); got != 2 {
			t.Errorf("environment lookups = %d, want 2", got)
		}
	})

	t.Run("adapter", func(t *testing.T) {
		h, _, mgr := newTestHub()
		mgr.AdapterErr = stderrors.New("radio powered off")

		if _, err := h.Adapter(ctx); err == nil {
			t.Fatal("first adapter call should fail")
		}

		mgr.AdapterErr = nil

		a, err := h.Adapter(ctx)
		if err != nil {
			t.Fatalf("second adapter call: %v", err)
		}
		if a != mgr.Default {
			t.Error("second call should return the derived adapter")
		}
		if got := mgr.AdapterCalls(); got != 2 {
			t.Errorf("adapter derivations = %d, want 2", got)
		}
	})
}

func TestHub_WrongHandleType(t *testing.T) {
	ctx := context.Background()
	env := envtest.NewEnv()
	env.SetHandle(blehost.ServiceBluetooth, 42)
	h := New(env)

	_, err := h.Manager(ctx)
	if !errors.IsKind(err, errors.KindTypeMismatch) {
		t.Errorf("err = %v, want type_mismatch", err)
	}

	// A mismatch is not cached either; a corrected environment recovers.
	env.SetHandle(blehost.ServiceBluetooth, envtest.NewManager("E4:5F:01:AA:BB:CC"))
	if _, err := h.Manager(ctx); err != nil {
		t.Errorf("manager after fix: %v", err)
	}
}

func TestHub_ConcurrentAccess(t *testing.T) {
	const numGoroutines = 50

	ctx := context.Background()
	h, env, mgr := newTestHub()

	var wg sync.WaitGroup
	managers := make(chan blehost.Manager, numGoroutines)
	adapters := make(chan blehost.Adapter, numGoroutines)
	errs := make(chan error, 2*numGoroutines)

	for g := 0; g < numGoroutines; g++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()

			// Half the callers start with the adapter, half with the manager.
			if id%2 == 0 {
				a, err := h.Adapter(ctx)
				if err != nil {
					errs <- err
					return
				}
				adapters <- a
				return
			}

			m, err := h.Manager(ctx)
			if err != nil {
				errs <- err
				return
			}
			managers <- m
		}(g)
	}

	wg.Wait()
	close(managers)
	close(adapters)
	close(errs)

	for err := range errs {
		t.Errorf("concurrent error: %v", err)
	}

	if got := env.Calls(blehost.ServiceBluetooth); got != 1 {
		t.Errorf("environment lookups = %d, want exactly 1", got)
	}
	if got := mgr.AdapterCalls(); got != 1 {
		t.Errorf("adapter derivations = %d, want exactly 1", got)
	}

	for m := range managers {
		if m != mgr {
			t.Error("every caller should observe the same manager")
		}
	}
	for a := range adapters {
		if a != mgr.Default {
			t.Error("every caller should observe the same adapter")
		}
	}
}

func TestHub_WithService(t *testing.T) {
	ctx := context.Background()

	env := envtest.NewEnv()
	mgr := envtest.NewManager("00:11:22:33:44:55")
	env.SetHandle("bluetooth-secondary", mgr)

	h := New(env, WithService("bluetooth-secondary"))
	if h.Service() != "bluetooth-secondary" {
		t.Errorf("service = %q, want %q", h.Service(), "bluetooth-secondary")
	}

	m, err := h.Manager(ctx)
	if err != nil {
		t.Fatalf("manager: %v", err)
	}
	if m != mgr {
		t.Error("manager should come from the overridden service name")
	}
	if env.Calls(blehost.ServiceBluetooth) != 0 {
		t.Error("default service name should not be consulted")
	}
}

func TestHub_ResolvedProbes(t *testing.T) {
	ctx := context.Background()
	h, env, _ := newTestHub()

	if h.ManagerResolved() || h.AdapterResolved() {
		t.Error("fresh hub should report nothing resolved")
	}
	if got := env.Calls(blehost.ServiceBluetooth); got != 0 {
		t.Errorf("probes must not trigger resolution, lookups = %d", got)
	}

	if _, err := h.Manager(ctx); err != nil {
		t.Fatalf("manager: %v", err)
	}
	if !h.ManagerResolved() {
		t.Error("manager should report resolved")
	}
	if h.AdapterResolved() {
		t.Error("adapter should stay unresolved until asked for")
	}

	if _, err := h.Adapter(ctx); err != nil {
		t.Fatalf("adapter: %v", err)
	}
	if !h.AdapterResolved() {
		t.Error("adapter should report resolved")
	}
}

func TestDefault(t *testing.T) {
	if Default() != Default() {
		t.Error("Default should return the same hub every call")
	}

	// Nothing registers the bluetooth service in this test binary, so the
	// package-level accessors report an absent capability.
	ctx := context.Background()
	if _, err := Manager(ctx); !errors.IsServiceUnavailable(err) {
		t.Errorf("Manager err = %v, want service_unavailable", err)
	}
	if _, err := Adapter(ctx); !errors.IsServiceUnavailable(err) {
		t.Errorf("Adapter err = %v, want service_unavailable", err)
	}
}

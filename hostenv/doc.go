// Package hostenv resolves named host services from a registry of builders.
//
// A Table maps service names to Builder functions. Platform packages register
// their builders from init(), the application seals the table once configured,
// and an Env resolves handles on demand:
//
//	tbl := hostenv.NewTable()
//	tbl.MustRegister("bluetooth", buildBluetooth)
//	tbl.Seal()
//
//	env := hostenv.New(tbl, hostenv.WithLogger(log))
//	h, err := env.Service(ctx, "bluetooth")
//
// Most applications use the process-wide default table instead, populated by
// blank-importing platform packages:
//
//	import _ "github.com/bluekit/ble-host/system"
//
//	env := hostenv.System()
//
// Env performs no caching: every Service call may invoke the builder again.
// Memoization is the hub's responsibility.
//
// All types are safe for concurrent use.
package hostenv

// Package system provides the host Bluetooth service backed by
// tinygo.org/x/bluetooth.
//
// Importing the package registers the service in hostenv's default table
// under blehost.ServiceBluetooth, so applications normally depend on it with
// a blank import:
//
//	import _ "github.com/bluekit/ble-host/system"
//
// The manager is a process-wide singleton wrapping the platform's default
// radio. The radio stack is enabled on first adapter request; an enable
// failure is reported to the caller and retried on the next request, so a
// radio that comes up later still becomes usable.
package system

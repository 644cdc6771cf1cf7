package system

import (
	"context"

	blehost "github.com/bluekit/ble-host"
	"github.com/bluekit/ble-host/hostenv"
)

func init() {
	hostenv.MustRegister(blehost.ServiceBluetooth, func(ctx context.Context) (any, error) {
		return Default(), nil
	})
}

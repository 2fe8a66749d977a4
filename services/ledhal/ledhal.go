// Package ledhal exposes LED driver chips as bus capabilities.
//
// The service consumes the retained config/ledhal document, builds one
// adaptor per configured chip, and publishes per-channel info/state/value
// topics under ledhal/led/<id>/. Control verbs (set, get, fade) arrive on
// ledhal/led/<id>/control/<verb>.
package ledhal

import (
	"context"

	"ledcode-go/bus"
	"ledcode-go/services/ledhal/internal/ledcore"
	"ledcode-go/services/ledhal/internal/service"

	_ "ledcode-go/services/ledhal/internal/devices/cat3626"
)

// I2CBusFactory supplies configured I²C bus instances by id.
type I2CBusFactory = ledcore.I2CBusFactory

// Run blocks until ctx is cancelled, servicing config and control traffic.
func Run(ctx context.Context, conn *bus.Connection, buses I2CBusFactory) {
	service.New(conn, buses).Run(ctx)
}

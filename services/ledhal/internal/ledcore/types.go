// services/ledhal/internal/ledcore/types.go
package ledcore

import (
	"ledcode-go/types"

	"tinygo.org/x/drivers"
)

// ChannelCap describes one LED channel's retained info document.
type ChannelCap struct {
	Kind types.Kind
	Info types.Info
}

// Adaptor abstracts one LED driver chip instance. SetBrightness must never
// block: it may be called from the control path while an Apply is holding
// the chip lock mid-transaction. Apply may block (chip lock + bus I/O) and
// is only ever called from a dispatch worker.
type Adaptor interface {
	ID() string
	NumChannels() int
	Capabilities() []ChannelCap // one entry per channel, in channel order
	SetBrightness(channel int, raw uint16) error
	Value(channel int) (types.LEDValue, error)
	Apply(channel int) error
	Close() error
}

// Result emitted by a dispatch worker after each apply.
type Result struct {
	DevID   string
	Channel int
	Err     error
}

// I2CBusFactory injects configured I²C instances by id.
// Uses the TinyGo drivers.I2C interface to remain compatible on MCU builds.
type I2CBusFactory interface {
	ByID(id string) (drivers.I2C, bool)
}

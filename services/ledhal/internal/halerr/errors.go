// services/ledhal/internal/halerr/errors.go
package halerr

import "ledcode-go/errcode"

// Control-plane and build errors, surfaced verbatim in bus replies. All are
// errcode.Code values so errcode.Of recovers the code from a wrapped error.
var (
	// Service/control plane
	ErrBusy           = errcode.Busy
	ErrInvalidCapAddr = errcode.InvalidTopic
	ErrUnknownCap     = errcode.UnknownChannel
	ErrInvalidPayload = errcode.InvalidPayload

	// Build/config
	ErrUnknownBus    = errcode.UnknownBus
	ErrUnknownType   = errcode.UnknownChip
	ErrDuplicateName = errcode.Code("duplicate_channel_name")

	// Generic / pass-through
	ErrUnsupported = errcode.Unsupported
)

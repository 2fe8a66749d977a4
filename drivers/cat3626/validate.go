package cat3626

import "errors"

var (
	// Sentinel errors (TinyGo-safe; no fmt)
	ErrNoTransport    = errors.New("i2c transport is nil")
	ErrChannelCount   = errors.New("need exactly six channel configs")
	ErrUnknownChannel = errors.New("channel index out of range")
)

package types

import "time"

// Kind identifies a capability family on the bus.
type Kind = string

const KindLED Kind = "led"

// ------------------------
// Common service state (retained)
// ------------------------

type HALState struct {
	Level  string `json:"level"`  // "idle", "ready", "error", "stopped"
	Status string `json:"status"` // freeform short code
	Error  string `json:"error,omitempty"`
	TS     time.Time `json:"ts"`
}

// Link is the link/state reported for a capability.
type Link string

const (
	LinkUp       Link = "up"
	LinkDown     Link = "down"
	LinkDegraded Link = "degraded"
)

type CapabilityState struct {
	Link  Link      `json:"link"`
	TS    time.Time `json:"ts"`
	Error string    `json:"error,omitempty"` // machine-readable short code
}

// ------------------------
// Info envelope (retained)
// ------------------------

type Info struct {
	SchemaVersion int         `json:"schema_version"`
	Driver        string      `json:"driver"`
	Detail        interface{} `json:"detail,omitempty"`
}

// LEDInfo describes one LED channel capability.
type LEDInfo struct {
	Chip          string `json:"chip"`    // owning chip device id
	Name          string `json:"name"`    // display name from configuration
	Channel       int    `json:"channel"` // 0-based index on the chip
	MaxBrightness uint16 `json:"max_brightness"`
}

// ------------------------
// LED control payloads
// ------------------------

// LEDSet requests a new raw brightness for a channel.
type LEDSet struct {
	Brightness uint16 `json:"brightness"`
}

// LEDFade ramps a channel to a target brightness over a duration.
type LEDFade struct {
	Brightness uint16 `json:"brightness"`
	DurationMS uint32 `json:"duration_ms"`
	Steps      uint16 `json:"steps,omitempty"` // 0 => snap
}

// LEDValue reports a channel's requested state.
type LEDValue struct {
	Name       string    `json:"name"`
	Level      uint8     `json:"level"`      // quantized hardware level
	Brightness uint16    `json:"brightness"` // last requested raw brightness
	TS         time.Time `json:"ts"`
}

// ------------------------
// Generic replies
// ------------------------

type OKReply struct {
	OK bool `json:"ok"`
}

type ErrorReply struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

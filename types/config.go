package types

import (
	"encoding/json"

	"ledcode-go/errcode"
)

// ------------------------
// LED HAL configuration
// ------------------------

type LEDHALConfig struct {
	Chips []LEDChip `json:"chips"`
}

// LEDChip names one LED driver chip instance and its channel layout.
type LEDChip struct {
	ID       string             `json:"id"`   // logical device id
	Type     string             `json:"type"` // e.g. "cat3626"
	Bus      string             `json:"bus"`  // I²C bus id, e.g. "i2c0"
	Addr     uint16             `json:"addr,omitempty"`
	Channels []LEDChannelConfig `json:"channels"`
}

// LEDChannelConfig carries the per-channel platform data.
type LEDChannelConfig struct {
	Name string `json:"name"`
}

// DecodeLEDHALConfig accepts the config as a typed struct (the normal
// in-process path) or as raw JSON from an external bridge.
func DecodeLEDHALConfig(payload any) (LEDHALConfig, error) {
	switch v := payload.(type) {
	case LEDHALConfig:
		return v, nil
	case *LEDHALConfig:
		if v == nil {
			return LEDHALConfig{}, errcode.InvalidPayload
		}
		return *v, nil
	case []byte:
		var c LEDHALConfig
		if err := json.Unmarshal(v, &c); err != nil {
			return LEDHALConfig{}, err
		}
		return c, nil
	case string:
		var c LEDHALConfig
		if err := json.Unmarshal([]byte(v), &c); err != nil {
			return LEDHALConfig{}, err
		}
		return c, nil
	default:
		return LEDHALConfig{}, errcode.InvalidPayload
	}
}

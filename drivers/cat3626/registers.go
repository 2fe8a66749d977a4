// Package cat3626 drives the CAT3626 six-channel LED current regulator
// over I²C. Channels are paired: each pair shares one current register,
// and a single enable register holds one bit per channel.
package cat3626

const (
	// 7-bit I2C address (0110_011b).
	AddressDefault = 0x33

	// --- Register sub-addresses (8-bit byte registers) ---

	RegCurrentA = 0x00 // R/W, current code for channels 0/1
	RegCurrentB = 0x01 // R/W, current code for channels 2/3
	RegCurrentC = 0x02 // R/W, current code for channels 4/5
	RegEnable   = 0x03 // R/W, one enable bit per channel (bit n = channel n)

	// NumChannels is fixed by the chip topology.
	NumChannels = 6

	// MaxLevel is the largest current code the chip accepts.
	MaxLevel = 39

	// MaxBrightness is the raw brightness advertised to callers,
	// MaxLevel scaled back up by the three bits Quantize discards.
	MaxBrightness = MaxLevel << 3
)

package cat3626

// Quantize maps a raw brightness onto a current code: the low 3 bits are
// discarded, then the result is clamped to MaxLevel. Total over all inputs;
// negative values quantize to 0.
func Quantize(raw int) uint8 {
	if raw < 0 {
		return 0
	}
	lvl := raw >> 3
	if lvl > MaxLevel {
		lvl = MaxLevel
	}
	return uint8(lvl)
}

// EnableByte computes the enable register value for one channel's new level:
// level 0 clears the channel's bit, anything else sets it. A value-identical
// return means no enable write is needed.
func EnableByte(cur byte, bit uint8, level uint8) byte {
	if level == 0 {
		return cur &^ (1 << bit)
	}
	return cur | 1<<bit
}

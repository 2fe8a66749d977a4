package cat3626

import "sync/atomic"

// Channel is the per-output state record. It does no I/O and takes no locks:
// the requested level is an atomic so brightness requests may land from a
// context that must not block while Apply is mid-transaction.
type Channel struct {
	id      uint8
	reg     byte // shared current register for this channel's pair
	name    string
	partner *Channel

	// requested holds raw<<16 | level; written as one word so readers never
	// observe a raw/level pair from two different requests.
	requested atomic.Uint32
}

func (c *Channel) ID() int      { return int(c.id) }
func (c *Channel) Reg() byte    { return c.reg }
func (c *Channel) Name() string { return c.name }

// Partner is the other channel sharing this channel's current register.
// Structural relationship only; levels are never equalized across a pair.
func (c *Channel) Partner() *Channel { return c.partner }

// EnableBit is this channel's bit position in the enable register.
func (c *Channel) EnableBit() uint8 { return c.id }

// SetBrightness quantizes and stores a raw brightness request. Never blocks.
func (c *Channel) SetBrightness(raw uint16) uint8 {
	lvl := Quantize(int(raw))
	c.requested.Store(uint32(raw)<<16 | uint32(lvl))
	return lvl
}

// SetLevel stores an already-quantized level, clamped to MaxLevel.
// The recorded raw brightness is the level scaled back by three bits.
func (c *Channel) SetLevel(level uint8) {
	if level > MaxLevel {
		level = MaxLevel
	}
	c.requested.Store(uint32(level)<<19 | uint32(level))
}

// Level returns the most recently requested current code.
func (c *Channel) Level() uint8 {
	return uint8(c.requested.Load() & 0xFF)
}

// Brightness returns the most recently requested raw brightness.
func (c *Channel) Brightness() uint16 {
	return uint16(c.requested.Load() >> 16)
}

// CurrentValue returns the byte to write to the pair's current register,
// or ok=false when the level is zero and no current write is needed.
func (c *Channel) CurrentValue() (byte, bool) {
	lvl := c.Level()
	return lvl, lvl > 0
}

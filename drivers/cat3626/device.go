package cat3626

import (
	"sync"

	"tinygo.org/x/drivers"
)

// Driver configuration.
type Config struct {
	Address  uint16 // 0 => AddressDefault
	Channels []ChannelConfig
}

// ChannelConfig carries the platform data for one output.
type ChannelConfig struct {
	Name string
}

// Device represents one CAT3626 on an I²C bus. All register access is
// serialized by a single chip-wide mutex: the enable register spans every
// channel and each current register spans a pair, so per-channel locking
// could interleave read-modify-write sequences.
type Device struct {
	i2c  drivers.I2C
	addr uint16

	mu sync.Mutex // guards hardware access and the w/r buffers
	ch [NumChannels]Channel

	// Fixed buffers to avoid per-call heap allocations.
	w [2]byte
	r [1]byte
}

// New constructs a Device and wires the fixed channel topology: channels
// (2k, 2k+1) partner each other and share current register k.
func New(i2c drivers.I2C, cfg Config) (*Device, error) {
	if i2c == nil {
		return nil, ErrNoTransport
	}
	if len(cfg.Channels) != NumChannels {
		return nil, ErrChannelCount
	}
	addr := cfg.Address
	if addr == 0 {
		addr = AddressDefault
	}
	d := &Device{i2c: i2c, addr: addr}
	for i := 0; i < NumChannels; i += 2 {
		d.ch[i].partner = &d.ch[i+1]
		d.ch[i+1].partner = &d.ch[i]
		d.ch[i].reg = byte(i / 2)
		d.ch[i+1].reg = byte(i / 2)
	}
	for i := range d.ch {
		d.ch[i].id = uint8(i)
		d.ch[i].name = cfg.Channels[i].Name
	}
	return d, nil
}

// Probe performs one enable-register read, surfacing transport problems
// before any channel is exposed.
func (d *Device) Probe() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, err := d.readByte(RegEnable)
	return err
}

// Channel returns the channel at index i, or nil when out of range.
func (d *Device) Channel(i int) *Channel {
	if i < 0 || i >= NumChannels {
		return nil
	}
	return &d.ch[i]
}

// Apply drives the channel's requested level to hardware under the chip
// mutex. The enable byte is re-read from the device every time — it is
// shared mutable state and is never cached in memory. The enable register
// is written only when its value actually changes; the current register is
// written whenever the level is nonzero. On error the requested level is
// left in place so a later Apply reconverges.
func (d *Device) Apply(ch *Channel) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	cur, err := d.readByte(RegEnable)
	if err != nil {
		return err
	}

	lvl := ch.Level()
	next := EnableByte(cur, ch.EnableBit(), lvl)
	if next != cur {
		if err := d.writeByte(RegEnable, next); err != nil {
			return err
		}
	}

	if v, ok := ch.CurrentValue(); ok {
		return d.writeByte(ch.Reg(), v)
	}
	return nil
}

// I2C byte operations.

func (d *Device) readByte(reg byte) (byte, error) {
	d.w[0] = reg
	if err := d.i2c.Tx(d.addr, d.w[:1], d.r[:1]); err != nil {
		return 0, err
	}
	return d.r[0], nil
}

func (d *Device) writeByte(reg, val byte) error {
	d.w[0] = reg
	d.w[1] = val
	return d.i2c.Tx(d.addr, d.w[:2], nil)
}

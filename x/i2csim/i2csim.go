// Package i2csim provides an in-memory I²C bus for host builds: register
// devices respond to the usual pointer-register protocol, so driver code runs
// unmodified against simulated hardware.
package i2csim

import (
	"errors"
	"sync"
)

var (
	ErrNoDevice  = errors.New("i2csim: no device at address")
	ErrBadAccess = errors.New("i2csim: register access out of range")
)

// Device is one simulated register file on the bus.
type Device struct {
	mu   sync.Mutex
	addr uint16
	regs []byte
	ptr  int // register pointer, survives between transactions
}

func NewDevice(addr uint16, numRegs int) *Device {
	return &Device{addr: addr, regs: make([]byte, numRegs)}
}

func (d *Device) Addr() uint16 { return d.addr }

// Reg reads one register directly, bypassing the bus. For tests and consoles.
func (d *Device) Reg(i int) byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	if i < 0 || i >= len(d.regs) {
		return 0
	}
	return d.regs[i]
}

// tx applies one transaction: w[0] sets the register pointer, remaining write
// bytes store sequentially, read bytes load sequentially.
func (d *Device) tx(w, r []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(w) > 0 {
		d.ptr = int(w[0])
		for _, v := range w[1:] {
			if d.ptr >= len(d.regs) {
				return ErrBadAccess
			}
			d.regs[d.ptr] = v
			d.ptr++
		}
	}
	for i := range r {
		if d.ptr >= len(d.regs) {
			return ErrBadAccess
		}
		r[i] = d.regs[d.ptr]
		d.ptr++
	}
	return nil
}

// Bus routes transactions to devices by address. Implements drivers.I2C.
type Bus struct {
	mu   sync.Mutex
	devs map[uint16]*Device
}

func NewBus(devs ...*Device) *Bus {
	b := &Bus{devs: make(map[uint16]*Device)}
	for _, d := range devs {
		b.Add(d)
	}
	return b
}

func (b *Bus) Add(d *Device) {
	b.mu.Lock()
	b.devs[d.addr] = d
	b.mu.Unlock()
}

func (b *Bus) Tx(addr uint16, w, r []byte) error {
	b.mu.Lock()
	d, ok := b.devs[addr]
	b.mu.Unlock()
	if !ok {
		return ErrNoDevice
	}
	return d.tx(w, r)
}

package i2csim

import "testing"

func TestPointerProtocol(t *testing.T) {
	d := NewDevice(0x33, 4)
	b := NewBus(d)

	// Write two bytes starting at register 1.
	if err := b.Tx(0x33, []byte{1, 0xAA, 0xBB}, nil); err != nil {
		t.Fatal(err)
	}
	if d.Reg(1) != 0xAA || d.Reg(2) != 0xBB {
		t.Fatalf("regs = %x %x", d.Reg(1), d.Reg(2))
	}

	// Combined transaction: set pointer, read back both.
	var r [2]byte
	if err := b.Tx(0x33, []byte{1}, r[:]); err != nil {
		t.Fatal(err)
	}
	if r != [2]byte{0xAA, 0xBB} {
		t.Fatalf("read = %x", r)
	}
}

func TestAddressing(t *testing.T) {
	b := NewBus(NewDevice(0x33, 4))
	if err := b.Tx(0x60, []byte{0}, nil); err != ErrNoDevice {
		t.Fatalf("err = %v, want ErrNoDevice", err)
	}
	if err := b.Tx(0x33, []byte{3, 1, 2}, nil); err != ErrBadAccess {
		t.Fatalf("err = %v, want ErrBadAccess", err)
	}
}

package cat3626

import "testing"

func TestQuantizeBoundsAndAnchors(t *testing.T) {
	if got := Quantize(0); got != 0 {
		t.Errorf("Quantize(0) = %d, want 0", got)
	}
	if got := Quantize(255); got != 31 {
		t.Errorf("Quantize(255) = %d, want 31", got)
	}
	if got := Quantize(MaxBrightness); got != MaxLevel {
		t.Errorf("Quantize(%d) = %d, want %d", MaxBrightness, got, MaxLevel)
	}
	// Clamp engages only above the advertised maximum.
	if got := Quantize(1000); got != MaxLevel {
		t.Errorf("Quantize(1000) = %d, want %d", got, MaxLevel)
	}
	if got := Quantize(-5); got != 0 {
		t.Errorf("Quantize(-5) = %d, want 0", got)
	}
}

func TestQuantizeMonotonic(t *testing.T) {
	prev := uint8(0)
	for raw := 0; raw <= 255; raw++ {
		lvl := Quantize(raw)
		if lvl < prev {
			t.Fatalf("Quantize not monotonic at raw=%d: %d < %d", raw, lvl, prev)
		}
		if lvl > MaxLevel {
			t.Fatalf("Quantize(%d) = %d exceeds MaxLevel", raw, lvl)
		}
		prev = lvl
	}
}

func TestEnableByte(t *testing.T) {
	cases := []struct {
		cur   byte
		bit   uint8
		level uint8
		want  byte
	}{
		{0x00, 0, 10, 0x01}, // set
		{0x01, 0, 0, 0x00},  // clear
		{0x01, 0, 20, 0x01}, // already set, unchanged
		{0x00, 5, 0, 0x00},  // already clear, unchanged
		{0x3F, 3, 0, 0x37},  // clear one of many
		{0x21, 2, 39, 0x25}, // set amid others
	}
	for _, c := range cases {
		if got := EnableByte(c.cur, c.bit, c.level); got != c.want {
			t.Errorf("EnableByte(%#02x, %d, %d) = %#02x, want %#02x",
				c.cur, c.bit, c.level, got, c.want)
		}
	}
}

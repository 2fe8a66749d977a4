package types

import "testing"

func TestDecodeLEDHALConfig(t *testing.T) {
	typed := LEDHALConfig{Chips: []LEDChip{{ID: "c0", Type: "cat3626", Bus: "i2c0"}}}
	if got, err := DecodeLEDHALConfig(typed); err != nil || len(got.Chips) != 1 {
		t.Fatalf("typed decode: %+v, %v", got, err)
	}

	raw := `{"chips":[{"id":"c0","type":"cat3626","bus":"i2c0","channels":[{"name":"red"}]}]}`
	got, err := DecodeLEDHALConfig(raw)
	if err != nil {
		t.Fatal(err)
	}
	if got.Chips[0].Channels[0].Name != "red" {
		t.Fatalf("json decode: %+v", got)
	}

	if _, err := DecodeLEDHALConfig(42); err == nil {
		t.Fatal("expected error for unsupported payload type")
	}
	if _, err := DecodeLEDHALConfig("{broken"); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

package errcode

import (
	"errors"
	"testing"
)

func TestOf(t *testing.T) {
	if Of(nil) != OK {
		t.Error("Of(nil) != OK")
	}
	if Of(UnknownBus) != UnknownBus {
		t.Error("bare code not passed through")
	}
	e := &E{C: InvalidParams, Op: "build", Err: errors.New("boom")}
	if Of(e) != InvalidParams {
		t.Error("wrapped code not recovered")
	}
	if Of(errors.New("anything")) != Error {
		t.Error("plain error should map to generic code")
	}
}

func TestMapDriverErr(t *testing.T) {
	if MapDriverErr(nil) != OK {
		t.Error("nil should map to OK")
	}
	if MapDriverErr(Timeout) != Timeout {
		t.Error("coded error should pass through")
	}
	if MapDriverErr(errors.New("i2c nack")) != IOFailed {
		t.Error("transport error should map to io_failed")
	}
}

func TestEErrorString(t *testing.T) {
	e := &E{C: UnknownChip, Msg: "no builder"}
	if e.Error() != "unknown_chip: no builder" {
		t.Errorf("got %q", e.Error())
	}
	if (&E{C: Busy}).Error() != "busy" {
		t.Errorf("bare code string mismatch")
	}
}

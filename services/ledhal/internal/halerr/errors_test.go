package halerr

import "testing"

func TestErrorsAreStableStrings(t *testing.T) {
	cases := map[string]error{
		"busy":                   ErrBusy,
		"invalid_topic":          ErrInvalidCapAddr,
		"unknown_channel":        ErrUnknownCap,
		"invalid_payload":        ErrInvalidPayload,
		"unknown_bus":            ErrUnknownBus,
		"unknown_chip":           ErrUnknownType,
		"duplicate_channel_name": ErrDuplicateName,
		"unsupported":            ErrUnsupported,
	}
	for want, e := range cases {
		if e == nil || e.Error() != want {
			t.Fatalf("error %q mismatch: got %#v", want, e)
		}
	}
}

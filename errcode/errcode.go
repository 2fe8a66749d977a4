package errcode

// Code is a stable, bus-facing error identifier: a comparable string newtype
// that implements error, so control handlers can return codes directly.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK             Code = "ok"
	Busy           Code = "busy"
	Unsupported    Code = "unsupported"
	InvalidParams  Code = "invalid_params"
	InvalidPayload Code = "invalid_payload"
	UnknownChannel Code = "unknown_channel"
	UnknownChip    Code = "unknown_chip"
	NotReady       Code = "not_ready"
	InvalidTopic   Code = "invalid_topic"

	UnknownBus   Code = "unknown_bus"
	ChannelCount Code = "bad_channel_count"
	IOFailed     Code = "io_failed"
	Timeout      Code = "timeout"

	Error Code = "error" // generic fallback
)

// E carries a code together with an operation name and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	if e.Msg != "" {
		return string(e.C) + ": " + e.Msg
	}
	return string(e.C)
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}

// MapDriverErr folds a transport-level error into a stable code. Errors that
// already carry a code pass through; anything else from the register I/O path
// reports as an I/O failure.
func MapDriverErr(err error) Code {
	if err == nil {
		return OK
	}
	if c := Of(err); c != Error {
		return c
	}
	return IOFailed
}

// services/ledhal/internal/consts/consts.go
package consts

// Top-level topics
const (
	TokConfig  = "config"
	TokLEDHAL  = "ledhal"
	TokInfo    = "info"
	TokState   = "state"
	TokValue   = "value"
	TokControl = "control"
)

// Control verbs
const (
	CtrlSet  = "set"
	CtrlGet  = "get"
	CtrlFade = "fade"
)

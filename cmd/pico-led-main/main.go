// cmd/pico-led-main/main.go
//go:build rp2040 || rp2350

// LED HAL firmware for Raspberry Pi Pico boards: a CAT3626 on i2c0 driven
// over a UART0 line console (set/fade/get, space separated).
package main

import (
	"context"
	"time"

	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"

	"ledcode-go/bus"
	"ledcode-go/services/ledhal"
	"ledcode-go/services/ledhal/platform"
	"ledcode-go/types"
)

const uartBaud = 115200

// tiny helpers (no fmt)
func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	sign := ""
	if i < 0 {
		sign = "-"
		i = -i
	}
	var buf [32]byte
	b := len(buf)
	for i > 0 {
		b--
		buf[b] = byte('0' + (i % 10))
		i /= 10
	}
	return sign + string(buf[b:])
}

func atoi(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

func fields(s string) []string {
	var out []string
	start := -1
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ' ' || s[i] == '\t' {
			if start >= 0 {
				out = append(out, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	return out
}

type console struct {
	u  *uartx.UART
	ui *bus.Connection
}

func (c *console) writeln(parts ...string) {
	for _, p := range parts {
		_, _ = c.u.Write([]byte(p))
	}
	_, _ = c.u.Write([]byte("\r\n"))
}

func (c *console) request(id int, verb string, payload any) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	topic := bus.T("ledhal", "led", id, "control", verb)
	reply, err := c.ui.RequestWait(ctx, c.ui.NewMessage(topic, payload, false))
	if err != nil {
		c.writeln("! ", err.Error())
		return
	}
	switch p := reply.Payload.(type) {
	case types.OKReply:
		c.writeln("ok")
	case types.ErrorReply:
		c.writeln("! ", p.Error)
	case types.LEDValue:
		c.writeln(p.Name, " brightness=", itoa(int(p.Brightness)), " level=", itoa(int(p.Level)))
	default:
		c.writeln("?")
	}
}

func (c *console) handle(line string) {
	args := fields(line)
	if len(args) == 0 {
		return
	}
	bad := func() { c.writeln("usage: set|fade|get <ch> [args]") }

	switch args[0] {
	case "set":
		if len(args) != 3 {
			bad()
			return
		}
		ch, ok1 := atoi(args[1])
		lvl, ok2 := atoi(args[2])
		if !ok1 || !ok2 {
			bad()
			return
		}
		c.request(ch, "set", types.LEDSet{Brightness: uint16(lvl)})
	case "fade":
		if len(args) != 4 {
			bad()
			return
		}
		ch, ok1 := atoi(args[1])
		lvl, ok2 := atoi(args[2])
		ms, ok3 := atoi(args[3])
		if !ok1 || !ok2 || !ok3 {
			bad()
			return
		}
		c.request(ch, "fade", types.LEDFade{
			Brightness: uint16(lvl),
			DurationMS: uint32(ms),
			Steps:      20,
		})
	case "get":
		if len(args) != 2 {
			bad()
			return
		}
		ch, ok := atoi(args[1])
		if !ok {
			bad()
			return
		}
		c.request(ch, "get", nil)
	default:
		bad()
	}
}

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("boot")

	ctx := context.Background()
	b := bus.NewBus(8)
	go ledhal.Run(ctx, b.NewConnection("ledhal"), platform.DefaultI2CFactory())

	ui := b.NewConnection("ui")
	cfg := types.LEDHALConfig{Chips: []types.LEDChip{{
		ID:   "panel",
		Type: "cat3626",
		Bus:  "i2c0",
		Channels: []types.LEDChannelConfig{
			{Name: "red"}, {Name: "green"}, {Name: "blue"},
			{Name: "white0"}, {Name: "white1"}, {Name: "white2"},
		},
	}}}
	println("publishing config/ledhal")
	ui.Publish(ui.NewMessage(bus.T("config", "ledhal"), cfg, true))

	u := uartx.UART0
	_ = u.Configure(uartx.UARTConfig{
		BaudRate: uartBaud,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	})
	con := &console{u: u, ui: ui}
	con.writeln("led console ready")

	var line [96]byte
	n := 0
	var rx [16]byte
	for {
		got, err := u.RecvSomeContext(ctx, rx[:])
		if err != nil {
			continue
		}
		for _, ch := range rx[:got] {
			switch ch {
			case '\r', '\n':
				if n > 0 {
					con.handle(string(line[:n]))
					n = 0
				}
			default:
				if n < len(line) {
					line[n] = ch
					n++
				}
			}
		}
	}
}

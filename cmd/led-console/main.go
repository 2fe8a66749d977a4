// cmd/led-console/main.go
//
// Interactive host console for the LED HAL: drives a simulated CAT3626 over
// the bus control topics and shows the register file after each command.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/shlex"
	"tinygo.org/x/drivers"

	"ledcode-go/bus"
	"ledcode-go/services/ledhal"
	"ledcode-go/types"
	"ledcode-go/x/i2csim"
)

const requestTimeout = 2 * time.Second

type simBuses map[string]drivers.I2C

func (s simBuses) ByID(id string) (drivers.I2C, bool) {
	i2c, ok := s[id]
	return i2c, ok
}

// ---------- Topics ----------

func tControl(id int, verb string) bus.Topic {
	return bus.T("ledhal", "led", id, "control", verb)
}

var tHALState = bus.T("ledhal", "state")

// ---------- Helpers ----------

func waitReady(c *bus.Connection, d time.Duration) bool {
	sub := c.Subscribe(tHALState)
	defer sub.Unsubscribe()

	dead := time.After(d)
	for {
		select {
		case m := <-sub.Channel():
			if st, ok := m.Payload.(types.HALState); ok && st.Level == "ready" {
				return true
			}
		case <-dead:
			return false
		}
	}
}

func request(ui *bus.Connection, topic bus.Topic, payload any) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	reply, err := ui.RequestWait(ctx, ui.NewMessage(topic, payload, false))
	if err != nil {
		fmt.Println("!", err)
		return
	}
	switch p := reply.Payload.(type) {
	case types.OKReply:
		fmt.Println("ok")
	case types.ErrorReply:
		fmt.Println("!", p.Error)
	case types.LEDValue:
		fmt.Printf("%s: brightness=%d level=%d\n", p.Name, p.Brightness, p.Level)
	default:
		fmt.Printf("%+v\n", p)
	}
}

func atoi(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	return n, err == nil
}

func usage() {
	fmt.Println(`commands:
  set <ch> <brightness>           request a raw brightness (0..312)
  fade <ch> <target> <ms> [steps] ramp to target over ms
  get <ch>                        read back the requested value
  regs                            dump the simulated register file
  quit`)
}

func main() {
	chip := i2csim.NewDevice(0x33, 4)
	buses := simBuses{"i2c0": i2csim.NewBus(chip)}

	b := bus.NewBus(8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ledhal.Run(ctx, b.NewConnection("ledhal"), buses)

	ui := b.NewConnection("console")
	cfg := types.LEDHALConfig{Chips: []types.LEDChip{{
		ID:   "sim0",
		Type: "cat3626",
		Bus:  "i2c0",
		Channels: []types.LEDChannelConfig{
			{Name: "ch0"}, {Name: "ch1"}, {Name: "ch2"},
			{Name: "ch3"}, {Name: "ch4"}, {Name: "ch5"},
		},
	}}}
	ui.Publish(ui.NewMessage(bus.T("config", "ledhal"), cfg, true))
	if !waitReady(ui, requestTimeout) {
		fmt.Println("hal did not come up")
		os.Exit(1)
	}
	fmt.Println("led hal ready; 6 channels on sim0")
	usage()

	in := bufio.NewScanner(os.Stdin)
	for fmt.Print("> "); in.Scan(); fmt.Print("> ") {
		args, err := shlex.Split(in.Text())
		if err != nil {
			fmt.Println("!", err)
			continue
		}
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "set":
			if len(args) != 3 {
				usage()
				continue
			}
			ch, ok1 := atoi(args[1])
			lvl, ok2 := atoi(args[2])
			if !ok1 || !ok2 {
				usage()
				continue
			}
			request(ui, tControl(ch, "set"), types.LEDSet{Brightness: uint16(lvl)})

		case "fade":
			if len(args) < 4 || len(args) > 5 {
				usage()
				continue
			}
			ch, ok1 := atoi(args[1])
			lvl, ok2 := atoi(args[2])
			ms, ok3 := atoi(args[3])
			steps := 20
			if len(args) == 5 {
				var ok bool
				if steps, ok = atoi(args[4]); !ok {
					usage()
					continue
				}
			}
			if !ok1 || !ok2 || !ok3 {
				usage()
				continue
			}
			request(ui, tControl(ch, "fade"), types.LEDFade{
				Brightness: uint16(lvl),
				DurationMS: uint32(ms),
				Steps:      uint16(steps),
			})

		case "get":
			if len(args) != 2 {
				usage()
				continue
			}
			ch, ok := atoi(args[1])
			if !ok {
				usage()
				continue
			}
			request(ui, tControl(ch, "get"), nil)

		case "regs":
			fmt.Printf("current: A=%d B=%d C=%d  enable: %06b\n",
				chip.Reg(0), chip.Reg(1), chip.Reg(2), chip.Reg(3))

		case "quit", "exit":
			return

		default:
			usage()
		}
	}
}

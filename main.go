package main

import (
	"context"
	"time"

	"ledcode-go/bus"
	"ledcode-go/services/ledhal"
	"ledcode-go/types"
	"ledcode-go/x/i2csim"

	"tinygo.org/x/drivers"
)

// simBuses satisfies ledhal.I2CBusFactory over simulated hardware.
type simBuses map[string]drivers.I2C

func (s simBuses) ByID(id string) (drivers.I2C, bool) {
	i2c, ok := s[id]
	return i2c, ok
}

func main() {
	ctx := context.Background()
	println("boot")

	chip := i2csim.NewDevice(0x33, 4)
	buses := simBuses{"i2c0": i2csim.NewBus(chip)}

	b := bus.NewBus(8)
	go ledhal.Run(ctx, b.NewConnection("ledhal"), buses)

	ui := b.NewConnection("ui")
	cfg := types.LEDHALConfig{Chips: []types.LEDChip{{
		ID:   "backlight",
		Type: "cat3626",
		Bus:  "i2c0",
		Channels: []types.LEDChannelConfig{
			{Name: "red"}, {Name: "green"}, {Name: "blue"},
			{Name: "aux0"}, {Name: "aux1"}, {Name: "aux2"},
		},
	}}}
	println("publishing config/ledhal")
	ui.Publish(ui.NewMessage(bus.T("config", "ledhal"), cfg, true))

	// Blink channel 0 through the full control path and show the register
	// file converging.
	levels := []uint16{312, 160, 40, 0}
	for {
		for _, lvl := range levels {
			topic := bus.T("ledhal", "led", 0, "control", "set")
			if _, err := ui.RequestWait(ctx, ui.NewMessage(topic, types.LEDSet{Brightness: lvl}, false)); err != nil {
				println("set error:", err.Error())
				continue
			}
			time.Sleep(250 * time.Millisecond)
			println("brightness", int(lvl),
				"-> current:", int(chip.Reg(0)),
				"enable:", int(chip.Reg(3)))
		}
	}
}

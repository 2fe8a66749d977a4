// services/ledhal/internal/devices/cat3626/adaptor.go
package cat3626

import (
	"time"

	driver "ledcode-go/drivers/cat3626"
	"ledcode-go/services/ledhal/internal/ledcore"
	"ledcode-go/types"
)

type adaptor struct {
	id  string
	dev *driver.Device
}

func (a *adaptor) ID() string       { return a.id }
func (a *adaptor) NumChannels() int { return driver.NumChannels }

func (a *adaptor) Capabilities() []ledcore.ChannelCap {
	caps := make([]ledcore.ChannelCap, 0, driver.NumChannels)
	for i := 0; i < driver.NumChannels; i++ {
		ch := a.dev.Channel(i)
		caps = append(caps, ledcore.ChannelCap{
			Kind: types.KindLED,
			Info: types.Info{
				SchemaVersion: 1,
				Driver:        "cat3626",
				Detail: types.LEDInfo{
					Chip:          a.id,
					Name:          ch.Name(),
					Channel:       i,
					MaxBrightness: driver.MaxBrightness,
				},
			},
		})
	}
	return caps
}

func (a *adaptor) SetBrightness(channel int, raw uint16) error {
	ch := a.dev.Channel(channel)
	if ch == nil {
		return driver.ErrUnknownChannel
	}
	ch.SetBrightness(raw)
	return nil
}

func (a *adaptor) Value(channel int) (types.LEDValue, error) {
	ch := a.dev.Channel(channel)
	if ch == nil {
		return types.LEDValue{}, driver.ErrUnknownChannel
	}
	return types.LEDValue{
		Name:       ch.Name(),
		Level:      ch.Level(),
		Brightness: ch.Brightness(),
		TS:         time.Now(),
	}, nil
}

func (a *adaptor) Apply(channel int) error {
	ch := a.dev.Channel(channel)
	if ch == nil {
		return driver.ErrUnknownChannel
	}
	return a.dev.Apply(ch)
}

// Close releases nothing hardware-side: teardown leaves register contents
// as last written, matching detach semantics.
func (a *adaptor) Close() error { return nil }

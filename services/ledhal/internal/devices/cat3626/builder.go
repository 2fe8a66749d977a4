// services/ledhal/internal/devices/cat3626/builder.go
package cat3626

import (
	driver "ledcode-go/drivers/cat3626"
	"ledcode-go/services/ledhal/internal/halerr"
	"ledcode-go/services/ledhal/internal/ledcore"
	"ledcode-go/services/ledhal/internal/registry"
)

func init() {
	registry.RegisterBuilder("cat3626", builder{})
}

type builder struct{}

func (builder) Build(in registry.BuildInput) (ledcore.Adaptor, error) {
	i2c, ok := in.Buses.ByID(in.BusID)
	if !ok {
		return nil, halerr.ErrUnknownBus
	}

	cfg := driver.Config{Address: in.Addr}
	for _, c := range in.Channels {
		cfg.Channels = append(cfg.Channels, driver.ChannelConfig{Name: c.Name})
	}

	dev, err := driver.New(i2c, cfg)
	if err != nil {
		return nil, err
	}
	// One probing read before any channel is exposed: a transport that
	// cannot do register reads fails the whole chip here.
	if err := dev.Probe(); err != nil {
		return nil, err
	}
	return &adaptor{id: in.DeviceID, dev: dev}, nil
}

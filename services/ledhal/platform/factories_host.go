// services/ledhal/platform/factories_host.go
//go:build !rp2040 && !rp2350

package platform

import (
	"tinygo.org/x/drivers"

	"ledcode-go/drivers/cat3626"
	"ledcode-go/services/ledhal"
	"ledcode-go/x/i2csim"
)

type hostI2CFactory struct {
	buses map[string]drivers.I2C
}

func (f *hostI2CFactory) ByID(id string) (drivers.I2C, bool) {
	b, ok := f.buses[id]
	return b, ok
}

// DefaultI2CFactory creates host buses "i2c0" and "i2c1", each carrying one
// simulated CAT3626 register file at the default address.
func DefaultI2CFactory() ledhal.I2CBusFactory {
	return &hostI2CFactory{
		buses: map[string]drivers.I2C{
			"i2c0": i2csim.NewBus(i2csim.NewDevice(cat3626.AddressDefault, 4)),
			"i2c1": i2csim.NewBus(i2csim.NewDevice(cat3626.AddressDefault, 4)),
		},
	}
}

// services/ledhal/internal/registry/registry.go
package registry

import (
	"context"
	"fmt"
	"sync"

	"ledcode-go/services/ledhal/internal/ledcore"
	"ledcode-go/types"
)

// BuildInput is passed to a chip builder.
type BuildInput struct {
	Ctx      context.Context
	Buses    ledcore.I2CBusFactory
	DeviceID string
	Type     string
	BusID    string
	Addr     uint16
	Channels []types.LEDChannelConfig
}

// Builder creates a chip adaptor from config and factories.
type Builder interface {
	Build(in BuildInput) (ledcore.Adaptor, error)
}

var (
	mu       sync.RWMutex
	builders = map[string]Builder{}
)

func RegisterBuilder(chipType string, b Builder) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := builders[chipType]; exists {
		panic(fmt.Sprintf("chip builder already registered for type %q", chipType))
	}
	builders[chipType] = b
}

func Lookup(chipType string) (Builder, bool) {
	mu.RLock()
	defer mu.RUnlock()
	b, ok := builders[chipType]
	return b, ok
}

package registry

import (
	"testing"

	"ledcode-go/services/ledhal/internal/ledcore"
)

type nopBuilder struct{}

func (nopBuilder) Build(BuildInput) (ledcore.Adaptor, error) { return nil, nil }

func TestRegisterAndLookup(t *testing.T) {
	RegisterBuilder("testchip", nopBuilder{})

	if _, ok := Lookup("testchip"); !ok {
		t.Fatal("registered builder not found")
	}
	if _, ok := Lookup("nope"); ok {
		t.Fatal("lookup of unregistered type succeeded")
	}
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	RegisterBuilder("dup", nopBuilder{})
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate registration")
		}
	}()
	RegisterBuilder("dup", nopBuilder{})
}

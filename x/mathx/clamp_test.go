package mathx

import "testing"

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 3); got != 3 {
		t.Errorf("Clamp(5,0,3) = %d", got)
	}
	if got := Clamp(-1, 0, 3); got != 0 {
		t.Errorf("Clamp(-1,0,3) = %d", got)
	}
	if got := Clamp(2, 0, 3); got != 2 {
		t.Errorf("Clamp(2,0,3) = %d", got)
	}
	// Swapped bounds.
	if got := Clamp(5, 3, 0); got != 3 {
		t.Errorf("Clamp(5,3,0) = %d", got)
	}
}

func TestBetween(t *testing.T) {
	if !Between(2, 0, 3) || Between(4, 0, 3) || !Between(2, 3, 0) {
		t.Error("Between bounds check failed")
	}
}

func TestMinMax(t *testing.T) {
	if Min(2, 3) != 2 || Max(2, 3) != 3 {
		t.Error("Min/Max failed")
	}
	if Min(2.5, 1.5) != 1.5 || Max("a", "b") != "b" {
		t.Error("Min/Max generic failed")
	}
}

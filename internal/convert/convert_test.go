package convert

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEffectiveReference(t *testing.T) {
	tests := []struct {
		name    string
		refSize float64
		manual  bool
		want    float64
	}{
		{"small serving doubles", 20, false, 40},
		{"threshold serving doubles", 30, false, 60},
		{"large serving kept", 50, false, 50},
		{"manual override never doubles", 20, true, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EffectiveReference(tt.refSize, tt.manual); got != tt.want {
				t.Errorf("EffectiveReference(%v, %v) = %v, want %v", tt.refSize, tt.manual, got, tt.want)
			}
		})
	}
}

func TestServingScaling(t *testing.T) {
	// 8 g per 100 g, 25 g serving, 60 g effective reference.
	perServing := PerServingFrom100(8, 25)
	if !almostEqual(perServing, 2) {
		t.Errorf("PerServingFrom100(8, 25) = %v, want 2", perServing)
	}
	perRef := PerReferenceFrom100(8, 60)
	if !almostEqual(perRef, 4.8) {
		t.Errorf("PerReferenceFrom100(8, 60) = %v, want 4.8", perRef)
	}
	// Rescaling the serving amount must agree with scaling from 100 directly.
	if got := PerReferenceFromServing(perServing, 25, 60); !almostEqual(got, perRef) {
		t.Errorf("PerReferenceFromServing = %v, want %v", got, perRef)
	}
	if got := Per100FromServing(perServing, 25); !almostEqual(got, 8) {
		t.Errorf("Per100FromServing(%v, 25) = %v, want 8", perServing, got)
	}
}

func TestPer100kcal(t *testing.T) {
	got, ok := Per100kcal(3, 150)
	if !ok || !almostEqual(got, 2) {
		t.Errorf("Per100kcal(3, 150) = %v, %v; want 2, true", got, ok)
	}
	if _, ok := Per100kcal(3, 0); ok {
		t.Error("Per100kcal with zero energy must report not applicable")
	}
}

func TestSaturatedFatEnergyPercent(t *testing.T) {
	got, ok := SaturatedFatEnergyPercent(2, 200)
	if !ok || !almostEqual(got, 9) {
		t.Errorf("SaturatedFatEnergyPercent(2, 200) = %v, %v; want 9, true", got, ok)
	}
	if _, ok := SaturatedFatEnergyPercent(2, 0); ok {
		t.Error("zero energy must report not applicable")
	}
}

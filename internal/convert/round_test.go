package convert

import (
	"testing"

	"github.com/siripat/labelcheck/internal/model"
)

func TestRoundEnergy(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  float64
	}{
		{"below 5 drops to zero", 4.9, 0},
		{"mid band rounds to 5", 47, 45},
		{"band edge", 50, 50},
		{"high band rounds to 10", 212, 210},
		{"high band rounds up", 215, 220},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Round(tt.value, model.NutrientEnergy)
			if got.Sentinel != SentinelNone || got.Value != tt.want {
				t.Errorf("Round(%v, energy) = %+v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestRoundFat(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  float64
	}{
		{"below half drops to zero", 0.4, 0},
		{"half steps below 5", 4.8, 5},
		{"half steps round down", 1.2, 1},
		{"whole steps at 5 and above", 6.4, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Round(tt.value, model.NutrientFat)
			if got.Sentinel != SentinelNone || got.Value != tt.want {
				t.Errorf("Round(%v, fat) = %+v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestRoundTransFatSentinel(t *testing.T) {
	got := Round(0.3, model.NutrientTransFat)
	if got.Sentinel != SentinelLessThanHalf {
		t.Fatalf("Round(0.3, trans_fat) = %+v, want less-than-0.5 sentinel", got)
	}
	if got.Display() != "น้อยกว่า 0.5" {
		t.Errorf("Display() = %q", got.Display())
	}
	if got.Exceeds(0) {
		t.Error("sentinel value must not exceed a zero threshold")
	}

	if got := Round(0, model.NutrientTransFat); !got.IsZero() {
		t.Errorf("Round(0, trans_fat) = %+v, want exact zero", got)
	}
}

func TestRoundCholesterol(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		want     float64
		sentinel Sentinel
	}{
		{"below 2 drops to zero", 1.9, 0, SentinelNone},
		{"between 2 and 5 is a sentinel", 3.4, 3.4, SentinelLessThanFive},
		{"5 and above rounds to 5", 13, 15, SentinelNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Round(tt.value, model.NutrientCholesterol)
			if got.Sentinel != tt.sentinel || got.Value != tt.want {
				t.Errorf("Round(%v, cholesterol) = %+v, want {%v %v}", tt.value, got, tt.want, tt.sentinel)
			}
		})
	}
}

func TestRoundProteinFamily(t *testing.T) {
	for _, n := range []model.Nutrient{
		model.NutrientProtein, model.NutrientCarbohydrate,
		model.NutrientFiber, model.NutrientSugar,
	} {
		if got := Round(0.4, n); !got.IsZero() {
			t.Errorf("Round(0.4, %s) = %+v, want zero", n, got)
		}
		if got := Round(0.7, n); got.Sentinel != SentinelLessThanOne {
			t.Errorf("Round(0.7, %s) = %+v, want less-than-1 sentinel", n, got)
		}
		if got := Round(2.6, n); got.Value != 3 || got.Sentinel != SentinelNone {
			t.Errorf("Round(2.6, %s) = %+v, want 3", n, got)
		}
	}
}

func TestRoundSodium(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  float64
	}{
		{"below 5 drops to zero", 4, 0},
		{"low band rounds to 5", 123, 125},
		{"band edge stays in low band", 140, 140},
		{"above 140 rounds to 10", 142, 140},
		{"high band rounds to 10", 386, 390},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Round(tt.value, model.NutrientSodium)
			if got.Value != tt.want {
				t.Errorf("Round(%v, sodium) = %+v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestRoundVitaminPrecision(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  float64
	}{
		{"hundreds round to whole", 123.6, 124},
		{"tens keep one decimal", 12.34, 12.3},
		{"small keep two decimals", 1.234, 1.23},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Round(tt.value, model.NutrientVitaminC)
			if got.Value != tt.want {
				t.Errorf("Round(%v, vitamin_c) = %+v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestRoundIdempotent(t *testing.T) {
	cases := []struct {
		nutrient model.Nutrient
		value    float64
	}{
		{model.NutrientEnergy, 47},
		{model.NutrientEnergy, 212},
		{model.NutrientFat, 4.8},
		{model.NutrientSodium, 142},
		{model.NutrientProtein, 2.6},
		{model.NutrientVitaminC, 12.34},
	}
	for _, c := range cases {
		once := Round(c.value, c.nutrient)
		twice := Round(once.Value, c.nutrient)
		if once != twice {
			t.Errorf("Round(%v, %s): once %+v, twice %+v", c.value, c.nutrient, once, twice)
		}
	}
}

func TestRoundRDIPercent(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  float64
	}{
		{"small keeps one decimal", 3.26, 3.3},
		{"mid band rounds to 5", 17, 15},
		{"mid band rounds up", 18, 20},
		{"band edge", 50, 50},
		{"high band rounds to 10", 52, 50},
		{"high band rounds up", 87, 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoundRDIPercent(tt.value); got != tt.want {
				t.Errorf("RoundRDIPercent(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		name string
		r    Rounded
		want string
	}{
		{"whole number", Rounded{Value: 45}, "45"},
		{"half step", Rounded{Value: 0.5}, "0.5"},
		{"one decimal above ten", Rounded{Value: 12.3}, "12.3"},
		{"sentinel phrase", Rounded{Value: 0.3, Sentinel: SentinelLessThanHalf}, "น้อยกว่า 0.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Display(); got != tt.want {
				t.Errorf("Display() = %q, want %q", got, tt.want)
			}
		})
	}
}

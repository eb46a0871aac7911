package rdi

import (
	"math"
	"testing"

	"github.com/siripat/labelcheck/internal/model"
)

var testTable = Table{
	model.NutrientProtein:  50,
	model.NutrientCalcium:  800,
	model.NutrientVitaminC: 60,
}

func TestPercentOf(t *testing.T) {
	tests := []struct {
		name     string
		nutrient model.Nutrient
		amount   float64
		want     float64
		ok       bool
	}{
		{"protein raw percent", model.NutrientProtein, 10, 20, true},
		{"calcium raw percent", model.NutrientCalcium, 200, 25, true},
		{"no rdi entry", model.NutrientTransFat, 1, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := testTable.PercentOf(tt.nutrient, tt.amount)
			if ok != tt.ok || math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("PercentOf(%s, %v) = %v, %v; want %v, %v", tt.nutrient, tt.amount, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestPercentRoundsVitamins(t *testing.T) {
	// 28/60 of vitamin C is 46.67% raw, which rounds to 45 on the 5-step.
	got, ok := testTable.Percent(model.NutrientVitaminC, 28)
	if !ok || got != 45 {
		t.Errorf("Percent(vitamin_c, 28) = %v, %v; want 45, true", got, ok)
	}
	// Macro percentages stay raw.
	got, ok = testTable.Percent(model.NutrientProtein, 11)
	if !ok || got != 22 {
		t.Errorf("Percent(protein, 11) = %v, %v; want 22, true", got, ok)
	}
}

func TestAmountFromPercent(t *testing.T) {
	got, ok := testTable.AmountFromPercent(model.NutrientCalcium, 15)
	if !ok || got != 120 {
		t.Errorf("AmountFromPercent(calcium, 15) = %v, %v; want 120, true", got, ok)
	}
	if _, ok := testTable.AmountFromPercent(model.NutrientSugar, 10); ok {
		t.Error("AmountFromPercent must fail for nutrients without an RDI")
	}
}

package engine

import (
	"testing"

	"github.com/siripat/labelcheck/internal/model"
)

func TestDisclaimerOnUnlistedReferenceBasis(t *testing.T) {
	eng := New(testTables(t))

	// 13.6 g fat per 100 g rounds to 14, above the 13 g trigger.
	result, err := eng.Evaluate(&model.Submission{
		Product:     "spread",
		ServingSize: 20,
		FoodState:   model.StateSolid,
		InputMethod: model.InputAnalysis,
		Nutrients: map[model.Nutrient]model.Reading{
			model.NutrientFat: amountReading(13.6),
		},
	})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(result.Disclaimers) != 1 {
		t.Fatalf("disclaimers = %+v, want one hit", result.Disclaimers)
	}
	hit := result.Disclaimers[0]
	if hit.Nutrient != model.NutrientFat || hit.ReferenceValue == nil || *hit.ReferenceValue != 14 {
		t.Errorf("hit = %+v, want fat at rounded 14 on the reference side", hit)
	}
	if hit.LabelValue != nil {
		t.Error("unlisted foods must not report a label-side disclaimer value")
	}
}

func TestDisclaimerRoundingDecides(t *testing.T) {
	eng := New(testTables(t))

	// 13.4 g rounds down to 13, which does not strictly exceed the trigger.
	result, err := eng.Evaluate(&model.Submission{
		Product:     "spread",
		ServingSize: 20,
		FoodState:   model.StateSolid,
		InputMethod: model.InputAnalysis,
		Nutrients: map[model.Nutrient]model.Reading{
			model.NutrientFat: amountReading(13.4),
		},
	})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(result.Disclaimers) != 0 {
		t.Errorf("disclaimers = %+v, want none at rounded 13", result.Disclaimers)
	}
}

func TestDisclaimerOnListedLabelServing(t *testing.T) {
	eng := New(testTables(t))

	// 30 g fat per 100 g: the 50 g serving carries a rounded 15 g, above
	// the trigger, while the 40 g reference carries a rounded 12 g.
	result, err := eng.Evaluate(&model.Submission{
		Product:     "snack",
		FoodGroup:   "ขนมขบเคี้ยว",
		ServingSize: 50,
		FoodState:   model.StateSolid,
		InputMethod: model.InputAnalysis,
		Nutrients: map[model.Nutrient]model.Reading{
			model.NutrientFat: amountReading(30),
		},
	})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(result.Disclaimers) != 1 {
		t.Fatalf("disclaimers = %+v, want one hit", result.Disclaimers)
	}
	hit := result.Disclaimers[0]
	if hit.LabelValue == nil || *hit.LabelValue != 15 {
		t.Errorf("hit = %+v, want label-side rounded 15", hit)
	}
	if hit.ReferenceValue != nil {
		t.Errorf("hit = %+v, reference side at rounded 12 must not trigger", hit)
	}
}

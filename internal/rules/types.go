// Package rules loads the regulatory reference tables: claim thresholds,
// disclaimer triggers, reference servings, Thai RDIs, and condition notes.
package rules

import (
	"fmt"
	"strings"

	"github.com/siripat/labelcheck/internal/expr"
	"github.com/siripat/labelcheck/internal/model"
	"github.com/siripat/labelcheck/internal/rdi"
)

// SecondaryThreshold is a structured co-condition on another nutrient,
// checked on every serving basis the claim itself is checked on.
type SecondaryThreshold struct {
	Nutrient model.Nutrient
	Op       expr.Op
	Value    float64
}

func (s SecondaryThreshold) String() string {
	return fmt.Sprintf("%s %s %v", s.Nutrient, s.Op, s.Value)
}

// ClaimRule is one row of a claim table. Threshold expressions are parsed
// eagerly at load time; a malformed expression is kept on the rule as Err
// so the engine can report it per rule instead of rejecting the table.
type ClaimRule struct {
	Nutrient      model.Nutrient
	NutrientLabel string // display text from the table, usually the Thai name
	ClaimText     string

	// State restricts the rule to solid or liquid foods. Empty means the
	// rule applies regardless of state.
	State model.FoodState

	ThresholdText string
	Threshold     expr.Expr

	// RDIThreshold is the second mandatory condition for listed-food rules
	// that carry one, and the per-100 kcal alternative figure for vitamins
	// and minerals of unlisted foods.
	RDIThresholdText string
	RDIThreshold     expr.Expr

	Special []SecondaryThreshold

	// SatFatEnergyMax caps the share of energy from saturated fat, in
	// percent. Nil when the rule carries no energy-share condition.
	SatFatEnergyMax *float64

	ConditionIDs []string

	// Err records a threshold that failed to parse. The engine fails such
	// rules closed and surfaces the error as a note.
	Err error
}

// DisclaimerRule triggers a mandatory disclaiming statement when the
// rounded per-serving amount strictly exceeds the threshold.
type DisclaimerRule struct {
	Nutrient  model.Nutrient
	Threshold float64
	Message   string
}

// ReferenceServing is one entry of the reference serving list. Listed food
// groups without a published amount exist; for those HasAmount is false and
// an evaluation needs an operator-supplied amount.
type ReferenceServing struct {
	FoodGroup string
	Amount    float64
	HasAmount bool
	Unit      string
}

// Tables bundles every loaded reference table for one evaluation run.
type Tables struct {
	Listed      []ClaimRule
	Unlisted    []ClaimRule
	Disclaimers []DisclaimerRule
	Servings    map[string]ReferenceServing
	RDIs        rdi.Table
	Conditions  map[string]string
}

// Serving looks a food group up by its exact table name.
func (t *Tables) Serving(foodGroup string) (ReferenceServing, bool) {
	s, ok := t.Servings[strings.TrimSpace(foodGroup)]
	return s, ok
}

// ConditionTexts resolves condition IDs to their note texts, skipping
// unknown IDs.
func (t *Tables) ConditionTexts(ids []string) []string {
	var texts []string
	for _, id := range ids {
		if text, ok := t.Conditions[id]; ok {
			texts = append(texts, text)
		}
	}
	return texts
}

// parseSecondary parses a structured co-condition like "saturated_fat<=2"
// or its Thai-name form. Only simple named comparisons are accepted here.
func parseSecondary(text string) (SecondaryThreshold, error) {
	e, err := expr.Parse(text)
	if err != nil {
		return SecondaryThreshold{}, err
	}
	c, ok := e.(expr.Compare)
	if !ok || (c.Target != expr.TargetNutrient && c.Target != expr.TargetRaw) {
		return SecondaryThreshold{}, fmt.Errorf("co-condition %q must name a single nutrient", text)
	}
	return SecondaryThreshold{Nutrient: c.Nutrient, Op: c.Op, Value: c.Value}, nil
}

package model

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// InputMethod says which basis the operator entered nutrient amounts on.
type InputMethod string

const (
	// InputAnalysis means amounts come from a laboratory analysis report,
	// per 100 g or 100 ml of the product.
	InputAnalysis InputMethod = "analysis"
	// InputLabel means amounts were read off an existing nutrition label,
	// per one label serving. Label figures are already rounded, so results
	// may be less precise than the analysis method.
	InputLabel InputMethod = "label"
)

// FoodState is the physical state of the food when ready to consume.
type FoodState string

const (
	StateSolid  FoodState = "solid"
	StateLiquid FoodState = "liquid"
)

// Reading is one user-entered nutrient figure. Either an absolute amount
// (in the nutrient's declared unit) or, for vitamins and minerals entered
// from a label, a direct %RDI figure.
type Reading struct {
	Amount     *float64 `yaml:"amount,omitempty" json:"amount,omitempty"`
	RDIPercent *float64 `yaml:"rdi_percent,omitempty" json:"rdi_percent,omitempty"`
}

// UnmarshalYAML accepts either a bare number (an absolute amount) or a
// mapping with amount/rdi_percent keys.
func (r *Reading) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var amount float64
		if err := value.Decode(&amount); err != nil {
			return fmt.Errorf("nutrient amount: %w", err)
		}
		r.Amount = &amount
		return nil
	}

	type plain Reading
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*r = Reading(p)
	return nil
}

// Submission is one product evaluation request: the input contract from the
// form or submission file. All context the engine needs is carried here
// explicitly; evaluation holds no session state.
type Submission struct {
	// Product is a free-text product name used only in the report header.
	Product string `yaml:"product" json:"product"`

	// FoodGroup is the food-group name from the reference-serving list
	// (บัญชีหมายเลข 2). Empty means the product is not on the list and is
	// evaluated on the per-100 g/ml basis instead.
	FoodGroup string `yaml:"food_group,omitempty" json:"food_group,omitempty"`

	// ServingSize is the label serving in grams or milliliters.
	ServingSize float64 `yaml:"serving_size" json:"serving_size"`

	FoodState   FoodState   `yaml:"food_state" json:"food_state"`
	InputMethod InputMethod `yaml:"input_method" json:"input_method"`

	// ManualReference overrides a missing or incorrect reference serving
	// amount. Operator-supplied reference amounts are never doubled, even
	// when at or below 30 g/ml.
	ManualReference *float64 `yaml:"manual_reference,omitempty" json:"manual_reference,omitempty"`

	// PrepGramsPer100ml applies to must-prepare products (e.g. powdered
	// drinks) not on the reference list: grams of powder used to prepare
	// 100 ml ready to consume.
	PrepGramsPer100ml *float64 `yaml:"prep_grams_per_100ml,omitempty" json:"prep_grams_per_100ml,omitempty"`

	// NoAddedSugar marks the product as having no sugar-adding ingredients,
	// enabling the fixed no-added-sugar claim advisory for listed foods.
	NoAddedSugar bool `yaml:"no_added_sugar,omitempty" json:"no_added_sugar,omitempty"`

	Nutrients map[Nutrient]Reading `yaml:"nutrients" json:"nutrients"`
}

// Validate checks the structural invariants the engine assumes. Numeric
// plausibility of individual amounts is the input form's responsibility.
func (s *Submission) Validate() error {
	if s.ServingSize <= 0 {
		return fmt.Errorf("serving_size must be positive, got %v", s.ServingSize)
	}
	switch s.FoodState {
	case StateSolid, StateLiquid:
	default:
		return fmt.Errorf("food_state must be %q or %q, got %q", StateSolid, StateLiquid, s.FoodState)
	}
	switch s.InputMethod {
	case InputAnalysis, InputLabel:
	default:
		return fmt.Errorf("input_method must be %q or %q, got %q", InputAnalysis, InputLabel, s.InputMethod)
	}
	if s.ManualReference != nil && *s.ManualReference <= 0 {
		return fmt.Errorf("manual_reference must be positive, got %v", *s.ManualReference)
	}
	if s.PrepGramsPer100ml != nil && *s.PrepGramsPer100ml <= 0 {
		return fmt.Errorf("prep_grams_per_100ml must be positive, got %v", *s.PrepGramsPer100ml)
	}
	for key, reading := range s.Nutrients {
		if !key.Known() {
			return fmt.Errorf("unknown nutrient %q", key)
		}
		if reading.Amount == nil && reading.RDIPercent == nil {
			return fmt.Errorf("nutrient %q has neither amount nor rdi_percent", key)
		}
		if reading.Amount != nil && *reading.Amount < 0 {
			return fmt.Errorf("nutrient %q amount must not be negative, got %v", key, *reading.Amount)
		}
		if reading.RDIPercent != nil {
			if !key.IsVitaminMineral() {
				return fmt.Errorf("nutrient %q cannot be entered as direct %%RDI", key)
			}
			if s.InputMethod != InputLabel {
				return fmt.Errorf("direct %%RDI input for %q requires the label input method", key)
			}
			if *reading.RDIPercent < 0 {
				return fmt.Errorf("nutrient %q rdi_percent must not be negative, got %v", key, *reading.RDIPercent)
			}
		}
	}
	return nil
}

// Amount returns the absolute amount entered for n, if any. Direct %RDI
// readings have no absolute amount until converted through the RDI table.
func (s *Submission) Amount(n Nutrient) (float64, bool) {
	reading, ok := s.Nutrients[n]
	if !ok || reading.Amount == nil {
		return 0, false
	}
	return *reading.Amount, true
}

// Package engine evaluates claim eligibility and disclaimer triggers for a
// submission against the loaded reference tables.
package engine

import (
	"fmt"

	"github.com/siripat/labelcheck/internal/convert"
	"github.com/siripat/labelcheck/internal/model"
	"github.com/siripat/labelcheck/internal/rdi"
)

// ValueSet holds every entered nutrient on one serving basis. It feeds the
// threshold evaluator; amounts stay unrounded, display rounding is applied
// only where a rule explicitly compares rounded figures.
type ValueSet struct {
	Basis   string // human-readable basis, e.g. "100 g" or "40 g (doubled)"
	Amounts map[model.Nutrient]float64
	rdis    rdi.Table
}

// Amount implements expr.Values.
func (v *ValueSet) Amount(n model.Nutrient) (float64, bool) {
	a, ok := v.Amounts[n]
	return a, ok
}

// RDIPercent implements expr.Values. Vitamin and mineral percentages carry
// the legal display rounding, since thresholds address the declared figure.
func (v *ValueSet) RDIPercent(n model.Nutrient) (float64, bool) {
	a, ok := v.Amounts[n]
	if !ok {
		return 0, false
	}
	return v.rdis.Percent(n, a)
}

// scale returns a copy of v with every amount multiplied by factor.
func (v *ValueSet) scale(basis string, factor float64) *ValueSet {
	amounts := make(map[model.Nutrient]float64, len(v.Amounts))
	for n, a := range v.Amounts {
		amounts[n] = a * factor
	}
	return &ValueSet{Basis: basis, Amounts: amounts, rdis: v.rdis}
}

// SatFatEnergyPercent is the saturated-fat share of energy on this basis.
func (v *ValueSet) SatFatEnergyPercent() (float64, bool) {
	sat, ok := v.Amounts[model.NutrientSaturatedFat]
	if !ok {
		return 0, false
	}
	energy, ok := v.Amounts[model.NutrientEnergy]
	if !ok {
		return 0, false
	}
	return convert.SaturatedFatEnergyPercent(sat, energy)
}

// Sets are the serving bases one evaluation works on. Reference is the
// regulatory comparison basis: the effective reference serving for listed
// foods, 100 g/ml for unlisted ones. Per100kcal is nil when the energy
// figure is absent or zero.
type Sets struct {
	Label      *ValueSet
	Reference  *ValueSet
	Per100     *ValueSet
	Per100kcal *ValueSet

	// Raw carries the amounts exactly as entered, for raw_ references.
	Raw *ValueSet

	// Listed is true when the food group resolved to a reference serving.
	Listed bool
	// ReferenceBasis describes Reference for the report header.
	ReferenceBasis string
}

// BuildSets converts a validated submission into the evaluation bases.
// notes collects non-fatal drops, such as a direct %RDI entry for a
// nutrient without an RDI. A listed food group whose reference serving has
// no published amount and no operator override is a hard error.
func BuildSets(sub *model.Submission, servingAmount *float64, listed bool, rdis rdi.Table) (*Sets, []string, error) {
	var notes []string

	raw := &ValueSet{Basis: "input", Amounts: make(map[model.Nutrient]float64, len(sub.Nutrients)), rdis: rdis}
	for n, reading := range sub.Nutrients {
		switch {
		case reading.Amount != nil:
			raw.Amounts[n] = *reading.Amount
		case reading.RDIPercent != nil:
			amount, ok := rdis.AmountFromPercent(n, *reading.RDIPercent)
			if !ok {
				notes = append(notes, fmt.Sprintf("%s: no RDI reference, direct %%RDI entry dropped", n.ThaiName()))
				continue
			}
			raw.Amounts[n] = amount
		}
	}

	// Normalize the raw inputs onto the 100 g/ml basis first; every other
	// basis derives from it.
	var per100 *ValueSet
	switch sub.InputMethod {
	case model.InputAnalysis:
		per100 = raw.scale("100", 1)
		if sub.PrepGramsPer100ml != nil {
			// Analysis figures for a must-prepare product describe the dry
			// powder; rescale onto 100 ml as consumed.
			per100 = raw.scale("100", *sub.PrepGramsPer100ml/100)
		}
	case model.InputLabel:
		per100 = raw.scale("100", 100/sub.ServingSize)
	default:
		return nil, nil, fmt.Errorf("unsupported input method %q", sub.InputMethod)
	}

	unit := "g"
	if sub.FoodState == model.StateLiquid {
		unit = "ml"
	}
	per100.Basis = "100 " + unit

	label := per100.scale(fmt.Sprintf("%v %s", sub.ServingSize, unit), sub.ServingSize/100)

	sets := &Sets{
		Label:  label,
		Per100: per100,
		Raw:    raw,
		Listed: listed,
	}

	if listed {
		if servingAmount == nil {
			return nil, nil, fmt.Errorf("reference serving for %q has no published amount; a manual reference amount is required", sub.FoodGroup)
		}
		manual := sub.ManualReference != nil
		effective := convert.EffectiveReference(*servingAmount, manual)
		basis := fmt.Sprintf("%v %s", effective, unit)
		if effective != *servingAmount {
			basis = fmt.Sprintf("%v %s (doubled from %v %s)", effective, unit, *servingAmount, unit)
		}
		sets.Reference = per100.scale(basis, effective/100)
		sets.ReferenceBasis = basis
	} else {
		sets.Reference = per100
		sets.ReferenceBasis = per100.Basis
	}

	// The amount-to-energy ratio is basis independent, so any basis can
	// seed the 100 kcal normalization.
	if energy, ok := per100.Amounts[model.NutrientEnergy]; ok && energy > 0 {
		sets.Per100kcal = per100.scale("100 kcal", 100/energy)
	}

	return sets, notes, nil
}

// Package rdi computes percentages of the Thai Recommended Daily Intake.
package rdi

import (
	"github.com/siripat/labelcheck/internal/convert"
	"github.com/siripat/labelcheck/internal/model"
)

// Table maps each nutrient to its Thai RDI in the nutrient's declared unit.
// Loaded from the reference table file; nutrients without an RDI (trans fat,
// sugar) are simply absent.
type Table map[model.Nutrient]float64

// PercentOf returns the raw, unrounded %RDI for amount of n. The second
// return is false when n has no RDI.
func (t Table) PercentOf(n model.Nutrient, amount float64) (float64, bool) {
	ref, ok := t[n]
	if !ok || ref <= 0 {
		return 0, false
	}
	return amount / ref * 100, true
}

// Percent is PercentOf with the display rounding applied for vitamins and
// minerals. Macro nutrient percentages are returned raw; their display
// rounding is a rendering concern.
func (t Table) Percent(n model.Nutrient, amount float64) (float64, bool) {
	pct, ok := t.PercentOf(n, amount)
	if !ok {
		return 0, false
	}
	if n.IsVitaminMineral() {
		return convert.RoundRDIPercent(pct), true
	}
	return pct, true
}

// AmountFromPercent converts a direct %RDI entry back to an absolute amount
// in the nutrient's unit. Used for label-method vitamin and mineral input.
func (t Table) AmountFromPercent(n model.Nutrient, percent float64) (float64, bool) {
	ref, ok := t[n]
	if !ok || ref <= 0 {
		return 0, false
	}
	return percent / 100 * ref, true
}

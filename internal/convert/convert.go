package convert

// EffectiveReference resolves the serving amount reference-side figures are
// computed on. Listed reference servings of 30 g/ml or less are doubled;
// operator-supplied amounts are taken as entered.
func EffectiveReference(refSize float64, manual bool) float64 {
	if manual || refSize > 30 {
		return refSize
	}
	return refSize * 2
}

// PerServingFrom100 scales a per-100 g/ml amount to the label serving.
func PerServingFrom100(per100, servingSize float64) float64 {
	return per100 * servingSize / 100
}

// PerReferenceFrom100 scales a per-100 g/ml amount to the effective
// reference serving.
func PerReferenceFrom100(per100, refSize float64) float64 {
	return per100 * refSize / 100
}

// PerReferenceFromServing rescales a per-label-serving amount onto the
// effective reference serving.
func PerReferenceFromServing(perServing, servingSize, refSize float64) float64 {
	return perServing / servingSize * refSize
}

// Per100FromServing rescales a per-label-serving amount onto 100 g/ml.
func Per100FromServing(perServing, servingSize float64) float64 {
	return perServing / servingSize * 100
}

// Per100kcal normalizes an amount to a 100 kcal energy basis. Both the
// amount and the energy must be on the same serving basis. Returns false
// when the energy is zero or negative, in which case the per-100 kcal
// pathway does not apply.
func Per100kcal(amount, energy float64) (float64, bool) {
	if energy <= 0 {
		return 0, false
	}
	return amount / energy * 100, true
}

// SaturatedFatEnergyPercent is the share of total energy contributed by
// saturated fat, at 9 kcal per gram. Returns false when energy is zero or
// negative.
func SaturatedFatEnergyPercent(satFatGrams, energy float64) (float64, bool) {
	if energy <= 0 {
		return 0, false
	}
	return satFatGrams * 9 / energy * 100, true
}

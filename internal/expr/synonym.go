package expr

import (
	"strings"

	"github.com/siripat/labelcheck/internal/model"
)

// synonyms maps substring markers found in rule-table text to nutrients.
// Ordered so that the more specific fat variants are checked before plain
// fat, which would otherwise shadow them.
var synonyms = []struct {
	marker   string
	nutrient model.Nutrient
}{
	{"อิ่มตัว", model.NutrientSaturatedFat},
	{"saturated", model.NutrientSaturatedFat},
	{"ทรานส์", model.NutrientTransFat},
	{"trans", model.NutrientTransFat},
	{"คอเลสเตอรอล", model.NutrientCholesterol},
	{"cholesterol", model.NutrientCholesterol},
	{"พลังงาน", model.NutrientEnergy},
	{"energy", model.NutrientEnergy},
	{"โปรตีน", model.NutrientProtein},
	{"protein", model.NutrientProtein},
	{"น้ำตาล", model.NutrientSugar},
	{"sugar", model.NutrientSugar},
	{"ใยอาหาร", model.NutrientFiber},
	{"fiber", model.NutrientFiber},
	{"fibre", model.NutrientFiber},
	{"โซเดียม", model.NutrientSodium},
	{"sodium", model.NutrientSodium},
	{"โพแทสเซียม", model.NutrientPotassium},
	{"potassium", model.NutrientPotassium},
	{"คาร์โบไฮเดรต", model.NutrientCarbohydrate},
	{"carbohydrate", model.NutrientCarbohydrate},
}

// ResolveNutrient maps a free-text nutrient name from a rule table to its
// canonical nutrient. Exact canonical keys win; otherwise substring markers
// decide. Plain fat matches only when no saturated or trans marker is
// present, since Thai rule text writes those as qualified fat.
func ResolveNutrient(name string) (model.Nutrient, bool) {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "" {
		return "", false
	}
	if n, ok := model.ParseNutrient(s); ok {
		return n, true
	}
	for _, syn := range synonyms {
		if strings.Contains(s, syn.marker) {
			return syn.nutrient, true
		}
	}
	if strings.Contains(s, "ไขมัน") || strings.Contains(s, "fat") {
		return model.NutrientFat, true
	}
	return "", false
}

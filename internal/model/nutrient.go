package model

// Nutrient identifies a nutrient from the closed vocabulary used by the
// Thai nutrition labeling notification. Values match the keys used in the
// reference rule tables.
type Nutrient string

const (
	NutrientEnergy       Nutrient = "energy"
	NutrientFat          Nutrient = "fat"
	NutrientSaturatedFat Nutrient = "saturated_fat"
	NutrientTransFat     Nutrient = "trans_fat"
	NutrientCholesterol  Nutrient = "cholesterol"
	NutrientProtein      Nutrient = "protein"
	NutrientCarbohydrate Nutrient = "carbohydrate"
	NutrientFiber        Nutrient = "fiber"
	NutrientSugar        Nutrient = "sugar"
	NutrientSodium       Nutrient = "sodium"
	NutrientPotassium    Nutrient = "potassium"

	NutrientCalcium         Nutrient = "calcium"
	NutrientPhosphorus      Nutrient = "phosphorus"
	NutrientMagnesium       Nutrient = "magnesium"
	NutrientIron            Nutrient = "iron"
	NutrientIodine          Nutrient = "iodine"
	NutrientZinc            Nutrient = "zinc"
	NutrientSelenium        Nutrient = "selenium"
	NutrientCopper          Nutrient = "copper"
	NutrientManganese       Nutrient = "manganese"
	NutrientMolybdenum      Nutrient = "molybdenum"
	NutrientChromium        Nutrient = "chromium"
	NutrientChloride        Nutrient = "chloride"
	NutrientVitaminA        Nutrient = "vitamin_a"
	NutrientVitaminD        Nutrient = "vitamin_d"
	NutrientVitaminE        Nutrient = "vitamin_e"
	NutrientVitaminK        Nutrient = "vitamin_k"
	NutrientVitaminB1       Nutrient = "vitamin_b1"
	NutrientVitaminB2       Nutrient = "vitamin_b2"
	NutrientNiacin          Nutrient = "niacin"
	NutrientPantothenicAcid Nutrient = "pantothenic_acid"
	NutrientVitaminB6       Nutrient = "vitamin_b6"
	NutrientBiotin          Nutrient = "biotin"
	NutrientFolate          Nutrient = "folate"
	NutrientVitaminB12      Nutrient = "vitamin_b12"
	NutrientVitaminC        Nutrient = "vitamin_c"
)

// nutrientInfo carries the per-nutrient display metadata from the reference
// tables: Thai name and the unit amounts are declared in.
type nutrientInfo struct {
	thai    string
	unit    string
	vitamin bool
}

var nutrientTable = map[Nutrient]nutrientInfo{
	NutrientEnergy:       {"พลังงาน", "kcal", false},
	NutrientFat:          {"ไขมันทั้งหมด", "g", false},
	NutrientSaturatedFat: {"ไขมันอิ่มตัว", "g", false},
	NutrientTransFat:     {"ไขมันทรานส์", "g", false},
	NutrientCholesterol:  {"คอเลสเตอรอล", "mg", false},
	NutrientProtein:      {"โปรตีน", "g", false},
	NutrientCarbohydrate: {"คาร์โบไฮเดรต", "g", false},
	NutrientFiber:        {"ใยอาหาร", "g", false},
	NutrientSugar:        {"น้ำตาล", "g", false},
	NutrientSodium:       {"โซเดียม", "mg", false},
	NutrientPotassium:    {"โพแทสเซียม", "mg", false},

	NutrientCalcium:         {"แคลเซียม", "mg", true},
	NutrientPhosphorus:      {"ฟอสฟอรัส", "mg", true},
	NutrientMagnesium:       {"แมกนีเซียม", "mg", true},
	NutrientIron:            {"เหล็ก", "mg", true},
	NutrientIodine:          {"ไอโอดีน", "µg", true},
	NutrientZinc:            {"สังกะสี", "mg", true},
	NutrientSelenium:        {"ซีลีเนียม", "µg", true},
	NutrientCopper:          {"ทองแดง", "µg", true},
	NutrientManganese:       {"แมงกานีส", "mg", true},
	NutrientMolybdenum:      {"โมลิบดีนัม", "µg", true},
	NutrientChromium:        {"โครเมียม", "µg", true},
	NutrientChloride:        {"คลอไรด์", "mg", true},
	NutrientVitaminA:        {"วิตามินเอ", "µg RAE", true},
	NutrientVitaminD:        {"วิตามินดี", "µg", true},
	NutrientVitaminE:        {"วิตามินอี", "mg α-TE", true},
	NutrientVitaminK:        {"วิตามินเค", "µg", true},
	NutrientVitaminB1:       {"วิตามินบี1/ไทอามีน", "mg", true},
	NutrientVitaminB2:       {"วิตามินบี2/ไรโบฟลาวิน", "mg", true},
	NutrientNiacin:          {"ไนอะซิน", "mg NE", true},
	NutrientPantothenicAcid: {"กรดแพนโททีนิก", "mg", true},
	NutrientVitaminB6:       {"วิตามินบี6", "mg", true},
	NutrientBiotin:          {"ไบโอติน", "µg", true},
	NutrientFolate:          {"โฟเลต", "µg DFE", true},
	NutrientVitaminB12:      {"วิตามินบี12", "µg", true},
	NutrientVitaminC:        {"วิตามินซี", "mg", true},
}

// ParseNutrient resolves a canonical nutrient key (e.g. "saturated_fat").
// It does not attempt synonym matching; that lives with the threshold parser.
func ParseNutrient(key string) (Nutrient, bool) {
	n := Nutrient(key)
	_, ok := nutrientTable[n]
	return n, ok
}

// Known reports whether n belongs to the closed vocabulary.
func (n Nutrient) Known() bool {
	_, ok := nutrientTable[n]
	return ok
}

// IsVitaminMineral reports whether n is a vitamin or mineral, which follow
// the %RDI-based claim thresholds and the 5/10-step percent rounding.
func (n Nutrient) IsVitaminMineral() bool {
	return nutrientTable[n].vitamin
}

// ThaiName returns the Thai display name from the reference tables, or the
// key itself for unknown nutrients.
func (n Nutrient) ThaiName() string {
	if info, ok := nutrientTable[n]; ok {
		return info.thai
	}
	return string(n)
}

// Unit returns the unit amounts of this nutrient are declared in.
func (n Nutrient) Unit() string {
	if info, ok := nutrientTable[n]; ok {
		return info.unit
	}
	return ""
}

// Nutrients returns the full closed vocabulary in label order: the macro
// nutrients first, then vitamins and minerals.
func Nutrients() []Nutrient {
	return []Nutrient{
		NutrientEnergy, NutrientFat, NutrientSaturatedFat, NutrientTransFat,
		NutrientCholesterol, NutrientProtein, NutrientCarbohydrate, NutrientFiber,
		NutrientSugar, NutrientSodium, NutrientPotassium,
		NutrientCalcium, NutrientPhosphorus, NutrientMagnesium, NutrientIron,
		NutrientIodine, NutrientZinc, NutrientSelenium, NutrientCopper,
		NutrientManganese, NutrientMolybdenum, NutrientChromium, NutrientChloride,
		NutrientVitaminA, NutrientVitaminD, NutrientVitaminE, NutrientVitaminK,
		NutrientVitaminB1, NutrientVitaminB2, NutrientNiacin, NutrientPantothenicAcid,
		NutrientVitaminB6, NutrientBiotin, NutrientFolate, NutrientVitaminB12,
		NutrientVitaminC,
	}
}

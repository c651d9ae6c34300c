package utils

import "strings"

// Nutrient catalog: the 34 tracked nutrients with canonical names, units,
// EFSA-based default daily requirements, hard safety bounds and per-nutrient
// adjustment sizes. All tables are fixed reference data built once at init.

const NutrientCount = 34

// EnergyNutrientID is the catalog id for Energy (kcal), the row exercise
// calories are subtracted from.
const EnergyNutrientID uint = 1

type nutrientInfo struct {
	Name string
	Unit string
}

var nutrientTable = map[uint]nutrientInfo{
	1:  {"Energy", "kcal"},
	2:  {"Protein", "g"},
	3:  {"Carbohydrates", "g"},
	4:  {"Fiber", "g"},
	5:  {"Total Fat", "g"},
	6:  {"Saturated Fat", "g"},
	7:  {"Monounsaturated Fat", "g"},
	8:  {"Polyunsaturated Fat", "g"},
	9:  {"Cholesterol", "mg"},
	10: {"Sugars", "g"},
	11: {"Added Sugars", "g"},
	12: {"Water", "mL"},
	13: {"Vitamin A", "µg"},
	14: {"Vitamin C", "mg"},
	15: {"Vitamin D", "µg"},
	16: {"Vitamin E", "mg"},
	17: {"Vitamin K", "µg"},
	18: {"Thiamin (B1)", "mg"},
	19: {"Riboflavin (B2)", "mg"},
	20: {"Niacin (B3)", "mg"},
	21: {"Vitamin B6", "mg"},
	22: {"Folate (B9)", "µg"},
	23: {"Vitamin B12", "µg"},
	24: {"Calcium", "mg"},
	25: {"Iron", "mg"},
	26: {"Magnesium", "mg"},
	27: {"Phosphorus", "mg"},
	28: {"Potassium", "mg"},
	29: {"Sodium", "mg"},
	30: {"Zinc", "mg"},
	31: {"Copper", "mg"},
	32: {"Manganese", "mg"},
	33: {"Selenium", "µg"},
	34: {"Iodine", "µg"},
}

// nutrientIDByName is the lowercased reverse index used by ResolveNutrientID.
var nutrientIDByName = func() map[string]uint {
	m := make(map[string]uint, len(nutrientTable))
	for id, info := range nutrientTable {
		m[strings.ToLower(info.Name)] = id
	}
	return m
}()

// NutrientName returns the canonical name for an id, or "" for unknown ids.
func NutrientName(nutrientID uint) string {
	return nutrientTable[nutrientID].Name
}

// NutrientUnit returns the catalog unit for an id, or "" for unknown ids.
func NutrientUnit(nutrientID uint) string {
	return nutrientTable[nutrientID].Unit
}

// NutrientNames lists the 34 canonical names in id order.
func NutrientNames() []string {
	names := make([]string, 0, NutrientCount)
	for id := uint(1); id <= NutrientCount; id++ {
		names = append(names, nutrientTable[id].Name)
	}
	return names
}

// ResolveNutrientID maps a free-form nutrient name to its catalog id.
// Matching is exact after trimming and lowercasing; parenthetical forms like
// "Thiamin (B1)" must be given verbatim. Returns nil for unknown names.
func ResolveNutrientID(name string) *uint {
	id, ok := nutrientIDByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil
	}
	return &id
}

// RecommendedQuantity returns the EFSA-based default daily requirement.
// A handful of nutrients vary by sex or age; everything else is flat.
// Unknown ids return 0.
func RecommendedQuantity(nutrientID uint, sex string, age int) float64 {
	female := strings.EqualFold(strings.TrimSpace(sex), "female")

	switch nutrientID {
	case 2: // Protein (g)
		if female {
			return 46
		}
		return 56
	case 4: // Fiber (g)
		if age < 18 {
			return 25
		}
		return 30
	case 14: // Vitamin C (mg)
		if female {
			return 75
		}
		return 90
	case 24: // Calcium (mg)
		if age < 18 {
			return 1300
		}
		return 1000
	case 25: // Iron (mg)
		if female && age >= 19 && age <= 50 {
			return 18
		}
		return 8
	}

	return flatRecommended[nutrientID]
}

var flatRecommended = map[uint]float64{
	1:  2500, // Energy (kcal)
	3:  130,  // Carbohydrates (g)
	5:  70,   // Total Fat (g)
	6:  20,   // Saturated Fat (g)
	7:  20,   // Monounsaturated Fat (g)
	8:  17,   // Polyunsaturated Fat (g)
	9:  300,  // Cholesterol (mg)
	10: 50,   // Sugars (g)
	11: 25,   // Added Sugars (g)
	12: 2000, // Water (mL)
	13: 900,  // Vitamin A (µg)
	15: 15,   // Vitamin D (µg)
	16: 15,   // Vitamin E (mg)
	17: 120,  // Vitamin K (µg)
	18: 1.2,  // Thiamin (B1) (mg)
	19: 1.3,  // Riboflavin (B2) (mg)
	20: 16,   // Niacin (B3) (mg)
	21: 1.3,  // Vitamin B6 (mg)
	22: 400,  // Folate (B9) (µg)
	23: 2.4,  // Vitamin B12 (µg)
	26: 400,  // Magnesium (mg)
	27: 700,  // Phosphorus (mg)
	28: 4700, // Potassium (mg)
	29: 1500, // Sodium (mg)
	30: 11,   // Zinc (mg)
	31: 0.9,  // Copper (mg)
	32: 2.3,  // Manganese (mg)
	33: 55,   // Selenium (µg)
	34: 150,  // Iodine (µg)
}

type safetyRange struct {
	Min float64
	Max float64
}

// Hard floors/ceilings per nutrient, based on RDA and tolerable upper limits.
// Nutrients without an entry fall back to (0.1, 1000).
var safetyTable = map[uint]safetyRange{
	1:  {1200, 4000}, // Energy (kcal)
	2:  {10, 200},    // Protein (g)
	3:  {50, 500},    // Carbohydrates (g)
	4:  {10, 50},     // Fiber (g)
	5:  {20, 150},    // Total Fat (g)
	6:  {5, 40},      // Saturated Fat (g)
	7:  {5, 60},      // Monounsaturated Fat (g)
	8:  {3, 40},      // Polyunsaturated Fat (g)
	9:  {50, 600},    // Cholesterol (mg)
	10: {10, 120},    // Sugars (g)
	11: {5, 50},      // Added Sugars (g)
	12: {1000, 5000}, // Water (mL)
	13: {300, 3000},  // Vitamin A (µg)
	14: {30, 2000},   // Vitamin C (mg)
	15: {5, 100},     // Vitamin D (µg)
	16: {6, 1000},    // Vitamin E (mg)
	17: {30, 1000},   // Vitamin K (µg)
	18: {0.5, 50},    // Thiamin (B1) (mg)
	19: {0.6, 50},    // Riboflavin (B2) (mg)
	20: {6, 35},      // Niacin (B3) (mg)
	21: {0.5, 100},   // Vitamin B6 (mg)
	22: {150, 1000},  // Folate (B9) (µg)
	23: {1, 3000},    // Vitamin B12 (µg)
	24: {400, 2500},  // Calcium (mg)
	25: {5, 45},      // Iron (mg)
	26: {150, 400},   // Magnesium (mg)
	27: {400, 4000},  // Phosphorus (mg)
	28: {1600, 4700}, // Potassium (mg)
	29: {500, 2300},  // Sodium (mg)
	30: {3, 40},      // Zinc (mg)
	31: {0.4, 10},    // Copper (mg)
	32: {1, 11},      // Manganese (mg)
	33: {20, 400},    // Selenium (µg)
	34: {70, 1100},   // Iodine (µg)
}

// SafetyBounds returns the minimum and maximum safe daily amount for a nutrient.
func SafetyBounds(nutrientID uint) (min, max float64) {
	if r, ok := safetyTable[nutrientID]; ok {
		return r.Min, r.Max
	}
	return 0.1, 1000
}

// ClampToSafetyBounds forces a quantity inside the nutrient's safe range.
func ClampToSafetyBounds(quantity float64, nutrientID uint) float64 {
	min, max := SafetyBounds(nutrientID)
	if quantity < min {
		return min
	}
	if quantity > max {
		return max
	}
	return quantity
}

// Fractional nudge applied by bulk adjustments. Macronutrients move little,
// water-soluble vitamins tolerate bigger steps. Unlisted ids use 0.15.
var adjustmentTable = map[uint]float64{
	1:  0.10, // Energy
	2:  0.15, // Protein
	3:  0.10, // Carbohydrates
	5:  0.10, // Total Fat
	13: 0.15, // Vitamin A
	14: 0.20, // Vitamin C
	15: 0.20, // Vitamin D
	16: 0.15, // Vitamin E
	17: 0.15, // Vitamin K
	18: 0.15, // Thiamin (B1)
	19: 0.15, // Riboflavin (B2)
	20: 0.15, // Niacin (B3)
	21: 0.15, // Vitamin B6
	22: 0.25, // Folate (B9)
	23: 0.25, // Vitamin B12
	24: 0.15, // Calcium
	25: 0.20, // Iron
	26: 0.15, // Magnesium
	30: 0.20, // Zinc
}

// AdjustmentPercentage returns the fractional step used when nudging a
// requirement up or down.
func AdjustmentPercentage(nutrientID uint) float64 {
	if pct, ok := adjustmentTable[nutrientID]; ok {
		return pct
	}
	return 0.15
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNutrientNamesCoversWholeCatalog(t *testing.T) {
	names := NutrientNames()
	require.Len(t, names, NutrientCount)
	assert.Equal(t, "Energy", names[0])
	assert.Equal(t, "Protein", names[1])

	seen := make(map[string]bool, len(names))
	for _, name := range names {
		assert.NotEmpty(t, name)
		assert.False(t, seen[name], "duplicate catalog name %q", name)
		seen[name] = true
	}
}

func TestResolveNutrientID(t *testing.T) {
	tests := []struct {
		name string
		want *uint
	}{
		{"Iron", uintPtr(t, "Iron")},
		{"iron", uintPtr(t, "Iron")},
		{"  Vitamin C  ", uintPtr(t, "Vitamin C")},
		{"Thiamin (B1)", uintPtr(t, "Thiamin (B1)")},
		{"Unobtainium", nil},
		{"", nil},
	}
	for _, tt := range tests {
		got := ResolveNutrientID(tt.name)
		if tt.want == nil {
			assert.Nil(t, got, "name %q", tt.name)
		} else {
			require.NotNil(t, got, "name %q", tt.name)
			assert.Equal(t, *tt.want, *got, "name %q", tt.name)
		}
	}
}

func uintPtr(t *testing.T, canonical string) *uint {
	t.Helper()
	id := ResolveNutrientID(canonical)
	require.NotNil(t, id, "catalog must contain %q", canonical)
	return id
}

func TestRecommendedQuantityVariants(t *testing.T) {
	protein := *ResolveNutrientID("Protein")
	assert.Equal(t, 56.0, RecommendedQuantity(protein, "male", 30))
	assert.Equal(t, 46.0, RecommendedQuantity(protein, "female", 30))

	iron := *ResolveNutrientID("Iron")
	assert.Equal(t, 18.0, RecommendedQuantity(iron, "female", 30))
	assert.Equal(t, 8.0, RecommendedQuantity(iron, "female", 60))
	assert.Equal(t, 8.0, RecommendedQuantity(iron, "male", 30))

	calcium := *ResolveNutrientID("Calcium")
	assert.Equal(t, 1300.0, RecommendedQuantity(calcium, "male", 16))
	assert.Equal(t, 1000.0, RecommendedQuantity(calcium, "male", 25))
}

func TestRecommendedQuantityUnknownNutrientIsZero(t *testing.T) {
	assert.Zero(t, RecommendedQuantity(999, "male", 30))
}

// Every default must already sit inside its own safety bounds, for either
// sex and across representative ages. Otherwise a freshly registered user
// would start out "unsafe".
func TestDefaultsLieWithinSafetyBounds(t *testing.T) {
	sexes := []string{"male", "female"}
	ages := []int{16, 19, 30, 51, 70}

	for id := uint(1); id <= NutrientCount; id++ {
		min, max := SafetyBounds(id)
		require.Less(t, min, max, "nutrient %d bounds inverted", id)
		for _, sex := range sexes {
			for _, age := range ages {
				q := RecommendedQuantity(id, sex, age)
				assert.GreaterOrEqual(t, q, min, "nutrient %d (%s, %d) below lower bound", id, sex, age)
				assert.LessOrEqual(t, q, max, "nutrient %d (%s, %d) above upper bound", id, sex, age)
			}
		}
	}
}

func TestClampToSafetyBounds(t *testing.T) {
	energy := *ResolveNutrientID("Energy")
	min, max := SafetyBounds(energy)

	assert.Equal(t, max, ClampToSafetyBounds(max*2, energy))
	assert.Equal(t, min, ClampToSafetyBounds(min/2, energy))
	assert.Equal(t, 2000.0, ClampToSafetyBounds(2000, energy))
}

func TestAdjustmentPercentage(t *testing.T) {
	assert.Equal(t, 0.25, AdjustmentPercentage(*ResolveNutrientID("Folate (B9)")))
	assert.Equal(t, 0.20, AdjustmentPercentage(*ResolveNutrientID("Vitamin C")))
	assert.Equal(t, 0.10, AdjustmentPercentage(*ResolveNutrientID("Energy")))
	assert.Equal(t, 0.15, AdjustmentPercentage(999))
}

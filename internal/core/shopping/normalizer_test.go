package shopping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCategorySynonyms(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"vegetable", CategoryVegetables},
		{"vegetables", CategoryVegetables},
		{"veg", CategoryVegetables},
		{"protein", CategoryProteins},
		{"proteins", CategoryProteins},
		{"meat", CategoryProteins},
		{"grain", CategoryGrains},
		{"grains", CategoryGrains},
		{"carb", CategoryGrains},
		{"carbs", CategoryGrains},
		{"dairy", CategoryDairy},
		{"dairy products", CategoryDairy},
		{"spice", CategorySpices},
		{"spices", CategorySpices},
		{"seasoning", CategorySpices},
		{"seasonings", CategorySpices},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeCategory(tt.raw), "raw=%q", tt.raw)
	}
}

func TestNormalizeCategoryCaseInsensitive(t *testing.T) {
	assert.Equal(t, CategoryVegetables, NormalizeCategory("VEGETABLES"))
	assert.Equal(t, CategoryProteins, NormalizeCategory("Meat"))
	assert.Equal(t, CategoryDairy, NormalizeCategory("Dairy Products"))
	assert.Equal(t, CategorySpices, NormalizeCategory("SeAsOnInG"))
}

func TestNormalizeCategoryTrimsWhitespace(t *testing.T) {
	assert.Equal(t, CategoryVegetables, NormalizeCategory("  veg  "))
	assert.Equal(t, CategoryGrains, NormalizeCategory("\tcarbs\n"))
}

func TestNormalizeCategoryEmptyFallsBackToOther(t *testing.T) {
	assert.Equal(t, CategoryOther, NormalizeCategory(""))
	assert.Equal(t, CategoryOther, NormalizeCategory("   "))
	assert.Equal(t, CategoryOther, NormalizeCategory("\t\n"))
}

func TestNormalizeCategoryUnknownCapitalized(t *testing.T) {
	assert.Equal(t, "Nuts", NormalizeCategory("nuts"))
	assert.Equal(t, "Frozen foods", NormalizeCategory("frozen foods"))
	// 首字母已是大寫時維持原樣
	assert.Equal(t, "Beverages", NormalizeCategory("Beverages"))
}

func TestNormalizeCategoryIdempotent(t *testing.T) {
	// 標準分類標籤本身是不動點，重複正規化不會改變結果
	for _, canonical := range []string{
		CategoryVegetables,
		CategoryProteins,
		CategoryGrains,
		CategoryDairy,
		CategorySpices,
		CategoryOther,
	} {
		assert.Equal(t, canonical, NormalizeCategory(canonical))
		assert.Equal(t, canonical, NormalizeCategory(NormalizeCategory(canonical)))
	}
}

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, "bell peppers", normalizeKey("  Bell Peppers "))
	assert.Equal(t, "tomato", normalizeKey("TOMATO"))
	assert.Equal(t, "", normalizeKey("   "))
}

package shopping

import (
	"strings"
	"unicode"
)

// 標準分類
const (
	CategoryVegetables = "Vegetables"
	CategoryProteins   = "Proteins"
	CategoryGrains     = "Grains"
	CategoryDairy      = "Dairy"
	CategorySpices     = "Spices & Seasonings"
	CategoryOther      = "Other"
)

// 同義詞對照表（比對一律使用小寫）
var categorySynonyms = map[string]string{
	"vegetable":  CategoryVegetables,
	"vegetables": CategoryVegetables,
	"veg":        CategoryVegetables,

	"protein":  CategoryProteins,
	"proteins": CategoryProteins,
	"meat":     CategoryProteins,

	"grain":  CategoryGrains,
	"grains": CategoryGrains,
	"carb":   CategoryGrains,
	"carbs":  CategoryGrains,

	"dairy":          CategoryDairy,
	"dairy products": CategoryDairy,

	"spice":      CategorySpices,
	"spices":     CategorySpices,
	"seasoning":  CategorySpices,
	"seasonings": CategorySpices,
}

// NormalizeCategory 將自由文字分類標籤對應到標準分類
// 空白或空字串回傳 "Other"；無法辨識的標籤只把首字母轉大寫，
// 其餘維持原樣（例如 "nuts" → "Nuts"）
func NormalizeCategory(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return CategoryOther
	}

	if canonical, ok := categorySynonyms[strings.ToLower(trimmed)]; ok {
		return canonical
	}

	return capitalizeFirst(trimmed)
}

// normalizeKey 產生食材合併鍵：去前後空白並轉小寫
func normalizeKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// capitalizeFirst 只將首字母轉為大寫
func capitalizeFirst(s string) string {
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

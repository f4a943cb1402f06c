package common

import (
	"fmt"
	"strings"
	"time"
)

// DateKeyFormat 日期鍵格式（與行動端 yyyyMMdd 一致）
const DateKeyFormat = "20060102"

// 用餐時段
const (
	MealTimeBreakfast = "breakfast"
	MealTimeLunch     = "lunch"
	MealTimeDinner    = "dinner"
)

// Ingredient 食材
// Amount 為寬鬆型別：來源資料可能是數字、字串或 null，
// 解析規則見 shopping.ParseAmount
type Ingredient struct {
	Name     string      `json:"name"`
	Amount   interface{} `json:"amount"`
	Unit     string      `json:"unit"`
	Category string      `json:"category,omitempty"`
}

// Recipe 食譜
type Recipe struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	ImageURL     string       `json:"image_url,omitempty"`
	Duration     string       `json:"duration,omitempty"`
	Rating       float32      `json:"rating,omitempty"`
	Ingredients  []Ingredient `json:"ingredients,omitempty"`
	Instructions []string     `json:"instructions,omitempty"`
	Category     string       `json:"category,omitempty"`
}

// MealPlan 使用者在某日、某時段排定的一道食譜
// Recipe 為內嵌快照，可能為 nil（此時該筆不提供食材資料）
type MealPlan struct {
	ID          string  `json:"id"`
	RecipeName  string  `json:"recipe_name"`
	ImageURL    string  `json:"image_url,omitempty"`
	CookingTime string  `json:"cooking_time,omitempty"`
	MealTime    string  `json:"meal_time"`
	Date        string  `json:"date"`
	UserID      string  `json:"user_id"`
	Recipe      *Recipe `json:"recipe,omitempty"`
	Timestamp   int64   `json:"timestamp"`
}

// ShoppingItem 購物清單項目
type ShoppingItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
	Unit      string  `json:"unit"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
	Purchased bool    `json:"purchased"`
	StoreID   string  `json:"store_id,omitempty"`
}

// Store 雜貨店
type Store struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address,omitempty"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
	StoreType string  `json:"store_type,omitempty"`
	Notes     string  `json:"notes,omitempty"`
}

// NormalizeMealTime 驗證並正規化用餐時段（不分大小寫）
func NormalizeMealTime(raw string) (string, error) {
	mt := strings.ToLower(strings.TrimSpace(raw))
	switch mt {
	case MealTimeBreakfast, MealTimeLunch, MealTimeDinner:
		return mt, nil
	}
	return "", fmt.Errorf("invalid meal time: %q", raw)
}

// ParseDateKey 解析 yyyyMMdd 日期鍵
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.Parse(DateKeyFormat, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	return t, nil
}

// FormatDateKey 以 yyyyMMdd 格式化日期
func FormatDateKey(t time.Time) string {
	return t.Format(DateKeyFormat)
}

// FormatIngredients 格式化食材列表（記錄與除錯用）
func FormatIngredients(ingredients []Ingredient) string {
	var sb strings.Builder
	for _, ing := range ingredients {
		sb.WriteString(fmt.Sprintf("- %s: %v %s (%s)\n",
			ing.Name, ing.Amount, ing.Unit, ing.Category))
	}
	return sb.String()
}

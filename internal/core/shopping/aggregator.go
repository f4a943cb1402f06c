package shopping

import (
	"fmt"

	"mealmate-api/internal/pkg/common"

	"go.uber.org/zap"
)

// AggregatedIngredient 同名食材（去除大小寫與前後空白差異）的合併結果
// 同一個 key 在一次彙總中只會有一筆；後到的食材只累加 TotalAmount，
// 不覆寫 Unit 與 Category（先到者為準）
type AggregatedIngredient struct {
	Name        string  `json:"name"` // 正規化後的 key
	TotalAmount float64 `json:"total_amount"`
	Unit        string  `json:"unit"`
	Category    string  `json:"category"`
}

// Aggregate 將餐點計畫快照攤平為食材彙總表
// 輸入順序不保證依時間排序；缺少內嵌食譜或食材清單的項目直接跳過。
// 單筆錯誤只記錄不中斷，永遠回傳（可能不完整的）結果。
// 注意：同名但單位不同的食材會以原始數值直接相加，不做單位換算，
// 此為沿用來源系統的既有行為
func Aggregate(entries []common.MealPlan) (map[string]*AggregatedIngredient, []Issue) {
	aggregated := make(map[string]*AggregatedIngredient)
	var issues []Issue

	for i := range entries {
		issues = append(issues, aggregateEntry(&entries[i], aggregated)...)
	}

	return aggregated, issues
}

// aggregateEntry 處理單筆餐點計畫；panic 一律回收為 Issue
func aggregateEntry(entry *common.MealPlan, aggregated map[string]*AggregatedIngredient) (issues []Issue) {
	defer func() {
		if r := recover(); r != nil {
			common.LogError("處理餐點計畫時發生未預期錯誤",
				zap.String("plan_id", entry.ID),
				zap.Any("panic", r),
			)
			issues = append(issues, Issue{
				Kind:   IssueEntryPanic,
				Name:   entry.RecipeName,
				Detail: fmt.Sprintf("%v", r),
			})
		}
	}()

	if entry.Recipe == nil || len(entry.Recipe.Ingredients) == 0 {
		issues = append(issues, Issue{
			Kind: IssueMissingRecipe,
			Name: entry.RecipeName,
		})
		return issues
	}

	for _, ing := range entry.Recipe.Ingredients {
		key := normalizeKey(ing.Name)
		if key == "" {
			issues = append(issues, Issue{Kind: IssueEmptyName})
			continue
		}

		amount, ok := ParseAmount(ing.Amount)
		if !ok {
			issue := amountIssue(ing.Name, ing.Amount)
			common.LogDataIssue(issue.Kind, issue.Name, issue.Detail)
			issues = append(issues, issue)
		}

		if existing, seen := aggregated[key]; seen {
			existing.TotalAmount += amount
			continue
		}

		aggregated[key] = &AggregatedIngredient{
			Name:        key,
			TotalAmount: amount,
			Unit:        ing.Unit,
			Category:    NormalizeCategory(ing.Category),
		}
	}

	return issues
}

package shopping

import (
	"context"

	"mealmate-api/internal/pkg/common"

	"go.uber.org/zap"
)

// Build 將彙總表轉為購物清單項目並累計總價
// 品名只把合併鍵的首字母轉大寫（非完整 title case）。
// 單一項目計價失敗時以 0.0 代替並繼續，不會因此丟棄項目。
// 輸出順序未定義（map 迭代順序），顯示順序由 Group 決定
func Build(ctx context.Context, aggregated map[string]*AggregatedIngredient, pricer PricingStrategy) ([]common.ShoppingItem, float64, []Issue) {
	items := make([]common.ShoppingItem, 0, len(aggregated))
	var issues []Issue
	totalPrice := 0.0

	for key, agg := range aggregated {
		item := common.ShoppingItem{
			ID:       common.GenerateUUID(),
			Name:     capitalizeFirst(key),
			Amount:   agg.TotalAmount,
			Unit:     agg.Unit,
			Category: agg.Category,
		}

		price, err := pricer.PriceFor(ctx, item)
		if err != nil {
			common.LogWarn("計價失敗，以 0.0 代替",
				zap.String("item", item.Name),
				zap.Error(err),
			)
			issues = append(issues, Issue{
				Kind:   IssuePricingFailed,
				Name:   item.Name,
				Detail: err.Error(),
			})
			price = 0.0
		}
		item.Price = price

		totalPrice += item.Price
		items = append(items, item)
	}

	return items, totalPrice, issues
}

// TotalPrice 重新計算清單總價（項目編輯或刪除後使用）
func TotalPrice(items []common.ShoppingItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Price
	}
	return total
}

package shopping

import (
	"context"
	"errors"
	"testing"

	"mealmate-api/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedPricing 測試用固定價格策略
type fixedPricing struct {
	price float64
}

func (p fixedPricing) PriceFor(context.Context, common.ShoppingItem) (float64, error) {
	return p.price, nil
}

// failingPricing 測試用計價失敗策略
type failingPricing struct{}

func (failingPricing) PriceFor(context.Context, common.ShoppingItem) (float64, error) {
	return 0, errors.New("catalog unavailable")
}

func TestBuildCapitalizesNames(t *testing.T) {
	aggregated := map[string]*AggregatedIngredient{
		"bell peppers": {Name: "bell peppers", TotalAmount: 3.0, Unit: "pcs", Category: CategoryVegetables},
	}

	items, total, issues := Build(context.Background(), aggregated, fixedPricing{price: 50})
	require.Len(t, items, 1)
	assert.Empty(t, issues)

	// 只有首字母轉大寫，不是完整 title case
	assert.Equal(t, "Bell peppers", items[0].Name)
	assert.Equal(t, 3.0, items[0].Amount)
	assert.Equal(t, "pcs", items[0].Unit)
	assert.Equal(t, CategoryVegetables, items[0].Category)
	assert.Equal(t, 50.0, items[0].Price)
	assert.NotEmpty(t, items[0].ID)
	assert.False(t, items[0].Purchased)
	assert.InDelta(t, 50.0, total, 1e-9)
}

func TestBuildTotalIsSumOfItemPrices(t *testing.T) {
	aggregated := map[string]*AggregatedIngredient{
		"rice":    {Name: "rice", TotalAmount: 2, Unit: "kg", Category: CategoryGrains},
		"milk":    {Name: "milk", TotalAmount: 1, Unit: "l", Category: CategoryDairy},
		"chicken": {Name: "chicken", TotalAmount: 0.5, Unit: "kg", Category: CategoryProteins},
	}

	items, total, issues := Build(context.Background(), aggregated, fixedPricing{price: 30})
	require.Len(t, items, 3)
	assert.Empty(t, issues)
	assert.InDelta(t, 90.0, total, 1e-9)
	assert.InDelta(t, total, TotalPrice(items), 1e-9)
}

func TestBuildPricingFailureKeepsItem(t *testing.T) {
	aggregated := map[string]*AggregatedIngredient{
		"onion": {Name: "onion", TotalAmount: 2, Unit: "pcs", Category: CategoryVegetables},
	}

	items, total, issues := Build(context.Background(), aggregated, failingPricing{})
	require.Len(t, items, 1)
	// 計價失敗以 0.0 代替，項目不丟棄
	assert.Equal(t, 0.0, items[0].Price)
	assert.Equal(t, 0.0, total)

	require.Len(t, issues, 1)
	assert.Equal(t, IssuePricingFailed, issues[0].Kind)
	assert.Equal(t, "Onion", issues[0].Name)
}

func TestBuildUniqueIDs(t *testing.T) {
	aggregated := map[string]*AggregatedIngredient{
		"a": {Name: "a", TotalAmount: 1, Category: CategoryOther},
		"b": {Name: "b", TotalAmount: 1, Category: CategoryOther},
		"c": {Name: "c", TotalAmount: 1, Category: CategoryOther},
	}

	items, _, _ := Build(context.Background(), aggregated, fixedPricing{price: 1})
	seen := make(map[string]bool)
	for _, item := range items {
		assert.False(t, seen[item.ID], "duplicate item id %s", item.ID)
		seen[item.ID] = true
	}
}

func TestBuildEmptyAggregation(t *testing.T) {
	items, total, issues := Build(context.Background(), map[string]*AggregatedIngredient{}, fixedPricing{price: 10})
	assert.Empty(t, items)
	assert.Equal(t, 0.0, total)
	assert.Empty(t, issues)
}

func TestRandomPricingWithinRange(t *testing.T) {
	pricer := NewRandomPricing(10, 500)
	for i := 0; i < 100; i++ {
		price, err := pricer.PriceFor(context.Background(), common.ShoppingItem{Name: "Rice"})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, price, 10.0)
		assert.LessOrEqual(t, price, 500.0)
	}
}

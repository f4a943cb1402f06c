package shopping

import (
	"testing"

	"mealmate-api/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planWithIngredients(recipeName string, ingredients ...common.Ingredient) common.MealPlan {
	return common.MealPlan{
		ID:         "user1_20260115_dinner_1736899200000",
		RecipeName: recipeName,
		MealTime:   common.MealTimeDinner,
		Date:       "20260115",
		UserID:     "user1",
		Recipe: &common.Recipe{
			Title:       recipeName,
			Ingredients: ingredients,
		},
	}
}

func TestAggregateMergesSameIngredient(t *testing.T) {
	entries := []common.MealPlan{
		planWithIngredients("Stir Fry",
			common.Ingredient{Name: "Bell Peppers", Amount: 2.0, Unit: "pcs", Category: "vegetables"},
		),
		planWithIngredients("Fajitas",
			common.Ingredient{Name: "bell peppers ", Amount: 1.0, Unit: "pieces", Category: "veg"},
		),
	}

	aggregated, issues := Aggregate(entries)
	assert.Empty(t, issues)
	require.Len(t, aggregated, 1)

	agg, ok := aggregated["bell peppers"]
	require.True(t, ok)
	assert.Equal(t, "bell peppers", agg.Name)
	assert.InDelta(t, 3.0, agg.TotalAmount, 1e-9)
	// 單位與分類以先到者為準
	assert.Equal(t, "pcs", agg.Unit)
	assert.Equal(t, CategoryVegetables, agg.Category)
}

func TestAggregateAmountSumInvariant(t *testing.T) {
	entries := []common.MealPlan{
		planWithIngredients("A",
			common.Ingredient{Name: "rice", Amount: 0.5, Unit: "kg", Category: "grains"},
			common.Ingredient{Name: "rice", Amount: 1.25, Unit: "kg", Category: "grains"},
		),
		planWithIngredients("B",
			common.Ingredient{Name: "Rice", Amount: 2.0, Unit: "cups", Category: "carbs"},
		),
	}

	aggregated, _ := Aggregate(entries)
	require.Contains(t, aggregated, "rice")
	// 同名食材的數量為各筆解析值之和；不同單位也直接相加
	assert.InDelta(t, 3.75, aggregated["rice"].TotalAmount, 1e-9)
	assert.Equal(t, "kg", aggregated["rice"].Unit)
}

func TestAggregateMalformedAmountFallsBack(t *testing.T) {
	entries := []common.MealPlan{
		planWithIngredients("Soup",
			common.Ingredient{Name: "Salt", Amount: "a pinch", Unit: "", Category: "spices"},
			common.Ingredient{Name: "Water", Amount: nil, Unit: "l", Category: ""},
		),
	}

	aggregated, issues := Aggregate(entries)
	require.Len(t, aggregated, 2)
	assert.Equal(t, fallbackAmount, aggregated["salt"].TotalAmount)
	assert.Equal(t, fallbackAmount, aggregated["water"].TotalAmount)
	assert.Equal(t, CategoryOther, aggregated["water"].Category)

	require.Len(t, issues, 2)
	for _, issue := range issues {
		assert.Equal(t, IssueMalformedAmount, issue.Kind)
	}
}

func TestAggregateSkipsEntriesWithoutRecipe(t *testing.T) {
	entries := []common.MealPlan{
		{ID: "user1_20260115_lunch_1", RecipeName: "Mystery Meal", Recipe: nil},
		planWithIngredients("Salad",
			common.Ingredient{Name: "Lettuce", Amount: 1.0, Unit: "head", Category: "vegetables"},
		),
	}

	aggregated, issues := Aggregate(entries)
	require.Len(t, aggregated, 1)
	assert.Contains(t, aggregated, "lettuce")

	require.Len(t, issues, 1)
	assert.Equal(t, IssueMissingRecipe, issues[0].Kind)
	assert.Equal(t, "Mystery Meal", issues[0].Name)
}

func TestAggregateSkipsEmptyIngredientName(t *testing.T) {
	entries := []common.MealPlan{
		planWithIngredients("Odd",
			common.Ingredient{Name: "   ", Amount: 1.0, Unit: "pcs", Category: "other"},
			common.Ingredient{Name: "Onion", Amount: 1.0, Unit: "pcs", Category: "vegetables"},
		),
	}

	aggregated, issues := Aggregate(entries)
	require.Len(t, aggregated, 1)
	assert.Contains(t, aggregated, "onion")

	require.Len(t, issues, 1)
	assert.Equal(t, IssueEmptyName, issues[0].Kind)
}

func TestAggregateEmptyInput(t *testing.T) {
	aggregated, issues := Aggregate(nil)
	assert.Empty(t, aggregated)
	assert.Empty(t, issues)

	aggregated, issues = Aggregate([]common.MealPlan{})
	assert.Empty(t, aggregated)
	assert.Empty(t, issues)
}

func TestAggregateJSONDecodedAmounts(t *testing.T) {
	// 模擬從文件資料庫解碼後的型別：UseNumber 使數字欄位成為 json.Number
	var plan common.MealPlan
	doc := `{
		"id": "user1_20260115_dinner_1736899200000",
		"recipe_name": "Curry",
		"meal_time": "dinner",
		"date": "20260115",
		"user_id": "user1",
		"recipe": {
			"title": "Curry",
			"ingredients": [
				{"name": "Chicken", "amount": 0.5, "unit": "kg", "category": "meat"},
				{"name": "Curry Powder", "amount": "2", "unit": "tbsp", "category": "spices"}
			]
		}
	}`
	require.NoError(t, common.ParseJSON(doc, &plan))

	aggregated, issues := Aggregate([]common.MealPlan{plan})
	assert.Empty(t, issues)
	require.Len(t, aggregated, 2)
	assert.InDelta(t, 0.5, aggregated["chicken"].TotalAmount, 1e-9)
	assert.InDelta(t, 2.0, aggregated["curry powder"].TotalAmount, 1e-9)
	assert.Equal(t, CategoryProteins, aggregated["chicken"].Category)
	assert.Equal(t, CategorySpices, aggregated["curry powder"].Category)
}

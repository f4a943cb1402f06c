package shopping

import (
	"testing"

	"mealmate-api/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleItems() []common.ShoppingItem {
	return []common.ShoppingItem{
		{ID: "1", Name: "Tomatoes", Category: CategoryVegetables, Amount: 4, Unit: "pcs", Price: 40},
		{ID: "2", Name: "milk", Category: CategoryDairy, Amount: 1, Unit: "l", Price: 60},
		{ID: "3", Name: "Bell peppers", Category: CategoryVegetables, Amount: 3, Unit: "pcs", Price: 90},
		{ID: "4", Name: "Almonds", Category: "Nuts", Amount: 0.2, Unit: "kg", Price: 250},
		{ID: "5", Name: "cheese", Category: CategoryDairy, Amount: 0.5, Unit: "kg", Price: 300},
	}
}

func TestGroupSortsCategoriesLexicographically(t *testing.T) {
	groups := Group(sampleItems())
	require.Len(t, groups, 3)

	assert.Equal(t, CategoryDairy, groups[0].Category)
	assert.Equal(t, "Nuts", groups[1].Category)
	assert.Equal(t, CategoryVegetables, groups[2].Category)
}

func TestGroupSortsItemsCaseInsensitively(t *testing.T) {
	groups := Group(sampleItems())
	require.Len(t, groups, 3)

	// Dairy：cheese 在 milk 前（不分大小寫）
	dairy := groups[0]
	require.Len(t, dairy.Items, 2)
	assert.Equal(t, "cheese", dairy.Items[0].Name)
	assert.Equal(t, "milk", dairy.Items[1].Name)

	// Vegetables：Bell peppers 在 Tomatoes 前
	veg := groups[2]
	require.Len(t, veg.Items, 2)
	assert.Equal(t, "Bell peppers", veg.Items[0].Name)
	assert.Equal(t, "Tomatoes", veg.Items[1].Name)
}

func TestGroupCanonicalCategoryOrder(t *testing.T) {
	items := []common.ShoppingItem{
		{ID: "1", Name: "Foil", Category: CategoryOther},
		{ID: "2", Name: "Milk", Category: CategoryDairy},
		{ID: "3", Name: "Tomatoes", Category: CategoryVegetables},
	}

	groups := Group(items)
	require.Len(t, groups, 3)
	assert.Equal(t, CategoryDairy, groups[0].Category)
	assert.Equal(t, CategoryOther, groups[1].Category)
	assert.Equal(t, CategoryVegetables, groups[2].Category)
}

func TestGroupDeterministic(t *testing.T) {
	first := Group(sampleItems())
	second := Group(sampleItems())
	assert.Equal(t, first, second)
}

func TestGroupEmptyInput(t *testing.T) {
	assert.Empty(t, Group(nil))
	assert.Empty(t, Group([]common.ShoppingItem{}))
}

func TestRowsFlattening(t *testing.T) {
	groups := Group(sampleItems())
	rows := Rows(groups)

	// 3 個標題列 + 5 個項目列
	require.Len(t, rows, 8)

	assert.Equal(t, RowKindHeader, rows[0].Kind)
	assert.Equal(t, CategoryDairy, rows[0].Category)
	assert.Nil(t, rows[0].Item)

	assert.Equal(t, RowKindItem, rows[1].Kind)
	require.NotNil(t, rows[1].Item)
	assert.Equal(t, "cheese", rows[1].Item.Name)

	assert.Equal(t, RowKindItem, rows[2].Kind)
	assert.Equal(t, "milk", rows[2].Item.Name)

	assert.Equal(t, RowKindHeader, rows[3].Kind)
	assert.Equal(t, "Nuts", rows[3].Category)

	assert.Equal(t, RowKindItem, rows[4].Kind)
	assert.Equal(t, "Almonds", rows[4].Item.Name)

	assert.Equal(t, RowKindHeader, rows[5].Kind)
	assert.Equal(t, CategoryVegetables, rows[5].Category)
	assert.Equal(t, "Bell peppers", rows[6].Item.Name)
	assert.Equal(t, "Tomatoes", rows[7].Item.Name)
}

func TestRowsEmptyGroups(t *testing.T) {
	assert.Empty(t, Rows(nil))
}

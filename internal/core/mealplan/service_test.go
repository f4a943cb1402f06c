package mealplan

import (
	"context"
	"os"
	"testing"

	"mealmate-api/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	common.Logger = zap.NewNop()
	os.Exit(m.Run())
}

func TestAddValidation(t *testing.T) {
	svc := NewService(nil)
	ctx := context.Background()

	tests := []struct {
		name string
		plan common.MealPlan
	}{
		{"invalid meal time", common.MealPlan{RecipeName: "Curry", MealTime: "brunch", Date: "20260115", UserID: "user1"}},
		{"invalid date", common.MealPlan{RecipeName: "Curry", MealTime: "dinner", Date: "2026-01-15", UserID: "user1"}},
		{"missing user", common.MealPlan{RecipeName: "Curry", MealTime: "dinner", Date: "20260115"}},
		{"missing recipe name", common.MealPlan{MealTime: "dinner", Date: "20260115", UserID: "user1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := tt.plan
			err := svc.Add(ctx, &plan)
			require.Error(t, err)
			assert.True(t, common.IsValidationError(err))
		})
	}
}

func TestAddNormalizesMealTime(t *testing.T) {
	svc := NewService(nil)
	plan := common.MealPlan{
		RecipeName: "Curry",
		MealTime:   " DINNER ",
		Date:       "bad-date",
		UserID:     "user1",
	}

	// 日期無效會提前失敗，但時段已正規化寫回
	err := svc.Add(context.Background(), &plan)
	require.Error(t, err)
	assert.Equal(t, common.MealTimeDinner, plan.MealTime)
}

func TestRemoveRejectsMalformedID(t *testing.T) {
	svc := NewService(nil)
	ctx := context.Background()

	for _, id := range []string{"", "abc", "user1_dinner", "user1_notadate_dinner_123"} {
		err := svc.Remove(ctx, "user1", id)
		require.Error(t, err, "id=%q", id)
		assert.True(t, common.IsValidationError(err), "id=%q", id)
	}
}

func TestKeysByRange(t *testing.T) {
	svc := NewService(nil)

	keys, err := svc.keysByRange("user1", "20260130", "20260202")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"mealplans:user1:20260130",
		"mealplans:user1:20260131",
		"mealplans:user1:20260201",
		"mealplans:user1:20260202",
	}, keys)
}

func TestKeysByRangeSingleDay(t *testing.T) {
	svc := NewService(nil)

	keys, err := svc.keysByRange("user1", "20260115", "20260115")
	require.NoError(t, err)
	assert.Equal(t, []string{"mealplans:user1:20260115"}, keys)
}

func TestKeysByRangeInvalid(t *testing.T) {
	svc := NewService(nil)

	_, err := svc.keysByRange("user1", "20260116", "20260115")
	require.Error(t, err)
	assert.True(t, common.IsValidationError(err))

	_, err = svc.keysByRange("user1", "notadate", "20260115")
	assert.Error(t, err)
}

package mealplan

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"mealmate-api/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Service 餐點計畫服務
// 以 mealplans:<userID>:<yyyyMMdd> hash 存放排程，欄位為計畫 ID、
// 值為 MealPlan JSON 文件，對應行動端的資料樹結構
type Service struct {
	client *redis.Client
}

// NewService 創建餐點計畫服務
func NewService(client *redis.Client) *Service {
	return &Service{client: client}
}

// dateKey 組出某使用者某日的 Redis 鍵
func dateKey(userID, date string) string {
	return fmt.Sprintf("mealplans:%s:%s", userID, date)
}

// Add 排定一筆餐點計畫
// 同一天同一時段已排定相同食譜時回傳 ErrDuplicateMealPlan；
// ID 格式為 userID_yyyyMMdd_mealTime_timestampMillis
func (s *Service) Add(ctx context.Context, plan *common.MealPlan) error {
	mealTime, err := common.NormalizeMealTime(plan.MealTime)
	if err != nil {
		return common.NewValidationError(err.Error())
	}
	plan.MealTime = mealTime

	if _, err := common.ParseDateKey(plan.Date); err != nil {
		return common.NewValidationError(err.Error())
	}
	if plan.UserID == "" {
		return common.NewValidationError("user id is required")
	}
	if plan.RecipeName == "" && plan.Recipe != nil {
		plan.RecipeName = plan.Recipe.Title
	}
	if plan.RecipeName == "" {
		return common.NewValidationError("recipe name is required")
	}

	key := dateKey(plan.UserID, plan.Date)

	// 檢查同日同時段是否已有相同食譜
	existing, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to check existing meal plans: %w", err)
	}
	for _, raw := range existing {
		var current common.MealPlan
		if err := common.ParseJSON(raw, &current); err != nil {
			// 壞文件不擋新增，只記錄
			common.LogWarn("無法解析既有餐點計畫文件",
				zap.String("key", key),
				zap.Error(err),
			)
			continue
		}
		if current.RecipeName == plan.RecipeName && current.MealTime == plan.MealTime {
			common.LogInfo("偵測到重複餐點計畫，跳過新增",
				zap.String("recipe", plan.RecipeName),
				zap.String("meal_time", plan.MealTime),
				zap.String("date", plan.Date),
			)
			return common.ErrDuplicateMealPlan
		}
	}

	if plan.Timestamp == 0 {
		plan.Timestamp = time.Now().UnixMilli()
	}
	if plan.ID == "" {
		plan.ID = fmt.Sprintf("%s_%s_%s_%d", plan.UserID, plan.Date, plan.MealTime, plan.Timestamp)
	}

	data, err := common.ToJSON(plan)
	if err != nil {
		return fmt.Errorf("failed to marshal meal plan: %w", err)
	}
	if err := s.client.HSet(ctx, key, plan.ID, data).Err(); err != nil {
		return fmt.Errorf("failed to store meal plan: %w", err)
	}

	common.LogInfo("餐點計畫已新增",
		zap.String("plan_id", plan.ID),
		zap.String("recipe", plan.RecipeName),
		zap.String("date", plan.Date),
	)
	return nil
}

// Remove 取消一筆排程；計畫 ID 內嵌日期，據此定位所屬的日鍵
func (s *Service) Remove(ctx context.Context, userID, planID string) error {
	parts := strings.Split(planID, "_")
	if len(parts) < 4 {
		return common.NewValidationError(fmt.Sprintf("invalid meal plan id: %q", planID))
	}
	date := parts[len(parts)-3]
	if _, err := common.ParseDateKey(date); err != nil {
		return common.NewValidationError(err.Error())
	}

	removed, err := s.client.HDel(ctx, dateKey(userID, date), planID).Result()
	if err != nil {
		return fmt.Errorf("failed to remove meal plan: %w", err)
	}
	if removed == 0 {
		return common.ErrMealPlanNotFound
	}

	common.LogInfo("餐點計畫已移除",
		zap.String("plan_id", planID),
		zap.String("user_id", userID),
	)
	return nil
}

// Snapshot 一次性讀取使用者的完整餐點計畫快照
// dateFrom/dateTo 皆為 yyyyMMdd，可留空表示不限日期；
// 單筆文件解析失敗只跳過，不中斷快照
func (s *Service) Snapshot(ctx context.Context, userID, dateFrom, dateTo string) ([]common.MealPlan, error) {
	var keys []string
	var err error

	if dateFrom != "" && dateTo != "" {
		keys, err = s.keysByRange(userID, dateFrom, dateTo)
	} else {
		keys, err = s.scanKeys(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	var entries []common.MealPlan
	for _, key := range keys {
		docs, err := s.client.HGetAll(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to read meal plans at %s: %w", key, err)
		}
		for _, raw := range docs {
			var plan common.MealPlan
			if err := common.ParseJSON(raw, &plan); err != nil {
				common.LogWarn("略過無法解析的餐點計畫文件",
					zap.String("key", key),
					zap.Error(err),
				)
				continue
			}
			entries = append(entries, plan)
		}
	}

	return entries, nil
}

// keysByRange 展開日期區間內每一天的鍵
func (s *Service) keysByRange(userID, dateFrom, dateTo string) ([]string, error) {
	from, err := common.ParseDateKey(dateFrom)
	if err != nil {
		return nil, common.NewValidationError(err.Error())
	}
	to, err := common.ParseDateKey(dateTo)
	if err != nil {
		return nil, common.NewValidationError(err.Error())
	}
	if to.Before(from) {
		return nil, common.NewValidationError("date_to is before date_from")
	}

	var keys []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		keys = append(keys, dateKey(userID, common.FormatDateKey(d)))
	}
	return keys, nil
}

// scanKeys 掃描使用者名下所有日期的鍵
func (s *Service) scanKeys(ctx context.Context, userID string) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, dateKey(userID, "*"), 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan meal plan keys: %w", err)
	}
	// SCAN 順序不穩定，排序讓快照序列化結果可重現（快取鍵用）
	sort.Strings(keys)
	return keys, nil
}

package recipe

import (
	"context"
	"fmt"
	"sort"

	"mealmate-api/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// recipesKey 食譜文件的 Redis 鍵（hash：食譜 ID → JSON）
const recipesKey = "recipes"

// Service 食譜服務
type Service struct {
	client *redis.Client
}

// NewService 創建食譜服務
func NewService(client *redis.Client) *Service {
	return &Service{client: client}
}

// List 列出所有食譜，依標題排序
func (s *Service) List(ctx context.Context) ([]common.Recipe, error) {
	docs, err := s.client.HGetAll(ctx, recipesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	recipes := make([]common.Recipe, 0, len(docs))
	for id, raw := range docs {
		var r common.Recipe
		if err := common.ParseJSON(raw, &r); err != nil {
			common.LogWarn("略過無法解析的食譜文件",
				zap.String("recipe_id", id),
				zap.Error(err),
			)
			continue
		}
		recipes = append(recipes, r)
	}

	sort.Slice(recipes, func(i, j int) bool {
		return recipes[i].Title < recipes[j].Title
	})
	return recipes, nil
}

// Get 取得單一食譜
func (s *Service) Get(ctx context.Context, id string) (*common.Recipe, error) {
	raw, err := s.client.HGet(ctx, recipesKey, id).Result()
	if err == redis.Nil {
		return nil, common.ErrRecipeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe %s: %w", id, err)
	}

	var r common.Recipe
	if err := common.ParseJSON(raw, &r); err != nil {
		return nil, fmt.Errorf("failed to parse recipe %s: %w", id, err)
	}
	return &r, nil
}

// Create 建立食譜；未帶 ID 時自動產生
func (s *Service) Create(ctx context.Context, r *common.Recipe) error {
	if r.Title == "" {
		return common.NewValidationError("recipe title is required")
	}
	if r.ID == "" {
		r.ID = common.GenerateUUID()
	}

	data, err := common.ToJSON(r)
	if err != nil {
		return fmt.Errorf("failed to marshal recipe: %w", err)
	}
	if err := s.client.HSet(ctx, recipesKey, r.ID, data).Err(); err != nil {
		return fmt.Errorf("failed to store recipe: %w", err)
	}

	common.LogInfo("食譜已建立",
		zap.String("recipe_id", r.ID),
		zap.String("title", r.Title),
		zap.Int("ingredients", len(r.Ingredients)),
	)
	return nil
}

// Delete 刪除食譜
func (s *Service) Delete(ctx context.Context, id string) error {
	removed, err := s.client.HDel(ctx, recipesKey, id).Result()
	if err != nil {
		return fmt.Errorf("failed to delete recipe %s: %w", id, err)
	}
	if removed == 0 {
		return common.ErrRecipeNotFound
	}
	return nil
}

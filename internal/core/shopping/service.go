package shopping

import (
	"context"
	"encoding/json"
	"fmt"

	"mealmate-api/internal/core/shopping/cache"
	"mealmate-api/internal/infrastructure/config"
	"mealmate-api/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// SnapshotSource 餐點計畫快照來源（外部餐點計畫儲存）
// 回傳彙總當下的完整快照，非增量差異
type SnapshotSource interface {
	Snapshot(ctx context.Context, userID, dateFrom, dateTo string) ([]common.MealPlan, error)
}

// ListResult 一次彙總執行的完整輸出
// 每次重建都完全取代前一次的結果，不與舊清單合併
type ListResult struct {
	Items      []common.ShoppingItem `json:"items"`
	Groups     []CategoryGroup       `json:"groups"`
	Rows       []Row                 `json:"rows"`
	TotalPrice float64               `json:"total_price"`
	Empty      bool                  `json:"empty"`
	Issues     []Issue               `json:"issues,omitempty"`
}

// Service 購物清單服務
// 串接彙總管線：快照 → 彙總 → 建立清單 → 分組，
// 並提供清單的儲存與編輯操作
type Service struct {
	config       *config.Config
	source       SnapshotSource
	pricer       PricingStrategy
	cacheManager *cache.Manager
	client       *redis.Client
}

// NewService 創建購物清單服務
func NewService(cfg *config.Config, source SnapshotSource, pricer PricingStrategy, cacheManager *cache.Manager, client *redis.Client) *Service {
	return &Service{
		config:       cfg,
		source:       source,
		pricer:       pricer,
		cacheManager: cacheManager,
		client:       client,
	}
}

// BuildList 從餐點計畫快照重建購物清單
// 快照讀取失敗是唯一對使用者可見的錯誤；彙總過程中的單筆
// 資料問題只記錄在 Issues，不中斷整批處理
func (s *Service) BuildList(ctx context.Context, userID, dateFrom, dateTo string) (*ListResult, error) {
	entries, err := s.source.Snapshot(ctx, userID, dateFrom, dateTo)
	if err != nil {
		common.LogError("讀取餐點計畫快照失敗",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", common.ErrSnapshotFailed, err)
	}

	// 以快照雜湊查快取：相同快照直接重用彙總結果
	snapshotHash := ""
	if data, err := json.Marshal(entries); err == nil {
		snapshotHash = cache.SnapshotHash(data)
	}
	if s.cacheManager != nil && snapshotHash != "" {
		if cached, err := s.cacheManager.Get(ctx, userID, snapshotHash); err == nil && cached != "" {
			var result ListResult
			if err := common.ParseJSON(cached, &result); err == nil {
				return &result, nil
			}
		}
	}

	aggregated, issues := Aggregate(entries)
	items, totalPrice, pricingIssues := Build(ctx, aggregated, s.pricer)
	issues = append(issues, pricingIssues...)
	groups := Group(items)

	result := &ListResult{
		Items:      items,
		Groups:     groups,
		Rows:       Rows(groups),
		TotalPrice: totalPrice,
		Empty:      len(items) == 0,
		Issues:     issues,
	}

	common.LogInfo("購物清單重建完成",
		zap.String("user_id", userID),
		zap.Int("entries", len(entries)),
		zap.Int("items", len(items)),
		zap.Int("issues", len(issues)),
	)

	if s.cacheManager != nil && snapshotHash != "" {
		if encoded, err := common.ToJSON(result); err == nil {
			_ = s.cacheManager.Set(ctx, userID, snapshotHash, encoded)
		}
	}

	return result, nil
}

// SMSText 產生分享用的簡訊內文
func (s *Service) SMSText(result *ListResult) string {
	body := FormatForSMS(result.Groups, result.TotalPrice, s.config.Shopping.CurrencyPrefix)
	return "Shopping List:\n\n" + body + "\n\nSent from MealMate"
}

// savedListKey 使用者已儲存清單的 Redis 鍵
func savedListKey(userID string) string {
	return "shoppinglists:" + userID
}

// SaveList 將清單明確存回文件資料庫
// 清單編輯預設只作用於記憶體中的顯示結果，唯有走這條儲存
// 路徑才會持久化
func (s *Service) SaveList(ctx context.Context, userID string, items []common.ShoppingItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal shopping list: %w", err)
	}
	if err := s.client.Set(ctx, savedListKey(userID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save shopping list: %w", err)
	}

	common.LogInfo("購物清單已儲存",
		zap.String("user_id", userID),
		zap.Int("items", len(items)),
	)
	return nil
}

// SavedList 讀取已儲存的清單；尚未儲存過時回傳空清單
func (s *Service) SavedList(ctx context.Context, userID string) ([]common.ShoppingItem, error) {
	data, err := s.client.Get(ctx, savedListKey(userID)).Bytes()
	if err == redis.Nil {
		return []common.ShoppingItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load shopping list: %w", err)
	}

	var items []common.ShoppingItem
	if err := common.ParseJSONBytes(data, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shopping list: %w", err)
	}
	return items, nil
}

// ToggleItem 切換項目的已購買狀態（unchecked ↔ checked）
func (s *Service) ToggleItem(ctx context.Context, userID, itemID string) ([]common.ShoppingItem, error) {
	return s.mutateSaved(ctx, userID, itemID, func(items []common.ShoppingItem, idx int) []common.ShoppingItem {
		items[idx].Purchased = !items[idx].Purchased
		return items
	})
}

// UpdateItem 編輯項目的數量與價格；勾選與刪除狀態不受影響
func (s *Service) UpdateItem(ctx context.Context, userID, itemID string, amount, price *float64) ([]common.ShoppingItem, error) {
	return s.mutateSaved(ctx, userID, itemID, func(items []common.ShoppingItem, idx int) []common.ShoppingItem {
		if amount != nil {
			items[idx].Amount = *amount
		}
		if price != nil {
			items[idx].Price = *price
		}
		return items
	})
}

// DeleteItem 刪除項目（終態，不可復原）
func (s *Service) DeleteItem(ctx context.Context, userID, itemID string) ([]common.ShoppingItem, error) {
	return s.mutateSaved(ctx, userID, itemID, func(items []common.ShoppingItem, idx int) []common.ShoppingItem {
		return append(items[:idx], items[idx+1:]...)
	})
}

// mutateSaved 讀取、修改並回存已儲存清單的共用流程
func (s *Service) mutateSaved(ctx context.Context, userID, itemID string, mutate func([]common.ShoppingItem, int) []common.ShoppingItem) ([]common.ShoppingItem, error) {
	items, err := s.SavedList(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range items {
		if items[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, common.ErrNotFound
	}

	items = mutate(items, idx)

	if err := s.SaveList(ctx, userID, items); err != nil {
		return nil, err
	}
	return items, nil
}

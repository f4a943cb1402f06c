package grocerystore

import (
	"context"
	"fmt"
	"sort"

	"mealmate-api/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// storesKey 店家文件的 Redis 鍵（hash：店家 ID → JSON）
const storesKey = "stores"

// Manager 雜貨店管理服務
// 於組裝根建構一次後以參考傳遞給使用端，取代原本的
// process 單例寫法，便於以假件測試
type Manager struct {
	client *redis.Client
}

// NewManager 創建雜貨店管理服務
func NewManager(client *redis.Client) *Manager {
	return &Manager{client: client}
}

// List 列出所有店家；資料庫為空時先寫入示範店家（展示用）
func (m *Manager) List(ctx context.Context) ([]common.Store, error) {
	stores, err := m.list(ctx)
	if err != nil {
		return nil, err
	}

	if len(stores) == 0 {
		if err := m.seedSampleStores(ctx); err != nil {
			return nil, err
		}
		return m.list(ctx)
	}
	return stores, nil
}

// list 讀取店家清單，依名稱排序
func (m *Manager) list(ctx context.Context) ([]common.Store, error) {
	docs, err := m.client.HGetAll(ctx, storesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}

	stores := make([]common.Store, 0, len(docs))
	for id, raw := range docs {
		var store common.Store
		if err := common.ParseJSON(raw, &store); err != nil {
			common.LogWarn("略過無法解析的店家文件",
				zap.String("store_id", id),
				zap.Error(err),
			)
			continue
		}
		stores = append(stores, store)
	}

	sort.Slice(stores, func(i, j int) bool {
		return stores[i].Name < stores[j].Name
	})
	return stores, nil
}

// Get 依 ID 取得店家
func (m *Manager) Get(ctx context.Context, id string) (*common.Store, error) {
	raw, err := m.client.HGet(ctx, storesKey, id).Result()
	if err == redis.Nil {
		return nil, common.ErrStoreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get store %s: %w", id, err)
	}

	var store common.Store
	if err := common.ParseJSON(raw, &store); err != nil {
		return nil, fmt.Errorf("failed to parse store %s: %w", id, err)
	}
	return &store, nil
}

// Save 儲存店家；未帶 ID 時自動產生
func (m *Manager) Save(ctx context.Context, store *common.Store) error {
	if store.Name == "" {
		return common.NewValidationError("store name is required")
	}
	if store.ID == "" {
		store.ID = common.GenerateUUID()
	}

	data, err := common.ToJSON(store)
	if err != nil {
		return fmt.Errorf("failed to marshal store: %w", err)
	}
	if err := m.client.HSet(ctx, storesKey, store.ID, data).Err(); err != nil {
		return fmt.Errorf("failed to store store: %w", err)
	}
	return nil
}

// Update 更新既有店家；不存在時回傳 ErrStoreNotFound
func (m *Manager) Update(ctx context.Context, store *common.Store) error {
	if store.ID == "" {
		return common.NewValidationError("store id is required")
	}

	exists, err := m.client.HExists(ctx, storesKey, store.ID).Result()
	if err != nil {
		return fmt.Errorf("failed to check store %s: %w", store.ID, err)
	}
	if !exists {
		return common.ErrStoreNotFound
	}
	return m.Save(ctx, store)
}

// Delete 刪除店家
func (m *Manager) Delete(ctx context.Context, id string) error {
	removed, err := m.client.HDel(ctx, storesKey, id).Result()
	if err != nil {
		return fmt.Errorf("failed to delete store %s: %w", id, err)
	}
	if removed == 0 {
		return common.ErrStoreNotFound
	}
	return nil
}

// seedSampleStores 寫入示範店家
func (m *Manager) seedSampleStores(ctx context.Context) error {
	samples := []common.Store{
		{
			ID:        "sample1",
			Name:      "Central Supermarket",
			Address:   "123 Main St, Kathmandu",
			Latitude:  27.7172,
			Longitude: 85.3240,
			StoreType: "Supermarket",
			Notes:     "Large supermarket with wide variety of products",
		},
		{
			ID:        "sample2",
			Name:      "Neighborhood Grocery",
			Address:   "456 Oak Ave, Kathmandu",
			Latitude:  27.7102,
			Longitude: 85.3156,
			StoreType: "Convenience Store",
			Notes:     "Small local store with basic essentials",
		},
		{
			ID:        "sample3",
			Name:      "Fresh Farmers Market",
			Address:   "789 Green Rd, Kathmandu",
			Latitude:  27.7242,
			Longitude: 85.3320,
			StoreType: "Farmers Market",
			Notes:     "Fresh local produce and organic goods",
		},
	}

	for i := range samples {
		if err := m.Save(ctx, &samples[i]); err != nil {
			return err
		}
	}

	common.LogInfo("已建立示範店家",
		zap.Int("count", len(samples)),
	)
	return nil
}

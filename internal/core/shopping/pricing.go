package shopping

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"mealmate-api/internal/pkg/common"

	"github.com/go-redis/redis/v8"
)

// PricingStrategy 價格查詢策略
// 價格屬外部協作者的職責（例如商品目錄服務），彙總核心只透過
// 這個介面取得價格，不自行定義計價模型
type PricingStrategy interface {
	PriceFor(ctx context.Context, item common.ShoppingItem) (float64, error)
}

// RandomPricing 佔位用的亂數計價策略
// 在 [min, max] 範圍內均勻取值，與數量、單位無關
type RandomPricing struct {
	min float64
	max float64
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomPricing 建立亂數計價策略
func NewRandomPricing(min, max float64) *RandomPricing {
	return &RandomPricing{
		min: min,
		max: max,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// PriceFor 回傳 [min, max] 內的隨機價格
func (p *RandomPricing) PriceFor(_ context.Context, _ common.ShoppingItem) (float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.min + (p.max-p.min)*p.rng.Float64(), nil
}

// 商品目錄價格表的 Redis 鍵
const catalogKey = "prices"

// CatalogPricing 目錄計價策略
// 以正規化後的品名查 Redis 的 prices hash；查無此品項時退回
// fallback 策略
type CatalogPricing struct {
	client   *redis.Client
	fallback PricingStrategy
}

// NewCatalogPricing 建立目錄計價策略
func NewCatalogPricing(client *redis.Client, fallback PricingStrategy) *CatalogPricing {
	return &CatalogPricing{
		client:   client,
		fallback: fallback,
	}
}

// PriceFor 查詢目錄價格
func (p *CatalogPricing) PriceFor(ctx context.Context, item common.ShoppingItem) (float64, error) {
	val, err := p.client.HGet(ctx, catalogKey, normalizeKey(item.Name)).Result()
	if err == redis.Nil {
		return p.fallback.PriceFor(ctx, item)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read price catalog: %w", err)
	}

	price, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed catalog price for %q: %w", item.Name, err)
	}
	return price, nil
}

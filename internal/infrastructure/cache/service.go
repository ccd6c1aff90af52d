package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"

	"food-resolver/internal/core/catalog"
	"food-resolver/internal/infrastructure/config"
	"food-resolver/internal/pkg/common"
)

// Service 搜尋結果緩存。引擎本身不碰緩存，
// 由 handler 在呼叫引擎前後讀寫；Redis 故障時靜默降級成未命中。
type Service struct {
	client *redis.Client
	config *config.CacheConfig
}

// NewService 建立緩存服務，Enabled=false 時回傳空殼
func NewService(cfg *config.CacheConfig) (*Service, error) {
	if !cfg.Enabled {
		return &Service{config: cfg}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Service{
		client: client,
		config: cfg,
	}, nil
}

// GetSearch 讀取搜尋結果緩存，未命中或任何錯誤都回傳 ErrCacheDisabled 以外的 miss
func (s *Service) GetSearch(ctx context.Context, normalizedQuery, lang string, limit int) ([]catalog.FoodSearchItem, error) {
	if !s.config.Enabled || s.client == nil {
		return nil, common.ErrCacheDisabled
	}

	key := searchKey(normalizedQuery, lang, limit)
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			common.LogCacheMiss("search", key)
			return nil, fmt.Errorf("cache miss")
		}
		return nil, fmt.Errorf("failed to get cache: %w", err)
	}

	var items []catalog.FoodSearchItem
	if err := common.ParseJSONBytes(data, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache: %w", err)
	}

	common.LogCacheHit("search", key)
	return items, nil
}

// SetSearch 寫入搜尋結果緩存
func (s *Service) SetSearch(ctx context.Context, normalizedQuery, lang string, limit int, items []catalog.FoodSearchItem) error {
	if !s.config.Enabled || s.client == nil {
		return nil
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal search results: %w", err)
	}

	key := searchKey(normalizedQuery, lang, limit)
	if err := s.client.Set(ctx, key, data, s.config.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// searchKey 以正規化查詢、語言與 limit 構成緩存鍵，
// 查詢文字先雜湊避免鍵裡出現任意字元
func searchKey(normalizedQuery, lang string, limit int) string {
	sum := sha256.Sum256([]byte(normalizedQuery))
	return "search:" + lang + ":" + strconv.Itoa(limit) + ":" + hex.EncodeToString(sum[:16])
}

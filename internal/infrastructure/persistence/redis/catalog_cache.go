package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ayabook/bookshop/internal/domain/book"
	apperrors "github.com/ayabook/bookshop/pkg/errors"
)

// 首页推荐位缓存Key
// 推荐位读多写少(只在图书增删改时失效),短TTL兜底
const (
	keyBestsellers  = "catalog:bestsellers"
	keyNewArrivals  = "catalog:new_arrivals"
	featuredListTTL = 5 * time.Minute
)

// CatalogCache 图书推荐位缓存
// 设计说明：
// 1. Cache-Aside模式:读时先查缓存,未命中回源DB并回填
// 2. 缓存未命中返回ErrCacheMiss,由调用方回源
// 3. 图书任何写操作后调用Invalidate整体失效(不做细粒度更新)
type CatalogCache struct {
	client *redis.Client
}

// ErrCacheMiss 缓存未命中
var ErrCacheMiss = errors.New("cache miss")

// NewCatalogCache 创建推荐位缓存
func NewCatalogCache(client *redis.Client) *CatalogCache {
	return &CatalogCache{client: client}
}

// GetBestsellers 读取畅销书缓存
func (c *CatalogCache) GetBestsellers(ctx context.Context) ([]*book.Book, error) {
	return c.get(ctx, keyBestsellers)
}

// SetBestsellers 回填畅销书缓存
func (c *CatalogCache) SetBestsellers(ctx context.Context, books []*book.Book) error {
	return c.set(ctx, keyBestsellers, books)
}

// GetNewArrivals 读取新书缓存
func (c *CatalogCache) GetNewArrivals(ctx context.Context) ([]*book.Book, error) {
	return c.get(ctx, keyNewArrivals)
}

// SetNewArrivals 回填新书缓存
func (c *CatalogCache) SetNewArrivals(ctx context.Context, books []*book.Book) error {
	return c.set(ctx, keyNewArrivals, books)
}

// Invalidate 整体失效推荐位缓存(图书增删改后调用)
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, keyBestsellers, keyNewArrivals).Err(); err != nil {
		return apperrors.Wrap(err, "失效推荐位缓存失败")
	}
	return nil
}

func (c *CatalogCache) get(ctx context.Context, key string) ([]*book.Book, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, apperrors.Wrap(err, "读取推荐位缓存失败")
	}

	var books []*book.Book
	if err := json.Unmarshal(data, &books); err != nil {
		// 缓存数据损坏按未命中处理,回源后会覆盖
		return nil, ErrCacheMiss
	}

	return books, nil
}

func (c *CatalogCache) set(ctx context.Context, key string, books []*book.Book) error {
	data, err := json.Marshal(books)
	if err != nil {
		return apperrors.Wrap(err, "序列化推荐位缓存失败")
	}

	if err := c.client.Set(ctx, key, data, featuredListTTL).Err(); err != nil {
		return apperrors.Wrap(err, "写入推荐位缓存失败")
	}

	return nil
}

package book

import (
	"context"
	"errors"

	"github.com/ayabook/bookshop/internal/domain/book"
)

// ErrCacheMiss 缓存未命中(由缓存实现返回,用例回源DB)
var ErrCacheMiss = errors.New("cache miss")

// FeaturedCache 推荐位缓存接口(redis.CatalogCache实现)
// Cache-Aside:读时未命中回源并回填,图书任何写操作后整体失效
type FeaturedCache interface {
	GetBestsellers(ctx context.Context) ([]*book.Book, error)
	SetBestsellers(ctx context.Context, books []*book.Book) error
	GetNewArrivals(ctx context.Context) ([]*book.Book, error)
	SetNewArrivals(ctx context.Context, books []*book.Book) error
	Invalidate(ctx context.Context) error
}

// NopFeaturedCache 空缓存实现(未配置Redis时与测试用)
// 读永远未命中,写为空操作
type NopFeaturedCache struct{}

func (NopFeaturedCache) GetBestsellers(ctx context.Context) ([]*book.Book, error) {
	return nil, ErrCacheMiss
}

func (NopFeaturedCache) SetBestsellers(ctx context.Context, books []*book.Book) error { return nil }

func (NopFeaturedCache) GetNewArrivals(ctx context.Context) ([]*book.Book, error) {
	return nil, ErrCacheMiss
}

func (NopFeaturedCache) SetNewArrivals(ctx context.Context, books []*book.Book) error { return nil }

func (NopFeaturedCache) Invalidate(ctx context.Context) error { return nil }

package book

import (
	"context"
	"log"

	"github.com/ayabook/bookshop/internal/domain/book"
	"github.com/ayabook/bookshop/internal/domain/category"
)

// featuredLimit 推荐位条数
const featuredLimit = 10

// FeaturedList 推荐位响应
// 对外契约:{items, total, limit},total为本次实际返回条数
type FeaturedList struct {
	Items []*BookView `json:"items"`
	Total int         `json:"total"`
	Limit int         `json:"limit"`
}

func newFeaturedList(items []*BookView) *FeaturedList {
	return &FeaturedList{
		Items: items,
		Total: len(items),
		Limit: featuredLimit,
	}
}

// FeaturedBooksUseCase 首页推荐位用例(畅销书+新书)
// 读多写少,走Cache-Aside:缓存命中直接返回,
// 未命中(或缓存故障)回源DB并回填
type FeaturedBooksUseCase struct {
	bookService  book.Service
	categoryRepo category.Repository
	cache        FeaturedCache
}

// NewFeaturedBooksUseCase 创建推荐位用例
func NewFeaturedBooksUseCase(bookService book.Service, categoryRepo category.Repository, cache FeaturedCache) *FeaturedBooksUseCase {
	return &FeaturedBooksUseCase{
		bookService:  bookService,
		categoryRepo: categoryRepo,
		cache:        cache,
	}
}

// Bestsellers 畅销书列表(人工标记,按销量降序)
func (uc *FeaturedBooksUseCase) Bestsellers(ctx context.Context) (*FeaturedList, error) {
	books, err := uc.cache.GetBestsellers(ctx)
	if err != nil {
		// 未命中或缓存故障都回源,缓存永远不是报错理由
		books, err = uc.bookService.GetBestsellers(ctx, featuredLimit)
		if err != nil {
			return nil, err
		}
		if err := uc.cache.SetBestsellers(ctx, books); err != nil {
			log.Printf("回填畅销书缓存失败: %v", err)
		}
	}

	return newFeaturedList(toBookViews(books, categoryNameMap(ctx, uc.categoryRepo))), nil
}

// NewArrivals 新书列表(按创建时间降序)
func (uc *FeaturedBooksUseCase) NewArrivals(ctx context.Context) (*FeaturedList, error) {
	books, err := uc.cache.GetNewArrivals(ctx)
	if err != nil {
		books, err = uc.bookService.GetNewArrivals(ctx, featuredLimit)
		if err != nil {
			return nil, err
		}
		if err := uc.cache.SetNewArrivals(ctx, books); err != nil {
			log.Printf("回填新书缓存失败: %v", err)
		}
	}

	return newFeaturedList(toBookViews(books, categoryNameMap(ctx, uc.categoryRepo))), nil
}

package book

import (
	"context"
	"log"

	"github.com/ayabook/bookshop/internal/domain/book"
	"github.com/ayabook/bookshop/internal/domain/category"
)

// UpdateBookUseCase 更新图书用例(管理员)
type UpdateBookUseCase struct {
	bookService  book.Service
	categoryRepo category.Repository
	cache        FeaturedCache
}

// NewUpdateBookUseCase 创建更新图书用例
func NewUpdateBookUseCase(bookService book.Service, categoryRepo category.Repository, cache FeaturedCache) *UpdateBookUseCase {
	return &UpdateBookUseCase{
		bookService:  bookService,
		categoryRepo: categoryRepo,
		cache:        cache,
	}
}

// UpdateBookRequest 更新图书请求DTO
// 指针字段区分"不修改"(nil)与"改为零值"
// 注意:Stock不在此接口修改——库存只由下单/取消流程变更,
// 盘点调整走独立运维手段,避免与并发扣减互相覆盖
type UpdateBookRequest struct {
	BookID        uint
	Title         *string
	Author        *string
	Category      *string // 分类ID或名称,空字符串表示清空分类
	Price         *int64
	OriginalPrice *int64
	IsBestseller  *bool
	Image         *string
	Description   *string
	Dimensions    *string
	Pages         *int
	Weight        *string
	Format        *string
	Series        *string
}

// Execute 执行更新
func (uc *UpdateBookUseCase) Execute(ctx context.Context, req UpdateBookRequest) (*BookView, error) {
	b, err := uc.bookService.GetBookByID(ctx, req.BookID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		b.Title = *req.Title
	}
	if req.Author != nil {
		b.Author = *req.Author
	}
	if req.Price != nil {
		b.Price = *req.Price
	}
	if req.OriginalPrice != nil {
		b.OriginalPrice = req.OriginalPrice
	}
	if req.IsBestseller != nil {
		b.IsBestseller = *req.IsBestseller
	}
	if req.Image != nil {
		b.Image = *req.Image
	}
	if req.Description != nil {
		b.Description = *req.Description
	}
	if req.Dimensions != nil {
		b.Dimensions = *req.Dimensions
	}
	if req.Pages != nil {
		b.Pages = *req.Pages
	}
	if req.Weight != nil {
		b.Weight = *req.Weight
	}
	if req.Format != nil {
		b.Format = *req.Format
	}
	if req.Series != nil {
		b.Series = *req.Series
	}

	names := map[uint]string{}
	if req.Category != nil {
		if *req.Category == "" {
			b.CategoryID = nil
		} else {
			var c *category.Category
			var err error
			if id, ok := category.ParseID(*req.Category); ok {
				c, err = uc.categoryRepo.FindByID(ctx, id)
			} else {
				c, err = uc.categoryRepo.FindByName(ctx, *req.Category)
			}
			if err != nil {
				return nil, err
			}
			b.CategoryID = &c.ID
			names[c.ID] = c.Name
		}
	} else if b.CategoryID != nil {
		if c, err := uc.categoryRepo.FindByID(ctx, *b.CategoryID); err == nil {
			names[c.ID] = c.Name
		}
	}

	if err := uc.bookService.UpdateBook(ctx, b); err != nil {
		return nil, err
	}

	if err := uc.cache.Invalidate(ctx); err != nil {
		log.Printf("失效推荐位缓存失败: %v", err)
	}

	return toBookView(b, names), nil
}

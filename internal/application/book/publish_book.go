package book

import (
	"context"
	"log"

	"github.com/ayabook/bookshop/internal/domain/book"
	"github.com/ayabook/bookshop/internal/domain/category"
)

// PublishBookUseCase 上架图书用例(管理员)
type PublishBookUseCase struct {
	bookService  book.Service
	categoryRepo category.Repository
	cache        FeaturedCache
}

// NewPublishBookUseCase 创建上架图书用例
func NewPublishBookUseCase(bookService book.Service, categoryRepo category.Repository, cache FeaturedCache) *PublishBookUseCase {
	return &PublishBookUseCase{
		bookService:  bookService,
		categoryRepo: categoryRepo,
		cache:        cache,
	}
}

// PublishBookRequest 上架图书请求DTO
// Category是分类ID或分类名称,空表示未分类
type PublishBookRequest struct {
	Title         string
	Author        string
	Category      string
	Price         int64
	OriginalPrice *int64
	Stock         int
	IsBestseller  bool
	Image         string
	Description   string
	Dimensions    string
	Pages         int
	Weight        string
	Format        string
	Series        string
}

// Execute 执行上架
// 分类引用先按ID解析,非数字则按名称精确查找,解析失败报错
// (上架时就挡住无效分类,而不是落库后留孤儿引用)
func (uc *PublishBookUseCase) Execute(ctx context.Context, req PublishBookRequest) (*BookView, error) {
	categoryID, names, err := uc.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	b := book.NewBook(req.Title, req.Author, categoryID, req.Price, req.Stock, req.Image, req.Description)
	b.OriginalPrice = req.OriginalPrice
	b.IsBestseller = req.IsBestseller
	b.Dimensions = req.Dimensions
	b.Pages = req.Pages
	b.Weight = req.Weight
	b.Format = req.Format
	b.Series = req.Series

	created, err := uc.bookService.CreateBook(ctx, b)
	if err != nil {
		return nil, err
	}

	uc.invalidateCache(ctx)

	return toBookView(created, names), nil
}

// resolveCategory 解析分类引用,返回分类ID与名称映射
func (uc *PublishBookUseCase) resolveCategory(ctx context.Context, ref string) (*uint, map[uint]string, error) {
	if ref == "" {
		return nil, map[uint]string{}, nil
	}

	var c *category.Category
	var err error
	if id, ok := category.ParseID(ref); ok {
		c, err = uc.categoryRepo.FindByID(ctx, id)
	} else {
		c, err = uc.categoryRepo.FindByName(ctx, ref)
	}
	if err != nil {
		return nil, nil, err
	}

	return &c.ID, map[uint]string{c.ID: c.Name}, nil
}

func (uc *PublishBookUseCase) invalidateCache(ctx context.Context) {
	if err := uc.cache.Invalidate(ctx); err != nil {
		log.Printf("失效推荐位缓存失败: %v", err)
	}
}

package category

import (
	"context"
	"log"

	"github.com/ayabook/bookshop/internal/domain/book"
	"github.com/ayabook/bookshop/internal/domain/category"
)

// ListCategoriesUseCase 分类列表用例
// 读取侧按名称去重(历史数据存在同名分类),并装饰每个分类的图书数量
type ListCategoriesUseCase struct {
	categoryService category.Service
	bookRepo        book.Repository
}

// NewListCategoriesUseCase 创建分类列表用例
func NewListCategoriesUseCase(categoryService category.Service, bookRepo book.Repository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		categoryService: categoryService,
		bookRepo:        bookRepo,
	}
}

// Execute 执行查询
// BookCount是派生字段,逐分类统计;单个统计失败按0处理,
// 不让整个列表接口报错
func (uc *ListCategoriesUseCase) Execute(ctx context.Context) ([]*CategoryView, error) {
	categories, err := uc.categoryService.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]*CategoryView, len(categories))
	for i, c := range categories {
		count, err := uc.bookRepo.CountByCategory(ctx, c.ID)
		if err != nil {
			log.Printf("统计分类图书数失败,按0处理: categoryId=%d, err=%v", c.ID, err)
			count = 0
		}
		c.BookCount = count
		views[i] = toCategoryView(c)
	}

	return views, nil
}

// Get 分类详情(ref是分类ID或名称)
func (uc *ListCategoriesUseCase) Get(ctx context.Context, ref string) (*CategoryView, error) {
	c, err := uc.categoryService.GetCategory(ctx, ref)
	if err != nil {
		return nil, err
	}

	count, err := uc.bookRepo.CountByCategory(ctx, c.ID)
	if err != nil {
		log.Printf("统计分类图书数失败,按0处理: categoryId=%d, err=%v", c.ID, err)
		count = 0
	}
	c.BookCount = count

	return toCategoryView(c), nil
}

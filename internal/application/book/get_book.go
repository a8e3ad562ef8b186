package book

import (
	"context"

	"github.com/ayabook/bookshop/internal/domain/book"
	"github.com/ayabook/bookshop/internal/domain/category"
)

// GetBookUseCase 图书详情用例
type GetBookUseCase struct {
	bookService  book.Service
	categoryRepo category.Repository
}

// NewGetBookUseCase 创建图书详情用例
func NewGetBookUseCase(bookService book.Service, categoryRepo category.Repository) *GetBookUseCase {
	return &GetBookUseCase{
		bookService:  bookService,
		categoryRepo: categoryRepo,
	}
}

// Execute 执行查询
// 分类解析失败不报错:孤儿引用按未分类展示
func (uc *GetBookUseCase) Execute(ctx context.Context, bookID uint) (*BookView, error) {
	b, err := uc.bookService.GetBookByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	names := map[uint]string{}
	if b.CategoryID != nil {
		if c, err := uc.categoryRepo.FindByID(ctx, *b.CategoryID); err == nil {
			names[c.ID] = c.Name
		}
	}

	return toBookView(b, names), nil
}

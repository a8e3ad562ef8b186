package book

import (
	"context"
	"log"

	"github.com/ayabook/bookshop/internal/domain/book"
)

// DeleteBookUseCase 下架图书用例(管理员)
// 软删除:历史订单的明细快照不受影响
type DeleteBookUseCase struct {
	bookService book.Service
	cache       FeaturedCache
}

// NewDeleteBookUseCase 创建下架图书用例
func NewDeleteBookUseCase(bookService book.Service, cache FeaturedCache) *DeleteBookUseCase {
	return &DeleteBookUseCase{
		bookService: bookService,
		cache:       cache,
	}
}

// Execute 执行下架
func (uc *DeleteBookUseCase) Execute(ctx context.Context, bookID uint) error {
	if err := uc.bookService.DeleteBook(ctx, bookID); err != nil {
		return err
	}

	if err := uc.cache.Invalidate(ctx); err != nil {
		log.Printf("失效推荐位缓存失败: %v", err)
	}

	return nil
}

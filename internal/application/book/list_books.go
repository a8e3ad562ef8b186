package book

import (
	"context"

	"github.com/ayabook/bookshop/internal/domain/book"
	"github.com/ayabook/bookshop/internal/domain/category"
	"github.com/ayabook/bookshop/pkg/response"
)

// 列表默认每页大小
// 面向前台目录与后台管理页的历史约定,两边默认值不同
const (
	catalogDefaultLimit = 20
	adminDefaultLimit   = 10
)

// ListBooksUseCase 图书列表用例
// 前台目录检索与后台管理列表共用一套过滤逻辑,只有默认分页不同
type ListBooksUseCase struct {
	bookService  book.Service
	categoryRepo category.Repository
}

// NewListBooksUseCase 创建图书列表用例
func NewListBooksUseCase(bookService book.Service, categoryRepo category.Repository) *ListBooksUseCase {
	return &ListBooksUseCase{
		bookService:  bookService,
		categoryRepo: categoryRepo,
	}
}

// ListBooksRequest 图书列表请求DTO
type ListBooksRequest struct {
	Page     int
	Limit    int
	Keyword  string // 书名子串(大小写不敏感)
	Category string // 分类ID或名称
	MinPrice *int64 // 价格下界(含)
	MaxPrice *int64 // 价格上界(含)
	SortBy   string // price_asc | price_desc | created_at_desc
}

// ListCatalog 前台目录检索(默认每页20)
func (uc *ListBooksUseCase) ListCatalog(ctx context.Context, req ListBooksRequest) (*response.PageData, error) {
	return uc.list(ctx, req, catalogDefaultLimit)
}

// ListAdmin 后台管理列表(默认每页10)
func (uc *ListBooksUseCase) ListAdmin(ctx context.Context, req ListBooksRequest) (*response.PageData, error) {
	return uc.list(ctx, req, adminDefaultLimit)
}

func (uc *ListBooksUseCase) list(ctx context.Context, req ListBooksRequest, defaultLimit int) (*response.PageData, error) {
	params := book.ListParams{
		Page:     req.Page,
		Limit:    req.Limit,
		Keyword:  req.Keyword,
		Category: req.Category,
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
		SortBy:   req.SortBy,
	}
	params.Normalize(defaultLimit)

	books, total, err := uc.bookService.ListBooks(ctx, params)
	if err != nil {
		return nil, err
	}

	names := categoryNameMap(ctx, uc.categoryRepo)

	return response.NewPageData(toBookViews(books, names), total, params.Page, params.Limit), nil
}

package book

import (
	"context"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务封装跨实体的业务规则校验(价格、库存、分类引用)
// 2. 不依赖具体的Repository实现(依赖倒置)
type Service interface {
	// CreateBook 创建图书(后台上架)
	// 业务规则:价格>=0,库存>=0
	CreateBook(ctx context.Context, b *Book) (*Book, error)

	// GetBookByID 根据ID获取图书详情
	GetBookByID(ctx context.Context, id uint) (*Book, error)

	// UpdateBook 更新图书(后台编辑)
	UpdateBook(ctx context.Context, b *Book) error

	// DeleteBook 删除图书
	DeleteBook(ctx context.Context, id uint) error

	// ListBooks 分页查询图书列表(公开接口)
	ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// GetBestsellers 畅销书
	GetBestsellers(ctx context.Context, limit int) ([]*Book, error)

	// GetNewArrivals 新书上架
	GetNewArrivals(ctx context.Context, limit int) ([]*Book, error)
}

type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateBook 创建图书
func (s *service) CreateBook(ctx context.Context, b *Book) (*Book, error) {
	if err := validateBook(b); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// GetBookByID 根据ID获取图书
func (s *service) GetBookByID(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateBook 更新图书
func (s *service) UpdateBook(ctx context.Context, b *Book) error {
	if err := validateBook(b); err != nil {
		return err
	}

	// 确认图书存在,不存在时返回NotFound而不是upsert
	if _, err := s.repo.FindByID(ctx, b.ID); err != nil {
		return err
	}

	return s.repo.Update(ctx, b)
}

// DeleteBook 删除图书
func (s *service) DeleteBook(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ListBooks 分页查询图书列表
func (s *service) ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error) {
	return s.repo.List(ctx, params)
}

// GetBestsellers 畅销书
func (s *service) GetBestsellers(ctx context.Context, limit int) ([]*Book, error) {
	if limit < 1 {
		limit = 10
	}
	return s.repo.Bestsellers(ctx, limit)
}

// GetNewArrivals 新书上架
func (s *service) GetNewArrivals(ctx context.Context, limit int) ([]*Book, error) {
	if limit < 1 {
		limit = 10
	}
	return s.repo.NewArrivals(ctx, limit)
}

// validateBook 图书字段业务校验
func validateBook(b *Book) error {
	if b.Price < 0 {
		return ErrInvalidPrice
	}
	if b.OriginalPrice != nil && *b.OriginalPrice < 0 {
		return ErrInvalidPrice
	}
	if b.Stock < 0 {
		return ErrInvalidStock
	}
	return nil
}

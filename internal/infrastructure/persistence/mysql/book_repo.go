package mysql

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ayabook/bookshop/internal/domain/book"
	apperrors "github.com/ayabook/bookshop/pkg/errors"
)

// bookRepository 图书仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 库存扣减走条件UPDATE,依靠数据库保证不超卖
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建图书失败")
	}

	// 回填自增ID与时间戳
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// Update 更新图书信息
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)
	model.ID = b.ID
	model.CreatedAt = b.CreatedAt

	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新图书失败")
	}

	b.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除图书(软删除)
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&BookModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除图书失败")
	}

	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}

	return nil
}

// List 分页查询图书列表
// 过滤条件:
// - Keyword: 书名大小写不敏感子串匹配
// - Category: 分类ID或分类名称(先按数字解析,非数字则联表按名称匹配)
// - MinPrice/MaxPrice: 闭区间价格过滤
func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	var models []BookModel
	var total int64

	query := getDB(ctx, r.db).Model(&BookModel{})

	if params.Keyword != "" {
		// LOWER两侧统一小写,保证大小写不敏感(与排序规则无关)
		keyword := "%" + strings.ToLower(params.Keyword) + "%"
		query = query.Where("LOWER(title) LIKE ?", keyword)
	}

	if params.Category != "" {
		if id, err := strconv.ParseUint(params.Category, 10, 32); err == nil {
			query = query.Where("category_id = ?", uint(id))
		} else {
			// 按分类名称匹配:同名分类可能有多条历史记录,全部命中
			query = query.Where("category_id IN (?)",
				r.db.Model(&CategoryModel{}).Select("id").Where("name = ?", params.Category))
		}
	}

	if params.MinPrice != nil {
		query = query.Where("price >= ?", *params.MinPrice)
	}
	if params.MaxPrice != nil {
		query = query.Where("price <= ?", *params.MaxPrice)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书总数失败")
	}

	switch params.SortBy {
	case "price_asc":
		query = query.Order("price ASC")
	case "price_desc":
		query = query.Order("price DESC")
	default:
		query = query.Order("created_at DESC") // 默认按创建时间降序
	}

	query = query.Limit(params.Limit).Offset(params.Offset())

	if err := query.Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书列表失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}

	return books, total, nil
}

// Bestsellers 畅销书列表:人工标记的图书按销量降序
func (r *bookRepository) Bestsellers(ctx context.Context, limit int) ([]*book.Book, error) {
	var models []BookModel
	err := getDB(ctx, r.db).
		Where("is_bestseller = ?", true).
		Order("sold_count DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询畅销书失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, nil
}

// NewArrivals 新书列表:按创建时间降序
func (r *bookRepository) NewArrivals(ctx context.Context, limit int) ([]*book.Book, error) {
	var models []BookModel
	err := getDB(ctx, r.db).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询新书失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, nil
}

// LockByID 悲观锁查询图书(用于订单创建)
// SELECT FOR UPDATE锁定行,必须在TxManager事务内调用
func (r *bookRepository) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "锁定图书失败")
	}

	return toBookEntity(&model), nil
}

// UpdateStock 库存变更(原子操作)
// quantity>0表示售出,quantity<0表示恢复(订单取消):
// UPDATE books SET stock = stock - q, sold_count = sold_count + q
// WHERE id = ? AND stock - q >= 0
// RowsAffected=0且图书存在时说明库存不足——提交期的最终防线,
// 事前校验通过也可能在这里失败
func (r *bookRepository) UpdateStock(ctx context.Context, id uint, quantity int) error {
	result := getDB(ctx, r.db).Model(&BookModel{}).
		Where("id = ?", id).
		Where("stock - ? >= 0", quantity).
		Updates(map[string]interface{}{
			"stock":      gorm.Expr("stock - ?", quantity),
			"sold_count": gorm.Expr("GREATEST(sold_count + ?, 0)", quantity),
		})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新库存失败")
	}

	if result.RowsAffected == 0 {
		// 可能是图书不存在,或者库存不足,再查一次确定原因
		var model BookModel
		if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return book.ErrBookNotFound
			}
			return apperrors.Wrap(err, "查询图书失败")
		}
		return book.ErrInsufficientStock
	}

	return nil
}

// CountByCategory 统计某分类下的图书数量
func (r *bookRepository) CountByCategory(ctx context.Context, categoryID uint) (int64, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&BookModel{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计分类图书失败")
	}
	return count, nil
}

// ReassignCategory 将一个分类下的所有图书改挂到另一个分类
// 分类去重修复操作使用,需在事务内调用
func (r *bookRepository) ReassignCategory(ctx context.Context, fromCategoryID, toCategoryID uint) error {
	err := getDB(ctx, r.db).Model(&BookModel{}).
		Where("category_id = ?", fromCategoryID).
		Update("category_id", toCategoryID).Error
	if err != nil {
		return apperrors.Wrap(err, "迁移分类图书失败")
	}
	return nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:            model.ID,
		Title:         model.Title,
		Author:        model.Author,
		CategoryID:    model.CategoryID,
		Price:         model.Price,
		OriginalPrice: model.OriginalPrice,
		Stock:         model.Stock,
		SoldCount:     model.SoldCount,
		IsBestseller:  model.IsBestseller,
		Image:         model.Image,
		Description:   model.Description,
		Dimensions:    model.Dimensions,
		Pages:         model.Pages,
		Weight:        model.Weight,
		Format:        model.Format,
		Series:        model.Series,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

// toBookModel 领域实体 → GORM模型
func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		Title:         b.Title,
		Author:        b.Author,
		CategoryID:    b.CategoryID,
		Price:         b.Price,
		OriginalPrice: b.OriginalPrice,
		Stock:         b.Stock,
		SoldCount:     b.SoldCount,
		IsBestseller:  b.IsBestseller,
		Image:         b.Image,
		Description:   b.Description,
		Dimensions:    b.Dimensions,
		Pages:         b.Pages,
		Weight:        b.Weight,
		Format:        b.Format,
		Series:        b.Series,
	}
}

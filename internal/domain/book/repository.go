package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
type Repository interface {
	// Create 创建图书
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id uint) (*Book, error)

	// Update 更新图书信息
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书(软删除)
	Delete(ctx context.Context, id uint) error

	// List 分页查询图书列表(目录检索与后台列表共用)
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// Bestsellers 畅销书列表:IsBestseller标记的图书,按销量降序,limit截断
	Bestsellers(ctx context.Context, limit int) ([]*Book, error)

	// NewArrivals 新书列表:全部图书按创建时间降序,limit截断
	NewArrivals(ctx context.Context, limit int) ([]*Book, error)

	// LockByID 悲观锁查询图书(用于订单创建时锁定库存行)
	// SELECT FOR UPDATE,必须在事务内调用(通过context传递事务DB)
	LockByID(ctx context.Context, id uint) (*Book, error)

	// UpdateStock 库存变更(原子操作)
	// quantity为正数表示售出:stock -= quantity, soldCount += quantity
	// quantity为负数表示回滚(订单取消时恢复库存)——同一原语的符号翻转约定,
	// 不是两个操作
	// 条件更新保证stock不会为负:扣减不满足时返回ErrInsufficientStock,
	// 调用方应将提交期的失败视为库存不足,而不仅依赖事前校验
	UpdateStock(ctx context.Context, id uint, quantity int) error

	// CountByCategory 统计某分类下的图书数量
	CountByCategory(ctx context.Context, categoryID uint) (int64, error)

	// ReassignCategory 将一个分类下的所有图书改挂到另一个分类
	// (分类去重修复操作使用)
	ReassignCategory(ctx context.Context, fromCategoryID, toCategoryID uint) error
}

// ListParams 列表查询参数
// 目录检索与后台列表的统一契约:
// - Keyword: 书名大小写不敏感子串匹配
// - Category: 分类ID或分类名称(先按ID解析,非数字则按名称精确查找)
// - MinPrice/MaxPrice: 闭区间价格过滤,nil表示不限
type ListParams struct {
	Page     int
	Limit    int
	Keyword  string
	Category string
	MinPrice *int64
	MaxPrice *int64
	SortBy   string // price_asc | price_desc | created_at_desc(默认)
}

// Normalize 分页参数兜底
// page/limit非法时回退默认值:page=1,limit=defaultLimit,limit上限100
func (p *ListParams) Normalize(defaultLimit int) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

// Offset 偏移量:skip = (page-1)*limit
func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

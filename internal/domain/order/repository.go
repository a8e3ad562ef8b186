package order

import (
	"context"
	"time"
)

// Stats 订单统计:总数 + 按状态计数(缺失的状态补0)
type Stats struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	Processing int64 `json:"processing"`
	Completed  int64 `json:"completed"`
	Cancelled  int64 `json:"cancelled"`
}

// HistoryParams 订单历史查询参数
// 按用户过滤,可选状态与创建时间闭区间,分页
type HistoryParams struct {
	Page      int
	Limit     int
	Status    *OrderStatus // nil表示不过滤
	StartDate *time.Time   // 创建时间下界(含)
	EndDate   *time.Time   // 创建时间上界(含)
	SortAsc   bool         // 默认按创建时间降序
}

// Normalize 分页参数兜底
func (p *HistoryParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

// ListParams 后台订单列表查询参数
type ListParams struct {
	Page   int
	Limit  int
	Status *OrderStatus // nil表示不过滤
}

// Normalize 分页参数兜底
func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

// Repository 订单仓储接口
// 设计说明:
// 1. 订单和明细是聚合关系,Create必须在同一事务中落库
// 2. 订单没有Delete:任何对外操作都不物理删除订单
// 3. 写操作通过context参与TxManager的事务
type Repository interface {
	// Create 创建订单(包含订单明细)
	Create(ctx context.Context, o *Order) error

	// FindByID 根据ID查找订单(包含订单明细)
	FindByID(ctx context.Context, id uint) (*Order, error)

	// FindByOrderNo 根据订单号查找订单
	FindByOrderNo(ctx context.Context, orderNo string) (*Order, error)

	// UpdateStatus 更新订单状态(只改status与updatedAt)
	UpdateStatus(ctx context.Context, id uint, status OrderStatus) error

	// List 后台订单列表(全部用户,可选状态过滤,按创建时间降序)
	List(ctx context.Context, params ListParams) ([]*Order, int64, error)

	// ListByUserID 查询用户自己的订单列表(按创建时间降序)
	ListByUserID(ctx context.Context, userID uint, page, limit int) ([]*Order, int64, error)

	// History 订单历史(按用户,可选状态/时间区间过滤,分页)
	History(ctx context.Context, userID uint, params HistoryParams) ([]*Order, int64, error)

	// GetStats 订单统计(总数+按状态计数)
	GetStats(ctx context.Context) (*Stats, error)

	// Recent 最近N个订单(按创建时间降序)
	Recent(ctx context.Context, limit int) ([]*Order, error)
}

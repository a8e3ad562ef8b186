package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ayabook/bookshop/internal/domain/order"
	apperrors "github.com/ayabook/bookshop/pkg/errors"
)

// orderRepository 订单仓储实现(MySQL)
// 设计说明:
// 1. 订单与明细是聚合关系,Create利用GORM关联一次性落库
// 2. 查询统一Preload("Items"),保证聚合完整加载
// 3. 没有Delete:订单只通过状态流转收敛,不物理删除
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// Create 创建订单(包含订单明细)
// GORM会在同一事务内插入orders与order_items(外层通常已在TxManager事务中)
func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	model := toOrderModel(o)

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return apperrors.New(apperrors.ErrCodeDuplicateEntry, "订单号重复")
		}
		return apperrors.Wrap(err, "创建订单失败")
	}

	// 回填自增ID与时间戳
	o.ID = model.ID
	o.CreatedAt = model.CreatedAt
	o.UpdatedAt = model.UpdatedAt
	for i := range model.Items {
		o.Items[i].ID = model.Items[i].ID
		o.Items[i].OrderID = model.ID
	}

	return nil
}

// FindByID 根据ID查找订单(包含订单明细)
func (r *orderRepository) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	var model OrderModel
	err := getDB(ctx, r.db).Preload("Items").First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}

	return toOrderEntity(&model), nil
}

// FindByOrderNo 根据订单号查找订单
func (r *orderRepository) FindByOrderNo(ctx context.Context, orderNo string) (*order.Order, error) {
	var model OrderModel
	err := getDB(ctx, r.db).
		Preload("Items").
		Where("order_no = ?", orderNo).
		First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}

	return toOrderEntity(&model), nil
}

// UpdateStatus 更新订单状态
// 只改status与updated_at,状态流转的合法性由应用层校验
func (r *orderRepository) UpdateStatus(ctx context.Context, id uint, status order.OrderStatus) error {
	result := getDB(ctx, r.db).Model(&OrderModel{}).
		Where("id = ?", id).
		Update("status", int(status))

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新订单状态失败")
	}

	if result.RowsAffected == 0 {
		return order.ErrOrderNotFound
	}

	return nil
}

// List 后台订单列表(全部用户,可选状态过滤,按创建时间降序)
func (r *orderRepository) List(ctx context.Context, params order.ListParams) ([]*order.Order, int64, error) {
	query := getDB(ctx, r.db).Model(&OrderModel{})

	if params.Status != nil {
		query = query.Where("status = ?", int(*params.Status))
	}

	return r.paginate(query, params.Page, params.Limit, "created_at DESC")
}

// ListByUserID 查询用户自己的订单列表(按创建时间降序)
func (r *orderRepository) ListByUserID(ctx context.Context, userID uint, page, limit int) ([]*order.Order, int64, error) {
	query := getDB(ctx, r.db).Model(&OrderModel{}).
		Where("user_id = ?", userID)

	return r.paginate(query, page, limit, "created_at DESC")
}

// History 订单历史(按用户,可选状态/时间区间过滤,分页)
func (r *orderRepository) History(ctx context.Context, userID uint, params order.HistoryParams) ([]*order.Order, int64, error) {
	query := getDB(ctx, r.db).Model(&OrderModel{}).
		Where("user_id = ?", userID)

	if params.Status != nil {
		query = query.Where("status = ?", int(*params.Status))
	}
	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}

	orderBy := "created_at DESC"
	if params.SortAsc {
		orderBy = "created_at ASC"
	}

	return r.paginate(query, params.Page, params.Limit, orderBy)
}

// GetStats 订单统计(总数+按状态计数)
// 一次GROUP BY查询出各状态计数,缺失的状态补0
func (r *orderRepository) GetStats(ctx context.Context) (*order.Stats, error) {
	type row struct {
		Status int
		Count  int64
	}
	var rows []row

	err := getDB(ctx, r.db).Model(&OrderModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询订单统计失败")
	}

	stats := &order.Stats{}
	for _, rw := range rows {
		stats.Total += rw.Count
		switch order.OrderStatus(rw.Status) {
		case order.OrderStatusPending:
			stats.Pending = rw.Count
		case order.OrderStatusProcessing:
			stats.Processing = rw.Count
		case order.OrderStatusCompleted:
			stats.Completed = rw.Count
		case order.OrderStatusCancelled:
			stats.Cancelled = rw.Count
		}
	}

	return stats, nil
}

// Recent 最近N个订单(按创建时间降序)
func (r *orderRepository) Recent(ctx context.Context, limit int) ([]*order.Order, error) {
	var models []OrderModel
	err := getDB(ctx, r.db).
		Preload("Items").
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询最近订单失败")
	}

	return toOrderEntities(models), nil
}

// paginate 通用分页查询:先Count后Find,统一Preload明细
func (r *orderRepository) paginate(query *gorm.DB, page, limit int, orderBy string) ([]*order.Order, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单总数失败")
	}

	var models []OrderModel
	err := query.
		Preload("Items").
		Order(orderBy).
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单列表失败")
	}

	return toOrderEntities(models), total, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

func toOrderModel(o *order.Order) *OrderModel {
	items := make([]OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemModel{
			BookID:   item.BookID,
			Title:    item.Title,
			Price:    item.Price,
			Quantity: item.Quantity,
		}
	}

	return &OrderModel{
		OrderNo:       o.OrderNo,
		UserID:        o.UserID,
		CustomerName:  o.CustomerInfo.Name,
		CustomerPhone: o.CustomerInfo.Phone,
		CustomerEmail: o.CustomerInfo.Email,
		Address:       o.CustomerInfo.Address,
		City:          o.CustomerInfo.City,
		PaymentMethod: string(o.PaymentMethod),
		Subtotal:      o.Subtotal,
		ShippingFee:   o.ShippingFee,
		Discount:      o.Discount,
		Total:         o.Total,
		Status:        int(o.Status),
		Items:         items,
	}
}

func toOrderEntity(model *OrderModel) *order.Order {
	items := make([]order.OrderItem, len(model.Items))
	for i, item := range model.Items {
		items[i] = order.OrderItem{
			ID:       item.ID,
			OrderID:  item.OrderID,
			BookID:   item.BookID,
			Title:    item.Title,
			Price:    item.Price,
			Quantity: item.Quantity,
		}
	}

	return &order.Order{
		ID:      model.ID,
		OrderNo: model.OrderNo,
		UserID:  model.UserID,
		Items:   items,
		CustomerInfo: order.CustomerInfo{
			Name:    model.CustomerName,
			Phone:   model.CustomerPhone,
			Email:   model.CustomerEmail,
			Address: model.Address,
			City:    model.City,
			UserID:  model.UserID,
		},
		PaymentMethod: order.PaymentMethod(model.PaymentMethod),
		Status:        order.OrderStatus(model.Status),
		Subtotal:      model.Subtotal,
		ShippingFee:   model.ShippingFee,
		Discount:      model.Discount,
		Total:         model.Total,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

func toOrderEntities(models []OrderModel) []*order.Order {
	out := make([]*order.Order, len(models))
	for i := range models {
		out[i] = toOrderEntity(&models[i])
	}
	return out
}

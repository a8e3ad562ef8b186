package order

import (
	"context"
	"log"
	"time"

	"github.com/ayabook/bookshop/internal/domain/book"
	"github.com/ayabook/bookshop/internal/domain/order"
	"github.com/ayabook/bookshop/pkg/metrics"
)

// UpdateOrderStatusUseCase 更新订单状态用例(管理员操作)
// 核心在取消分支:状态流转到cancelled时在同一事务内回滚库存,
// 保证"订单取消"与"库存恢复"要么都发生要么都不发生
type UpdateOrderStatusUseCase struct {
	orderRepo order.Repository
	bookRepo  book.Repository
	txManager Transactor
	events    order.EventPublisher
}

// NewUpdateOrderStatusUseCase 创建更新订单状态用例
func NewUpdateOrderStatusUseCase(
	orderRepo order.Repository,
	bookRepo book.Repository,
	txManager Transactor,
	events order.EventPublisher,
) *UpdateOrderStatusUseCase {
	return &UpdateOrderStatusUseCase{
		orderRepo: orderRepo,
		bookRepo:  bookRepo,
		txManager: txManager,
		events:    events,
	}
}

// UpdateOrderStatusRequest 更新状态请求DTO
type UpdateOrderStatusRequest struct {
	OrderID uint
	Status  string // pending | processing | completed | cancelled
}

// UpdateOrderStatusResponse 更新状态响应DTO
type UpdateOrderStatusResponse struct {
	OrderID   uint   `json:"orderId"`
	OrderNo   string `json:"orderNo"`
	Status    string `json:"status"`
	UpdatedAt string `json:"updatedAt"`
}

// Execute 执行状态更新
// 流程:
//
//	1. 解析并校验目标状态字符串
//	2. 事务内加载订单,按状态机校验流转合法性
//	3. 目标是cancelled时:逐本恢复库存(UpdateStock负数量=符号翻转恢复)
//	4. 更新订单状态
//
// 幂等性:重复取消会被状态机拒绝(cancelled→cancelled非法),
// 库存至多恢复一次
func (uc *UpdateOrderStatusUseCase) Execute(ctx context.Context, req UpdateOrderStatusRequest) (*UpdateOrderStatusResponse, error) {
	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	var result *order.Order
	var cancelled bool

	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		o, err := uc.orderRepo.FindByID(txCtx, req.OrderID)
		if err != nil {
			return err
		}

		if err := o.TransitionTo(target); err != nil {
			return err
		}

		// 取消订单:恢复每本书的库存与销量
		// 已删除的图书跳过(库存恢复无意义),其余失败回滚整个事务
		if target == order.OrderStatusCancelled {
			restored := 0
			for _, item := range o.RestorableItems() {
				err := uc.bookRepo.UpdateStock(txCtx, item.BookID, -item.Quantity)
				if err != nil {
					if err == book.ErrBookNotFound {
						log.Printf("取消订单恢复库存:图书已删除,跳过: orderNo=%s, bookId=%d",
							o.OrderNo, item.BookID)
						continue
					}
					return err
				}
				restored += item.Quantity
			}
			metrics.StockRestoredTotal.Add(float64(restored))
			cancelled = true
		}

		if err := uc.orderRepo.UpdateStatus(txCtx, o.ID, target); err != nil {
			return err
		}

		result = o
		return nil
	})

	if err != nil {
		return nil, err
	}

	if cancelled {
		metrics.OrdersCancelledTotal.Inc()
		if err := uc.events.OrderCancelled(ctx, result); err != nil {
			log.Printf("发布订单取消事件失败: orderNo=%s, err=%v", result.OrderNo, err)
		}
	}

	return &UpdateOrderStatusResponse{
		OrderID:   result.ID,
		OrderNo:   result.OrderNo,
		Status:    result.Status.String(),
		UpdatedAt: result.UpdatedAt.Format(time.RFC3339),
	}, nil
}

package order

import (
	"context"
	"log"
	"time"

	"github.com/ayabook/bookshop/internal/domain/book"
	"github.com/ayabook/bookshop/internal/domain/order"
	"github.com/ayabook/bookshop/pkg/metrics"
)

// CreateOrderUseCase 创建订单用例
// 这是整个项目最核心的用例:事务处理、并发控制、业务规则校验
type CreateOrderUseCase struct {
	orderRepo order.Repository
	bookRepo  book.Repository
	txManager Transactor
	events    order.EventPublisher
}

// NewCreateOrderUseCase 创建下单用例
func NewCreateOrderUseCase(
	orderRepo order.Repository,
	bookRepo book.Repository,
	txManager Transactor,
	events order.EventPublisher,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		orderRepo: orderRepo,
		bookRepo:  bookRepo,
		txManager: txManager,
		events:    events,
	}
}

// CreateOrderRequest 下单请求DTO
// 金额字段由结算侧(前端/购物车服务)组装后传入:
// 本服务只负责库存一致性与落库,不重算计价
type CreateOrderRequest struct {
	UserID      uint              // 下单用户ID(从JWT中提取,0表示游客)
	Items       []CreateOrderItem // 订单明细
	Customer    CustomerInfo      // 收货人信息
	Payment     string            // 支付方式(cod/bank)
	Subtotal    int64             // 商品小计
	ShippingFee int64             // 运费
	Discount    int64             // 优惠金额
	Total       int64             // 订单总金额
}

// CreateOrderItem 订单明细项
type CreateOrderItem struct {
	BookID   uint // 图书ID
	Quantity int  // 购买数量
}

// CustomerInfo 收货人信息
type CustomerInfo struct {
	Name    string
	Phone   string
	Email   string
	Address string
	City    string
}

// CreateOrderResponse 下单响应DTO
type CreateOrderResponse struct {
	OrderID   uint   `json:"orderId"`
	OrderNo   string `json:"orderNo"`
	Total     int64  `json:"total"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

// Execute 执行下单用例
// 防止超卖的完整流程:
//
//	1. SELECT FOR UPDATE 锁定所有涉及的库存行
//	2. 全量校验库存(任何一本不足,整单拒绝,不做部分扣减)
//	3. 创建订单(含明细快照)
//	4. 逐本条件扣减库存(WHERE stock - q >= 0,提交期的最终防线)
//	5. COMMIT释放锁
//
// 校验与扣减分两遍走:先全部校验通过,再开始mutate,
// 避免"扣了前两本发现第三本不够"的中间状态依赖回滚兜底
func (uc *CreateOrderUseCase) Execute(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error) {
	start := time.Now()

	// 1. 参数校验
	if len(req.Items) == 0 {
		return nil, order.ErrInvalidOrderItems
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, order.ErrInvalidQuantity
		}
	}
	payment := order.PaymentMethod(req.Payment)
	if !payment.Valid() {
		return nil, order.ErrInvalidPayment
	}

	var result *order.Order
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 第一遍:锁定并校验全部明细
		// LockByID执行SELECT FOR UPDATE,其他事务必须等待
		// 当前事务COMMIT或ROLLBACK后才能访问这些行
		bookMap := make(map[uint]*book.Book)
		for _, item := range req.Items {
			b, err := uc.bookRepo.LockByID(txCtx, item.BookID)
			if err != nil {
				return err
			}

			if b.Stock < item.Quantity {
				// 错误信息指明具体哪本书不足
				return book.NewInsufficientStock(b.Title, b.Stock, item.Quantity)
			}

			bookMap[item.BookID] = b
		}

		// 明细快照:使用锁定时的书名与价格,而非前端传递的值
		// 防止改价攻击与后续改名影响历史订单
		orderItems := make([]order.OrderItem, len(req.Items))
		for i, item := range req.Items {
			b := bookMap[item.BookID]
			orderItems[i] = order.OrderItem{
				BookID:   item.BookID,
				Title:    b.Title,
				Price:    b.Price,
				Quantity: item.Quantity,
			}
		}

		// 创建订单(含订单明细)
		orderNo := order.GenerateOrderNo()
		newOrder := order.NewOrder(orderNo, req.UserID, orderItems, order.CustomerInfo{
			Name:    req.Customer.Name,
			Phone:   req.Customer.Phone,
			Email:   req.Customer.Email,
			Address: req.Customer.Address,
			City:    req.Customer.City,
		}, payment, req.Subtotal, req.ShippingFee, req.Discount, req.Total)

		if err := uc.orderRepo.Create(txCtx, newOrder); err != nil {
			return err
		}

		// 第二遍:扣减库存
		// 条件UPDATE在提交期再拦一次不足(锁定校验通过也可能失败),
		// 任何一本失败整个事务回滚,订单不会创建,库存不会减少
		for _, item := range req.Items {
			if err := uc.bookRepo.UpdateStock(txCtx, item.BookID, item.Quantity); err != nil {
				return err
			}
		}

		result = newOrder
		return nil
	})

	if err != nil {
		metrics.OrdersFailedTotal.Inc()
		return nil, err
	}

	metrics.OrdersCreatedTotal.Inc()
	metrics.OrderCreationDuration.Observe(time.Since(start).Seconds())

	// 事件发布是尽力而为:失败只记日志,不影响已提交的订单
	if err := uc.events.OrderCreated(ctx, result); err != nil {
		log.Printf("发布订单创建事件失败: orderNo=%s, err=%v", result.OrderNo, err)
	}

	return &CreateOrderResponse{
		OrderID:   result.ID,
		OrderNo:   result.OrderNo,
		Total:     result.Total,
		Status:    result.Status.String(),
		CreatedAt: result.CreatedAt.Format(time.RFC3339),
	}, nil
}

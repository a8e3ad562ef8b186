package order

import (
	"context"

	"github.com/ayabook/bookshop/internal/domain/order"
	"github.com/ayabook/bookshop/internal/domain/user"
	apperrors "github.com/ayabook/bookshop/pkg/errors"
)

// GetOrderUseCase 查询订单详情用例
// 权限规则:管理员可查任意订单,普通用户只能查自己的订单
type GetOrderUseCase struct {
	orderRepo order.Repository
}

// NewGetOrderUseCase 创建订单详情用例
func NewGetOrderUseCase(orderRepo order.Repository) *GetOrderUseCase {
	return &GetOrderUseCase{orderRepo: orderRepo}
}

// GetOrderRequest 订单详情请求DTO
type GetOrderRequest struct {
	OrderID uint
	UserID  uint   // 发起请求的用户ID
	Role    string // 发起请求的用户角色
}

// Execute 执行查询
// 订单存在但无权访问时返回Forbidden(不伪装成NotFound:
// 订单ID本身不是敏感信息,明确的403便于排查)
func (uc *GetOrderUseCase) Execute(ctx context.Context, req GetOrderRequest) (*OrderView, error) {
	o, err := uc.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	if req.Role != user.RoleAdmin && !o.IsOwnedBy(req.UserID) {
		return nil, apperrors.ErrForbidden
	}

	return ToOrderView(o), nil
}

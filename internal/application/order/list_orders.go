package order

import (
	"context"

	"github.com/ayabook/bookshop/internal/domain/order"
	"github.com/ayabook/bookshop/pkg/response"
)

// ListOrdersUseCase 订单列表用例
// 两个入口:
// - 后台列表(管理员,全部用户,可选状态过滤)
// - 我的订单(普通用户,只看自己的)
type ListOrdersUseCase struct {
	orderRepo order.Repository
}

// NewListOrdersUseCase 创建订单列表用例
func NewListOrdersUseCase(orderRepo order.Repository) *ListOrdersUseCase {
	return &ListOrdersUseCase{orderRepo: orderRepo}
}

// ListOrdersRequest 后台订单列表请求DTO
type ListOrdersRequest struct {
	Page   int
	Limit  int
	Status string // 可选状态过滤,空表示全部
}

// ListAll 后台订单列表(管理员)
// 非法的状态过滤值直接报错,不静默忽略
func (uc *ListOrdersUseCase) ListAll(ctx context.Context, req ListOrdersRequest) (*response.PageData, error) {
	params := order.ListParams{
		Page:  req.Page,
		Limit: req.Limit,
	}

	if req.Status != "" {
		status, err := order.ParseStatus(req.Status)
		if err != nil {
			return nil, err
		}
		params.Status = &status
	}

	params.Normalize()

	orders, total, err := uc.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	return response.NewPageData(ToOrderViews(orders), total, params.Page, params.Limit), nil
}

// ListMine 我的订单列表(普通用户)
func (uc *ListOrdersUseCase) ListMine(ctx context.Context, userID uint, page, limit int) (*response.PageData, error) {
	params := order.ListParams{Page: page, Limit: limit}
	params.Normalize()

	orders, total, err := uc.orderRepo.ListByUserID(ctx, userID, params.Page, params.Limit)
	if err != nil {
		return nil, err
	}

	return response.NewPageData(ToOrderViews(orders), total, params.Page, params.Limit), nil
}

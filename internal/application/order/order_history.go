package order

import (
	"context"
	"time"

	"github.com/ayabook/bookshop/internal/domain/order"
	"github.com/ayabook/bookshop/internal/domain/user"
	"github.com/ayabook/bookshop/pkg/response"
)

// OrderHistoryUseCase 订单历史用例
// 按用户查询,支持状态过滤与创建时间闭区间过滤
type OrderHistoryUseCase struct {
	orderRepo order.Repository
	userRepo  user.Repository
}

// NewOrderHistoryUseCase 创建订单历史用例
func NewOrderHistoryUseCase(orderRepo order.Repository, userRepo user.Repository) *OrderHistoryUseCase {
	return &OrderHistoryUseCase{
		orderRepo: orderRepo,
		userRepo:  userRepo,
	}
}

// OrderHistoryRequest 订单历史请求DTO
type OrderHistoryRequest struct {
	UserID    uint
	Page      int
	Limit     int
	Status    string // 可选状态过滤
	StartDate string // 可选,格式2006-01-02
	EndDate   string // 可选,格式2006-01-02(含当天,内部扩展到23:59:59)
	SortAsc   bool
}

// Execute 执行查询
// 用户不存在时明确报错(区别于"存在但没有订单"的空列表)
func (uc *OrderHistoryUseCase) Execute(ctx context.Context, req OrderHistoryRequest) (*response.PageData, error) {
	if _, err := uc.userRepo.FindByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	params := order.HistoryParams{
		Page:    req.Page,
		Limit:   req.Limit,
		SortAsc: req.SortAsc,
	}

	if req.Status != "" {
		status, err := order.ParseStatus(req.Status)
		if err != nil {
			return nil, err
		}
		params.Status = &status
	}

	if req.StartDate != "" {
		t, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return nil, order.ErrInvalidDateRange
		}
		params.StartDate = &t
	}

	if req.EndDate != "" {
		t, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return nil, order.ErrInvalidDateRange
		}
		// 上界含当天整天
		end := t.Add(24*time.Hour - time.Second)
		params.EndDate = &end
	}

	params.Normalize()

	orders, total, err := uc.orderRepo.History(ctx, req.UserID, params)
	if err != nil {
		return nil, err
	}

	return response.NewPageData(ToOrderViews(orders), total, params.Page, params.Limit), nil
}

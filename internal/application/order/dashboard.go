package order

import (
	"context"
	"log"

	"github.com/ayabook/bookshop/internal/domain/order"
)

// DashboardUseCase 运营看板用例(管理员)
// 订单统计与最近订单两个只读入口
type DashboardUseCase struct {
	orderRepo order.Repository
}

// NewDashboardUseCase 创建看板用例
func NewDashboardUseCase(orderRepo order.Repository) *DashboardUseCase {
	return &DashboardUseCase{orderRepo: orderRepo}
}

// defaultRecentLimit 最近订单默认条数
const defaultRecentLimit = 5

// Stats 订单统计(总数+按状态计数,缺失的状态补0)
func (uc *DashboardUseCase) Stats(ctx context.Context) (*order.Stats, error) {
	return uc.orderRepo.GetStats(ctx)
}

// Recent 最近订单快照
// 看板上的锦上添花数据:查询失败降级为空列表而不是报错,
// 不让统计主数据被连累
func (uc *DashboardUseCase) Recent(ctx context.Context, limit int) []*OrderView {
	if limit < 1 {
		limit = defaultRecentLimit
	}

	recent, err := uc.orderRepo.Recent(ctx, limit)
	if err != nil {
		log.Printf("查询最近订单失败,降级为空列表: %v", err)
		return []*OrderView{}
	}

	views := ToOrderViews(recent)
	if views == nil {
		views = []*OrderView{}
	}
	return views
}

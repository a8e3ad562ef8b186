package order

import (
	"context"
)

// EventPublisher 订单事件发布接口
// 设计说明:
// 1. domain层只定义接口,infrastructure层用RabbitMQ实现
// 2. 事件发布是尽力而为:发布失败只记日志,绝不让下单/取消请求失败
// 3. 下游(通知、报表)按事件自行消费,本服务不关心消费方
type EventPublisher interface {
	// OrderCreated 订单创建成功事件(routing key: order.created)
	OrderCreated(ctx context.Context, o *Order) error

	// OrderCancelled 订单取消事件(routing key: order.cancelled)
	OrderCancelled(ctx context.Context, o *Order) error
}

// NopEventPublisher 空实现(未配置MQ时使用,也便于测试)
type NopEventPublisher struct{}

func (NopEventPublisher) OrderCreated(ctx context.Context, o *Order) error   { return nil }
func (NopEventPublisher) OrderCancelled(ctx context.Context, o *Order) error { return nil }

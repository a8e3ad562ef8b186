package mq

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/ayabook/bookshop/internal/domain/order"
	"github.com/ayabook/bookshop/pkg/circuitbreaker"
	"github.com/ayabook/bookshop/pkg/metrics"
	"github.com/ayabook/bookshop/pkg/mq"
)

// 订单事件routing key
const (
	RoutingKeyOrderCreated   = "order.created"
	RoutingKeyOrderCancelled = "order.cancelled"
)

// OrderEvent 订单事件消息体
// 下游按需消费,只携带标识与摘要,不传完整订单(消费方回查API)
type OrderEvent struct {
	OrderID   uint      `json:"orderId"`
	OrderNo   string    `json:"orderNo"`
	UserID    uint      `json:"userId"`
	Status    string    `json:"status"`
	Total     int64     `json:"total"`
	ItemCount int       `json:"itemCount"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderEventPublisher 订单事件发布者(RabbitMQ实现)
// 设计说明:
// 1. 实现domain/order/events.go的EventPublisher接口
// 2. 发布包在熔断器里:MQ持续不可用时快速失败,不拖慢下单链路
// 3. 发布失败只计数+记日志,调用方(用例层)不因此让请求失败
type OrderEventPublisher struct {
	publisher *mq.Publisher
	breaker   *circuitbreaker.CircuitBreaker
}

// NewOrderEventPublisher 创建订单事件发布者
func NewOrderEventPublisher(publisher *mq.Publisher) *OrderEventPublisher {
	breaker := circuitbreaker.NewCircuitBreaker("mq-publish", circuitbreaker.Config{
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	breaker.SetStateChangeCallback(func(name string, from, to circuitbreaker.State) {
		log.Printf("熔断器[%s]状态变更: %s -> %s", name, from, to)
	})

	return &OrderEventPublisher{
		publisher: publisher,
		breaker:   breaker,
	}
}

// OrderCreated 发布订单创建事件
func (p *OrderEventPublisher) OrderCreated(ctx context.Context, o *order.Order) error {
	return p.publish(ctx, RoutingKeyOrderCreated, o)
}

// OrderCancelled 发布订单取消事件
func (p *OrderEventPublisher) OrderCancelled(ctx context.Context, o *order.Order) error {
	return p.publish(ctx, RoutingKeyOrderCancelled, o)
}

func (p *OrderEventPublisher) publish(ctx context.Context, routingKey string, o *order.Order) error {
	event := OrderEvent{
		OrderID:   o.ID,
		OrderNo:   o.OrderNo,
		UserID:    o.UserID,
		Status:    o.Status.String(),
		Total:     o.Total,
		ItemCount: len(o.Items),
		Timestamp: time.Now(),
	}

	err := p.breaker.Execute(func() error {
		return p.publisher.Publish(ctx, routingKey, event)
	})

	switch {
	case err == nil:
		metrics.EventsPublishedTotal.WithLabelValues(routingKey, "success").Inc()
	case errors.Is(err, circuitbreaker.ErrOpenState):
		metrics.EventsPublishedTotal.WithLabelValues(routingKey, "rejected").Inc()
	default:
		metrics.EventsPublishedTotal.WithLabelValues(routingKey, "failure").Inc()
	}

	return err
}

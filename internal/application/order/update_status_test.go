package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayabook/bookshop/internal/domain/book"
	"github.com/ayabook/bookshop/internal/domain/order"
)

// placeOrder 测试辅助:下一单并返回订单ID
func placeOrder(t *testing.T, bookRepo *fakeBookRepo, orderRepo *fakeOrderRepo, items ...CreateOrderItem) uint {
	t.Helper()
	uc := newCreateOrderUseCase(bookRepo, orderRepo, nil)
	resp, err := uc.Execute(context.Background(), validRequest(items...))
	require.NoError(t, err, "准备测试订单失败")
	return resp.OrderID
}

func newUpdateStatusUseCase(bookRepo *fakeBookRepo, orderRepo *fakeOrderRepo, events order.EventPublisher) *UpdateOrderStatusUseCase {
	if events == nil {
		events = order.NopEventPublisher{}
	}
	return NewUpdateOrderStatusUseCase(orderRepo, bookRepo, fakeTx{}, events)
}

// TestUpdateOrderStatus_HappyPath 正常流转:pending→processing→completed
func TestUpdateOrderStatus_HappyPath(t *testing.T) {
	bookRepo := newFakeBookRepo(&book.Book{ID: 1, Title: "《测试》", Price: 100, Stock: 10})
	orderRepo := newFakeOrderRepo()
	orderID := placeOrder(t, bookRepo, orderRepo, CreateOrderItem{BookID: 1, Quantity: 2})

	uc := newUpdateStatusUseCase(bookRepo, orderRepo, nil)

	resp, err := uc.Execute(context.Background(), UpdateOrderStatusRequest{OrderID: orderID, Status: "processing"})
	require.NoError(t, err)
	assert.Equal(t, "processing", resp.Status)

	resp, err = uc.Execute(context.Background(), UpdateOrderStatusRequest{OrderID: orderID, Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)

	// 完成订单不回滚库存
	b, _ := bookRepo.FindByID(context.Background(), 1)
	assert.Equal(t, 8, b.Stock)
	assert.Equal(t, 2, b.SoldCount)
}

// TestUpdateOrderStatus_CancelRestoresStock 取消订单恢复库存与销量
func TestUpdateOrderStatus_CancelRestoresStock(t *testing.T) {
	bookRepo := newFakeBookRepo(
		&book.Book{ID: 1, Title: "《测试A》", Price: 100, Stock: 10},
		&book.Book{ID: 2, Title: "《测试B》", Price: 200, Stock: 5},
	)
	orderRepo := newFakeOrderRepo()
	events := &spyEvents{}
	orderID := placeOrder(t, bookRepo, orderRepo,
		CreateOrderItem{BookID: 1, Quantity: 3}, CreateOrderItem{BookID: 2, Quantity: 1})

	uc := newUpdateStatusUseCase(bookRepo, orderRepo, events)

	resp, err := uc.Execute(context.Background(), UpdateOrderStatusRequest{OrderID: orderID, Status: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)

	// 每本书的库存与销量都恢复到下单前
	b1, _ := bookRepo.FindByID(context.Background(), 1)
	assert.Equal(t, 10, b1.Stock)
	assert.Equal(t, 0, b1.SoldCount)
	b2, _ := bookRepo.FindByID(context.Background(), 2)
	assert.Equal(t, 5, b2.Stock)

	// 发布取消事件
	assert.Len(t, events.cancelled, 1)
}

// TestUpdateOrderStatus_CancelFromProcessing processing状态也允许取消
func TestUpdateOrderStatus_CancelFromProcessing(t *testing.T) {
	bookRepo := newFakeBookRepo(&book.Book{ID: 1, Title: "《测试》", Price: 100, Stock: 10})
	orderRepo := newFakeOrderRepo()
	orderID := placeOrder(t, bookRepo, orderRepo, CreateOrderItem{BookID: 1, Quantity: 4})

	uc := newUpdateStatusUseCase(bookRepo, orderRepo, nil)

	_, err := uc.Execute(context.Background(), UpdateOrderStatusRequest{OrderID: orderID, Status: "processing"})
	require.NoError(t, err)
	_, err = uc.Execute(context.Background(), UpdateOrderStatusRequest{OrderID: orderID, Status: "cancelled"})
	require.NoError(t, err)

	b, _ := bookRepo.FindByID(context.Background(), 1)
	assert.Equal(t, 10, b.Stock, "processing取消同样恢复库存")
}

// TestUpdateOrderStatus_CancelTwice 重复取消被状态机拒绝,库存只恢复一次
func TestUpdateOrderStatus_CancelTwice(t *testing.T) {
	bookRepo := newFakeBookRepo(&book.Book{ID: 1, Title: "《测试》", Price: 100, Stock: 10})
	orderRepo := newFakeOrderRepo()
	orderID := placeOrder(t, bookRepo, orderRepo, CreateOrderItem{BookID: 1, Quantity: 2})

	uc := newUpdateStatusUseCase(bookRepo, orderRepo, nil)

	_, err := uc.Execute(context.Background(), UpdateOrderStatusRequest{OrderID: orderID, Status: "cancelled"})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), UpdateOrderStatusRequest{OrderID: orderID, Status: "cancelled"})
	assert.ErrorIs(t, err, order.ErrInvalidStatusTransition, "cancelled→cancelled非法")

	b, _ := bookRepo.FindByID(context.Background(), 1)
	assert.Equal(t, 10, b.Stock, "库存至多恢复一次")
	assert.Equal(t, 0, b.SoldCount)
}

// TestUpdateOrderStatus_TerminalRejects 终态订单拒绝任何流转
func TestUpdateOrderStatus_TerminalRejects(t *testing.T) {
	bookRepo := newFakeBookRepo(&book.Book{ID: 1, Title: "《测试》", Price: 100, Stock: 10})
	orderRepo := newFakeOrderRepo()
	orderID := placeOrder(t, bookRepo, orderRepo, CreateOrderItem{BookID: 1, Quantity: 1})

	uc := newUpdateStatusUseCase(bookRepo, orderRepo, nil)

	_, err := uc.Execute(context.Background(), UpdateOrderStatusRequest{OrderID: orderID, Status: "processing"})
	require.NoError(t, err)
	_, err = uc.Execute(context.Background(), UpdateOrderStatusRequest{OrderID: orderID, Status: "completed"})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), UpdateOrderStatusRequest{OrderID: orderID, Status: "cancelled"})
	assert.ErrorIs(t, err, order.ErrInvalidStatusTransition, "已完成订单不能取消")

	b, _ := bookRepo.FindByID(context.Background(), 1)
	assert.Equal(t, 9, b.Stock, "库存不应该被回滚")
}

// TestUpdateOrderStatus_CancelSkipsDeletedBook 取消时已删除的图书跳过
func TestUpdateOrderStatus_CancelSkipsDeletedBook(t *testing.T) {
	bookRepo := newFakeBookRepo(
		&book.Book{ID: 1, Title: "《测试A》", Price: 100, Stock: 10},
		&book.Book{ID: 2, Title: "《测试B》", Price: 200, Stock: 5},
	)
	orderRepo := newFakeOrderRepo()
	orderID := placeOrder(t, bookRepo, orderRepo,
		CreateOrderItem{BookID: 1, Quantity: 2}, CreateOrderItem{BookID: 2, Quantity: 1})

	// 下单后图书2被商家删除
	require.NoError(t, bookRepo.Delete(context.Background(), 2))

	uc := newUpdateStatusUseCase(bookRepo, orderRepo, nil)
	_, err := uc.Execute(context.Background(), UpdateOrderStatusRequest{OrderID: orderID, Status: "cancelled"})
	require.NoError(t, err, "已删除图书不应该阻塞取消")

	b1, _ := bookRepo.FindByID(context.Background(), 1)
	assert.Equal(t, 10, b1.Stock, "仍存在的图书正常恢复")
}

// TestUpdateOrderStatus_InvalidInput 参数错误
func TestUpdateOrderStatus_InvalidInput(t *testing.T) {
	uc := newUpdateStatusUseCase(newFakeBookRepo(), newFakeOrderRepo(), nil)

	t.Run("非法状态字符串", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), UpdateOrderStatusRequest{OrderID: 1, Status: "shipped"})
		assert.ErrorIs(t, err, order.ErrInvalidStatus)
	})

	t.Run("订单不存在", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), UpdateOrderStatusRequest{OrderID: 999, Status: "processing"})
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})
}

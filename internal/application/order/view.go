package order

import (
	"time"

	"github.com/ayabook/bookshop/internal/domain/order"
)

// OrderView 订单视图DTO(详情/列表/历史共用)
// 状态对外统一为字符串(pending/processing/completed/cancelled)
type OrderView struct {
	ID            uint            `json:"id"`
	OrderNo       string          `json:"orderNo"`
	Items         []OrderItemView `json:"items"`
	Customer      CustomerView    `json:"customerInfo"`
	PaymentMethod string          `json:"paymentMethod"`
	Status        string          `json:"status"`
	Subtotal      int64           `json:"subtotal"`
	ShippingFee   int64           `json:"shippingFee"`
	Discount      int64           `json:"discount"`
	Total         int64           `json:"total"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// OrderItemView 订单明细视图
type OrderItemView struct {
	BookID   uint   `json:"bookId"`
	Title    string `json:"title"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

// CustomerView 收货人信息视图
type CustomerView struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address"`
	City    string `json:"city,omitempty"`
	UserID  uint   `json:"userId,omitempty"`
}

// ToOrderView 领域实体 → 视图DTO
func ToOrderView(o *order.Order) *OrderView {
	items := make([]OrderItemView, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemView{
			BookID:   item.BookID,
			Title:    item.Title,
			Price:    item.Price,
			Quantity: item.Quantity,
		}
	}

	return &OrderView{
		ID:      o.ID,
		OrderNo: o.OrderNo,
		Items:   items,
		Customer: CustomerView{
			Name:    o.CustomerInfo.Name,
			Phone:   o.CustomerInfo.Phone,
			Email:   o.CustomerInfo.Email,
			Address: o.CustomerInfo.Address,
			City:    o.CustomerInfo.City,
			UserID:  o.CustomerInfo.UserID,
		},
		PaymentMethod: string(o.PaymentMethod),
		Status:        o.Status.String(),
		Subtotal:      o.Subtotal,
		ShippingFee:   o.ShippingFee,
		Discount:      o.Discount,
		Total:         o.Total,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

// ToOrderViews 批量转换
func ToOrderViews(orders []*order.Order) []*OrderView {
	out := make([]*OrderView, len(orders))
	for i, o := range orders {
		out[i] = ToOrderView(o)
	}
	return out
}

package dto

// CreateOrderRequest HTTP下单请求
// 金额字段由前端结算侧计算后提交,本服务原样存储
// (本服务的职责是库存一致性,明细单价以数据库当前价格为准)
type CreateOrderRequest struct {
	Items         []CreateOrderItem        `json:"items" binding:"required,min=1,dive"`
	CustomerInfo  CreateOrderCustomerInfo  `json:"customerInfo" binding:"required"`
	PaymentMethod string                   `json:"paymentMethod" binding:"required,oneof=cod bank" example:"cod"`
	Subtotal      int64                    `json:"subtotal" binding:"min=0"`
	ShippingFee   int64                    `json:"shippingFee" binding:"min=0"`
	Discount      int64                    `json:"discount" binding:"min=0"`
	Total         int64                    `json:"total" binding:"min=0"`
}

// CreateOrderItem HTTP下单明细项
type CreateOrderItem struct {
	BookID   uint `json:"bookId" binding:"required" example:"1"`
	Quantity int  `json:"quantity" binding:"required,min=1" example:"2"`
}

// CreateOrderCustomerInfo HTTP收货人信息
type CreateOrderCustomerInfo struct {
	Name    string `json:"name" binding:"required,max=100"`
	Phone   string `json:"phone" binding:"omitempty,max=20"`
	Email   string `json:"email" binding:"omitempty,email,max=100"`
	Address string `json:"address" binding:"required,max=500"`
	City    string `json:"city" binding:"omitempty,max=100"`
}

// UpdateOrderStatusRequest HTTP更新订单状态请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending processing completed cancelled" example:"processing"`
}

// ListOrdersRequest HTTP后台订单列表请求(query参数)
type ListOrdersRequest struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Status string `form:"status" binding:"omitempty,oneof=pending processing completed cancelled"`
}

// OrderHistoryRequest HTTP订单历史请求(query参数)
type OrderHistoryRequest struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Status    string `form:"status" binding:"omitempty,oneof=pending processing completed cancelled"`
	StartDate string `form:"startDate" binding:"omitempty,datetime=2006-01-02" example:"2026-01-01"`
	EndDate   string `form:"endDate" binding:"omitempty,datetime=2006-01-02" example:"2026-01-31"`
	Sort      string `form:"sort" binding:"omitempty,oneof=asc desc" example:"desc"`
}

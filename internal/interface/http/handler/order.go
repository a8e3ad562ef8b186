package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	apporder "github.com/ayabook/bookshop/internal/application/order"
	"github.com/ayabook/bookshop/internal/interface/http/dto"
	"github.com/ayabook/bookshop/internal/interface/http/middleware"
	"github.com/ayabook/bookshop/pkg/response"
)

// OrderHandler 订单HTTP处理器
type OrderHandler struct {
	createUseCase    *apporder.CreateOrderUseCase
	updateUseCase    *apporder.UpdateOrderStatusUseCase
	getUseCase       *apporder.GetOrderUseCase
	listUseCase      *apporder.ListOrdersUseCase
	historyUseCase   *apporder.OrderHistoryUseCase
	dashboardUseCase *apporder.DashboardUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	createUseCase *apporder.CreateOrderUseCase,
	updateUseCase *apporder.UpdateOrderStatusUseCase,
	getUseCase *apporder.GetOrderUseCase,
	listUseCase *apporder.ListOrdersUseCase,
	historyUseCase *apporder.OrderHistoryUseCase,
	dashboardUseCase *apporder.DashboardUseCase,
) *OrderHandler {
	return &OrderHandler{
		createUseCase:    createUseCase,
		updateUseCase:    updateUseCase,
		getUseCase:       getUseCase,
		listUseCase:      listUseCase,
		historyUseCase:   historyUseCase,
		dashboardUseCase: dashboardUseCase,
	}
}

// CreateOrder 下单
// @Summary      创建订单
// @Description  锁定库存→全量校验→落库→扣减,整单原子;任何一本不足则整单失败
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateOrderRequest true "订单信息"
// @Success      201 {object} response.Response{data=apporder.CreateOrderResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "图书不存在"
// @Failure      409 {object} response.Response "库存不足"
// @Router       /api/v1/orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	items := make([]apporder.CreateOrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = apporder.CreateOrderItem{
			BookID:   item.BookID,
			Quantity: item.Quantity,
		}
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), apporder.CreateOrderRequest{
		UserID: middleware.MustGetUserID(c),
		Items:  items,
		Customer: apporder.CustomerInfo{
			Name:    req.CustomerInfo.Name,
			Phone:   req.CustomerInfo.Phone,
			Email:   req.CustomerInfo.Email,
			Address: req.CustomerInfo.Address,
			City:    req.CustomerInfo.City,
		},
		Payment:     req.PaymentMethod,
		Subtotal:    req.Subtotal,
		ShippingFee: req.ShippingFee,
		Discount:    req.Discount,
		Total:       req.Total,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "下单成功", result)
}

// ListOrders 后台订单列表
// @Summary      订单列表(管理员)
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码"
// @Param        limit query int false "每页大小(默认10)"
// @Param        status query string false "状态过滤(pending/processing/completed/cancelled)"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var req dto.ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	result, err := h.listUseCase.ListAll(c.Request.Context(), apporder.ListOrdersRequest{
		Page:   req.Page,
		Limit:  req.Limit,
		Status: req.Status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListMyOrders 我的订单
// @Summary      我的订单列表
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码"
// @Param        limit query int false "每页大小(默认10)"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/orders/user/me [get]
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	var req dto.ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	result, err := h.listUseCase.ListMine(c.Request.Context(),
		middleware.MustGetUserID(c), req.Page, req.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// OrderHistory 订单历史
// @Summary      订单历史
// @Description  当前用户的订单,支持状态与创建日期闭区间过滤
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码"
// @Param        limit query int false "每页大小(默认10)"
// @Param        status query string false "状态过滤"
// @Param        startDate query string false "起始日期(YYYY-MM-DD)"
// @Param        endDate query string false "结束日期(YYYY-MM-DD,含当天)"
// @Param        sort query string false "排序方向(asc/desc,默认desc)"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/orders/history [get]
func (h *OrderHandler) OrderHistory(c *gin.Context) {
	var req dto.OrderHistoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	result, err := h.historyUseCase.Execute(c.Request.Context(), apporder.OrderHistoryRequest{
		UserID:    middleware.MustGetUserID(c),
		Page:      req.Page,
		Limit:     req.Limit,
		Status:    req.Status,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		SortAsc:   req.Sort == "asc",
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetOrder 订单详情
// @Summary      订单详情
// @Description  管理员可查任意订单,普通用户只能查自己的
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=apporder.OrderView}
// @Failure      403 {object} response.Response "无权查看"
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /api/v1/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.getUseCase.Execute(c.Request.Context(), apporder.GetOrderRequest{
		OrderID: id,
		UserID:  middleware.GetUserID(c),
		Role:    middleware.GetRole(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateOrderStatus 更新订单状态
// @Summary      更新订单状态(管理员)
// @Description  按状态机流转;流转到cancelled时同事务恢复库存,至多一次
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Param        request body dto.UpdateOrderStatusRequest true "目标状态"
// @Success      200 {object} response.Response{data=apporder.UpdateOrderStatusResponse}
// @Failure      400 {object} response.Response "状态非法或流转不允许"
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /api/v1/orders/{id}/status [put]
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	result, err := h.updateUseCase.Execute(c.Request.Context(), apporder.UpdateOrderStatusRequest{
		OrderID: id,
		Status:  req.Status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// OrderStats 订单统计
// @Summary      订单统计(管理员)
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /api/v1/orders/stats [get]
func (h *OrderHandler) OrderStats(c *gin.Context) {
	stats, err := h.dashboardUseCase.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}

// RecentOrders 最近订单
// @Summary      最近订单(管理员)
// @Description  查询失败降级为空列表
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "条数(默认5)"
// @Success      200 {object} response.Response
// @Router       /api/v1/orders/recent [get]
func (h *OrderHandler) RecentOrders(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		if n, err := parseLimit(v); err == nil {
			limit = n
		}
	}

	response.Success(c, h.dashboardUseCase.Recent(c.Request.Context(), limit))
}

// parseLimit 解析limit查询参数(1-100)
func parseLimit(v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}
	if n < 1 || n > 100 {
		return 0, fmt.Errorf("limit超出范围: %d", n)
	}
	return n, nil
}

package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/ayabook/bookshop/pkg/errors"
)

// Response 统一响应结构
// 对外契约：{success, message, data}
// 设计说明：
// 1. Success标记请求是否成功，错误响应使用非2xx状态码
// 2. Message是用户友好的提示信息
// 3. Data是业务数据，失败时省略
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "success",
		Data:    data,
	})
}

// Created 创建成功响应（201）
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// SuccessWithMessage 带自定义提示的成功响应
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	err := orderUseCase.Execute(...)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)

	c.JSON(appErr.HTTPStatus(), Response{
		Success: false,
		Message: appErr.Message,
	})
}

// BadRequest 参数错误响应（参数绑定失败等场景）
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Message: message,
	})
}

// =========================================
// 分页响应结构
// =========================================

// PageData 分页数据封装
// 对外契约：{items, total, page, limit, totalPages}
type PageData struct {
	Items      interface{} `json:"items"`      // 数据列表
	Total      int64       `json:"total"`      // 总记录数
	Page       int         `json:"page"`       // 当前页码
	Limit      int         `json:"limit"`      // 每页大小
	TotalPages int         `json:"totalPages"` // 总页数
}

// NewPageData 创建分页数据
// totalPages = ceil(total/limit)
func NewPageData(items interface{}, total int64, page, limit int) *PageData {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	return &PageData{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, items interface{}, total int64, page, limit int) {
	Success(c, NewPageData(items, total, page, limit))
}

package book

import (
	apperrors "github.com/ayabook/bookshop/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrInvalidPrice 无效的价格
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "价格不能为负数")

	// ErrInvalidStock 无效的库存
	ErrInvalidStock = apperrors.New(apperrors.ErrCodeInvalidParams, "库存不能为负数")

	// ErrInvalidQuantity 无效的数量
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "数量必须大于0")

	// ErrInsufficientStock 库存不足(通用,带书名的错误用NewInsufficientStock)
	ErrInsufficientStock = apperrors.New(apperrors.ErrCodeInsufficientStock, "库存不足")
)

// NewInsufficientStock 构造带书名的库存不足错误
// 对外契约要求指明是哪本书库存不足,便于前端渲染到具体条目
func NewInsufficientStock(title string, stock, want int) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeInsufficientStock,
		"图书《%s》库存不足,当前库存:%d,需要:%d", title, stock, want)
}

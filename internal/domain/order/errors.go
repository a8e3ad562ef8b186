package order

import (
	apperrors "github.com/ayabook/bookshop/pkg/errors"
)

// 订单领域错误定义
var (
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = apperrors.New(apperrors.ErrCodeOrderNotFound, "订单不存在")

	// ErrInvalidStatus 状态取值不合法(非四个枚举值之一)
	ErrInvalidStatus = apperrors.New(apperrors.ErrCodeInvalidParams, "订单状态取值不合法")

	// ErrInvalidStatusTransition 非法的状态流转(如completed→processing)
	ErrInvalidStatusTransition = apperrors.New(apperrors.ErrCodeInvalidOrderStatus, "订单当前状态不允许此操作")

	// ErrInvalidOrderItems 订单明细不合法
	ErrInvalidOrderItems = apperrors.New(apperrors.ErrCodeInvalidParams, "订单明细不能为空")

	// ErrInvalidQuantity 购买数量不合法
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "购买数量必须大于0")

	// ErrInvalidPayment 支付方式不合法
	ErrInvalidPayment = apperrors.New(apperrors.ErrCodeInvalidParams, "支付方式必须是cod或bank")

	// ErrNotOrderOwner 无权查看他人订单
	ErrNotOrderOwner = apperrors.New(apperrors.ErrCodeForbidden, "无权查看此订单")

	// ErrInvalidDateRange 时间过滤参数不合法(格式要求2006-01-02)
	ErrInvalidDateRange = apperrors.New(apperrors.ErrCodeInvalidParams, "日期格式不合法,要求YYYY-MM-DD")
)

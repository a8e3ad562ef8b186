package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseStatus 测试状态字符串解析
func TestParseStatus(t *testing.T) {
	t.Run("四个合法状态", func(t *testing.T) {
		cases := map[string]OrderStatus{
			"pending":    OrderStatusPending,
			"processing": OrderStatusProcessing,
			"completed":  OrderStatusCompleted,
			"cancelled":  OrderStatusCancelled,
		}
		for s, want := range cases {
			got, err := ParseStatus(s)
			require.NoError(t, err, "解析%s不应该报错", s)
			assert.Equal(t, want, got)
			assert.Equal(t, s, got.String(), "String应该还原为原字符串")
		}
	})

	t.Run("非法取值返回参数错误", func(t *testing.T) {
		for _, s := range []string{"", "shipped", "PENDING", "done"} {
			_, err := ParseStatus(s)
			assert.ErrorIs(t, err, ErrInvalidStatus, "解析%q应该失败", s)
		}
	})
}

// TestOrderStatus_IsTerminal 测试终态判定
func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.False(t, OrderStatusPending.IsTerminal())
	assert.False(t, OrderStatusProcessing.IsTerminal())
	assert.True(t, OrderStatusCompleted.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
}

// TestOrder_StateMachine 测试订单状态机
// pending → processing | cancelled
// processing → completed | cancelled
// 终态不允许任何流转
func TestOrder_StateMachine(t *testing.T) {
	type transition struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}

	cases := []transition{
		{OrderStatusPending, OrderStatusProcessing, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusCompleted, false},
		{OrderStatusPending, OrderStatusPending, false},
		{OrderStatusProcessing, OrderStatusCompleted, true},
		{OrderStatusProcessing, OrderStatusCancelled, true},
		{OrderStatusProcessing, OrderStatusPending, false},
		{OrderStatusCompleted, OrderStatusCancelled, false},
		{OrderStatusCompleted, OrderStatusProcessing, false},
		{OrderStatusCancelled, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPending, false},
	}

	for _, c := range cases {
		o := &Order{Status: c.from}
		got := o.CanTransitionTo(c.to)
		assert.Equal(t, c.allowed, got, "%s -> %s", c.from, c.to)

		err := o.TransitionTo(c.to)
		if c.allowed {
			require.NoError(t, err)
			assert.Equal(t, c.to, o.Status, "状态应该已更新")
		} else {
			assert.ErrorIs(t, err, ErrInvalidStatusTransition)
			assert.Equal(t, c.from, o.Status, "非法流转不应该修改状态")
		}
	}
}

// TestOrder_TransitionUpdatesTimestamp 状态流转应该更新UpdatedAt
func TestOrder_TransitionUpdatesTimestamp(t *testing.T) {
	o := &Order{
		Status:    OrderStatusPending,
		UpdatedAt: time.Now().Add(-time.Hour),
	}
	before := o.UpdatedAt

	require.NoError(t, o.TransitionTo(OrderStatusProcessing))
	assert.True(t, o.UpdatedAt.After(before), "流转后UpdatedAt应该刷新")
}

// TestNewOrder 测试订单工厂方法
func TestNewOrder(t *testing.T) {
	items := []OrderItem{
		{BookID: 1, Title: "《Go程序设计》", Price: 5900, Quantity: 2},
	}
	info := CustomerInfo{Name: "张三", Address: "北京市海淀区", City: "北京"}

	o := NewOrder("ORD1699248000123456", 42, items, info, PaymentCOD,
		11800, 800, 600, 12000)

	assert.Equal(t, OrderStatusPending, o.Status, "初始状态应该是pending")
	assert.Equal(t, uint(42), o.UserID)
	assert.Equal(t, uint(42), o.CustomerInfo.UserID, "收货人信息应该冗余下单用户ID")
	assert.Equal(t, int64(12000), o.Total, "金额原样存储,不重算")
	assert.Len(t, o.Items, 1)
	assert.False(t, o.CreatedAt.IsZero())
}

// TestOrder_IsOwnedBy 测试订单归属判定
func TestOrder_IsOwnedBy(t *testing.T) {
	o := &Order{UserID: 42, CustomerInfo: CustomerInfo{UserID: 42}}

	assert.True(t, o.IsOwnedBy(42), "本人应该可以访问")
	assert.False(t, o.IsOwnedBy(43), "他人不能访问")
	assert.False(t, o.IsOwnedBy(0), "userID=0永远不匹配(防止匿名订单被任意访问)")

	anonymous := &Order{UserID: 0}
	assert.False(t, anonymous.IsOwnedBy(0), "匿名订单对userID=0也不匹配")
}

// TestPaymentMethod_Valid 测试支付方式校验
func TestPaymentMethod_Valid(t *testing.T) {
	assert.True(t, PaymentCOD.Valid())
	assert.True(t, PaymentBank.Valid())
	assert.False(t, PaymentMethod("alipay").Valid())
	assert.False(t, PaymentMethod("").Valid())
}

// TestGenerateOrderNo 测试订单号格式
func TestGenerateOrderNo(t *testing.T) {
	no := GenerateOrderNo()
	assert.Regexp(t, `^ORD\d+$`, no)
	assert.GreaterOrEqual(t, len(no), 19, "ORD+10位时间戳+6位随机数")
}

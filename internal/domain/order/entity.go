package order

import (
	"time"
)

// OrderStatus 订单状态
// 设计说明:
// 1. 数据库用int存储(节省空间,便于索引),对外契约用字符串
//    (pending/processing/completed/cancelled)
// 2. 定义为类型别名,便于添加状态机方法
type OrderStatus int

const (
	OrderStatusPending    OrderStatus = 1 // 待处理
	OrderStatusProcessing OrderStatus = 2 // 处理中
	OrderStatusCompleted  OrderStatus = 3 // 已完成(终态)
	OrderStatusCancelled  OrderStatus = 4 // 已取消(终态)
)

// String 对外契约的状态字符串
func (s OrderStatus) String() string {
	switch s {
	case OrderStatusPending:
		return "pending"
	case OrderStatusProcessing:
		return "processing"
	case OrderStatusCompleted:
		return "completed"
	case OrderStatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// ParseStatus 解析状态字符串
// 未知取值返回ErrInvalidStatus(参数错误,不是状态机冲突)
func ParseStatus(s string) (OrderStatus, error) {
	switch s {
	case "pending":
		return OrderStatusPending, nil
	case "processing":
		return OrderStatusProcessing, nil
	case "completed":
		return OrderStatusCompleted, nil
	case "cancelled":
		return OrderStatusCancelled, nil
	default:
		return 0, ErrInvalidStatus
	}
}

// IsTerminal 是否为终态(completed/cancelled不允许任何后续流转)
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// AllStatuses 全部合法状态(统计查询按此补零)
func AllStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusPending,
		OrderStatusProcessing,
		OrderStatusCompleted,
		OrderStatusCancelled,
	}
}

// PaymentMethod 支付方式枚举:货到付款(cod) | 银行转账(bank)
type PaymentMethod string

const (
	PaymentCOD  PaymentMethod = "cod"
	PaymentBank PaymentMethod = "bank"
)

// Valid 支付方式合法性
func (p PaymentMethod) Valid() bool {
	return p == PaymentCOD || p == PaymentBank
}

// CustomerInfo 收货人信息
// UserID冗余存储下单用户(订单归属判定用,匿名下单时为0)
type CustomerInfo struct {
	Name    string
	Phone   string
	Email   string
	Address string
	City    string
	UserID  uint
}

// OrderItem 订单明细项
// 设计说明:
// 1. 不是独立聚合根,必须通过Order访问
// 2. Title/Price是下单时的快照(商家后续改价、改名不影响历史订单)
type OrderItem struct {
	ID       uint
	OrderID  uint
	BookID   uint
	Title    string // 下单时的书名快照
	Price    int64  // 下单时的单价快照
	Quantity int    // 购买数量(>=1)
}

// Order 订单实体(聚合根)
// 设计说明:
// 1. OrderNo是业务主键(全局唯一,时间有序)
// 2. Subtotal/ShippingFee/Discount/Total由结算侧组装后传入,
//    创建后不再重算——本服务的职责是库存一致性,不是计价
// 3. 订单从不物理删除,只通过状态流转收敛到终态
type Order struct {
	ID            uint
	OrderNo       string
	UserID        uint // 下单用户ID(已登录下单时写入)
	Items         []OrderItem
	CustomerInfo  CustomerInfo
	PaymentMethod PaymentMethod
	Status        OrderStatus
	Subtotal      int64
	ShippingFee   int64
	Discount      int64
	Total         int64 // total = subtotal + shippingFee - discount(创建时由调用方计算)
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewOrder 创建新订单(工厂方法)
// 初始状态为pending,金额字段原样存储
func NewOrder(orderNo string, userID uint, items []OrderItem, info CustomerInfo,
	payment PaymentMethod, subtotal, shippingFee, discount, total int64) *Order {
	now := time.Now()
	info.UserID = userID
	return &Order{
		OrderNo:       orderNo,
		UserID:        userID,
		Items:         items,
		CustomerInfo:  info,
		PaymentMethod: payment,
		Status:        OrderStatusPending,
		Subtotal:      subtotal,
		ShippingFee:   shippingFee,
		Discount:      discount,
		Total:         total,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// CanTransitionTo 检查是否可以转换到目标状态
// 状态机:
//
//	pending    → processing | cancelled
//	processing → completed | cancelled
//	completed  → (终态)
//	cancelled  → (终态)
func (o *Order) CanTransitionTo(target OrderStatus) bool {
	transitions := map[OrderStatus][]OrderStatus{
		OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
		OrderStatusProcessing: {OrderStatusCompleted, OrderStatusCancelled},
		OrderStatusCompleted:  {},
		OrderStatusCancelled:  {},
	}

	allowed, exists := transitions[o.Status]
	if !exists {
		return false
	}

	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// TransitionTo 状态转换
// 先校验状态机,转换成功更新UpdatedAt(审计追踪)
func (o *Order) TransitionTo(target OrderStatus) error {
	if !o.CanTransitionTo(target) {
		return ErrInvalidStatusTransition
	}
	o.Status = target
	o.UpdatedAt = time.Now()
	return nil
}

// IsOwnedBy 检查订单是否属于指定用户
// 权限校验用:订单详情只允许本人或管理员查看
func (o *Order) IsOwnedBy(userID uint) bool {
	if userID == 0 {
		return false
	}
	return o.UserID == userID || o.CustomerInfo.UserID == userID
}

// RestorableItems 取消订单时需要回滚库存的明细
// 进入cancelled的那一次流转回滚,已取消订单不会二次回滚
// (状态机拒绝cancelled→cancelled)
func (o *Order) RestorableItems() []OrderItem {
	return o.Items
}

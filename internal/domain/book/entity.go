package book

import (
	"time"
)

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. Book是图书聚合的根实体,包含商品属性与销售属性
// 2. 价格使用int64存储最小货币单位(避免浮点数精度问题)
// 3. CategoryID可为空(未分类图书),指向Category聚合,不做对象引用
// 4. Stock/SoldCount由下单流程通过仓储的原子操作修改,不走实体Save
type Book struct {
	ID            uint
	Title         string // 书名
	Author        string // 作者
	CategoryID    *uint  // 分类ID(可为空)
	Price         int64  // 售价
	OriginalPrice *int64 // 原价(可为空,用于折扣展示)
	Stock         int    // 库存数量
	SoldCount     int    // 累计销量
	IsBestseller  bool   // 是否畅销书(人工标记)
	Image         string // 封面图片文件名或URL
	Description   string // 图书描述
	Dimensions    string // 尺寸
	Pages         int    // 页数
	Weight        string // 重量
	Format        string // 装帧(平装/精装)
	Series        string // 丛书系列
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewBook 创建新图书(工厂方法)
// 价格、库存的合法性由调用方(领域服务)先校验
func NewBook(title, author string, categoryID *uint, price int64, stock int, image, description string) *Book {
	now := time.Now()
	return &Book{
		Title:       title,
		Author:      author,
		CategoryID:  categoryID,
		Price:       price,
		Stock:       stock,
		Image:       image,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// CanFulfill 检查库存是否足以满足购买数量
// 业务规则:购买q本要求stock >= q
func (b *Book) CanFulfill(quantity int) bool {
	return quantity > 0 && b.Stock >= quantity
}

// DecrStock 扣减库存并累计销量(用于订单创建)
// 业务规则:扣减后库存不能为负数
// 注意:实体方法只用于内存中的校验与测试,持久化路径必须走
// Repository.UpdateStock的条件更新,否则并发下单会超卖
func (b *Book) DecrStock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if b.Stock < quantity {
		return ErrInsufficientStock
	}
	b.Stock -= quantity
	b.SoldCount += quantity
	b.UpdatedAt = time.Now()
	return nil
}

// IncrStock 回滚库存并扣回销量(用于订单取消的补偿恢复)
func (b *Book) IncrStock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	b.Stock += quantity
	b.SoldCount -= quantity
	if b.SoldCount < 0 {
		b.SoldCount = 0
	}
	b.UpdatedAt = time.Now()
	return nil
}

// UpdateInfo 更新图书基本信息(空值表示不修改)
func (b *Book) UpdateInfo(title, author, image, description string) {
	if title != "" {
		b.Title = title
	}
	if author != "" {
		b.Author = author
	}
	if image != "" {
		b.Image = image
	}
	if description != "" {
		b.Description = description
	}
	b.UpdatedAt = time.Now()
}

package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ayabook/bookshop/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	// 自动迁移表结构（开发环境）
	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// 注意：AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&CategoryModel{},
		&BookModel{},
		&OrderModel{},
		&OrderItemModel{},
	)
}

// UserModel GORM用户模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/user/entity.go是领域实体，不依赖GORM
// 3. Repository负责两者之间的转换
type UserModel struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password  string    `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	Name      string    `gorm:"size:50;not null;comment:姓名"`
	Role      string    `gorm:"size:20;not null;default:user;comment:角色(user/admin)"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

func (UserModel) TableName() string {
	return "users"
}

// CategoryModel GORM分类模型
// 注意:name没有唯一索引——历史数据中存在同名分类,
// 唯一性由service层校验 + ListDistinct去重兜底,
// 一次性修复操作(MergeDuplicates)负责永久合并
type CategoryModel struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"index;size:100;not null;comment:分类名称"`
	Description string    `gorm:"size:500;comment:分类描述"`
	CreatedAt   time.Time `gorm:"comment:创建时间"`
	UpdatedAt   time.Time `gorm:"comment:更新时间"`
}

func (CategoryModel) TableName() string {
	return "categories"
}

// BookModel GORM图书模型
// 设计说明:
// 1. 价格使用int64存储最小货币单位(避免浮点数精度问题)
// 2. CategoryID可为空(未分类图书)
// 3. 添加索引优化列表查询:标题搜索、价格排序、销量排序
type BookModel struct {
	ID            uint           `gorm:"primaryKey"`
	Title         string         `gorm:"index:idx_search;size:200;not null;comment:书名"`
	Author        string         `gorm:"index:idx_search;size:100;comment:作者"`
	CategoryID    *uint          `gorm:"index;comment:分类ID(可为空)"`
	Price         int64          `gorm:"index:idx_list;not null;comment:售价"`
	OriginalPrice *int64         `gorm:"comment:原价(折扣展示用)"`
	Stock         int            `gorm:"default:0;comment:库存数量"`
	SoldCount     int            `gorm:"index;default:0;comment:累计销量"`
	IsBestseller  bool           `gorm:"index;default:false;comment:畅销书标记"`
	Image         string         `gorm:"size:500;comment:封面图片"`
	Description   string         `gorm:"type:text;comment:图书描述"`
	Dimensions    string         `gorm:"size:50;comment:尺寸"`
	Pages         int            `gorm:"default:0;comment:页数"`
	Weight        string         `gorm:"size:50;comment:重量"`
	Format        string         `gorm:"size:50;comment:装帧"`
	Series        string         `gorm:"size:100;comment:丛书系列"`
	CreatedAt     time.Time      `gorm:"index:idx_list;comment:创建时间"`
	UpdatedAt     time.Time      `gorm:"comment:更新时间"`
	DeletedAt     gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

func (BookModel) TableName() string {
	return "books"
}

// OrderModel GORM订单模型
// 设计说明:
// 1. 与OrderItemModel是一对多关系
// 2. OrderNo有唯一索引(业务主键)
// 3. Status使用int存储(节省空间,便于索引),对外展示时转字符串
// 4. 收货人信息内嵌存储(下单时的快照,不关联用户表)
type OrderModel struct {
	ID            uint             `gorm:"primaryKey"`
	OrderNo       string           `gorm:"uniqueIndex;size:32;not null;comment:订单号"`
	UserID        uint             `gorm:"index;comment:下单用户ID(0表示游客)"`
	CustomerName  string           `gorm:"size:100;not null;comment:收货人姓名"`
	CustomerPhone string           `gorm:"size:20;comment:收货人电话"`
	CustomerEmail string           `gorm:"size:100;comment:收货人邮箱"`
	Address       string           `gorm:"size:500;not null;comment:收货地址"`
	City          string           `gorm:"size:100;comment:城市"`
	PaymentMethod string           `gorm:"size:20;not null;comment:支付方式(cod/bank)"`
	Subtotal      int64            `gorm:"not null;comment:商品小计"`
	ShippingFee   int64            `gorm:"default:0;comment:运费"`
	Discount      int64            `gorm:"default:0;comment:优惠金额"`
	Total         int64            `gorm:"not null;comment:订单总金额"`
	Status        int              `gorm:"index;type:tinyint;default:1;comment:订单状态(1待处理2处理中3已完成4已取消)"`
	Items         []OrderItemModel `gorm:"foreignKey:OrderID"`
	CreatedAt     time.Time        `gorm:"index;comment:创建时间"`
	UpdatedAt     time.Time        `gorm:"comment:更新时间"`
}

func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel GORM订单明细模型
// Title/Price是下单时的快照,商家后续改价不影响历史订单
type OrderItemModel struct {
	ID       uint   `gorm:"primaryKey"`
	OrderID  uint   `gorm:"index;not null;comment:订单ID"`
	BookID   uint   `gorm:"index;not null;comment:图书ID"`
	Title    string `gorm:"size:200;not null;comment:下单时书名快照"`
	Price    int64  `gorm:"not null;comment:下单时单价快照"`
	Quantity int    `gorm:"not null;comment:购买数量"`
}

func (OrderItemModel) TableName() string {
	return "order_items"
}

package category

import (
	"context"
)

// Repository 分类仓储接口
type Repository interface {
	// Create 创建分类
	Create(ctx context.Context, c *Category) error

	// FindByID 根据ID查找分类
	FindByID(ctx context.Context, id uint) (*Category, error)

	// FindByName 根据名称精确查找分类
	// 存在同名重复数据时返回ID最小的一条(与ListDistinct保留规则一致)
	FindByName(ctx context.Context, name string) (*Category, error)

	// Update 更新分类
	Update(ctx context.Context, c *Category) error

	// Delete 删除分类
	Delete(ctx context.Context, id uint) error

	// ListDistinct 查询全部分类,按名称去重(每个名称只保留ID最小的一条),
	// 按名称字母序排列
	// 防御性措施:历史写入路径缺少唯一性约束,存储中可能存在同名分类
	ListDistinct(ctx context.Context) ([]*Category, error)

	// ListAll 查询全部分类(不去重,修复操作用)
	ListAll(ctx context.Context) ([]*Category, error)
}

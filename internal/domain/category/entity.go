package category

import (
	"time"
)

// Category 分类实体
// 设计说明:
// 1. Name是业务唯一键(区分大小写的精确匹配)
// 2. 历史数据中存在同名分类(写入路径曾缺少唯一性校验),
//    读取侧按名称去重,另有一次性修复操作做永久合并
// 3. BookCount是读取时计算的派生字段,不落库
type Category struct {
	ID          uint
	Name        string
	Description string
	BookCount   int64 // 派生字段:该分类下的图书数量
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCategory 创建分类(工厂方法)
func NewCategory(name, description string) *Category {
	now := time.Now()
	return &Category{
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Rename 更新分类信息(空值表示不修改)
func (c *Category) Rename(name, description string) {
	if name != "" {
		c.Name = name
	}
	if description != "" {
		c.Description = description
	}
	c.UpdatedAt = time.Now()
}

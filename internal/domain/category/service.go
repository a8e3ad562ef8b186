package category

import (
	"context"
	"strconv"
	"strings"
)

// Service 分类领域服务接口
// 设计说明:
// 1. 封装名称唯一性校验与"ID或名称"双形态解析
// 2. 带图书数量的列表、重复分类合并等跨聚合逻辑在application层编排
type Service interface {
	// CreateCategory 创建分类
	// 业务规则:名称非空,且不能与现有分类重名(报错,不做静默合并)
	CreateCategory(ctx context.Context, name, description string) (*Category, error)

	// GetCategory 获取分类:ref先按ID解析,非数字则按名称精确查找
	GetCategory(ctx context.Context, ref string) (*Category, error)

	// UpdateCategory 更新分类
	// 业务规则:改名后的名称不能与其他分类冲突
	UpdateCategory(ctx context.Context, id uint, name, description string) (*Category, error)

	// DeleteCategory 删除分类
	// 注意:不级联处理引用该分类的图书,图书的CategoryID成为悬挂引用
	// (与读路径的容错一致;是否阻止删除或置空引用留待产品决策)
	DeleteCategory(ctx context.Context, id uint) error

	// ListCategories 查询全部分类(按名称去重)
	ListCategories(ctx context.Context) ([]*Category, error)
}

type service struct {
	repo Repository
}

// NewService 创建分类领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateCategory 创建分类
func (s *service) CreateCategory(ctx context.Context, name, description string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	// 名称查重:同名即冲突,不比较描述
	existing, err := s.repo.FindByName(ctx, name)
	if err != nil && err != ErrCategoryNotFound {
		return nil, err
	}
	if existing != nil {
		return nil, ErrNameDuplicate
	}

	c := NewCategory(name, description)
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetCategory 获取分类(ID优先,名称兜底)
// 调用方传入的ref可能是数字ID也可能是分类名称(前端两种路由都在用)
func (s *service) GetCategory(ctx context.Context, ref string) (*Category, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrCategoryNotFound
	}

	if id, ok := ParseID(ref); ok {
		c, err := s.repo.FindByID(ctx, id)
		if err == nil {
			return c, nil
		}
		if err != ErrCategoryNotFound {
			return nil, err
		}
		// ID未命中时继续按名称查找(纯数字的分类名理论上存在)
	}

	return s.repo.FindByName(ctx, ref)
}

// UpdateCategory 更新分类
func (s *service) UpdateCategory(ctx context.Context, id uint, name, description string) (*Category, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name != "" && name != c.Name {
		existing, err := s.repo.FindByName(ctx, name)
		if err != nil && err != ErrCategoryNotFound {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, ErrNameDuplicate
		}
	}

	c.Rename(name, description)
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCategory 删除分类
func (s *service) DeleteCategory(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ListCategories 查询全部分类(按名称去重)
func (s *service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.repo.ListDistinct(ctx)
}

// ParseID 判断ref是否为合法的数字ID
func ParseID(ref string) (uint, bool) {
	id, err := strconv.ParseUint(ref, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

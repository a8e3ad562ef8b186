package category

import (
	"context"

	"github.com/ayabook/bookshop/internal/domain/category"
)

// ManageCategoryUseCase 分类管理用例(管理员:创建/更新/删除)
type ManageCategoryUseCase struct {
	categoryService category.Service
}

// NewManageCategoryUseCase 创建分类管理用例
func NewManageCategoryUseCase(categoryService category.Service) *ManageCategoryUseCase {
	return &ManageCategoryUseCase{categoryService: categoryService}
}

// CategoryView 分类视图DTO
type CategoryView struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	BookCount   int64  `json:"bookCount"`
}

// Create 创建分类(同名校验在领域服务内)
func (uc *ManageCategoryUseCase) Create(ctx context.Context, name, description string) (*CategoryView, error) {
	c, err := uc.categoryService.CreateCategory(ctx, name, description)
	if err != nil {
		return nil, err
	}
	return toCategoryView(c), nil
}

// Update 更新分类
func (uc *ManageCategoryUseCase) Update(ctx context.Context, id uint, name, description string) (*CategoryView, error) {
	c, err := uc.categoryService.UpdateCategory(ctx, id, name, description)
	if err != nil {
		return nil, err
	}
	return toCategoryView(c), nil
}

// Delete 删除分类
// 不级联图书:挂在该分类下的图书保留引用,读取侧按未分类展示
func (uc *ManageCategoryUseCase) Delete(ctx context.Context, id uint) error {
	return uc.categoryService.DeleteCategory(ctx, id)
}

func toCategoryView(c *category.Category) *CategoryView {
	return &CategoryView{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		BookCount:   c.BookCount,
	}
}

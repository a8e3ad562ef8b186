package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ayabook/bookshop/internal/domain/category"
	apperrors "github.com/ayabook/bookshop/pkg/errors"
)

// categoryRepository 分类仓储实现(MySQL)
// name没有数据库唯一约束(历史原因),读取侧去重 + service层校验兜底
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓储
func NewCategoryRepository(db *gorm.DB) category.Repository {
	return &categoryRepository{db: db}
}

// Create 创建分类
func (r *categoryRepository) Create(ctx context.Context, c *category.Category) error {
	model := &CategoryModel{
		Name:        c.Name,
		Description: c.Description,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return category.ErrNameDuplicate
		}
		return apperrors.Wrap(err, "创建分类失败")
	}

	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	c.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找分类
func (r *categoryRepository) FindByID(ctx context.Context, id uint) (*category.Category, error) {
	var model CategoryModel
	err := getDB(ctx, r.db).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(err, "查询分类失败")
	}

	return toCategoryEntity(&model), nil
}

// FindByName 根据名称精确查找分类
// 同名重复数据返回ID最小的一条(与ListDistinct保留规则一致)
func (r *categoryRepository) FindByName(ctx context.Context, name string) (*category.Category, error) {
	var model CategoryModel
	err := getDB(ctx, r.db).
		Where("name = ?", name).
		Order("id ASC").
		First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(err, "查询分类失败")
	}

	return toCategoryEntity(&model), nil
}

// Update 更新分类
func (r *categoryRepository) Update(ctx context.Context, c *category.Category) error {
	model := &CategoryModel{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}

	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新分类失败")
	}

	c.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除分类
// 不级联处理图书:挂在该分类下的图书保留原category_id(孤儿引用),
// 读取侧对解析不到的分类按"未分类"展示
func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&CategoryModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除分类失败")
	}

	if result.RowsAffected == 0 {
		return category.ErrCategoryNotFound
	}

	return nil
}

// ListDistinct 查询全部分类,按名称去重
// 每个名称只保留ID最小的一条,结果按名称字母序排列:
// SELECT * FROM categories WHERE id IN
//
//	(SELECT MIN(id) FROM categories GROUP BY name)
//
// ORDER BY name ASC
func (r *categoryRepository) ListDistinct(ctx context.Context) ([]*category.Category, error) {
	var models []CategoryModel
	sub := r.db.Model(&CategoryModel{}).Select("MIN(id)").Group("name")
	err := getDB(ctx, r.db).
		Where("id IN (?)", sub).
		Order("name ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询分类列表失败")
	}

	return toCategoryEntities(models), nil
}

// ListAll 查询全部分类(不去重),修复操作用
func (r *categoryRepository) ListAll(ctx context.Context) ([]*category.Category, error) {
	var models []CategoryModel
	err := getDB(ctx, r.db).Order("id ASC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询分类列表失败")
	}

	return toCategoryEntities(models), nil
}

func toCategoryEntity(model *CategoryModel) *category.Category {
	return &category.Category{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func toCategoryEntities(models []CategoryModel) []*category.Category {
	out := make([]*category.Category, len(models))
	for i := range models {
		out[i] = toCategoryEntity(&models[i])
	}
	return out
}

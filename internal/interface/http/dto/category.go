package dto

// CreateCategoryRequest HTTP创建分类请求
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100" example:"计算机"`
	Description string `json:"description" binding:"omitempty,max=500"`
}

// UpdateCategoryRequest HTTP更新分类请求(空字段表示不修改)
type UpdateCategoryRequest struct {
	Name        string `json:"name" binding:"omitempty,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
}

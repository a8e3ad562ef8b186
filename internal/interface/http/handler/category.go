package handler

import (
	"github.com/gin-gonic/gin"

	appcategory "github.com/ayabook/bookshop/internal/application/category"
	"github.com/ayabook/bookshop/internal/interface/http/dto"
	"github.com/ayabook/bookshop/pkg/response"
)

// CategoryHandler 分类HTTP处理器
type CategoryHandler struct {
	manageUseCase *appcategory.ManageCategoryUseCase
	listUseCase   *appcategory.ListCategoriesUseCase
	mergeUseCase  *appcategory.MergeDuplicatesUseCase
}

// NewCategoryHandler 创建分类处理器
func NewCategoryHandler(
	manageUseCase *appcategory.ManageCategoryUseCase,
	listUseCase *appcategory.ListCategoriesUseCase,
	mergeUseCase *appcategory.MergeDuplicatesUseCase,
) *CategoryHandler {
	return &CategoryHandler{
		manageUseCase: manageUseCase,
		listUseCase:   listUseCase,
		mergeUseCase:  mergeUseCase,
	}
}

// ListCategories 分类列表
// @Summary      分类列表
// @Description  按名称去重后的全部分类,带图书数量
// @Tags         分类
// @Produce      json
// @Success      200 {object} response.Response
// @Router       /api/v1/categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.listUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, categories)
}

// GetCategory 分类详情
// @Summary      分类详情
// @Description  路径参数是分类ID或分类名称(先按ID解析,非数字按名称查找)
// @Tags         分类
// @Produce      json
// @Param        id path string true "分类ID或名称"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /api/v1/categories/{id} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	result, err := h.listUseCase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// CreateCategory 创建分类
// @Summary      创建分类
// @Tags         分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateCategoryRequest true "分类信息"
// @Success      201 {object} response.Response
// @Failure      409 {object} response.Response "分类名称已存在"
// @Router       /api/v1/categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	result, err := h.manageUseCase.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "分类创建成功", result)
}

// UpdateCategory 更新分类
// @Summary      更新分类
// @Tags         分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "分类ID"
// @Param        request body dto.UpdateCategoryRequest true "更新字段"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "分类不存在"
// @Failure      409 {object} response.Response "名称与其它分类冲突"
// @Router       /api/v1/categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	result, err := h.manageUseCase.Update(c.Request.Context(), id, req.Name, req.Description)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteCategory 删除分类
// @Summary      删除分类
// @Description  不级联图书,挂在该分类下的图书按未分类展示
// @Tags         分类
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "分类ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /api/v1/categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.manageUseCase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, "分类已删除", nil)
}

// MergeDuplicates 合并同名重复分类
// @Summary      合并重复分类
// @Description  一次性修复:每组同名分类保留ID最小的,图书改挂,删除其余;幂等
// @Tags         分类
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /api/v1/categories/merge-duplicates [post]
func (h *CategoryHandler) MergeDuplicates(c *gin.Context) {
	result, err := h.mergeUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, "重复分类合并完成", result)
}

package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appbook "github.com/ayabook/bookshop/internal/application/book"
	"github.com/ayabook/bookshop/internal/domain/user"
	"github.com/ayabook/bookshop/internal/interface/http/dto"
	"github.com/ayabook/bookshop/internal/interface/http/middleware"
	"github.com/ayabook/bookshop/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	publishUseCase  *appbook.PublishBookUseCase
	updateUseCase   *appbook.UpdateBookUseCase
	deleteUseCase   *appbook.DeleteBookUseCase
	getUseCase      *appbook.GetBookUseCase
	listUseCase     *appbook.ListBooksUseCase
	featuredUseCase *appbook.FeaturedBooksUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	publishUseCase *appbook.PublishBookUseCase,
	updateUseCase *appbook.UpdateBookUseCase,
	deleteUseCase *appbook.DeleteBookUseCase,
	getUseCase *appbook.GetBookUseCase,
	listUseCase *appbook.ListBooksUseCase,
	featuredUseCase *appbook.FeaturedBooksUseCase,
) *BookHandler {
	return &BookHandler{
		publishUseCase:  publishUseCase,
		updateUseCase:   updateUseCase,
		deleteUseCase:   deleteUseCase,
		getUseCase:      getUseCase,
		listUseCase:     listUseCase,
		featuredUseCase: featuredUseCase,
	}
}

// ListBooks 图书列表/检索
// @Summary      图书列表
// @Description  目录检索:书名关键词、分类(ID或名称)、价格区间过滤,分页
// @Tags         图书
// @Produce      json
// @Param        page query int false "页码(默认1)"
// @Param        limit query int false "每页大小(默认20)"
// @Param        keyword query string false "书名关键词(大小写不敏感)"
// @Param        category query string false "分类ID或名称"
// @Param        minPrice query int false "价格下界(含)"
// @Param        maxPrice query int false "价格上界(含)"
// @Param        sortBy query string false "排序(price_asc/price_desc/created_at_desc)"
// @Success      200 {object} response.Response{data=response.PageData}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var req dto.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	listReq := appbook.ListBooksRequest{
		Page:     req.Page,
		Limit:    req.Limit,
		Keyword:  req.Keyword,
		Category: req.Category,
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
		SortBy:   req.SortBy,
	}

	// 后台管理页(管理员)与前台目录的默认每页大小不同
	var result *response.PageData
	var err error
	if middleware.GetRole(c) == user.RoleAdmin {
		result, err = h.listUseCase.ListAdmin(c.Request.Context(), listReq)
	} else {
		result, err = h.listUseCase.ListCatalog(c.Request.Context(), listReq)
	}

	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Bestsellers 畅销书列表
// @Summary      畅销书
// @Tags         图书
// @Produce      json
// @Success      200 {object} response.Response
// @Router       /api/v1/books/bestsellers [get]
func (h *BookHandler) Bestsellers(c *gin.Context) {
	result, err := h.featuredUseCase.Bestsellers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// NewArrivals 新书列表
// @Summary      新书上架
// @Tags         图书
// @Produce      json
// @Success      200 {object} response.Response
// @Router       /api/v1/books/new-arrivals [get]
func (h *BookHandler) NewArrivals(c *gin.Context) {
	result, err := h.featuredUseCase.NewArrivals(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	b, err := h.getUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, b)
}

// PublishBook 上架图书
// @Summary      上架图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.PublishBookRequest true "图书信息"
// @Success      201 {object} response.Response
// @Failure      400 {object} response.Response "参数错误"
// @Failure      403 {object} response.Response "需要管理员角色"
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /api/v1/books [post]
func (h *BookHandler) PublishBook(c *gin.Context) {
	var req dto.PublishBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	result, err := h.publishUseCase.Execute(c.Request.Context(), appbook.PublishBookRequest{
		Title:         req.Title,
		Author:        req.Author,
		Category:      req.Category,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Stock:         req.Stock,
		IsBestseller:  req.IsBestseller,
		Image:         req.Image,
		Description:   req.Description,
		Dimensions:    req.Dimensions,
		Pages:         req.Pages,
		Weight:        req.Weight,
		Format:        req.Format,
		Series:        req.Series,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "图书上架成功", result)
}

// UpdateBook 更新图书
// @Summary      更新图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.UpdateBookRequest true "更新字段"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	result, err := h.updateUseCase.Execute(c.Request.Context(), appbook.UpdateBookRequest{
		BookID:        id,
		Title:         req.Title,
		Author:        req.Author,
		Category:      req.Category,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		IsBestseller:  req.IsBestseller,
		Image:         req.Image,
		Description:   req.Description,
		Dimensions:    req.Dimensions,
		Pages:         req.Pages,
		Weight:        req.Weight,
		Format:        req.Format,
		Series:        req.Series,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteBook 下架图书
// @Summary      下架图书
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.deleteUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, "图书已下架", nil)
}

// parseIDParam 解析路径中的数字ID,非法时写400响应
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID必须是正整数")
		return 0, false
	}
	return uint(id), true
}

package dto

// PublishBookRequest HTTP上架请求
// validator tag说明:
// - required: 必填字段
// - min/max: 数值范围校验
type PublishBookRequest struct {
	Title         string `json:"title" binding:"required,max=200" example:"深入理解计算机系统"`
	Author        string `json:"author" binding:"omitempty,max=100" example:"Randal E. Bryant"`
	Category      string `json:"category" binding:"omitempty,max=100" example:"计算机"` // 分类ID或名称
	Price         int64  `json:"price" binding:"min=0" example:"13900"`
	OriginalPrice *int64 `json:"originalPrice" binding:"omitempty,min=0" example:"15900"`
	Stock         int    `json:"stock" binding:"min=0" example:"100"`
	IsBestseller  bool   `json:"isBestseller" example:"false"`
	Image         string `json:"image" binding:"omitempty,max=500" example:"csapp.jpg"`
	Description   string `json:"description" binding:"omitempty,max=5000"`
	Dimensions    string `json:"dimensions" binding:"omitempty,max=50" example:"185×230mm"`
	Pages         int    `json:"pages" binding:"omitempty,min=0" example:"736"`
	Weight        string `json:"weight" binding:"omitempty,max=50" example:"1.2kg"`
	Format        string `json:"format" binding:"omitempty,max=50" example:"平装"`
	Series        string `json:"series" binding:"omitempty,max=100"`
}

// UpdateBookRequest HTTP更新请求
// 指针字段区分"未提交"(不修改)与"提交零值"(改为零值)
// 库存不在此接口修改:只由下单/取消流程变更
type UpdateBookRequest struct {
	Title         *string `json:"title" binding:"omitempty,max=200"`
	Author        *string `json:"author" binding:"omitempty,max=100"`
	Category      *string `json:"category" binding:"omitempty,max=100"`
	Price         *int64  `json:"price" binding:"omitempty,min=0"`
	OriginalPrice *int64  `json:"originalPrice" binding:"omitempty,min=0"`
	IsBestseller  *bool   `json:"isBestseller"`
	Image         *string `json:"image" binding:"omitempty,max=500"`
	Description   *string `json:"description" binding:"omitempty,max=5000"`
	Dimensions    *string `json:"dimensions" binding:"omitempty,max=50"`
	Pages         *int    `json:"pages" binding:"omitempty,min=0"`
	Weight        *string `json:"weight" binding:"omitempty,max=50"`
	Format        *string `json:"format" binding:"omitempty,max=50"`
	Series        *string `json:"series" binding:"omitempty,max=100"`
}

// ListBooksRequest HTTP图书列表请求(query参数)
type ListBooksRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1" example:"1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100" example:"20"`
	Keyword  string `form:"keyword" binding:"omitempty,max=100" example:"计算机"`
	Category string `form:"category" binding:"omitempty,max=100"` // 分类ID或名称
	MinPrice *int64 `form:"minPrice" binding:"omitempty,min=0"`
	MaxPrice *int64 `form:"maxPrice" binding:"omitempty,min=0"`
	SortBy   string `form:"sortBy" binding:"omitempty,oneof=price_asc price_desc created_at_desc"`
}

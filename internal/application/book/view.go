package book

import (
	"time"

	"github.com/ayabook/bookshop/internal/domain/book"
)

// BookView 图书视图DTO
// Category是解析后的分类摘要:分类被删后留下的孤儿引用
// 解析不到时Category为nil,前端按"未分类"展示
type BookView struct {
	ID            uint          `json:"id"`
	Title         string        `json:"title"`
	Author        string        `json:"author,omitempty"`
	Category      *CategoryRef  `json:"category,omitempty"`
	Price         int64         `json:"price"`
	OriginalPrice *int64        `json:"originalPrice,omitempty"`
	Stock         int           `json:"stock"`
	SoldCount     int           `json:"soldCount"`
	IsBestseller  bool          `json:"isBestseller"`
	Image         string        `json:"image,omitempty"`
	Description   string        `json:"description,omitempty"`
	Dimensions    string        `json:"dimensions,omitempty"`
	Pages         int           `json:"pages,omitempty"`
	Weight        string        `json:"weight,omitempty"`
	Format        string        `json:"format,omitempty"`
	Series        string        `json:"series,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// CategoryRef 分类摘要(挂在图书视图上)
type CategoryRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// toBookView 领域实体 → 视图DTO
// categoryNames是id→name映射,查不到的分类置nil
func toBookView(b *book.Book, categoryNames map[uint]string) *BookView {
	view := &BookView{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		Price:         b.Price,
		OriginalPrice: b.OriginalPrice,
		Stock:         b.Stock,
		SoldCount:     b.SoldCount,
		IsBestseller:  b.IsBestseller,
		Image:         b.Image,
		Description:   b.Description,
		Dimensions:    b.Dimensions,
		Pages:         b.Pages,
		Weight:        b.Weight,
		Format:        b.Format,
		Series:        b.Series,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}

	if b.CategoryID != nil {
		if name, ok := categoryNames[*b.CategoryID]; ok {
			view.Category = &CategoryRef{ID: *b.CategoryID, Name: name}
		}
	}

	return view
}

func toBookViews(books []*book.Book, categoryNames map[uint]string) []*BookView {
	out := make([]*BookView, len(books))
	for i, b := range books {
		out[i] = toBookView(b, categoryNames)
	}
	return out
}

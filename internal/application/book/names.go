package book

import (
	"context"
	"log"

	"github.com/ayabook/bookshop/internal/domain/category"
)

// categoryNameMap 构建分类id→name映射,用于渲染图书视图
// 分类数量很小(几十个),一次全量加载比逐条回查划算
// 加载失败降级为空映射(图书按未分类展示),不让列表接口报错
func categoryNameMap(ctx context.Context, repo category.Repository) map[uint]string {
	categories, err := repo.ListAll(ctx)
	if err != nil {
		log.Printf("加载分类映射失败,图书按未分类展示: %v", err)
		return map[uint]string{}
	}

	names := make(map[uint]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names
}

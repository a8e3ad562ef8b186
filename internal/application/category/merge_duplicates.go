package category

import (
	"context"
	"log"

	"github.com/ayabook/bookshop/internal/domain/book"
	"github.com/ayabook/bookshop/internal/domain/category"
)

// Transactor 事务边界抽象(mysql.TxManager实现)
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// MergeDuplicatesUseCase 分类去重修复用例(管理员一次性运维操作)
// 历史写入路径缺少唯一性校验,存储中积累了同名分类;
// 读取侧的去重只是展示兜底,本操作做永久合并:
// 每组同名分类保留ID最小的一条,图书改挂到保留项,删除其余重复项
type MergeDuplicatesUseCase struct {
	categoryRepo category.Repository
	bookRepo     book.Repository
	txManager    Transactor
}

// NewMergeDuplicatesUseCase 创建去重修复用例
func NewMergeDuplicatesUseCase(
	categoryRepo category.Repository,
	bookRepo book.Repository,
	txManager Transactor,
) *MergeDuplicatesUseCase {
	return &MergeDuplicatesUseCase{
		categoryRepo: categoryRepo,
		bookRepo:     bookRepo,
		txManager:    txManager,
	}
}

// MergeDuplicatesResult 修复结果
type MergeDuplicatesResult struct {
	GroupsMerged    int `json:"groupsMerged"`    // 合并的同名组数
	DuplicatesFound int `json:"duplicatesFound"` // 删除的重复分类数
	BooksReassigned int `json:"booksReassigned"` // 改挂分类的图书数
}

// Execute 执行修复
// 幂等:没有重复数据时什么都不做,重复执行安全
// 整个修复在一个事务内完成:改挂图书与删除重复项要么都生效要么都回滚
func (uc *MergeDuplicatesUseCase) Execute(ctx context.Context) (*MergeDuplicatesResult, error) {
	result := &MergeDuplicatesResult{}

	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		all, err := uc.categoryRepo.ListAll(txCtx)
		if err != nil {
			return err
		}

		// 按名称分组,ListAll按ID升序返回,每组第一条即保留项
		groups := make(map[string][]*category.Category)
		for _, c := range all {
			groups[c.Name] = append(groups[c.Name], c)
		}

		for name, group := range groups {
			if len(group) < 2 {
				continue
			}

			keeper := group[0]
			log.Printf("合并同名分类: name=%q, keep=%d, duplicates=%d",
				name, keeper.ID, len(group)-1)

			for _, dup := range group[1:] {
				count, err := uc.bookRepo.CountByCategory(txCtx, dup.ID)
				if err != nil {
					return err
				}

				if count > 0 {
					if err := uc.bookRepo.ReassignCategory(txCtx, dup.ID, keeper.ID); err != nil {
						return err
					}
					result.BooksReassigned += int(count)
				}

				if err := uc.categoryRepo.Delete(txCtx, dup.ID); err != nil {
					return err
				}
				result.DuplicatesFound++
			}

			result.GroupsMerged++
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return result, nil
}

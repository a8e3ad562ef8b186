package category

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayabook/bookshop/internal/domain/book"
	"github.com/ayabook/bookshop/internal/domain/category"
)

// fakeTx 直通事务替身
type fakeTx struct{}

func (fakeTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeCategoryRepo 内存分类仓储(允许同名,模拟历史脏数据)
type fakeCategoryRepo struct {
	categories map[uint]*category.Category
	nextID     uint
}

func newFakeCategoryRepo(names ...string) *fakeCategoryRepo {
	r := &fakeCategoryRepo{categories: make(map[uint]*category.Category), nextID: 1}
	for _, name := range names {
		r.Create(context.Background(), &category.Category{Name: name})
	}
	return r
}

func (r *fakeCategoryRepo) Create(ctx context.Context, c *category.Category) error {
	c.ID = r.nextID
	r.nextID++
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) FindByID(ctx context.Context, id uint) (*category.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, category.ErrCategoryNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) FindByName(ctx context.Context, name string) (*category.Category, error) {
	var found *category.Category
	for _, c := range r.categories {
		if c.Name == name && (found == nil || c.ID < found.ID) {
			found = c
		}
	}
	if found == nil {
		return nil, category.ErrCategoryNotFound
	}
	cp := *found
	return &cp, nil
}

func (r *fakeCategoryRepo) Update(ctx context.Context, c *category.Category) error {
	if _, ok := r.categories[c.ID]; !ok {
		return category.ErrCategoryNotFound
	}
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := r.categories[id]; !ok {
		return category.ErrCategoryNotFound
	}
	delete(r.categories, id)
	return nil
}

func (r *fakeCategoryRepo) ListDistinct(ctx context.Context) ([]*category.Category, error) {
	seen := make(map[string]*category.Category)
	for _, c := range r.listByID() {
		if _, ok := seen[c.Name]; !ok {
			seen[c.Name] = c
		}
	}
	result := make([]*category.Category, 0, len(seen))
	for _, c := range seen {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *fakeCategoryRepo) ListAll(ctx context.Context) ([]*category.Category, error) {
	return r.listByID(), nil
}

func (r *fakeCategoryRepo) listByID() []*category.Category {
	all := make([]*category.Category, 0, len(r.categories))
	for _, c := range r.categories {
		cp := *c
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

// fakeBookRepo 只支撑分类计数与改挂,其余方法修复用例不会触达
type fakeBookRepo struct {
	books map[uint]*book.Book
}

func newFakeBookRepo(books ...*book.Book) *fakeBookRepo {
	r := &fakeBookRepo{books: make(map[uint]*book.Book)}
	for _, b := range books {
		r.books[b.ID] = b
	}
	return r
}

func (r *fakeBookRepo) Create(ctx context.Context, b *book.Book) error { return nil }
func (r *fakeBookRepo) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	return nil, book.ErrBookNotFound
}
func (r *fakeBookRepo) Update(ctx context.Context, b *book.Book) error { return nil }
func (r *fakeBookRepo) Delete(ctx context.Context, id uint) error      { return nil }
func (r *fakeBookRepo) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	return nil, 0, nil
}
func (r *fakeBookRepo) Bestsellers(ctx context.Context, limit int) ([]*book.Book, error) {
	return nil, nil
}
func (r *fakeBookRepo) NewArrivals(ctx context.Context, limit int) ([]*book.Book, error) {
	return nil, nil
}
func (r *fakeBookRepo) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	return nil, book.ErrBookNotFound
}
func (r *fakeBookRepo) UpdateStock(ctx context.Context, id uint, quantity int) error { return nil }

func (r *fakeBookRepo) CountByCategory(ctx context.Context, categoryID uint) (int64, error) {
	var n int64
	for _, b := range r.books {
		if b.CategoryID != nil && *b.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *fakeBookRepo) ReassignCategory(ctx context.Context, fromCategoryID, toCategoryID uint) error {
	for _, b := range r.books {
		if b.CategoryID != nil && *b.CategoryID == fromCategoryID {
			to := toCategoryID
			b.CategoryID = &to
		}
	}
	return nil
}

func catID(id uint) *uint { return &id }

// TestMergeDuplicates 测试同名分类合并修复
func TestMergeDuplicates(t *testing.T) {
	// 三条"小说"(ID 1,3,4),一条"技术"(ID 2),模拟历史脏数据
	categoryRepo := newFakeCategoryRepo("小说", "技术", "小说", "小说")
	bookRepo := newFakeBookRepo(
		&book.Book{ID: 1, Title: "《活着》", CategoryID: catID(1)},
		&book.Book{ID: 2, Title: "《三体》", CategoryID: catID(3)},
		&book.Book{ID: 3, Title: "《百年孤独》", CategoryID: catID(4)},
		&book.Book{ID: 4, Title: "《Go程序设计》", CategoryID: catID(2)},
	)
	uc := NewMergeDuplicatesUseCase(categoryRepo, bookRepo, fakeTx{})

	result, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.GroupsMerged, "只有'小说'是重复组")
	assert.Equal(t, 2, result.DuplicatesFound, "删除ID 3和4")
	assert.Equal(t, 2, result.BooksReassigned, "两本书改挂到保留项")

	// 保留ID最小的一条,其余删除
	remaining, _ := categoryRepo.ListAll(context.Background())
	require.Len(t, remaining, 2)
	assert.Equal(t, uint(1), remaining[0].ID)
	assert.Equal(t, "小说", remaining[0].Name)
	assert.Equal(t, "技术", remaining[1].Name)

	// 所有图书都挂在存活的分类上
	for _, b := range bookRepo.books {
		require.NotNil(t, b.CategoryID)
		_, err := categoryRepo.FindByID(context.Background(), *b.CategoryID)
		assert.NoError(t, err, "图书%q不应该指向已删除分类", b.Title)
	}
	count, _ := bookRepo.CountByCategory(context.Background(), 1)
	assert.Equal(t, int64(3), count, "三本小说都归到保留项")
}

// TestMergeDuplicates_Idempotent 修复操作幂等,重复执行安全
func TestMergeDuplicates_Idempotent(t *testing.T) {
	categoryRepo := newFakeCategoryRepo("小说", "小说")
	bookRepo := newFakeBookRepo(&book.Book{ID: 1, CategoryID: catID(2)})
	uc := NewMergeDuplicatesUseCase(categoryRepo, bookRepo, fakeTx{})

	first, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.GroupsMerged)

	second, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Zero(t, second.GroupsMerged, "第二次执行无事可做")
	assert.Zero(t, second.DuplicatesFound)
	assert.Zero(t, second.BooksReassigned)
}

// TestMergeDuplicates_NoDuplicates 没有重复数据时不做任何修改
func TestMergeDuplicates_NoDuplicates(t *testing.T) {
	categoryRepo := newFakeCategoryRepo("小说", "技术", "历史")
	uc := NewMergeDuplicatesUseCase(categoryRepo, newFakeBookRepo(), fakeTx{})

	result, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Zero(t, result.GroupsMerged)

	remaining, _ := categoryRepo.ListAll(context.Background())
	assert.Len(t, remaining, 3)
}

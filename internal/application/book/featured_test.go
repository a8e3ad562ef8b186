package book

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayabook/bookshop/internal/domain/book"
	"github.com/ayabook/bookshop/internal/domain/category"
)

// fakeBookRepo 内存图书仓储(推荐位测试只用到查询路径)
type fakeBookRepo struct {
	books map[uint]*book.Book
	// dbHits 记录回源次数,验证Cache-Aside
	dbHits int
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
	b, ok := r.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return b, nil
}
func (r *fakeBookRepo) Update(ctx context.Context, b *book.Book) error { return nil }
func (r *fakeBookRepo) Delete(ctx context.Context, id uint) error      { return nil }
func (r *fakeBookRepo) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	return nil, 0, nil
}

func (r *fakeBookRepo) Bestsellers(ctx context.Context, limit int) ([]*book.Book, error) {
	r.dbHits++
	var result []*book.Book
	for _, b := range r.books {
		if b.IsBestseller {
			result = append(result, b)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SoldCount > result[j].SoldCount })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *fakeBookRepo) NewArrivals(ctx context.Context, limit int) ([]*book.Book, error) {
	r.dbHits++
	var result []*book.Book
	for _, b := range r.books {
		result = append(result, b)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *fakeBookRepo) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	return r.FindByID(ctx, id)
}
func (r *fakeBookRepo) UpdateStock(ctx context.Context, id uint, quantity int) error { return nil }
func (r *fakeBookRepo) CountByCategory(ctx context.Context, categoryID uint) (int64, error) {
	return 0, nil
}
func (r *fakeBookRepo) ReassignCategory(ctx context.Context, fromCategoryID, toCategoryID uint) error {
	return nil
}

// fakeCategoryRepo 只支撑名称映射加载
type fakeCategoryRepo struct {
	categories []*category.Category
	err        error
}

func (r *fakeCategoryRepo) Create(ctx context.Context, c *category.Category) error { return nil }
func (r *fakeCategoryRepo) FindByID(ctx context.Context, id uint) (*category.Category, error) {
	return nil, category.ErrCategoryNotFound
}
func (r *fakeCategoryRepo) FindByName(ctx context.Context, name string) (*category.Category, error) {
	return nil, category.ErrCategoryNotFound
}
func (r *fakeCategoryRepo) Update(ctx context.Context, c *category.Category) error { return nil }
func (r *fakeCategoryRepo) Delete(ctx context.Context, id uint) error              { return nil }
func (r *fakeCategoryRepo) ListDistinct(ctx context.Context) ([]*category.Category, error) {
	return r.categories, r.err
}
func (r *fakeCategoryRepo) ListAll(ctx context.Context) ([]*category.Category, error) {
	return r.categories, r.err
}

// memoryCache 内存版推荐位缓存
type memoryCache struct {
	bestsellers []*book.Book
	newArrivals []*book.Book
	getErr      error // 非nil时模拟缓存故障
}

func (c *memoryCache) GetBestsellers(ctx context.Context) ([]*book.Book, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	if c.bestsellers == nil {
		return nil, ErrCacheMiss
	}
	return c.bestsellers, nil
}

func (c *memoryCache) SetBestsellers(ctx context.Context, books []*book.Book) error {
	c.bestsellers = books
	return nil
}

func (c *memoryCache) GetNewArrivals(ctx context.Context) ([]*book.Book, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	if c.newArrivals == nil {
		return nil, ErrCacheMiss
	}
	return c.newArrivals, nil
}

func (c *memoryCache) SetNewArrivals(ctx context.Context, books []*book.Book) error {
	c.newArrivals = books
	return nil
}

func (c *memoryCache) Invalidate(ctx context.Context) error {
	c.bestsellers = nil
	c.newArrivals = nil
	return nil
}

// TestFeaturedBooks_Bestsellers 畅销书:人工标记,按销量降序
func TestFeaturedBooks_Bestsellers(t *testing.T) {
	repo := newFakeBookRepo(
		&book.Book{ID: 1, Title: "《活着》", SoldCount: 100, IsBestseller: true},
		&book.Book{ID: 2, Title: "《三体》", SoldCount: 500, IsBestseller: true},
		&book.Book{ID: 3, Title: "《冷门书》", SoldCount: 999, IsBestseller: false},
	)
	uc := NewFeaturedBooksUseCase(book.NewService(repo), &fakeCategoryRepo{}, &memoryCache{})

	result, err := uc.Bestsellers(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Items, 2, "未标记畅销的书不出现,销量再高也不出现")
	assert.Equal(t, "《三体》", result.Items[0].Title, "按销量降序")
	assert.Equal(t, "《活着》", result.Items[1].Title)
}

// TestFeaturedBooks_ResponseShape 推荐位统一响应形状{items, total, limit}
// total是本次实际返回条数,limit是推荐位容量
func TestFeaturedBooks_ResponseShape(t *testing.T) {
	repo := newFakeBookRepo(
		&book.Book{ID: 1, Title: "《三体》", SoldCount: 500, IsBestseller: true},
		&book.Book{ID: 2, Title: "《活着》", SoldCount: 100, IsBestseller: true},
	)
	uc := NewFeaturedBooksUseCase(book.NewService(repo), &fakeCategoryRepo{}, &memoryCache{})

	bestsellers, err := uc.Bestsellers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(bestsellers.Items), bestsellers.Total, "total必须等于items条数")
	assert.Equal(t, 2, bestsellers.Total)
	assert.Equal(t, 10, bestsellers.Limit)

	newArrivals, err := uc.NewArrivals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(newArrivals.Items), newArrivals.Total)
	assert.Equal(t, 10, newArrivals.Limit)
}

// TestFeaturedBooks_CacheAside 缓存命中不回源,未命中回源并回填
func TestFeaturedBooks_CacheAside(t *testing.T) {
	repo := newFakeBookRepo(
		&book.Book{ID: 1, Title: "《三体》", SoldCount: 500, IsBestseller: true},
	)
	cache := &memoryCache{}
	uc := NewFeaturedBooksUseCase(book.NewService(repo), &fakeCategoryRepo{}, cache)

	// 第一次:未命中,回源DB并回填
	_, err := uc.Bestsellers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.dbHits)
	assert.NotNil(t, cache.bestsellers, "回源后应该回填缓存")

	// 第二次:命中缓存,不再回源
	_, err = uc.Bestsellers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.dbHits, "缓存命中不应该再查DB")
}

// TestFeaturedBooks_CacheFailureFallsBack 缓存故障降级回源,不报错
func TestFeaturedBooks_CacheFailureFallsBack(t *testing.T) {
	repo := newFakeBookRepo(
		&book.Book{ID: 1, Title: "《三体》", SoldCount: 500, IsBestseller: true},
	)
	cache := &memoryCache{getErr: errors.New("redis: connection refused")}
	uc := NewFeaturedBooksUseCase(book.NewService(repo), &fakeCategoryRepo{}, cache)

	result, err := uc.Bestsellers(context.Background())
	require.NoError(t, err, "缓存永远不是报错理由")
	assert.Len(t, result.Items, 1)
	assert.Equal(t, 1, repo.dbHits)
}

// TestFeaturedBooks_CategoryResolution 视图上的分类摘要解析
func TestFeaturedBooks_CategoryResolution(t *testing.T) {
	novel := uint(1)
	orphan := uint(99)
	repo := newFakeBookRepo(
		&book.Book{ID: 1, Title: "《活着》", CategoryID: &novel, SoldCount: 10, IsBestseller: true},
		&book.Book{ID: 2, Title: "《孤儿引用》", CategoryID: &orphan, SoldCount: 5, IsBestseller: true},
	)
	categoryRepo := &fakeCategoryRepo{categories: []*category.Category{{ID: 1, Name: "小说"}}}
	uc := NewFeaturedBooksUseCase(book.NewService(repo), categoryRepo, &memoryCache{})

	result, err := uc.Bestsellers(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Items, 2)

	require.NotNil(t, result.Items[0].Category)
	assert.Equal(t, "小说", result.Items[0].Category.Name)
	assert.Nil(t, result.Items[1].Category, "分类被删后的孤儿引用按未分类展示")
}

// TestFeaturedBooks_NewArrivals 新书按创建时间降序
func TestFeaturedBooks_NewArrivals(t *testing.T) {
	books := make([]*book.Book, 0, 12)
	for i := 1; i <= 12; i++ {
		b := book.NewBook("书", "作者", nil, 100, 10, "", "")
		b.ID = uint(i)
		books = append(books, b)
	}
	repo := newFakeBookRepo(books...)
	uc := NewFeaturedBooksUseCase(book.NewService(repo), &fakeCategoryRepo{}, &memoryCache{})

	result, err := uc.NewArrivals(context.Background())
	require.NoError(t, err)
	assert.Len(t, result.Items, 10, "推荐位固定截断到10条")
	assert.Equal(t, 10, result.Total)
}

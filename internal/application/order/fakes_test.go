package order

import (
	"context"
	"os"
	"sort"
	"testing"

	"github.com/ayabook/bookshop/internal/domain/book"
	"github.com/ayabook/bookshop/internal/domain/order"
	"github.com/ayabook/bookshop/pkg/metrics"
)

// 用例测试使用内存仓储替身:
// 事务替身直接执行函数(不回滚),因此用例必须自己保证
// "先全量校验,后mutate"——依赖回滚兜底的实现会在这里露馅

func TestMain(m *testing.M) {
	metrics.InitMetrics()
	os.Exit(m.Run())
}

// fakeTx 直通事务替身
type fakeTx struct{}

func (fakeTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeBookRepo 内存图书仓储
type fakeBookRepo struct {
	books  map[uint]*book.Book
	nextID uint
}

func newFakeBookRepo(books ...*book.Book) *fakeBookRepo {
	r := &fakeBookRepo{books: make(map[uint]*book.Book), nextID: 1}
	for _, b := range books {
		r.add(b)
	}
	return r
}

func (r *fakeBookRepo) add(b *book.Book) {
	if b.ID == 0 {
		b.ID = r.nextID
	}
	if b.ID >= r.nextID {
		r.nextID = b.ID + 1
	}
	r.books[b.ID] = b
}

func (r *fakeBookRepo) Create(ctx context.Context, b *book.Book) error {
	r.add(b)
	return nil
}

func (r *fakeBookRepo) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookRepo) Update(ctx context.Context, b *book.Book) error {
	if _, ok := r.books[b.ID]; !ok {
		return book.ErrBookNotFound
	}
	r.books[b.ID] = b
	return nil
}

func (r *fakeBookRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := r.books[id]; !ok {
		return book.ErrBookNotFound
	}
	delete(r.books, id)
	return nil
}

func (r *fakeBookRepo) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	return nil, 0, nil
}

func (r *fakeBookRepo) Bestsellers(ctx context.Context, limit int) ([]*book.Book, error) {
	return nil, nil
}

func (r *fakeBookRepo) NewArrivals(ctx context.Context, limit int) ([]*book.Book, error) {
	return nil, nil
}

// LockByID 内存实现没有行锁,等同FindByID
func (r *fakeBookRepo) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	return r.FindByID(ctx, id)
}

// UpdateStock 模拟条件更新:正数售出,负数回滚,库存不允许为负
func (r *fakeBookRepo) UpdateStock(ctx context.Context, id uint, quantity int) error {
	b, ok := r.books[id]
	if !ok {
		return book.ErrBookNotFound
	}
	if b.Stock-quantity < 0 {
		return book.ErrInsufficientStock
	}
	b.Stock -= quantity
	b.SoldCount += quantity
	if b.SoldCount < 0 {
		b.SoldCount = 0
	}
	return nil
}

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

// fakeOrderRepo 内存订单仓储
type fakeOrderRepo struct {
	orders map[uint]*order.Order
	nextID uint
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uint]*order.Order), nextID: 1}
}

func (r *fakeOrderRepo) Create(ctx context.Context, o *order.Order) error {
	o.ID = r.nextID
	r.nextID++
	for i := range o.Items {
		o.Items[i].ID = uint(i + 1)
		o.Items[i].OrderID = o.ID
	}
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) FindByOrderNo(ctx context.Context, orderNo string) (*order.Order, error) {
	for _, o := range r.orders {
		if o.OrderNo == orderNo {
			cp := *o
			return &cp, nil
		}
	}
	return nil, order.ErrOrderNotFound
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, id uint, status order.OrderStatus) error {
	o, ok := r.orders[id]
	if !ok {
		return order.ErrOrderNotFound
	}
	o.Status = status
	return nil
}

func (r *fakeOrderRepo) List(ctx context.Context, params order.ListParams) ([]*order.Order, int64, error) {
	all := r.sorted()
	return all, int64(len(all)), nil
}

func (r *fakeOrderRepo) ListByUserID(ctx context.Context, userID uint, page, limit int) ([]*order.Order, int64, error) {
	var result []*order.Order
	for _, o := range r.sorted() {
		if o.UserID == userID {
			result = append(result, o)
		}
	}
	return result, int64(len(result)), nil
}

func (r *fakeOrderRepo) History(ctx context.Context, userID uint, params order.HistoryParams) ([]*order.Order, int64, error) {
	return r.ListByUserID(ctx, userID, params.Page, params.Limit)
}

func (r *fakeOrderRepo) GetStats(ctx context.Context) (*order.Stats, error) {
	stats := &order.Stats{}
	for _, o := range r.orders {
		stats.Total++
		switch o.Status {
		case order.OrderStatusPending:
			stats.Pending++
		case order.OrderStatusProcessing:
			stats.Processing++
		case order.OrderStatusCompleted:
			stats.Completed++
		case order.OrderStatusCancelled:
			stats.Cancelled++
		}
	}
	return stats, nil
}

func (r *fakeOrderRepo) Recent(ctx context.Context, limit int) ([]*order.Order, error) {
	all := r.sorted()
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeOrderRepo) sorted() []*order.Order {
	all := make([]*order.Order, 0, len(r.orders))
	for _, o := range r.orders {
		cp := *o
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return all
}

// spyEvents 记录事件发布次数
type spyEvents struct {
	created   []string // 发布过created事件的订单号
	cancelled []string
	err       error // 非nil时模拟发布失败
}

func (s *spyEvents) OrderCreated(ctx context.Context, o *order.Order) error {
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, o.OrderNo)
	return nil
}

func (s *spyEvents) OrderCancelled(ctx context.Context, o *order.Order) error {
	if s.err != nil {
		return s.err
	}
	s.cancelled = append(s.cancelled, o.OrderNo)
	return nil
}

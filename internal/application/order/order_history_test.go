package order

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayabook/bookshop/internal/domain/order"
	"github.com/ayabook/bookshop/internal/domain/user"
	apperrors "github.com/ayabook/bookshop/pkg/errors"
)

// fakeUserRepo 内存用户仓储
type fakeUserRepo struct {
	users map[uint]*user.User
}

func newFakeUserRepo(users ...*user.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uint]*user.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, u *user.User) error { return nil }

func (r *fakeUserRepo) FindByID(ctx context.Context, id uint) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, u *user.User) error { return nil }

// recordingOrderRepo 记录History收到的查询参数
type recordingOrderRepo struct {
	fakeOrderRepo
	lastParams order.HistoryParams
}

func (r *recordingOrderRepo) History(ctx context.Context, userID uint, params order.HistoryParams) ([]*order.Order, int64, error) {
	r.lastParams = params
	return nil, 0, nil
}

// TestOrderHistory_UserNotFound 用户不存在明确报错,区别于空列表
func TestOrderHistory_UserNotFound(t *testing.T) {
	uc := NewOrderHistoryUseCase(newFakeOrderRepo(), newFakeUserRepo())

	_, err := uc.Execute(context.Background(), OrderHistoryRequest{UserID: 999})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

// TestOrderHistory_Filters 过滤参数解析
func TestOrderHistory_Filters(t *testing.T) {
	alice := &user.User{ID: 42, Email: "alice@example.com"}

	t.Run("状态过滤非法值报错", func(t *testing.T) {
		uc := NewOrderHistoryUseCase(newFakeOrderRepo(), newFakeUserRepo(alice))
		_, err := uc.Execute(context.Background(), OrderHistoryRequest{UserID: 42, Status: "shipped"})
		assert.ErrorIs(t, err, order.ErrInvalidStatus)
	})

	t.Run("日期格式非法报错", func(t *testing.T) {
		uc := NewOrderHistoryUseCase(newFakeOrderRepo(), newFakeUserRepo(alice))
		for _, d := range []string{"2026/09/01", "01-09-2026", "昨天"} {
			_, err := uc.Execute(context.Background(), OrderHistoryRequest{UserID: 42, StartDate: d})
			assert.ErrorIs(t, err, order.ErrInvalidDateRange, "startDate=%q", d)
		}
	})

	t.Run("结束日期扩展到当天末尾", func(t *testing.T) {
		repo := &recordingOrderRepo{fakeOrderRepo: *newFakeOrderRepo()}
		uc := NewOrderHistoryUseCase(repo, newFakeUserRepo(alice))

		_, err := uc.Execute(context.Background(), OrderHistoryRequest{
			UserID:    42,
			StartDate: "2026-08-01",
			EndDate:   "2026-08-31",
			Status:    "completed",
		})
		require.NoError(t, err)

		p := repo.lastParams
		require.NotNil(t, p.StartDate)
		require.NotNil(t, p.EndDate)
		assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), *p.StartDate)
		assert.Equal(t, time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC), *p.EndDate,
			"结束日含当天整天")
		require.NotNil(t, p.Status)
		assert.Equal(t, order.OrderStatusCompleted, *p.Status)
	})

	t.Run("分页参数兜底", func(t *testing.T) {
		repo := &recordingOrderRepo{fakeOrderRepo: *newFakeOrderRepo()}
		uc := NewOrderHistoryUseCase(repo, newFakeUserRepo(alice))

		_, err := uc.Execute(context.Background(), OrderHistoryRequest{UserID: 42, Page: -1, Limit: 1000})
		require.NoError(t, err)
		assert.Equal(t, 1, repo.lastParams.Page)
		assert.Equal(t, 100, repo.lastParams.Limit, "limit上限100")
	})
}

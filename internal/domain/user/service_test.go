package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/ayabook/bookshop/pkg/errors"
)

// memoryRepo 内存用户仓储(模拟唯一索引)
type memoryRepo struct {
	users  map[uint]*User
	nextID uint
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: make(map[uint]*User), nextID: 1}
}

func (r *memoryRepo) Create(ctx context.Context, u *User) error {
	for _, exist := range r.users {
		if exist.Email == u.Email {
			return apperrors.ErrEmailDuplicate
		}
	}
	u.ID = r.nextID
	r.nextID++
	r.users[u.ID] = u
	return nil
}

func (r *memoryRepo) FindByID(ctx context.Context, id uint) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (r *memoryRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *memoryRepo) Update(ctx context.Context, u *User) error {
	r.users[u.ID] = u
	return nil
}

// TestRegister 测试用户注册
func TestRegister(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	t.Run("正常注册", func(t *testing.T) {
		u, err := svc.Register(ctx, "alice@example.com", "passw0rd123", "Alice")
		require.NoError(t, err)

		assert.NotZero(t, u.ID)
		assert.Equal(t, RoleUser, u.Role, "注册只产生普通用户")
		assert.NotEqual(t, "passw0rd123", u.Password, "密码必须加密存储")
		assert.NoError(t, svc.ValidatePassword(u.Password, "passw0rd123"))
	})

	t.Run("邮箱重复", func(t *testing.T) {
		_, err := svc.Register(ctx, "alice@example.com", "passw0rd123", "Alice2")
		assert.ErrorIs(t, err, apperrors.ErrEmailDuplicate)
	})

	t.Run("邮箱格式非法", func(t *testing.T) {
		for _, email := range []string{"", "not-an-email", "a@b", "@example.com"} {
			_, err := svc.Register(ctx, email, "passw0rd123", "Bob")
			require.Error(t, err, "邮箱%q应该被拒绝", email)
		}
	})

	t.Run("密码强度不足", func(t *testing.T) {
		cases := []string{
			"short1",               // 太短
			"onlyletterspassword",  // 没有数字
			"12345678901",          // 没有字母
			"verylongpassword12345", // 超过20位
		}
		for _, pwd := range cases {
			_, err := svc.Register(ctx, "bob@example.com", pwd, "Bob")
			assert.ErrorIs(t, err, apperrors.ErrWeakPassword, "密码%q应该被拒绝", pwd)
		}
	})
}

// TestLogin 测试用户登录
func TestLogin(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice@example.com", "passw0rd123", "Alice")
	require.NoError(t, err)

	t.Run("正常登录", func(t *testing.T) {
		u, err := svc.Login(ctx, "alice@example.com", "passw0rd123")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, u.ID)
	})

	t.Run("密码错误", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice@example.com", "wrongpass1")
		assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
	})

	t.Run("用户不存在时返回同样的错误", func(t *testing.T) {
		// 不区分"用户不存在"与"密码错误",避免账号枚举
		_, err := svc.Login(ctx, "nobody@example.com", "passw0rd123")
		assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
	})
}

// TestUser_IsAdmin 角色判定
func TestUser_IsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: RoleUser}).IsAdmin())
	assert.False(t, (&User{}).IsAdmin())
}

package mysql

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestGetDB_TxPropagation 事务DB通过context传递,各Repository从中提取
func TestGetDB_TxPropagation(t *testing.T) {
	base := &gorm.DB{Config: &gorm.Config{}, Statement: &gorm.Statement{}}
	tx := &gorm.DB{Config: &gorm.Config{}, Statement: &gorm.Statement{}}

	t.Run("事务内取事务DB", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), txContextKey{}, tx)
		assert.Same(t, tx, getDB(ctx, base))
	})

	t.Run("事务外回落默认DB", func(t *testing.T) {
		ctx := context.Background()
		got := getDB(ctx, base)
		require.NotNil(t, got)
		assert.NotSame(t, tx, got, "没有事务时不能拿到别人的事务DB")
	})
}

// TestIsDuplicateError 唯一索引冲突判定
func TestIsDuplicateError(t *testing.T) {
	assert.False(t, isDuplicateError(nil))
	assert.True(t, isDuplicateError(gorm.ErrDuplicatedKey))
	assert.True(t, isDuplicateError(errors.New("Error 1062: Duplicate entry 'x' for key 'name'")))
	assert.False(t, isDuplicateError(errors.New("Error 1213: Deadlock found")))
}

package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBook_CanFulfill 测试库存满足判定
func TestBook_CanFulfill(t *testing.T) {
	b := &Book{Stock: 5}

	assert.True(t, b.CanFulfill(1))
	assert.True(t, b.CanFulfill(5), "刚好等于库存应该满足")
	assert.False(t, b.CanFulfill(6))
	assert.False(t, b.CanFulfill(0), "数量必须大于0")
	assert.False(t, b.CanFulfill(-1))
}

// TestBook_DecrStock 测试库存扣减
func TestBook_DecrStock(t *testing.T) {
	t.Run("正常扣减并累计销量", func(t *testing.T) {
		b := &Book{Stock: 10, SoldCount: 3}

		require.NoError(t, b.DecrStock(4))
		assert.Equal(t, 6, b.Stock)
		assert.Equal(t, 7, b.SoldCount)
	})

	t.Run("库存不足拒绝扣减", func(t *testing.T) {
		b := &Book{Stock: 2, SoldCount: 0}

		err := b.DecrStock(3)
		assert.ErrorIs(t, err, ErrInsufficientStock)
		assert.Equal(t, 2, b.Stock, "失败时库存不应该变化")
		assert.Equal(t, 0, b.SoldCount)
	})

	t.Run("数量非正数拒绝", func(t *testing.T) {
		b := &Book{Stock: 10}
		assert.ErrorIs(t, b.DecrStock(0), ErrInvalidQuantity)
		assert.ErrorIs(t, b.DecrStock(-1), ErrInvalidQuantity)
	})

	t.Run("扣到零库存合法", func(t *testing.T) {
		b := &Book{Stock: 3}
		require.NoError(t, b.DecrStock(3))
		assert.Equal(t, 0, b.Stock)
	})
}

// TestBook_IncrStock 测试库存回滚(订单取消)
func TestBook_IncrStock(t *testing.T) {
	t.Run("回滚库存并扣回销量", func(t *testing.T) {
		b := &Book{Stock: 1, SoldCount: 5}

		require.NoError(t, b.IncrStock(3))
		assert.Equal(t, 4, b.Stock)
		assert.Equal(t, 2, b.SoldCount)
	})

	t.Run("销量不会被扣成负数", func(t *testing.T) {
		b := &Book{Stock: 0, SoldCount: 1}

		require.NoError(t, b.IncrStock(5))
		assert.Equal(t, 5, b.Stock)
		assert.Equal(t, 0, b.SoldCount, "销量下限为0")
	})

	t.Run("数量非正数拒绝", func(t *testing.T) {
		b := &Book{Stock: 1}
		assert.ErrorIs(t, b.IncrStock(0), ErrInvalidQuantity)
	})
}

// TestBook_UpdateInfo 测试基本信息更新(空值表示不修改)
func TestBook_UpdateInfo(t *testing.T) {
	b := &Book{Title: "旧书名", Author: "旧作者", Image: "old.jpg", Description: "旧描述"}

	b.UpdateInfo("新书名", "", "", "新描述")

	assert.Equal(t, "新书名", b.Title)
	assert.Equal(t, "旧作者", b.Author, "空值字段保持原样")
	assert.Equal(t, "old.jpg", b.Image)
	assert.Equal(t, "新描述", b.Description)
}

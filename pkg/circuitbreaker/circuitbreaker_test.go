package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBroker = errors.New("broker unreachable")

func newTestBreaker(timeout time.Duration, tripAfter uint32) *CircuitBreaker {
	return NewCircuitBreaker("mq-publisher", Config{
		MaxRequests: 2,
		Interval:    time.Minute,
		Timeout:     timeout,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= tripAfter
		},
	})
}

// TestExecute_StaysClosedOnSuccess 持续成功时保持关闭
func TestExecute_StaysClosedOnSuccess(t *testing.T) {
	cb := newTestBreaker(time.Second, 3)

	for i := 0; i < 20; i++ {
		require.NoError(t, cb.Execute(func() error { return nil }))
	}

	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, uint32(20), cb.Counts().TotalSuccesses)
}

// TestExecute_TripsAfterConsecutiveFailures 连续失败达到阈值后熔断
func TestExecute_TripsAfterConsecutiveFailures(t *testing.T) {
	cb := newTestBreaker(time.Second, 3)

	// 成功会清零连续失败计数,2次失败+1次成功不触发熔断
	_ = cb.Execute(func() error { return errBroker })
	_ = cb.Execute(func() error { return errBroker })
	_ = cb.Execute(func() error { return nil })
	assert.Equal(t, StateClosed, cb.State(), "连续失败被成功打断,不应该熔断")

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errBroker })
	}
	assert.Equal(t, StateOpen, cb.State())
}

// TestExecute_OpenShortCircuits 熔断后直接拒绝,不再调用下游
func TestExecute_OpenShortCircuits(t *testing.T) {
	cb := newTestBreaker(time.Minute, 2)
	_ = cb.Execute(func() error { return errBroker })
	_ = cb.Execute(func() error { return errBroker })
	require.Equal(t, StateOpen, cb.State())

	invoked := false
	err := cb.Execute(func() error {
		invoked = true
		return nil
	})

	assert.ErrorIs(t, err, ErrOpenState)
	assert.False(t, invoked, "熔断期间不应该触达下游")
}

// TestExecute_RecoversThroughHalfOpen 超时后半开探测,探测成功恢复关闭
func TestExecute_RecoversThroughHalfOpen(t *testing.T) {
	cb := newTestBreaker(50*time.Millisecond, 2)
	_ = cb.Execute(func() error { return errBroker })
	_ = cb.Execute(func() error { return errBroker })
	require.Equal(t, StateOpen, cb.State())

	time.Sleep(80 * time.Millisecond)

	require.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, StateClosed, cb.State(), "探测成功应该恢复关闭")
}

// TestExecute_HalfOpenFailureReopens 探测失败立刻回到熔断
func TestExecute_HalfOpenFailureReopens(t *testing.T) {
	cb := newTestBreaker(50*time.Millisecond, 2)
	_ = cb.Execute(func() error { return errBroker })
	_ = cb.Execute(func() error { return errBroker })

	time.Sleep(80 * time.Millisecond)

	err := cb.Execute(func() error { return errBroker })
	assert.ErrorIs(t, err, errBroker, "探测请求的原始错误透传")
	assert.Equal(t, StateOpen, cb.State())
}

// TestStateChangeCallback 状态变化回调按顺序触发
func TestStateChangeCallback(t *testing.T) {
	cb := newTestBreaker(50*time.Millisecond, 2)

	var changes []string
	cb.SetStateChangeCallback(func(name string, from, to State) {
		assert.Equal(t, "mq-publisher", name)
		changes = append(changes, from.String()+">"+to.String())
	})

	_ = cb.Execute(func() error { return errBroker })
	_ = cb.Execute(func() error { return errBroker })
	time.Sleep(80 * time.Millisecond)
	_ = cb.Execute(func() error { return nil })

	assert.Equal(t, []string{
		"CLOSED>OPEN",
		"OPEN>HALF_OPEN",
		"HALF_OPEN>CLOSED",
	}, changes)
}

// TestCounts_FailureRate 失败率统计
func TestCounts_FailureRate(t *testing.T) {
	c := &Counts{}
	assert.Zero(t, c.FailureRate(), "没有请求时失败率为0")

	c.Requests = 4
	c.TotalSuccesses = 3
	c.TotalFailures = 1
	assert.InDelta(t, 0.25, c.FailureRate(), 0.001)
}

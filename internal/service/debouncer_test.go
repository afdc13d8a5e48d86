package service

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer_LatestCallWins(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	defer d.Stop()

	var last atomic.Int64
	var calls atomic.Int32
	for i := int64(1); i <= 3; i++ {
		i := i
		d.Trigger(7, func() {
			calls.Add(1)
			last.Store(i)
		})
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, int64(3), last.Load())
}

func TestDebouncer_KeysAreIndependentAndCancelable(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	defer d.Stop()

	var a, b atomic.Int32
	d.Trigger(1, func() { a.Add(1) })
	d.Trigger(2, func() { b.Add(1) })
	d.Cancel(2)

	assert.Eventually(t, func() bool { return a.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(0), b.Load())
}

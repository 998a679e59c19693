package search

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer_CollapsesBurst(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	defer d.Stop()

	var calls, last atomic.Int32
	for i := 1; i <= 5; i++ {
		d.Trigger("k", func() {
			calls.Add(1)
			last.Store(int32(i))
		})
		time.Sleep(5 * time.Millisecond)
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, int32(5), last.Load(), "the last trigger wins")
	assert.Equal(t, 0, d.pending())
}

func TestDebouncer_KeysAreIndependent(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	defer d.Stop()

	var a, b atomic.Int32
	d.Trigger("a", func() { a.Add(1) })
	d.Trigger("b", func() { b.Add(1) })
	assert.Equal(t, 2, d.pending())

	assert.Eventually(t, func() bool { return a.Load() == 1 && b.Load() == 1 }, time.Second, 5*time.Millisecond)
}

func TestDebouncer_SeparateBursts(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	defer d.Stop()

	var calls atomic.Int32
	d.Trigger("k", func() { calls.Add(1) })
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	d.Trigger("k", func() { calls.Add(1) })
	assert.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, 5*time.Millisecond)
}

func TestDebouncer_Stop(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)

	var calls atomic.Int32
	assert.True(t, d.Trigger("k", func() { calls.Add(1) }))
	assert.Equal(t, []string{"k"}, d.Stop())
	assert.False(t, d.Trigger("k", func() { calls.Add(1) }))

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
	assert.Equal(t, 0, d.pending())
}

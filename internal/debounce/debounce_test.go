package debounce

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriggerCoalescesBurst(t *testing.T) {
	d := New(30 * time.Millisecond)
	var calls atomic.Int32
	var lastValue atomic.Int32
	done := make(chan struct{}, 1)

	for i := 1; i <= 5; i++ {
		v := int32(i)
		d.Trigger("resize", func() {
			calls.Add(1)
			lastValue.Store(v)
			done <- struct{}{}
		})
		time.Sleep(2 * time.Millisecond)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("debounced call never fired")
	}
	time.Sleep(60 * time.Millisecond)

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, int32(5), lastValue.Load())
	assert.False(t, d.Pending("resize"))
}

func TestKeysAreIndependent(t *testing.T) {
	d := New(10 * time.Millisecond)
	fired := make(chan string, 2)
	d.Trigger("a", func() { fired <- "a" })
	d.Trigger("b", func() { fired <- "b" })

	got := map[string]bool{}
	for i := 0; i < 2; i++ {
		select {
		case k := <-fired:
			got[k] = true
		case <-time.After(time.Second):
			t.Fatal("timed out")
		}
	}
	assert.Equal(t, map[string]bool{"a": true, "b": true}, got)
}

func TestStopCancelsPending(t *testing.T) {
	d := New(20 * time.Millisecond)
	var calls atomic.Int32
	d.Trigger("resize", func() { calls.Add(1) })
	require.True(t, d.Pending("resize"))

	d.Stop()
	d.Trigger("resize", func() { calls.Add(1) })
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, int32(0), calls.Load())
	assert.False(t, d.Pending("resize"))
}

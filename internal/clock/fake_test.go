package clock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

func TestFakeAdvanceRunsDueCallbacksInOrder(t *testing.T) {
	c := NewFake(epoch)
	var order []string

	c.AfterFunc(3*time.Second, func() { order = append(order, "c") })
	c.AfterFunc(1*time.Second, func() { order = append(order, "a") })
	c.AfterFunc(2*time.Second, func() { order = append(order, "b") })

	c.Advance(1500 * time.Millisecond)
	assert.Equal(t, []string{"a"}, order)
	assert.Equal(t, epoch.Add(1500*time.Millisecond), c.Now())

	c.Advance(2 * time.Second)
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, 0, c.Pending())
}

func TestFakeCallbackSeesDueTime(t *testing.T) {
	c := NewFake(epoch)
	var seen time.Time
	c.AfterFunc(time.Minute, func() { seen = c.Now() })

	c.Advance(time.Hour)
	assert.Equal(t, epoch.Add(time.Minute), seen)
	assert.Equal(t, epoch.Add(time.Hour), c.Now())
}

func TestFakeChainedCallbacksWithinOneAdvance(t *testing.T) {
	c := NewFake(epoch)
	fired := 0
	var reschedule func()
	reschedule = func() {
		fired++
		c.AfterFunc(time.Second, reschedule)
	}
	c.AfterFunc(time.Second, reschedule)

	c.Advance(5 * time.Second)
	assert.Equal(t, 5, fired)
	assert.Equal(t, 1, c.Pending())
}

func TestFakeStop(t *testing.T) {
	c := NewFake(epoch)
	ran := false
	timer := c.AfterFunc(time.Second, func() { ran = true })

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
	c.Advance(time.Minute)
	assert.False(t, ran)

	fired := c.AfterFunc(time.Second, func() {})
	c.Advance(time.Second)
	assert.False(t, fired.Stop())
}

func TestFakeRunAllRespectsLimit(t *testing.T) {
	c := NewFake(epoch)
	var tick func()
	tick = func() { c.AfterFunc(time.Second, tick) }
	c.AfterFunc(time.Second, tick)

	assert.Equal(t, 10, c.RunAll(10))
	assert.Equal(t, epoch.Add(10*time.Second), c.Now())
}

func TestSleep(t *testing.T) {
	c := NewFake(epoch)
	done := make(chan error, 1)
	go func() { done <- Sleep(context.Background(), c, time.Second) }()

	c.BlockUntil(1)
	c.Advance(time.Second)
	require.NoError(t, <-done)
}

func TestSleepCancelled(t *testing.T) {
	c := NewFake(epoch)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Sleep(ctx, c, time.Hour) }()

	c.BlockUntil(1)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.Equal(t, 0, c.Pending())
}

func TestSleepZeroDuration(t *testing.T) {
	assert.NoError(t, Sleep(context.Background(), NewFake(epoch), 0))
}

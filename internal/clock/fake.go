package clock

import (
	"sync"
	"time"
)

// Fake is a virtual clock. Scheduled callbacks only run when the test calls
// Advance or RunAll, in due-time order, on the caller's goroutine.
type Fake struct {
	mu    sync.Mutex
	cond  *sync.Cond
	now   time.Time
	queue taskHeap
	seq   uint64
}

func NewFake(now time.Time) *Fake {
	f := &Fake{now: now}
	f.cond = sync.NewCond(&f.mu)
	return f
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) AfterFunc(d time.Duration, fn func()) Timer {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d < 0 {
		d = 0
	}
	f.seq++
	t := &task{when: f.now.Add(d), seq: f.seq, fn: fn}
	f.queue.enqueue(t)
	f.cond.Broadcast()
	return &fakeTimer{clock: f, task: t}
}

// Pending returns the number of scheduled callbacks that have not run.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queue.Len()
}

// BlockUntil waits until at least n callbacks are scheduled. It lets a test
// synchronise with goroutines that register timers asynchronously.
func (f *Fake) BlockUntil(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for f.queue.Len() < n {
		f.cond.Wait()
	}
}

// Advance moves virtual time forward by d, running every callback that falls
// due, including ones scheduled by callbacks during the advance.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now.Add(d)
	for {
		next := f.queue.peek()
		if next == nil || next.when.After(target) {
			break
		}
		f.runLocked(f.queue.dequeue())
	}
	f.now = target
	f.mu.Unlock()
}

// RunAll drains the queue, jumping virtual time to each due callback. It stops
// after limit callbacks to protect tests from self-rescheduling timers.
func (f *Fake) RunAll(limit int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	ran := 0
	for ran < limit {
		t := f.queue.dequeue()
		if t == nil {
			break
		}
		f.runLocked(t)
		ran++
	}
	return ran
}

// runLocked releases the lock around the callback so it may schedule more work.
func (f *Fake) runLocked(t *task) {
	if t.when.After(f.now) {
		f.now = t.when
	}
	t.fired = true
	f.mu.Unlock()
	t.fn()
	f.mu.Lock()
}

type fakeTimer struct {
	clock *Fake
	task  *task
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.task.fired || t.task.stopped {
		return false
	}
	t.task.stopped = true
	t.clock.queue.remove(t.task)
	return true
}

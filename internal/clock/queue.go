package clock

import (
	"container/heap"
	"time"
)

// task is a callback due at a point in virtual time.
type task struct {
	when    time.Time
	seq     uint64 // insertion order breaks ties
	fn      func()
	index   int
	stopped bool
	fired   bool
}

// taskHeap implements heap.Interface ordered by due time.
type taskHeap []*task

func (h taskHeap) Len() int { return len(h) }

func (h taskHeap) Less(i, j int) bool {
	if h[i].when.Equal(h[j].when) {
		return h[i].seq < h[j].seq
	}
	return h[i].when.Before(h[j].when)
}

func (h taskHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *taskHeap) Push(x interface{}) {
	t := x.(*task)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *taskHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	x.index = -1
	*h = old[0 : n-1]
	return x
}

func (h *taskHeap) enqueue(t *task) {
	heap.Push(h, t)
}

func (h *taskHeap) remove(t *task) {
	if t.index >= 0 && t.index < len(*h) && (*h)[t.index] == t {
		heap.Remove(h, t.index)
	}
}

// peek returns the earliest task without removing it.
func (h taskHeap) peek() *task {
	if len(h) == 0 {
		return nil
	}
	return h[0]
}

func (h *taskHeap) dequeue() *task {
	if len(*h) == 0 {
		return nil
	}
	return heap.Pop(h).(*task)
}

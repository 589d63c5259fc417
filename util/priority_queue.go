package util

import "container/heap"

type pqItem struct {
	key      string
	priority float64
	// insertion counter, orders items with equal priority
	seq int
}

type pqHeap []*pqItem

func (h pqHeap) Len() int { return len(h) }

func (h pqHeap) Less(i, j int) bool {
	if h[i].priority == h[j].priority {
		return h[i].seq < h[j].seq
	}
	return h[i].priority < h[j].priority
}

func (h pqHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *pqHeap) Push(x any) {
	*h = append(*h, x.(*pqItem))
}

func (h *pqHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// PriorityQueue is a min-priority queue over string keys.
// A key is present at most once; Update only ever lowers its priority.
// Superseded heap entries are left in place and skipped by Pop
type PriorityQueue struct {
	heap pqHeap
	// current heap entry of every live key
	live map[string]*pqItem
	seq  int
}

func NewPriorityQueue() *PriorityQueue {
	return &PriorityQueue{
		heap: make(pqHeap, 0),
		live: make(map[string]*pqItem),
	}
}

// Push inserts key with the given priority, replacing any priority it already has
func (q *PriorityQueue) Push(key string, priority float64) {
	item := &pqItem{key: key, priority: priority, seq: q.seq}
	q.live[key] = item
	heap.Push(&q.heap, item)
	q.seq++
}

// Update inserts key if absent, otherwise lowers its priority if the new one is smaller.
// Returns true if the queue changed
func (q *PriorityQueue) Update(key string, priority float64) bool {
	if cur, ok := q.live[key]; ok && cur.priority <= priority {
		return false
	}
	q.Push(key, priority)
	return true
}

// Pop removes and returns the key with the smallest priority.
// Popping an empty queue is a programming error and panics
func (q *PriorityQueue) Pop() (string, float64) {
	for q.heap.Len() > 0 {
		item := heap.Pop(&q.heap).(*pqItem)
		if q.live[item.key] != item {
			// stale entry
			continue
		}
		delete(q.live, item.key)
		return item.key, item.priority
	}
	panic("util: pop on empty priority queue")
}

// Priority of key if it is queued
func (q *PriorityQueue) Priority(key string) (float64, bool) {
	item, ok := q.live[key]
	if !ok {
		return 0, false
	}
	return item.priority, true
}

func (q *PriorityQueue) Contains(key string) bool {
	_, ok := q.live[key]
	return ok
}

// Len is the number of distinct queued keys
func (q *PriorityQueue) Len() int {
	return len(q.live)
}

func (q *PriorityQueue) IsEmpty() bool {
	return len(q.live) == 0
}

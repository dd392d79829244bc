// internal/sched/queue.go

package sched

import (
	"github.com/emirpasic/gods/lists/doublylinkedlist"
	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/emirpasic/gods/utils"
)

// TaskQueue is a FIFO ready queue. Tasks are pushed at the back and
// dispatched from the front, so iteration order is arrival order.
type TaskQueue struct {
	list *doublylinkedlist.List
}

// NewTaskQueue returns an empty queue.
func NewTaskQueue() *TaskQueue {
	return &TaskQueue{list: doublylinkedlist.New()}
}

// PushBack appends t to the tail of the queue.
func (q *TaskQueue) PushBack(t *Task) { q.list.Append(t) }

// PopFront removes and returns the head of the queue.
func (q *TaskQueue) PopFront() (*Task, bool) {
	t, ok := q.Front()
	if ok {
		q.list.Remove(0)
	}
	return t, ok
}

// Front returns the head of the queue without removing it.
func (q *TaskQueue) Front() (*Task, bool) {
	v, ok := q.list.Get(0)
	if !ok {
		return nil, false
	}
	return v.(*Task), true
}

// Remove deletes t by identity, wherever it sits in the queue.
func (q *TaskQueue) Remove(t *Task) bool {
	idx := q.list.IndexOf(t)
	if idx < 0 {
		return false
	}
	q.list.Remove(idx)
	return true
}

// Len returns the number of queued tasks.
func (q *TaskQueue) Len() int { return q.list.Size() }

// Empty reports whether the queue holds no tasks.
func (q *TaskQueue) Empty() bool { return q.list.Empty() }

// Tasks returns a snapshot of the queue, head first.
func (q *TaskQueue) Tasks() []*Task {
	out := make([]*Task, 0, q.list.Size())
	it := q.list.Iterator()
	for it.Next() {
		out = append(out, it.Value().(*Task))
	}
	return out
}

// PriorityLevels holds one TaskQueue per priority level. Levels are created
// on first use and visited from the highest priority down.
type PriorityLevels struct {
	rbt *redblacktree.Tree // priority -> *TaskQueue, highest priority leftmost
}

// NewPriorityLevels returns an empty level set.
func NewPriorityLevels() *PriorityLevels {
	return &PriorityLevels{rbt: redblacktree.NewWith(descending)}
}

// Queue returns the queue for the given level, creating it if needed.
func (p *PriorityLevels) Queue(level int) *TaskQueue {
	if v, ok := p.rbt.Get(level); ok {
		return v.(*TaskQueue)
	}
	q := NewTaskQueue()
	p.rbt.Put(level, q)
	return q
}

// Each calls fn for every non-empty level, highest priority first.
func (p *PriorityLevels) Each(fn func(level int, q *TaskQueue)) {
	it := p.rbt.Iterator()
	for it.Next() {
		if q := it.Value().(*TaskQueue); !q.Empty() {
			fn(it.Key().(int), q)
		}
	}
}

// Len returns the number of tasks across all levels.
func (p *PriorityLevels) Len() int {
	n := 0
	for _, v := range p.rbt.Values() {
		n += v.(*TaskQueue).Len()
	}
	return n
}

// descending orders priority keys so the highest level is the leftmost node.
func descending(a, b any) int {
	return utils.IntComparator(b, a)
}

// Package queue implements the bounded, priority-max dequeue queue
// used by the scheduler's ready and run tiers.
package queue

import (
	"log/slog"

	"kernelsim/kernel/proc"
)

// Queue is a fixed-capacity array of PCB references with
// highest-priority-first, insertion-order-tiebreak dequeue.
type Queue struct {
	procs    []*proc.PCB
	capacity int
}

// New returns an empty queue with the given capacity.
func New(capacity int) *Queue {
	return &Queue{procs: make([]*proc.PCB, 0, capacity), capacity: capacity}
}

// Empty reports whether the queue holds no processes.
func (q *Queue) Empty() bool { return len(q.procs) == 0 }

// Size returns the number of live entries.
func (q *Queue) Size() int { return len(q.procs) }

// Enqueue appends p at the tail. If the queue is already at capacity
// the process is dropped and the overflow is logged rather than
// silently discarded.
func (q *Queue) Enqueue(p *proc.PCB) {
	if len(q.procs) >= q.capacity {
		slog.Warn("queue overflow, dropping process", "pid", p.Pid, "capacity", q.capacity)
		return
	}
	q.procs = append(q.procs, p)
}

// Dequeue removes and returns the highest-priority process in the
// queue. Among processes tied for the maximum priority, the one
// inserted earliest (i.e. first in the array) is returned. Returns
// nil if the queue is empty.
func (q *Queue) Dequeue() *proc.PCB {
	if len(q.procs) == 0 {
		return nil
	}

	maxIdx := 0
	for i := 1; i < len(q.procs); i++ {
		if q.procs[i].Priority > q.procs[maxIdx].Priority {
			maxIdx = i
		}
	}

	picked := q.procs[maxIdx]
	q.procs = append(q.procs[:maxIdx], q.procs[maxIdx+1:]...)
	return picked
}

// Drain removes every process from the queue, in insertion order, and
// returns them. Used by the scheduler to refill the ready queue from
// the run queue.
func (q *Queue) Drain() []*proc.PCB {
	drained := q.procs
	q.procs = make([]*proc.PCB, 0, q.capacity)
	return drained
}

// Package sched implements the two-tier priority scheduler: a ready
// queue and a run queue that rotate so every admitted process runs at
// least once per epoch, while a consistently higher-priority process
// is still favored across epochs.
package sched

import (
	"sync"

	"kernelsim/kernel/proc"
	"kernelsim/kernel/queue"
)

// Scheduler holds the ready/run queue pair and the lock serializing
// all queue mutation. The zero value is not usable; construct with
// New.
type Scheduler struct {
	mu    sync.Mutex
	ready *queue.Queue
	run   *queue.Queue
}

// New returns a scheduler with empty ready/run queues of the given
// capacity.
func New(maxQueueSize int) *Scheduler {
	return &Scheduler{
		ready: queue.New(maxQueueSize),
		run:   queue.New(maxQueueSize),
	}
}

// IsEmpty reports whether both the ready and run queues are empty.
func (s *Scheduler) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready.Empty() && s.run.Empty()
}

// AddProc admits a new process into the ready queue.
func (s *Scheduler) AddProc(p *proc.PCB) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready.Enqueue(p)
}

// PutProc returns a process that has used its quantum and is not
// finished to the run queue, where it waits out the rest of the
// current epoch.
func (s *Scheduler) PutProc(p *proc.PCB) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.run.Enqueue(p)
}

// GetProc returns the next process to run: the highest-priority
// process in the ready queue. If the ready queue is empty, every
// process waiting in the run queue is drained back into ready first
// (preserving insertion order), starting a new epoch. Returns nil if
// both queues are empty.
//
// The drain is performed under the same lock as the dequeue, closing
// a race where a concurrent AddProc/PutProc could interleave between
// an unlocked drain and the dequeue that follows it.
func (s *Scheduler) GetProc() *proc.PCB {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready.Empty() {
		for _, p := range s.run.Drain() {
			s.ready.Enqueue(p)
		}
	}

	return s.ready.Dequeue()
}

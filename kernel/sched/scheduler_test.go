package sched

import (
	"testing"

	"kernelsim/kernel/proc"
)

func TestIsEmpty(t *testing.T) {
	s := New(10)
	if !s.IsEmpty() {
		t.Error("new scheduler should be empty")
	}
	p := proc.New(1, 1, 0)
	s.AddProc(p)
	if s.IsEmpty() {
		t.Error("scheduler with an admitted process should not be empty")
	}
}

// TestEpochRotation walks through priority queue rotation across an epoch: priorities
// A=3, B=5, C=5 admitted in order A, B, C.
func TestEpochRotation(t *testing.T) {
	a := proc.New(1, 3, 0)
	b := proc.New(2, 5, 0)
	c := proc.New(3, 5, 0)

	s := New(10)
	s.AddProc(a)
	s.AddProc(b)
	s.AddProc(c)

	got := s.GetProc()
	if got != b {
		t.Fatalf("GetProc() = pid %d, want B (tie broken by insertion order)", got.Pid)
	}
	s.PutProc(b)

	got = s.GetProc()
	if got != c {
		t.Fatalf("GetProc() = pid %d, want C", got.Pid)
	}

	got = s.GetProc()
	if got != a {
		t.Fatalf("GetProc() = pid %d, want A", got.Pid)
	}

	// Ready is now empty; everyone from this epoch has been returned
	// to run.
	s.PutProc(c)
	s.PutProc(a)

	// Next GetProc drains run -> ready and returns the highest
	// priority process, B.
	got = s.GetProc()
	if got != b {
		t.Fatalf("GetProc() after drain = pid %d, want B", got.Pid)
	}
}

func TestNonStarvationWithinAnEpoch(t *testing.T) {
	procs := []*proc.PCB{
		proc.New(1, 1, 0),
		proc.New(2, 1, 0),
		proc.New(3, 2, 0),
		proc.New(4, 2, 0),
	}

	s := New(10)
	for _, p := range procs {
		s.AddProc(p)
	}

	seen := make(map[uint32]bool)
	for i := 0; i < len(procs); i++ {
		p := s.GetProc()
		if p == nil {
			t.Fatalf("GetProc() returned nil before the epoch was exhausted (i=%d)", i)
		}
		if seen[p.Pid] {
			t.Fatalf("pid %d returned twice within one epoch", p.Pid)
		}
		seen[p.Pid] = true
		s.PutProc(p)
	}
	if len(seen) != len(procs) {
		t.Fatalf("saw %d distinct processes, want %d", len(seen), len(procs))
	}
}

func TestGetProcOnEmptySchedulerReturnsNil(t *testing.T) {
	s := New(10)
	if got := s.GetProc(); got != nil {
		t.Fatalf("GetProc() on empty scheduler = %v, want nil", got)
	}
}

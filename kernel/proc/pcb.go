// Package proc defines the process control block interface expected
// by the memory manager and scheduler, and a concrete PCB usable by
// callers that don't need their own representation.
//
// The core treats a PCB as opaque: it neither constructs nor destroys
// one. Everything the core touches — priority, pid,
// bp, and the owned page directory — is exported on PCB directly
// rather than behind an interface, since Go's memory manager and
// scheduler packages need direct field access (bp advances on every
// alloc, under the memory manager's lock) and an interface boundary
// would only add indirection without decoupling anything real.
package proc

import "kernelsim/kernel/pagedir"

// PCB is a process control block. The register file and program
// counter a real driver would attach are outside the core's concern
// and are intentionally absent here.
type PCB struct {
	// Pid identifies the process. Pid 0 is reserved (frame.FreeOwner,
	// the free-frame sentinel, is 0) and must never be assigned to a
	// live PCB.
	Pid uint32

	// Priority orders this process in the scheduler's queues; larger
	// values run first.
	Priority uint32

	// BP is the virtual break pointer: the next unallocated virtual
	// address in this process's heap. It advances on alloc and
	// retracts only when the topmost allocation is freed.
	BP uint32

	// Dir is this process's page directory (segment table -> page
	// tables -> frames), mutated exclusively by the memory manager.
	Dir *pagedir.Dir
}

// New returns a PCB with the given pid and priority, an empty page
// directory, and a break pointer starting at bp. bp normally starts
// at the first virtual page (PageSize), not 0, since 0 is alloc's
// null-allocation sentinel.
func New(pid uint32, priority uint32, bp uint32) *PCB {
	return &PCB{
		Pid:      pid,
		Priority: priority,
		BP:       bp,
		Dir:      pagedir.New(),
	}
}

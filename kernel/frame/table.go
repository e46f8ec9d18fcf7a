// Package frame implements the physical frame table: a fixed array of
// frame descriptors tracking, for every physical frame, which process
// owns it and its position in that process's allocation chain.
//
// The table exposes no locking of its own — callers go through the
// memory manager's single coarse lock.
package frame

// FreeOwner is the sentinel owner value for an unallocated frame. Pid
// 0 is reserved and never assigned to a real process.
const FreeOwner = 0

// slot describes one physical frame.
type slot struct {
	owner uint32 // FreeOwner if unallocated
	index int    // position within the owning allocation chain
	next  int    // next frame in the chain, or -1 if terminal
}

// Table is the fixed-size physical frame table.
type Table struct {
	slots []slot
}

// New allocates a frame table with numFrames slots, all initially
// free.
func New(numFrames uint32) *Table {
	return &Table{slots: make([]slot, numFrames)}
}

// Len returns the number of frames in the table.
func (t *Table) Len() int { return len(t.slots) }

// IsFree reports whether frame i is unallocated.
func (t *Table) IsFree(i uint32) bool {
	return t.slots[i].owner == FreeOwner
}

// Owner returns the pid occupying frame i, or FreeOwner.
func (t *Table) Owner(i uint32) uint32 {
	return t.slots[i].owner
}

// Index returns the chain position of frame i. Meaningless if the
// frame is free.
func (t *Table) Index(i uint32) int {
	return t.slots[i].index
}

// Next returns the next frame in frame i's chain, or -1 if i is the
// terminal frame. Meaningless if the frame is free.
func (t *Table) Next(i uint32) int {
	return t.slots[i].next
}

// CountFree returns the number of currently free frames. O(NumPages),
// used by alloc's availability check.
func (t *Table) CountFree() uint32 {
	var n uint32
	for i := range t.slots {
		if t.slots[i].owner == FreeOwner {
			n++
		}
	}
	return n
}

// AllocChain walks the table in ascending index order, reserves the
// first n free frames for owner, and links them into a chain in the
// order found: slots[r0].next = r1, ..., slots[rn-1].next = -1. It
// returns the frame indices in chain order.
//
// AllocChain does not itself check availability; callers must confirm
// CountFree() >= n first so alloc never partially allocates.
func (t *Table) AllocChain(owner uint32, n uint32) []uint32 {
	chain := make([]uint32, 0, n)
	prev := -1
	for i := range t.slots {
		if uint32(len(chain)) == n {
			break
		}
		if t.slots[i].owner != FreeOwner {
			continue
		}
		t.slots[i].owner = owner
		t.slots[i].index = len(chain)
		t.slots[i].next = -1
		if prev != -1 {
			t.slots[prev].next = i
		}
		prev = i
		chain = append(chain, uint32(i))
	}
	return chain
}

// FreeChain walks the allocation chain starting at root via Next,
// marking every visited frame free, and returns the number of frames
// freed.
func (t *Table) FreeChain(root uint32) int {
	n := 0
	for i := int(root); i != -1; {
		next := t.slots[i].next
		t.slots[i] = slot{}
		n++
		i = next
	}
	return n
}

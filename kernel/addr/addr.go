// Package addr implements the bit-field address arithmetic used by the
// segmented two-level paging memory manager: decomposing a virtual
// address into (segment, page, offset) and composing a physical
// address from (frame, offset).
package addr

import (
	"kernelsim/kernel/errors"
)

// Addr is a virtual or physical address. The simulator targets small,
// configurable bit widths (20 bits by default) so a plain uint32 is
// always wide enough.
type Addr uint32

// Layout describes the bit-field partition of an address:
//
//	| segment (S bits) | page (P bits) | offset (O bits) |
//
// with S+P+O == AddrBits. It is immutable once constructed; every
// memmgr.Manager is built against exactly one Layout for its lifetime.
type Layout struct {
	AddrBits   uint
	OffsetLen  uint
	PageLen    uint
	SegmentLen uint

	// MaxQueueSize bounds the scheduler's ready/run queues.
	MaxQueueSize int

	// derived, precomputed at construction time
	pageSize       uint32
	numPages       uint32
	ramSize        uint32
	maxSegEntries  uint32
	maxPageEntries uint32
	offsetMask     uint32
	pageMask       uint32
	segmentMask    uint32
}

// DefaultLayout returns the standard 20-bit layout: 5-bit segment
// index, 5-bit page index, 10-bit offset, 32 physical frames, 10-slot
// queues.
func DefaultLayout() *Layout {
	l, err := NewLayout(20, 10, 5, 5, 32, 10)
	if err != nil {
		// The defaults are a compile-time invariant of the package;
		// a failure here means the constants above were edited
		// inconsistently.
		panic(err)
	}
	return l
}

// NewLayout validates and builds a Layout. S+P+O must equal AddrBits
// exactly, every field must be non-zero, and the whole layout must fit
// in a uint32.
//
// numFrames is the installed physical frame count, chosen
// independently of the address bit widths: AddrBits/OffsetLen only
// bound the largest frame index a physical address can name, they do
// not determine how much RAM is actually backing the simulation, the
// same way a real machine's installed memory is a separate quantity
// from its address bus width.
func NewLayout(addrBits, offsetLen, pageLen, segmentLen uint, numFrames uint32, maxQueueSize int) (*Layout, error) {
	if offsetLen == 0 || pageLen == 0 || segmentLen == 0 {
		return nil, errors.New("addr", "offset, page and segment widths must be non-zero")
	}
	if offsetLen+pageLen+segmentLen != addrBits {
		return nil, errors.Newf("addr", "segment(%d)+page(%d)+offset(%d) bits must equal addr_bits(%d)",
			segmentLen, pageLen, offsetLen, addrBits)
	}
	if addrBits == 0 || addrBits > 31 {
		return nil, errors.Newf("addr", "addr_bits(%d) must be in [1,31] to fit a 32-bit address", addrBits)
	}
	if numFrames == 0 {
		return nil, errors.New("addr", "num_frames must be non-zero")
	}
	if uint64(numFrames) > uint64(uint32(1)<<(addrBits-offsetLen)) {
		return nil, errors.Newf("addr", "num_frames(%d) exceeds the largest frame index addressable with %d physical bits",
			numFrames, addrBits-offsetLen)
	}
	if maxQueueSize <= 0 {
		return nil, errors.Newf("addr", "max_queue_size(%d) must be positive", maxQueueSize)
	}

	l := &Layout{
		AddrBits:     addrBits,
		OffsetLen:    offsetLen,
		PageLen:      pageLen,
		SegmentLen:   segmentLen,
		MaxQueueSize: maxQueueSize,
	}

	l.offsetMask = (uint32(1) << offsetLen) - 1
	l.pageMask = (uint32(1) << pageLen) - 1
	l.segmentMask = (uint32(1) << segmentLen) - 1

	l.pageSize = uint32(1) << offsetLen
	l.numPages = numFrames
	l.ramSize = l.numPages * l.pageSize
	l.maxSegEntries = uint32(1) << segmentLen
	l.maxPageEntries = uint32(1) << pageLen

	return l, nil
}

// PageSize returns 2^OffsetLen, the size in bytes of one page/frame.
func (l *Layout) PageSize() uint32 { return l.pageSize }

// NumPages returns the number of physical frames (and the fixed size
// of the frame table), as configured independently of the address bit
// widths.
func (l *Layout) NumPages() uint32 { return l.numPages }

// RAMSize returns NumPages * PageSize, the size of the simulated RAM
// byte array.
func (l *Layout) RAMSize() uint32 { return l.ramSize }

// MaxSegEntries returns the maximum number of live entries in a
// process's segment table: 2^SegmentLen.
func (l *Layout) MaxSegEntries() uint32 { return l.maxSegEntries }

// MaxPageEntries returns the maximum number of live entries in one
// page table: 2^PageLen.
func (l *Layout) MaxPageEntries() uint32 { return l.maxPageEntries }

// Offset extracts the low OffsetLen bits of a virtual or physical
// address.
func (l *Layout) Offset(v Addr) uint32 {
	return uint32(v) & l.offsetMask
}

// Page extracts the middle PageLen bits of a virtual address (the
// second-level table index).
func (l *Layout) Page(v Addr) uint32 {
	return (uint32(v) >> l.OffsetLen) & l.pageMask
}

// Segment extracts the top SegmentLen bits of a virtual address (the
// first-level table index).
func (l *Layout) Segment(v Addr) uint32 {
	return uint32(v) >> (l.OffsetLen + l.PageLen)
}

// Compose builds a physical address from a frame index and an offset
// within that frame: frame<<OffsetLen | offset.
func (l *Layout) Compose(frame uint32, offset uint32) Addr {
	return Addr(frame<<l.OffsetLen | (offset & l.offsetMask))
}

// PagesFor returns ceil(size/PageSize), the number of pages required
// to back an allocation of the given byte size. Rounding is always
// toward the ceiling.
func (l *Layout) PagesFor(size uint32) uint32 {
	ps := l.pageSize
	return (size + ps - 1) / ps
}

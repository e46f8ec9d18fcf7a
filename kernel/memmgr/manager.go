// Package memmgr implements the memory manager: alloc/free/read/write
// over a fixed physical frame table and per-process two-level page
// directories, serialized by a single coarse lock.
package memmgr

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"kernelsim/kernel/addr"
	"kernelsim/kernel/frame"
	"kernelsim/kernel/proc"
)

// NullAlloc is the sentinel returned by Alloc on failure. Zero is
// reserved: a successful allocation starts at the process's break
// pointer, so it is never zero as long as that break pointer starts at
// or above PageSize. Alloc does not check this; the PCB's creator sets
// the starting break pointer (see proc.New).
const NullAlloc = 0

// Manager is the memory manager. Construct with New; the zero value
// is not usable.
type Manager struct {
	layout *addr.Layout
	mu     sync.Mutex
	frames *frame.Table
	ram    []byte
}

// New builds a Manager for the given layout: a zeroed frame table and
// a zeroed RAM byte array of layout.RAMSize() bytes, performed at
// construction time rather than via a separate idempotent init call,
// since construction is already a one-shot operation the caller
// controls.
func New(layout *addr.Layout) *Manager {
	return &Manager{
		layout: layout,
		frames: frame.New(layout.NumPages()),
		ram:    make([]byte, layout.RAMSize()),
	}
}

// Alloc reserves size bytes of virtual memory for proc, rounded up to
// a whole number of pages, and returns the first allocated virtual
// address, or NullAlloc on failure. Allocation never partially
// succeeds: if either the physical frame table or the process's
// virtual address ceiling can't satisfy the request, Alloc returns
// NullAlloc without mutating any state.
func (m *Manager) Alloc(size uint32, p *proc.PCB) addr.Addr {
	if size == 0 {
		return NullAlloc
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	numPages := m.layout.PagesFor(size)
	pageSize := m.layout.PageSize()

	if m.frames.CountFree() < numPages {
		slog.Debug("alloc failed: insufficient free frames", "pid", p.Pid, "want_pages", numPages)
		return NullAlloc
	}
	if uint64(p.BP)+uint64(numPages)*uint64(pageSize) > uint64(m.layout.RAMSize()) {
		slog.Debug("alloc failed: virtual ceiling exceeded", "pid", p.Pid, "bp", p.BP)
		return NullAlloc
	}

	virtStart := p.BP
	p.BP += numPages * pageSize

	chain := m.frames.AllocChain(p.Pid, numPages)
	for i, f := range chain {
		va := addr.Addr(virtStart + uint32(i)*pageSize)
		if !p.Dir.Insert(m.layout.Segment(va), m.layout.Page(va), f, m.layout.MaxSegEntries(), m.layout.MaxPageEntries()) {
			slog.Error("page directory rejected a mapping within its own addressable range", "pid", p.Pid, "addr", va)
		}
	}

	return addr.Addr(virtStart)
}

// Free releases the allocation starting at virtAddr, previously
// returned by Alloc for the same process. Freeing an address that
// isn't exactly an allocation start is undefined behavior upstream
// and is tolerated here as a silent no-op: if translation fails, Free
// returns without effect.
func (m *Manager) Free(virtAddr addr.Addr, p *proc.PCB) {
	m.mu.Lock()
	defer m.mu.Unlock()

	phys, ok := m.translate(virtAddr, p)
	if !ok {
		slog.Debug("free: translation fault, ignoring", "pid", p.Pid, "addr", virtAddr)
		return
	}

	rootFrame := uint32(phys) >> m.layout.OffsetLen
	n := m.frames.FreeChain(rootFrame)

	pageSize := m.layout.PageSize()
	v := virtAddr
	for i := 0; i < n; i++ {
		p.Dir.Remove(m.layout.Segment(v), m.layout.Page(v))
		v += addr.Addr(pageSize)
	}

	if uint32(virtAddr)+uint32(n)*pageSize == p.BP {
		p.BP -= uint32(n) * pageSize
	}
}

// Read translates virtAddr through proc's page directory and returns
// the byte stored there. The second return value is false on a
// translation fault.
func (m *Manager) Read(virtAddr addr.Addr, p *proc.PCB) (byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	phys, ok := m.translate(virtAddr, p)
	if !ok {
		slog.Debug("read: translation fault", "pid", p.Pid, "addr", virtAddr)
		return 0, false
	}
	return m.ram[phys], true
}

// Write translates virtAddr through proc's page directory and stores
// b there. Returns false on a translation fault, leaving RAM
// untouched.
func (m *Manager) Write(virtAddr addr.Addr, b byte, p *proc.PCB) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	phys, ok := m.translate(virtAddr, p)
	if !ok {
		slog.Debug("write: translation fault", "pid", p.Pid, "addr", virtAddr)
		return false
	}
	m.ram[phys] = b
	return true
}

// translate resolves a virtual address to a physical one through
// proc's page directory. Callers must hold m.mu.
func (m *Manager) translate(v addr.Addr, p *proc.PCB) (addr.Addr, bool) {
	segment := m.layout.Segment(v)
	page := m.layout.Page(v)
	offset := m.layout.Offset(v)

	frameIdx, ok := p.Dir.Translate(segment, page)
	if !ok {
		return 0, false
	}
	return m.layout.Compose(frameIdx, offset), true
}

// Dump writes a debug listing of every occupied frame to w: its
// owning pid, chain position, next link, and any nonzero bytes it
// holds:
//
//	FFF: SSSSS-EEEEE - PID: PP (idx III, nxt: NNN)
//		AAAAA: BB
func (m *Manager) Dump(w io.Writer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pageSize := m.layout.PageSize()
	for i := uint32(0); i < uint32(m.frames.Len()); i++ {
		if m.frames.IsFree(i) {
			continue
		}
		low := i * pageSize
		high := (i+1)*pageSize - 1
		fmt.Fprintf(w, "%03d: %05x-%05x - PID: %02d (idx %03d, nxt: %03d)\n",
			i, low, high, m.frames.Owner(i), m.frames.Index(i), m.frames.Next(i))

		for j := low; j <= high; j++ {
			if m.ram[j] != 0 {
				fmt.Fprintf(w, "\t%05x: %02x\n", j, m.ram[j])
			}
		}
	}
}

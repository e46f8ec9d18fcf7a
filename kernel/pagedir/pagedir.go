// Package pagedir implements a process's two-level page directory: an
// ordered segment table whose entries each own a page table, mapping
// (v_segment, v_page) pairs to physical frame indices.
//
// Lookup is a linear scan; entry order is not semantically significant
// but is maintained by compaction on removal. A Dir is not safe for
// concurrent use by itself; callers (memmgr.Manager) serialize access
// with their own lock.
package pagedir

import "log/slog"

// pageEntry maps one virtual page to a physical frame within a
// segment's page table.
type pageEntry struct {
	vPage  uint32
	pFrame uint32
}

// pageTable is the second-level translation structure under one
// segment entry. A page table is exclusively owned by its segment
// entry; it is never shared across segments or processes.
type pageTable struct {
	entries []pageEntry
}

// segEntry maps one virtual segment index to its page table.
type segEntry struct {
	vSegment uint32
	pages    *pageTable
}

// Dir is a process's segment table, the root of its address
// translation structure.
type Dir struct {
	segs []segEntry
}

// New returns an empty page directory.
func New() *Dir {
	return &Dir{}
}

// Translate looks up the physical frame mapped to (segment, page),
// scanning the segment table and then the matching page table in
// order. The second return value is false on a translation fault —
// either the segment or the page within it has no live mapping.
func (d *Dir) Translate(segment, page uint32) (frame uint32, ok bool) {
	pt := d.findPageTable(segment)
	if pt == nil {
		return 0, false
	}
	for _, e := range pt.entries {
		if e.vPage == page {
			return e.pFrame, true
		}
	}
	return 0, false
}

// findPageTable returns the page table owned by the segment entry
// whose v_segment matches, or nil.
func (d *Dir) findPageTable(segment uint32) *pageTable {
	for i := range d.segs {
		if d.segs[i].vSegment == segment {
			return d.segs[i].pages
		}
	}
	return nil
}

// Insert records a (segment, page) -> frame mapping, creating a new
// page table under a fresh segment-table entry the first time that
// segment is seen in this directory, and appending to the existing
// one otherwise. Both segment-table and page-table entries are
// appended at the end of their arrays.
//
// maxSegEntries and maxPageEntries cap the segment table and each
// page table at the sizes the address layout's bit widths allow
// (addr.Layout.MaxSegEntries/MaxPageEntries). Insert reports false and
// logs instead of mutating if the insert would grow either table past
// its cap; a caller driving segment/page indices from addr.Layout's
// own extraction can never actually hit this, since those indices
// only ever range over exactly that many distinct values, but Insert
// does not trust its caller to have done so.
func (d *Dir) Insert(segment, page, frame, maxSegEntries, maxPageEntries uint32) bool {
	pt := d.findPageTable(segment)
	if pt == nil {
		if uint32(len(d.segs)) >= maxSegEntries {
			slog.Warn("segment table full, dropping mapping", "segment", segment, "max_seg_entries", maxSegEntries)
			return false
		}
		pt = &pageTable{}
		d.segs = append(d.segs, segEntry{vSegment: segment, pages: pt})
	} else if uint32(len(pt.entries)) >= maxPageEntries {
		slog.Warn("page table full, dropping mapping", "segment", segment, "page", page, "max_page_entries", maxPageEntries)
		return false
	}
	pt.entries = append(pt.entries, pageEntry{vPage: page, pFrame: frame})
	return true
}

// Remove deletes the (segment, page) mapping if present, compacting
// the owning page table, and releasing it — along with its
// segment-table slot — if it becomes empty. Removing an absent
// mapping is a no-op.
func (d *Dir) Remove(segment, page uint32) {
	for si := range d.segs {
		if d.segs[si].vSegment != segment {
			continue
		}
		pt := d.segs[si].pages
		for pi, e := range pt.entries {
			if e.vPage != page {
				continue
			}
			pt.entries = append(pt.entries[:pi], pt.entries[pi+1:]...)
			if len(pt.entries) == 0 {
				d.segs = append(d.segs[:si], d.segs[si+1:]...)
			}
			return
		}
		return
	}
}

// SegCount returns the number of live segment-table entries. Exposed
// for tests asserting the mapping-bijection invariant.
func (d *Dir) SegCount() int { return len(d.segs) }

// PageCount returns the number of live page-table entries under the
// given segment, or 0 if the segment has no entry.
func (d *Dir) PageCount(segment uint32) int {
	pt := d.findPageTable(segment)
	if pt == nil {
		return 0
	}
	return len(pt.entries)
}

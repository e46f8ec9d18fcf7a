package pagedir

import "testing"

func TestInsertAndTranslate(t *testing.T) {
	d := New()
	d.Insert(0, 1, 0, 32, 32)
	d.Insert(0, 2, 1, 32, 32)
	d.Insert(1, 0, 2, 32, 32)

	cases := []struct {
		segment, page, wantFrame uint32
		wantOK                   bool
	}{
		{0, 1, 0, true},
		{0, 2, 1, true},
		{1, 0, 2, true},
		{0, 3, 0, false}, // no such page
		{2, 0, 0, false}, // no such segment
	}

	for _, tc := range cases {
		frame, ok := d.Translate(tc.segment, tc.page)
		if ok != tc.wantOK {
			t.Errorf("Translate(%d,%d) ok = %v, want %v", tc.segment, tc.page, ok, tc.wantOK)
			continue
		}
		if ok && frame != tc.wantFrame {
			t.Errorf("Translate(%d,%d) = %d, want %d", tc.segment, tc.page, frame, tc.wantFrame)
		}
	}

	if got := d.SegCount(); got != 2 {
		t.Errorf("SegCount() = %d, want 2", got)
	}
}

func TestRemoveCompactsPageTableAndReleasesEmptySegment(t *testing.T) {
	d := New()
	d.Insert(0, 0, 10, 32, 32)
	d.Insert(0, 1, 11, 32, 32)
	d.Insert(0, 2, 12, 32, 32)

	d.Remove(0, 1)
	if _, ok := d.Translate(0, 1); ok {
		t.Error("page 1 should be gone after Remove")
	}
	if got, want := d.PageCount(0), 2; got != want {
		t.Errorf("PageCount(0) = %d, want %d", got, want)
	}
	if f, ok := d.Translate(0, 2); !ok || f != 12 {
		t.Errorf("Translate(0,2) = (%d,%v), want (12,true)", f, ok)
	}

	d.Remove(0, 0)
	d.Remove(0, 2)
	if got, want := d.SegCount(), 0; got != want {
		t.Errorf("SegCount() = %d, want %d after emptying the only segment", got, want)
	}
}

func TestRemoveAbsentMappingIsNoOp(t *testing.T) {
	d := New()
	d.Insert(0, 0, 1, 32, 32)
	d.Remove(5, 5)
	if got, want := d.SegCount(), 1; got != want {
		t.Errorf("SegCount() = %d, want %d", got, want)
	}
}

func TestInsertRejectsPageTableOverflow(t *testing.T) {
	d := New()
	if ok := d.Insert(0, 0, 10, 32, 1); !ok {
		t.Fatal("first insert into segment 0 should succeed")
	}
	if ok := d.Insert(0, 1, 11, 32, 1); ok {
		t.Fatal("insert exceeding max_page_entries should be rejected")
	}
	if got, want := d.PageCount(0), 1; got != want {
		t.Errorf("PageCount(0) = %d, want %d (rejected insert must not mutate)", got, want)
	}
}

func TestInsertRejectsSegmentTableOverflow(t *testing.T) {
	d := New()
	if ok := d.Insert(0, 0, 10, 1, 32); !ok {
		t.Fatal("first segment should succeed")
	}
	if ok := d.Insert(1, 0, 11, 1, 32); ok {
		t.Fatal("insert of a new segment past max_seg_entries should be rejected")
	}
	if got, want := d.SegCount(), 1; got != want {
		t.Errorf("SegCount() = %d, want %d (rejected insert must not mutate)", got, want)
	}
}

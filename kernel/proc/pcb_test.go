package proc

import "testing"

func TestNew(t *testing.T) {
	p := New(42, 3, 1024)
	if p.Pid != 42 {
		t.Errorf("Pid = %d, want 42", p.Pid)
	}
	if p.Priority != 3 {
		t.Errorf("Priority = %d, want 3", p.Priority)
	}
	if p.BP != 1024 {
		t.Errorf("BP = %d, want 1024", p.BP)
	}
	if p.Dir == nil {
		t.Error("Dir should not be nil")
	}
	if p.Dir.SegCount() != 0 {
		t.Errorf("fresh PCB should have an empty page directory, got SegCount=%d", p.Dir.SegCount())
	}
}

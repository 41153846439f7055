package config

import "testing"

func TestSetPageSizeClamps(t *testing.T) {
	s := NewStore("", DefaultConfig())
	s.SetPageSize(50)
	if got := s.Snapshot().Layout.PageSize; got != 10 {
		t.Fatalf("PageSize = %d, want clamped to 10", got)
	}
	s.SetPageSize(-3)
	if got := s.Snapshot().Layout.PageSize; got != 1 {
		t.Fatalf("PageSize = %d, want clamped to 1", got)
	}
}

func TestSetPageSizeFiresGenericAndGroupListeners(t *testing.T) {
	s := NewStore("", DefaultConfig())

	var genericFired, groupFired bool
	s.OnChange(func(e ChangeEvent) { genericFired = true })
	s.OnGroupChange(GroupLayout, func(e ChangeEvent) { groupFired = true })
	s.OnGroupChange(GroupTheme, func(e ChangeEvent) { t.Fatal("theme listener should not fire for a layout change") })

	s.SetPageSize(6)

	if !genericFired || !groupFired {
		t.Fatalf("genericFired=%v groupFired=%v", genericFired, groupFired)
	}
}

func TestSetClipboardRetentionClampsBothFields(t *testing.T) {
	s := NewStore("", DefaultConfig())
	s.SetClipboardRetention(-1, 999999)
	snap := s.Snapshot()
	if snap.Clipboard.MaxAgeDays != 0 {
		t.Fatalf("MaxAgeDays = %d, want 0", snap.Clipboard.MaxAgeDays)
	}
	if snap.Clipboard.MaxCount != 100000 {
		t.Fatalf("MaxCount = %d, want clamped to 100000", snap.Clipboard.MaxCount)
	}
}

package debugger

import "testing"

func TestBreakpointManager_AddBreakpoint(t *testing.T) {
	bm := NewBreakpointManager()

	bp := bm.AddBreakpoint(1000, false, "")

	if bp == nil {
		t.Fatal("AddBreakpoint returned nil")
	}
	if bp.ID != 1 {
		t.Errorf("Expected ID 1, got %d", bp.ID)
	}
	if bp.Address != 1000 {
		t.Errorf("Expected address 1000, got %d", bp.Address)
	}
	if !bp.Enabled {
		t.Error("Breakpoint should be enabled by default")
	}
	if bp.Temporary {
		t.Error("Breakpoint should not be temporary")
	}
	if bp.HitCount != 0 {
		t.Errorf("Initial hit count should be 0, got %d", bp.HitCount)
	}
}

func TestBreakpointManager_AddMultiple(t *testing.T) {
	bm := NewBreakpointManager()

	bp1 := bm.AddBreakpoint(1000, false, "")
	bp2 := bm.AddBreakpoint(2000, false, "")

	if bp1.ID == bp2.ID {
		t.Error("Breakpoint IDs should be unique")
	}
	if bm.Count() != 2 {
		t.Errorf("Expected 2 breakpoints, got %d", bm.Count())
	}
}

func TestBreakpointManager_AddDuplicate(t *testing.T) {
	bm := NewBreakpointManager()

	bp1 := bm.AddBreakpoint(1000, false, "")
	bp2 := bm.AddBreakpoint(1000, false, "rA == 5")

	if bp1.ID != bp2.ID {
		t.Error("Duplicate address should update existing breakpoint")
	}
	if bp2.Condition != "rA == 5" {
		t.Error("Condition not updated")
	}
}

func TestBreakpointManager_DeleteBreakpoint(t *testing.T) {
	bm := NewBreakpointManager()

	bp := bm.AddBreakpoint(1000, false, "")

	if err := bm.DeleteBreakpoint(bp.ID); err != nil {
		t.Fatalf("DeleteBreakpoint failed: %v", err)
	}
	if bm.GetBreakpoint(1000) != nil {
		t.Error("Breakpoint not deleted")
	}
	if err := bm.DeleteBreakpoint(999); err == nil {
		t.Error("Expected error when deleting non-existent breakpoint")
	}
}

func TestBreakpointManager_EnableDisable(t *testing.T) {
	bm := NewBreakpointManager()

	bp := bm.AddBreakpoint(1000, false, "")

	if err := bm.DisableBreakpoint(bp.ID); err != nil {
		t.Fatalf("DisableBreakpoint failed: %v", err)
	}
	if bp.Enabled {
		t.Error("Breakpoint not disabled")
	}

	if err := bm.EnableBreakpoint(bp.ID); err != nil {
		t.Fatalf("EnableBreakpoint failed: %v", err)
	}
	if !bp.Enabled {
		t.Error("Breakpoint not enabled")
	}
}

func TestBreakpointManager_GetBreakpoint(t *testing.T) {
	bm := NewBreakpointManager()

	bm.AddBreakpoint(1000, false, "")
	bm.AddBreakpoint(2000, false, "")

	bp := bm.GetBreakpoint(1000)
	if bp == nil {
		t.Fatal("GetBreakpoint returned nil")
	}
	if bp.Address != 1000 {
		t.Errorf("Wrong breakpoint returned: got %d, want 1000", bp.Address)
	}

	if bm.GetBreakpoint(3000) != nil {
		t.Error("GetBreakpoint should return nil for non-existent address")
	}
}

func TestBreakpointManager_GetBreakpointByID(t *testing.T) {
	bm := NewBreakpointManager()

	bp1 := bm.AddBreakpoint(1000, false, "")
	bp2 := bm.AddBreakpoint(2000, false, "")

	if found := bm.GetBreakpointByID(bp1.ID); found != bp1 {
		t.Error("GetBreakpointByID returned wrong breakpoint")
	}
	if found := bm.GetBreakpointByID(bp2.ID); found != bp2 {
		t.Error("GetBreakpointByID returned wrong breakpoint")
	}
	if found := bm.GetBreakpointByID(999); found != nil {
		t.Error("GetBreakpointByID should return nil for non-existent ID")
	}
}

func TestBreakpointManager_GetAllBreakpoints(t *testing.T) {
	bm := NewBreakpointManager()

	bm.AddBreakpoint(1000, false, "")
	bm.AddBreakpoint(2000, false, "")
	bm.AddBreakpoint(3000, false, "")

	if all := bm.GetAllBreakpoints(); len(all) != 3 {
		t.Errorf("Expected 3 breakpoints, got %d", len(all))
	}
}

func TestBreakpointManager_Clear(t *testing.T) {
	bm := NewBreakpointManager()

	bm.AddBreakpoint(1000, false, "")
	bm.AddBreakpoint(2000, false, "")

	bm.Clear()

	if bm.Count() != 0 {
		t.Errorf("Expected 0 breakpoints after clear, got %d", bm.Count())
	}
}

func TestBreakpointManager_HasBreakpoint(t *testing.T) {
	bm := NewBreakpointManager()

	bm.AddBreakpoint(1000, false, "")

	if !bm.HasBreakpoint(1000) {
		t.Error("HasBreakpoint returned false for existing breakpoint")
	}
	if bm.HasBreakpoint(2000) {
		t.Error("HasBreakpoint returned true for non-existent breakpoint")
	}
}

func TestBreakpoint_Temporary(t *testing.T) {
	bm := NewBreakpointManager()

	bp := bm.AddBreakpoint(1000, true, "")

	if !bp.Temporary {
		t.Error("Breakpoint should be temporary")
	}
}

func TestBreakpoint_Condition(t *testing.T) {
	bm := NewBreakpointManager()

	condition := "rA == 42"
	bp := bm.AddBreakpoint(1000, false, condition)

	if bp.Condition != condition {
		t.Errorf("Condition = %s, want %s", bp.Condition, condition)
	}
}

func TestBreakpoint_HitCount(t *testing.T) {
	bm := NewBreakpointManager()

	bp := bm.AddBreakpoint(1000, false, "")

	if bp.HitCount != 0 {
		t.Errorf("Initial hit count = %d, want 0", bp.HitCount)
	}

	bp.HitCount++
	bp.HitCount++

	if bp.HitCount != 2 {
		t.Errorf("Hit count = %d, want 2", bp.HitCount)
	}
}

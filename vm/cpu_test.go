package vm

import "testing"

func TestCPU_NewCPUInitialState(t *testing.T) {
	c := NewCPU()

	if !c.A.IsZero() || !c.X.IsZero() {
		t.Error("A and X should start at zero")
	}
	if c.Comparison != CompEqual {
		t.Errorf("Comparison = %v, want CompEqual", c.Comparison)
	}
	if c.Overflow {
		t.Error("Overflow should start clear")
	}
	if c.PC != 0 {
		t.Errorf("PC = %d, want 0", c.PC)
	}
}

func TestCPU_IndexValue_OutOfRange(t *testing.T) {
	c := NewCPU()

	if got := c.IndexValue(0); got != 0 {
		t.Errorf("IndexValue(0) = %d, want 0", got)
	}
	if got := c.IndexValue(7); got != 0 {
		t.Errorf("IndexValue(7) = %d, want 0", got)
	}
}

func TestCPU_SetIndexAndIndexValue(t *testing.T) {
	c := NewCPU()

	if err := c.SetIndex(3, -17); err != nil {
		t.Fatalf("SetIndex error = %v", err)
	}
	if got := c.IndexValue(3); got != -17 {
		t.Errorf("IndexValue(3) = %d, want -17", got)
	}
	// Other index registers must be untouched.
	if got := c.IndexValue(2); got != 0 {
		t.Errorf("IndexValue(2) = %d, want 0", got)
	}
}

func TestCPU_SetIndexChecked_RejectsOutOfRange(t *testing.T) {
	c := NewCPU()

	if err := c.SetIndexChecked(1, 4096); err == nil {
		t.Error("expected error setting index register beyond 4095")
	}
	if err := c.SetIndexChecked(1, -4096); err == nil {
		t.Error("expected error setting index register beyond -4095")
	}
	if err := c.SetIndexChecked(1, 4095); err != nil {
		t.Errorf("SetIndexChecked(1, 4095) unexpected error: %v", err)
	}
}

func TestCPU_JValueIsAlwaysUnsigned(t *testing.T) {
	c := NewCPU()

	if err := c.SetJ(4095); err != nil {
		t.Fatalf("SetJ error = %v", err)
	}
	if got := c.JValue(); got != 4095 {
		t.Errorf("JValue() = %d, want 4095", got)
	}
	if c.J.Sign != Positive {
		t.Errorf("J.Sign = %v, want Positive (rJ has no sign bit)", c.J.Sign)
	}
}

func TestCPU_Reset(t *testing.T) {
	c := NewCPU()
	a, _ := FromInt(100)
	c.A = a
	c.PC = 50
	c.Overflow = true
	c.Comparison = CompGreater
	_ = c.SetIndex(1, 5)

	c.Reset()

	if !c.A.IsZero() {
		t.Error("A not cleared by Reset")
	}
	if c.PC != 0 {
		t.Errorf("PC = %d, want 0", c.PC)
	}
	if c.Overflow {
		t.Error("Overflow not cleared by Reset")
	}
	if c.Comparison != CompEqual {
		t.Errorf("Comparison = %v, want CompEqual", c.Comparison)
	}
	if c.IndexValue(1) != 0 {
		t.Error("index register not cleared by Reset")
	}
}

func TestCPU_Summary_NonEmpty(t *testing.T) {
	c := NewCPU()
	if c.Summary() == "" {
		t.Error("Summary() returned empty string")
	}
}

package vm

import "testing"

func setupArithMachine(t *testing.T, aVal, memVal int64, c, f int) *Machine {
	t.Helper()
	m := NewMachine()
	a, err := FromInt(aVal)
	if err != nil {
		t.Fatalf("FromInt(%d) error = %v", aVal, err)
	}
	m.CPU.A = a
	mem, err := FromInt(memVal)
	if err != nil {
		t.Fatalf("FromInt(%d) error = %v", memVal, err)
	}
	if err := m.Memory.Write(2000, mem); err != nil {
		t.Fatalf("Write error = %v", err)
	}
	inst := Instruction{Sign: Positive, AA: 2000, I: 0, F: f, C: c}
	if err := m.execArithmetic(inst); err != nil {
		t.Fatalf("execArithmetic error = %v", err)
	}
	return m
}

func TestArithmetic_Add(t *testing.T) {
	m := setupArithMachine(t, 1000, 234, 1, 5)
	if got := m.CPU.A.ToInt(); got != 1234 {
		t.Errorf("rA after ADD = %d, want 1234", got)
	}
}

func TestArithmetic_AddNegativeOperand(t *testing.T) {
	m := setupArithMachine(t, 1000, -234, 1, 5)
	if got := m.CPU.A.ToInt(); got != 766 {
		t.Errorf("rA after ADD with negative operand = %d, want 766", got)
	}
}

func TestArithmetic_Sub(t *testing.T) {
	m := setupArithMachine(t, 1000, 234, 2, 5)
	if got := m.CPU.A.ToInt(); got != 766 {
		t.Errorf("rA after SUB = %d, want 766", got)
	}
}

func TestArithmetic_AddOverflowSetsToggle(t *testing.T) {
	m := setupArithMachine(t, MaxMagnitude, 1, 1, 5)
	if !m.CPU.Overflow {
		t.Error("expected overflow toggle set after ADD exceeds MaxMagnitude")
	}
}

func TestArithmetic_AddFieldSlice(t *testing.T) {
	// (4:5) selects just the rightmost byte pair of the memory operand.
	m := NewMachine()
	a, _ := FromInt(0)
	m.CPU.A = a
	mem := MustNewWord(Positive, [5]int{9, 9, 0, 0, 5}) // full value huge, but (4:5) = 5
	_ = m.Memory.Write(2000, mem)

	inst := Instruction{Sign: Positive, AA: 2000, I: 0, F: EncodeField(4, 5), C: 1}
	if err := m.execArithmetic(inst); err != nil {
		t.Fatalf("execArithmetic error = %v", err)
	}
	if got := m.CPU.A.ToInt(); got != 5 {
		t.Errorf("rA after field-sliced ADD = %d, want 5", got)
	}
}

func TestArithmetic_MulSignRules(t *testing.T) {
	tests := []struct {
		name     string
		a, mem   int64
		wantSign Sign
	}{
		{"positive times positive", 6, 7, Positive},
		{"positive times negative", 6, -7, Negative},
		{"negative times negative", -6, -7, Positive},
		{"zero product stays positive", 0, -7, Positive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := setupArithMachine(t, tt.a, tt.mem, 3, 5)
			if m.CPU.A.Sign != tt.wantSign {
				t.Errorf("rA.Sign = %v, want %v", m.CPU.A.Sign, tt.wantSign)
			}
			if m.CPU.X.Sign != tt.wantSign {
				t.Errorf("rX.Sign = %v, want %v", m.CPU.X.Sign, tt.wantSign)
			}
		})
	}
}

func TestArithmetic_MulMagnitude(t *testing.T) {
	m := setupArithMachine(t, 1000, 1000, 3, 5)
	// Product 1,000,000 fits entirely in rX, rA should be zero.
	if got := m.CPU.X.ToInt(); got != 1_000_000 {
		t.Errorf("rX = %d, want 1000000", got)
	}
	if got := m.CPU.A.ToInt(); got != 0 {
		t.Errorf("rA = %d, want 0", got)
	}
}

func TestArithmetic_MulSplitsAcrossAAndX(t *testing.T) {
	m := setupArithMachine(t, MaxMagnitude, 2, 3, 5)
	prod := int64(MaxMagnitude) * 2
	wantHigh := prod / (MaxMagnitude + 1)
	wantLow := prod % (MaxMagnitude + 1)
	if got := m.CPU.A.Magnitude(); got != wantHigh {
		t.Errorf("rA magnitude = %d, want %d", got, wantHigh)
	}
	if got := m.CPU.X.Magnitude(); got != wantLow {
		t.Errorf("rX magnitude = %d, want %d", got, wantLow)
	}
}

func TestArithmetic_DivByZeroSetsOverflow(t *testing.T) {
	m := setupArithMachine(t, 100, 0, 4, 5)
	if !m.CPU.Overflow {
		t.Error("expected overflow toggle set on division by zero")
	}
}

func TestArithmetic_DivQuotientAndRemainder(t *testing.T) {
	m := NewMachine()
	x, _ := FromInt(17) // rA:rX = 0:17 (rA high, rX low) -- dividend = 17
	m.CPU.A = ZeroWord
	m.CPU.X = x
	mem, _ := FromInt(5)
	_ = m.Memory.Write(2000, mem)

	inst := Instruction{Sign: Positive, AA: 2000, I: 0, F: 5, C: 4}
	if err := m.execArithmetic(inst); err != nil {
		t.Fatalf("execArithmetic error = %v", err)
	}
	if got := m.CPU.A.ToInt(); got != 3 {
		t.Errorf("quotient rA = %d, want 3", got)
	}
	if got := m.CPU.X.ToInt(); got != 2 {
		t.Errorf("remainder rX = %d, want 2", got)
	}
}

func TestArithmetic_DivQuotientOverflow(t *testing.T) {
	m := NewMachine()
	// rA = MaxMagnitude, rX = 0, divisor = 1: quotient = MaxMagnitude*(MaxMagnitude+1), way over range.
	m.CPU.A = MustNewWord(Positive, [5]int{63, 63, 63, 63, 63})
	m.CPU.X = ZeroWord
	mem, _ := FromInt(1)
	_ = m.Memory.Write(2000, mem)

	inst := Instruction{Sign: Positive, AA: 2000, I: 0, F: 5, C: 4}
	if err := m.execArithmetic(inst); err != nil {
		t.Fatalf("execArithmetic error = %v", err)
	}
	if !m.CPU.Overflow {
		t.Error("expected overflow toggle set on quotient overflow")
	}
}

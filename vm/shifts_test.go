package vm

import "testing"

func execShiftHelper(t *testing.T, m *Machine, count, field int) {
	t.Helper()
	inst := Instruction{Sign: Positive, AA: count, I: 0, F: field, C: 6}
	if count < 0 {
		inst.Sign = Negative
		inst.AA = -count
	}
	if err := m.execShift(inst); err != nil {
		t.Fatalf("execShift error = %v", err)
	}
}

func TestShift_SLA(t *testing.T) {
	m := NewMachine()
	m.CPU.A = MustNewWord(Positive, [5]int{1, 2, 3, 4, 5})

	execShiftHelper(t, m, 2, 0) // SLA 2
	if m.CPU.A.Bytes != [5]int{3, 4, 5, 0, 0} {
		t.Errorf("rA.Bytes after SLA 2 = %v, want {3 4 5 0 0}", m.CPU.A.Bytes)
	}
}

func TestShift_SRA(t *testing.T) {
	m := NewMachine()
	m.CPU.A = MustNewWord(Positive, [5]int{1, 2, 3, 4, 5})

	execShiftHelper(t, m, 2, 1) // SRA 2
	if m.CPU.A.Bytes != [5]int{0, 0, 1, 2, 3} {
		t.Errorf("rA.Bytes after SRA 2 = %v, want {0 0 1 2 3}", m.CPU.A.Bytes)
	}
}

func TestShift_SLAXCrossesRegisters(t *testing.T) {
	m := NewMachine()
	m.CPU.A = MustNewWord(Positive, [5]int{1, 2, 3, 4, 5})
	m.CPU.X = MustNewWord(Positive, [5]int{6, 7, 8, 9, 10})

	execShiftHelper(t, m, 3, 2) // SLAX 3
	if m.CPU.A.Bytes != [5]int{4, 5, 6, 7, 8} {
		t.Errorf("rA.Bytes after SLAX 3 = %v, want {4 5 6 7 8}", m.CPU.A.Bytes)
	}
	if m.CPU.X.Bytes != [5]int{9, 10, 0, 0, 0} {
		t.Errorf("rX.Bytes after SLAX 3 = %v, want {9 10 0 0 0}", m.CPU.X.Bytes)
	}
}

func TestShift_SLCRotatesWithoutLoss(t *testing.T) {
	m := NewMachine()
	m.CPU.A = MustNewWord(Positive, [5]int{1, 2, 3, 4, 5})
	m.CPU.X = MustNewWord(Positive, [5]int{6, 7, 8, 9, 10})

	execShiftHelper(t, m, 3, 4) // SLC 3
	if m.CPU.A.Bytes != [5]int{4, 5, 6, 7, 8} {
		t.Errorf("rA.Bytes after SLC 3 = %v, want {4 5 6 7 8}", m.CPU.A.Bytes)
	}
	if m.CPU.X.Bytes != [5]int{9, 10, 1, 2, 3} {
		t.Errorf("rX.Bytes after SLC 3 = %v, want {9 10 1 2 3}", m.CPU.X.Bytes)
	}
}

func TestShift_SLCThenSRCRoundTrips(t *testing.T) {
	m := NewMachine()
	a := MustNewWord(Positive, [5]int{1, 2, 3, 4, 5})
	x := MustNewWord(Positive, [5]int{6, 7, 8, 9, 10})
	m.CPU.A = a
	m.CPU.X = x

	execShiftHelper(t, m, 4, 4) // SLC 4
	execShiftHelper(t, m, 4, 5) // SRC 4

	if m.CPU.A.Bytes != a.Bytes {
		t.Errorf("rA.Bytes after SLC 4/SRC 4 = %v, want %v", m.CPU.A.Bytes, a.Bytes)
	}
	if m.CPU.X.Bytes != x.Bytes {
		t.Errorf("rX.Bytes after SLC 4/SRC 4 = %v, want %v", m.CPU.X.Bytes, x.Bytes)
	}
}

func TestShift_NeverSetsOverflow(t *testing.T) {
	m := NewMachine()
	m.CPU.A = MustNewWord(Positive, [5]int{63, 63, 63, 63, 63})

	execShiftHelper(t, m, 4, 0) // SLA 4: shifts four of the five bytes out
	if m.CPU.Overflow {
		t.Error("shift opcodes must never set the overflow toggle")
	}
	if m.CPU.A.Bytes != [5]int{63, 0, 0, 0, 0} {
		t.Errorf("rA after SLA 4 = %v, want {63 0 0 0 0}", m.CPU.A.Bytes)
	}
}

func TestShift_PreservesSign(t *testing.T) {
	m := NewMachine()
	m.CPU.A = MustNewWord(Negative, [5]int{1, 2, 3, 4, 5})

	execShiftHelper(t, m, 1, 0) // SLA 1
	if m.CPU.A.Sign != Negative {
		t.Error("SLA must not affect the sign of rA")
	}
}

package vm

// execNumCharHlt implements opcode 5: NUM (F=0), CHAR (F=1), HLT (F=2).
func (m *Machine) execNumCharHlt(inst Instruction) error {
	switch inst.F {
	case 0:
		m.execNum()
		return nil
	case 1:
		m.execChar()
		return nil
	case 2:
		m.State = StateHalted
		return nil
	default:
		return &UnknownOpcodeError{Opcode: inst.C, Field: inst.F, PC: m.CPU.PC - 1}
	}
}

// execNum interprets the 10 bytes of rA||rX as decimal digits (byte mod 10
// each) and composes them into rA with rA's original sign; rX is unchanged.
func (m *Machine) execNum() {
	var magnitude int64
	for _, b := range m.CPU.A.Bytes {
		magnitude = magnitude*10 + int64(b%10)
	}
	for _, b := range m.CPU.X.Bytes {
		magnitude = magnitude*10 + int64(b%10)
	}

	sign := m.CPU.A.Sign
	if magnitude > MaxMagnitude {
		m.CPU.Overflow = true
		magnitude %= MaxMagnitude + 1
	}
	m.CPU.A = wordFromMagnitude(sign, magnitude)
}

// execChar renders |rA| as exactly 10 decimal digits (character codes
// 30..39), filling rA (high 5) and rX (low 5); both take rA's sign.
func (m *Machine) execChar() {
	mag := m.CPU.A.Magnitude()
	var digits [10]int
	for i := 9; i >= 0; i-- {
		digits[i] = int(mag % 10)
		mag /= 10
	}

	sign := m.CPU.A.Sign
	var aBytes, xBytes [5]int
	for i := 0; i < 5; i++ {
		aBytes[i] = 30 + digits[i]
		xBytes[i] = 30 + digits[i+5]
	}
	m.CPU.A = Word{Sign: sign, Bytes: aBytes}
	m.CPU.X = Word{Sign: sign, Bytes: xBytes}
}

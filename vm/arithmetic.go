package vm

// wordFromMagnitude builds a Word directly from a sign and an in-range
// magnitude, bypassing FromInt's overflow check. Callers are responsible
// for having already reduced mag to 0..MaxMagnitude.
func wordFromMagnitude(sign Sign, mag int64) Word {
	var bytes [5]int
	for i := 4; i >= 0; i-- {
		bytes[i] = int(mag % ByteModulus)
		mag /= ByteModulus
	}
	return Word{Sign: sign, Bytes: bytes}
}

// storeAccumulator stores a (possibly out-of-range) signed sum into rA,
// setting the overflow toggle and reducing modulo MaxMagnitude+1 if needed.
func (c *CPU) storeAccumulator(sum int64) {
	sign := Positive
	mag := sum
	if sum < 0 {
		sign = Negative
		mag = -sum
	}
	if mag > MaxMagnitude {
		c.Overflow = true
		mag %= MaxMagnitude + 1
	}
	c.A = wordFromMagnitude(sign, mag)
}

// execArithmetic implements opcodes 1-4: ADD, SUB, MUL, DIV.
func (m *Machine) execArithmetic(inst Instruction) error {
	addr, err := m.effectiveAddress(inst)
	if err != nil {
		return err
	}
	mem, err := m.Memory.Read(addr)
	if err != nil {
		return err
	}
	fs := DecodeField(inst.F)
	operand, err := mem.Slice(fs.L, fs.R)
	if err != nil {
		return err
	}

	switch inst.C {
	case 1: // ADD
		m.CPU.storeAccumulator(m.CPU.A.ToInt() + operand.ToInt())
	case 2: // SUB
		m.CPU.storeAccumulator(m.CPU.A.ToInt() - operand.ToInt())
	case 3: // MUL
		m.execMul(operand)
	case 4: // DIV
		m.execDiv(operand)
	}
	return nil
}

// execMul implements MUL: rA||rX (rA high) receives the full 10-byte
// product of rA and the sliced memory operand.
func (m *Machine) execMul(operand Word) {
	a := m.CPU.A.Magnitude()
	v := operand.Magnitude()
	prod := a * v

	sign := Positive
	if (m.CPU.A.Sign != operand.Sign) && prod != 0 {
		sign = Negative
	}

	high := prod / (MaxMagnitude + 1)
	low := prod % (MaxMagnitude + 1)

	m.CPU.A = wordFromMagnitude(sign, high)
	m.CPU.X = wordFromMagnitude(sign, low)
}

// execDiv implements DIV: the 10-byte dividend sign(rA)*(|rA|*(MAX+1)+|rX|)
// divided by the sliced memory operand. Division by zero or a quotient
// exceeding MaxMagnitude sets overflow and leaves rA/rX unchanged.
func (m *Machine) execDiv(operand Word) {
	v := operand.ToInt()
	if v == 0 {
		m.CPU.Overflow = true
		return
	}

	dividendSign := m.CPU.A.Sign
	dividendMag := m.CPU.A.Magnitude()*(MaxMagnitude+1) + m.CPU.X.Magnitude()

	absV := v
	if absV < 0 {
		absV = -absV
	}

	quotientMag := dividendMag / absV
	remainderMag := dividendMag % absV

	if quotientMag > MaxMagnitude {
		m.CPU.Overflow = true
		return
	}

	quotientSign := Positive
	if (dividendSign != operand.Sign) && quotientMag != 0 {
		quotientSign = Negative
	}

	m.CPU.A = wordFromMagnitude(quotientSign, quotientMag)
	m.CPU.X = wordFromMagnitude(dividendSign, remainderMag)
}

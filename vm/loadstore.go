package vm

// regValue returns the current Word held by register slot: 0=A, 1..6=I1..I6, 7=X.
func (m *Machine) regValue(slot int) Word {
	switch {
	case slot == 0:
		return m.CPU.A
	case slot >= 1 && slot <= 6:
		return m.CPU.I[slot]
	case slot == 7:
		return m.CPU.X
	}
	return ZeroWord
}

// setRegValue overwrites register slot with w (see regValue for slot numbering).
func (m *Machine) setRegValue(slot int, w Word) {
	switch {
	case slot == 0:
		m.CPU.A = w
	case slot >= 1 && slot <= 6:
		m.CPU.I[slot] = w
	case slot == 7:
		m.CPU.X = w
	}
}

func flipSign(s Sign) Sign {
	if s == Positive {
		return Negative
	}
	return Positive
}

// execLoad implements opcodes 8-23: LDA, LD1..LD6, LDX (8-15) and their
// sign-negating variants LDAN, LD1N..LD6N, LDXN (16-23).
func (m *Machine) execLoad(inst Instruction) error {
	addr, err := m.effectiveAddress(inst)
	if err != nil {
		return err
	}
	mem, err := m.Memory.Read(addr)
	if err != nil {
		return err
	}
	fs := DecodeField(inst.F)
	sliced, err := mem.Slice(fs.L, fs.R)
	if err != nil {
		return err
	}

	offset := inst.C - 8
	negative := offset >= 8
	slot := offset % 8
	if negative {
		sliced.Sign = flipSign(sliced.Sign)
	}
	m.setRegValue(slot, sliced)
	return nil
}

// execStore implements opcodes 24-33: STA, ST1..ST6, STX, STJ, STZ.
func (m *Machine) execStore(inst Instruction) error {
	addr, err := m.effectiveAddress(inst)
	if err != nil {
		return err
	}
	mem, err := m.Memory.Read(addr)
	if err != nil {
		return err
	}
	fs := DecodeField(inst.F)

	var src Word
	switch inst.C {
	case 33: // STZ
		src = ZeroWord
	case 32: // STJ
		src = m.CPU.J
	default:
		slot := inst.C - 24
		src = m.regValue(slot)
	}

	if err := mem.StoreSlice(fs.L, fs.R, src); err != nil {
		return err
	}
	return m.Memory.Write(addr, mem)
}

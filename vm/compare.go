package vm

// execCompare implements opcodes 56-63: CMPA, CMP1..CMP6, CMPX. Both the
// register and the memory operand are sliced by the same field before their
// signed values are compared.
func (m *Machine) execCompare(inst Instruction) error {
	slot := inst.C - 56

	addr, err := m.effectiveAddress(inst)
	if err != nil {
		return err
	}
	mem, err := m.Memory.Read(addr)
	if err != nil {
		return err
	}

	fs := DecodeField(inst.F)
	regSliced, err := m.regValue(slot).Slice(fs.L, fs.R)
	if err != nil {
		return err
	}
	memSliced, err := mem.Slice(fs.L, fs.R)
	if err != nil {
		return err
	}

	left, right := regSliced.ToInt(), memSliced.ToInt()
	switch {
	case left < right:
		m.CPU.Comparison = CompLess
	case left > right:
		m.CPU.Comparison = CompGreater
	default:
		m.CPU.Comparison = CompEqual
	}
	return nil
}

package vm

// execIO implements opcodes 34-38: JBUS, IOC, IN, OUT, JRED. Devices are
// modeled as always ready and never busy, so JBUS never jumps, OUT/IN/IOC
// are accepted as no-op stubs, and JRED always jumps.
func (m *Machine) execIO(inst Instruction) error {
	switch inst.C {
	case 34: // JBUS
		return nil
	case 35: // IOC
		return nil
	case 36: // IN
		return nil
	case 37: // OUT
		return nil
	case 38: // JRED
		nextPC := m.CPU.PC
		target := int(m.effectiveAddressSigned(inst))
		if err := m.CPU.SetJ(int64(nextPC)); err != nil {
			return err
		}
		m.CPU.PC = target
		return nil
	}
	return &UnknownOpcodeError{Opcode: inst.C, Field: inst.F, PC: m.CPU.PC - 1}
}

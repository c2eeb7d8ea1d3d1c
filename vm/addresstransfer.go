package vm

// registerCapacity returns the largest magnitude slot can hold: a full
// word for rA/rX (slots 0 and 7), or an index register's 2-byte range.
func registerCapacity(slot int) int64 {
	if slot == 0 || slot == 7 {
		return MaxMagnitude
	}
	return 4095
}

// storeRegisterValue writes value into register slot, setting the overflow
// toggle and reducing modulo capacity+1 when the magnitude exceeds capacity.
func (m *Machine) storeRegisterValue(slot int, value int64) {
	sign := Positive
	if value < 0 {
		sign = Negative
		value = -value
	}
	if value == 0 {
		sign = Positive
	}

	capacity := registerCapacity(slot)
	if value > capacity {
		m.CPU.Overflow = true
		value %= capacity + 1
	}
	m.setRegValue(slot, wordFromMagnitude(sign, value))
}

// execAddressTransfer implements opcodes 48-55: ENTA/ENNA/INCA/DECA,
// ENT1..ENT6/ENN1..ENN6/INC1..INC6/DEC1..DEC6, ENTX/ENNX/INCX/DECX.
func (m *Machine) execAddressTransfer(inst Instruction) error {
	slot := inst.C - 48
	addr := m.effectiveAddressSigned(inst)

	switch inst.F {
	case 0: // ENTi
		m.storeRegisterValue(slot, addr)
	case 1: // ENNi
		m.storeRegisterValue(slot, -addr)
	case 2: // INCi
		current := m.regValue(slot).ToInt()
		m.storeRegisterValue(slot, current+addr)
	case 3: // DECi
		current := m.regValue(slot).ToInt()
		m.storeRegisterValue(slot, current-addr)
	default:
		return &UnknownOpcodeError{Opcode: inst.C, Field: inst.F, PC: m.CPU.PC - 1}
	}
	return nil
}

package vm

// execMove implements opcode 7 (MOVE): copy F consecutive words starting
// at the effective address M into memory starting at the address held in
// rI1, word by word in ascending order (so overlapping ranges with the
// destination above the source propagate newly written values). rI1 is
// incremented by F afterward.
func (m *Machine) execMove(inst Instruction) error {
	srcStart, err := m.effectiveAddress(inst)
	if err != nil {
		return err
	}
	count := inst.F
	dest := int(m.CPU.IndexValue(I1))

	for i := 0; i < count; i++ {
		w, err := m.Memory.Read(srcStart + i)
		if err != nil {
			return err
		}
		if err := m.Memory.Write(dest+i, w); err != nil {
			return err
		}
	}

	return m.CPU.SetIndex(I1, int64(dest+count))
}

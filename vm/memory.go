package vm

// Memory is the MIX machine's flat address space of MemorySize Words,
// addressable 0..MemorySize-1.
type Memory struct {
	cells [MemorySize]Word

	AccessCount uint64
	ReadCount   uint64
	WriteCount  uint64
}

// NewMemory returns a Memory with every cell at +0.
func NewMemory() *Memory {
	m := &Memory{}
	for i := range m.cells {
		m.cells[i] = ZeroWord
	}
	return m
}

// Reset zeroes every cell and resets the access counters.
func (m *Memory) Reset() {
	for i := range m.cells {
		m.cells[i] = ZeroWord
	}
	m.AccessCount, m.ReadCount, m.WriteCount = 0, 0, 0
}

func (m *Memory) checkRange(address int) error {
	if address < 0 || address >= MemorySize {
		return &AddressError{Address: address}
	}
	return nil
}

// Read returns the Word at address, or AddressError if out of range.
func (m *Memory) Read(address int) (Word, error) {
	if err := m.checkRange(address); err != nil {
		return Word{}, err
	}
	m.AccessCount++
	m.ReadCount++
	return m.cells[address], nil
}

// Write stores w at address, or returns AddressError if out of range.
func (m *Memory) Write(address int, w Word) error {
	if err := m.checkRange(address); err != nil {
		return err
	}
	m.AccessCount++
	m.WriteCount++
	m.cells[address] = w
	return nil
}

// ReadUnsafe returns the Word at address with no bounds check and without
// touching the access counters; an out-of-range address panics.
func (m *Memory) ReadUnsafe(address int) Word {
	return m.cells[address]
}

// WriteUnsafe stores w at address with no bounds check and without
// touching the access counters; an out-of-range address panics.
func (m *Memory) WriteUnsafe(address int, w Word) {
	m.cells[address] = w
}

// Snapshot returns a copy of the full memory image in address order.
func (m *Memory) Snapshot() [MemorySize]Word {
	return m.cells
}

// LoadImage replaces the entire memory image.
func (m *Memory) LoadImage(img [MemorySize]Word) {
	m.cells = img
}

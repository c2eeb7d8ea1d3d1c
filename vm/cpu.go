package vm

import "fmt"

// CPU holds all MIX register state: the full-word accumulator and
// extension, six two-byte index registers, the unsigned jump register, the
// overflow toggle, and the comparison indicator.
type CPU struct {
	A  Word
	X  Word
	I  [7]Word // I[1..6] significant; I[0] unused
	J  Word     // two low bytes significant, unsigned (0..4095)
	PC int      // next instruction location, 0..MemorySize-1

	Overflow   bool
	Comparison ComparisonIndicator
}

// NewCPU returns a CPU with every register at +0, overflow clear, and the
// comparison indicator at EQUAL -- the machine's initial state.
func NewCPU() *CPU {
	return &CPU{
		A:          ZeroWord,
		X:          ZeroWord,
		J:          ZeroWord,
		Comparison: CompEqual,
	}
}

// Reset returns the CPU to its initial state.
func (c *CPU) Reset() {
	*c = *NewCPU()
}

// IndexValue returns the signed integer value of index register i (1..6).
func (c *CPU) IndexValue(i int) int64 {
	if i < 1 || i > 6 {
		return 0
	}
	return c.I[i].ToInt()
}

// SetIndex sets index register i (1..6) to a signed value. The hardware
// model permits magnitudes beyond 4095 to arrive via LDi from memory; this
// setter is used internally by load instructions and does not itself
// enforce the 4095 cap -- callers that need the stricter API-level check
// (e.g. assembler-driven ENTi) should use SetIndexChecked.
func (c *CPU) SetIndex(i int, value int64) error {
	w, err := FromInt(value)
	if err != nil {
		return err
	}
	if i < 1 || i > 6 {
		return nil
	}
	c.I[i] = w
	return nil
}

// SetIndexChecked sets index register i (1..6), rejecting magnitudes above
// 4095 as the physical two-byte register cannot represent them.
func (c *CPU) SetIndexChecked(i int, value int64) error {
	if value > 4095 || value < -4095 {
		return &OverflowError{Value: value}
	}
	return c.SetIndex(i, value)
}

// Summary renders a compact one-line view of every register, used by
// ExecutionTrace entries and the debugger's register display.
func (c *CPU) Summary() string {
	return fmt.Sprintf("A=%s%010d X=%s%010d I1=%d I2=%d I3=%d I4=%d I5=%d I6=%d J=%d OV=%v CMP=%s",
		c.A.Sign, c.A.Magnitude(), c.X.Sign, c.X.Magnitude(),
		c.IndexValue(1), c.IndexValue(2), c.IndexValue(3),
		c.IndexValue(4), c.IndexValue(5), c.IndexValue(6),
		c.JValue(), c.Overflow, c.Comparison)
}

// JValue returns rJ's unsigned value (0..4095).
func (c *CPU) JValue() int64 {
	return c.J.Magnitude()
}

// SetJ sets rJ to an unsigned value (0..4095); rJ has no sign bit in the
// hardware, so the Word is always stored as positive.
func (c *CPU) SetJ(value int64) error {
	w, err := FromInt(value)
	if err != nil {
		return err
	}
	w.Sign = Positive
	c.J = w
	return nil
}

package vm

import "fmt"

// Machine is the complete MIX virtual machine: CPU registers, memory, and
// the coarse run/halt state machine.
type Machine struct {
	CPU    *CPU
	Memory *Memory
	State  RunState

	// InstructionLimit bounds Run(); zero means DefaultInstructionLimit.
	InstructionLimit int

	// LastError records the error (if any) that stopped the last Run/Step.
	LastError error

	// Trace and Statistics are optional diagnostics, nil unless enabled by
	// the CLI or a caller.
	Trace      *ExecutionTrace
	Statistics *PerformanceStatistics
}

// NewMachine returns a Machine in its initial state: PC=0, all registers
// zero, overflow off, comparison EQUAL, state RUNNING.
func NewMachine() *Machine {
	return &Machine{
		CPU:    NewCPU(),
		Memory: NewMemory(),
		State:  StateRunning,
	}
}

// Reset restores the machine to its initial state from any prior state.
func (m *Machine) Reset() {
	m.CPU.Reset()
	m.Memory.Reset()
	m.State = StateRunning
	m.LastError = nil
}

// Step executes a single instruction. If the machine is halted, Step is a
// no-op. Fatal errors (AddressError, UnknownOpcodeError) stop the machine
// and are both returned and recorded in LastError.
func (m *Machine) Step() error {
	if m.State == StateHalted {
		return nil
	}

	word, err := m.Memory.Read(m.CPU.PC)
	if err != nil {
		m.LastError = err
		return err
	}
	loc := m.CPU.PC
	m.CPU.PC++

	inst := DecodeInstruction(word)

	if m.Trace != nil {
		m.Trace.BeforeStep(loc, inst, m.CPU)
	}
	if m.Statistics != nil {
		m.Statistics.RecordInstruction(inst.C, inst.F, loc)
	}

	if err := m.dispatch(loc, inst); err != nil {
		m.LastError = err
		return err
	}

	if m.Trace != nil {
		m.Trace.AfterStep(loc, m.CPU)
	}

	return nil
}

// Run steps the machine until it halts or the instruction-count ceiling is
// exceeded, in which case InstructionLimitExceeded is returned.
func (m *Machine) Run() error {
	limit := m.InstructionLimit
	if limit <= 0 {
		limit = DefaultInstructionLimit
	}
	for i := 0; i < limit; i++ {
		if m.State == StateHalted {
			return nil
		}
		if err := m.Step(); err != nil {
			return err
		}
	}
	if m.State == StateHalted {
		return nil
	}
	err := &InstructionLimitExceeded{Limit: limit}
	m.LastError = err
	return err
}

// effectiveAddress computes M for a memory-referencing instruction and
// validates it lies in 0..MemorySize-1.
func (m *Machine) effectiveAddress(inst Instruction) (int, error) {
	idx := int64(0)
	if inst.I != 0 {
		idx = m.CPU.IndexValue(inst.I)
	}
	raw := EffectiveAddressIndexed(inst, idx)
	addr := int(raw)
	if int64(addr) != raw || addr < 0 || addr >= MemorySize {
		return 0, &AddressError{Address: int(raw)}
	}
	return addr, nil
}

// effectiveAddressSigned computes M for jump/address-transfer instructions,
// where M is used as a plain signed quantity and need not fall in range.
func (m *Machine) effectiveAddressSigned(inst Instruction) int64 {
	idx := int64(0)
	if inst.I != 0 {
		idx = m.CPU.IndexValue(inst.I)
	}
	return EffectiveAddressIndexed(inst, idx)
}

func (m *Machine) dispatch(loc int, inst Instruction) error {
	switch {
	case inst.C == 0:
		return nil // NOP
	case inst.C >= 1 && inst.C <= 4:
		return m.execArithmetic(inst)
	case inst.C == 5:
		return m.execNumCharHlt(inst)
	case inst.C == 6:
		return m.execShift(inst)
	case inst.C == 7:
		return m.execMove(inst)
	case inst.C >= 8 && inst.C <= 23:
		return m.execLoad(inst)
	case inst.C >= 24 && inst.C <= 33:
		return m.execStore(inst)
	case inst.C >= 34 && inst.C <= 38:
		return m.execIO(inst)
	case inst.C == 39:
		return m.execJump(loc, inst)
	case inst.C >= 40 && inst.C <= 47:
		return m.execRegisterJump(loc, inst)
	case inst.C >= 48 && inst.C <= 55:
		return m.execAddressTransfer(inst)
	case inst.C >= 56 && inst.C <= 63:
		return m.execCompare(inst)
	default:
		return &UnknownOpcodeError{Opcode: inst.C, Field: inst.F, PC: loc}
	}
}

// DumpState renders a one-line human-readable summary of machine state,
// used by the CLI's verbose mode and the debugger status line.
func (m *Machine) DumpState() string {
	return fmt.Sprintf(
		"PC=%04d A=%s%010d X=%s%010d OV=%v CMP=%s STATE=%s",
		m.CPU.PC,
		m.CPU.A.Sign, m.CPU.A.Magnitude(),
		m.CPU.X.Sign, m.CPU.X.Magnitude(),
		m.CPU.Overflow,
		m.CPU.Comparison,
		m.State,
	)
}

package vm

import "testing"

// instructionWord builds the raw Word for an instruction, bypassing the
// assembler -- these are unit tests of the fetch-decode-execute engine
// itself, not of assembly.
func instructionWord(aa, i, f, c int) Word {
	return EncodeInstruction(Instruction{Sign: Positive, AA: aa, I: i, F: f, C: c})
}

func TestMachine_NewMachineInitialState(t *testing.T) {
	m := NewMachine()

	if m.State != StateRunning {
		t.Errorf("State = %v, want StateRunning", m.State)
	}
	if !m.CPU.A.IsZero() || !m.CPU.X.IsZero() {
		t.Error("registers should start at zero")
	}
	if m.CPU.Overflow {
		t.Error("overflow should start clear")
	}
	if m.CPU.Comparison != CompEqual {
		t.Errorf("Comparison = %v, want CompEqual", m.CPU.Comparison)
	}
	if m.CPU.PC != 0 {
		t.Errorf("PC = %d, want 0", m.CPU.PC)
	}
}

func TestMachine_StepHalt(t *testing.T) {
	m := NewMachine()
	_ = m.Memory.Write(0, instructionWord(0, 0, 2, 5)) // HLT

	if err := m.Step(); err != nil {
		t.Fatalf("Step error = %v", err)
	}
	if m.State != StateHalted {
		t.Errorf("State = %v, want StateHalted", m.State)
	}
}

func TestMachine_StepOnHaltedMachineIsNoop(t *testing.T) {
	m := NewMachine()
	m.State = StateHalted
	pc := m.CPU.PC

	if err := m.Step(); err != nil {
		t.Fatalf("Step on halted machine returned error: %v", err)
	}
	if m.CPU.PC != pc {
		t.Errorf("PC advanced on a halted Step: %d -> %d", pc, m.CPU.PC)
	}
}

func TestMachine_StepNOPAdvancesPC(t *testing.T) {
	m := NewMachine()
	_ = m.Memory.Write(0, instructionWord(0, 0, 0, 0)) // NOP

	if err := m.Step(); err != nil {
		t.Fatalf("Step error = %v", err)
	}
	if m.CPU.PC != 1 {
		t.Errorf("PC = %d, want 1", m.CPU.PC)
	}
	if m.State != StateRunning {
		t.Errorf("State = %v, want StateRunning (NOP must not halt)", m.State)
	}
}

func TestMachine_StepUnknownOpcode(t *testing.T) {
	m := NewMachine()
	// Opcode 64 is outside the 0..63 dispatch table.
	_ = m.Memory.Write(0, instructionWord(0, 0, 0, 64))

	err := m.Step()
	if err == nil {
		t.Fatal("expected error for unknown opcode")
	}
	if m.LastError != err {
		t.Error("LastError not recorded")
	}
}

func TestMachine_RunExecutesUntilHalt(t *testing.T) {
	m := NewMachine()
	_ = m.Memory.Write(0, instructionWord(0, 0, 0, 0)) // NOP
	_ = m.Memory.Write(1, instructionWord(0, 0, 0, 0)) // NOP
	_ = m.Memory.Write(2, instructionWord(0, 0, 2, 5)) // HLT

	if err := m.Run(); err != nil {
		t.Fatalf("Run error = %v", err)
	}
	if m.State != StateHalted {
		t.Errorf("State = %v, want StateHalted", m.State)
	}
	if m.CPU.PC != 3 {
		t.Errorf("PC = %d, want 3", m.CPU.PC)
	}
}

func TestMachine_RunInstructionLimitExceeded(t *testing.T) {
	m := NewMachine()
	m.InstructionLimit = 5
	_ = m.Memory.Write(0, instructionWord(0, 0, 0, 0)) // NOP
	// JMP back to 0: AA=0, C=39 (JMP opcode), F=0 selects JMP -- loops forever.
	_ = m.Memory.Write(1, EncodeInstruction(Instruction{Sign: Positive, AA: 0, I: 0, F: 0, C: 39}))

	err := m.Run()
	if err == nil {
		t.Fatal("expected InstructionLimitExceeded")
	}
	if _, ok := err.(*InstructionLimitExceeded); !ok {
		t.Errorf("error type = %T, want *InstructionLimitExceeded", err)
	}
}

func TestMachine_Reset(t *testing.T) {
	m := NewMachine()
	a, _ := FromInt(42)
	m.CPU.A = a
	m.CPU.PC = 100
	m.State = StateHalted
	m.LastError = &UnknownOpcodeError{}
	_ = m.Memory.Write(10, a)

	m.Reset()

	if !m.CPU.A.IsZero() {
		t.Error("rA not cleared by Reset")
	}
	if m.CPU.PC != 0 {
		t.Errorf("PC = %d, want 0 after Reset", m.CPU.PC)
	}
	if m.State != StateRunning {
		t.Errorf("State = %v, want StateRunning after Reset", m.State)
	}
	if m.LastError != nil {
		t.Error("LastError not cleared by Reset")
	}
	got, _ := m.Memory.Read(10)
	if !got.IsZero() {
		t.Error("memory not cleared by Reset")
	}
}

func TestMachine_DumpStateContainsRegisters(t *testing.T) {
	m := NewMachine()
	s := m.DumpState()
	if s == "" {
		t.Error("DumpState returned empty string")
	}
}

package loader

import (
	"fmt"

	"github.com/knuth-mix/mix-emulator/assembler"
	"github.com/knuth-mix/mix-emulator/vm"
)

// LoadProgramIntoMachine installs an assembled Program's memory image and
// start address into machine, leaving every other cell at its current
// (typically zero) value.
func LoadProgramIntoMachine(machine *vm.Machine, program *assembler.Program) error {
	for addr, word := range program.Image {
		if addr < 0 || addr >= vm.MemorySize {
			return fmt.Errorf("assembled image contains out-of-range address %d", addr)
		}
		if err := machine.Memory.Write(addr, word); err != nil {
			return err
		}
	}
	machine.CPU.PC = program.StartAddress
	return nil
}

// AssembleAndLoad assembles source and installs the result into a fresh
// Machine, returning both the Machine and the resolved Program (for
// -dump-symbols and the debugger's symbol lookups).
func AssembleAndLoad(source, filename string) (*vm.Machine, *assembler.Program, error) {
	asm := assembler.NewAssembler(filename)
	program, err := asm.Assemble(source)
	if err != nil {
		return nil, nil, err
	}

	machine := vm.NewMachine()
	if err := LoadProgramIntoMachine(machine, program); err != nil {
		return nil, nil, err
	}
	return machine, program, nil
}

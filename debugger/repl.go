package debugger

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/knuth-mix/mix-emulator/vm"
)

// RunREPL runs the line-oriented command debugger on stdin/stdout.
func RunREPL(dbg *Debugger) error {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("(mix-dbg) ")

		if !scanner.Scan() {
			break
		}
		cmdLine := strings.TrimSpace(scanner.Text())

		if cmdLine == "quit" || cmdLine == "q" || cmdLine == "exit" {
			fmt.Println("Exiting debugger...")
			break
		}

		if err := dbg.ExecuteCommand(cmdLine); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
		if output := dbg.GetOutput(); output != "" {
			fmt.Print(output)
		}

		if dbg.Running {
			runUntilStop(dbg)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("input error: %w", err)
	}
	return nil
}

// runUntilStop single-steps the machine until a breakpoint/watchpoint
// fires, the machine halts, or a runtime error stops it.
func runUntilStop(dbg *Debugger) {
	for dbg.Running {
		if shouldBreak, reason := dbg.ShouldBreak(); shouldBreak {
			dbg.Running = false
			fmt.Printf("Stopped: %s at PC=%04d\n", reason, dbg.Machine.CPU.PC)
			return
		}

		if err := dbg.Machine.Step(); err != nil {
			dbg.Running = false
			if dbg.Machine.State == vm.StateHalted {
				fmt.Println("Program halted")
			} else {
				fmt.Printf("Runtime error: %v\n", err)
			}
			return
		}
	}
}

// RunTUI launches the full-screen tview debugger.
func RunTUI(dbg *Debugger) error {
	tui := NewTUI(dbg)
	return tui.Run()
}

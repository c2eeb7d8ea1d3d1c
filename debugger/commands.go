package debugger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/knuth-mix/mix-emulator/tools"
	"github.com/knuth-mix/mix-emulator/vm"
)

// Command handler implementations, dispatched from Debugger.handleCommand.

func (d *Debugger) cmdRun(args []string) error {
	d.Machine.Reset()
	d.Running = true
	d.StepMode = StepNone
	d.Println("Starting program execution...")
	return nil
}

func (d *Debugger) cmdContinue(args []string) error {
	if d.Machine.State == vm.StateHalted {
		return fmt.Errorf("program is not running")
	}
	d.Running = true
	d.StepMode = StepNone
	d.Println("Continuing...")
	return nil
}

func (d *Debugger) cmdStep(args []string) error {
	d.StepMode = StepSingle
	d.Running = true
	return nil
}

func (d *Debugger) cmdBreak(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: break <address|label> [if <condition>]")
	}

	address, err := d.ResolveAddress(args[0])
	if err != nil {
		return err
	}

	var condition string
	if len(args) > 1 && strings.ToLower(args[1]) == "if" {
		condition = strings.Join(args[2:], " ")
	}

	bp := d.Breakpoints.AddBreakpoint(address, false, condition)
	if condition != "" {
		d.Printf("Breakpoint %d at %04d (condition: %s)\n", bp.ID, address, condition)
	} else {
		d.Printf("Breakpoint %d at %04d\n", bp.ID, address)
	}
	return nil
}

func (d *Debugger) cmdTBreak(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: tbreak <address|label>")
	}
	address, err := d.ResolveAddress(args[0])
	if err != nil {
		return err
	}
	bp := d.Breakpoints.AddBreakpoint(address, true, "")
	d.Printf("Temporary breakpoint %d at %04d\n", bp.ID, address)
	return nil
}

func (d *Debugger) cmdDelete(args []string) error {
	if len(args) == 0 {
		d.Breakpoints.Clear()
		d.Println("All breakpoints deleted")
		return nil
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid breakpoint ID: %s", args[0])
	}
	if err := d.Breakpoints.DeleteBreakpoint(id); err != nil {
		return err
	}
	d.Printf("Breakpoint %d deleted\n", id)
	return nil
}

func (d *Debugger) cmdEnable(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: enable <breakpoint-id>")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid breakpoint ID: %s", args[0])
	}
	if err := d.Breakpoints.EnableBreakpoint(id); err != nil {
		return err
	}
	d.Printf("Breakpoint %d enabled\n", id)
	return nil
}

func (d *Debugger) cmdDisable(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: disable <breakpoint-id>")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid breakpoint ID: %s", args[0])
	}
	if err := d.Breakpoints.DisableBreakpoint(id); err != nil {
		return err
	}
	d.Printf("Breakpoint %d disabled\n", id)
	return nil
}

// cmdWatch accepts either a register name (A, X, J, I1..I6) or a memory
// address/symbol.
func (d *Debugger) cmdWatch(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: watch <register|address|label>")
	}
	expr := args[0]

	if _, ok := tryRegister(expr, d.Machine); ok {
		wp := d.Watchpoints.AddWatchpoint(expr, 0, true, strings.ToUpper(expr))
		_ = d.Watchpoints.InitializeWatchpoint(wp.ID, d.Machine)
		d.Printf("Watchpoint %d on register %s\n", wp.ID, strings.ToUpper(expr))
		return nil
	}

	address, err := d.ResolveAddress(expr)
	if err != nil {
		return err
	}
	wp := d.Watchpoints.AddWatchpoint(expr, address, false, "")
	_ = d.Watchpoints.InitializeWatchpoint(wp.ID, d.Machine)
	d.Printf("Watchpoint %d on address %04d\n", wp.ID, address)
	return nil
}

func (d *Debugger) cmdPrint(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: print <expression>")
	}
	expr := strings.Join(args, " ")
	v, err := d.Evaluator.EvaluateExpression(expr, d.Machine, d.Symbols)
	if err != nil {
		return err
	}
	d.Printf("$%d = %d\n", len(d.Evaluator.valueHistory), v)
	return nil
}

// cmdExamine dumps a range of memory cells: x <address> [count]
func (d *Debugger) cmdExamine(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: x <address> [count]")
	}
	address, err := d.ResolveAddress(args[0])
	if err != nil {
		return err
	}
	count := 1
	if len(args) > 1 {
		count, err = strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid count: %s", args[1])
		}
	}

	for i := 0; i < count; i++ {
		addr := address + i
		word, err := d.Machine.Memory.Read(addr)
		if err != nil {
			return err
		}
		d.Printf("%04d: %s%010d\n", addr, word.Sign, word.Magnitude())
	}
	return nil
}

func (d *Debugger) cmdInfo(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: info <registers|breakpoints|watchpoints|symbols>")
	}
	switch strings.ToLower(args[0]) {
	case "registers", "reg", "r":
		d.Println(d.Machine.CPU.Summary())
	case "breakpoints", "break", "b":
		for _, bp := range d.Breakpoints.GetAllBreakpoints() {
			d.Printf("%d: %04d enabled=%v hits=%d cond=%q\n", bp.ID, bp.Address, bp.Enabled, bp.HitCount, bp.Condition)
		}
	case "watchpoints", "watch", "w":
		for _, wp := range d.Watchpoints.GetAllWatchpoints() {
			d.Printf("%d: %s enabled=%v hits=%d\n", wp.ID, wp.Expression, wp.Enabled, wp.HitCount)
		}
	case "symbols", "sym", "xref":
		return d.cmdXref(args[1:])
	default:
		return fmt.Errorf("unknown info topic: %s", args[0])
	}
	return nil
}

// cmdXref builds and prints a cross-reference table (definition line plus
// every referencing line) for the loaded source, used to answer "where is
// this label used" without leaving the debugger.
func (d *Debugger) cmdXref(args []string) error {
	if d.SourceText == "" {
		return fmt.Errorf("no source loaded")
	}
	gen := tools.NewXRefGenerator()
	symbols, err := gen.Generate(d.SourceText, d.SourceFile)
	if err != nil {
		return fmt.Errorf("building cross-reference: %w", err)
	}
	d.Printf("%s", tools.Report(symbols))
	return nil
}

// cmdList prints up to 20 lines of source text around the given line
// number, or the start of the program if no argument is given.
func (d *Debugger) cmdList(args []string) error {
	if d.SourceText == "" {
		return fmt.Errorf("no source loaded")
	}
	lines := strings.Split(d.SourceText, "\n")

	center := 0
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid line number: %s", args[0])
		}
		center = n - 1
	}

	start := center - 10
	if start < 0 {
		start = 0
	}
	end := start + 20
	if end > len(lines) {
		end = len(lines)
	}
	for i := start; i < end; i++ {
		d.Printf("%4d  %s\n", i+1, lines[i])
	}
	return nil
}

func (d *Debugger) cmdReset(args []string) error {
	d.Machine.Reset()
	d.Running = false
	d.StepMode = StepNone
	d.Println("Machine reset")
	return nil
}

func (d *Debugger) cmdHelp(args []string) error {
	d.Println("Available commands:")
	d.Println("  run, r                    start or restart execution")
	d.Println("  continue, c               resume execution")
	d.Println("  step, s                   execute one instruction")
	d.Println("  break, b <addr> [if C]    set a breakpoint")
	d.Println("  tbreak, tb <addr>         set a one-shot breakpoint")
	d.Println("  delete, d [id]            delete breakpoint(s)")
	d.Println("  enable/disable <id>       toggle a breakpoint")
	d.Println("  watch, w <reg|addr>       set a watchpoint")
	d.Println("  print, p <expr>           evaluate an expression")
	d.Println("  x <addr> [count]          dump memory cells")
	d.Println("  info, i <what>            registers|breakpoints|watchpoints|symbols")
	d.Println("  list, l [line]            show source around a line")
	d.Println("  reset                     reset the machine")
	d.Println("  help, h, ?                show this text")
	d.Println("  quit, q, exit             leave the debugger")
	return nil
}

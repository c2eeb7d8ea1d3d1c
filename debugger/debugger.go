package debugger

import (
	"fmt"
	"strings"

	"github.com/knuth-mix/mix-emulator/parser"
	"github.com/knuth-mix/mix-emulator/vm"
)

// StepMode distinguishes the stepping granularity requested by the last
// step/next command.
type StepMode int

const (
	StepNone StepMode = iota
	StepSingle
)

// Debugger ties a running Machine to breakpoint/watchpoint state, command
// history, and the symbol/source information produced by assembly, and
// drives both the line-oriented REPL and the tview TUI.
type Debugger struct {
	Machine *vm.Machine

	Breakpoints *BreakpointManager
	Watchpoints *WatchpointManager
	History     *CommandHistory
	Evaluator   *ExpressionEvaluator

	Running  bool
	StepMode StepMode

	Symbols    *parser.SymbolTable
	SourceText string
	SourceFile string

	LastCommand string

	Output strings.Builder
}

// NewDebugger wraps machine in a fresh Debugger.
func NewDebugger(machine *vm.Machine) *Debugger {
	return &Debugger{
		Machine:     machine,
		Breakpoints: NewBreakpointManager(),
		Watchpoints: NewWatchpointManager(),
		History:     NewCommandHistory(),
		Evaluator:   NewExpressionEvaluator(),
	}
}

// LoadSymbols attaches the resolved symbol table from assembly, for
// label/symbol resolution in debugger expressions.
func (d *Debugger) LoadSymbols(symbols *parser.SymbolTable) {
	d.Symbols = symbols
}

// LoadSource attaches the original MIXAL source text, for the `list` command.
func (d *Debugger) LoadSource(filename, text string) {
	d.SourceFile = filename
	d.SourceText = text
}

// ResolveAddress resolves addrStr as a symbol name first, falling back to a
// plain decimal integer.
func (d *Debugger) ResolveAddress(addrStr string) (int, error) {
	upper := strings.ToUpper(addrStr)
	if d.Symbols != nil && d.Symbols.Defined(upper) {
		v, err := d.Symbols.Lookup(upper)
		return int(v), err
	}

	v, err := d.Evaluator.EvaluateExpression(addrStr, d.Machine, d.Symbols)
	if err != nil {
		return 0, fmt.Errorf("invalid address: %s", addrStr)
	}
	return int(v), nil
}

// ExecuteCommand parses and runs a single debugger command line. An empty
// line repeats the last non-empty command, matching familiar REPL
// debuggers' behavior for step/next.
func (d *Debugger) ExecuteCommand(cmdLine string) error {
	cmdLine = strings.TrimSpace(cmdLine)
	if cmdLine == "" {
		cmdLine = d.LastCommand
	}
	if cmdLine != "" {
		d.History.Add(cmdLine)
		d.LastCommand = cmdLine
	}

	parts := strings.Fields(cmdLine)
	if len(parts) == 0 {
		return nil
	}

	return d.handleCommand(strings.ToLower(parts[0]), parts[1:])
}

func (d *Debugger) handleCommand(cmd string, args []string) error {
	switch cmd {
	case "run", "r":
		return d.cmdRun(args)
	case "continue", "c":
		return d.cmdContinue(args)
	case "step", "s":
		return d.cmdStep(args)
	case "break", "b":
		return d.cmdBreak(args)
	case "tbreak", "tb":
		return d.cmdTBreak(args)
	case "delete", "d":
		return d.cmdDelete(args)
	case "enable":
		return d.cmdEnable(args)
	case "disable":
		return d.cmdDisable(args)
	case "watch", "w":
		return d.cmdWatch(args)
	case "print", "p":
		return d.cmdPrint(args)
	case "x":
		return d.cmdExamine(args)
	case "info", "i":
		return d.cmdInfo(args)
	case "list", "l":
		return d.cmdList(args)
	case "reset":
		return d.cmdReset(args)
	case "help", "h", "?":
		return d.cmdHelp(args)
	default:
		return fmt.Errorf("unknown command: %s (type 'help' for available commands)", cmd)
	}
}

// ShouldBreak reports whether execution should pause at the machine's
// current PC, and why.
func (d *Debugger) ShouldBreak() (bool, string) {
	pc := d.Machine.CPU.PC

	if d.StepMode == StepSingle {
		d.StepMode = StepNone
		return true, "single step"
	}

	if bp := d.Breakpoints.GetBreakpoint(pc); bp != nil && bp.Enabled {
		if bp.Condition != "" {
			ok, err := d.Evaluator.Evaluate(bp.Condition, d.Machine, d.Symbols)
			if err != nil {
				return true, fmt.Sprintf("breakpoint %d (condition error: %v)", bp.ID, err)
			}
			if !ok {
				return false, ""
			}
		}
		hit := d.Breakpoints.ProcessHit(pc)
		return true, fmt.Sprintf("breakpoint %d", hit.ID)
	}

	if wp, changed := d.Watchpoints.CheckWatchpoints(d.Machine); changed {
		return true, fmt.Sprintf("watchpoint %d: %s", wp.ID, wp.Expression)
	}

	return false, ""
}

// GetOutput drains and returns the debugger's output buffer.
func (d *Debugger) GetOutput() string {
	output := d.Output.String()
	d.Output.Reset()
	return output
}

// Printf appends formatted text to the output buffer.
func (d *Debugger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(&d.Output, format, args...)
}

// Println appends a line to the output buffer.
func (d *Debugger) Println(args ...interface{}) {
	fmt.Fprintln(&d.Output, args...)
}

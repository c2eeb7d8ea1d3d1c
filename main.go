package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/knuth-mix/mix-emulator/assembler"
	"github.com/knuth-mix/mix-emulator/config"
	"github.com/knuth-mix/mix-emulator/debugger"
	"github.com/knuth-mix/mix-emulator/loader"
	"github.com/knuth-mix/mix-emulator/parser"
	"github.com/knuth-mix/mix-emulator/tools"
	"github.com/knuth-mix/mix-emulator/vm"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"     // Version number (set by git tag at build time)
	Commit  = "unknown" // Git commit hash
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "assemble":
		err = runAssemble(os.Args[2:])
	case "run":
		err = runRun(os.Args[2:])
	case "exec":
		err = runExec(os.Args[2:])
	case "fmt":
		err = runFmt(os.Args[2:])
	case "lint":
		err = runLint(os.Args[2:])
	case "version", "-version", "--version":
		fmt.Printf("mix %s (%s)\n", Version, Commit)
		return
	case "help", "-help", "--help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand: %s\n\n", os.Args[1])
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `mix - an emulator and assembler for Knuth's MIX computer (TAOCP Vol. 1)

Usage:
  mix assemble <src.mixal> [-o out.mix] [-dump-symbols] [-symbols-file f]
  mix run <image.mix> [-max-instructions N] [-trace] [-trace-file f] [-stats] [-stats-file f] [-stats-format json|csv]
  mix exec <src.mixal> [-max-instructions N] [-trace] [-stats] [-debug] [-tui]
  mix fmt <src.mixal>
  mix lint <src.mixal>
  mix version
  mix help`)
}

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-supplied source path
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

func runAssemble(args []string) error {
	fs := flag.NewFlagSet("assemble", flag.ExitOnError)
	output := fs.String("o", "", "output image path (default: <src>.mix)")
	dumpSymbols := fs.Bool("dump-symbols", false, "print the resolved symbol table instead of writing an image")
	symbolsFile := fs.String("symbols-file", "", "symbol dump output file (default: stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: mix assemble <src.mixal> [-o out.mix]")
	}
	srcPath := fs.Arg(0)

	source, err := readSource(srcPath)
	if err != nil {
		return err
	}

	program, err := assembler.NewAssembler(srcPath).Assemble(source)
	if err != nil {
		return err
	}

	if *dumpSymbols {
		return dumpSymbolTable(program.Symbols, *symbolsFile)
	}

	outPath := *output
	if outPath == "" {
		outPath = srcPath + ".mix"
	}
	f, err := os.Create(outPath) // #nosec G304 -- user-supplied output path
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	defer f.Close()

	if err := loader.WriteImage(f, program.Image, program.StartAddress, true); err != nil {
		return err
	}
	fmt.Printf("assembled %s -> %s (start=%04d)\n", srcPath, outPath, program.StartAddress)
	return nil
}

func dumpSymbolTable(symbols *parser.SymbolTable, path string) error {
	out := os.Stdout
	if path != "" {
		f, err := os.Create(path) // #nosec G304 -- user-supplied output path
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		defer f.Close()
		out = f
	}
	for _, sym := range symbols.All() {
		fmt.Fprintf(out, "%-10s %d\n", sym.Name, sym.Value)
	}
	return nil
}

// diagnostics carries the resolved trace/statistics output destinations
// between setupDiagnostics and flushDiagnostics, since vm.Machine itself
// has no notion of a file path.
type diagnostics struct {
	tracePath  string
	statsPath  string
	statsForm  string
}

func setupDiagnostics(machine *vm.Machine, cfg *config.Config, trace bool, traceFile string, stats bool, statsFile, statsFormat string) diagnostics {
	var d diagnostics
	if trace || cfg.Execution.EnableTrace {
		machine.Trace = vm.NewExecutionTrace(nil)
		machine.Trace.MaxEntries = cfg.Trace.MaxEntries
		d.tracePath = traceFile
		if d.tracePath == "" {
			d.tracePath = cfg.Trace.OutputFile
		}
	}
	if stats || cfg.Execution.EnableStats {
		machine.Statistics = vm.NewPerformanceStatistics()
		d.statsPath = statsFile
		if d.statsPath == "" {
			d.statsPath = cfg.Statistics.OutputFile
		}
		d.statsForm = statsFormat
		if d.statsForm == "" {
			d.statsForm = cfg.Statistics.Format
		}
	}
	return d
}

func flushDiagnostics(machine *vm.Machine, d diagnostics) error {
	if machine.Trace != nil && d.tracePath != "" {
		f, err := os.Create(d.tracePath) // #nosec G304 -- user-configured trace path
		if err != nil {
			return fmt.Errorf("creating trace file: %w", err)
		}
		defer f.Close()
		if _, err := f.WriteString(machine.Trace.String()); err != nil {
			return fmt.Errorf("writing trace file: %w", err)
		}
	}
	if machine.Statistics != nil && d.statsPath != "" {
		f, err := os.Create(d.statsPath) // #nosec G304 -- user-configured statistics path
		if err != nil {
			return fmt.Errorf("creating statistics file: %w", err)
		}
		defer f.Close()

		if d.statsForm == "csv" {
			return machine.Statistics.ExportCSV(f)
		}
		return machine.Statistics.ExportJSON(f)
	}
	return nil
}

func runRun(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	maxInstructions := fs.Int("max-instructions", 0, "instruction ceiling before aborting (default: config)")
	enableTrace := fs.Bool("trace", false, "enable execution trace")
	traceFile := fs.String("trace-file", "", "trace output file (default: config)")
	enableStats := fs.Bool("stats", false, "enable performance statistics")
	statsFile := fs.String("stats-file", "", "statistics output file (default: config)")
	statsFormat := fs.String("stats-format", "", "statistics format: json|csv (default: config)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: mix run <image.mix> [-max-instructions N]")
	}
	imagePath := fs.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	f, err := os.Open(imagePath) // #nosec G304 -- user-supplied image path
	if err != nil {
		return fmt.Errorf("opening %s: %w", imagePath, err)
	}
	image, startAddress, err := loader.ReadImage(f, true)
	f.Close()
	if err != nil {
		return err
	}

	machine := vm.NewMachine()
	program := &assembler.Program{Image: image, StartAddress: startAddress}
	if err := loader.LoadProgramIntoMachine(machine, program); err != nil {
		return err
	}

	if *maxInstructions > 0 {
		machine.InstructionLimit = *maxInstructions
	} else if cfg.Execution.MaxInstructions > 0 {
		machine.InstructionLimit = cfg.Execution.MaxInstructions
	}

	diag := setupDiagnostics(machine, cfg, *enableTrace, *traceFile, *enableStats, *statsFile, *statsFormat)

	runErr := machine.Run()
	if err := flushDiagnostics(machine, diag); err != nil {
		return err
	}
	fmt.Println(machine.DumpState())
	return runErr
}

func runExec(args []string) error {
	fs := flag.NewFlagSet("exec", flag.ExitOnError)
	maxInstructions := fs.Int("max-instructions", 0, "instruction ceiling before aborting (default: config)")
	enableTrace := fs.Bool("trace", false, "enable execution trace")
	enableStats := fs.Bool("stats", false, "enable performance statistics")
	debugMode := fs.Bool("debug", false, "drop into the line-oriented debugger REPL after loading")
	tuiMode := fs.Bool("tui", false, "launch the full-screen debugger TUI instead of the REPL")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: mix exec <src.mixal> [-debug] [-tui]")
	}
	srcPath := fs.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	source, err := readSource(srcPath)
	if err != nil {
		return err
	}

	machine, program, err := loader.AssembleAndLoad(source, srcPath)
	if err != nil {
		return err
	}

	if *maxInstructions > 0 {
		machine.InstructionLimit = *maxInstructions
	} else if cfg.Execution.MaxInstructions > 0 {
		machine.InstructionLimit = cfg.Execution.MaxInstructions
	}

	diag := setupDiagnostics(machine, cfg, *enableTrace, "", *enableStats, "", "")

	if *debugMode || *tuiMode {
		dbg := debugger.NewDebugger(machine)
		dbg.LoadSymbols(program.Symbols)
		dbg.LoadSource(srcPath, source)

		if *tuiMode {
			return debugger.RunTUI(dbg)
		}
		return debugger.RunREPL(dbg)
	}

	runErr := machine.Run()
	if err := flushDiagnostics(machine, diag); err != nil {
		return err
	}
	fmt.Println(machine.DumpState())
	return runErr
}

func runFmt(args []string) error {
	fs := flag.NewFlagSet("fmt", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: mix fmt <src.mixal>")
	}
	source, err := readSource(fs.Arg(0))
	if err != nil {
		return err
	}
	fmt.Print(tools.FormatString(source))
	return nil
}

func runLint(args []string) error {
	fs := flag.NewFlagSet("lint", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: mix lint <src.mixal>")
	}
	srcPath := fs.Arg(0)
	source, err := readSource(srcPath)
	if err != nil {
		return err
	}

	issues := tools.NewLinter().Lint(source, srcPath)
	fmt.Print(tools.FormatIssues(issues))

	for _, issue := range issues {
		if issue.Level == tools.LintError {
			os.Exit(1)
		}
	}
	return nil
}

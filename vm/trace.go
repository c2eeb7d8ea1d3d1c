package vm

import (
	"fmt"
	"io"
	"strings"
)

// TraceEntry is a single recorded instruction execution.
type TraceEntry struct {
	Sequence    uint64
	Location    int
	Instruction Instruction
	Before      string
	After       string
}

// ExecutionTrace records before/after machine state around each Step, for
// the CLI's --trace flag.
type ExecutionTrace struct {
	Enabled    bool
	Writer     io.Writer
	MaxEntries int

	entries  []TraceEntry
	sequence uint64
	pending  TraceEntry
}

// NewExecutionTrace returns a trace that writes formatted entries to w as
// they complete; w may be nil to only retain entries in memory.
func NewExecutionTrace(w io.Writer) *ExecutionTrace {
	return &ExecutionTrace{
		Enabled:    true,
		Writer:     w,
		MaxEntries: 1_000_000,
		entries:    make([]TraceEntry, 0, 256),
	}
}

// BeforeStep records the instruction about to execute and the machine
// state immediately before it.
func (t *ExecutionTrace) BeforeStep(loc int, inst Instruction, cpu *CPU) {
	if !t.Enabled {
		return
	}
	t.pending = TraceEntry{
		Sequence:    t.sequence,
		Location:    loc,
		Instruction: inst,
		Before:      cpu.Summary(),
	}
}

// AfterStep completes the pending entry with post-execution state and
// appends it to the trace, flushing a formatted line if Writer is set.
func (t *ExecutionTrace) AfterStep(loc int, cpu *CPU) {
	if !t.Enabled {
		return
	}
	t.pending.After = cpu.Summary()
	t.sequence++

	if t.MaxEntries > 0 && len(t.entries) >= t.MaxEntries {
		return
	}
	t.entries = append(t.entries, t.pending)

	if t.Writer != nil {
		fmt.Fprintln(t.Writer, t.pending.Line())
	}
}

// Line renders an entry as "[seq] loc: C F AA | before -> after".
func (e TraceEntry) Line() string {
	return fmt.Sprintf("[%06d] %04d: C=%-2d F=%-2d AA=%-4d I=%d | %s -> %s",
		e.Sequence, e.Location, e.Instruction.C, e.Instruction.F,
		e.Instruction.AA, e.Instruction.I, e.Before, e.After)
}

// Entries returns every recorded entry in execution order.
func (t *ExecutionTrace) Entries() []TraceEntry {
	return t.entries
}

// Clear discards all recorded entries and resets the sequence counter.
func (t *ExecutionTrace) Clear() {
	t.entries = t.entries[:0]
	t.sequence = 0
}

// String renders the full trace as newline-separated lines.
func (t *ExecutionTrace) String() string {
	var sb strings.Builder
	for _, e := range t.entries {
		sb.WriteString(e.Line())
		sb.WriteByte('\n')
	}
	return sb.String()
}

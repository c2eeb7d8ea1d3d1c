package vm

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// InstructionStats tracks how often a particular opcode/field pairing ran.
type InstructionStats struct {
	Mnemonic string
	Count    uint64
}

// PerformanceStatistics tracks instruction-level execution counters. Cycle
// timing is intentionally absent: the machine does not model cycle counts.
type PerformanceStatistics struct {
	Enabled bool

	TotalInstructions uint64
	InstructionCounts map[string]uint64
	HotPath           map[int]uint64

	JumpCount       uint64
	JumpTakenCount  uint64
	OverflowEvents  uint64
}

// NewPerformanceStatistics returns an enabled, empty statistics tracker.
func NewPerformanceStatistics() *PerformanceStatistics {
	return &PerformanceStatistics{
		Enabled:           true,
		InstructionCounts: make(map[string]uint64),
		HotPath:           make(map[int]uint64),
	}
}

// RecordInstruction tallies one executed instruction by mnemonic and by
// the location it ran at.
func (s *PerformanceStatistics) RecordInstruction(opcode, field, location int) {
	if !s.Enabled {
		return
	}
	s.TotalInstructions++
	s.InstructionCounts[mnemonicFor(opcode, field)]++
	s.HotPath[location]++

	if opcode == 39 || (opcode >= 40 && opcode <= 47) || opcode == 38 {
		s.JumpCount++
	}
}

// RecordOverflow tallies an instruction that set the overflow toggle.
func (s *PerformanceStatistics) RecordOverflow() {
	if !s.Enabled {
		return
	}
	s.OverflowEvents++
}

// GetTopInstructions returns the n most frequently executed mnemonics, or
// all of them if n <= 0.
func (s *PerformanceStatistics) GetTopInstructions(n int) []InstructionStats {
	stats := make([]InstructionStats, 0, len(s.InstructionCounts))
	for mnemonic, count := range s.InstructionCounts {
		stats = append(stats, InstructionStats{Mnemonic: mnemonic, Count: count})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Mnemonic < stats[j].Mnemonic
	})
	if n > 0 && n < len(stats) {
		return stats[:n]
	}
	return stats
}

// ExportJSON writes the statistics as a JSON document.
func (s *PerformanceStatistics) ExportJSON(w io.Writer) error {
	data := map[string]interface{}{
		"total_instructions": s.TotalInstructions,
		"jump_count":         s.JumpCount,
		"overflow_events":    s.OverflowEvents,
		"top_instructions":   s.GetTopInstructions(20),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportCSV writes the statistics as two CSV sections: summary metrics
// followed by the per-mnemonic breakdown.
func (s *PerformanceStatistics) ExportCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Metric", "Value"}); err != nil {
		return err
	}
	rows := [][]string{
		{"Total Instructions", fmt.Sprintf("%d", s.TotalInstructions)},
		{"Jump Count", fmt.Sprintf("%d", s.JumpCount)},
		{"Overflow Events", fmt.Sprintf("%d", s.OverflowEvents)},
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Write([]string{})
	writer.Write([]string{"Mnemonic", "Count"})
	for _, stat := range s.GetTopInstructions(0) {
		if err := writer.Write([]string{stat.Mnemonic, fmt.Sprintf("%d", stat.Count)}); err != nil {
			return err
		}
	}
	return nil
}

// String renders a human-readable summary of the counters and the ten most
// frequent mnemonics.
func (s *PerformanceStatistics) String() string {
	var sb strings.Builder
	sb.WriteString("Execution Statistics\n")
	sb.WriteString("=====================\n\n")
	sb.WriteString(fmt.Sprintf("Total Instructions: %d\n", s.TotalInstructions))
	sb.WriteString(fmt.Sprintf("Jumps:              %d\n", s.JumpCount))
	sb.WriteString(fmt.Sprintf("Overflow Events:    %d\n\n", s.OverflowEvents))

	sb.WriteString("Top Instructions:\n")
	for i, stat := range s.GetTopInstructions(10) {
		pct := float64(stat.Count) / float64(s.TotalInstructions) * 100
		sb.WriteString(fmt.Sprintf("  %2d. %-8s %8d (%.1f%%)\n", i+1, stat.Mnemonic, stat.Count, pct))
	}
	return sb.String()
}

// mnemonicFor returns a short display name for an opcode/field pair,
// covering the instruction families the machine dispatches on.
func mnemonicFor(opcode, field int) string {
	switch {
	case opcode == 0:
		return "NOP"
	case opcode >= 1 && opcode <= 4:
		return [...]string{"ADD", "SUB", "MUL", "DIV"}[opcode-1]
	case opcode == 5:
		return [...]string{"NUM", "CHAR", "HLT"}[field%3]
	case opcode == 6:
		return [...]string{"SLA", "SRA", "SLAX", "SRAX", "SLC", "SRC"}[field%6]
	case opcode == 7:
		return "MOVE"
	case opcode >= 8 && opcode <= 23:
		return loadMnemonic(opcode - 8)
	case opcode >= 24 && opcode <= 33:
		return storeMnemonic(opcode - 24)
	case opcode >= 34 && opcode <= 38:
		return [...]string{"JBUS", "IOC", "IN", "OUT", "JRED"}[opcode-34]
	case opcode == 39:
		return [...]string{"JMP", "JSJ", "JOV", "JNOV", "JL", "JE", "JG", "JGE", "JNE", "JLE"}[field%10]
	case opcode >= 40 && opcode <= 47:
		return "J" + regSlotName(opcode-40) + [...]string{"N", "Z", "P", "NN", "NZ", "NP"}[field%6]
	case opcode >= 48 && opcode <= 55:
		return [...]string{"ENT", "ENN", "INC", "DEC"}[field%4] + regSlotName(opcode-48)
	case opcode >= 56 && opcode <= 63:
		return "CMP" + regSlotName(opcode-56)
	default:
		return fmt.Sprintf("C%d/%d", opcode, field)
	}
}

// loadMnemonic maps a 0..15 offset from opcode 8 to LDA..LDX, LDAN..LDXN.
func loadMnemonic(offset int) string {
	negated := offset >= 8
	slot := offset % 8
	name := "LD" + regSlotName(slot)
	if negated {
		name += "N"
	}
	return name
}

// storeMnemonic maps a 0..9 offset from opcode 24 to STA..STX, STJ, STZ.
func storeMnemonic(offset int) string {
	switch offset {
	case 8:
		return "STJ"
	case 9:
		return "STZ"
	default:
		return "ST" + regSlotName(offset)
	}
}

func regSlotName(slot int) string {
	switch {
	case slot == 0:
		return "A"
	case slot >= 1 && slot <= 6:
		return fmt.Sprintf("%d", slot)
	case slot == 7:
		return "X"
	}
	return "?"
}

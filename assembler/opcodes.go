package assembler

import "fmt"

// OpcodeEntry is a mnemonic's opcode and default field, used when the
// source line has no explicit (L:R) or numeric field override.
type OpcodeEntry struct {
	C int
	F int
}

// regSuffixes lists the six index-register name suffixes in register
// order 1..6, used to generate the per-register mnemonic families.
var regSuffixes = [6]string{"1", "2", "3", "4", "5", "6"}

var opcodeTable = buildOpcodeTable()

// buildOpcodeTable constructs the full mnemonic -> (C, default F) table,
// including the per-register families for I1..I6 and X that shift opcode
// and/or mnemonic suffix in lockstep.
func buildOpcodeTable() map[string]OpcodeEntry {
	t := make(map[string]OpcodeEntry)

	t["NOP"] = OpcodeEntry{0, 0}
	t["ADD"] = OpcodeEntry{1, 5}
	t["SUB"] = OpcodeEntry{2, 5}
	t["MUL"] = OpcodeEntry{3, 5}
	t["DIV"] = OpcodeEntry{4, 5}

	t["NUM"] = OpcodeEntry{5, 0}
	t["CHAR"] = OpcodeEntry{5, 1}
	t["HLT"] = OpcodeEntry{5, 2}

	t["SLA"] = OpcodeEntry{6, 0}
	t["SRA"] = OpcodeEntry{6, 1}
	t["SLAX"] = OpcodeEntry{6, 2}
	t["SRAX"] = OpcodeEntry{6, 3}
	t["SLC"] = OpcodeEntry{6, 4}
	t["SRC"] = OpcodeEntry{6, 5}

	t["MOVE"] = OpcodeEntry{7, 1}

	// LDA..LDX / LD1..LD6, and their negated LD*N counterparts.
	t["LDA"] = OpcodeEntry{8, 5}
	for i, suf := range regSuffixes {
		t["LD"+suf] = OpcodeEntry{9 + i, 5}
	}
	t["LDX"] = OpcodeEntry{15, 5}
	t["LDAN"] = OpcodeEntry{16, 5}
	for i, suf := range regSuffixes {
		t["LD"+suf+"N"] = OpcodeEntry{17 + i, 5}
	}
	t["LDXN"] = OpcodeEntry{23, 5}

	// STA..STX / ST1..ST6, STJ, STZ.
	t["STA"] = OpcodeEntry{24, 5}
	for i, suf := range regSuffixes {
		t["ST"+suf] = OpcodeEntry{25 + i, 5}
	}
	t["STX"] = OpcodeEntry{31, 5}
	t["STJ"] = OpcodeEntry{32, 2} // (0:2)
	t["STZ"] = OpcodeEntry{33, 5}

	t["JBUS"] = OpcodeEntry{34, 0}
	t["IOC"] = OpcodeEntry{35, 0}
	t["IN"] = OpcodeEntry{36, 0}
	t["OUT"] = OpcodeEntry{37, 0}
	t["JRED"] = OpcodeEntry{38, 0}

	jumpFields := map[string]int{
		"JMP": 0, "JSJ": 1, "JOV": 2, "JNOV": 3,
		"JL": 4, "JE": 5, "JG": 6, "JGE": 7, "JNE": 8, "JLE": 9,
	}
	for name, f := range jumpFields {
		t[name] = OpcodeEntry{39, f}
	}

	signFields := map[string]int{"N": 0, "Z": 1, "P": 2, "NN": 3, "NZ": 4, "NP": 5}
	for suffix, f := range signFields {
		t["JA"+suffix] = OpcodeEntry{40, f}
		t["JX"+suffix] = OpcodeEntry{47, f}
	}
	for i, suf := range regSuffixes {
		for suffix, f := range signFields {
			t["J"+suf+suffix] = OpcodeEntry{41 + i, f}
		}
	}

	addrFields := map[string]int{"ENT": 0, "ENN": 1, "INC": 2, "DEC": 3}
	for prefix, f := range addrFields {
		t[prefix+"A"] = OpcodeEntry{48, f}
		t[prefix+"X"] = OpcodeEntry{55, f}
	}
	for i, suf := range regSuffixes {
		for prefix, f := range addrFields {
			t[prefix+suf] = OpcodeEntry{49 + i, f}
		}
	}

	t["CMPA"] = OpcodeEntry{56, 5}
	for i, suf := range regSuffixes {
		t["CMP"+suf] = OpcodeEntry{57 + i, 5}
	}
	t["CMPX"] = OpcodeEntry{63, 5}

	return t
}

// LookupOpcode returns the (C, default F) pair for a mnemonic, or an error
// if the mnemonic is not a known instruction.
func LookupOpcode(mnemonic string) (OpcodeEntry, error) {
	entry, ok := opcodeTable[mnemonic]
	if !ok {
		return OpcodeEntry{}, fmt.Errorf("unknown mnemonic %q", mnemonic)
	}
	return entry, nil
}

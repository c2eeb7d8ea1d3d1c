package vm

// Instruction is the decoded form of a Word interpreted as an instruction:
// sign, address AA (0..4095), index I (0..6), field F (0..63), opcode C (0..63).
type Instruction struct {
	Sign Sign
	AA   int
	I    int
	F    int
	C    int
}

// DecodeInstruction unpacks a Word into its instruction fields.
func DecodeInstruction(w Word) Instruction {
	return Instruction{
		Sign: w.Sign,
		AA:   w.Bytes[0]*ByteModulus + w.Bytes[1],
		I:    w.Bytes[2],
		F:    w.Bytes[3],
		C:    w.Bytes[4],
	}
}

// EncodeInstruction packs an Instruction back into a Word.
func EncodeInstruction(inst Instruction) Word {
	return Word{
		Sign: inst.Sign,
		Bytes: [5]int{
			inst.AA / ByteModulus,
			inst.AA % ByteModulus,
			inst.I,
			inst.F,
			inst.C,
		},
	}
}

// EffectiveAddressIndexed computes the signed effective address M for an
// instruction given the current value of the indexed register (0 if I==0).
func EffectiveAddressIndexed(inst Instruction, indexValue int64) int64 {
	aa := int64(inst.AA)
	if inst.Sign == Negative {
		aa = -aa
	}
	return aa + indexValue
}

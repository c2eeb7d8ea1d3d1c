package vm

import "testing"

func TestDecodeEncodeInstruction_RoundTrip(t *testing.T) {
	w := MustNewWord(Positive, [5]int{0, 7, 2, 5, 8}) // LDA 7,2(0:5)

	inst := DecodeInstruction(w)
	if inst.AA != 7 {
		t.Errorf("AA = %d, want 7", inst.AA)
	}
	if inst.I != 2 {
		t.Errorf("I = %d, want 2", inst.I)
	}
	if inst.F != 5 {
		t.Errorf("F = %d, want 5", inst.F)
	}
	if inst.C != 8 {
		t.Errorf("C = %d, want 8", inst.C)
	}

	got := EncodeInstruction(inst)
	if !got.Equal(w) {
		t.Errorf("EncodeInstruction(DecodeInstruction(w)) = %+v, want %+v", got, w)
	}
}

func TestDecodeInstruction_NegativeAddress(t *testing.T) {
	// AA = -2000, encoded as bytes[0]*64+bytes[1] = 2000 with a negative sign.
	w := MustNewWord(Negative, [5]int{2000 / ByteModulus, 2000 % ByteModulus, 0, 5, 8})

	inst := DecodeInstruction(w)
	if inst.AA != 2000 {
		t.Errorf("AA = %d, want 2000 (magnitude only)", inst.AA)
	}
	if inst.Sign != Negative {
		t.Errorf("Sign = %v, want Negative", inst.Sign)
	}
}

func TestEffectiveAddressIndexed_NoIndex(t *testing.T) {
	inst := Instruction{Sign: Positive, AA: 2000, I: 0, F: 5, C: 8}

	if got := EffectiveAddressIndexed(inst, 0); got != 2000 {
		t.Errorf("effective address = %d, want 2000", got)
	}
}

func TestEffectiveAddressIndexed_Indexed(t *testing.T) {
	inst := Instruction{Sign: Positive, AA: 2000, I: 1, F: 5, C: 8}

	if got := EffectiveAddressIndexed(inst, 10); got != 2010 {
		t.Errorf("effective address = %d, want 2010", got)
	}
}

func TestEffectiveAddressIndexed_NegativeAddress(t *testing.T) {
	inst := Instruction{Sign: Negative, AA: 2000, I: 1, F: 5, C: 8}

	if got := EffectiveAddressIndexed(inst, 5); got != -1995 {
		t.Errorf("effective address = %d, want -1995", got)
	}
}

func TestDecodeField_Table(t *testing.T) {
	tests := []struct {
		f    int
		l, r int
	}{
		{0, 0, 0},
		{5, 0, 5},
		{8, 1, 0},
		{13, 1, 5},
		{18, 2, 2},
	}
	for _, tt := range tests {
		got := DecodeField(tt.f)
		if got.L != tt.l || got.R != tt.r {
			t.Errorf("DecodeField(%d) = {%d %d}, want {%d %d}", tt.f, got.L, got.R, tt.l, tt.r)
		}
	}
}

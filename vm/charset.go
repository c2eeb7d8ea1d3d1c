package vm

import "strings"

// charTable maps MIX character codes 0..63 to their character, per
// TAOCP Vol.1 table 2: 0=space, 1-26=A-Z, 30-39=0-9, 40-55=punctuation,
// 56-63=implementation-chosen extras.
var charTable = [ByteModulus]byte{
	0:  ' ',
	30: '0', 31: '1', 32: '2', 33: '3', 34: '4',
	35: '5', 36: '6', 37: '7', 38: '8', 39: '9',
	40: '.', 41: ',', 42: '(', 43: ')', 44: '+',
	45: '-', 46: '*', 47: '/', 48: '=', 49: '$',
	50: '<', 51: '>', 52: '@', 53: ';', 54: ':', 55: '\'',
	56: '?', 57: '!', 58: '"', 59: '#', 60: '%', 61: '&', 62: '_', 63: '~',
}

var runeToCode map[rune]int

func init() {
	runeToCode = make(map[rune]int, ByteModulus)
	for code, ch := range charTable {
		if code == 0 || ch != 0 {
			runeToCode[rune(ch)] = code
		}
	}
	for c := 'A'; c <= 'Z'; c++ {
		runeToCode[c] = 1 + int(c-'A')
		runeToCode[c+('a'-'A')] = 1 + int(c-'A')
	}
}

// CharCode maps a character to its MIX code (0..63). Unknown input
// characters map to 0 (space). Letters are case-folded.
func CharCode(ch rune) int {
	if code, ok := runeToCode[ch]; ok {
		return code
	}
	return 0
}

// CodeChar maps a MIX code (0..63) to its character. Codes outside the
// table decode to space.
func CodeChar(code int) byte {
	if code < 0 || code >= ByteModulus {
		return ' '
	}
	if c := charTable[code]; c != 0 {
		return c
	}
	if code == 0 {
		return ' '
	}
	return ' '
}

// FromAlf builds a positive Word from up to five characters, right-padded
// with spaces. Inputs longer than five characters fail with AlfError.
func FromAlf(s string) (Word, error) {
	if len(s) > 5 {
		return Word{}, &AlfError{Input: s}
	}
	padded := s + strings.Repeat(" ", 5-len(s))
	var bytes [5]int
	for i, ch := range padded {
		bytes[i] = CharCode(ch)
	}
	return Word{Sign: Positive, Bytes: bytes}, nil
}

// ToAlf renders a Word's five bytes as their character-table string, the
// inverse of FromAlf (sign is ignored).
func (w Word) ToAlf() string {
	buf := make([]byte, 5)
	for i, b := range w.Bytes {
		buf[i] = CodeChar(b)
	}
	return string(buf)
}

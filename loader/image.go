package loader

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/knuth-mix/mix-emulator/vm"
)

// WriteImage serializes a complete memory image (vm.MemorySize Words, in
// address order) to w: one sign byte (0 = +, 1 = -) followed by five
// base-64 bytes, per word. If withStartAddress, a little-endian 16-bit
// start address precedes the word records.
func WriteImage(w io.Writer, image map[int]vm.Word, startAddress int, withStartAddress bool) error {
	if withStartAddress {
		if err := binary.Write(w, binary.LittleEndian, uint16(startAddress)); err != nil {
			return err
		}
	}

	buf := make([]byte, 6)
	for addr := 0; addr < vm.MemorySize; addr++ {
		word, ok := image[addr]
		if !ok {
			word = vm.ZeroWord
		}
		if word.Sign == vm.Negative {
			buf[0] = 1
		} else {
			buf[0] = 0
		}
		for i, b := range word.Bytes {
			buf[1+i] = byte(b)
		}
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("writing memory image: %w", err)
		}
	}
	return nil
}

// ReadImage deserializes a memory image written by WriteImage. withStartAddress
// must match how the image was written.
func ReadImage(r io.Reader, withStartAddress bool) (map[int]vm.Word, int, error) {
	startAddress := 0
	if withStartAddress {
		var addr uint16
		if err := binary.Read(r, binary.LittleEndian, &addr); err != nil {
			return nil, 0, fmt.Errorf("reading start address: %w", err)
		}
		startAddress = int(addr)
	}

	image := make(map[int]vm.Word, vm.MemorySize)
	buf := make([]byte, 6)
	for addr := 0; addr < vm.MemorySize; addr++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, 0, fmt.Errorf("reading word at address %d: %w", addr, err)
		}
		sign := vm.Positive
		if buf[0] == 1 {
			sign = vm.Negative
		}
		var bytes [5]int
		for i := 0; i < 5; i++ {
			bytes[i] = int(buf[1+i])
		}
		word, err := vm.NewWord(sign, bytes)
		if err != nil {
			return nil, 0, fmt.Errorf("decoding word at address %d: %w", addr, err)
		}
		if !word.IsZero() || word.Sign == vm.Negative {
			image[addr] = word
		}
	}
	return image, startAddress, nil
}

package disasm

import (
	"fmt"
	"io"

	"github.com/sword-jin/shinobu8/internal/chip8"
)

// WriteListing writes an assembly listing of rom to w. The ROM is scanned
// linearly from the program start address in two byte steps, words that do
// not decode to an instruction become data lines. Sprite data that happens
// to match an instruction encoding is listed as code, a linear scan cannot
// tell the two apart. Trailing zero padding is skipped.
func WriteListing(w io.Writer, rom []byte) error {
	if _, err := fmt.Fprintf(w, "; CHIP-8 ROM Disassembly\n"); err != nil {
		return fmt.Errorf("writing header comment: %w", err)
	}
	if _, err := fmt.Fprintf(w, "; Code base address: $%04X\n", chip8.ProgramStart); err != nil {
		return fmt.Errorf("writing code base address: %w", err)
	}
	if _, err := fmt.Fprintf(w, "; Program starts at $200 in CHIP-8 memory space\n\n"); err != nil {
		return fmt.Errorf("writing memory space comment: %w", err)
	}
	if _, err := fmt.Fprintf(w, ".org $200\n\n"); err != nil {
		return fmt.Errorf("writing org directive: %w", err)
	}

	end := listingEnd(rom)
	for offset := 0; offset < end; offset += 2 {
		if err := writeListingLine(w, rom, offset, end); err != nil {
			return err
		}
	}

	return nil
}

// writeListingLine writes the code or data line for the word at offset.
func writeListingLine(w io.Writer, rom []byte, offset, end int) error {
	address := chip8.ProgramStart + offset

	if offset+1 >= end {
		line := fmt.Sprintf("    .byte $%02X", rom[offset])
		comment := fmt.Sprintf("$%04X  %02X", address, rom[offset])
		if _, err := fmt.Fprintf(w, "%-32s ; %s\n", line, comment); err != nil {
			return fmt.Errorf("writing trailing data byte: %w", err)
		}
		return nil
	}

	b1 := rom[offset]
	b2 := rom[offset+1]
	word := uint16(b1)<<8 | uint16(b2)

	var line string
	if code, ok := Format(word); ok {
		line = "    " + code
	} else {
		line = fmt.Sprintf("    .byte $%02X, $%02X", b1, b2)
	}

	comment := fmt.Sprintf("$%04X  %02X %02X", address, b1, b2)
	if _, err := fmt.Fprintf(w, "%-32s ; %s\n", line, comment); err != nil {
		return fmt.Errorf("writing offset %04x: %w", address, err)
	}
	return nil
}

// listingEnd returns the ROM length with trailing zero padding removed.
func listingEnd(rom []byte) int {
	for i := len(rom) - 1; i >= 0; i-- {
		if rom[i] != 0 {
			return i + 1
		}
	}
	return 0
}

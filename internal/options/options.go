// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Rom    string // ROM file to run
	Output string // listing output file, only used in disassembly mode
}

// Flags contains behavior options.
type Flags struct {
	Speed  int  // emulation speed in instructions per second
	Trace  bool // log every executed instruction
	Disasm bool // print a ROM listing instead of running
	Debug  bool // enable debug logging
	Quiet  bool // quiet mode
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
}

// Package emulator handles ROM loading and emulation session processing
package emulator

import (
	"context"
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"github.com/sword-jin/shinobu8/internal/chip8"
	"github.com/sword-jin/shinobu8/internal/disasm"
	"github.com/sword-jin/shinobu8/internal/loader"
	"github.com/sword-jin/shinobu8/internal/options"
	"github.com/sword-jin/shinobu8/internal/tui"
)

// Run handles the complete emulation workflow: it loads the ROM file,
// prints a listing in disassembly mode or installs the program into a
// fresh machine and hands control to the terminal frontend.
func Run(ctx context.Context, logger *log.Logger, opts options.Program) error {
	rom, err := loader.New().Load(opts.Rom)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	printInfo(logger, opts, len(rom))

	if opts.Disasm {
		return writeListing(opts, rom)
	}

	vm := chip8.New()
	if err := vm.Load(rom); err != nil {
		return fmt.Errorf("installing program: %w", err)
	}

	if opts.Trace {
		vm.SetTracer(traceInstruction(logger))
	}

	if err := tui.New(vm, opts.Speed, logger).Run(ctx); err != nil {
		return fmt.Errorf("running machine: %w", err)
	}

	logger.Info("Machine stopped", log.Uint64("steps", vm.Steps()))
	return nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("shinobu8", log.String("version", buildinfo.Version(version, commit, date)))
}

// printInfo prints information about the ROM file to process.
func printInfo(logger *log.Logger, opts options.Program, size int) {
	if opts.Quiet {
		return
	}

	logger.Info("Processing Chip-8 ROM",
		log.String("file", opts.Rom),
		log.Int("size", size),
		log.Int("speed", opts.Speed),
	)
}

// writeListing writes the ROM listing to the output file, or to the
// console if no file name was given.
func writeListing(opts options.Program, rom []byte) error {
	if opts.Output == "" {
		return disasm.WriteListing(os.Stdout, rom)
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}

	if err := disasm.WriteListing(file, rom); err != nil {
		_ = file.Close()
		return fmt.Errorf("writing listing: %w", err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}
	return nil
}

// traceInstruction returns a tracer callback that logs every executed
// instruction with its address, raw opcode and assembly form.
func traceInstruction(logger *log.Logger) func(pc, opcode uint16) {
	return func(pc, opcode uint16) {
		code, ok := disasm.Format(opcode)
		if !ok {
			code = "???"
		}

		logger.Debug("Trace",
			log.Uint16("pc", pc),
			log.Hex("opcode", opcode),
			log.String("code", code),
		)
	}
}

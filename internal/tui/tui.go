// Package tui implements the terminal frontend of the virtual machine.
//
// The frontend owns the terminal for the duration of a session: it
// switches it to raw mode, renders the 64x32 display into the alternate
// screen buffer and polls stdin for keypad input. Emulation speed is
// controlled by stepping the machine a fixed number of times per video
// frame, the delay and sound timers tick once per frame.
package tui

import (
	"context"
	"fmt"
	"os"
	"sync"
	"syscall"
	"time"

	"github.com/retroenv/retrogolib/log"
	"github.com/sword-jin/shinobu8/internal/chip8"
	"golang.org/x/term"
)

const (
	// frameRate is the number of video frames and timer ticks per second.
	frameRate = 60

	// keyHoldDuration is how long a pressed key stays down. Terminals
	// report key presses only, releases have to be synthesized.
	keyHoldDuration = 100 * time.Millisecond
)

// TUI runs a virtual machine with a terminal as display and keypad.
type TUI struct {
	vm     *chip8.VM
	logger *log.Logger

	stepsPerFrame int

	fd           int
	oldTermState *term.State
	nonblockSet  bool
	restored     sync.Once

	pressedAt [16]time.Time
	beeping   bool
}

// New creates a terminal frontend for the given virtual machine.
// Speed is the emulation speed in instructions per second, it is rounded
// down to a multiple of the frame rate.
func New(vm *chip8.VM, speed int, logger *log.Logger) *TUI {
	stepsPerFrame := speed / frameRate
	if stepsPerFrame < 1 {
		stepsPerFrame = 1
	}

	return &TUI{
		vm:            vm,
		logger:        logger,
		stepsPerFrame: stepsPerFrame,
	}
}

// Run drives the machine until the quit key is pressed, the context is
// cancelled or execution fails. The terminal is restored before returning.
func (t *TUI) Run(ctx context.Context) error {
	t.logger.Debug("Starting terminal frontend",
		log.Int("speed", t.stepsPerFrame*frameRate))

	if err := t.setupTerminal(); err != nil {
		return err
	}
	defer t.restoreTerminal()

	ticker := time.NewTicker(time.Second / frameRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.vm.Quit()
			return ctx.Err()

		case now := <-ticker.C:
			quit, err := t.pollInput(now)
			if err != nil {
				return err
			}
			if quit {
				t.vm.Quit()
				return nil
			}
			t.releaseStaleKeys(now)

			for range t.stepsPerFrame {
				if err := t.vm.Step(); err != nil {
					return fmt.Errorf("executing instruction: %w", err)
				}
			}

			t.vm.TickTimers()
			t.render()
		}
	}
}

// setupTerminal switches the terminal to raw mode with non-blocking reads
// and enters the alternate screen buffer.
func (t *TUI) setupTerminal() error {
	t.fd = int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(t.fd)
	if err != nil {
		return fmt.Errorf("setting terminal raw mode: %w", err)
	}
	t.oldTermState = oldState

	if err := syscall.SetNonblock(t.fd, true); err != nil {
		_ = term.Restore(t.fd, t.oldTermState)
		t.oldTermState = nil
		return fmt.Errorf("setting nonblocking stdin: %w", err)
	}
	t.nonblockSet = true

	fmt.Print("\x1b[?1049h\x1b[?25l\x1b[2J")
	return nil
}

// restoreTerminal leaves the alternate screen buffer and restores the
// terminal to its previous state.
func (t *TUI) restoreTerminal() {
	t.restored.Do(func() {
		fmt.Print("\x1b[?25h\x1b[?1049l")

		if t.nonblockSet {
			_ = syscall.SetNonblock(t.fd, false)
			t.nonblockSet = false
		}
		if t.oldTermState != nil {
			_ = term.Restore(t.fd, t.oldTermState)
			t.oldTermState = nil
		}
	})
}

// pollInput drains all pending terminal input and applies it to the
// keypad. It reports whether a quit key was pressed.
func (t *TUI) pollInput(now time.Time) (bool, error) {
	var buf [64]byte
	var data []byte

	for {
		n, err := syscall.Read(t.fd, buf[:])
		if n > 0 {
			data = append(data, buf[:n]...)
		}
		if err == syscall.EAGAIN || err == syscall.EWOULDBLOCK {
			break
		}
		if err != nil {
			return false, fmt.Errorf("reading terminal input: %w", err)
		}
		if n < len(buf) {
			break
		}
	}

	return t.applyInput(data, now), nil
}

// applyInput presses the keypad keys found in the input bytes. A lone
// escape byte or Ctrl-C quits, escape sequences for cursor and function
// keys are discarded.
func (t *TUI) applyInput(data []byte, now time.Time) bool {
	for i := 0; i < len(data); i++ {
		switch b := data[i]; b {
		case 0x03: // Ctrl-C, raw mode does not deliver it as a signal
			return true

		case 0x1b:
			if i+1 < len(data) && data[i+1] == '[' {
				// skip the sequence up to its final byte (0x40-0x7E)
				i += 2
				for i < len(data) && (data[i] < 0x40 || data[i] > 0x7E) {
					i++
				}
				continue
			}
			return true

		default:
			if key, ok := keypadKey(b); ok {
				t.vm.KeyDown(key)
				t.pressedAt[key] = now
			}
		}
	}
	return false
}

// releaseStaleKeys releases keys whose hold time expired.
func (t *TUI) releaseStaleKeys(now time.Time) {
	for key := range len(t.pressedAt) {
		if t.pressedAt[key].IsZero() {
			continue
		}
		if now.Sub(t.pressedAt[key]) > keyHoldDuration {
			t.vm.KeyUp(uint8(key))
			t.pressedAt[key] = time.Time{}
		}
	}
}

// render draws the current frame and rings the terminal bell when the
// sound timer becomes active.
func (t *TUI) render() {
	frame := renderFrame(t.vm.Display())

	if t.vm.SoundTimer() > 0 {
		if !t.beeping {
			frame += "\a"
			t.beeping = true
		}
	} else {
		t.beeping = false
	}

	fmt.Print(frame)
}

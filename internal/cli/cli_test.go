package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/sword-jin/shinobu8/internal/options"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Program
	}{
		{
			name: "default flags",
			args: []string{"prog", "game.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Rom: "game.ch8"},
				Flags:      options.Flags{Speed: DefaultSpeed},
			},
		},
		{
			name: "speed flag",
			args: []string{"prog", "-speed", "1000", "game.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Rom: "game.ch8"},
				Flags:      options.Flags{Speed: 1000},
			},
		},
		{
			name: "trace flag",
			args: []string{"prog", "-trace", "game.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Rom: "game.ch8"},
				Flags:      options.Flags{Speed: DefaultSpeed, Trace: true},
			},
		},
		{
			name: "disassemble flag",
			args: []string{"prog", "-d", "game.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Rom: "game.ch8"},
				Flags:      options.Flags{Speed: DefaultSpeed, Disasm: true},
			},
		},
		{
			name: "disassemble to file",
			args: []string{"prog", "-d", "-o", "game.asm", "game.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Rom: "game.ch8", Output: "game.asm"},
				Flags:      options.Flags{Speed: DefaultSpeed, Disasm: true},
			},
		},
		{
			name: "all flags",
			args: []string{"prog", "-speed", "60", "-trace", "-d", "-debug", "-q", "game.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Rom: "game.ch8"},
				Flags: options.Flags{
					Speed:  60,
					Trace:  true,
					Disasm: true,
					Debug:  true,
					Quiet:  true,
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			got, err := ParseFlags()
			assert.NoError(t, err)
			assert.Equal(t, tt.want.Rom, got.Rom)
			assert.Equal(t, tt.want.Output, got.Output)
			assert.Equal(t, tt.want.Speed, got.Speed)
			assert.Equal(t, tt.want.Trace, got.Trace)
			assert.Equal(t, tt.want.Disasm, got.Disasm)
			assert.Equal(t, tt.want.Debug, got.Debug)
			assert.Equal(t, tt.want.Quiet, got.Quiet)
		})
	}
}

func TestParseFlagsMissingROM(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })

	os.Args = []string{"prog"}

	_, err := ParseFlags()
	assert.Error(t, err)

	var usageErr *UsageError
	assert.True(t, errors.As(err, &usageErr))
}

func TestParseFlagsArgumentAfterROM(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })

	os.Args = []string{"prog", "game.ch8", "-trace"}

	_, err := ParseFlags()
	assert.ErrorContains(t, err, "found after ROM file")
}

func TestParseFlagsInvalidSpeed(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })

	os.Args = []string{"prog", "-speed", "0", "game.ch8"}

	_, err := ParseFlags()
	assert.ErrorContains(t, err, "unsupported speed")
}

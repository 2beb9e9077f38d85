package register

import (
	"math"
	"math/rand/v2"
	"strings"
	"testing"
)

var commandAccessors = map[uint8]func(Command) bool{
	bitInterruptDisable:      Command.InterruptsDisabled,
	bitFastBackToBackEnable:  Command.FastBackToBackEnabled,
	bitSerrEnable:            Command.SerrEnabled,
	bitParityErrorResponse:   Command.ParityErrorResponse,
	bitVgaPaletteSnoop:       Command.VgaPaletteSnoop,
	bitMemoryWriteInvalidate: Command.MemoryWriteAndInvalidateEnabled,
	bitSpecialCycles:         Command.MonitorSpecialCycles,
	bitBusMaster:             Command.BusMasteringEnabled,
	bitMemorySpace:           Command.MemorySpaceAccessEnabled,
	bitIoSpace:               Command.IoSpaceAccessEnabled,
}

func TestCommandBitIsolation(t *testing.T) {
	for v := 0; v <= math.MaxUint16; v++ {
		c := CommandFromRaw(uint16(v))
		if c.Raw() != uint16(v) {
			t.Fatalf("value 0x%04x: raw mismatch 0x%04x", v, c.Raw())
		}
		for pos, fn := range commandAccessors {
			want := v&(1<<pos) != 0
			if got := fn(c); got != want {
				t.Fatalf("value 0x%04x bit %d: want %v got %v", v, pos, want, got)
			}
		}
	}
}

func TestCommandScenario(t *testing.T) {
	c := CommandFromRaw(0b0000_0110_0000_0111)

	want := map[uint8]bool{
		bitIoSpace:              true,
		bitMemorySpace:          true,
		bitBusMaster:            true,
		bitFastBackToBackEnable: true,
		bitInterruptDisable:     true,
	}

	for pos, fn := range commandAccessors {
		if got := fn(c); got != want[pos] {
			t.Errorf("bit %d: want %v got %v", pos, want[pos], got)
		}
	}
}

func TestWriteInfo(t *testing.T) {

	tests := map[string]struct {
		seed uint32
		cmd  uint16
		want uint32
	}{
		"zero_into_ones": {
			seed: 0xFFFFFFFF,
			cmd:  0x0000,
			want: 0xFFFFF880,
		},
		"ones_into_zero": {
			seed: 0x00000000,
			cmd:  0xFFFF,
			want: 0x0000077F,
		},
		"status_half_untouched": {
			seed: 0x02B00000,
			cmd:  0x0407,
			want: 0x02B00407,
		},
		"bit7_preserved": {
			seed: 0x00000080,
			cmd:  0x0003,
			want: 0x00000083,
		},
		"bit7_not_written": {
			seed: 0x00000000,
			cmd:  0x0080,
			want: 0x00000000,
		},
		"reserved_command_bits_kept": {
			seed: 0x0000F800,
			cmd:  0x0100,
			want: 0x0000F900,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			dword := tc.seed
			CommandFromRaw(tc.cmd).WriteInfo(&dword)
			if dword != tc.want {
				t.Errorf("want 0x%08x got 0x%08x", tc.want, dword)
			}
		})
	}
}

// Only bits 0-6 and 8-10 of the seed may change, and they must equal
// the command's bits.
func TestWriteInfoIsolation(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	check := func(seed uint32, cmd uint16) {
		dword := seed
		CommandFromRaw(cmd).WriteInfo(&dword)

		if dword&^CommandWriteMask != seed&^CommandWriteMask {
			t.Fatalf("seed 0x%08x cmd 0x%04x: foreign bits changed: 0x%08x", seed, cmd, dword)
		}
		if dword&CommandWriteMask != uint32(cmd)&CommandWriteMask {
			t.Fatalf("seed 0x%08x cmd 0x%04x: owned bits wrong: 0x%08x", seed, cmd, dword)
		}
	}

	for cmd := 0; cmd <= math.MaxUint16; cmd++ {
		check(rng.Uint32(), uint16(cmd))
	}

	for range 4096 {
		check(rng.Uint32(), uint16(rng.Uint32()))
	}
}

// Writing twice is the same as writing once.
func TestWriteInfoIdempotent(t *testing.T) {
	c := CommandFromRaw(0x0546)
	once := uint32(0xA5A5A5A5)
	c.WriteInfo(&once)
	twice := once
	c.WriteInfo(&twice)
	if once != twice {
		t.Errorf("Expected idempotent write: 0x%08x vs 0x%08x", once, twice)
	}
}

func TestCommandString(t *testing.T) {
	str := CommandFromRaw(0x0004).String()
	for _, want := range []string{
		"CommandRegister{interrupts_disabled: false",
		"bus_mastering_enabled: true",
		"io_space_access_enabled: false}",
	} {
		if !strings.Contains(str, want) {
			t.Errorf("Expected %q in %q", want, str)
		}
	}

	if n := len(CommandFromRaw(0).Fields()); n != 10 {
		t.Errorf("Expected 10 command fields, got %d", n)
	}
}

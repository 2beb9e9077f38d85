package ops

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/prequel-dev/pcireg"
)

type fieldT struct {
	name string
	set  func(*pcireg.CommandBuilder, bool) *pcireg.CommandBuilder
	get  func(pcireg.Command) bool
}

// Short names accepted by --set and --clear, low bit first.
var commandFields = []fieldT{
	{"io", (*pcireg.CommandBuilder).IoSpaceAccess, pcireg.Command.IoSpaceAccessEnabled},
	{"memory", (*pcireg.CommandBuilder).MemorySpaceAccess, pcireg.Command.MemorySpaceAccessEnabled},
	{"master", (*pcireg.CommandBuilder).BusMastering, pcireg.Command.BusMasteringEnabled},
	{"special", (*pcireg.CommandBuilder).MonitorSpecialCycles, pcireg.Command.MonitorSpecialCycles},
	{"mwi", (*pcireg.CommandBuilder).MemoryWriteAndInvalidateEnable, pcireg.Command.MemoryWriteAndInvalidateEnabled},
	{"vga", (*pcireg.CommandBuilder).VgaPaletteSnoop, pcireg.Command.VgaPaletteSnoop},
	{"parity", (*pcireg.CommandBuilder).ParityErrorResponse, pcireg.Command.ParityErrorResponse},
	{"serr", (*pcireg.CommandBuilder).SerrEnable, pcireg.Command.SerrEnabled},
	{"fbb", (*pcireg.CommandBuilder).FastBackToBackEnable, pcireg.Command.FastBackToBackEnabled},
	{"intx", (*pcireg.CommandBuilder).InterruptDisable, pcireg.Command.InterruptsDisabled},
}

func lookupField(name string) (fieldT, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, f := range commandFields {
		if f.name == name {
			return f, true
		}
	}
	return fieldT{}, false
}

func fieldNames() string {
	names := make([]string, 0, len(commandFields))
	for _, f := range commandFields {
		names = append(names, f.name)
	}
	return strings.Join(names, ",")
}

// enabledNames lists the short names of the fields set in cmd.
func enabledNames(cmd pcireg.Command) string {
	var names []string
	for _, f := range commandFields {
		if f.get(cmd) {
			names = append(names, f.name)
		}
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ",")
}

func parseUint(s string, bitSize int) (uint64, error) {
	v, err := strconv.ParseUint(s, 0, bitSize)
	if err != nil {
		return 0, fmt.Errorf("invalid %d-bit value '%s'", bitSize, s)
	}
	return v, nil
}

func parse16(s string) (uint16, error) {
	v, err := parseUint(s, 16)
	return uint16(v), err
}

func parse32(s string) (uint32, error) {
	v, err := parseUint(s, 32)
	return uint32(v), err
}

// editCommand seeds a builder with base, applies set then unset, and builds.
// A name in both lists ends up cleared.
func editCommand(base pcireg.Command, set, unset []string) (pcireg.Command, error) {
	bld := base.Builder()

	apply := func(names []string, on bool) error {
		for _, name := range names {
			f, ok := lookupField(name)
			if !ok {
				return fmt.Errorf("unknown field '%s'; expected one of [%s]", name, fieldNames())
			}
			f.set(bld, on)
		}
		return nil
	}

	if err := apply(set, true); err != nil {
		return 0, err
	}
	if err := apply(unset, false); err != nil {
		return 0, err
	}

	return bld.Build(), nil
}

package register

import "github.com/prequel-dev/pcireg/internal/pkg/bits"

// Command register bits, config offset 0x04.
// Bit 7 (address/data stepping) and bits 11-15 are not owned here.
const (
	bitIoSpace               = 0
	bitMemorySpace           = 1
	bitBusMaster             = 2
	bitSpecialCycles         = 3
	bitMemoryWriteInvalidate = 4
	bitVgaPaletteSnoop       = 5
	bitParityErrorResponse   = 6
	bitSerrEnable            = 8
	bitFastBackToBackEnable  = 9
	bitInterruptDisable      = 10

	lowFieldLo  = bitIoSpace
	lowFieldHi  = bitParityErrorResponse
	highFieldLo = bitSerrEnable
	highFieldHi = bitInterruptDisable
)

const commandName = "CommandRegister"

// CommandWriteMask covers the bits WriteInfo overwrites: 0-6 and 8-10.
const CommandWriteMask uint32 = 0x077F

// Command is a read-only view of the PCI Command register.
type Command uint16

// CommandFromRaw wraps a value freshly read from configuration space.
// Callers constructing a new value should use a CommandBuilder.
func CommandFromRaw(raw uint16) Command { return Command(raw) }

func (c Command) Raw() uint16 { return uint16(c) }

// Builder returns a builder seeded with this register's current value,
// so that a subset of fields can be changed on a known-good baseline.
func (c Command) Builder() *CommandBuilder {
	return &CommandBuilder{acc: uint16(c)}
}

// WriteInfo overwrites bits 0-6 and 8-10 of the combined Command/Status
// doubleword with this register's bits.  Bit 7 and bits 11-31, which
// include the whole Status half, are left as they were.
func (c Command) WriteInfo(dword *uint32) {
	v := uint32(c)
	*dword = bits.SetRange32(*dword, highFieldLo, highFieldHi, bits.Range32(v, highFieldLo, highFieldHi))
	*dword = bits.SetRange32(*dword, lowFieldLo, lowFieldHi, bits.Range32(v, lowFieldLo, lowFieldHi))
}

// Assertion of INTx# is disabled.
func (c Command) InterruptsDisabled() bool { return c.isSet(bitInterruptDisable) }

// The device may generate fast back-to-back transactions to other agents;
// otherwise only to the same agent.
func (c Command) FastBackToBackEnabled() bool { return c.isSet(bitFastBackToBackEnable) }

// The SERR# driver is enabled.
func (c Command) SerrEnabled() bool { return c.isSet(bitSerrEnable) }

// The device takes its normal action on a parity error and asserts PERR#.
// When clear it only sets Status bit 15 and carries on.
func (c Command) ParityErrorResponse() bool { return c.isSet(bitParityErrorResponse) }

// Palette register writes are snooped rather than answered.
func (c Command) VgaPaletteSnoop() bool { return c.isSet(bitVgaPaletteSnoop) }

// The device may issue Memory Write and Invalidate instead of Memory Write.
func (c Command) MemoryWriteAndInvalidateEnabled() bool {
	return c.isSet(bitMemoryWriteInvalidate)
}

// Special Cycle operations are monitored.
func (c Command) MonitorSpecialCycles() bool { return c.isSet(bitSpecialCycles) }

// The device may act as a bus master.
func (c Command) BusMasteringEnabled() bool { return c.isSet(bitBusMaster) }

// The device responds to Memory Space accesses.
func (c Command) MemorySpaceAccessEnabled() bool { return c.isSet(bitMemorySpace) }

// The device responds to I/O Space accesses.
func (c Command) IoSpaceAccessEnabled() bool { return c.isSet(bitIoSpace) }

func (c Command) Fields() []Field {
	return []Field{
		bitField("interrupts_disabled", bitInterruptDisable, c.InterruptsDisabled()),
		bitField("fast_back_to_back_enabled", bitFastBackToBackEnable, c.FastBackToBackEnabled()),
		bitField("serr_enabled", bitSerrEnable, c.SerrEnabled()),
		bitField("parity_error_response", bitParityErrorResponse, c.ParityErrorResponse()),
		bitField("vga_palette_snoop", bitVgaPaletteSnoop, c.VgaPaletteSnoop()),
		bitField("memory_write_and_invalidate_enabled", bitMemoryWriteInvalidate, c.MemoryWriteAndInvalidateEnabled()),
		bitField("monitor_special_cycles", bitSpecialCycles, c.MonitorSpecialCycles()),
		bitField("bus_mastering_enabled", bitBusMaster, c.BusMasteringEnabled()),
		bitField("memory_space_access_enabled", bitMemorySpace, c.MemorySpaceAccessEnabled()),
		bitField("io_space_access_enabled", bitIoSpace, c.IoSpaceAccessEnabled()),
	}
}

func (c Command) String() string {
	return formatFields(commandName, c.Fields())
}

func (c Command) isSet(pos uint8) bool {
	return bits.Test16(uint16(c), pos)
}

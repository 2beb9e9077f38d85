package register

import "github.com/prequel-dev/pcireg/internal/pkg/bits"

// CommandBuilder accumulates Command register bits.
//
// The zero value, like NewCommandBuilder, starts with every field
// disabled.  Each setter touches exactly its own bit and returns the
// builder for chaining.  Build finalizes the builder; using it again
// afterwards panics.
type CommandBuilder struct {
	acc   uint16
	built bool
}

func NewCommandBuilder() *CommandBuilder {
	return &CommandBuilder{}
}

// Disable assertion of INTx#.
func (b *CommandBuilder) InterruptDisable(disable bool) *CommandBuilder {
	return b.set(bitInterruptDisable, disable)
}

// Allow fast back-to-back transactions to other agents.
func (b *CommandBuilder) FastBackToBackEnable(enable bool) *CommandBuilder {
	return b.set(bitFastBackToBackEnable, enable)
}

// Enable the SERR# driver.
func (b *CommandBuilder) SerrEnable(enable bool) *CommandBuilder {
	return b.set(bitSerrEnable, enable)
}

// Take normal action, asserting PERR#, on parity errors.
func (b *CommandBuilder) ParityErrorResponse(response bool) *CommandBuilder {
	return b.set(bitParityErrorResponse, response)
}

// Snoop palette register writes instead of answering them.
func (b *CommandBuilder) VgaPaletteSnoop(snoop bool) *CommandBuilder {
	return b.set(bitVgaPaletteSnoop, snoop)
}

// Allow Memory Write and Invalidate.
func (b *CommandBuilder) MemoryWriteAndInvalidateEnable(enable bool) *CommandBuilder {
	return b.set(bitMemoryWriteInvalidate, enable)
}

// Monitor Special Cycle operations.
func (b *CommandBuilder) MonitorSpecialCycles(cycles bool) *CommandBuilder {
	return b.set(bitSpecialCycles, cycles)
}

// Allow the device to act as a bus master.
func (b *CommandBuilder) BusMastering(mastering bool) *CommandBuilder {
	return b.set(bitBusMaster, mastering)
}

// Respond to Memory Space accesses.
func (b *CommandBuilder) MemorySpaceAccess(access bool) *CommandBuilder {
	return b.set(bitMemorySpace, access)
}

// Respond to I/O Space accesses.
func (b *CommandBuilder) IoSpaceAccess(access bool) *CommandBuilder {
	return b.set(bitIoSpace, access)
}

// Build returns the accumulated register and finalizes the builder.
func (b *CommandBuilder) Build() Command {
	b.checkLive()
	b.built = true
	return Command(b.acc)
}

func (b *CommandBuilder) set(pos uint8, on bool) *CommandBuilder {
	b.checkLive()
	b.acc = bits.Set16(b.acc, pos, on)
	return b
}

func (b *CommandBuilder) checkLive() {
	if b.built {
		panic("pcireg: CommandBuilder used after Build")
	}
}

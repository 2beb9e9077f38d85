package pcireg

import (
	"github.com/prequel-dev/pcireg/internal/pkg/register"
)

// Status is a read-only view of the PCI Status register (offset 0x06).
type Status = register.Status

// Command is a read-only view of the PCI Command register (offset 0x04).
type Command = register.Command

// CommandBuilder accumulates Command bits; see NewCommandBuilder.
type CommandBuilder = register.CommandBuilder

// CommandStatus is the doubleword at offset 0x04 holding both registers.
type CommandStatus = register.CommandStatus

// DevselTiming is the DEVSEL# timing class decoded from Status bits 9-10.
type DevselTiming = register.DevselTiming

// Field is one named entry of a register dump.
type Field = register.Field

const (
	DevselFast   = register.DevselFast
	DevselMedium = register.DevselMedium
	DevselSlow   = register.DevselSlow

	// Bits of the Command/Status doubleword written by Command.WriteInfo.
	CommandWriteMask = register.CommandWriteMask
)

// NewStatus wraps a raw Status register value.  Every 16-bit pattern is accepted.
func NewStatus(raw uint16) Status {
	return register.NewStatus(raw)
}

// NewCommandBuilder returns a builder with every Command field disabled.
func NewCommandBuilder() *CommandBuilder {
	return register.NewCommandBuilder()
}

// NewCommandStatus wraps the doubleword read from config offset 0x04.
// Its Command method is the way to obtain a Command from hardware.
func NewCommandStatus(dword uint32) CommandStatus {
	return register.NewCommandStatus(dword)
}

// DecodeDevselTiming maps a 2-bit code onto a timing class.
func DecodeDevselTiming(code uint8) (DevselTiming, error) {
	return register.DecodeDevselTiming(code)
}

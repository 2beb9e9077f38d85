package register

import "github.com/prequel-dev/pcireg/internal/pkg/bits"

const (
	commandPrefix = "command."
	statusPrefix  = "status."
	statusShift   = 16
)

// CommandStatus is the doubleword at config offset 0x04: Command in
// bits 0-15 and Status in bits 16-31.
type CommandStatus uint32

func NewCommandStatus(dword uint32) CommandStatus { return CommandStatus(dword) }

func (d CommandStatus) Raw() uint32 { return uint32(d) }

func (d CommandStatus) Command() Command {
	return CommandFromRaw(uint16(bits.Range32(uint32(d), 0, 15)))
}

func (d CommandStatus) Status() Status {
	return NewStatus(uint16(bits.Range32(uint32(d), 16, 31)))
}

// WithCommand returns the doubleword with c's owned bits written in.
func (d CommandStatus) WithCommand(c Command) CommandStatus {
	v := uint32(d)
	c.WriteInfo(&v)
	return CommandStatus(v)
}

// Fields lists Command then Status fields, positioned within the doubleword.
func (d CommandStatus) Fields() []Field {
	var (
		cf  = d.Command().Fields()
		sf  = d.Status().Fields()
		out = make([]Field, 0, len(cf)+len(sf))
	)
	for _, f := range cf {
		f.Name = commandPrefix + f.Name
		out = append(out, f)
	}
	for _, f := range sf {
		f.Name = statusPrefix + f.Name
		f.Lo, f.Hi = f.Lo+statusShift, f.Hi+statusShift
		out = append(out, f)
	}
	return out
}

func (d CommandStatus) String() string {
	return d.Command().String() + " " + d.Status().String()
}

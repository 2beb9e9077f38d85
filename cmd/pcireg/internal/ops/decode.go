package ops

import (
	"fmt"

	"github.com/prequel-dev/pcireg"
)

func RunStatus() error {
	raw, err := parse16(CLI.Status.Value)
	if err != nil {
		return err
	}

	st := pcireg.NewStatus(raw)
	if _, err := st.DevselTiming(); err != nil {
		logf("status 0x%04x: %v", raw, err)
	}

	renderFields(fmt.Sprintf("Status 0x%04x", raw), st.Fields())
	return nil
}

func RunCommand() error {
	raw, err := parse16(CLI.Command.Value)
	if err != nil {
		return err
	}

	cmd := commandFromRaw(raw)
	renderFields(fmt.Sprintf("Command 0x%04x", raw), cmd.Fields())
	return nil
}

func RunDword() error {
	raw, err := parse32(CLI.Dword.Value)
	if err != nil {
		return err
	}

	cs := pcireg.NewCommandStatus(raw)
	logf("dword 0x%08x: command 0x%04x status 0x%04x", raw, cs.Command().Raw(), cs.Status().Raw())

	renderFields(fmt.Sprintf("Command/Status 0x%08x", raw), cs.Fields())
	return nil
}

// A lone Command value is decoded as the low half of an otherwise
// empty doubleword.
func commandFromRaw(raw uint16) pcireg.Command {
	return pcireg.NewCommandStatus(uint32(raw)).Command()
}

package ops

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/prequel-dev/pcireg"
)

func RunBuild() error {
	base, err := parse16(CLI.Build.Base)
	if err != nil {
		return err
	}

	cmd, err := editCommand(commandFromRaw(base), CLI.Build.Set, CLI.Build.Clear)
	if err != nil {
		return err
	}

	logf("build: base 0x%04x set %v clear %v", base, CLI.Build.Set, CLI.Build.Clear)

	renderFields(fmt.Sprintf("Command 0x%04x -> 0x%04x", base, cmd.Raw()), cmd.Fields())
	return nil
}

func RunApply() error {
	dword, err := parse32(CLI.Apply.Dword)
	if err != nil {
		return err
	}
	raw, err := parse16(CLI.Apply.Command)
	if err != nil {
		return err
	}

	var (
		before = pcireg.NewCommandStatus(dword)
		after  = before.WithCommand(commandFromRaw(raw))
	)

	renderApply(before, after)
	return nil
}

// renderApply prints both doublewords and every field whose value moved.
func renderApply(before, after pcireg.CommandStatus) {
	t := newTable("Apply results")
	t.AppendHeader(table.Row{"Key", "Value"})
	t.AppendRows([]table.Row{
		{"Before", fmt.Sprintf("0x%08x", before.Raw())},
		{"After", fmt.Sprintf("0x%08x", after.Raw())},
		{"Changed bits", fmt.Sprintf("0x%08x", before.Raw()^after.Raw())},
		{"Write mask", fmt.Sprintf("0x%08x", pcireg.CommandWriteMask)},
	})

	var (
		bf = before.Fields()
		af = after.Fields()
	)

	t.AppendSeparator()
	for i := range bf {
		if fmt.Sprint(fieldValue(bf[i])) == fmt.Sprint(fieldValue(af[i])) {
			continue
		}
		t.AppendRow(table.Row{bf[i].Name, fmt.Sprintf("%v -> %v", fieldValue(bf[i]), fieldValue(af[i]))})
	}

	t.Render()
}

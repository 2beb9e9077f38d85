package ops

import (
	"errors"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/prequel-dev/pcireg"
)

const strStdout = "<STDOUT>"

func RunPatch() error {
	if CLI.Patch.Lz4 && CLI.Patch.Hex {
		return errors.New("--lz4 and --hex are mutually exclusive")
	}
	if len(CLI.Patch.Set) == 0 && len(CLI.Patch.Clear) == 0 {
		return errors.New("nothing to patch; use --set or --clear")
	}

	rdwr, err := newTarget(CLI.Patch.File, CLI.Patch.Output, CLI.Patch.Lz4, CLI.Patch.Force)
	if err != nil {
		return err
	}

	defer rdwr.Close()

	return _patch(rdwr)
}

func _patch(rdwr *targetT) error {
	im, err := pcireg.ReadImage(rdwr.Reader())
	if err != nil {
		return err
	}

	before := im.CommandStatus()

	cmd, err := editCommand(before.Command(), CLI.Patch.Set, CLI.Patch.Clear)
	if err != nil {
		return err
	}

	after := im.ApplyCommand(cmd)
	logf("patch %s: 0x%08x -> 0x%08x", CLI.Patch.File, before.Raw(), after.Raw())

	wr, err := rdwr.Writer()
	if err != nil {
		return err
	}

	var n int64
	switch {
	case CLI.Patch.Lz4:
		n, err = im.WriteCompressed(wr, CLI.Patch.Level)
	case CLI.Patch.Hex:
		n, err = im.WriteHexDump(wr)
	default:
		n, err = im.WriteTo(wr)
	}
	if err != nil {
		return err
	}

	if err := rdwr.Commit(); err != nil {
		return err
	}

	// Keep stdout clean for the image itself.
	if rdwr.dstName == "" {
		return nil
	}

	t := newTable("Patch results")
	t.AppendHeader(table.Row{"Key", "Value"})
	t.AppendRows([]table.Row{
		{"Input", CLI.Patch.File},
		{"Input format", describeFormat(im)},
		{"Output", rdwr.OutputName()},
		{"OutSize", n},
		{"Before", fmt.Sprintf("0x%08x", before.Raw())},
		{"After", fmt.Sprintf("0x%08x", after.Raw())},
		{"Enabled", enabledNames(after.Command())},
	})
	t.Render()

	return nil
}

func describeFormat(im *pcireg.Image) string {
	s := im.Format().String()
	if im.Compressed() {
		s += "+lz4"
	}
	return s
}

package ops

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/prequel-dev/pcireg"
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// logf writes a diagnostic line to stderr when --verbose is set.
func logf(format string, args ...any) {
	if !CLI.Verbose {
		return
	}
	fmt.Fprintf(stderr, "pcireg: "+format+"\n", args...)
}

func newTable(title string) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleColoredBright)
	t.SetOutputMirror(stdout)
	t.SetTitle(title)
	return t
}

func fieldValue(f pcireg.Field) any {
	if err := f.Err(); err != nil {
		return fmt.Sprintf("Err(%v)", err)
	}
	return f.Value
}

func renderFields(title string, fields []pcireg.Field) {
	t := newTable(title)
	t.AppendHeader(table.Row{"Field", "Bits", "Value"})
	for _, f := range fields {
		t.AppendRow(table.Row{f.Name, f.Bits(), fieldValue(f)})
	}
	t.Render()
}

func newProgressWriter(nTrackers int) progress.Writer {
	pw := progress.NewWriter()
	pw.SetAutoStop(true)
	pw.SetMessageLength(24)
	pw.SetNumTrackersExpected(nTrackers)
	pw.SetOutputWriter(stdout)
	pw.SetStyle(progress.StyleDefault)
	pw.SetTrackerLength(25)
	pw.SetTrackerPosition(progress.PositionRight)
	pw.SetUpdateFrequency(time.Millisecond * 100)
	pw.Style().Colors = progress.StyleColorsExample
	pw.Style().Options.PercentFormat = "%4.1f%%"
	pw.Style().Visibility.ETA = true
	pw.Style().Visibility.Percentage = true
	pw.Style().Visibility.Time = true
	return pw
}

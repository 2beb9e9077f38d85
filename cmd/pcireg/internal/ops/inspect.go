package ops

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/gammazero/workerpool"
	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/prequel-dev/pcireg"
)

func RunInspect() error {
	var (
		files = CLI.Inspect.Files
		srcs  = make([]io.Reader, len(files))
		lazy  = make([]*lazyFile, len(files))
	)

	for i, name := range files {
		lazy[i] = &lazyFile{name: name}
		srcs[i] = lazy[i]
	}

	defer func() {
		for _, lf := range lazy {
			lf.Close()
		}
	}()

	opts := []pcireg.OptT{
		pcireg.WithParallel(CLI.Cpus),
	}

	if CLI.Cpus != 0 {
		nWorkers := CLI.Cpus
		if nWorkers < 0 {
			nWorkers = runtime.NumCPU()
		}
		wp := workerpool.New(nWorkers)
		defer wp.StopWait()
		opts = append(opts, pcireg.WithWorkerPool(wp))
		logf("inspect: %d files on %d workers", len(files), nWorkers)
	}

	return _inspect(files, srcs, opts...)
}

func _inspect(files []string, srcs []io.Reader, opts ...pcireg.OptT) error {

	var (
		pw progress.Writer
		tr *progress.Tracker
	)

	if len(srcs) > 1 && !CLI.Inspect.Quiet {
		msg := "Inspecting"
		pw = newProgressWriter(1)
		pw.SetMessageLength(len(msg))

		tr = &progress.Tracker{
			Message: msg,
			Total:   int64(len(srcs)),
			Units:   progress.UnitsDefault,
		}

		pw.AppendTracker(tr)

		opts = append(opts, pcireg.WithProgress(func(done, total int) {
			tr.SetValue(int64(done))
		}))

		go pw.Render()
	}

	results := pcireg.InspectAll(srcs, opts...)

	if pw != nil {
		tr.MarkAsDone()

		for pw.IsRenderInProgress() {
			time.Sleep(time.Millisecond * 100)
		}
	}

	t := newTable("Inspect results")
	t.AppendHeader(table.Row{"File", "Format", "Size", "Command", "Status", "Devsel", "Enabled"})

	var nFail int
	for i, r := range results {
		if r.Err != nil {
			nFail++
			logf("inspect %s: %v", files[i], r.Err)
			t.AppendRow(table.Row{files[i], "-", "-", "-", "-", "-", fmt.Sprintf("Err(%v)", r.Err)})
			continue
		}

		var devsel string
		if timing, err := r.Status().DevselTiming(); err != nil {
			logf("inspect %s: %v", files[i], err)
			devsel = fmt.Sprintf("Err(%v)", err)
		} else {
			devsel = timing.String()
		}

		t.AppendRow(table.Row{
			files[i],
			describeFormat(r.Image),
			describeSize(r.Image),
			fmt.Sprintf("0x%04x", r.Command().Raw()),
			fmt.Sprintf("0x%04x", r.Status().Raw()),
			devsel,
			enabledNames(r.Command()),
		})
	}
	t.Render()

	if CLI.Inspect.Detail {
		for i, r := range results {
			if r.Err == nil {
				renderFields(files[i], r.Fields())
			}
		}
	}

	if nFail > 0 {
		return fmt.Errorf("%d of %d images failed", nFail, len(results))
	}
	return nil
}

func describeSize(im *pcireg.Image) string {
	if im.Extended() {
		return fmt.Sprintf("%d ext", im.Len())
	}
	return fmt.Sprintf("%d", im.Len())
}

// lazyFile opens on first read, so a long file list does not hold a
// descriptor per file for the whole batch.
type lazyFile struct {
	name string
	fh   *os.File
	eof  bool
}

func (f *lazyFile) Read(p []byte) (int, error) {
	if f.eof {
		return 0, io.EOF
	}
	if f.fh == nil {
		fh, err := os.Open(f.name)
		if err != nil {
			return 0, err
		}
		f.fh = fh
	}

	n, err := f.fh.Read(p)
	if err == io.EOF {
		f.eof = true
		f.Close()
	}
	return n, err
}

func (f *lazyFile) Close() error {
	if f.fh == nil {
		return nil
	}
	err := f.fh.Close()
	f.fh = nil
	return err
}

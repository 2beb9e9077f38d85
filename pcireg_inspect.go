package pcireg

import (
	"io"
	"sync"

	"github.com/prequel-dev/pcireg/internal/pkg/image"
)

// Image is a loaded copy of a device's configuration space.
type Image = image.Image

// Snapshot is the Command/Status pair decoded from one image.
type Snapshot struct {
	CommandStatus
	Image *Image
}

// Result pairs a Snapshot with the error, if any, hit producing it.
type Result struct {
	Snapshot
	Err error
}

// ReadImage loads a binary, `lspci -x` hex or lz4-compressed config image.
func ReadImage(rdr io.Reader) (*Image, error) {
	return image.Read(rdr)
}

// Inspect loads one image and decodes its Command/Status doubleword.
func Inspect(rdr io.Reader) (Snapshot, error) {
	im, err := image.Read(rdr)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{CommandStatus: im.CommandStatus(), Image: im}, nil
}

// InspectAll decodes each source and returns results in input order.
//
// In asynchronous mode every source becomes one task on the worker pool,
// with at most NParallel in flight.  The pool must run every task it is
// handed; InspectAll waits for all of them.
func InspectAll(srcs []io.Reader, optFuncs ...OptT) []Result {
	var (
		o       = parseOpts(optFuncs...)
		total   = len(srcs)
		results = make([]Result, total)
		slots   = o.Slots(total)
	)

	if slots == 0 {
		for i, src := range srcs {
			results[i] = inspectResult(src)
			o.Handler(i+1, total)
		}
		return results
	}

	var (
		wg   sync.WaitGroup
		mux  sync.Mutex
		done int
		sem  = make(chan struct{}, slots)
	)

	wg.Add(total)
	for i, src := range srcs {
		sem <- struct{}{}
		o.WorkerPool.Submit(func() {
			defer func() {
				<-sem
				wg.Done()
			}()

			results[i] = inspectResult(src)

			mux.Lock()
			done++
			o.Handler(done, total)
			mux.Unlock()
		})
	}

	wg.Wait()
	return results
}

func inspectResult(rdr io.Reader) Result {
	snap, err := Inspect(rdr)
	return Result{Snapshot: snap, Err: err}
}

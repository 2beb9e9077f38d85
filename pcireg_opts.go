package pcireg

import (
	"runtime"

	"github.com/prequel-dev/pcireg/internal/pkg/opts"
)

// OptT is a function that sets an option on the inspector.
type OptT func(*opts.OptsT)

// WorkerPool is an interface for a worker pool implementation.
type WorkerPool = opts.WorkerPool

// Progress callback function type.
type CbProgressT = opts.ProgressFuncT

// Specify number of images to decode in parallel.  Defaults to 1.
//
//	0   Process synchronously
//	1+  Process asynchronously
//	<0  Process asynchronously with the number of goroutines up to the CPU count
func WithParallel(n int) OptT {
	return func(o *opts.OptsT) {
		numCPU := runtime.NumCPU()
		if n < 0 || n > numCPU {
			o.NParallel = numCPU
		} else {
			o.NParallel = n
		}
	}
}

// Optional worker pool used for asynchronous decoding.
func WithWorkerPool(wp WorkerPool) OptT {
	return func(o *opts.OptsT) {
		o.WorkerPool = wp
	}
}

// Inspector will emit (done, total) each time an image finishes.
//
// Note: Callback may be called from a secondary goroutine, but calls
// are serialized and 'done' increases by one each time.
func WithProgress(cb CbProgressT) OptT {
	return func(o *opts.OptsT) {
		o.Handler = cb
	}
}

func defaultHandler(int, int) {}

func parseOpts(optFuncs ...OptT) opts.OptsT {
	o := opts.OptsT{
		NParallel:  1,                   // Run async by default
		Handler:    defaultHandler,      // NOOP
		WorkerPool: opts.StubWorkerPool, // Stub worker pool with simple go dispatch
	}

	for _, oFunc := range optFuncs {
		oFunc(&o)
	}

	if o.WorkerPool == nil {
		o.WorkerPool = opts.StubWorkerPool
	}
	if o.Handler == nil {
		o.Handler = defaultHandler
	}

	return o
}

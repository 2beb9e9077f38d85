package opts

// Emits the number of finished sources out of the total on each completion.
type ProgressFuncT func(done, total int)

type OptsT struct {
	NParallel  int
	WorkerPool WorkerPool
	Handler    ProgressFuncT
}

type WorkerPool interface {
	Submit(task func())
}

// Slots returns the number of tasks allowed in flight at once;
// zero means run synchronously on the caller's goroutine.
func (o OptsT) Slots(nTasks int) int {
	switch {
	case o.NParallel <= 0:
		return 0
	case o.NParallel > nTasks:
		return nTasks
	default:
		return o.NParallel
	}
}

type stubWorkerPool struct {
}

func (s *stubWorkerPool) Submit(task func()) {
	go task()
}

var StubWorkerPool = &stubWorkerPool{}

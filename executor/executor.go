package executor

import (
	"sync"
)

type ExecutionMethod int

const (
	Parallel ExecutionMethod = iota
	Serial
)

type ExecutionUnit func()

func (method ExecutionMethod) ToString() string {
	switch method {
	case Parallel:
		return "Parallel"
	case Serial:
		return "Serial"
	}
	return "Unrecognized execution method"
}

// Execute runs the given units either serially or in parallel and
// returns a wait group that completes when all of them have finished.
func Execute(executionMethod ExecutionMethod, executionUnits []ExecutionUnit) *sync.WaitGroup {
	waiter := &sync.WaitGroup{}

	// Add all the execution units to the wait group before starting to
	// run any -- there is a potential race condition otherwise.
	waiter.Add(len(executionUnits))

	for _, executionUnit := range executionUnits {
		executionUnit := executionUnit

		invoker := func() {
			executionUnit()
			waiter.Done()
		}
		switch executionMethod {
		case Parallel:
			go invoker()
		case Serial:
			invoker()
		default:
			panic("Invalid execution method value given.")
		}
	}

	return waiter
}

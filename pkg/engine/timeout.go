package engine

import (
	"sync"
	"time"

	"github.com/chazu/crossing/pkg/intersection"
	"github.com/cockroachdb/errors"
)

// EvalTimeout is the hard limit for a single evaluation.
const EvalTimeout = 5 * time.Second

// ErrSuperseded is returned when a newer Evaluate call started before this
// one finished.
var ErrSuperseded = errors.New("evaluation superseded by newer request")

// ErrTimeout is returned when user code runs longer than EvalTimeout.
var ErrTimeout = errors.New("evaluation timed out")

type evalResult struct {
	config *intersection.Config
	errors []EvalError
	err    error
}

// waitWithTimeout waits for a result from ch, but returns a timeout error
// if the evaluation exceeds EvalTimeout. Results from an older generation
// are discarded.
//
// On timeout the goroutine may still be running; the generation check
// drops its result when it eventually completes.
func waitWithTimeout(
	ch <-chan evalResult,
	gen uint64,
	mu *sync.Mutex,
	currentGen *uint64,
) (*intersection.Config, []EvalError, error) {
	timer := time.NewTimer(EvalTimeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		mu.Lock()
		current := *currentGen
		mu.Unlock()

		if gen != current {
			return nil, nil, ErrSuperseded
		}

		return res.config, res.errors, res.err

	case <-timer.C:
		return nil, nil, errors.Wrapf(ErrTimeout, "after %s", EvalTimeout)
	}
}

// services/ledhal/internal/dispatch/dispatch.go
package dispatch

import (
	"context"
	"sync"

	"ledcode-go/services/ledhal/internal/ledcore"
)

// Applier is the blocking half the worker drives.
type Applier interface {
	Apply(channel int) error
}

// Worker defers register writes for one chip onto a context that may block.
// Submit never blocks and keeps at most one pending mark per channel: rapid
// successive submissions coalesce, and the apply reads the latest requested
// level at execution time. No queue of historical values is kept.
type Worker struct {
	devID   string
	applier Applier
	results chan<- ledcore.Result

	mu      sync.Mutex
	pending uint32 // one bit per channel
	cursor  int    // round-robin scan position

	wake    chan struct{}
	stopped chan struct{}

	nch int
}

func New(devID string, numChannels int, a Applier, results chan<- ledcore.Result) *Worker {
	if numChannels <= 0 || numChannels > 32 {
		numChannels = 32
	}
	return &Worker{
		devID:   devID,
		applier: a,
		results: results,
		wake:    make(chan struct{}, 1),
		stopped: make(chan struct{}),
		nch:     numChannels,
	}
}

// Start launches the apply loop. Cancelling ctx stops the worker; Wait
// blocks until the loop (including any in-flight apply) has finished.
func (w *Worker) Start(ctx context.Context) {
	go func() {
		defer close(w.stopped)
		for {
			select {
			case <-ctx.Done():
				return
			case <-w.wake:
			}
			for {
				if ctx.Err() != nil {
					return
				}
				ch := w.take()
				if ch < 0 {
					break
				}
				err := w.applier.Apply(ch)
				w.emit(ledcore.Result{DevID: w.devID, Channel: ch, Err: err})
			}
		}
	}()
}

// Wait blocks until the worker goroutine has exited.
func (w *Worker) Wait() { <-w.stopped }

// Submit marks a channel for a deferred apply. Idempotent while the mark is
// still pending; never blocks.
func (w *Worker) Submit(channel int) bool {
	if channel < 0 || channel >= w.nch {
		return false
	}
	w.mu.Lock()
	w.pending |= 1 << uint(channel)
	w.mu.Unlock()
	select {
	case w.wake <- struct{}{}:
	default:
	}
	return true
}

// Forget drops a pending mark, if any. An apply already in flight for the
// channel is not interrupted.
func (w *Worker) Forget(channel int) {
	if channel < 0 || channel >= w.nch {
		return
	}
	w.mu.Lock()
	w.pending &^= 1 << uint(channel)
	w.mu.Unlock()
}

// take pops the next pending channel round-robin, or -1 when none remain.
func (w *Worker) take() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending == 0 {
		return -1
	}
	for i := 0; i < w.nch; i++ {
		ch := (w.cursor + i) % w.nch
		if w.pending&(1<<uint(ch)) != 0 {
			w.pending &^= 1 << uint(ch)
			w.cursor = (ch + 1) % w.nch
			return ch
		}
	}
	return -1
}

// emit never blocks: a full results channel drops the report rather than
// stalling the apply loop (and with it, teardown).
func (w *Worker) emit(r ledcore.Result) {
	if w.results == nil {
		return
	}
	select {
	case w.results <- r:
	default:
	}
}

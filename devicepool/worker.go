// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package devicepool

import (
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
)

// worker is the per-device long-lived execution domain described in §4.2.
// It is modeled as a dedicated goroutine guarded by a recover() boundary
// around the job invocation, the idiomatic Go stand-in for the spec's
// OS-level isolated execution domain (see SPEC_FULL.md §5).
type worker struct {
	device DeviceParams
	queue  *pendingQueue
	wctx   *WorkerContext
	logger *zap.Logger

	alive atomic.Bool
	stop  chan struct{}
	done  chan struct{}
}

func newWorker(device DeviceParams, queue *pendingQueue, wctx *WorkerContext, logger *zap.Logger) *worker {
	w := &worker{
		device: device,
		queue:  queue,
		wctx:   wctx,
		logger: logger,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	w.alive.Store(true)
	return w
}

// start launches the worker's loop goroutine.
func (w *worker) start() {
	go w.run()
}

func (w *worker) run() {
	w.logger.Debug("worker starting")
	defer w.logger.Debug("worker exiting")
	defer close(w.done)
	defer w.alive.Store(false)

	for {
		select {
		case <-w.stop:
			return
		case entry := <-w.queue.entries:
			w.queue.release()
			w.dispatch(entry)
		}
	}
}

// dispatch resets the context for the new job and invokes fn under a
// recover() boundary so a panicking job cannot kill the worker loop or the
// coordinating goroutine.
func (w *worker) dispatch(entry pendingEntry) {
	w.wctx.ClearFlags(entry.key)
	w.runProtected(entry)
	w.wctx.SetFinished()
}

func (w *worker) runProtected(entry pendingEntry) {
	defer func() {
		if r := recover(); r != nil {
			w.wctx.log("job panicked", fmt.Errorf("%v", r))
		}
	}()

	if err := entry.fn(w.wctx, entry.args); err != nil {
		w.wctx.log("job failed", err)
	}
}

// isAlive reports whether the worker's loop goroutine is still running.
// Recycle uses this to detect a dead worker domain.
func (w *worker) isAlive() bool {
	return w.alive.Load()
}

// requestStop signals the worker to exit after its current job, if any,
// completes. It does not drain or discard the pending queue.
func (w *worker) requestStop() {
	select {
	case <-w.stop:
	default:
		close(w.stop)
	}
}

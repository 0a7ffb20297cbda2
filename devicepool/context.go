// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package devicepool

import (
	"sync/atomic"

	"github.com/nodeforge/devicepool/clock"
)

// WorkerContext is the handle a worker builds for the duration of exactly one
// job and passes to that job's JobFunc.  Only the worker that owns it writes
// job/device; cancel is written by the executor's progress fan, by Cancel,
// and at the start of a job whose key was already cancelled, and read by the
// worker through IsCancelled.
//
// No back-pointer to the owning executor exists: the context holds only the
// shared stream endpoints it needs, wired in at construction by the
// executor (see §9 cyclic-reference note).
type WorkerContext struct {
	job    string
	device DeviceParams

	cancel   atomic.Bool
	progress atomic.Int64

	progressCh chan<- progressRecord
	finishedCh chan<- finishedRecord
	logCh      chan<- logRecord

	clock clock.Interface
}

// newWorkerContext wires a WorkerContext to the executor's shared streams
// for the given device.  Constructed once per worker and reused across that
// worker's jobs; ClearFlags resets it between jobs.  clk stamps log records
// with their emission time; tests substitute clocktest.Mock for deterministic
// timestamps.
func newWorkerContext(device DeviceParams, clk clock.Interface, progressCh chan<- progressRecord, finishedCh chan<- finishedRecord, logCh chan<- logRecord) *WorkerContext {
	return &WorkerContext{
		device:     device,
		clock:      clk,
		progressCh: progressCh,
		finishedCh: finishedCh,
		logCh:      logCh,
	}
}

// IsCancelled reports whether this job's cancel flag has been set.
func (c *WorkerContext) IsCancelled() bool {
	return c.cancel.Load()
}

// Device returns the DeviceParams this context's worker is bound to.
func (c *WorkerContext) Device() DeviceParams {
	return c.device
}

// Progress returns the last value reported through ProgressCallback.
func (c *WorkerContext) Progress() int {
	return int(c.progress.Load())
}

// ProgressCallback returns a callable bound to the job currently owning this
// context.  The tail parameters exist because external numerical libraries
// invoke progress callbacks with library-defined positional arguments; only
// step is examined.
func (c *WorkerContext) ProgressCallback() func(step int, rest ...any) error {
	job := c.job
	device := c.device.Name
	return func(step int, rest ...any) error {
		if c.IsCancelled() {
			return ErrCancelled
		}

		c.progress.Store(int64(step))

		select {
		case c.progressCh <- progressRecord{job: job, device: device, step: step}:
			return nil
		default:
			return ErrBackpressure
		}
	}
}

// SetFinished pushes a finished record for the current job.  Blocking is
// acceptable here: it is called at most once per job, by the worker itself.
func (c *WorkerContext) SetFinished() {
	c.finishedCh <- finishedRecord{job: c.job, device: c.device.Name}
}

// ClearFlags resets cancel and last-progress ahead of a new job.  Called by
// the worker before dispatching each job; never by anything else.
func (c *WorkerContext) ClearFlags(job string) {
	c.cancel.Store(false)
	c.progress.Store(0)
	c.job = job
}

// log appends a diagnostic line for the current job to the shared log
// stream, non-blocking so a slow or full log sink never stalls a worker.
func (c *WorkerContext) log(msg string, err error) {
	select {
	case c.logCh <- logRecord{at: c.clock.Now(), device: c.device.Name, job: c.job, msg: msg, err: err}:
	default:
	}
}

// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package devicepool

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/exp/maps"
	"golang.org/x/sync/errgroup"

	"github.com/nodeforge/devicepool/clock"
	"github.com/nodeforge/devicepool/concurrent"
	"github.com/nodeforge/devicepool/semaphore"
)

// activeEntry is the Executor-owned record of a job that has emitted at
// least one progress update and has not yet finished.
type activeEntry struct {
	device   string
	progress int
}

// SubmitRequest bundles the arguments to Submit for use with SubmitAll.
type SubmitRequest struct {
	Key  string
	Fn   JobFunc
	Args any
	Pin  *DeviceParams
}

// Executor is the top-level coordinator: submission, balancing,
// cancellation, recycling, and shutdown for a fixed pool of devices.
//
// Executor exclusively owns the pending queues, the shared streams, and the
// worker handles; every WorkerContext it hands to a worker is wired at
// construction time to those shared streams with no back-pointer to the
// Executor itself (see SPEC_FULL.md §9).
type Executor struct {
	logger   *zap.Logger
	measures Measures
	logSink  io.Writer
	clock    clock.Interface

	devices   []DeviceParams
	deviceIdx map[string]int

	joinTimeout      time.Duration
	maxJobsPerWorker int

	mu        sync.Mutex
	queues    []*pendingQueue
	contexts  []*WorkerContext
	workers   []*worker
	active    map[string]activeEntry
	finished  *finishedRing
	cancelled map[string]struct{}
	totalJobs []int

	progressCh chan progressRecord
	finishedCh chan finishedRecord
	logCh      chan logRecord

	fanWG sync.WaitGroup
}

// NewExecutor constructs an Executor over the given devices, creating one
// worker per device and the three telemetry fans. devices must be non-empty
// and must not repeat a device Name.
func NewExecutor(devices []DeviceParams, o *Options) (*Executor, error) {
	if len(devices) == 0 {
		return nil, fmt.Errorf("devicepool: at least one device is required")
	}

	measures, err := NewMeasures(o.registerer())
	if err != nil {
		return nil, err
	}

	capacity := o.maxPendingPerWorker()
	e := &Executor{
		logger:           o.logger(),
		measures:         measures,
		logSink:          o.logSink(),
		clock:            o.clock(),
		devices:          append([]DeviceParams(nil), devices...),
		deviceIdx:        make(map[string]int, len(devices)),
		joinTimeout:      o.joinTimeout(),
		maxJobsPerWorker: o.maxJobsPerWorker(),
		queues:           make([]*pendingQueue, len(devices)),
		contexts:         make([]*WorkerContext, len(devices)),
		workers:          make([]*worker, len(devices)),
		active:           make(map[string]activeEntry),
		finished:         newFinishedRing(o.finishedLimit()),
		cancelled:        make(map[string]struct{}),
		totalJobs:        make([]int, len(devices)),
		progressCh:       make(chan progressRecord, capacity),
		finishedCh:       make(chan finishedRecord, capacity),
		logCh:            make(chan logRecord, capacity),
	}

	for i, d := range devices {
		if _, dup := e.deviceIdx[d.Name]; dup {
			return nil, fmt.Errorf("devicepool: duplicate device %q", d.Name)
		}
		e.deviceIdx[d.Name] = i

		gate := semaphore.InstrumentCloseable(
			semaphore.NewCloseable(capacity),
			semaphore.WithFailures(e.measures.JobsBackpressure.With("device", d.Name)),
		)

		e.queues[i] = newPendingQueue(capacity, gate)
		e.contexts[i] = newWorkerContext(d, e.clock, e.progressCh, e.finishedCh, e.logCh)
		e.workers[i] = newWorker(d, e.queues[i], e.contexts[i], e.logger.With(zap.String("device", d.Name)))
		e.workers[i].start()
	}

	e.fanWG.Add(3)
	go e.logFan()
	go e.progressFan()
	go e.finishedFan()

	return e, nil
}

// Submit enqueues a job onto the selected device's pending queue. pin, when
// non-nil, requests a specific device; an unknown pin falls back to
// least-loaded selection rather than failing (see DESIGN.md open-question
// resolution). Submit never blocks: a full pending queue fails fast with
// ErrBackpressure, and the device's lifetime job count is not rolled back.
func (e *Executor) Submit(key string, fn JobFunc, args any, pin *DeviceParams) error {
	e.mu.Lock()
	idx := e.nextDeviceLocked(pin)
	e.totalJobs[idx]++
	e.recycleLocked(idx)
	queue := e.queues[idx]
	device := e.devices[idx]
	e.mu.Unlock()

	// A key already cancelled when its job starts has its cancel flag set
	// before fn runs, so the job's first progress emission fails.
	run := func(ctx *WorkerContext, args any) error {
		e.mu.Lock()
		_, cancelled := e.cancelled[key]
		e.mu.Unlock()
		if cancelled {
			ctx.cancel.Store(true)
		}
		return fn(ctx, args)
	}

	if err := queue.tryEnqueue(pendingEntry{key: key, fn: run, args: args}); err != nil {
		return err
	}

	e.measures.JobsSubmitted.With("device", device.Name).Add(1)
	return nil
}

// SubmitAll submits each request concurrently, returning a same-indexed
// slice of per-job errors. It adds no scheduling semantics beyond Submit
// itself — it exists so a caller with many jobs doesn't pay O(n) round
// trips serially.
func (e *Executor) SubmitAll(ctx context.Context, jobs []SubmitRequest) []error {
	errs := make([]error, len(jobs))

	g, _ := errgroup.WithContext(ctx)
	for i := range jobs {
		i := i
		g.Go(func() error {
			errs[i] = e.Submit(jobs[i].Key, jobs[i].Fn, jobs[i].Args, jobs[i].Pin)
			return nil
		})
	}
	_ = g.Wait()

	return errs
}

// nextDeviceLocked implements the balancing rule in §4.4: an unknown or nil
// pin falls back to strict least-queue-depth selection with a stable,
// index-order tie-break. Must be called with mu held.
func (e *Executor) nextDeviceLocked(pin *DeviceParams) int {
	if pin != nil {
		if idx, ok := e.deviceIdx[pin.Name]; ok {
			return idx
		}

		e.logger.Debug("pin names an unknown device, falling back to least-loaded",
			zap.String("pin", pin.Name), zap.Error(ErrUnknownDevice))
	}

	best := 0
	bestDepth := e.queues[0].depth()
	for i := 1; i < len(e.queues); i++ {
		if d := e.queues[i].depth(); d < bestDepth {
			bestDepth = d
			best = i
		}
	}

	return best
}

// recycleLocked replaces device idx's worker when it has died or exceeded
// its lifetime job budget, preserving the pending queue. Must be called
// with mu held.
func (e *Executor) recycleLocked(idx int) {
	w := e.workers[idx]
	device := e.devices[idx]

	var reason string
	switch {
	case !w.isAlive():
		reason = "died"
		e.logger.Warn("worker execution domain died unexpectedly",
			zap.String("device", device.Name), zap.Error(ErrWorkerDied))
		e.orphanActiveLocked(device.Name)
	case e.totalJobs[idx] > e.maxJobsPerWorker:
		reason = "threshold"
		e.stopWorkerLocked(w, device)
	default:
		return
	}

	wctx := newWorkerContext(device, e.clock, e.progressCh, e.finishedCh, e.logCh)
	nw := newWorker(device, e.queues[idx], wctx, e.logger.With(zap.String("device", device.Name)))
	nw.start()

	e.contexts[idx] = wctx
	e.workers[idx] = nw
	e.totalJobs[idx] = 0

	e.measures.WorkerRecycle.With("device", device.Name, "reason", reason).Add(1)
}

// stopWorkerLocked requests a graceful stop and waits up to joinTimeout. If
// the worker does not stop in time, its handle is abandoned: the caller
// still replaces it, and the old goroutine is left to finish (or leak) on
// its own, exactly as an abandoned OS process would be reaped by the
// environment.
func (e *Executor) stopWorkerLocked(w *worker, device DeviceParams) {
	w.requestStop()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-w.done
	}()

	if !concurrent.WaitTimeout(&wg, e.joinTimeout) {
		e.logger.Warn("worker did not stop within join timeout", zap.String("device", device.Name))
	}
}

// orphanActiveLocked synthesizes a finished record, cancelled=true, for any
// active job left on a device whose worker died. Must be called with mu
// held.
func (e *Executor) orphanActiveLocked(deviceName string) {
	for key, ae := range e.active {
		if ae.device != deviceName {
			continue
		}

		e.finished.push(finishedEntry{key: key, progress: ae.progress, cancelled: true})
		delete(e.active, key)
		e.measures.ActiveJobs.With("device", deviceName).Add(-1)
	}
}

// Cancel requests cancellation of key. The return value is vestigial: it is
// always true, per §4.4. Cancellation is cooperative and idempotent, and
// never tears down a worker.
func (e *Executor) Cancel(key string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancelled[key] = struct{}{}

	ae, ok := e.active[key]
	if !ok {
		return true
	}

	if idx, ok := e.deviceIdx[ae.device]; ok {
		e.contexts[idx].cancel.Store(true)
	}

	return true
}

// Done reports a job's last known state and progress.
func (e *Executor) Done(key string) (State, int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if fe, ok := e.finished.find(key); ok {
		return Finished, fe.progress
	}

	if ae, ok := e.active[key]; ok {
		return Pending, ae.progress
	}

	return Unknown, 0
}

// Status returns a snapshot of every active job followed by every job still
// within the bounded finished history.
func (e *Executor) Status() []JobStatus {
	e.mu.Lock()
	defer e.mu.Unlock()

	keys := maps.Keys(e.active)
	sort.Strings(keys)

	out := make([]JobStatus, 0, len(keys)+e.finished.len())
	for _, key := range keys {
		ae := e.active[key]
		_, cancelled := e.cancelled[key]
		out = append(out, JobStatus{
			Name:      key,
			Device:    ae.device,
			Progress:  ae.progress,
			Cancelled: cancelled,
			Finished:  false,
		})
	}

	for _, fe := range e.finished.all() {
		out = append(out, JobStatus{
			Name:      fe.key,
			Progress:  fe.progress,
			Cancelled: fe.cancelled,
			Finished:  true,
		})
	}

	return out
}

// Metrics returns the Prometheus-backed instruments wired into this
// Executor, so an external collaborator's own metrics endpoint can expose
// them.
func (e *Executor) Metrics() Measures {
	return e.measures
}

// Join closes the pending queues' gates, stops every worker within
// joinTimeout, then closes the shared streams and stops the telemetry fans
// within joinTimeout. Workers are stopped
// before the streams they write to are closed, so no send occurs on a
// closed channel.
func (e *Executor) Join() JoinReport {
	e.mu.Lock()
	queues := append([]*pendingQueue(nil), e.queues...)
	workers := append([]*worker(nil), e.workers...)
	devices := append([]DeviceParams(nil), e.devices...)
	e.mu.Unlock()

	for _, q := range queues {
		q.close()
	}

	var report JoinReport
	for i, w := range workers {
		w.requestStop()

		var wg sync.WaitGroup
		wg.Add(1)
		go func(w *worker) {
			defer wg.Done()
			<-w.done
		}(w)

		if concurrent.WaitTimeout(&wg, e.joinTimeout) {
			report.Stopped = append(report.Stopped, devices[i].Name)
		} else {
			e.logger.Warn("worker still alive at join", zap.String("device", devices[i].Name))
			report.TimedOut = append(report.TimedOut, devices[i].Name)
		}
	}

	close(e.progressCh)
	close(e.finishedCh)
	close(e.logCh)

	if !concurrent.WaitTimeout(&e.fanWG, e.joinTimeout) {
		e.logger.Warn("telemetry fans did not stop within join timeout")
	}

	return report
}

// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package devicepool

import (
	"strconv"

	"go.uber.org/zap"
)

// logFan drains the log stream into the configured sink, surviving
// transient sink failures by logging and continuing. It stops when logCh
// closes, which is the fan's shutdown signal.
func (e *Executor) logFan() {
	defer e.fanWG.Done()
	defer e.logger.Debug("log fan stopping", zap.Error(ErrStreamClosed))

	for r := range e.logCh {
		if err := writeLogRecord(e.logSink, r); err != nil {
			e.logger.Warn("log sink write failed", zap.Error(err), zap.String("device", r.device))
		}
	}
}

// progressFan drains the progress stream, upserting active_jobs and
// propagating any pending cancellation into the owning WorkerContext. This
// is the only place cancel flags are set in response to telemetry, which is
// what lets a cancellation requested before a job's first progress emission
// still take effect.
func (e *Executor) progressFan() {
	defer e.fanWG.Done()
	defer e.logger.Debug("progress fan stopping", zap.Error(ErrStreamClosed))

	for r := range e.progressCh {
		var newlyActive bool

		e.mu.Lock()
		if _, ok := e.active[r.job]; !ok {
			newlyActive = true
		}
		e.active[r.job] = activeEntry{device: r.device, progress: r.step}

		if _, cancelled := e.cancelled[r.job]; cancelled {
			if idx, ok := e.deviceIdx[r.device]; ok {
				e.contexts[idx].cancel.Store(true)
			}
		}
		e.mu.Unlock()

		if newlyActive {
			e.measures.ActiveJobs.With("device", r.device).Add(1)
		}
		e.measures.JobProgress.With("device", r.device).Observe(float64(r.step))
	}
}

// finishedFan drains the finished stream, moving a job from active_jobs
// into the bounded finished history. A finished record arriving with no
// matching active entry (the job never emitted progress) is recorded with
// progress 0, per §4.3.
func (e *Executor) finishedFan() {
	defer e.fanWG.Done()
	defer e.logger.Debug("finished fan stopping", zap.Error(ErrStreamClosed))

	for r := range e.finishedCh {
		e.mu.Lock()
		ae, hadActive := e.active[r.job]
		progress := 0
		if hadActive {
			progress = ae.progress
			delete(e.active, r.job)
		}

		_, cancelled := e.cancelled[r.job]
		delete(e.cancelled, r.job)

		e.finished.push(finishedEntry{key: r.job, progress: progress, cancelled: cancelled})
		e.mu.Unlock()

		if hadActive {
			e.measures.ActiveJobs.With("device", r.device).Add(-1)
		}
		e.measures.JobsFinished.With("device", r.device, "cancelled", strconv.FormatBool(cancelled)).Add(1)
	}
}

// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package devicepool

import "errors"

var (
	// ErrBackpressure is returned by Submit when a device's pending queue is full,
	// and by a progress emission when the progress stream is full.  Submit surfaces
	// this to the caller; a progress-emit occurrence is swallowed by the worker.
	ErrBackpressure = errors.New("devicepool: backpressure")

	// ErrCancelled is returned from a ProgressCallback invocation when the job's
	// cancel flag has been set.  The worker catches this, logs it, and finishes
	// the job with cancelled=true.
	ErrCancelled = errors.New("devicepool: job cancelled")

	// ErrWorkerDied indicates a worker's execution domain terminated unexpectedly.
	// Detected at the next Recycle; never returned to a caller directly.
	ErrWorkerDied = errors.New("devicepool: worker died")

	// ErrStreamClosed is the internal shutdown signal observed by telemetry fans
	// when their stream closes.  It is not surfaced outside of logging.
	ErrStreamClosed = errors.New("devicepool: stream closed")

	// ErrUnknownDevice is logged when a pin names a device that is not part of
	// the pool.  Callers of Submit never see this: an unknown pin
	// falls back to least-loaded selection rather than failing.
	ErrUnknownDevice = errors.New("devicepool: unknown device")
)

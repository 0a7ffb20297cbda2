// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package devicepool

import (
	"fmt"
	"time"
)

// JobFunc is the polymorphic job callable external collaborators implement.
// The worker invokes it with a WorkerContext scoped to the current job plus
// the opaque args the caller supplied to Submit.  The executor never
// inspects args.
type JobFunc func(ctx *WorkerContext, args any) error

// pendingEntry is a single queued unit of work for one device.
type pendingEntry struct {
	key  string
	fn   JobFunc
	args any
}

// progressRecord is pushed by a running job's ProgressCallback onto the
// shared progress stream.
type progressRecord struct {
	job    string
	device string
	step   int
}

// finishedRecord is pushed by the worker onto the shared finished stream
// exactly once per job, regardless of success, failure, or cancellation.
type finishedRecord struct {
	job    string
	device string
}

// logRecord is a single diagnostic line destined for the configured log
// sink.  No schema stability is promised for this type or its String form.
type logRecord struct {
	at     time.Time
	device string
	job    string
	msg    string
	err    error
}

func (r logRecord) String() string {
	ts := r.at.Format(time.RFC3339Nano)
	if r.err != nil {
		return fmt.Sprintf("%s device=%s job=%s: %s: %v", ts, r.device, r.job, r.msg, r.err)
	}

	return fmt.Sprintf("%s device=%s job=%s: %s", ts, r.device, r.job, r.msg)
}

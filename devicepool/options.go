// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package devicepool

import (
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"

	"github.com/nodeforge/devicepool/clock"
)

const (
	DefaultMaxJobsPerWorker    = 10
	DefaultMaxPendingPerWorker = 100
	DefaultFinishedLimit       = 10
	DefaultJoinTimeout         = time.Second
)

// Options configures a DevicePoolExecutor, following the same
// struct-plus-unexported-accessor-defaults pattern as device.Options: every
// field is optional, and an unexported accessor method supplies the default
// when the field's zero value isn't a sensible setting.
type Options struct {
	// MaxJobsPerWorker bounds a worker's lifetime job count before Recycle
	// replaces it. If not supplied, DefaultMaxJobsPerWorker is used.
	MaxJobsPerWorker int

	// MaxPendingPerWorker is the capacity of each device's pending queue. If
	// not supplied, DefaultMaxPendingPerWorker is used.
	MaxPendingPerWorker int

	// FinishedLimit bounds the length of the finished-job history. If not
	// supplied, DefaultFinishedLimit is used.
	FinishedLimit int

	// JoinTimeout bounds how long Join and Recycle wait for a worker or
	// telemetry fan to stop gracefully. If not supplied, DefaultJoinTimeout
	// is used.
	JoinTimeout time.Duration

	// LogSink receives one line per log record, with a trailing blank line
	// as a separator. If nil, log records are discarded.
	LogSink io.Writer

	// Logger is the structured logger used for operational messages about
	// the pool itself (as opposed to job log records, which go to LogSink).
	// If not supplied, sallust.Default() is used.
	Logger *zap.Logger

	// Registerer is the Prometheus registerer Metrics() collectors are
	// registered against. If nil, prometheus.DefaultRegisterer is used.
	Registerer prometheus.Registerer

	// Clock stamps log records with their emission time. If nil, clock.System()
	// is used. Tests substitute clocktest.Mock for deterministic timestamps.
	Clock clock.Interface
}

func (o *Options) maxJobsPerWorker() int {
	if o != nil && o.MaxJobsPerWorker > 0 {
		return o.MaxJobsPerWorker
	}

	return DefaultMaxJobsPerWorker
}

func (o *Options) maxPendingPerWorker() int {
	if o != nil && o.MaxPendingPerWorker > 0 {
		return o.MaxPendingPerWorker
	}

	return DefaultMaxPendingPerWorker
}

func (o *Options) finishedLimit() int {
	if o != nil && o.FinishedLimit > 0 {
		return o.FinishedLimit
	}

	return DefaultFinishedLimit
}

func (o *Options) joinTimeout() time.Duration {
	if o != nil && o.JoinTimeout > 0 {
		return o.JoinTimeout
	}

	return DefaultJoinTimeout
}

func (o *Options) logSink() io.Writer {
	if o != nil && o.LogSink != nil {
		return o.LogSink
	}

	return io.Discard
}

func (o *Options) logger() *zap.Logger {
	if o != nil && o.Logger != nil {
		return o.Logger
	}

	return sallust.Default()
}

func (o *Options) registerer() prometheus.Registerer {
	if o != nil && o.Registerer != nil {
		return o.Registerer
	}

	return prometheus.DefaultRegisterer
}

func (o *Options) clock() clock.Interface {
	if o != nil && o.Clock != nil {
		return o.Clock
	}

	return clock.System()
}

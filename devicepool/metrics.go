// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package devicepool

import (
	"github.com/go-kit/kit/metrics"
	gokitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nodeforge/devicepool/xmetrics"
)

const (
	JobsSubmittedCounter    = "jobs_submitted_count"
	JobsFinishedCounter     = "jobs_finished_count"
	JobsBackpressureCounter = "jobs_backpressure_count"
	WorkerRecycleCounter    = "worker_recycle_count"
	ActiveJobsGauge         = "active_jobs"
	JobProgressHistogram    = "job_progress"
)

// Metrics is the devicepool module function that describes the executor's
// default metrics, in the same style as device.Metrics.
func Metrics() []xmetrics.Metric {
	return []xmetrics.Metric{
		{Name: JobsSubmittedCounter, Type: xmetrics.CounterType, LabelNames: []string{"device"}},
		{Name: JobsFinishedCounter, Type: xmetrics.CounterType, LabelNames: []string{"device", "cancelled"}},
		{Name: JobsBackpressureCounter, Type: xmetrics.CounterType, LabelNames: []string{"device"}},
		{Name: WorkerRecycleCounter, Type: xmetrics.CounterType, LabelNames: []string{"device", "reason"}},
		{Name: ActiveJobsGauge, Type: xmetrics.GaugeType, LabelNames: []string{"device"}},
		{Name: JobProgressHistogram, Type: xmetrics.HistogramType, LabelNames: []string{"device"}},
	}
}

// Measures is the bundle of go-kit metrics instruments, backed by
// Prometheus, that the executor and its workers update. It is built from
// plain xmetrics.Metric descriptors rather than hand-wiring
// prometheus.NewCounterVec calls throughout the scheduler.
type Measures struct {
	JobsSubmitted    metrics.Counter
	JobsFinished     metrics.Counter
	JobsBackpressure metrics.Counter
	WorkerRecycle    metrics.Counter
	ActiveJobs       metrics.Gauge
	JobProgress      metrics.Histogram

	collectors []prometheus.Collector
}

// NewMeasures merges devicepool's built-in metrics with the given additional
// modules (allowing callers to preregister overrides the way
// xmetrics.Merger supports) and builds go-kit wrappers around the resulting
// Prometheus collectors.
func NewMeasures(registerer prometheus.Registerer, modules ...xmetrics.Module) (Measures, error) {
	merger := xmetrics.NewMerger().AddModules(false, Metrics).AddModules(true, modules...)
	if err := merger.Err(); err != nil {
		return Measures{}, err
	}

	collectors := make(map[string]prometheus.Collector, len(merger.Merged()))
	for name, m := range merger.Merged() {
		c, err := xmetrics.NewCollector(m)
		if err != nil {
			return Measures{}, err
		}

		collectors[name] = c
	}

	var measures Measures
	for _, c := range collectors {
		if err := registerer.Register(c); err != nil {
			return Measures{}, err
		}

		measures.collectors = append(measures.collectors, c)
	}

	named := func(name string) prometheus.Collector {
		return collectors[prometheus.BuildFQName(xmetrics.DefaultNamespace, xmetrics.DefaultSubsystem, name)]
	}

	return Measures{
		JobsSubmitted:    gokitprometheus.NewCounter(named(JobsSubmittedCounter).(*prometheus.CounterVec)),
		JobsFinished:     gokitprometheus.NewCounter(named(JobsFinishedCounter).(*prometheus.CounterVec)),
		JobsBackpressure: gokitprometheus.NewCounter(named(JobsBackpressureCounter).(*prometheus.CounterVec)),
		WorkerRecycle:    gokitprometheus.NewCounter(named(WorkerRecycleCounter).(*prometheus.CounterVec)),
		ActiveJobs:       gokitprometheus.NewGauge(named(ActiveJobsGauge).(*prometheus.GaugeVec)),
		JobProgress:      gokitprometheus.NewHistogram(named(JobProgressHistogram).(*prometheus.HistogramVec)),
		collectors:       measures.collectors,
	}, nil
}

// Collectors returns the Prometheus collectors registered for these
// Measures, so an external collaborator's own metrics handler (out of scope
// per the Non-goals) can expose them without re-registering.
func (m Measures) Collectors() []prometheus.Collector {
	return m.collectors
}

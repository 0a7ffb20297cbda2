// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"github.com/go-kit/kit/metrics/discard"
	"github.com/nodeforge/devicepool/xmetrics"
)

type instrumentOptions struct {
	failures xmetrics.Adder
}

var defaultOptions = instrumentOptions{
	failures: discard.NewCounter(),
}

// InstrumentOption represents a configurable option for instrumenting a semaphore
type InstrumentOption func(*instrumentOptions)

// WithFailures establishes a metric that tracks how many times a resource was unable to
// be acquired, e.g. because the queue was at capacity.
func WithFailures(a xmetrics.Adder) InstrumentOption {
	return func(io *instrumentOptions) {
		if a != nil {
			io.failures = a
		} else {
			io.failures = discard.NewCounter()
		}
	}
}

// InstrumentCloseable decorates an existing Closeable semaphore with a failure counter, incremented
// every time TryAcquire is unable to reserve a resource.
func InstrumentCloseable(c Closeable, o ...InstrumentOption) Closeable {
	if c == nil {
		panic("A delegate semaphore is required")
	}

	io := defaultOptions
	for _, f := range o {
		f(&io)
	}

	return &instrumentedCloseable{
		delegate: c,
		failures: io.failures,
	}
}

// instrumentedCloseable is the internal decorator around Closeable that applies a failure metric.
type instrumentedCloseable struct {
	delegate Closeable
	failures xmetrics.Adder
}

func (ic *instrumentedCloseable) TryAcquire() bool {
	acquired := ic.delegate.TryAcquire()
	if !acquired {
		ic.failures.Add(1.0)
	}

	return acquired
}

func (ic *instrumentedCloseable) Release() error {
	return ic.delegate.Release()
}

func (ic *instrumentedCloseable) Close() error {
	return ic.delegate.Close()
}

func (ic *instrumentedCloseable) Closed() <-chan struct{} {
	return ic.delegate.Closed()
}

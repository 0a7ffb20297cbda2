// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xmetrics

// Adder represents a metric to which deltas can be added.  Go-kit's metrics.Counter and metrics.Gauge,
// among others, implement this interface.  It's the minimal shape semaphore.WithFailures needs to
// accept a caller-supplied failure counter without depending on go-kit directly.
type Adder interface {
	Add(float64)
}

// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"testing"

	"github.com/go-kit/kit/metrics/generic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentCloseableCountsFailures(t *testing.T) {
	failures := generic.NewCounter("failures")
	s := InstrumentCloseable(NewCloseable(1), WithFailures(failures))

	assert.True(t, s.TryAcquire())
	assert.Zero(t, failures.Value())

	assert.False(t, s.TryAcquire(), "capacity is exhausted")
	assert.Equal(t, 1.0, failures.Value())

	require.NoError(t, s.Release())
	assert.True(t, s.TryAcquire())
}

func TestInstrumentCloseableDelegatesCloseAndRelease(t *testing.T) {
	s := InstrumentCloseable(NewCloseable(1))

	require.True(t, s.TryAcquire())
	require.NoError(t, s.Release())
	require.NoError(t, s.Close())

	select {
	case <-s.Closed():
	default:
		t.Fatal("Closed() channel should be closed")
	}
}

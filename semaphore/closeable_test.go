// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloseableTryAcquireRespectsCapacity(t *testing.T) {
	s := NewCloseable(2)

	assert.True(t, s.TryAcquire())
	assert.True(t, s.TryAcquire())
	assert.False(t, s.TryAcquire(), "a third acquire should fail once capacity is exhausted")

	require.NoError(t, s.Release())
	assert.True(t, s.TryAcquire(), "releasing a slot should make room for another acquire")
}

func TestCloseableCloseIsIdempotent(t *testing.T) {
	s := NewCloseable(1)

	require.NoError(t, s.Close())
	assert.ErrorIs(t, s.Close(), ErrClosed)

	select {
	case <-s.Closed():
	default:
		t.Fatal("Closed() channel should be closed")
	}
}

func TestCloseableRejectsAfterClose(t *testing.T) {
	s := NewCloseable(1)
	require.NoError(t, s.Close())

	assert.False(t, s.TryAcquire())
	assert.ErrorIs(t, s.Release(), ErrClosed)
}

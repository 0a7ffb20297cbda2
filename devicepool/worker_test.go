// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package devicepool

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nodeforge/devicepool/clock"
	"github.com/nodeforge/devicepool/semaphore"
)

type testWorkerStreams struct {
	progressCh chan progressRecord
	finishedCh chan finishedRecord
	logCh      chan logRecord
}

func newTestWorker(t *testing.T, capacity int) (*worker, *pendingQueue, testWorkerStreams) {
	t.Helper()

	device := NewDeviceParams("cuda:0", 0, nil)
	streams := testWorkerStreams{
		progressCh: make(chan progressRecord, capacity),
		finishedCh: make(chan finishedRecord, capacity),
		logCh:      make(chan logRecord, capacity),
	}

	queue := newPendingQueue(capacity, semaphore.NewCloseable(capacity))
	wctx := newWorkerContext(device, clock.System(), streams.progressCh, streams.finishedCh, streams.logCh)
	w := newWorker(device, queue, wctx, zap.NewNop())

	return w, queue, streams
}

func TestWorkerDispatchRunsJobAndFinishes(t *testing.T) {
	w, queue, streams := newTestWorker(t, 1)
	w.start()
	defer w.requestStop()

	ran := make(chan struct{})
	require.NoError(t, queue.tryEnqueue(pendingEntry{
		key: "j1",
		fn: func(ctx *WorkerContext, args any) error {
			close(ran)
			return nil
		},
	}))

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("job never ran")
	}

	select {
	case r := <-streams.finishedCh:
		assert.Equal(t, "j1", r.job)
	case <-time.After(time.Second):
		t.Fatal("expected a finished record")
	}
}

func TestWorkerRecoversFromPanic(t *testing.T) {
	w, queue, _ := newTestWorker(t, 1)
	w.start()
	defer w.requestStop()

	require.NoError(t, queue.tryEnqueue(pendingEntry{
		key: "j1",
		fn: func(ctx *WorkerContext, args any) error {
			panic("boom")
		},
	}))

	require.Eventually(t, func() bool {
		return w.isAlive()
	}, time.Second, time.Millisecond)

	// the worker loop itself must still be alive and able to take more work.
	ran := make(chan struct{})
	require.NoError(t, queue.tryEnqueue(pendingEntry{
		key: "j2",
		fn: func(ctx *WorkerContext, args any) error {
			close(ran)
			return nil
		},
	}))

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("worker did not process job after a prior panic")
	}
}

func TestWorkerJobErrorIsLogged(t *testing.T) {
	w, queue, streams := newTestWorker(t, 1)
	w.start()
	defer w.requestStop()

	require.NoError(t, queue.tryEnqueue(pendingEntry{
		key: "j1",
		fn: func(ctx *WorkerContext, args any) error {
			return errors.New("job failed")
		},
	}))

	select {
	case r := <-streams.logCh:
		assert.Equal(t, "job failed", r.msg)
	case <-time.After(time.Second):
		t.Fatal("expected a log record for the failed job")
	}
}

func TestWorkerRequestStopIsIdempotent(t *testing.T) {
	w, _, _ := newTestWorker(t, 1)
	w.start()

	w.requestStop()
	w.requestStop()

	select {
	case <-w.done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}

	assert.False(t, w.isAlive())
}

// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package devicepool

import "github.com/nodeforge/devicepool/semaphore"

// pendingQueue is a single device's bounded FIFO of not-yet-started jobs.
// Capacity is gated by a closeable semaphore so enqueue can report
// Backpressure without blocking; the gate is also instrumented, giving a
// failure metric for free. The entries channel is the
// actual FIFO store and survives worker recycling unchanged; closing the
// gate only marks it for metrics/bookkeeping purposes at Join — the
// worker's own stop channel is what unblocks its dequeue loop.
type pendingQueue struct {
	entries chan pendingEntry
	gate    semaphore.Closeable
}

func newPendingQueue(capacity int, gate semaphore.Closeable) *pendingQueue {
	return &pendingQueue{
		entries: make(chan pendingEntry, capacity),
		gate:    gate,
	}
}

// tryEnqueue attempts a non-blocking enqueue, returning ErrBackpressure when
// the queue is at capacity.
func (q *pendingQueue) tryEnqueue(e pendingEntry) error {
	if !q.gate.TryAcquire() {
		return ErrBackpressure
	}

	q.entries <- e
	return nil
}

// release returns one unit of capacity to the gate once a worker has
// dequeued an entry for execution.
func (q *pendingQueue) release() {
	_ = q.gate.Release()
}

// depth returns the current count of queued-but-not-started entries.
func (q *pendingQueue) depth() int {
	return len(q.entries)
}

// close closes the gate, so every later tryEnqueue fails with
// ErrBackpressure. It does not unblock a worker waiting to dequeue; entries
// already queued remain retrievable until drained.
func (q *pendingQueue) close() {
	_ = q.gate.Close()
}

// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"errors"
	"io"
	"sync/atomic"
)

var (
	// ErrClosed is returned when a closeable semaphore has been closed
	ErrClosed = errors.New("the semaphore has been closed")
)

const (
	stateOpen   int32 = 0
	stateClosed int32 = 1
)

// Interface represents the non-blocking subset of a semaphore that a bounded
// pending queue gate needs: TryAcquire to reserve a slot without blocking,
// and Release to give one back once a worker dequeues an entry.
type Interface interface {
	// TryAcquire attempts to acquire a resource, returning false immediately
	// if a resource was unavailable. This method returns true if the
	// resource was acquired.
	TryAcquire() bool

	// Release relinquishes control of a resource.  Must be invoked after a
	// successful TryAcquire in order to allow other goroutines to use the
	// resource(s).  Returns ErrClosed if the semaphore has been closed.
	Release() error
}

// Closeable represents a semaphore than can be closed.  Once closed, a semaphore cannot be reopened.
//
// Any goroutine calling TryAcquire after a Closeable is closed will get false, and Release will
// return ErrClosed without modifying the instance.  Both Close() and Release() are idempotent.
type Closeable interface {
	io.Closer
	Interface

	// Closed() returns a channel that is closed when this semaphore has been closed.
	// This channel has similar use cases to context.Done().
	Closed() <-chan struct{}
}

// NewCloseable returns a semaphore which honors close-once semantics.
//
// A Closeable semaphore has a very narrow set of use cases.  Closing the semaphore signals any goroutines
// attempting to acquire resources that those resources are no longer available.  This is useful in situations
// where a transient resource, such as a pending-work queue, will be shut down.
func NewCloseable(count int) Closeable {
	if count < 1 {
		panic("The count must be positive")
	}

	return &closeable{
		c:      make(chan struct{}, count),
		closed: make(chan struct{}),
	}
}

type closeable struct {
	c chan struct{}

	state  int32
	closed chan struct{}
}

func (cs *closeable) Close() error {
	if atomic.CompareAndSwapInt32(&cs.state, stateOpen, stateClosed) {
		close(cs.closed)
		return nil
	}

	return ErrClosed
}

func (cs *closeable) Closed() <-chan struct{} {
	return cs.closed
}

func (cs *closeable) checkClosed() bool {
	return atomic.LoadInt32(&cs.state) == stateClosed
}

func (cs *closeable) TryAcquire() bool {
	if cs.checkClosed() {
		return false
	}

	select {
	case cs.c <- struct{}{}:
		if cs.checkClosed() {
			return false
		}

		return true

	default:
		return false
	}
}

func (cs *closeable) Release() error {
	if cs.checkClosed() {
		return ErrClosed
	}

	<-cs.c
	return nil
}

// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package semaphore provides a simple channel-based, closeable counting semaphore.
The devicepool package uses it to give every device's pending queue non-blocking,
bounded enqueue semantics, instrumented with a failure counter.
*/
package semaphore

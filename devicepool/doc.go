// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package devicepool implements a job scheduler that dispatches opaque work
units to a fixed set of device-bound workers, fans in progress and
completion telemetry, supports cooperative cancellation, and recycles
workers to bound resource use.

A pool is built once over an ordered list of devices:

	pool, err := devicepool.NewExecutor(devices, &devicepool.Options{
	    MaxJobsPerWorker: 50,
	    LogSink:          logFile,
	})

Callers submit jobs by key, with an optional device pin:

	err := pool.Submit("job-1", runPipeline, args, nil)

The job function receives a *WorkerContext it can query for cancellation
and use to emit progress:

	func runPipeline(ctx *devicepool.WorkerContext, args any) error {
	    progress := ctx.ProgressCallback()
	    for step := 0; step < total; step++ {
	        if err := progress(step); err != nil {
	            return err
	        }
	    }
	    return nil
	}

Submit is non-blocking: a full pending queue fails fast with
ErrBackpressure rather than waiting. Cancel, Done, and Status observe
eventually-consistent state without blocking. Join tears the pool down,
waiting up to the configured join timeout for workers and telemetry fans to
stop.
*/
package devicepool

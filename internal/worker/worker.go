// Copyright © 2014-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package worker runs the WFC solver on a single dedicated goroutine so
// the region coordinator's control flow can treat a solve as one
// asynchronous call: submit a request, suspend, resume with a result.
// At most one solve runs at a time per Worker; a caller that wants
// concurrent solves across regions starts one Worker per region, each
// fed its own seed derived from the world's parent seed.
package worker

import (
	"context"

	"github.com/hexwfc/world/internal/rules"
	"github.com/hexwfc/world/internal/solver"
)

// request is one submitted solve, paired with the channel its result
// is returned on.
type request struct {
	idx   *rules.Index
	input solver.Input
	reply chan reply
}

type reply struct {
	result *solver.Result
	err    error
}

// Worker is a single background solver goroutine.
type Worker struct {
	jobs chan request
	quit chan struct{}
}

// New starts a Worker's goroutine and returns immediately.
func New() *Worker {
	w := &Worker{
		jobs: make(chan request),
		quit: make(chan struct{}),
	}
	go w.run()
	return w
}

// run loops forever processing solve requests, one at a time, until
// Stop closes the quit channel.
func (w *Worker) run() {
	for {
		select {
		case req := <-w.jobs:
			result, err := solver.Solve(req.idx, req.input)
			req.reply <- reply{result: result, err: err}
		case <-w.quit:
			return
		}
	}
}

// Solve submits one solve request and waits for its result, honoring
// ctx for cancellation/timeout. On timeout the caller abandons the
// solve; the worker goroutine itself keeps running it to completion in
// the background and discards the result. A cancelled call never
// corrupts anything because nothing is committed until the caller
// accepts a complete result.
func (w *Worker) Solve(ctx context.Context, idx *rules.Index, in solver.Input) (*solver.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	req := request{idx: idx, input: in, reply: make(chan reply, 1)}
	select {
	case w.jobs <- req:
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-w.quit:
		return nil, context.Canceled
	}

	select {
	case rep := <-req.reply:
		return rep.result, rep.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Stop terminates the worker goroutine. Any solve in flight when Stop
// is called still finishes (its reply channel is buffered, so the
// goroutine never blocks trying to deliver a reply nobody reads).
func (w *Worker) Stop() {
	close(w.quit)
}

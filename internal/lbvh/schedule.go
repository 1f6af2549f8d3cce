package lbvh

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// WorkDivision identifies one worker's shard of a fan-out: Idx is this
// worker's index in [0, Max).
type WorkDivision struct {
	Idx, Max int
}

// Scheduler fans a function out across some number of shards, blocking
// until every shard's invocation has returned. Callers needing a
// single-threaded build (e.g. for deterministic debugging) can supply
// DefaultScheduler{Shards: 1}.
type Scheduler interface {
	Run(fn func(WorkDivision))
}

// DefaultScheduler runs one goroutine per shard over golang.org/x/sync's
// errgroup, with a shard count of runtime.GOMAXPROCS(0) (clamped to at
// least 1). This generalizes the reference renderer's own raw
// sync.WaitGroup worker-pool loop into the pluggable shape this package's
// bottom-up AABB propagation needs.
type DefaultScheduler struct {
	// Shards overrides the worker count when > 0; otherwise
	// runtime.GOMAXPROCS(0) is used.
	Shards int
}

func (d DefaultScheduler) shardCount() int {
	if d.Shards > 0 {
		return d.Shards
	}
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		n = 1
	}
	return n
}

// Run invokes fn once per shard and waits for all of them to return. fn
// itself never returns an error (propagation cannot fail), so errgroup is
// used purely for its structured goroutine fan-out/join, not its error
// aggregation.
func (d DefaultScheduler) Run(fn func(WorkDivision)) {
	n := d.shardCount()
	if n == 1 {
		fn(WorkDivision{Idx: 0, Max: 1})
		return
	}
	var g errgroup.Group
	for i := 0; i < n; i++ {
		wd := WorkDivision{Idx: i, Max: n}
		g.Go(func() error {
			fn(wd)
			return nil
		})
	}
	_ = g.Wait()
}

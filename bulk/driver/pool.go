// Copyright 2025 go-bulk Authors. SPDX-License-Identifier: Apache-2.0

// Package driver partitions global inputs across many independent execution
// groups and launches them concurrently. It is the outer layer of the bulk
// model: the group-local algorithms in bulk/algo never see more than their
// own partition, and the driver guarantees the partitions compose: carries
// threaded between scan chunks, merge-path splits between merge groups.
package driver

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool bounds how many execution groups run concurrently. Each group already
// occupies GroupSize goroutines, so launching every group at once on a large
// input oversubscribes the machine; the pool's persistent workers admit
// Groups launches at a time and are reused across operations.
//
//	pool := driver.NewPool(0) // one launch slot per processor
//	defer pool.Close()
//
// A nil *Pool is valid everywhere one is accepted: launches then run one
// group at a time, which is the right degenerate mode for tests and for
// machines where the caller manages parallelism elsewhere.
type Pool struct {
	slots     int
	workC     chan launchItem
	closeOnce sync.Once
	closed    atomic.Bool
}

type launchItem struct {
	run  func()
	done *sync.WaitGroup
}

// NewPool creates a pool with the given number of launch slots. If slots
// <= 0, one slot per logical processor is used.
func NewPool(slots int) *Pool {
	if slots <= 0 {
		slots = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		slots: slots,
		workC: make(chan launchItem, slots),
	}
	for i := 0; i < slots; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.run()
		item.done.Done()
	}
}

// Slots returns the number of concurrent launch slots.
func (p *Pool) Slots() int {
	if p == nil {
		return 1
	}
	return p.slots
}

// Close shuts the pool down once queued launches finish. Safe to call more
// than once; launches submitted after Close run sequentially in the caller.
func (p *Pool) Close() {
	if p == nil {
		return
	}
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// each runs fn(i) for every i in [0, n) through the pool and blocks until
// all have returned. Groups are coarse units of work, so each launch is one
// item; no batching is needed.
func (p *Pool) each(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	if p == nil || p.closed.Load() || n == 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		i := i
		p.workC <- launchItem{
			run:  func() { fn(i) },
			done: &wg,
		}
	}
	wg.Wait()
}

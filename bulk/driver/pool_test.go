// Copyright 2025 go-bulk Authors. SPDX-License-Identifier: Apache-2.0

package driver

import (
	"sync/atomic"
	"testing"
)

func TestPoolEach(t *testing.T) {
	pool := NewPool(3)
	defer pool.Close()

	var hits [50]atomic.Int32
	pool.each(len(hits), func(i int) {
		hits[i].Add(1)
	})
	for i := range hits {
		if got := hits[i].Load(); got != 1 {
			t.Fatalf("index %d ran %d times", i, got)
		}
	}
}

func TestPoolEachReused(t *testing.T) {
	pool := NewPool(2)
	defer pool.Close()

	var total atomic.Int64
	for i := 0; i < 20; i++ {
		pool.each(10, func(int) { total.Add(1) })
	}
	if got := total.Load(); got != 200 {
		t.Fatalf("total = %d, want 200", got)
	}
}

func TestPoolNil(t *testing.T) {
	var pool *Pool
	if pool.Slots() != 1 {
		t.Errorf("nil pool Slots = %d, want 1", pool.Slots())
	}
	pool.Close() // must not panic

	ran := 0
	pool.each(5, func(int) { ran++ })
	if ran != 5 {
		t.Errorf("nil pool ran %d of 5", ran)
	}
}

func TestPoolClosedFallsBack(t *testing.T) {
	pool := NewPool(2)
	pool.Close()
	pool.Close() // idempotent

	ran := 0
	pool.each(4, func(int) { ran++ })
	if ran != 4 {
		t.Errorf("closed pool ran %d of 4", ran)
	}
}

func TestPoolDefaultSlots(t *testing.T) {
	pool := NewPool(0)
	defer pool.Close()
	if pool.Slots() < 1 {
		t.Errorf("Slots = %d", pool.Slots())
	}
}

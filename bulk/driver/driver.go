// Copyright 2025 go-bulk Authors. SPDX-License-Identifier: Apache-2.0

package driver

import (
	"fmt"

	"github.com/ajroetker/go-bulk/bulk"
	"github.com/ajroetker/go-bulk/bulk/algo"
)

const (
	defaultGroupSize = 8
	defaultGrain     = 4
)

// Config shapes the groups a driver operation launches. Zero values select
// defaults: GroupSize 8, Grain 4, and enough groups to cover the input
// without exceeding the detected processor count.
type Config struct {
	// Groups caps the number of partitions the input is split into.
	Groups int

	// GroupSize is the number of agents per group.
	GroupSize int

	// Grain is the number of elements per agent per phase.
	Grain int
}

func (c Config) withDefaults(n int) Config {
	if c.Groups < 0 || c.GroupSize < 0 || c.Grain < 0 {
		panic(fmt.Sprintf("driver: invalid config %+v", c))
	}
	if c.GroupSize == 0 {
		c.GroupSize = defaultGroupSize
	}
	if c.Grain == 0 {
		c.Grain = defaultGrain
	}
	if c.Groups == 0 {
		c.Groups = bulk.Detect().SuggestGroups(n, c.GroupSize*c.Grain)
	}
	return c
}

// bounds cuts [0, n) into at most groups contiguous chunks, every boundary
// aligned to tile so only the final chunk holds a partial tile. n > 0.
func bounds(n, groups, tile int) []int {
	chunks := min(groups, (n+tile-1)/tile)
	span := (n + chunks - 1) / chunks
	span = (span + tile - 1) / tile * tile
	b := []int{0}
	for off := span; off < n; off += span {
		b = append(b, off)
	}
	return append(b, n)
}

// InclusiveScanInit scans in into out with seed init, partitioned across
// independent execution groups, and returns the global carry. The global
// result is identical to a single group-local algo.InclusiveScanInit over
// the whole input.
//
// Scan carries cross chunk boundaries, so the driver runs two passes: each
// chunk is first folded sequentially to its total (work-efficient, one
// combine per element), a serial exclusive scan over the per-chunk totals
// yields each chunk's incoming carry, and only then does each group scan its
// chunk seeded with that carry.
func InclusiveScanInit[T any](p *Pool, cfg Config, in, out []T, init T, op algo.Op[T]) T {
	return driveScan(p, cfg, in, out, init, op, false)
}

// InclusiveScan is InclusiveScanInit seeded with the first input element,
// matching algo.InclusiveScan. An empty input writes nothing.
func InclusiveScan[T any](p *Pool, cfg Config, in, out []T, op algo.Op[T]) {
	if len(in) == 0 {
		return
	}
	out[0] = in[0]
	driveScan(p, cfg, in[1:], out[1:], in[0], op, false)
}

// ExclusiveScan is the exclusive counterpart of InclusiveScanInit:
// out[i] = init ⊕ in[0] ⊕ ... ⊕ in[i-1]. Returns the global carry.
func ExclusiveScan[T any](p *Pool, cfg Config, in, out []T, init T, op algo.Op[T]) T {
	return driveScan(p, cfg, in, out, init, op, true)
}

func driveScan[T any](p *Pool, cfg Config, in, out []T, init T, op algo.Op[T], exclusive bool) T {
	if len(in) == 0 {
		return init
	}
	cfg = cfg.withDefaults(len(in))
	b := bounds(len(in), cfg.Groups, cfg.GroupSize*cfg.Grain)
	chunks := len(b) - 1

	// Pass 1: fold every chunk to its total, left to right.
	totals := make([]T, chunks)
	p.each(chunks, func(i int) {
		chunk := in[b[i]:b[i+1]]
		x := chunk[0]
		for _, v := range chunk[1:] {
			x = op(x, v)
		}
		totals[i] = x
	})

	// Serial exclusive scan of the totals: each chunk's incoming carry.
	carries := make([]T, chunks)
	carry := init
	for i, t := range totals {
		carries[i] = carry
		carry = op(carry, t)
	}

	// Pass 2: one group per chunk, seeded with its carry.
	p.each(chunks, func(i int) {
		g := bulk.NewGroup(cfg.GroupSize, cfg.Grain)
		g.Launch(func(a *bulk.Agent) {
			if exclusive {
				algo.ExclusiveScan(a, in[b[i]:b[i+1]], out[b[i]:b[i+1]], carries[i], op)
			} else {
				algo.InclusiveScanInit(a, in[b[i]:b[i+1]], out[b[i]:b[i+1]], carries[i], op)
			}
		})
	})
	return carry
}

// Merge merges the sorted ranges in1 and in2 into out, which must hold
// len(in1)+len(in2) elements, partitioned across independent execution
// groups. Stable with preference to in1, exactly as algo.Merge.
//
// Unlike scan, nothing crosses a partition boundary: one merge-path search
// per group boundary fixes each group's share of both inputs up front, and
// every group then writes its disjoint output span with no further
// coordination.
func Merge[T any](p *Pool, cfg Config, in1, in2, out []T, comp algo.Comp[T]) {
	total := len(in1) + len(in2)
	if total == 0 {
		return
	}
	cfg = cfg.withDefaults(total)
	b := bounds(total, cfg.Groups, cfg.GroupSize*cfg.Grain)
	groups := len(b) - 1

	splits1 := make([]int, groups+1)
	splits2 := make([]int, groups+1)
	for i := 1; i < groups; i++ {
		splits1[i], splits2[i] = algo.MergePath(in1, in2, b[i], comp)
	}
	splits1[groups], splits2[groups] = len(in1), len(in2)

	p.each(groups, func(i int) {
		g := bulk.NewGroup(cfg.GroupSize, cfg.Grain)
		g.Launch(func(a *bulk.Agent) {
			algo.Merge(a,
				in1[splits1[i]:splits1[i+1]],
				in2[splits2[i]:splits2[i+1]],
				out[b[i]:b[i+1]],
				comp)
		})
	})
}

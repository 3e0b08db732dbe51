// Copyright 2025 go-bulk Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package algo

import (
	"github.com/ajroetker/go-bulk/bulk"
)

// Op is a binary combining operation. Scan requires it to be associative;
// it is always applied left to right.
type Op[T any] func(T, T) T

// smallInclusiveScanN scans data[0:n] in place, one element per agent, in
// ceil(log2 n) rounds of stride 1, 2, 4, ... (Hillis-Steele). Step-efficient
// rather than work-efficient, which is the right trade at group scale.
// Agents with index >= n participate in the barriers but touch nothing.
//
// Collective. data is shared scratch; the caller's preceding barrier must
// order the writes that populated it.
func smallInclusiveScanN[T any](a *bulk.Agent, data []T, n int, op Op[T]) {
	tid := a.Index()
	var x T
	if tid < n {
		x = data[tid]
	}
	a.Sync()
	for offset := 1; offset < n; offset += offset {
		if tid >= offset && tid < n {
			x = op(data[tid-offset], x)
		}
		a.Sync()
		if tid < n {
			data[tid] = x
		}
		a.Sync()
	}
}

// smallExclusiveScanN exclusive-scans data[0:n] in place, seeded with init,
// and returns the group aggregate: the combination of init with all n
// elements. Agent i ends up with the combination of init and elements
// 0..i-1; agent 0 gets init. n == 0 writes nothing and returns init.
//
// Collective, with the same shared-scratch contract as smallInclusiveScanN.
func smallExclusiveScanN[T any](a *bulk.Agent, data []T, n int, init T, op Op[T]) T {
	tid := a.Index()
	if n > 0 && tid == 0 {
		data[0] = op(init, data[0])
	}
	a.Sync()

	smallInclusiveScanN(a, data, n, op)

	total := init
	if n > 0 {
		total = data[n-1]
	}
	x := init
	if tid > 0 && tid-1 < n {
		x = data[tid-1]
	}
	a.Sync()
	if tid < n {
		data[tid] = x
	}
	a.Sync()
	return total
}

// smallExclusiveScanBuffered is smallExclusiveScanN specialized to n == group
// size, double-buffered so each round reads one slot and writes the other
// instead of shifting in place. The live slot is tracked as an index toggled
// per round; slots[0] and slots[1] are caller-supplied, equally sized,
// non-aliasing scratch of length Size. On return slots[0] holds the
// exclusive results. One barrier per round instead of two.
func smallExclusiveScanBuffered[T any](a *bulk.Agent, slots [2][]T, init T, op Op[T]) T {
	size := a.Size()
	tid := a.Index()

	if tid == 0 {
		slots[0][0] = op(init, slots[0][0])
	}
	x := slots[0][tid]
	a.Sync()

	cur := 0
	for offset := 1; offset < size; offset += offset {
		if tid >= offset {
			x = op(slots[cur][tid-offset], x)
		}
		cur ^= 1
		slots[cur][tid] = x
		a.Sync()
	}

	total := slots[cur][size-1]
	x = init
	if tid > 0 {
		x = slots[cur][tid-1]
	}
	a.Sync()
	slots[0][tid] = x
	a.Sync()
	return total
}

// scanTiles is the shared body of the tiled scans. It walks [0, len(in)) in
// tiles of Size*Grain elements: stage the tile into scratch, fold each
// agent's grain sequentially, exclusive-scan the per-agent folds seeded with
// the running carry, then re-walk the grain emitting prefixes. The direction
// of step 5, combine-then-write versus write-then-combine, is the entire
// difference between the inclusive and exclusive algorithms.
//
// Reads in once, writes every element of out exactly once, and returns the
// carry: the combination of the incoming carry with the whole input.
func scanTiles[T any](a *bulk.Agent, in, out []T, carry T, op Op[T], exclusive bool) T {
	if len(in) == 0 {
		return carry
	}
	size, grain := a.Size(), a.Grain()
	tile := size * grain
	tid := a.Index()

	mark := a.ScratchMark()
	// Per-agent partial sums (double-buffered) and the two staging regions.
	// Four distinct allocations: none of them may alias, and input staging
	// and result staging are live at the same time.
	sums := [2][]T{bulk.Alloc[T](a, size), bulk.Alloc[T](a, size)}
	stageIn := bulk.Alloc[T](a, tile)
	stageOut := bulk.Alloc[T](a, tile)
	defer a.ScratchRelease(mark)

	local := make([]T, grain)

	for start := 0; start < len(in); start += tile {
		n := min(tile, len(in)-start)

		bulk.CopyN(a, in[start:start+n], n, stageIn)
		a.Sync()

		// Transpose out of staging: each agent folds its grain run.
		lo := tid * grain
		count := max(0, min(grain, n-lo))
		var x T
		for i := 0; i < count; i++ {
			local[i] = stageIn[lo+i]
			if i == 0 {
				x = local[i]
			} else {
				x = op(x, local[i])
			}
		}
		if count > 0 {
			sums[0][tid] = x
		}
		a.Sync()

		// Scan the per-agent folds, threading the carry. A boundary tile can
		// leave trailing agents without elements; their sums slots are stale,
		// so the fixed-size buffered scan would fold garbage into the carry.
		// Scan only the active prefix in that case.
		if active := (n + grain - 1) / grain; active == size {
			carry = smallExclusiveScanBuffered(a, sums, carry, op)
		} else {
			carry = smallExclusiveScanN(a, sums[0], active, carry, op)
		}

		// Re-walk the grain, accumulating from this agent's prefix.
		if count > 0 {
			x = sums[0][tid]
		}
		for i := 0; i < count; i++ {
			if exclusive {
				stageOut[lo+i] = x
				x = op(x, local[i])
			} else {
				x = op(x, local[i])
				stageOut[lo+i] = x
			}
		}
		a.Sync()

		bulk.CopyN(a, stageOut, n, out[start:start+n])
		// No barrier needed before the next tile's staging: the next write
		// to stageOut sits behind two barriers, and stageIn is a different
		// allocation than the stageOut a lagging agent may still be reading.
	}
	return carry
}

// InclusiveScanInit cooperatively computes the inclusive prefix scan of in
// into out, seeded with init: out[i] = init ⊕ in[0] ⊕ ... ⊕ in[i]. It
// returns the carry (init combined with the entire input), which all agents
// observe identically; an empty input returns init unchanged. in and out
// must not overlap and len(out) must be at least len(in).
//
// Collective. Seeding the next call with the returned carry is equivalent to
// scanning the concatenated input in one call.
func InclusiveScanInit[T any](a *bulk.Agent, in, out []T, init T, op Op[T]) T {
	return scanTiles(a, in, out, init, op, false)
}

// InclusiveScan is InclusiveScanInit with the first input element as the
// seed: out[i] = in[0] ⊕ ... ⊕ in[i]. An empty input writes nothing.
// Collective.
func InclusiveScan[T any](a *bulk.Agent, in, out []T, op Op[T]) {
	if len(in) == 0 {
		return
	}
	init := in[0]
	if a.Index() == 0 {
		out[0] = init
	}
	scanTiles(a, in[1:], out[1:], init, op, false)
}

// ExclusiveScan cooperatively computes the exclusive prefix scan of in into
// out: out[i] = init ⊕ in[0] ⊕ ... ⊕ in[i-1], with out[0] = init. Returns
// the carry exactly as InclusiveScanInit does. Collective.
func ExclusiveScan[T any](a *bulk.Agent, in, out []T, init T, op Op[T]) T {
	return scanTiles(a, in, out, init, op, true)
}

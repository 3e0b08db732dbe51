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

// boundedMerge serially merges two sorted ranges into out, emitting at most
// bound elements: exactly min(bound, len(in1)+len(in2)). Returns how many
// elements were consumed from each input. This is the fixed-bound base case
// one agent runs over its private slice of the merge path; bound is the
// group grain there, so the loop body stays branch-predictable and
// unroll-friendly.
//
// Tie rule: when neither range is exhausted and !comp(in2[j], in1[i]), that
// is, the current in1 element sorts at-or-before the current in2 one, emit from
// in1. Equal keys therefore always arrive from in1 first: the merge is
// stable with preference to the left input.
func boundedMerge[T any](in1, in2, out []T, bound int, comp Comp[T]) (int, int) {
	i, j := 0, 0
	for k := 0; k < bound; k++ {
		switch {
		case i >= len(in1):
			if j >= len(in2) {
				return i, j
			}
			out[k] = in2[j]
			j++
		case j >= len(in2):
			out[k] = in1[i]
			i++
		case comp(in2[j], in1[i]):
			out[k] = in2[j]
			j++
		default:
			out[k] = in1[i]
			i++
		}
	}
	return i, j
}

// Merge cooperatively merges the sorted ranges in1 and in2 into out, which
// must hold len(in1)+len(in2) elements and overlap neither input. The result
// is sorted under comp and stable: on equal keys every element of in1
// precedes every element of in2.
//
// The group walks the output in tiles of Size*Grain elements. Per tile, the
// tile's share of each input is found with MergePath and staged contiguously
// in scratch; each agent then locates its own diagonal within the staged
// data with a second, scratch-local MergePath and serially merges up to
// Grain elements into a private buffer. A barrier separates that read-heavy
// search-and-merge phase from the write phase, since the co-rank searches of
// slow agents must not race the staging writes of fast ones; then private
// buffers drain through the result staging region to out.
//
// Collective. No carry crosses tiles: unlike scan, every tile (and every
// group, at the driver level) is independent once its input share is known.
// One empty input degenerates to a cooperative copy through the same path.
func Merge[T any](a *bulk.Agent, in1, in2, out []T, comp Comp[T]) {
	total := len(in1) + len(in2)
	if total == 0 {
		return
	}
	size, grain := a.Size(), a.Grain()
	tile := size * grain
	tid := a.Index()

	mark := a.ScratchMark()
	// Input staging and result staging are distinct allocations, live
	// simultaneously; the staged inputs are still being read by co-rank
	// searches while results accumulate.
	stageIn := bulk.Alloc[T](a, tile)
	stageOut := bulk.Alloc[T](a, tile)
	defer a.ScratchRelease(mark)

	local := make([]T, grain)

	for written := 0; written < total; {
		tileOut := min(tile, total-written)

		// The tile's split of the remaining inputs. Every agent computes the
		// same split from read-only global data; redundant but barrier-free.
		n1, n2 := MergePath(in1, in2, tileOut, comp)

		// Stage both shares contiguously: in1's share, then in2's.
		bulk.CopyN(a, in1, n1, stageIn)
		bulk.CopyN(a, in2, n2, stageIn[n1:])
		a.Sync()

		s1, s2 := stageIn[:n1], stageIn[n1:n1+n2]

		// Per-agent co-rank at diagonal grain*tid, then the serial base case
		// into the agent's private buffer.
		d := min(grain*tid, tileOut)
		count := max(0, min(grain, tileOut-d))
		o1, o2 := MergePath(s1, s2, d, comp)
		boundedMerge(s1[o1:], s2[o2:], local, count, comp)
		a.Sync()

		copy(stageOut[d:d+count], local[:count])
		a.Sync()

		bulk.CopyN(a, stageOut, tileOut, out[written:])
		// As in scan, the next tile's staging writes are fenced from this
		// tile's stageOut readers by the two barriers ahead of the next
		// stageOut write.

		in1, in2 = in1[n1:], in2[n2:]
		written += tileOut
	}
}

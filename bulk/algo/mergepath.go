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

// Comp is a strict-weak-order comparator: Comp(x, y) reports whether x must
// sort before y. Both x < y style and custom key comparators qualify; x <= y
// does not.
type Comp[T any] func(T, T) bool

// MergePath finds the co-rank split of two sorted ranges at output diagonal
// diag: the unique pair (i, j) with i+j == diag such that merging a1[:i] and
// a2[:j] yields exactly the first diag elements of the stable merge of a1
// and a2. Equal keys are consumed from a1 first, matching the tie rule of
// the serial merge; the two must agree or agents' partitions would not
// compose into a stable whole.
//
// The split is monotone in diag, so splits at increasing diagonals carve the
// output into disjoint, gap-free sub-ranges. The same search partitions work
// at both scales: per agent within a group, and per group across the global
// output. Runs in O(log min(diag, len(a1))) comparisons; diag must be in
// [0, len(a1)+len(a2)].
func MergePath[T any](a1, a2 []T, diag int, comp Comp[T]) (int, int) {
	lo := max(0, diag-len(a2))
	hi := min(diag, len(a1))
	// Invariant: taking fewer than lo from a1 is too few (some a1 element
	// strictly precedes the a2 element it would displace); taking hi or more
	// is enough. Find the least i such that a2[diag-i-1] sorts strictly
	// before a1[i].
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if comp(a2[diag-mid-1], a1[mid]) {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo, diag - lo
}

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

// Package bulk provides cooperative execution groups: fixed-size teams of
// agents that run the same kernel in lockstep phases, synchronize through a
// shared barrier, and communicate through a fast per-group scratch arena.
//
// The model maps the block/thread structure of SIMT hardware onto goroutines.
// A Group of N agents is launched once per kernel invocation; each agent is
// identified only by its ordinal index. Within a group, all shared-memory
// phases are ordered by the barrier. No locks are used, and none are needed,
// because a phase never reads what a concurrent phase writes.
//
//	g := bulk.NewGroup(8, 4)
//	g.Launch(func(a *bulk.Agent) {
//	    algo.InclusiveScan(a, input, output, func(x, y int) int { return x + y })
//	})
//
// Barrier discipline is a caller contract: every agent must reach every Sync
// on every execution path, the same number of times. A kernel that skips a
// barrier its peers take deadlocks the group. This is not checked at runtime.
//
// Subpackages:
//
// bulk/algo implements cooperative scan and merge over a group.
//
// bulk/driver partitions a global input across many independent groups.
package bulk

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

package bulk

import (
	"fmt"
	"sync"
)

// Group is a fixed-size team of cooperating agents. Size and grain are fixed
// for the group's lifetime: size is the number of agents, grain the number of
// elements each agent handles per phase. A group processes input in tiles of
// size*grain elements.
//
// A Group may be reused across many Launch calls, but a single Launch owns
// the group exclusively for its duration.
type Group struct {
	size  int
	grain int

	barrier *barrier
	arena   *arena

	// bcast is the collective broadcast slot: written by agent 0 between
	// barriers, read by every agent before the closing barrier.
	bcast any
}

// NewGroup creates a group of size agents with the given grain. The scratch
// arena is sized from the detected device. Panics if size or grain is less
// than 1: group shape is a caller-supplied contract, not a recoverable input.
func NewGroup(size, grain int) *Group {
	return NewGroupScratch(size, grain, Detect().ScratchBytes)
}

// NewGroupScratch is NewGroup with an explicit on-chip scratch budget in
// bytes. Requests beyond the budget transparently fall back to the heap.
func NewGroupScratch(size, grain, scratchBytes int) *Group {
	if size < 1 || grain < 1 {
		panic(fmt.Sprintf("bulk: invalid group shape %dx%d", size, grain))
	}
	return &Group{
		size:    size,
		grain:   grain,
		barrier: newBarrier(size),
		arena:   newArena(scratchBytes),
	}
}

// Size returns the number of agents in the group.
func (g *Group) Size() int { return g.size }

// Grain returns the number of elements one agent processes per phase.
func (g *Group) Grain() int { return g.grain }

// TileSize returns size*grain, the number of elements the group consumes per
// cooperative tile.
func (g *Group) TileSize() int { return g.size * g.grain }

// Launch runs kernel once per agent, on size concurrent goroutines, and
// blocks until every agent returns. All agents execute the same kernel and
// differ only in their index; this mirrors a SIMT block launch.
//
// Scratch taken during the launch is reclaimed when Launch returns.
func (g *Group) Launch(kernel func(a *Agent)) {
	var wg sync.WaitGroup
	wg.Add(g.size)
	for i := 0; i < g.size; i++ {
		i := i
		go func() {
			defer wg.Done()
			kernel(&Agent{group: g, index: i})
		}()
	}
	wg.Wait()
	g.arena.reset()
}

// Agent is one lane of an execution group. Agents are created by Launch and
// are only valid for the duration of the kernel they were passed to. An agent
// owns no shared state: everything it holds beyond its index lives in
// per-call locals.
type Agent struct {
	group *Group
	index int
}

// Index returns the agent's ordinal within its group, in [0, Size).
func (a *Agent) Index() int { return a.index }

// Size returns the agent's group size.
func (a *Agent) Size() int { return a.group.size }

// Grain returns the agent's group grain.
func (a *Agent) Grain() int { return a.group.grain }

// Group returns the group this agent belongs to.
func (a *Agent) Group() *Group { return a.group }

// Sync blocks until every agent in the group has called Sync. It is the sole
// synchronization primitive: a Sync totally orders the shared-memory phase
// before it against the phase after it, for all agents.
//
// Every agent must call Sync the same number of times on every execution
// path. Violations deadlock the group or corrupt shared state; they are not
// detected.
func (a *Agent) Sync() {
	a.group.barrier.await()
}

// broadcast publishes v from agent 0 to every agent in the group. Collective:
// all agents must call it, and only agent 0's argument is used. The second
// barrier frees the slot for the next collective operation.
func (a *Agent) broadcast(v any) any {
	if a.index == 0 {
		a.group.bcast = v
	}
	a.Sync()
	v = a.group.bcast
	a.Sync()
	return v
}

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

import "sync"

// barrier is a reusable counting barrier for a fixed number of parties.
// Reuse is generation-counted: the last arrival of a generation releases the
// waiters and opens the next generation, so back-to-back awaits from the same
// goroutine cannot slip through a stale wakeup.
//
// The mutex handoff on both sides of await is what gives barrier-separated
// phases their happens-before edges; shared scratch needs no other fencing.
type barrier struct {
	mu      sync.Mutex
	cond    *sync.Cond
	parties int
	arrived int
	gen     uint64
}

func newBarrier(parties int) *barrier {
	b := &barrier{parties: parties}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// await blocks until parties goroutines have called it in the current
// generation. The releasing arrival resets the count.
func (b *barrier) await() {
	if b.parties == 1 {
		return
	}
	b.mu.Lock()
	gen := b.gen
	b.arrived++
	if b.arrived == b.parties {
		b.arrived = 0
		b.gen++
		b.cond.Broadcast()
		b.mu.Unlock()
		return
	}
	for gen == b.gen {
		b.cond.Wait()
	}
	b.mu.Unlock()
}

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

import "testing"

func TestGroupShape(t *testing.T) {
	g := NewGroupScratch(8, 4, 1<<10)
	if g.Size() != 8 || g.Grain() != 4 || g.TileSize() != 32 {
		t.Fatalf("shape = %d/%d/%d, want 8/4/32", g.Size(), g.Grain(), g.TileSize())
	}
}

func TestNewGroupInvalidShape(t *testing.T) {
	for _, tt := range []struct{ size, grain int }{
		{0, 1}, {1, 0}, {-1, 4}, {4, -1},
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("NewGroup(%d, %d) did not panic", tt.size, tt.grain)
				}
			}()
			NewGroup(tt.size, tt.grain)
		}()
	}
}

func TestLaunchRunsEveryAgent(t *testing.T) {
	g := NewGroupScratch(16, 2, 1<<10)
	seen := make([]int, g.Size())
	g.Launch(func(a *Agent) {
		seen[a.Index()] = 1 + a.Index()
		if a.Size() != 16 || a.Grain() != 2 || a.Group() != g {
			t.Errorf("agent %d sees wrong group", a.Index())
		}
	})
	for i, v := range seen {
		if v != 1+i {
			t.Fatalf("agent %d did not run (seen[%d] = %d)", i, i, v)
		}
	}
}

func TestSyncOrdersPhases(t *testing.T) {
	// Phase 1 writes, barrier, phase 2 reads a neighbor's write. Any missing
	// ordering shows up as a stale read or a race report.
	g := NewGroupScratch(8, 1, 1<<10)
	const rounds = 25
	shared := make([]int, g.Size())
	g.Launch(func(a *Agent) {
		i := a.Index()
		for r := 0; r < rounds; r++ {
			shared[i] = r*100 + i
			a.Sync()
			next := (i + 1) % a.Size()
			if got, want := shared[next], r*100+next; got != want {
				t.Errorf("round %d: agent %d read %d, want %d", r, i, got, want)
			}
			a.Sync()
		}
	})
}

func TestLaunchReuse(t *testing.T) {
	g := NewGroupScratch(4, 4, 1<<12)
	for i := 0; i < 3; i++ {
		g.Launch(func(a *Agent) {
			m := a.ScratchMark()
			s := Alloc[int](a, 64)
			if a.Index() == 0 {
				s[0] = 7
			}
			a.Sync()
			if s[0] != 7 {
				t.Errorf("agent %d: scratch not shared across launch reuse", a.Index())
			}
			a.ScratchRelease(m)
		})
	}
}

func TestBroadcast(t *testing.T) {
	g := NewGroupScratch(6, 1, 0)
	got := make([]int, g.Size())
	g.Launch(func(a *Agent) {
		v := a.broadcast(41 + a.Index()) // only agent 0's argument survives
		got[a.Index()] = v.(int)
	})
	for i, v := range got {
		if v != 41 {
			t.Fatalf("agent %d received %d, want 41", i, v)
		}
	}
}

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

func TestCopyN(t *testing.T) {
	tests := []struct {
		name        string
		size, grain int
		n           int
	}{
		{"empty", 4, 2, 0},
		{"single", 4, 2, 1},
		{"sub tile", 4, 2, 5},
		{"exact tile", 4, 2, 8},
		{"tile plus tail", 4, 2, 11},
		{"many tiles", 4, 2, 64},
		{"many tiles tail", 8, 3, 101},
		{"one agent", 1, 4, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := make([]int, tt.n)
			for i := range src {
				src[i] = i + 1
			}
			dst := make([]int, tt.n+5)
			for i := range dst {
				dst[i] = -1
			}

			g := NewGroupScratch(tt.size, tt.grain, 0)
			g.Launch(func(a *Agent) {
				CopyN(a, src, tt.n, dst)
				a.Sync()
			})

			for i := 0; i < tt.n; i++ {
				if dst[i] != i+1 {
					t.Fatalf("dst[%d] = %d, want %d", i, dst[i], i+1)
				}
			}
			for i := tt.n; i < len(dst); i++ {
				if dst[i] != -1 {
					t.Fatalf("dst[%d] = %d, copy wrote past n", i, dst[i])
				}
			}
		})
	}
}

func TestFill(t *testing.T) {
	g := NewGroupScratch(4, 3, 0)
	dst := make([]int, 30)
	for i := range dst {
		dst[i] = -1
	}
	g.Launch(func(a *Agent) {
		Fill(a, 25, dst, 9)
		a.Sync()
	})
	for i := 0; i < 25; i++ {
		if dst[i] != 9 {
			t.Fatalf("dst[%d] = %d, want 9", i, dst[i])
		}
	}
	for i := 25; i < len(dst); i++ {
		if dst[i] != -1 {
			t.Fatalf("dst[%d] = %d, fill wrote past n", i, dst[i])
		}
	}
}

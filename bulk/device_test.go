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

func TestDetect(t *testing.T) {
	d := Detect()
	if d.Procs < 1 {
		t.Errorf("Procs = %d", d.Procs)
	}
	if d.CacheLineSize < 8 {
		t.Errorf("CacheLineSize = %d", d.CacheLineSize)
	}
	if d.ScratchBytes < 1<<10 {
		t.Errorf("ScratchBytes = %d", d.ScratchBytes)
	}
}

func TestSuggestGroups(t *testing.T) {
	d := Device{Procs: 8, ScratchBytes: 48 << 10}
	tests := []struct {
		name    string
		n, tile int
		want    int
	}{
		{"empty input", 0, 32, 1},
		{"one partial tile", 10, 32, 1},
		{"fewer tiles than procs", 100, 32, 4},
		{"more tiles than procs", 10000, 32, 8},
		{"degenerate tile", 100, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.SuggestGroups(tt.n, tt.tile); got != tt.want {
				t.Errorf("SuggestGroups(%d, %d) = %d, want %d", tt.n, tt.tile, got, tt.want)
			}
		})
	}
}

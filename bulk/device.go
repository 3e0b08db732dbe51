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
	"runtime"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// Device describes the hardware a launch configuration is tuned against.
// It is the CPU analogue of a GPU device-properties query: enough to size
// scratch and pick a group count, nothing more.
type Device struct {
	// Procs is the number of logical processors available to the runtime
	// (GOMAXPROCS), the natural upper bound on concurrently running groups.
	Procs int

	// CacheLineSize is the coherency granule in bytes. Scratch allocations
	// are aligned to it so agents' sub-regions do not false-share.
	CacheLineSize int

	// WideVectors reports whether the CPU exposes 256-bit-or-wider vector
	// units (AVX2/AVX-512 on x86, ASIMD on arm64). Purely informational for
	// the algorithms here; the bench harness reports it.
	WideVectors bool

	// ScratchBytes is the suggested per-group on-chip scratch budget,
	// loosely modeled on an L1 data cache slice per core.
	ScratchBytes int
}

// Detect inspects the current machine and returns its Device description.
func Detect() Device {
	d := Device{
		Procs:         runtime.GOMAXPROCS(0),
		CacheLineSize: int(unsafe.Sizeof(cpu.CacheLinePad{})),
	}
	d.WideVectors = cpu.X86.HasAVX2 || cpu.X86.HasAVX512F || cpu.ARM64.HasASIMD
	// 48 KiB mirrors the shared-memory budget of the hardware this model is
	// drawn from; AVX-512 parts pair wide vectors with larger L1D.
	d.ScratchBytes = 48 << 10
	if cpu.X86.HasAVX512F {
		d.ScratchBytes = 64 << 10
	}
	return d
}

// SuggestGroups returns a group count for partitioning n elements into tiles
// of tileSize: enough groups to occupy every processor, but never more than
// one group per tile.
func (d Device) SuggestGroups(n, tileSize int) int {
	if n <= 0 || tileSize <= 0 {
		return 1
	}
	tiles := (n + tileSize - 1) / tileSize
	return max(1, min(d.Procs, tiles))
}

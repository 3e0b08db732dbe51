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
	"reflect"
	"unsafe"
)

// scratchAlign is the alignment of every on-chip allocation. A cache line
// keeps agents' sub-regions from false-sharing at allocation seams.
const scratchAlign = 64

// arena is a bump allocator over a fixed byte block standing in for a group's
// fast on-chip memory. Requests that do not fit the block fall back to the
// heap; the fallback is invisible to callers. The arena is owned exclusively
// by its group and is only ever touched by agent 0, between barriers, so it
// needs no locking of its own.
type arena struct {
	block []byte
	off   int
}

func newArena(bytes int) *arena {
	if bytes < 0 {
		bytes = 0
	}
	return &arena{block: make([]byte, bytes)}
}

// take reserves n bytes of on-chip scratch. ok is false when the request does
// not fit, in which case the caller allocates from the heap instead. Reused
// regions are zeroed: the block is pointerless memory, and stale bits must
// not leak between calls.
func (ar *arena) take(n int) (raw []byte, ok bool) {
	if n == 0 {
		return nil, true
	}
	base := uintptr(unsafe.Pointer(unsafe.SliceData(ar.block)))
	off := ar.off + int(-(base+uintptr(ar.off))&(scratchAlign-1))
	if off+n > len(ar.block) {
		return nil, false
	}
	raw = ar.block[off : off+n : off+n]
	clear(raw)
	ar.off = off + n
	return raw, true
}

func (ar *arena) reset() {
	ar.off = 0
}

// ScratchMark is an arena checkpoint. Allocations made after a mark are
// reclaimed, together, by ScratchRelease.
type ScratchMark struct {
	off int
}

// ScratchMark records the current scratch watermark. Collective: every agent
// must call it at the same point in the kernel. The surrounding barriers keep
// the read from racing a peer's subsequent Alloc.
func (a *Agent) ScratchMark() ScratchMark {
	a.Sync()
	m := ScratchMark{off: a.group.arena.off}
	a.Sync()
	return m
}

// ScratchRelease returns the arena to the state captured by m, releasing
// every allocation made since. Collective. The leading barrier guarantees no
// agent still holds a reference into the released region when it is rewound.
func (a *Agent) ScratchRelease(m ScratchMark) {
	a.Sync()
	if a.index == 0 {
		a.group.arena.off = m.off
	}
	a.Sync()
}

// Alloc carves an n-element slice out of the group's scratch arena.
// Collective: every agent calls Alloc with the same arguments and receives
// the same slice. Successive allocations never alias.
//
// The slice lives in on-chip scratch when it fits and the element type is
// pointer-free; otherwise it is transparently heap-backed. The distinction
// has no behavioral effect. Element types containing pointers always take
// the heap path: the byte-backed block is opaque to the garbage collector
// and must never hold live references.
func Alloc[T any](a *Agent, n int) []T {
	var s []T
	if a.index == 0 {
		s = allocSlice[T](a.group.arena, n)
	}
	return a.broadcast(s).([]T)
}

func allocSlice[T any](ar *arena, n int) []T {
	if n == 0 {
		return []T{}
	}
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size > 0 && !typeHasPointers(reflect.TypeOf((*T)(nil)).Elem()) {
		if raw, ok := ar.take(n * size); ok {
			return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(raw))), n)
		}
	}
	return make([]T, n)
}

func typeHasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr, reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return typeHasPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if typeHasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		// Pointers, slices, maps, strings, channels, funcs, interfaces.
		return true
	}
}

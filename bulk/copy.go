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

// CopyN cooperatively copies src[0:n] to dst[0:n] across the whole group.
// The copy is grain-strided: within each tile of Size*Grain elements, agent i
// owns the grain-sized chunk at offset Grain*i, so neighboring agents touch
// neighboring memory. Agents' chunks are disjoint.
//
// CopyN contains no barrier. Callers place the phase boundary: Sync after a
// cooperative copy before any agent reads what another agent wrote.
func CopyN[T any](a *Agent, src []T, n int, dst []T) {
	grain := a.group.grain
	stride := a.group.size * grain
	for base := a.index * grain; base < n; base += stride {
		end := min(base+grain, n)
		copy(dst[base:end], src[base:end])
	}
}

// Fill cooperatively sets dst[0:n] to value, with the same grain-strided
// ownership and barrier discipline as CopyN.
func Fill[T any](a *Agent, n int, dst []T, value T) {
	grain := a.group.grain
	stride := a.group.size * grain
	for base := a.index * grain; base < n; base += stride {
		end := min(base+grain, n)
		for i := base; i < end; i++ {
			dst[i] = value
		}
	}
}

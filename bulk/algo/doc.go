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

// Package algo implements cooperative data-parallel algorithms over a bulk
// execution group: tiled prefix scans and stable sorted-range merge.
//
// Every function taking a *bulk.Agent is collective: all agents of the group
// call it, at the same point in the kernel, with the same arguments. The
// functions stage data through the group's scratch arena and separate their
// shared-memory phases with barriers; callers only need to uphold the
// barrier discipline documented on bulk.Agent.Sync.
//
// Scan requires an associative operator. Commutativity is not required:
// elements are always combined left to right, so the results are exact for
// operators like string concatenation or matrix multiplication.
//
// Merge requires a strict-weak-order comparator and is stable: on equal
// keys, every element of the first range precedes every element of the
// second.
package algo

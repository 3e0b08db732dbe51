// Copyright 2025 go-bulk Authors. SPDX-License-Identifier: Apache-2.0

// bulkbench exercises the cooperative scan and merge algorithms on synthetic
// data and reports wall time and throughput.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

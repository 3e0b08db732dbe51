// Copyright 2025 go-bulk Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajroetker/go-bulk/bulk"
)

func newDeviceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "device",
		Short: "Print the detected device properties",
		Run: func(cmd *cobra.Command, args []string) {
			d := bulk.Detect()
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "procs          %d\n", d.Procs)
			fmt.Fprintf(w, "cache line     %d B\n", d.CacheLineSize)
			fmt.Fprintf(w, "wide vectors   %t\n", d.WideVectors)
			fmt.Fprintf(w, "scratch budget %d KiB\n", d.ScratchBytes>>10)
		},
	}
}

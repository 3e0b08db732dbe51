// Copyright 2025 go-bulk Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajroetker/go-bulk/bulk/driver"
)

// rootOptions holds flags shared by every benchmark command.
type rootOptions struct {
	Groups    int
	GroupSize int
	Grain     int
	Seed      uint64
}

func (o *rootOptions) config() driver.Config {
	return driver.Config{
		Groups:    o.Groups,
		GroupSize: o.GroupSize,
		Grain:     o.Grain,
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "bulkbench",
		Short: "Benchmark cooperative scan and merge",
		Long: `bulkbench runs the go-bulk cooperative algorithms over synthetic data,
verifies the results against sequential references, and reports throughput.

Group shape is caller-supplied: --group-size agents per group, --grain
elements per agent per phase, --groups concurrent groups (0 = auto).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.Groups < 0 || opts.GroupSize < 0 || opts.Grain < 0 {
				return fmt.Errorf("group shape flags must be non-negative")
			}
			return nil
		},
	}

	cmd.PersistentFlags().IntVar(&opts.Groups, "groups", 0, "concurrent execution groups (0 = one per processor)")
	cmd.PersistentFlags().IntVar(&opts.GroupSize, "group-size", 0, "agents per group (0 = default)")
	cmd.PersistentFlags().IntVar(&opts.Grain, "grain", 0, "elements per agent per phase (0 = default)")
	cmd.PersistentFlags().Uint64Var(&opts.Seed, "seed", 1, "data generation seed")

	cmd.AddCommand(newScanCommand(opts))
	cmd.AddCommand(newMergeCommand(opts))
	cmd.AddCommand(newDeviceCommand())

	return cmd
}

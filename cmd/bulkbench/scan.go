// Copyright 2025 go-bulk Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ajroetker/go-bulk/bulk/driver"
)

type scanOptions struct {
	*rootOptions
	N    int
	Dist string
}

func newScanCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &scanOptions{rootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Benchmark the cooperative inclusive scan",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.N, "n", 1<<20, "input length")
	cmd.Flags().StringVar(&opts.Dist, "dist", "uniform", "input distribution (uniform|normal|exponential)")

	return cmd
}

func runScan(cmd *cobra.Command, opts *scanOptions) error {
	gen, err := newGenerator(opts.Dist, opts.Seed)
	if err != nil {
		return err
	}
	in := gen.floats(opts.N)
	out := make([]float64, opts.N)

	pool := driver.NewPool(opts.Groups)
	defer pool.Close()

	add := func(x, y float64) float64 { return x + y }

	start := time.Now()
	driver.InclusiveScan(pool, opts.config(), in, out, add)
	elapsed := time.Since(start)

	if err := verifyScan(in, out); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "scan    n=%d dist=%s\n", opts.N, opts.Dist)
	fmt.Fprintf(w, "elapsed %v (%.1f Melem/s)\n", elapsed, rate(opts.N, elapsed))
	return nil
}

// verifyScan checks the parallel result against a serial pass. Floating
// point addition is not associative, so the comparison uses a relative
// tolerance rather than equality.
func verifyScan(in, out []float64) error {
	const tol = 1e-9
	sum := 0.0
	for i, v := range in {
		sum += v
		if diff := abs(out[i] - sum); diff > tol*max(1, abs(sum)) {
			return fmt.Errorf("scan mismatch at %d: got %g, want %g", i, out[i], sum)
		}
	}
	return nil
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func rate(n int, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(n) / d.Seconds() / 1e6
}

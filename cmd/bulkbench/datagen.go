// Copyright 2025 go-bulk Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"slices"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// generator draws benchmark inputs from a named distribution. Skewed
// distributions matter for merge: uniform inputs hide pathological
// merge-path splits that clustered keys expose.
type generator struct {
	dist distuv.Rander
}

func newGenerator(name string, seed uint64) (*generator, error) {
	src := rand.NewSource(seed)
	switch name {
	case "uniform":
		return &generator{dist: distuv.Uniform{Min: 0, Max: 1e6, Src: src}}, nil
	case "normal":
		return &generator{dist: distuv.Normal{Mu: 0, Sigma: 1e4, Src: src}}, nil
	case "exponential":
		return &generator{dist: distuv.Exponential{Rate: 1e-3, Src: src}}, nil
	default:
		return nil, fmt.Errorf("unknown distribution %q (want uniform, normal, or exponential)", name)
	}
}

func (g *generator) floats(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = g.dist.Rand()
	}
	return out
}

func (g *generator) sortedFloats(n int) []float64 {
	out := g.floats(n)
	slices.Sort(out)
	return out
}

// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stdp

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/floats"
)

// note: pairs.go contains the pairwise aggregation; stdp.go has the API.

// PairCounts are diagnostic counts of the spike pairs seen in one call,
// classified by the sign of dt = t_post - t_pre.
type PairCounts struct {

	// pairs with dt > 0: pre preceded post
	Causal int

	// pairs with dt < 0: post preceded pre
	AntiCausal int

	// pairs with dt == 0, which contribute nothing
	Coincident int
}

// Total returns the number of pairs, |pre| * |post|.
func (pc PairCounts) Total() int {
	return pc.Causal + pc.AntiCausal + pc.Coincident
}

// window is one side of the STDP kernel: Amp * exp(-|dt| / Tau).
type window struct {
	Amp float64
	Tau float64
}

// kernel is the per-call resolved STDP kernel, so the aggregation loop
// never consults optional overrides or the synapse kind.
type kernel struct {

	// applies to dt > 0
	Causal window

	// applies to dt < 0
	Anti window
}

// Pair returns the weight change from a single pair separated by dt.
func (kn *kernel) Pair(dt float64) float64 {
	switch {
	case dt > 0:
		return kn.Causal.Amp * math.Exp(-dt/kn.Causal.Tau)
	case dt < 0:
		return kn.Anti.Amp * math.Exp(dt/kn.Anti.Tau)
	}
	return 0
}

// scratch holds the block buffers: dif holds the differences and then the
// compacted causal exponents, and anti holds the anti-causal exponents.
type scratch struct {
	dif  []float64
	anti []float64
}

func (sc *scratch) grow(n int) {
	if cap(sc.dif) < n {
		sc.dif = make([]float64, n)
		sc.anti = make([]float64, n)
	}
	sc.dif = sc.dif[:n]
	sc.anti = sc.anti[:n]
}

var scratchPool = sync.Pool{
	New: func() any { return &scratch{} },
}

// Aggregate sums the kernel over every (post, pre) pair and returns the raw
// weight change and the pair counts.  The difference matrix is tiled into
// blocks bounded by ch, so memory is O(block) while time is O(|pre|*|post|).
func (kn *kernel) Aggregate(pre, post []float64, ch *ChunkParams) (float64, PairCounts) {
	var pc PairCounts
	rows, cols := ch.Block(len(post), len(pre))
	if rows == 0 {
		return 0, pc
	}
	sc := scratchPool.Get().(*scratch)
	defer scratchPool.Put(sc)
	sc.grow(rows * cols)

	var csum, asum float64
	for ci := 0; ci < len(pre); ci += cols {
		pblk := pre[ci:min(ci+cols, len(pre))]
		for ri := 0; ri < len(post); ri += rows {
			qblk := post[ri:min(ri+rows, len(post))]
			nc, na := kn.block(pblk, qblk, sc)
			csum += floats.Sum(sc.dif[:nc])
			asum += floats.Sum(sc.anti[:na])
			pc.Causal += nc
			pc.AntiCausal += na
			pc.Coincident += len(pblk)*len(qblk) - nc - na
		}
	}
	// an empty class contributes exactly 0, whatever its amplitude
	var raw float64
	if pc.Causal > 0 {
		raw += kn.Causal.Amp * csum
	}
	if pc.AntiCausal > 0 {
		raw += kn.Anti.Amp * asum
	}
	return raw, pc
}

// block fills sc with exp(-|dt|/tau) for every pair in the pre x post block,
// causal terms in sc.dif[:nc] and anti-causal terms in sc.anti[:na].
func (kn *kernel) block(pre, post []float64, sc *scratch) (nc, na int) {
	np := len(pre)
	dif := sc.dif[:len(post)*np]
	for i, tq := range post {
		row := dif[i*np : (i+1)*np]
		floats.ScaleTo(row, -1, pre)
		floats.AddConst(tq, row)
	}
	anti := sc.anti
	// compaction writes at nc <= i, so causal exponents can reuse dif in place
	for _, dt := range dif {
		switch {
		case dt > 0:
			dif[nc] = -dt / kn.Causal.Tau
			nc++
		case dt < 0:
			anti[na] = dt / kn.Anti.Tau
			na++
		}
	}
	expInPlace(dif[:nc])
	expInPlace(anti[:na])
	return
}

func expInPlace(x []float64) {
	for i, v := range x {
		x[i] = math.Exp(v)
	}
}

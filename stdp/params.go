// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stdp

import (
	"math"

	"github.com/c2h5oh/datasize"
)

///////////////////////////////////////////////////////////////////////
//  params.go contains the STDP window and chunking parameters

// ExcParams are the excitatory STDP window parameters.  Potentiation applies
// when the pre-synaptic spike precedes the post-synaptic one (dt > 0), and
// depression when the order is reversed (dt < 0).  These are also the
// fallback values for any InhibParams field that is not set.
type ExcParams struct {

	// amplitude of potentiation, before reward and rate modulation (A_plus_base)
	APlus float64 `def:"0.1"`

	// amplitude of depression (A_minus_base)
	AMinus float64 `def:"0.12"`

	// time constant in msec of the potentiation window
	TauPlus float64 `def:"20" min:"0"`

	// time constant in msec of the depression window
	TauMinus float64 `def:"20" min:"0"`
}

func (ep *ExcParams) Defaults() {
	ep.APlus = 0.1
	ep.AMinus = 0.12
	ep.TauPlus = 20
	ep.TauMinus = 20
}

// InhibParams are optional overrides for inhibitory synapses, where the
// timing dependence is reversed: potentiation when post precedes pre (dt < 0)
// and depression when pre precedes post (dt > 0).  A nil field falls back to
// the corresponding ExcParams value.
type InhibParams struct {

	// amplitude of inhibitory potentiation -- defaults to Exc.APlus
	APlus *float64 `json:",omitempty"`

	// amplitude of inhibitory depression -- defaults to Exc.AMinus
	AMinus *float64 `json:",omitempty"`

	// time constant in msec of the inhibitory potentiation window -- defaults to Exc.TauPlus
	TauPlus *float64 `json:",omitempty"`

	// time constant in msec of the inhibitory depression window -- defaults to Exc.TauMinus
	TauMinus *float64 `json:",omitempty"`
}

// Set sets all four overrides at once.
func (ip *InhibParams) Set(aPlus, aMinus, tauPlus, tauMinus float64) {
	ip.APlus = Override(aPlus)
	ip.AMinus = Override(aMinus)
	ip.TauPlus = Override(tauPlus)
	ip.TauMinus = Override(tauMinus)
}

// Reset clears all overrides, so the excitatory values apply.
func (ip *InhibParams) Reset() {
	*ip = InhibParams{}
}

// Override returns a pointer to v, for setting individual InhibParams fields.
func Override(v float64) *float64 {
	return &v
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// DefaultScratch is the default bound on the pairwise difference buffers.
const DefaultScratch = 4 * datasize.MB

// minBlockPairs is the smallest block ever used, however small Scratch is.
const minBlockPairs = 64

// bytesPerPair counts the two float64 buffers (causal and anti-causal) held per pair.
const bytesPerPair = 16

// ChunkParams bound the transient |post| x |pre| time-difference matrix.
// Larger trains are aggregated block by block, so memory stays at Scratch
// while every pair is still visited exactly once.
type ChunkParams struct {

	// maximum scratch memory for one block of pairwise differences -- 0 = DefaultScratch
	Scratch datasize.ByteSize `def:"4MB"`
}

func (cp *ChunkParams) Defaults() {
	cp.Scratch = DefaultScratch
}

// BlockPairs returns the max number of pairs held in one block.
func (cp *ChunkParams) BlockPairs() int {
	sc := cp.Scratch
	if sc == 0 {
		sc = DefaultScratch
	}
	np := sc.Bytes() / bytesPerPair
	if np < minBlockPairs {
		return minBlockPairs
	}
	if np > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(np)
}

// Block returns the block shape (rows of post spikes, columns of pre spikes)
// used to tile the nPost x nPre difference matrix.
func (cp *ChunkParams) Block(nPost, nPre int) (rows, cols int) {
	if nPost == 0 || nPre == 0 {
		return 0, 0
	}
	np := cp.BlockPairs()
	cols = min(nPre, np)
	rows = min(nPost, max(1, np/cols))
	return
}

// Params are the complete, immutable STDP configuration.  Per-call inputs
// (spike trains, synaptic state, reward context) are passed to Apply in an
// Update.
type Params struct {

	// excitatory window, and fallback for inhibitory overrides
	Exc ExcParams `display:"inline"`

	// optional inhibitory window overrides
	Inh InhibParams `display:"inline"`

	// bound on the pairwise scratch memory
	Chunk ChunkParams `display:"inline"`
}

func (pr *Params) Defaults() {
	pr.Exc.Defaults()
	pr.Inh.Reset()
	pr.Chunk.Defaults()
}

// NewParams returns Params with Defaults applied.
func NewParams() *Params {
	pr := &Params{}
	pr.Defaults()
	return pr
}

// InhAPlus returns the effective inhibitory potentiation amplitude.
func (pr *Params) InhAPlus() float64 { return orDefault(pr.Inh.APlus, pr.Exc.APlus) }

// InhAMinus returns the effective inhibitory depression amplitude.
func (pr *Params) InhAMinus() float64 { return orDefault(pr.Inh.AMinus, pr.Exc.AMinus) }

// InhTauPlus returns the effective inhibitory potentiation time constant.
func (pr *Params) InhTauPlus() float64 { return orDefault(pr.Inh.TauPlus, pr.Exc.TauPlus) }

// InhTauMinus returns the effective inhibitory depression time constant.
func (pr *Params) InhTauMinus() float64 { return orDefault(pr.Inh.TauMinus, pr.Exc.TauMinus) }

// Validate checks that all time constants are strictly positive and all
// amplitudes are finite.
func (pr *Params) Validate() error {
	taus := []struct {
		name string
		val  float64
	}{
		{"TauPlus", pr.Exc.TauPlus},
		{"TauMinus", pr.Exc.TauMinus},
		{"Inh.TauPlus", pr.InhTauPlus()},
		{"Inh.TauMinus", pr.InhTauMinus()},
	}
	for _, tc := range taus {
		if !(tc.val > 0) || math.IsInf(tc.val, 1) {
			return invalid(ErrInvalidTimeConstant, tc.name, tc.val, "must be > 0 and finite")
		}
	}
	amps := []struct {
		name string
		val  float64
	}{
		{"APlus", pr.Exc.APlus},
		{"AMinus", pr.Exc.AMinus},
		{"Inh.APlus", pr.InhAPlus()},
		{"Inh.AMinus", pr.InhAMinus()},
	}
	for _, ac := range amps {
		if !isFinite(ac.val) {
			return invalid(ErrInvalidParameter, ac.name, ac.val, "must be finite")
		}
	}
	return nil
}

// resolve builds the causal (dt > 0) and anti-causal (dt < 0) windows for
// the given synapse kind, with aPlusEff the modulated excitatory
// potentiation amplitude.
func (pr *Params) resolve(kind SynapseKind, aPlusEff float64) kernel {
	if kind == Inhibitory {
		return kernel{
			Causal: window{Amp: -pr.InhAMinus(), Tau: pr.InhTauMinus()},
			Anti:   window{Amp: pr.InhAPlus(), Tau: pr.InhTauPlus()},
		}
	}
	return kernel{
		Causal: window{Amp: aPlusEff, Tau: pr.Exc.TauPlus},
		Anti:   window{Amp: -pr.Exc.AMinus, Tau: pr.Exc.TauMinus},
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

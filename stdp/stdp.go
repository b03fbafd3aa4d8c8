// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package stdp computes Spike-Timing-Dependent Plasticity weight updates for a
single synaptic connection.

Given the pre- and post-synaptic spike times within a step, every pair
contributes according to its time difference dt = t_post - t_pre:

	excitatory: dt > 0  +APlusEff * exp(-dt/TauPlus)
	            dt < 0  -AMinus   * exp( dt/TauMinus)
	inhibitory: dt < 0  +Inh.APlus  * exp( dt/Inh.TauPlus)
	            dt > 0  -Inh.AMinus * exp(-dt/Inh.TauMinus)

and coincident spikes (dt == 0) contribute nothing.  APlusEff is APlus scaled
by the normalized cluster reward and the pre-synaptic firing rate relative to
its homeostatic target.  The summed change is scaled by the learning rate Eta,
folded into an eligibility trace that decays by Gamma each step, and added to
the weight, which is clipped into its bounds.

The computation is a pure function of its inputs: the caller owns the
(weight, trace) state of each synapse and threads it through successive
calls, so independent synapses can be updated concurrently.
*/
package stdp

import (
	"fmt"

	"github.com/emer/etable/minmax"
)

// SynapseKind determines the sign convention of the weight, which timing rule
// applies, and the default weight bounds.
type SynapseKind int32

const (
	// Excitatory synapses have weights >= 0
	Excitatory SynapseKind = iota

	// Inhibitory synapses have weights <= 0 and a reversed timing rule
	Inhibitory

	SynapseKindN
)

func (sk SynapseKind) String() string {
	switch sk {
	case Excitatory:
		return "Excitatory"
	case Inhibitory:
		return "Inhibitory"
	}
	return "SynapseKind(?)"
}

// DefaultBounds returns the weight bounds used when none are supplied:
// [0, 1] for excitatory and [-1, 0] for inhibitory synapses.
func DefaultBounds(kind SynapseKind) minmax.F64 {
	if kind == Inhibitory {
		return minmax.F64{Min: -1, Max: 0}
	}
	return minmax.F64{Min: 0, Max: 1}
}

// State is the per-synapse state advanced by one step per Apply call.
type State struct {

	// synaptic weight
	Wt float64

	// eligibility trace of recent weight changes
	Tr float64
}

// Update holds the per-call inputs to Apply.
type Update struct {

	// pre-synaptic spike times in msec, in any order
	Pre []float64

	// post-synaptic spike times in msec, in any order
	Post []float64

	// current synaptic state
	State State

	// excitatory or inhibitory
	Kind SynapseKind

	// reward, rate, learning rate and trace decay context
	Mod Modulation

	// weight bounds -- nil = DefaultBounds(Kind)
	Bounds *minmax.F64
}

// NewUpdate returns an Update for the given trains and state with default
// Modulation and bounds.
func NewUpdate(pre, post []float64, st State, kind SynapseKind) *Update {
	up := &Update{Pre: pre, Post: post, State: st, Kind: kind}
	up.Mod.Defaults()
	return up
}

// WtBounds returns the effective weight bounds.
func (up *Update) WtBounds() minmax.F64 {
	if up.Bounds != nil {
		return *up.Bounds
	}
	return DefaultBounds(up.Kind)
}

// Validate checks the spike trains, synaptic state, and bounds, and then
// the modulation context.
func (up *Update) Validate() error {
	if err := validateTrain("Pre", up.Pre); err != nil {
		return err
	}
	if err := validateTrain("Post", up.Post); err != nil {
		return err
	}
	if up.Kind < 0 || up.Kind >= SynapseKindN {
		return invalid(ErrInvalidParameter, "Kind", float64(up.Kind), "must be Excitatory or Inhibitory")
	}
	if !isFinite(up.State.Wt) {
		return invalid(ErrInvalidParameter, "Wt", up.State.Wt, "must be finite")
	}
	if !isFinite(up.State.Tr) {
		return invalid(ErrInvalidParameter, "Tr", up.State.Tr, "must be finite")
	}
	switch {
	case up.Kind == Excitatory && up.State.Wt < 0:
		return invalid(ErrWeightSignMismatch, "Wt", up.State.Wt, "excitatory weight must be >= 0")
	case up.Kind == Inhibitory && up.State.Wt > 0:
		return invalid(ErrWeightSignMismatch, "Wt", up.State.Wt, "inhibitory weight must be <= 0")
	}
	if up.Bounds != nil {
		if !isFinite(up.Bounds.Min) || !isFinite(up.Bounds.Max) || !(up.Bounds.Min < up.Bounds.Max) {
			return invalid(ErrInvalidBounds, "Bounds.Min", up.Bounds.Min, "must be finite and < Bounds.Max")
		}
	}
	return up.Mod.Validate()
}

func validateTrain(name string, st []float64) error {
	for i, t := range st {
		if !isFinite(t) {
			return invalid(ErrInvalidSpikeData, fmt.Sprintf("%s[%d]", name, i), t, "spike times must be finite")
		}
	}
	return nil
}

// Result is the outcome of one Apply call.
type Result struct {

	// new synaptic weight, clipped into bounds
	Wt float64

	// new eligibility trace: Gamma * Tr + DWt
	Tr float64

	// applied weight change: Eta * Raw (before clipping)
	DWt float64

	// raw summed STDP change over all pairs
	Raw float64

	// reward and rate modulated excitatory potentiation amplitude
	APlusEff float64

	// diagnostic pair counts
	Pairs PairCounts
}

// State returns the new synaptic state.
func (rs *Result) State() State {
	return State{Wt: rs.Wt, Tr: rs.Tr}
}

// Apply computes one STDP step.  All inputs are validated before any
// numerical work, and a validation failure returns a *ValidationError with
// no partial result.  Intermediate values that overflow (modulated APlus,
// the raw sum, the applied change, or the new trace) are rejected the same
// way, so the returned state is always finite.  Apply is safe for
// concurrent use.
func (pr *Params) Apply(up *Update) (Result, error) {
	if err := pr.Validate(); err != nil {
		return Result{}, err
	}
	if err := up.Validate(); err != nil {
		return Result{}, err
	}
	bnd := up.WtBounds()
	aPlusEff := up.Mod.APlusEff(pr.Exc.APlus)
	if !isFinite(aPlusEff) {
		return Result{}, invalid(ErrInvalidParameter, "APlusEff", aPlusEff, "modulated APlus must be finite")
	}
	kn := pr.resolve(up.Kind, aPlusEff)
	raw, pc := kn.Aggregate(up.Pre, up.Post, &pr.Chunk)
	if !isFinite(raw) {
		return Result{}, invalid(ErrInvalidParameter, "Raw", raw, "summed pair changes must be finite")
	}
	dwt := up.Mod.Eta * raw
	if !isFinite(dwt) {
		return Result{}, invalid(ErrInvalidParameter, "Eta", up.Mod.Eta, "Eta * Raw must be finite")
	}
	tr := up.Mod.Gamma*up.State.Tr + dwt
	if !isFinite(tr) {
		return Result{}, invalid(ErrInvalidParameter, "Tr", up.State.Tr, "Gamma * Tr + DWt must be finite")
	}
	rs := Result{
		Wt:       bnd.ClipVal(up.State.Wt + dwt),
		Tr:       tr,
		DWt:      dwt,
		Raw:      raw,
		APlusEff: aPlusEff,
		Pairs:    pc,
	}
	return rs, nil
}

// Window returns the unscaled weight change produced by a single spike pair
// separated by dt = t_post - t_pre, i.e., one point on the STDP curve.
// No validation is done.
func (pr *Params) Window(kind SynapseKind, md *Modulation, dt float64) float64 {
	kn := pr.resolve(kind, md.APlusEff(pr.Exc.APlus))
	return kn.Pair(dt)
}

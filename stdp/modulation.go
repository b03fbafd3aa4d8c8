// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stdp

// Modulation is the per-call context that scales learning: a cluster reward
// signal and a homeostatic firing-rate term scale the excitatory
// potentiation amplitude, Eta scales the whole weight change, and Gamma
// decays the eligibility trace.
//
// Only excitatory potentiation is reward and rate modulated.  Depression and
// the inhibitory amplitudes are used as given.
type Modulation struct {

	// reward signal for the cluster containing the post-synaptic neuron
	ClusterReward float64 `def:"1" min:"0"`

	// maximum attainable reward -- ClusterReward is normalized by this
	MaxReward float64 `def:"1" min:"0"`

	// current firing rate of the pre-synaptic neuron
	SpikeRatePre float64 `def:"0.3" min:"0"`

	// homeostatic target firing rate -- SpikeRatePre is normalized by this
	TargetRate float64 `def:"0.3" min:"0"`

	// global learning rate applied to the aggregated weight change
	Eta float64 `def:"1"`

	// eligibility trace decay factor per step
	Gamma float64 `def:"0.95" min:"0" max:"1"`

	// simulation time step in msec
	Dt float64 `def:"1" min:"0"`
}

func (md *Modulation) Defaults() {
	md.ClusterReward = 1
	md.MaxReward = 1
	md.SpikeRatePre = 0.3
	md.TargetRate = 0.3
	md.Eta = 1
	md.Gamma = 0.95
	md.Dt = 1
}

// NewModulation returns a Modulation with Defaults applied.
func NewModulation() *Modulation {
	md := &Modulation{}
	md.Defaults()
	return md
}

// Validate checks the modulation invariants.
func (md *Modulation) Validate() error {
	finite := []struct {
		name string
		val  float64
	}{
		{"ClusterReward", md.ClusterReward},
		{"MaxReward", md.MaxReward},
		{"SpikeRatePre", md.SpikeRatePre},
		{"TargetRate", md.TargetRate},
		{"Eta", md.Eta},
	}
	for _, fc := range finite {
		if !isFinite(fc.val) {
			return invalid(ErrInvalidParameter, fc.name, fc.val, "must be finite")
		}
	}
	if !(md.Gamma >= 0 && md.Gamma <= 1) {
		return invalid(ErrInvalidDecayFactor, "Gamma", md.Gamma, "must be in [0, 1]")
	}
	if !(md.MaxReward > 0) {
		return invalid(ErrInvalidModulationDivisor, "MaxReward", md.MaxReward, "must be > 0")
	}
	if !(md.TargetRate > 0) {
		return invalid(ErrInvalidModulationDivisor, "TargetRate", md.TargetRate, "must be > 0")
	}
	if md.ClusterReward > md.MaxReward {
		return invalid(ErrInvalidRewardSignal, "ClusterReward", md.ClusterReward, "must be <= MaxReward")
	}
	if md.ClusterReward < 0 {
		return invalid(ErrInvalidRewardSignal, "ClusterReward", md.ClusterReward, "must be >= 0")
	}
	if md.SpikeRatePre < 0 {
		return invalid(ErrInvalidParameter, "SpikeRatePre", md.SpikeRatePre, "must be >= 0")
	}
	if !isFinite(md.RateFactor()) {
		return invalid(ErrInvalidModulationDivisor, "TargetRate", md.TargetRate, "SpikeRatePre / TargetRate must be finite")
	}
	if !(md.Dt > 0) || !isFinite(md.Dt) {
		return invalid(ErrInvalidTimeStep, "Dt", md.Dt, "must be > 0")
	}
	return nil
}

// RewardFactor is ClusterReward / MaxReward.
func (md *Modulation) RewardFactor() float64 {
	return md.ClusterReward / md.MaxReward
}

// RateFactor is SpikeRatePre / TargetRate: > 1 when the pre-synaptic neuron
// fires above target.
func (md *Modulation) RateFactor() float64 {
	return md.SpikeRatePre / md.TargetRate
}

// APlusEff returns the modulated excitatory potentiation amplitude.
// Depression and the inhibitory amplitudes are never modulated.
// todo: should reward also scale AMinus and the Inh amplitudes?
func (md *Modulation) APlusEff(aPlus float64) float64 {
	return aPlus * md.RewardFactor() * md.RateFactor()
}

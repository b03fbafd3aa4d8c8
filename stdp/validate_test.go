// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stdp

import (
	"errors"
	"math"
	"testing"

	"github.com/emer/etable/minmax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		setup func(pr *Params, up *Update)
		err   error
		field string
	}{
		{"NaN pre spike", func(pr *Params, up *Update) { up.Pre = []float64{10, math.NaN()} }, ErrInvalidSpikeData, "Pre[1]"},
		{"Inf post spike", func(pr *Params, up *Update) { up.Post = []float64{math.Inf(1)} }, ErrInvalidSpikeData, "Post[0]"},
		{"negative tau plus", func(pr *Params, up *Update) { pr.Exc.TauPlus = -10 }, ErrInvalidTimeConstant, "TauPlus"},
		{"zero tau minus", func(pr *Params, up *Update) { pr.Exc.TauMinus = 0 }, ErrInvalidTimeConstant, "TauMinus"},
		{"NaN tau", func(pr *Params, up *Update) { pr.Exc.TauPlus = math.NaN() }, ErrInvalidTimeConstant, "TauPlus"},
		{"zero inhibitory tau", func(pr *Params, up *Update) { pr.Inh.TauPlus = Override(0) }, ErrInvalidTimeConstant, "Inh.TauPlus"},
		{"negative inhibitory tau", func(pr *Params, up *Update) { pr.Inh.TauMinus = Override(-1) }, ErrInvalidTimeConstant, "Inh.TauMinus"},
		{"gamma above 1", func(pr *Params, up *Update) { up.Mod.Gamma = 1.5 }, ErrInvalidDecayFactor, "Gamma"},
		{"gamma below 0", func(pr *Params, up *Update) { up.Mod.Gamma = -0.1 }, ErrInvalidDecayFactor, "Gamma"},
		{"reward above max", func(pr *Params, up *Update) { up.Mod.ClusterReward = 2 }, ErrInvalidRewardSignal, "ClusterReward"},
		{"negative reward", func(pr *Params, up *Update) { up.Mod.ClusterReward = -0.1 }, ErrInvalidRewardSignal, "ClusterReward"},
		{"excitatory negative weight", func(pr *Params, up *Update) { up.State.Wt = -0.5 }, ErrWeightSignMismatch, "Wt"},
		{"inhibitory positive weight", func(pr *Params, up *Update) { up.Kind = Inhibitory }, ErrWeightSignMismatch, "Wt"},
		{"inverted bounds", func(pr *Params, up *Update) { up.Bounds = &minmax.F64{Min: 0.5, Max: 0.3} }, ErrInvalidBounds, "Bounds.Min"},
		{"empty bounds", func(pr *Params, up *Update) { up.Bounds = &minmax.F64{Min: 0.5, Max: 0.5} }, ErrInvalidBounds, "Bounds.Min"},
		{"zero max reward", func(pr *Params, up *Update) { up.Mod.MaxReward = 0; up.Mod.ClusterReward = 0 }, ErrInvalidModulationDivisor, "MaxReward"},
		{"zero target rate", func(pr *Params, up *Update) { up.Mod.TargetRate = 0 }, ErrInvalidModulationDivisor, "TargetRate"},
		{"zero dt", func(pr *Params, up *Update) { up.Mod.Dt = 0 }, ErrInvalidTimeStep, "Dt"},
		{"NaN weight", func(pr *Params, up *Update) { up.State.Wt = math.NaN() }, ErrInvalidParameter, "Wt"},
		{"Inf trace", func(pr *Params, up *Update) { up.State.Tr = math.Inf(-1) }, ErrInvalidParameter, "Tr"},
		{"NaN eta", func(pr *Params, up *Update) { up.Mod.Eta = math.NaN() }, ErrInvalidParameter, "Eta"},
		{"Inf amplitude", func(pr *Params, up *Update) { pr.Exc.AMinus = math.Inf(1) }, ErrInvalidParameter, "AMinus"},
		{"negative rate", func(pr *Params, up *Update) { up.Mod.SpikeRatePre = -1 }, ErrInvalidParameter, "SpikeRatePre"},
		{"unknown kind", func(pr *Params, up *Update) { up.Kind = SynapseKindN }, ErrInvalidParameter, "Kind"},
		{"rate factor overflow", func(pr *Params, up *Update) {
			up.Mod.SpikeRatePre, up.Mod.TargetRate = 1, 1e-320
		}, ErrInvalidModulationDivisor, "TargetRate"},
		{"rate factor overflow, anti-causal only", func(pr *Params, up *Update) {
			up.Pre, up.Post = []float64{100, 200}, []float64{10, 20}
			up.Mod.SpikeRatePre, up.Mod.TargetRate = 1, 1e-320
		}, ErrInvalidModulationDivisor, "TargetRate"},
		{"modulated amplitude overflow", func(pr *Params, up *Update) {
			pr.Exc.APlus = 1e308
			up.Mod.SpikeRatePre, up.Mod.TargetRate = 1, 1e-10
		}, ErrInvalidParameter, "APlusEff"},
		{"raw overflow", func(pr *Params, up *Update) {
			pr.Exc.AMinus = 1e308
			up.Pre, up.Post = spikesAt(1e-9, 10), spikesAt(0, 10)
		}, ErrInvalidParameter, "Raw"},
		{"eta overflow", func(pr *Params, up *Update) {
			up.Mod.Eta = 1e308
			up.Pre, up.Post = spikesAt(0, 20), spikesAt(1e-9, 20)
		}, ErrInvalidParameter, "Eta"},
		{"trace overflow", func(pr *Params, up *Update) {
			up.Mod.Gamma, up.Mod.Eta = 1, 1e308
			up.State.Tr = math.MaxFloat64
			up.Pre, up.Post = []float64{0}, spikesAt(1e-9, 10)
		}, ErrInvalidParameter, "Tr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pr := NewParams()
			up := NewUpdate([]float64{10, 20}, []float64{15, 25}, State{Wt: 0.5, Tr: 0.1}, Excitatory)
			tt.setup(pr, up)
			rs, err := pr.Apply(up)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, Result{}, rs, "no partial result on failure")

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
			assert.NotEmpty(t, ve.Constraint)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

// spikesAt returns n coincident spikes at time t.
func spikesAt(t float64, n int) []float64 {
	st := make([]float64, n)
	for i := range st {
		st[i] = t
	}
	return st
}

func TestValidateInhibitorySign(t *testing.T) {
	pr := NewParams()
	for _, wt := range []float64{1e-12, 0.001, 0.5, 1, 10, 1e6} {
		up := NewUpdate([]float64{10}, []float64{15}, State{Wt: wt}, Inhibitory)
		_, err := pr.Apply(up)
		assert.ErrorIs(t, err, ErrWeightSignMismatch, "wt %v", wt)
	}
	// zero is a valid weight for either kind
	for _, kind := range []SynapseKind{Excitatory, Inhibitory} {
		_, err := pr.Apply(NewUpdate([]float64{10}, []float64{15}, State{}, kind))
		assert.NoError(t, err, kind.String())
	}
}

func TestValidateAccepts(t *testing.T) {
	pr := NewParams()
	md := NewModulation()
	require.NoError(t, pr.Validate())
	require.NoError(t, md.Validate())

	md.Gamma = 0
	assert.NoError(t, md.Validate())
	md.Gamma = 1
	assert.NoError(t, md.Validate())
	md.ClusterReward = md.MaxReward
	assert.NoError(t, md.Validate())
	md.ClusterReward = 0
	assert.NoError(t, md.Validate())

	// zero amplitudes are allowed
	pr.Inh.APlus = Override(0)
	pr.Exc.AMinus = 0
	assert.NoError(t, pr.Validate())
}

func TestValidationErrorMessage(t *testing.T) {
	pr := NewParams()
	pr.Exc.TauPlus = -10
	_, err := pr.Apply(NewUpdate(nil, nil, State{Wt: 0.5}, Excitatory))
	require.Error(t, err)
	assert.Equal(t, "stdp: invalid time constant: TauPlus = -10 (must be > 0 and finite)", err.Error())
}

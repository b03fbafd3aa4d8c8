// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stdp

import (
	"fmt"
	"math"

	"github.com/chewxy/math32"
	"github.com/emer/etable/minmax"
)

// Synapse is the compact float32 record a simulator keeps per connection.
// Learn advances it by one step using the float64 kernel.
type Synapse struct {

	// synaptic weight value
	Wt float32

	// eligibility trace -- decaying memory of applied weight changes
	Tr float32

	// weight change applied on the last Learn step, before clipping
	DWt float32
}

var SynapseVars = []string{"Wt", "Tr", "DWt"}

var SynapseVarsMap map[string]int

func init() {
	SynapseVarsMap = make(map[string]int, len(SynapseVars))
	for i, v := range SynapseVars {
		SynapseVarsMap[v] = i
	}
}

func (sy *Synapse) VarNames() []string {
	return SynapseVars
}

// SynapseVarByName returns the index of the variable in the Synapse, or error
func SynapseVarByName(varNm string) (int, error) {
	i, ok := SynapseVarsMap[varNm]
	if !ok {
		return 0, fmt.Errorf("Synapse VarByName: variable name: %v not valid", varNm)
	}
	return i, nil
}

// VarByIndex returns variable using index (0 = first variable in SynapseVars list)
func (sy *Synapse) VarByIndex(idx int) float32 {
	switch idx {
	case 0:
		return sy.Wt
	case 1:
		return sy.Tr
	case 2:
		return sy.DWt
	}
	return math32.NaN()
}

// VarByName returns variable by name, NaN if not a valid name
func (sy *Synapse) VarByName(varNm string) float32 {
	i, err := SynapseVarByName(varNm)
	if err != nil {
		return math32.NaN()
	}
	return sy.VarByIndex(i)
}

// SetVarByName sets synapse variable to given value
func (sy *Synapse) SetVarByName(varNm string, val float32) error {
	i, err := SynapseVarByName(varNm)
	if err != nil {
		return err
	}
	switch i {
	case 0:
		sy.Wt = val
	case 1:
		sy.Tr = val
	case 2:
		sy.DWt = val
	}
	return nil
}

// State returns the synapse state in float64 for Apply.
func (sy *Synapse) State() State {
	return State{Wt: float64(sy.Wt), Tr: float64(sy.Tr)}
}

// Learn applies one STDP step to the synapse from the given spike trains.
// On error the synapse is left untouched, so the caller can log and skip it.
// bounds may be nil for the default bounds of kind.
func (sy *Synapse) Learn(pr *Params, kind SynapseKind, md *Modulation, pre, post []float64, bounds *minmax.F64) error {
	up := &Update{Pre: pre, Post: post, State: sy.State(), Kind: kind, Mod: *md, Bounds: bounds}
	rs, err := pr.Apply(up)
	if err != nil {
		return err
	}
	for i, v := range []float64{rs.Wt, rs.Tr, rs.DWt} {
		if math.Abs(v) > math.MaxFloat32 {
			return invalid(ErrInvalidParameter, SynapseVars[i], v, "exceeds float32 range")
		}
	}
	sy.Wt = float32(rs.Wt)
	sy.Tr = float32(rs.Tr)
	sy.DWt = float32(rs.DWt)
	return nil
}

// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stdp

import (
	"errors"
	"fmt"
)

// Validation failures.  Every error returned by Apply wraps exactly one of
// these, so callers can test with errors.Is and skip the synapse.
var (
	ErrInvalidSpikeData         = errors.New("invalid spike data")
	ErrInvalidTimeConstant      = errors.New("invalid time constant")
	ErrInvalidDecayFactor       = errors.New("invalid decay factor")
	ErrInvalidRewardSignal      = errors.New("invalid reward signal")
	ErrWeightSignMismatch       = errors.New("weight sign mismatch")
	ErrInvalidBounds            = errors.New("invalid weight bounds")
	ErrInvalidModulationDivisor = errors.New("invalid modulation divisor")
	ErrInvalidTimeStep          = errors.New("invalid time step")
	ErrInvalidParameter         = errors.New("invalid parameter")
)

// ValidationError reports the offending field and value along with the
// constraint it violated.
type ValidationError struct {

	// one of the Err* sentinels above
	Err error

	// name of the offending input, e.g. "TauPlus" or "Pre[3]"
	Field string

	// the offending value
	Value float64

	// the constraint that was violated, e.g. "must be > 0"
	Constraint string
}

func (ve *ValidationError) Error() string {
	return fmt.Sprintf("stdp: %v: %s = %v (%s)", ve.Err, ve.Field, ve.Value, ve.Constraint)
}

func (ve *ValidationError) Unwrap() error {
	return ve.Err
}

func invalid(err error, field string, val float64, constraint string) error {
	return &ValidationError{Err: err, Field: field, Value: val, Constraint: constraint}
}

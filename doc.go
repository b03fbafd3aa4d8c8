// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package stdp is the overall repository for the spike-timing-dependent
plasticity (STDP) learning rule implemented in the Go language (golang).

This top-level of the repository has no functional code -- everything is organized
into the following sub-repositories:

* stdp: the update kernel for a single synaptic connection.  Given pre- and
post-synaptic spike times it sums exponential timing windows over every spike
pair, modulates potentiation by reward and a homeostatic firing-rate term,
folds the change into a decaying eligibility trace, and clips the weight into
bounds.  Excitatory and inhibitory synapses use mirrored timing rules.

* examples: these actually compile into runnable programs.  examples/stdpcurve
prints the STDP window and runs the canonical potentiation / depression spike
patterns, and examples/bench times updates over many synapses in parallel.
*/
package stdp

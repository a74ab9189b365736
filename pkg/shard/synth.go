// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package shard

import (
	"github.com/shardcheck/shardcheck/pkg/ast"
	"github.com/shardcheck/shardcheck/pkg/contrib"
	"github.com/shardcheck/shardcheck/pkg/etype"
	"github.com/shardcheck/shardcheck/pkg/pcm"
	"github.com/shardcheck/shardcheck/pkg/summary"
)

// BalanceField is the reserved pseudofield name the host is expected to
// use for a contract's native-currency balance. The "may send money"
// rule of spec.md §4.6 requires ownership of this field without naming
// it explicitly; this repository fixes it to a single well-known name
// rather than threading another host-supplied parameter through every
// call in the pipeline.
const BalanceField = "balance"

// Synthesizer reduces a component's summary to a sharding constraint
// set, consulting registry to recognize commutative writes.
type Synthesizer struct {
	Registry *pcm.Registry
}

// New constructs a Synthesizer using the given PCM registry.
func New(registry *pcm.Registry) *Synthesizer {
	return &Synthesizer{Registry: registry}
}

// Synthesize implements spec.md §4.6.
func (s *Synthesizer) Synthesize(sum *summary.ComponentSummary) *Set {
	if sum.HasAlwaysExclusive() {
		return UnsatSet()
	}

	sends := sendOps(sum)

	for _, send := range sends {
		special, ok := sendSpecial(send)
		if !ok {
			return UnsatSet()
		}

		for src := range special.Contributions {
			if src.Kind != contrib.ProcParameter {
				return UnsatSet()
			}
		}
	}

	out := NewSet()

	for _, op := range sum.Ops() {
		if _, ok := op.(summary.AcceptMoneyOp); ok {
			out = out.Add(SenderShard{})
			break
		}
	}

	mayLoseZeroProof := false

	recipientParams := map[int]bool{}

	for _, send := range sends {
		special, _ := sendSpecial(send)

		if special.Precision == contrib.SubsetOf {
			mayLoseZeroProof = true
		}

		for src := range special.Contributions {
			if src.Kind == contrib.ProcParameter {
				recipientParams[src.Index] = true
			}
		}
	}

	if mayLoseZeroProof {
		out = out.Add(MustOwn{Field: ast.NewPseudofield(BalanceField)})
	}

	for idx := range recipientParams {
		out = out.Add(AddrMustBeNonContract{ParamIdx: idx})
	}

	cw := s.commutativeWrites(sum)

	for _, op := range sum.Ops() {
		switch o := op.(type) {
		case summary.ReadOp:
			if !s.isSpuriousRead(sum, cw, o.Field) {
				out = out.Add(MustOwn{Field: o.Field})
			}

		case summary.WriteOp:
			if cw[o.Key()] {
				continue
			}

			out = out.Add(MustOwn{Field: o.Field})

			for _, src := range etype.PseudofieldSources(o.ET) {
				out = out.Add(MustOwn{Field: src.Field})
			}

		case summary.ConditionOnOp:
			for _, src := range etype.PseudofieldSources(o.ET) {
				out = out.Add(MustOwn{Field: src.Field})
			}
		}
	}

	return out
}

func sendOps(sum *summary.ComponentSummary) []summary.SendMessagesOp {
	var out []summary.SendMessagesOp

	for _, op := range sum.Ops() {
		if s, ok := op.(summary.SendMessagesOp); ok {
			out = append(out, s)
		}
	}

	return out
}

// sendSpecial extracts a SendMessages operation's special-part Known
// Contribution, reporting false if its expression-type is not a
// CompositeVal with a known-Val special part (spec.md §4.6 escape
// hatch).
func sendSpecial(send summary.SendMessagesOp) (contrib.KnownContribution, bool) {
	cv, ok := send.ET.(*etype.CompositeValET)
	if !ok {
		return contrib.KnownContribution{}, false
	}

	v, ok := cv.Special.(*etype.ValET)
	if !ok {
		return contrib.KnownContribution{}, false
	}

	return v.Known, true
}

// commutativeWrites implements spec.md §4.6's commutative-write
// detection: a Write(pf, Val(Exactly, contribs)) is commutative under
// some registered PCM when contribs, restricted to pseudofield sources,
// is exactly { pf -> (Linear, {op}) } for a single op that PCM
// recognizes as its binary operation. Returns the set of such writes,
// keyed by their Op.Key().
func (s *Synthesizer) commutativeWrites(sum *summary.ComponentSummary) map[string]bool {
	out := map[string]bool{}

	for _, op := range sum.Ops() {
		w, ok := op.(summary.WriteOp)
		if !ok {
			continue
		}

		v, ok := w.ET.(*etype.ValET)
		if !ok || v.Known.Precision != contrib.Exactly {
			continue
		}

		pfSummary, onlyOne := soleContributingPseudofield(v.Known.Contributions, w.Field)
		if !onlyOne || pfSummary.Cardinality != contrib.Linear || len(pfSummary.Ops) != 1 {
			continue
		}

		var theOp contrib.Operator
		for o := range pfSummary.Ops {
			theOp = o
		}

		for _, p := range s.Registry.List() {
			if p.IsOp(theOp) {
				out[op.Key()] = true
				break
			}
		}
	}

	return out
}

// soleContributingPseudofield reports whether pf is the only
// pseudofield source among contributions, returning its summary.
func soleContributingPseudofield(contributions contrib.Contributions, pf ast.Pseudofield) (contrib.Summary, bool) {
	var (
		found bool
		out   contrib.Summary
	)

	for src, smry := range contributions {
		if src.Kind != contrib.PseudofieldSource {
			continue
		}

		if src.Field != pf || found {
			return contrib.Summary{}, false
		}

		found, out = true, smry
	}

	return out, found
}

// isSpuriousRead implements spec.md §4.6's spurious-read detection.
func (s *Synthesizer) isSpuriousRead(sum *summary.ComponentSummary, cw map[string]bool, pf ast.Pseudofield) bool {
	anyUnknown := false
	referenced := false

	for _, op := range sum.Ops() {
		var et etype.ET

		switch o := op.(type) {
		case summary.WriteOp:
			if cw[op.Key()] {
				continue
			}

			et = o.ET
		case summary.ConditionOnOp:
			et = o.ET
		case summary.EmitEventOp:
			et = o.ET
		case summary.SendMessagesOp:
			et = o.ET
		default:
			continue
		}

		if etype.IsUnknown(et) {
			anyUnknown = true
		}

		if etype.References(et, pf) {
			referenced = true
		}
	}

	if anyUnknown {
		return false
	}

	return !referenced
}

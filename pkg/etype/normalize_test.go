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
package etype_test

import (
	"testing"

	"github.com/shardcheck/shardcheck/pkg/contrib"
	"github.com/shardcheck/shardcheck/pkg/etype"
	"github.com/shardcheck/shardcheck/pkg/util/assert"
)

func pfVal(idx int) etype.ET {
	return etype.Val(contrib.SingleKnown(contrib.NewFormalParameter(idx), contrib.NewSummary(contrib.Linear, nil)))
}

// TestNormalizeOpDistributesIntoContributions checks spec.md §4.2's
// Op(op, Val(...)) rule: the operator is folded into every contributing
// source's own operator set, not left pending.
func TestNormalizeOpDistributesIntoContributions(t *testing.T) {
	add := contrib.BuiltinOp("add")
	op := &etype.OpET{Op: add, Inner: pfVal(0)}

	got := etype.Normalize(op)

	v, ok := got.(*etype.ValET)
	assert.True(t, ok, "expected Val, got %T", got)

	src := contrib.NewFormalParameter(0)
	s, present := v.Known.Contributions[src]
	assert.True(t, present, "expected source %v present", src)
	assert.Equal(t, contrib.Linear, s.Cardinality)
	assert.True(t, s.Ops.Contains(add), "expected add in op set")
}

// TestNormalizeComposeSequenceFolds checks that two Val elements are
// folded via sequential composition: each element's own source keeps
// its Linear cardinality, since the other side of each pointwise merge
// is the identity (None) summary for a source it doesn't carry.
func TestNormalizeComposeSequenceFolds(t *testing.T) {
	seq := &etype.ComposeSequenceET{Elems: []etype.ET{pfVal(0), pfVal(1)}}

	got := etype.Normalize(seq)

	v, ok := got.(*etype.ValET)
	assert.True(t, ok, "expected Val, got %T", got)
	assert.Equal(t, contrib.Exactly, v.Known.Precision)

	s0 := v.Known.Contributions[contrib.NewFormalParameter(0)]
	s1 := v.Known.Contributions[contrib.NewFormalParameter(1)]
	assert.Equal(t, contrib.Linear, s0.Cardinality)
	assert.Equal(t, contrib.Linear, s1.Cardinality)
}

// TestNormalizeComposeSequencePendingOnUnknownElement checks that a
// sequence with a non-Val element stays pending rather than being
// folded, since et_compose has no defined action on Unknown.
func TestNormalizeComposeSequencePendingOnUnknownElement(t *testing.T) {
	seq := &etype.ComposeSequenceET{Elems: []etype.ET{pfVal(0), etype.Unknown}}

	got := etype.Normalize(seq)

	_, ok := got.(*etype.ComposeSequenceET)
	assert.True(t, ok, "expected a still-pending ComposeSequenceET, got %T", got)
}

// TestNormalizeComposeParallelAddsConditional checks spec.md §4.1's
// add_conditional wrapping: every clause's folded contributions pick up
// the condition's own sources at (None, {Conditional}).
func TestNormalizeComposeParallelAddsConditional(t *testing.T) {
	par := &etype.ComposeParallelET{Cond: pfVal(2), Clauses: []etype.ET{pfVal(0), pfVal(1)}}

	got := etype.Normalize(par)

	v, ok := got.(*etype.ValET)
	assert.True(t, ok, "expected Val, got %T", got)
	assert.Equal(t, contrib.SubsetOf, v.Known.Precision)

	condSrc := contrib.NewFormalParameter(2)
	s, present := v.Known.Contributions[condSrc]
	assert.True(t, present, "expected condition's own source to be recorded")
	assert.Equal(t, contrib.None, s.Cardinality)
	assert.True(t, s.Ops.Contains(contrib.Conditional))
}

// TestNormalizeComposeParallelSpuriousCondPreservesPrecision checks that
// a Nothing() condition (the spurious-conditional idiom's designated
// marker) leaves the folded body's own precision untouched.
func TestNormalizeComposeParallelSpuriousCondPreservesPrecision(t *testing.T) {
	par := &etype.ComposeParallelET{Cond: etype.Val(contrib.Nothing()), Clauses: []etype.ET{pfVal(0)}}

	got := etype.Normalize(par)

	v, ok := got.(*etype.ValET)
	assert.True(t, ok, "expected Val, got %T", got)
	assert.Equal(t, contrib.Exactly, v.Known.Precision)
}

// TestNormalizeAppBetaReduces checks spec.md §4.2's App rule: applying a
// single-parameter Fun to a known argument substitutes the formal
// parameter away and re-normalizes.
func TestNormalizeAppBetaReduces(t *testing.T) {
	body := &etype.OpET{Op: contrib.BuiltinOp("add"), Inner: pfVal(0)}
	fn := &etype.FunET{Desc: etype.FunDesc{Levels: []int{0}, Def: &etype.ExprDef{Body: body}}}
	app := &etype.AppET{Desc: fn.Desc, Args: []etype.ET{pfVal(7)}}

	got := etype.Normalize(app)

	v, ok := got.(*etype.ValET)
	assert.True(t, ok, "expected Val, got %T", got)

	_, stillHasFormal := v.Known.Contributions[contrib.NewFormalParameter(0)]
	assert.False(t, stillHasFormal, "formal parameter 0 should have been substituted away")

	s, present := v.Known.Contributions[contrib.NewFormalParameter(7)]
	assert.True(t, present, "expected the substituted argument's own source")
	assert.True(t, s.Ops.Contains(contrib.BuiltinOp("add")))
}

// TestSubstituteProcParameterTranslatesCallSite mirrors the inter-
// procedural translation pkg/summary performs: substituting a
// ProcParameter marker with the caller's argument expression-type.
func TestSubstituteProcParameterTranslatesCallSite(t *testing.T) {
	callee := etype.Val(contrib.SingleKnown(contrib.NewProcParameter(0), contrib.NewSummary(contrib.Linear, nil)))
	arg := pfVal(3)

	got := etype.Normalize(etype.Substitute(callee, contrib.NewProcParameter(0), arg))

	v, ok := got.(*etype.ValET)
	assert.True(t, ok, "expected Val, got %T", got)

	_, stillHasParam := v.Known.Contributions[contrib.NewProcParameter(0)]
	assert.False(t, stillHasParam, "ProcParameter(0) should have been substituted away")

	_, hasArgSource := v.Known.Contributions[contrib.NewFormalParameter(3)]
	assert.True(t, hasArgSource, "expected the argument's own source to flow through")
}

// TestKeyStructuralEquality checks that two expression-types built via
// different code paths, but describing the same value, render to the
// same canonical Key — pkg/summary relies on this for dedup.
func TestKeyStructuralEquality(t *testing.T) {
	a := etype.Normalize(&etype.ComposeSequenceET{Elems: []etype.ET{pfVal(0), pfVal(1)}})
	b := etype.Normalize(&etype.ComposeSequenceET{Elems: []etype.ET{pfVal(1), pfVal(0)}})

	assert.Equal(t, etype.Key(a), etype.Key(b))
}

// TestKeyDistinguishesDifferentValues checks the converse: structurally
// different expression-types render to different keys.
func TestKeyDistinguishesDifferentValues(t *testing.T) {
	a := pfVal(0)
	b := pfVal(1)

	if etype.Key(a) == etype.Key(b) {
		t.Fatalf("expected distinct keys for distinct sources, got %q for both", etype.Key(a))
	}
}

// TestIsUnknownPropagatesThroughOp checks spec.md §4.2's unknown-
// propagation predicate reaches through a pending Op wrapper.
func TestIsUnknownPropagatesThroughOp(t *testing.T) {
	op := &etype.OpET{Op: contrib.BuiltinOp("add"), Inner: etype.Unknown}
	assert.True(t, etype.IsUnknown(op))
}

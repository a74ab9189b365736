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

// Package etype implements the Expression Type of spec.md §3 — the
// central abstraction the symbolic evaluator produces — and its
// normalizer (spec.md §4.2): canonicalisation by operator distribution,
// composition collapse, and capture-avoiding beta-reduction over
// de-Bruijn-indexed function values.
package etype

import "github.com/shardcheck/shardcheck/pkg/contrib"

// ET is the sealed sum type of expression-type forms (spec.md §3). It is
// the central abstraction threaded through the evaluator, the normalizer
// and the statement analyzer.
type ET interface {
	isET()
}

// UnknownET is the top of the lattice: the analysis gave up on this value
// entirely. Unknown is the single shared instance; compare via a type
// switch, not pointer identity, since other code paths may also construct
// fresh *UnknownET values.
type UnknownET struct{}

func (*UnknownET) isET() {}

// Unknown is the canonical Unknown expression-type value.
var Unknown ET = &UnknownET{}

// ValET is a primitive/data value: a Known Contribution.
type ValET struct {
	Known contrib.KnownContribution
}

func (*ValET) isET() {}

// Val constructs a ValET.
func Val(k contrib.KnownContribution) ET { return &ValET{k} }

// CompositeValET carries two parallel expression-types for the same
// value; used for message values to carry both the full payload analysis
// (Full) and a restricted analysis of the reserved _recipient/_amount
// payload slots (Special).
type CompositeValET struct {
	Full    ET
	Special ET
}

func (*CompositeValET) isET() {}

// OpET is a pending lifting of a builtin or Conditional operator over
// Inner, not yet distributed into Inner's contributions by the
// normalizer.
type OpET struct {
	Op    contrib.Operator
	Inner ET
}

func (*OpET) isET() {}

// ComposeSequenceET is a pending sequential composition of its elements.
type ComposeSequenceET struct {
	Elems []ET
}

func (*ComposeSequenceET) isET() {}

// ComposeParallelET is a match/branching composition: a condition
// expression-type and one expression-type per clause.
type ComposeParallelET struct {
	Cond    ET
	Clauses []ET
}

func (*ComposeParallelET) isET() {}

// FunDef is the sealed sum type of a function value's definition: either
// an inlined body (ExprDef) or an opaque marker indicating the function
// value is itself a parameter of some outer lambda/procedure.
type FunDef interface {
	isFunDef()
}

// ExprDef is an inlined function body.
type ExprDef struct {
	Body ET
}

func (*ExprDef) isFunDef() {}

// FormalParamDef marks that the function value is the k-th lambda
// parameter of some enclosing scope.
type FormalParamDef struct {
	Index int
}

func (*FormalParamDef) isFunDef() {}

// ProcParamDef marks that the function value is the i-th parameter of the
// enclosing procedure.
type ProcParamDef struct {
	Index int
}

func (*ProcParamDef) isFunDef() {}

// FunDesc describes a first-class function value: its de Bruijn
// level(s) — always a single-element slice in this system, since each
// lambda introduces exactly one parameter and curried functions nest
// their own FunDesc — and its Def.
type FunDesc struct {
	Levels []int
	Def    FunDef
}

// FunET is a first-class function value.
type FunET struct {
	Desc FunDesc
}

func (*FunET) isET() {}

// AppET is a pending application of Desc to Args.
type AppET struct {
	Desc FunDesc
	Args []ET
}

func (*AppET) isET() {}

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

// Package shard implements the Constraint Synthesizer of spec.md §4.6:
// it reduces a single component's summary down to the set of sharding
// constraints a runtime scheduler needs to decide placement.
package shard

import (
	"sort"
	"strconv"

	"github.com/shardcheck/shardcheck/pkg/ast"
)

// Constraint is the sealed sum type of sharding constraints (spec.md
// §3).
type Constraint interface {
	Key() string
	isConstraint()
}

// MustOwn requires the executing shard to be authoritative for pf.
type MustOwn struct{ Field ast.Pseudofield }

func (MustOwn) isConstraint() {}
func (c MustOwn) Key() string { return "MustOwn(" + c.Field.String() + ")" }

// MustAcceptWeakRead permits reads of pf to observe stale values.
type MustAcceptWeakRead struct{ Field ast.Pseudofield }

func (MustAcceptWeakRead) isConstraint() {}
func (c MustAcceptWeakRead) Key() string { return "MustAcceptWeakRead(" + c.Field.String() + ")" }

// MustHavePCM requires the write to pf to participate in the named PCM.
type MustHavePCM struct {
	Field ast.Pseudofield
	PCMID string
}

func (MustHavePCM) isConstraint() {}
func (c MustHavePCM) Key() string { return "MustHavePCM(" + c.Field.String() + "," + c.PCMID + ")" }

// AddrMustBeNonContract requires the procedure-parameter at ParamIdx to
// be a non-contract address at every call.
type AddrMustBeNonContract struct{ ParamIdx int }

func (AddrMustBeNonContract) isConstraint() {}
func (c AddrMustBeNonContract) Key() string {
	return "AddrMustBeNonContract(" + strconv.Itoa(c.ParamIdx) + ")"
}

// MustNotHaveDuplicates requires the arguments at the given parameter
// indices to be pairwise distinct, to prevent aliased map-key writes.
type MustNotHaveDuplicates struct{ ParamIdxs []int }

func (MustNotHaveDuplicates) isConstraint() {}
func (c MustNotHaveDuplicates) Key() string {
	s := "MustNotHaveDuplicates("
	for i, idx := range c.ParamIdxs {
		if i > 0 {
			s += ","
		}

		s += strconv.Itoa(idx)
	}

	return s + ")"
}

// SenderShard requires the transition to execute in the sender's shard.
type SenderShard struct{}

func (SenderShard) isConstraint() {}
func (SenderShard) Key() string   { return "SenderShard" }

// Unsat means no shard placement is admissible: the transition cannot be
// sharded at all.
type Unsat struct{}

func (Unsat) isConstraint() {}
func (Unsat) Key() string   { return "Unsat" }

// Set is a deduplicated, deterministically-ordered constraint set.
type Set struct {
	constraints map[string]Constraint
}

// NewSet constructs an empty Set.
func NewSet() *Set { return &Set{constraints: map[string]Constraint{}} }

// Add returns a new Set containing every constraint of s plus c.
func (s *Set) Add(c Constraint) *Set {
	out := make(map[string]Constraint, len(s.constraints)+1)

	for k, v := range s.constraints {
		out[k] = v
	}

	out[c.Key()] = c

	return &Set{constraints: out}
}

// Sorted returns every constraint in s, ordered deterministically by
// Key (spec.md §9's determinism requirement).
func (s *Set) Sorted() []Constraint {
	keys := make([]string, 0, len(s.constraints))
	for k := range s.constraints {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	out := make([]Constraint, len(keys))
	for i, k := range keys {
		out[i] = s.constraints[k]
	}

	return out
}

// Len reports the number of distinct constraints in s.
func (s *Set) Len() int { return len(s.constraints) }

// UnsatSet is the canonical {Unsat} result.
func UnsatSet() *Set { return NewSet().Add(Unsat{}) }

// IsUnsat reports whether s is (or contains) the Unsat constraint.
func (s *Set) IsUnsat() bool {
	_, ok := s.constraints[Unsat{}.Key()]
	return ok
}

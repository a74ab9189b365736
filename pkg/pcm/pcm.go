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

// Package pcm implements the PCM Registry of spec.md §4.3: a pluggable
// capability set recognising partial-commutative monoids, used by the
// statement analyzer and constraint synthesizer to detect commutative
// writes and spurious option-match idioms. New monoids register an
// implementation of the PCM interface; none of the call sites downcast
// or switch on concrete PCM types.
package pcm

import (
	"github.com/shardcheck/shardcheck/pkg/ast"
	"github.com/shardcheck/shardcheck/pkg/contrib"
)

// Env is the minimal environment lookup a PCM implementation needs to
// decide is_unit for a non-literal expression (e.g. recognising a
// contract parameter that is itself bound to the unit value). It is
// satisfied by *env.Environment, so pkg/pcm does not import pkg/env.
type Env interface {
	// IsBoundToUnit reports whether name is an identifier known to be
	// permanently equal to some PCM's unit element.
	IsBoundToUnit(name string) bool
}

// PCM is the capability set spec.md §4.3 requires of every partial-
// commutative-monoid module.
type PCM interface {
	// Identifier is a stable, human-readable name for this PCM, used in
	// MustHavePCM constraints and diagnostics (e.g. "integer_add").
	Identifier() string
	// IsApplicableType reports whether this PCM applies to a value of
	// the given type.
	IsApplicableType(t ast.Type) bool
	// IsUnitLiteral reports whether lit is this PCM's unit element.
	IsUnitLiteral(lit ast.Literal) bool
	// IsUnit reports whether expr evaluates to this PCM's unit element,
	// consulting env for identifiers bound to the unit.
	IsUnit(env Env, expr ast.Expr) bool
	// IsOp reports whether op is this PCM's binary operation.
	IsOp(op contrib.Operator) bool
	// IsOpExpr reports whether expr is exactly this PCM's operation
	// applied once each to the identifiers a and b (in either order).
	IsOpExpr(expr ast.Expr, a, b string) bool
}

// Registry holds the set of known PCMs, looked up by identifier or
// iterated when a commutativity check must try every registered monoid.
type Registry struct {
	pcms map[string]PCM
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{pcms: make(map[string]PCM)}
}

// NewDefaultRegistry constructs a Registry pre-populated with every PCM
// this repository ships built in (currently just Integer-Addition).
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewIntegerAdd())

	return r
}

// Register adds p to the registry, keyed by its Identifier. Registering
// two PCMs under the same identifier is a configuration error the
// caller is expected not to make; the later registration wins.
func (r *Registry) Register(p PCM) {
	r.pcms[p.Identifier()] = p
}

// Lookup returns the PCM registered under id, if any.
func (r *Registry) Lookup(id string) (PCM, bool) {
	p, ok := r.pcms[id]
	return p, ok
}

// List returns every registered PCM, in no particular order. Callers
// needing a deterministic order (e.g. cmd/shardcheck's "pcm list"
// subcommand) sort by Identifier themselves.
func (r *Registry) List() []PCM {
	out := make([]PCM, 0, len(r.pcms))
	for _, p := range r.pcms {
		out = append(out, p)
	}

	return out
}

// ApplicableTo returns every registered PCM applicable to t.
func (r *Registry) ApplicableTo(t ast.Type) []PCM {
	var out []PCM

	for _, p := range r.pcms {
		if p.IsApplicableType(t) {
			out = append(out, p)
		}
	}

	return out
}

// FindByOp returns a PCM, applicable to t, whose binary operation is op,
// if one is registered.
func (r *Registry) FindByOp(t ast.Type, op contrib.Operator) (PCM, bool) {
	for _, p := range r.pcms {
		if p.IsApplicableType(t) && p.IsOp(op) {
			return p, true
		}
	}

	return nil, false
}

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

// Package env implements the persistent analysis environment of spec.md
// §3/§5: a name-to-signature dictionary extended by copy-on-write, never
// mutated in place, so that binding a name inside one branch of analysis
// never affects a sibling branch holding the same Environment value.
package env

import "github.com/shardcheck/shardcheck/pkg/etype"

// ShadowStatus records how a binder's name relates to the enclosing
// component's own parameter list (spec.md §3).
type ShadowStatus uint8

const (
	// DoesNotShadow is the status of a fresh name unrelated to any
	// component parameter.
	DoesNotShadow ShadowStatus = iota
	// ComponentParameter marks the binding introduced by a component's
	// own parameter list.
	ComponentParameter
	// ShadowsComponentParameter marks a binder whose name coincides with
	// a component parameter's name, introduced inside the component's
	// body by a statement (e.g. a Bind, Load or MapGet, or a
	// match-statement clause binder). Binders introduced inside
	// expressions (Let and match-expression clauses in pkg/eval) are
	// recorded as DoesNotShadow.
	ShadowsComponentParameter
)

// Sig is the sealed sum type of environment entries (spec.md §3).
type Sig interface {
	isSig()
}

// ComponentSig binds a component (transition or procedure) name to its
// parameter list and its frozen summary. Summary is typed any, not
// *summary.ComponentSummary: pkg/env must not import pkg/summary, since
// pkg/summary's call-translation step needs to look up ComponentSig
// values from the environment, and a two-way import would cycle. Callers
// in pkg/summary type-assert Summary back to *summary.ComponentSummary.
type ComponentSig struct {
	Params  []string
	Summary any
}

func (*ComponentSig) isSig() {}

// IdentSig binds a value or function name to its analysis facts: whether
// it shadows a component parameter, which PCM units (by identifier) it
// is known to equal, and its expression-type.
type IdentSig struct {
	Shadow         ShadowStatus
	PCMMembership  map[string]bool
	ExpressionType etype.ET
}

func (*IdentSig) isSig() {}

// Environment is a persistent map from name to Sig. The zero value is
// not usable; construct with New.
type Environment struct {
	bindings map[string]Sig
}

// New constructs an empty Environment.
func New() *Environment {
	return &Environment{bindings: map[string]Sig{}}
}

// Bind returns a new Environment identical to e except that name is
// additionally bound to sig, shadowing any prior binding of that name. e
// itself is left unmodified.
func (e *Environment) Bind(name string, sig Sig) *Environment {
	out := make(map[string]Sig, len(e.bindings)+1)

	for k, v := range e.bindings {
		out[k] = v
	}

	out[name] = sig

	return &Environment{bindings: out}
}

// Lookup returns the signature bound to name, if any.
func (e *Environment) Lookup(name string) (Sig, bool) {
	s, ok := e.bindings[name]
	return s, ok
}

// LookupIdent returns the IdentSig bound to name, if name is bound and
// bound to an IdentSig.
func (e *Environment) LookupIdent(name string) (*IdentSig, bool) {
	s, ok := e.bindings[name]
	if !ok {
		return nil, false
	}

	id, ok := s.(*IdentSig)
	return id, ok
}

// LookupComponent returns the ComponentSig bound to name, if name is
// bound and bound to a ComponentSig.
func (e *Environment) LookupComponent(name string) (*ComponentSig, bool) {
	s, ok := e.bindings[name]
	if !ok {
		return nil, false
	}

	c, ok := s.(*ComponentSig)
	return c, ok
}

// ExpressionType is a convenience accessor returning the expression-type
// bound to name, or etype.Unknown if name is unbound or bound to
// something other than an IdentSig — the conservative give-up per
// spec.md §7 (a genuinely-required-but-missing binding is instead caught
// as a structural failure by the caller before it reaches here).
func (e *Environment) ExpressionType(name string) etype.ET {
	id, ok := e.LookupIdent(name)
	if !ok {
		return etype.Unknown
	}

	return id.ExpressionType
}

// IsBoundToUnit implements pcm.Env: name is bound to a PCM's unit
// element iff some PCM identifier is recorded true in its
// PCMMembership set.
func (e *Environment) IsBoundToUnit(name string) bool {
	id, ok := e.LookupIdent(name)
	if !ok {
		return false
	}

	for _, member := range id.PCMMembership {
		if member {
			return true
		}
	}

	return false
}

// ShadowStatusFor computes the ShadowStatus a newly-introduced binder
// named name should carry, given the enclosing component's own
// parameter names.
func ShadowStatusFor(name string, componentParams []string) ShadowStatus {
	for _, p := range componentParams {
		if p == name {
			return ShadowsComponentParameter
		}
	}

	return DoesNotShadow
}

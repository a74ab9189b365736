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
package etype

import "github.com/shardcheck/shardcheck/pkg/contrib"

// Substitute implements spec.md §4.2's capture-avoiding substitution: it
// replaces every occurrence of marker (a FormalParameter(k) or
// ProcParameter(i) source) inside et with arg. The same routine serves
// both beta-reduction (marker is a FormalParameter, called from
// normalizeApp) and inter-procedural summary translation (marker is a
// ProcParameter, called from pkg/summary's call-translation step).
func Substitute(et ET, marker contrib.Source, arg ET) ET {
	switch e := et.(type) {
	case *UnknownET:
		return et
	case *ValET:
		return substituteVal(e, marker, arg)
	case *CompositeValET:
		if argC, ok := arg.(*CompositeValET); ok {
			return &CompositeValET{
				Full:    Substitute(e.Full, marker, argC.Full),
				Special: Substitute(e.Special, marker, argC.Special),
			}
		}

		return &CompositeValET{
			Full:    Substitute(e.Full, marker, arg),
			Special: Substitute(e.Special, marker, arg),
		}
	case *OpET:
		return &OpET{Op: e.Op, Inner: Substitute(e.Inner, marker, arg)}
	case *ComposeSequenceET:
		return &ComposeSequenceET{Elems: substituteAll(e.Elems, marker, arg)}
	case *ComposeParallelET:
		return &ComposeParallelET{
			Cond:    Substitute(e.Cond, marker, arg),
			Clauses: substituteAll(e.Clauses, marker, arg),
		}
	case *FunET:
		return substituteFun(e, marker, arg)
	case *AppET:
		return substituteApp(e, marker, arg)
	default:
		return et
	}
}

func substituteAll(ets []ET, marker contrib.Source, arg ET) []ET {
	out := make([]ET, len(ets))
	for i, e := range ets {
		out[i] = Substitute(e, marker, arg)
	}

	return out
}

// substituteVal implements the Val case: if marker appears as a source,
// every other source's summary is product-combined with the marker's own
// summary (modelling substitution of a symbolic value into a position
// where multiple sources were multiplicatively combined), and the
// argument's sources, each product-combined with the marker's summary so
// that the operators recorded on the marker carry over to them, are then
// sequentially unioned in.
func substituteVal(e *ValET, marker contrib.Source, arg ET) ET {
	markerSummary, present := e.Known.Contributions[marker]
	if !present {
		return e
	}

	rest := contrib.NewContributions()

	for src, s := range e.Known.Contributions {
		if src == marker {
			continue
		}

		rest[src] = contrib.CombineProduct(s, markerSummary)
	}

	restKnown := contrib.KnownContribution{Precision: e.Known.Precision, Contributions: rest}

	argVal, ok := arg.(*ValET)
	if !ok {
		// A function value was substituted into what was a data-flow
		// position; this cannot arise from a well-typed program, but
		// fold to Unknown rather than panic.
		return Unknown
	}

	argContribs := contrib.NewContributions()

	for src, s := range argVal.Known.Contributions {
		argContribs[src] = contrib.CombineProduct(s, markerSummary)
	}

	argKnown := contrib.KnownContribution{Precision: argVal.Known.Precision, Contributions: argContribs}

	return &ValET{contrib.ComposeSeq(restKnown, argKnown)}
}

func matchesMarkerDef(def FunDef, marker contrib.Source) bool {
	switch d := def.(type) {
	case *FormalParamDef:
		return marker.Kind == contrib.FormalParameter && marker.Index == d.Index
	case *ProcParamDef:
		return marker.Kind == contrib.ProcParameter && marker.Index == d.Index
	default:
		return false
	}
}

func containsLevel(levels []int, index int) bool {
	for _, l := range levels {
		if l == index {
			return true
		}
	}

	return false
}

// substituteFun implements the Fun cases: a first-class-function
// substitution when this Fun's descriptor names the target parameter
// directly (returning arg as-is), otherwise a structural descent into the
// body — unless the lambda's own formal parameter shadows the target
// (same de Bruijn level), in which case the body is left untouched since
// its internal references refer to the fresh binder, not marker.
func substituteFun(e *FunET, marker contrib.Source, arg ET) ET {
	if matchesMarkerDef(e.Desc.Def, marker) {
		if fn, ok := arg.(*FunET); ok {
			return fn
		}
	}

	ed, ok := e.Desc.Def.(*ExprDef)
	if !ok {
		return e
	}

	if marker.Kind == contrib.FormalParameter && containsLevel(e.Desc.Levels, marker.Index) {
		return e
	}

	return &FunET{FunDesc{Levels: e.Desc.Levels, Def: &ExprDef{Body: Substitute(ed.Body, marker, arg)}}}
}

// substituteApp implements the App case: if the callee's descriptor
// names the target parameter and arg is a known function, the callee is
// replaced by arg's own descriptor (first-class-function substitution
// through an application); otherwise the descriptor's body (if inlined)
// and every argument are substituted into structurally.
func substituteApp(e *AppET, marker contrib.Source, arg ET) ET {
	desc := e.Desc

	if matchesMarkerDef(desc.Def, marker) {
		if fn, ok := arg.(*FunET); ok {
			desc = fn.Desc
		}
	} else if ed, ok := desc.Def.(*ExprDef); ok {
		desc = FunDesc{Levels: desc.Levels, Def: &ExprDef{Body: Substitute(ed.Body, marker, arg)}}
	}

	return &AppET{Desc: desc, Args: substituteAll(e.Args, marker, arg)}
}

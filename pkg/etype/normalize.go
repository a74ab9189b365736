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

// Normalize rewrites et to canonical form (spec.md §4.2): it distributes
// pending operators into contributions, collapses compositions whose
// elements are all fully-evaluated, and beta-reduces fully-known
// applications. Rules are applied bottom-up; a rewritten node is
// re-normalized until no further rewrite applies, which always
// terminates here because the object language has no general recursion
// (FixpointExpr is rejected before reaching this package). An
// Unknown-infected application normalizes to Unknown; any other term with
// an Unknown inside it is kept pending around its normalized parts.
func Normalize(et ET) ET {
	switch e := et.(type) {
	case *UnknownET, *ValET:
		return et
	case *CompositeValET:
		return &CompositeValET{Full: Normalize(e.Full), Special: Normalize(e.Special)}
	case *OpET:
		return normalizeOp(e)
	case *ComposeSequenceET:
		return normalizeComposeSequence(e)
	case *ComposeParallelET:
		return normalizeComposeParallel(e)
	case *FunET:
		return normalizeFun(e)
	case *AppET:
		return normalizeApp(e)
	default:
		return et
	}
}

// normalizeOp implements "Op(op, Val(ps, c)) → Val(ps, c′) where each
// source's op-set gets op added." If Inner does not normalize to a Val,
// the Op is kept pending around the normalized Inner.
func normalizeOp(e *OpET) ET {
	inner := Normalize(e.Inner)

	v, ok := inner.(*ValET)
	if !ok {
		return &OpET{Op: e.Op, Inner: inner}
	}

	out := contrib.NewContributions()

	for src, s := range v.Known.Contributions {
		out[src] = contrib.Summary{Cardinality: s.Cardinality, Ops: s.Ops.Union(contrib.NewOperatorSet(e.Op))}
	}

	return &ValET{contrib.KnownContribution{Precision: v.Known.Precision, Contributions: out}}
}

// normalizeComposeSequence implements "ComposeSequence([…]) → if every
// element normalizes to Val, fold with sequential et_compose; else keep."
func normalizeComposeSequence(e *ComposeSequenceET) ET {
	elems := make([]ET, len(e.Elems))
	allVal := true

	for i, el := range e.Elems {
		elems[i] = Normalize(el)
		if _, ok := elems[i].(*ValET); !ok {
			allVal = false
		}
	}

	if !allVal {
		return &ComposeSequenceET{Elems: elems}
	}

	acc := contrib.Nothing()

	for _, el := range elems {
		acc = contrib.ComposeSeq(acc, el.(*ValET).Known)
	}

	return &ValET{acc}
}

// normalizeComposeParallel implements "ComposeParallel(cond, clauses) →
// if all normalize to Val, parallel-fold the clauses (starting from the
// first clause, not the nothing identity, to avoid precision loss), then
// wrap with add_conditional(cond, …)." Folding requires both the
// condition and every clause to be Val; otherwise the (normalized) node
// is kept pending.
func normalizeComposeParallel(e *ComposeParallelET) ET {
	cond := Normalize(e.Cond)

	clauses := make([]ET, len(e.Clauses))
	allVal := true

	for i, c := range e.Clauses {
		clauses[i] = Normalize(c)
		if _, ok := clauses[i].(*ValET); !ok {
			allVal = false
		}
	}

	condVal, condIsVal := cond.(*ValET)

	if !allVal || !condIsVal || len(clauses) == 0 {
		return &ComposeParallelET{Cond: cond, Clauses: clauses}
	}

	acc := clauses[0].(*ValET).Known

	for _, c := range clauses[1:] {
		acc = contrib.ComposePar(acc, c.(*ValET).Known)
	}

	return &ValET{contrib.AddConditional(condVal.Known, acc)}
}

// normalizeFun implements "Fun(levels, Expr(body)) → normalize body."
// Opaque function descriptors (FormalParamDef/ProcParamDef) have no body
// to normalize.
func normalizeFun(e *FunET) ET {
	ed, ok := e.Desc.Def.(*ExprDef)
	if !ok {
		return e
	}

	return &FunET{FunDesc{Levels: e.Desc.Levels, Def: &ExprDef{Body: Normalize(ed.Body)}}}
}

// normalizeApp implements "App(Fun(levels, Expr(body)), args) → if all
// arguments are values or known functions, apply them one at a time in
// order, using capture-avoiding substitution keyed by the current
// formal-parameter identifier (incremented between argument applications
// since curried functions nest their parameter indices). After each
// substitution, re-normalize."
func normalizeApp(e *AppET) ET {
	if IsUnknown(e) {
		return Unknown
	}

	desc := normalizeDesc(e.Desc)

	args := make([]ET, len(e.Args))
	allKnown := true

	for i, a := range e.Args {
		args[i] = Normalize(a)
		if !isKnownArg(args[i]) {
			allKnown = false
		}
	}

	if !allKnown {
		return &AppET{Desc: desc, Args: args}
	}

	return applyArgs(desc, args)
}

func normalizeDesc(desc FunDesc) FunDesc {
	ed, ok := desc.Def.(*ExprDef)
	if !ok {
		return desc
	}

	return FunDesc{Levels: desc.Levels, Def: &ExprDef{Body: Normalize(ed.Body)}}
}

// isKnownArg reports whether et is a "value or known function" per
// spec.md §4.2: a Val/CompositeVal, or a Fun.
func isKnownArg(et ET) bool {
	switch et.(type) {
	case *ValET, *CompositeValET, *FunET:
		return true
	default:
		return false
	}
}

// applyArgs applies desc to args one at a time, re-normalizing after each
// substitution, per spec.md §4.2.
func applyArgs(desc FunDesc, args []ET) ET {
	if len(args) == 0 {
		return &FunET{desc}
	}

	ed, ok := desc.Def.(*ExprDef)
	if !ok {
		// desc is itself an opaque parameter marker: cannot reduce
		// further here (callers substitute it away before it reaches
		// this point, if it ever resolves to a concrete function).
		return &AppET{Desc: desc, Args: args}
	}

	target := contrib.NewFormalParameter(desc.Levels[0])
	result := Normalize(Substitute(ed.Body, target, args[0]))

	if len(args) == 1 {
		return result
	}

	switch r := result.(type) {
	case *FunET:
		return applyArgs(r.Desc, args[1:])
	case *UnknownET:
		return Unknown
	case *AppET:
		return &AppET{Desc: r.Desc, Args: append(append([]ET{}, r.Args...), args[1:]...)}
	default:
		// A well-typed program never applies a non-function; treat
		// defensively as a give-up rather than panicking the whole
		// analysis over a single call site.
		return Unknown
	}
}

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

// Rewrite structurally maps f over every Contribution Source appearing in
// et, rebuilding each Val's Contributions under the rewritten keys. Used
// by pkg/summary's procedure-call translation step (spec.md §4.5.1) to
// remap a callee's map-key identifiers, embedded inside a pseudofield
// source, into the caller's coordinates after ProcParameter substitution
// has already replaced the parameter sources themselves.
//
// If f maps two distinct sources of the same Val onto the same
// resulting key, the later source (in unspecified map iteration order)
// wins; this can only happen when the caller passes the same identifier
// as two distinct callee parameters. pkg/summary's call guard checks only
// that each map-key argument is a caller parameter and does not reject
// such repeated arguments.
func Rewrite(et ET, f func(contrib.Source) contrib.Source) ET {
	switch e := et.(type) {
	case *UnknownET:
		return et
	case *ValET:
		out := contrib.NewContributions()
		for src, s := range e.Known.Contributions {
			out[f(src)] = s
		}

		return &ValET{contrib.KnownContribution{Precision: e.Known.Precision, Contributions: out}}
	case *CompositeValET:
		return &CompositeValET{Full: Rewrite(e.Full, f), Special: Rewrite(e.Special, f)}
	case *OpET:
		return &OpET{Op: e.Op, Inner: Rewrite(e.Inner, f)}
	case *ComposeSequenceET:
		return &ComposeSequenceET{Elems: rewriteAll(e.Elems, f)}
	case *ComposeParallelET:
		return &ComposeParallelET{Cond: Rewrite(e.Cond, f), Clauses: rewriteAll(e.Clauses, f)}
	case *FunET:
		if ed, ok := e.Desc.Def.(*ExprDef); ok {
			return &FunET{FunDesc{Levels: e.Desc.Levels, Def: &ExprDef{Body: Rewrite(ed.Body, f)}}}
		}

		return e
	case *AppET:
		desc := e.Desc
		if ed, ok := desc.Def.(*ExprDef); ok {
			desc = FunDesc{Levels: desc.Levels, Def: &ExprDef{Body: Rewrite(ed.Body, f)}}
		}

		return &AppET{Desc: desc, Args: rewriteAll(e.Args, f)}
	default:
		return et
	}
}

func rewriteAll(ets []ET, f func(contrib.Source) contrib.Source) []ET {
	out := make([]ET, len(ets))
	for i, e := range ets {
		out[i] = Rewrite(e, f)
	}

	return out
}

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
package summary

import (
	"github.com/shardcheck/shardcheck/pkg/ast"
	"github.com/shardcheck/shardcheck/pkg/contrib"
	"github.com/shardcheck/shardcheck/pkg/etype"
)

// mapKeyIdentifiers implements spec.md §4.5.1 step 2: the callee's
// identifiers used as map keys across all its operations, deduplicated.
// Keys appear both directly on an operation's own pseudofield and
// embedded inside any expression-type it carries (another pseudofield
// reached through a read, e.g. as part of a commutative-write value).
func mapKeyIdentifiers(sum *ComponentSummary) []string {
	seen := map[string]bool{}
	var out []string

	add := func(pf ast.Pseudofield) {
		for _, k := range pf.Keys() {
			if !seen[k] {
				seen[k] = true
				out = append(out, k)
			}
		}
	}

	addET := func(et etype.ET) {
		for _, src := range etype.PseudofieldSources(et) {
			add(src.Field)
		}
	}

	for _, op := range sum.Ops() {
		switch o := op.(type) {
		case ReadOp:
			add(o.Field)
		case WriteOp:
			add(o.Field)
			addET(o.ET)
		case ConditionOnOp:
			addET(o.ET)
		case EmitEventOp:
			addET(o.ET)
		case SendMessagesOp:
			addET(o.ET)
		}
	}

	return out
}

// rewritePseudofield implements the position-indexed map-key rewrite of
// spec.md §4.5.1 step 5.
func rewritePseudofield(pf ast.Pseudofield, paramIndex map[string]int, argNames []string) ast.Pseudofield {
	if !pf.IsMap() {
		return pf
	}

	keys := pf.Keys()
	newKeys := make([]string, len(keys))

	for i, k := range keys {
		if idx, ok := paramIndex[k]; ok && idx < len(argNames) {
			newKeys[i] = argNames[idx]
		} else {
			newKeys[i] = k
		}
	}

	return ast.NewMapPseudofield(pf.Field, newKeys)
}

// translateET implements spec.md §4.5.1 step 5's expression-type
// rewrite: every ProcParameter(i) is substituted with the caller's i-th
// argument expression-type, one at a time, re-normalizing after each;
// then any residual pseudofield-source map keys are remapped into the
// caller's coordinates.
func translateET(et etype.ET, paramIndex map[string]int, argNames []string, argETs []etype.ET) etype.ET {
	for i, argET := range argETs {
		et = etype.Normalize(etype.Substitute(et, contrib.NewProcParameter(i), argET))
	}

	return etype.Rewrite(et, func(src contrib.Source) contrib.Source {
		if src.Kind != contrib.PseudofieldSource {
			return src
		}

		return contrib.NewPseudofieldSource(rewritePseudofield(src.Field, paramIndex, argNames))
	})
}

// translateSummary implements spec.md §4.5.1 step 5, applied across an
// entire callee ComponentSummary.
func translateSummary(calleeSummary *ComponentSummary, paramIndex map[string]int, argNames []string, argETs []etype.ET) *ComponentSummary {
	out := Empty()

	for _, op := range calleeSummary.Ops() {
		switch o := op.(type) {
		case ReadOp:
			out = out.Add(ReadOp{Field: rewritePseudofield(o.Field, paramIndex, argNames)})
		case WriteOp:
			out = out.Add(WriteOp{
				Field: rewritePseudofield(o.Field, paramIndex, argNames),
				ET:    translateET(o.ET, paramIndex, argNames, argETs),
			})
		case AcceptMoneyOp:
			out = out.Add(o)
		case ConditionOnOp:
			out = out.Add(ConditionOnOp{ET: translateET(o.ET, paramIndex, argNames, argETs)})
		case EmitEventOp:
			out = out.Add(EmitEventOp{ET: translateET(o.ET, paramIndex, argNames, argETs)})
		case SendMessagesOp:
			out = out.Add(SendMessagesOp{ET: translateET(o.ET, paramIndex, argNames, argETs)})
		case AlwaysExclusiveOp:
			out = out.Add(o)
		}
	}

	return out
}

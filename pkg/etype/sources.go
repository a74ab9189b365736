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

import (
	"github.com/shardcheck/shardcheck/pkg/ast"
	"github.com/shardcheck/shardcheck/pkg/contrib"
)

// CollectSources returns every Contribution Source appearing anywhere
// inside et, deduplicated. pkg/shard uses this to find the pseudofield
// sources embedded in a Write's or ConditionOn's expression-type
// (spec.md §4.6); pkg/summary uses it to decide whether a map-key
// identifier's expression-type is the single-pseudofield-source shape
// the PCM-op-stmt idiom requires.
func CollectSources(et ET) []contrib.Source {
	seen := map[contrib.Source]bool{}
	var out []contrib.Source

	var walk func(ET)
	walk = func(e ET) {
		switch x := e.(type) {
		case *ValET:
			for src := range x.Known.Contributions {
				if !seen[src] {
					seen[src] = true
					out = append(out, src)
				}
			}
		case *CompositeValET:
			walk(x.Full)
			walk(x.Special)
		case *OpET:
			walk(x.Inner)
		case *ComposeSequenceET:
			for _, el := range x.Elems {
				walk(el)
			}
		case *ComposeParallelET:
			walk(x.Cond)
			for _, c := range x.Clauses {
				walk(c)
			}
		case *FunET:
			if ed, ok := x.Desc.Def.(*ExprDef); ok {
				walk(ed.Body)
			}
		case *AppET:
			if ed, ok := x.Desc.Def.(*ExprDef); ok {
				walk(ed.Body)
			}

			for _, a := range x.Args {
				walk(a)
			}
		}
	}

	walk(et)

	return out
}

// PseudofieldSources returns the PseudofieldSource-kind sources
// appearing inside et.
func PseudofieldSources(et ET) []contrib.Source {
	var out []contrib.Source

	for _, src := range CollectSources(et) {
		if src.Kind == contrib.PseudofieldSource {
			out = append(out, src)
		}
	}

	return out
}

// References reports whether et contains pf as a pseudofield source.
func References(et ET, pf ast.Pseudofield) bool {
	for _, src := range PseudofieldSources(et) {
		if src.Field == pf {
			return true
		}
	}

	return false
}

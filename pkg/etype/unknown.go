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

// IsUnknown implements spec.md §4.2's unknown-propagation predicate: a
// structural recursion reporting whether et is Unknown, is a Val whose
// contributions include the give-up source, or contains a subterm for
// which either is true.
func IsUnknown(et ET) bool {
	switch e := et.(type) {
	case *UnknownET:
		return true
	case *ValET:
		_, has := e.Known.Contributions[contrib.UnknownSource]
		return has
	case *CompositeValET:
		return IsUnknown(e.Full) || IsUnknown(e.Special)
	case *OpET:
		return IsUnknown(e.Inner)
	case *ComposeSequenceET:
		return anyUnknown(e.Elems)
	case *ComposeParallelET:
		return IsUnknown(e.Cond) || anyUnknown(e.Clauses)
	case *FunET:
		return funDefUnknown(e.Desc.Def)
	case *AppET:
		return funDefUnknown(e.Desc.Def) || anyUnknown(e.Args)
	default:
		return false
	}
}

func anyUnknown(ets []ET) bool {
	for _, e := range ets {
		if IsUnknown(e) {
			return true
		}
	}

	return false
}

func funDefUnknown(def FunDef) bool {
	if ed, ok := def.(*ExprDef); ok {
		return IsUnknown(ed.Body)
	}

	return false
}

// FabricateUnknownFunction builds the nested Fun value the evaluator uses
// when App encounters an Unknown callee: arity nested lambdas whose
// innermost body is Unknown (spec.md §4.4, "App").
func FabricateUnknownFunction(level int, arity int) ET {
	if arity <= 0 {
		return Unknown
	}

	body := ET(Unknown)
	for i := arity - 1; i >= 0; i-- {
		body = &FunET{FunDesc{Levels: []int{level + i}, Def: &ExprDef{Body: body}}}
	}

	return body
}

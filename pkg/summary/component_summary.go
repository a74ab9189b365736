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
	"sort"

	"github.com/shardcheck/shardcheck/pkg/ast"
)

// ComponentSummary is a Component Summary (spec.md §3): a set of
// operations deduplicated by structural equality (Op.Key), built by
// immutable union so that two branches of analysis holding the same
// ComponentSummary value never observe each other's later additions
// (spec.md §5, §8 invariant 6).
type ComponentSummary struct {
	ops map[string]Op
}

// Empty is the summary with no operations.
func Empty() *ComponentSummary {
	return &ComponentSummary{ops: map[string]Op{}}
}

// Add returns a new summary containing every operation of s plus op.
func (s *ComponentSummary) Add(op Op) *ComponentSummary {
	out := make(map[string]Op, len(s.ops)+1)

	for k, v := range s.ops {
		out[k] = v
	}

	out[op.Key()] = op

	return &ComponentSummary{ops: out}
}

// Union returns a new summary containing every operation of s or other.
func (s *ComponentSummary) Union(other *ComponentSummary) *ComponentSummary {
	out := make(map[string]Op, len(s.ops)+len(other.ops))

	for k, v := range s.ops {
		out[k] = v
	}

	for k, v := range other.ops {
		out[k] = v
	}

	return &ComponentSummary{ops: out}
}

// Ops returns every operation in s, ordered deterministically by Key.
func (s *ComponentSummary) Ops() []Op {
	keys := make([]string, 0, len(s.ops))
	for k := range s.ops {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	out := make([]Op, len(keys))
	for i, k := range keys {
		out[i] = s.ops[k]
	}

	return out
}

// Len returns the number of distinct operations in s.
func (s *ComponentSummary) Len() int { return len(s.ops) }

// WriteOf returns a Write operation targeting pf, if one is present. If
// several writes target pf (distinct ETs), the one with the
// lexicographically smallest Key is returned; this only affects which
// ET the read-after-write check of spec.md §4.5 observes when a
// component writes the same pseudofield more than once with different
// values, an edge case spec.md does not otherwise disambiguate.
func (s *ComponentSummary) WriteOf(pf ast.Pseudofield) (WriteOp, bool) {
	var (
		found bool
		best  WriteOp
	)

	for _, op := range s.Ops() {
		w, ok := op.(WriteOp)
		if ok && w.Field == pf && !found {
			best, found = w, true
		}
	}

	return best, found
}

// HasAlwaysExclusive reports whether s contains any AlwaysExclusiveOp.
func (s *ComponentSummary) HasAlwaysExclusive() bool {
	for _, op := range s.ops {
		if _, ok := op.(AlwaysExclusiveOp); ok {
			return true
		}
	}

	return false
}

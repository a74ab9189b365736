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
	"sort"
	"strconv"
	"strings"

	"github.com/shardcheck/shardcheck/pkg/contrib"
)

// Key renders et as a canonical string: two expression-types with the
// same Key are structurally equal, regardless of the underlying map
// iteration order used to build them. pkg/summary uses this to
// deduplicate a growing ComponentSummary by structural equality
// (spec.md §3, §9) and pkg/shard uses it for deterministic output.
func Key(et ET) string {
	var b strings.Builder
	writeKey(&b, et)

	return b.String()
}

func writeKey(b *strings.Builder, et ET) {
	switch e := et.(type) {
	case *UnknownET:
		b.WriteString("Unknown")
	case *ValET:
		b.WriteString("Val(")
		writeKnown(b, e.Known)
		b.WriteByte(')')
	case *CompositeValET:
		b.WriteString("Composite(")
		writeKey(b, e.Full)
		b.WriteByte(',')
		writeKey(b, e.Special)
		b.WriteByte(')')
	case *OpET:
		b.WriteString("Op(")
		b.WriteString(e.Op.String())
		b.WriteByte(',')
		writeKey(b, e.Inner)
		b.WriteByte(')')
	case *ComposeSequenceET:
		b.WriteString("Seq(")
		writeKeys(b, e.Elems)
		b.WriteByte(')')
	case *ComposeParallelET:
		b.WriteString("Par(")
		writeKey(b, e.Cond)
		b.WriteByte(';')
		writeKeys(b, e.Clauses)
		b.WriteByte(')')
	case *FunET:
		b.WriteString("Fun(")
		writeDesc(b, e.Desc)
		b.WriteByte(')')
	case *AppET:
		b.WriteString("App(")
		writeDesc(b, e.Desc)
		b.WriteByte(';')
		writeKeys(b, e.Args)
		b.WriteByte(')')
	default:
		b.WriteString("?")
	}
}

func writeKeys(b *strings.Builder, ets []ET) {
	for i, e := range ets {
		if i > 0 {
			b.WriteByte(',')
		}

		writeKey(b, e)
	}
}

func writeDesc(b *strings.Builder, desc FunDesc) {
	for i, l := range desc.Levels {
		if i > 0 {
			b.WriteByte(',')
		}

		b.WriteString(strconv.Itoa(l))
	}

	b.WriteByte(':')

	switch d := desc.Def.(type) {
	case *ExprDef:
		writeKey(b, d.Body)
	case *FormalParamDef:
		b.WriteString("fp" + strconv.Itoa(d.Index))
	case *ProcParamDef:
		b.WriteString("pp" + strconv.Itoa(d.Index))
	}
}

func writeKnown(b *strings.Builder, k contrib.KnownContribution) {
	b.WriteString(k.Precision.String())
	b.WriteByte(':')

	keys := make([]string, 0, len(k.Contributions))
	rendered := make(map[string]string, len(k.Contributions))

	for src, s := range k.Contributions {
		sk := src.String()
		keys = append(keys, sk)
		rendered[sk] = sk + "=" + s.Cardinality.String() + "{" + writeOps(s.Ops) + "}"
	}

	sort.Strings(keys)

	for i, sk := range keys {
		if i > 0 {
			b.WriteByte(',')
		}

		b.WriteString(rendered[sk])
	}
}

func writeOps(ops contrib.OperatorSet) string {
	names := make([]string, 0, len(ops))
	for op := range ops {
		names = append(names, op.String())
	}

	sort.Strings(names)

	return strings.Join(names, "|")
}

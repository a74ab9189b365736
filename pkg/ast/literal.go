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
package ast

import "strconv"

// Literal is an embedded constant value. The analysis never evaluates
// literals arithmetically (it is not an interpreter of contract semantics);
// it only needs them to be comparable, so they can serve as map keys inside
// Contributions, and to recognize the specific zero/unit literals the PCM
// registry cares about.
type Literal struct {
	repr string
	kind literalKind
}

type literalKind uint8

const (
	literalInt literalKind = iota
	literalBool
	literalOther
)

// IntLiteral constructs an integer literal.
func IntLiteral(v int64) Literal {
	return Literal{repr: strconv.FormatInt(v, 10), kind: literalInt}
}

// BoolLiteral constructs a boolean literal.
func BoolLiteral(v bool) Literal {
	return Literal{repr: strconv.FormatBool(v), kind: literalBool}
}

// OtherLiteral constructs a literal of any other kind (string, address,
// byte-string, …), identified only by its textual representation.
func OtherLiteral(repr string) Literal {
	return Literal{repr: repr, kind: literalOther}
}

// String renders this literal for diagnostics.
func (l Literal) String() string { return l.repr }

// IsZero reports whether this is the integer literal zero: the unit of the
// built-in integer-addition PCM (spec.md §4.3).
func (l Literal) IsZero() bool {
	return l.kind == literalInt && l.repr == "0"
}

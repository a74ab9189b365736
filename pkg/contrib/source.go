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

// Package contrib implements the Contribution Algebra of spec.md §4.1: the
// abstract value domain (Contribution Source, Contribution Summary,
// Contributions, Known Contribution) and its composition operators
// (sequential, parallel, product, conditional). It is the leaf of the
// analysis pipeline — it depends only on pkg/ast.
package contrib

import (
	"strconv"

	"github.com/shardcheck/shardcheck/pkg/ast"
)

// SourceKind discriminates the six forms of Source.
type SourceKind uint8

const (
	// Unknown means the analysis gave up tracking provenance.
	Unknown SourceKind = iota
	// ConstantLiteral identifies a literal embedded in code.
	ConstantLiteral
	// ContractParameter identifies an immutable contract-construction
	// parameter, by name.
	ContractParameter
	// PseudofieldSource identifies mutable contract state.
	PseudofieldSource
	// FormalParameter identifies the k-th lambda parameter, counted by
	// de Bruijn level across nested lambdas.
	FormalParameter
	// ProcParameter identifies the i-th parameter of the enclosing
	// procedure/transition.
	ProcParameter
)

// Source identifies where a value ultimately came from (spec.md §3). It is
// a plain comparable struct — not an interface — so that it can be used
// directly as a map key inside Contributions, mirroring the teacher's own
// preference for small value types over pointer-identity keys wherever a
// value is naturally comparable (e.g. util/collection/set.SortedSet[T
// cmp.Ordered]).
type Source struct {
	Kind    SourceKind
	Literal ast.Literal   // valid iff Kind == ConstantLiteral
	Name    string        // valid iff Kind == ContractParameter
	Field   ast.Pseudofield // valid iff Kind == PseudofieldSource
	Index   int           // valid iff Kind == FormalParameter or ProcParameter
}

// UnknownSource is the singleton "analysis gave up" source.
var UnknownSource = Source{Kind: Unknown}

// NewConstantLiteral constructs a ConstantLiteral source.
func NewConstantLiteral(l ast.Literal) Source {
	return Source{Kind: ConstantLiteral, Literal: l}
}

// NewContractParameter constructs a ContractParameter source.
func NewContractParameter(name string) Source {
	return Source{Kind: ContractParameter, Name: name}
}

// NewPseudofieldSource constructs a Pseudofield source.
func NewPseudofieldSource(pf ast.Pseudofield) Source {
	return Source{Kind: PseudofieldSource, Field: pf}
}

// NewFormalParameter constructs a FormalParameter source at de Bruijn
// level k.
func NewFormalParameter(k int) Source {
	return Source{Kind: FormalParameter, Index: k}
}

// NewProcParameter constructs a ProcParameter source at index i.
func NewProcParameter(i int) Source {
	return Source{Kind: ProcParameter, Index: i}
}

// IsUnknown reports whether this source is the give-up marker.
func (s Source) IsUnknown() bool { return s.Kind == Unknown }

// String renders this source for diagnostics and for the canonical sort
// key used by deterministic output.
func (s Source) String() string {
	switch s.Kind {
	case Unknown:
		return "?"
	case ConstantLiteral:
		return "lit:" + s.Literal.String()
	case ContractParameter:
		return "cparam:" + s.Name
	case PseudofieldSource:
		return "field:" + s.Field.String()
	case FormalParameter:
		return "fp:" + strconv.Itoa(s.Index)
	case ProcParameter:
		return "pp:" + strconv.Itoa(s.Index)
	default:
		return "?"
	}
}

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

// Package ast defines the type-annotated input representation consumed by
// the analysis engine: contract modules, components, statements and
// expressions. The lexer, parser and type-checker which would normally
// produce values of these types are external collaborators and are not
// part of this repository (see spec.md §1); callers construct ast.Module
// values directly (as the fixtures under pkg/ast/fixture do for tests).
package ast

// Type is the minimal type information the analysis needs about a
// contract-language type: whether it is a function type (which changes how
// a Fun parameter is described, see eval.Evaluator.Eval) and, for map types, how
// many key levels it nests (which decides whether a given MapGet/MapUpdate
// is bottom-level).
type Type interface {
	// String renders this type for diagnostics.
	String() string
	isType()
}

// NamedType is any non-composite, non-function base type: Int32, Uint128,
// ByStr20, Bool, String, a user ADT name, etc. The analysis never inspects
// the name beyond equality, except for the reserved recognition of integer
// types by the PCM registry (see pkg/pcm).
type NamedType struct {
	Name string
}

func (*NamedType) isType() {}

// String implements Type.
func (t *NamedType) String() string { return t.Name }

// FunctionType describes a (possibly curried, but represented flat here)
// function's parameter types and result type.
type FunctionType struct {
	Params []Type
	Result Type
}

func (*FunctionType) isType() {}

// String implements Type.
func (t *FunctionType) String() string { return "Fun" }

// MapType is a contract-language mutable map field type: Map(Key, Value).
// A MapType whose Value is itself a MapType models a nested map, e.g.
// Map ByStr20 (Map ByStr20 Uint128) for an allowance table.
type MapType struct {
	Key   Type
	Value Type
}

func (*MapType) isType() {}

// String implements Type.
func (t *MapType) String() string { return "Map" }

// OptionType is the built-in Option ADT: Some(Element) | None.
type OptionType struct {
	Element Type
}

func (*OptionType) isType() {}

// String implements Type.
func (t *OptionType) String() string { return "Option" }

// IsFunctionType reports whether t is a function type.
func IsFunctionType(t Type) bool {
	_, ok := t.(*FunctionType)
	return ok
}

// MapDepth returns the map nesting depth of t: 0 if t is not a map type,
// otherwise 1 plus the depth of its value type. Field metadata in the host
// AST relies on this to let the statement analyzer decide whether a given
// key list reaches the map's bottom level (spec.md §4.5, MapGet/MapUpdate).
func MapDepth(t Type) int {
	m, ok := t.(*MapType)
	if !ok {
		return 0
	}

	return 1 + MapDepth(m.Value)
}

// IntegerTypeNames are the named integer types the built-in PCM registers
// recognize as applicable to the integer-addition monoid.
var IntegerTypeNames = map[string]bool{
	"Int32": true, "Int64": true, "Int128": true, "Int256": true,
	"Uint32": true, "Uint64": true, "Uint128": true, "Uint256": true,
}

// IsIntegerType reports whether t names one of the fixed-width integer
// types of the contract language.
func IsIntegerType(t Type) bool {
	n, ok := t.(*NamedType)
	return ok && IntegerTypeNames[n.Name]
}

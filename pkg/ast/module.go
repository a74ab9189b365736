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

// Param is a name/type pair: a contract-construction parameter, a
// component parameter, or an implicit parameter supplied by the host.
type Param struct {
	Name string
	Type Type
}

// Field is a declared piece of mutable contract state.
type Field struct {
	Name string
	Type Type
}

// Depth returns this field's map nesting depth (0 for a non-map field).
func (f Field) Depth() int { return MapDepth(f.Type) }

// LibraryEntry is one definition inside a library block: either a value
// definition (an expression, with an optional declared type) or an opaque
// type definition the analysis does not need to look inside.
type LibraryEntry interface {
	isLibraryEntry()
}

// ValueDef is a library value definition.
type ValueDef struct {
	Name string
	Expr Expr
	Type Type // optional, may be nil
}

func (*ValueDef) isLibraryEntry() {}

// TypeDef is an opaque library type definition: the analysis records its
// existence (for binding purposes) but never inspects its structure.
type TypeDef struct {
	Name string
}

func (*TypeDef) isLibraryEntry() {}

// ExternalLibrary is one node of the external-library dependency tree:
// spec.md §6 requires these be processed in dependency order.
type ExternalLibrary struct {
	Name         string
	Entries      []LibraryEntry
	Dependencies []*ExternalLibrary
}

// ComponentKind distinguishes the two component forms. Only Transition
// components have sharding constraints synthesized for them (spec.md §2);
// Procedure summaries live only in the environment, for CallProc
// translation.
type ComponentKind uint8

const (
	// Transition is an externally-invocable, sharded component.
	Transition ComponentKind = iota
	// Procedure is an internal helper invoked only via CallProc.
	Procedure
)

// String renders a ComponentKind for diagnostics.
func (k ComponentKind) String() string {
	if k == Transition {
		return "transition"
	}

	return "procedure"
}

// Component is a named transition or procedure: a parameter list and a
// statement-list body.
type Component struct {
	Name   string
	Kind   ComponentKind
	Params []Param
	Body   []Stmt
}

// Module is the type-checked contract module handed to AnalyzeModule: the
// single value this repository's analysis core consumes (spec.md §6).
type Module struct {
	Name              string
	ContractParams    []Param
	Library           []LibraryEntry
	ExternalLibraries []*ExternalLibrary
	Fields            []Field
	Components        []*Component
}

// FieldByName looks up a declared field by name.
func (m *Module) FieldByName(name string) (Field, bool) {
	for _, f := range m.Fields {
		if f.Name == name {
			return f, true
		}
	}

	return Field{}, false
}

// ImplicitParams are the host-supplied implicit parameters prepended to
// every component's and every contract's parameter list wherever parameter
// positions matter (spec.md §6 "Implicit parameters"): e.g. the sender
// address and the incoming message's attached amount.
type ImplicitParams struct {
	ComponentParams []Param
	ContractParams  []Param
}

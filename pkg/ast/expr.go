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

import "github.com/shardcheck/shardcheck/pkg/util/source"

// Expr is the sealed sum type of annotated expression forms consumed by
// the symbolic evaluator (spec.md §4.4). Every variant below embeds a
// Node for an optional source location used only for diagnostics.
type Expr interface {
	// Location returns the optional source span of this expression, for
	// diagnostics only.
	Location() *source.Span
	isExpr()
}

// Node is embedded by every AST type that can carry a source location.
type Node struct {
	Span *source.Span
}

// Location implements the diagnostic-location accessor shared by every
// AST node.
func (n Node) Location() *source.Span { return n.Span }

// ---------------------------------------------------------------------------
// Literal
// ---------------------------------------------------------------------------

// LiteralExpr embeds a constant value directly in code.
type LiteralExpr struct {
	Node
	Value Literal
}

func (*LiteralExpr) isExpr() {}

// ---------------------------------------------------------------------------
// Var
// ---------------------------------------------------------------------------

// VarExpr references a previously bound name: a let-binding, a lambda or
// procedure parameter, a contract parameter, or a component-level binder.
type VarExpr struct {
	Node
	Name string
}

func (*VarExpr) isExpr() {}

// ---------------------------------------------------------------------------
// Builtin
// ---------------------------------------------------------------------------

// BuiltinExpr applies a built-in operator (add, sub, lt, eq, …) to a fixed
// argument list.
type BuiltinExpr struct {
	Node
	Name string
	Args []Expr
}

func (*BuiltinExpr) isExpr() {}

// ---------------------------------------------------------------------------
// Constr
// ---------------------------------------------------------------------------

// ConstrExpr constructs a value of a user-defined (or built-in) algebraic
// data type, e.g. Some(x), Pair(a, b).
type ConstrExpr struct {
	Node
	Name string
	Args []Expr
}

func (*ConstrExpr) isExpr() {}

// ---------------------------------------------------------------------------
// Let
// ---------------------------------------------------------------------------

// LetExpr evaluates Rhs, binds it to Name, and evaluates Body in the
// extended environment.
type LetExpr struct {
	Node
	Name string
	Rhs  Expr
	Body Expr
}

func (*LetExpr) isExpr() {}

// ---------------------------------------------------------------------------
// Type abstraction / application
// ---------------------------------------------------------------------------

// TFunExpr is a type abstraction. It is transparent to the analysis: the
// type parameter carries no data-flow information.
type TFunExpr struct {
	Node
	TypeParam string
	Body      Expr
}

func (*TFunExpr) isExpr() {}

// TApp Expr is a type application. Transparent to the analysis.
type TAppExpr struct {
	Node
	Fn Expr
}

func (*TAppExpr) isExpr() {}

// ---------------------------------------------------------------------------
// Fun / App
// ---------------------------------------------------------------------------

// FunExpr is a single-parameter lambda; curried functions nest these.
type FunExpr struct {
	Node
	Param     string
	ParamType Type
	Body      Expr
}

func (*FunExpr) isExpr() {}

// AppExpr applies Fn to a non-empty argument list.
type AppExpr struct {
	Node
	Fn   Expr
	Args []Expr
}

func (*AppExpr) isExpr() {}

// ---------------------------------------------------------------------------
// Message
// ---------------------------------------------------------------------------

// ReservedAmountLabel and ReservedRecipientLabel are the two payload
// labels the special part of a message's expression-type is restricted to
// (spec.md §6 "Reserved payload labels").
const (
	ReservedAmountLabel    = "_amount"
	ReservedRecipientLabel = "_recipient"
)

// MessageField is one label/value pair of a message literal.
type MessageField struct {
	Label string
	Value Expr
}

// MessageExpr constructs an outgoing message or event payload.
type MessageExpr struct {
	Node
	Fields []MessageField
}

func (*MessageExpr) isExpr() {}

// ---------------------------------------------------------------------------
// Match
// ---------------------------------------------------------------------------

// ExprClause is one arm of a MatchExpr.
type ExprClause struct {
	Pattern Pattern
	Body    Expr
}

// MatchExprExpr pattern-matches Scrutinee against an ordered list of
// clauses, each of which may bind names used in its Body.
type MatchExprExpr struct {
	Node
	Scrutinee Expr
	Clauses   []ExprClause
}

func (*MatchExprExpr) isExpr() {}

// ---------------------------------------------------------------------------
// Fixpoint
// ---------------------------------------------------------------------------

// FixpointExpr marks a recursive user-defined function expressed via an
// explicit fixpoint combinator. Per spec.md §4.4, this form is not
// supported at the top level of the evaluator and is a structural failure
// (not a conservative give-up) if ever reached.
type FixpointExpr struct {
	Node
}

func (*FixpointExpr) isExpr() {}

// ---------------------------------------------------------------------------
// Pattern
// ---------------------------------------------------------------------------

// Pattern is the sealed sum type of match patterns. The analysis only
// needs two facts about a pattern: which names it binds, and — for PCM
// spurious-conditional recognition — whether it is exactly the two-clause
// Some(x)/None shape of an Option scrutinee.
type Pattern interface {
	Binders() []string
	isPattern()
}

// ConstructorPattern matches a specific ADT constructor and binds one name
// per argument position.
type ConstructorPattern struct {
	Constructor string
	Names       []string
}

func (*ConstructorPattern) isPattern() {}

// Binders implements Pattern.
func (p *ConstructorPattern) Binders() []string { return p.Names }

// WildcardPattern matches anything and binds nothing.
type WildcardPattern struct{}

func (*WildcardPattern) isPattern() {}

// Binders implements Pattern.
func (*WildcardPattern) Binders() []string { return nil }

// VarPattern matches anything and binds it to Name.
type VarPattern struct {
	Name string
}

func (*VarPattern) isPattern() {}

// Binders implements Pattern.
func (p *VarPattern) Binders() []string { return []string{p.Name} }

// IsSomeOf reports whether this pattern is the built-in option
// constructor Some applied to a single binder, returning that binder's
// name.
func IsSomeOf(p Pattern) (string, bool) {
	cp, ok := p.(*ConstructorPattern)
	if !ok || cp.Constructor != "Some" || len(cp.Names) != 1 {
		return "", false
	}

	return cp.Names[0], true
}

// IsNone reports whether this pattern is the built-in option constructor
// None.
func IsNone(p Pattern) bool {
	cp, ok := p.(*ConstructorPattern)
	return ok && cp.Constructor == "None" && len(cp.Names) == 0
}

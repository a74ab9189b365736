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

// Package fixture provides small fluent constructors for building
// ast.Module values directly in Go, standing in for the parser this
// repository does not implement. It is used both by the end-to-end test
// scenarios under pkg/summary and pkg/shard, and by cmd/shardcheck's
// built-in demo fixtures.
package fixture

import "github.com/shardcheck/shardcheck/pkg/ast"

// Named base types.
var (
	Int32   = &ast.NamedType{Name: "Int32"}
	Uint128 = &ast.NamedType{Name: "Uint128"}
	Bool    = &ast.NamedType{Name: "Bool"}
	ByStr20 = &ast.NamedType{Name: "ByStr20"}
)

// Map constructs a Map(key, value) type.
func Map(key, value ast.Type) ast.Type { return &ast.MapType{Key: key, Value: value} }

// Option constructs an Option(element) type.
func Option(element ast.Type) ast.Type { return &ast.OptionType{Element: element} }

// P constructs a name/type parameter pair.
func P(name string, t ast.Type) ast.Param { return ast.Param{Name: name, Type: t} }

// Module accumulates fields, parameters and components into an ast.Module.
type Module struct {
	mod *ast.Module
}

// NewModule starts a fixture module named name.
func NewModule(name string) *Module {
	return &Module{mod: &ast.Module{Name: name}}
}

// ContractParam adds a contract-construction parameter.
func (b *Module) ContractParam(name string, t ast.Type) *Module {
	b.mod.ContractParams = append(b.mod.ContractParams, P(name, t))
	return b
}

// Field adds a declared mutable field.
func (b *Module) Field(name string, t ast.Type) *Module {
	b.mod.Fields = append(b.mod.Fields, ast.Field{Name: name, Type: t})
	return b
}

// Library adds a library entry (ValueDef or TypeDef).
func (b *Module) Library(entry ast.LibraryEntry) *Module {
	b.mod.Library = append(b.mod.Library, entry)
	return b
}

// ExternalLibrary registers an external library node.
func (b *Module) ExternalLibrary(lib *ast.ExternalLibrary) *Module {
	b.mod.ExternalLibraries = append(b.mod.ExternalLibraries, lib)
	return b
}

// Component adds a transition or procedure.
func (b *Module) Component(c *ast.Component) *Module {
	b.mod.Components = append(b.mod.Components, c)
	return b
}

// Build returns the accumulated module.
func (b *Module) Build() *ast.Module { return b.mod }

// Transition constructs a Transition-kind component.
func Transition(name string, params []ast.Param, body ...ast.Stmt) *ast.Component {
	return &ast.Component{Name: name, Kind: ast.Transition, Params: params, Body: body}
}

// Procedure constructs a Procedure-kind component.
func Procedure(name string, params []ast.Param, body ...ast.Stmt) *ast.Component {
	return &ast.Component{Name: name, Kind: ast.Procedure, Params: params, Body: body}
}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

// Var references a bound identifier.
func Var(name string) ast.Expr { return &ast.VarExpr{Name: name} }

// IntLit constructs an integer literal expression.
func IntLit(v int64) ast.Expr { return &ast.LiteralExpr{Value: ast.IntLiteral(v)} }

// BoolLit constructs a boolean literal expression.
func BoolLit(v bool) ast.Expr { return &ast.LiteralExpr{Value: ast.BoolLiteral(v)} }

// OtherLit constructs a literal of unspecified kind, identified by repr.
func OtherLit(repr string) ast.Expr { return &ast.LiteralExpr{Value: ast.OtherLiteral(repr)} }

// Builtin applies a named built-in operator.
func Builtin(name string, args ...ast.Expr) ast.Expr {
	return &ast.BuiltinExpr{Name: name, Args: args}
}

// Add is shorthand for Builtin("add", a, b).
func Add(a, b ast.Expr) ast.Expr { return Builtin("add", a, b) }

// Lt is shorthand for Builtin("lt", a, b).
func Lt(a, b ast.Expr) ast.Expr { return Builtin("lt", a, b) }

// Constr constructs an ADT value.
func Constr(name string, args ...ast.Expr) ast.Expr {
	return &ast.ConstrExpr{Name: name, Args: args}
}

// Let binds rhs to name within body.
func Let(name string, rhs, body ast.Expr) ast.Expr {
	return &ast.LetExpr{Name: name, Rhs: rhs, Body: body}
}

// Fun constructs a single-parameter lambda.
func Fun(param string, t ast.Type, body ast.Expr) ast.Expr {
	return &ast.FunExpr{Param: param, ParamType: t, Body: body}
}

// App applies fn to args.
func App(fn ast.Expr, args ...ast.Expr) ast.Expr {
	return &ast.AppExpr{Fn: fn, Args: args}
}

// MField constructs a message field.
func MField(label string, v ast.Expr) ast.MessageField {
	return ast.MessageField{Label: label, Value: v}
}

// Message constructs a message/event payload literal.
func Message(fields ...ast.MessageField) ast.Expr {
	return &ast.MessageExpr{Fields: fields}
}

// Recipient is shorthand for the reserved _recipient message field.
func Recipient(v ast.Expr) ast.MessageField { return MField(ast.ReservedRecipientLabel, v) }

// Amount is shorthand for the reserved _amount message field.
func Amount(v ast.Expr) ast.MessageField { return MField(ast.ReservedAmountLabel, v) }

// SomeClause constructs a Some(bind) => body match-expression clause.
func SomeClause(bind string, body ast.Expr) ast.ExprClause {
	return ast.ExprClause{Pattern: &ast.ConstructorPattern{Constructor: "Some", Names: []string{bind}}, Body: body}
}

// NoneClause constructs a None => body match-expression clause.
func NoneClause(body ast.Expr) ast.ExprClause {
	return ast.ExprClause{Pattern: &ast.ConstructorPattern{Constructor: "None"}, Body: body}
}

// MatchExpr pattern-matches scrutinee against clauses.
func MatchExpr(scrutinee ast.Expr, clauses ...ast.ExprClause) ast.Expr {
	return &ast.MatchExprExpr{Scrutinee: scrutinee, Clauses: clauses}
}

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

// Load reads a non-map field into a fresh binding.
func Load(v, field string) ast.Stmt { return &ast.LoadStmt{Var: v, Field: field} }

// Store writes value to a non-map field.
func Store(field string, value ast.Expr) ast.Stmt { return &ast.StoreStmt{Field: field, Value: value} }

// MapGet reads a map field at keys into a fresh binding.
func MapGet(v, mapField string, keys ...string) ast.Stmt {
	return &ast.MapGetStmt{Var: v, Map: mapField, Keys: keys}
}

// MapUpdate writes (or, if value is nil, deletes) a map entry.
func MapUpdate(mapField string, keys []string, value ast.Expr) ast.Stmt {
	return &ast.MapUpdateStmt{Map: mapField, Keys: keys, Value: value}
}

// AcceptPayment accepts the incoming message's attached payment.
func AcceptPayment() ast.Stmt { return &ast.AcceptPaymentStmt{} }

// SendMsgs sends the outgoing message batch evaluated from value.
func SendMsgs(value ast.Expr) ast.Stmt { return &ast.SendMsgsStmt{Value: value} }

// CreateEvnt emits the event evaluated from value.
func CreateEvnt(value ast.Expr) ast.Stmt { return &ast.CreateEvntStmt{Value: value} }

// ReadFromBC reads a blockchain-supplied value into a fresh binding.
func ReadFromBC(v, query string) ast.Stmt { return &ast.ReadFromBCStmt{Var: v, Query: query} }

// Bind evaluates value and binds it to v.
func Bind(v string, value ast.Expr) ast.Stmt { return &ast.BindStmt{Var: v, Value: value} }

// StmtSomeClause constructs a Some(bind) => body match-statement clause.
func StmtSomeClause(bind string, body ...ast.Stmt) ast.StmtClause {
	return ast.StmtClause{Pattern: &ast.ConstructorPattern{Constructor: "Some", Names: []string{bind}}, Body: body}
}

// StmtNoneClause constructs a None => body match-statement clause.
func StmtNoneClause(body ...ast.Stmt) ast.StmtClause {
	return ast.StmtClause{Pattern: &ast.ConstructorPattern{Constructor: "None"}, Body: body}
}

// MatchStmt pattern-matches scrutinee against clauses.
func MatchStmt(scrutinee string, clauses ...ast.StmtClause) ast.Stmt {
	return &ast.MatchStmtStmt{Scrutinee: scrutinee, Clauses: clauses}
}

// CallProc invokes proc with args, folding its summary into the caller's.
func CallProc(proc string, args ...ast.Expr) ast.Stmt {
	return &ast.CallProcStmt{Proc: proc, Args: args}
}

// Iterate iterates proc over the elements of collection v.
func Iterate(v, proc string) ast.Stmt { return &ast.IterateStmt{Var: v, Proc: proc} }

// Throw aborts the transaction.
func Throw() ast.Stmt { return &ast.ThrowStmt{} }

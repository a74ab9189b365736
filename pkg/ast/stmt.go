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

// Stmt is the sealed sum type of annotated statement forms walked by the
// statement analyzer (spec.md §4.5).
type Stmt interface {
	// Location returns the optional source span of this statement, for
	// diagnostics only.
	Location() *source.Span
	isStmt()
}

// LoadStmt reads a non-map field f into a fresh binding x.
type LoadStmt struct {
	baseStmt
	Var   string
	Field string
}

func (*LoadStmt) isStmt() {}

// StoreStmt writes expression I to non-map field F.
type StoreStmt struct {
	baseStmt
	Field string
	Value Expr
}

func (*StoreStmt) isStmt() {}

// MapGetStmt reads map field M at the given key identifiers into a fresh
// binding x (an Option of the map's value type).
type MapGetStmt struct {
	baseStmt
	Var  string
	Map  string
	Keys []string
}

func (*MapGetStmt) isStmt() {}

// MapUpdateStmt writes (or, if Value is nil, deletes) the entry of map
// field M at the given key identifiers.
type MapUpdateStmt struct {
	baseStmt
	Map   string
	Keys  []string
	Value Expr // nil models a delete
}

func (*MapUpdateStmt) isStmt() {}

// AcceptPaymentStmt accepts the money attached to the incoming message.
type AcceptPaymentStmt struct {
	baseStmt
}

func (*AcceptPaymentStmt) isStmt() {}

// SendMsgsStmt sends the list of outgoing messages evaluated from I.
type SendMsgsStmt struct {
	baseStmt
	Value Expr
}

func (*SendMsgsStmt) isStmt() {}

// CreateEvntStmt emits the event evaluated from I.
type CreateEvntStmt struct {
	baseStmt
	Value Expr
}

func (*CreateEvntStmt) isStmt() {}

// ReadFromBCStmt reads a blockchain-supplied value (block number, chain
// id, timestamp, …) into a fresh binding x. Per spec.md §4.5 this always
// contributes nothing (it is independent of contract state and parameters).
type ReadFromBCStmt struct {
	baseStmt
	Var   string
	Query string
}

func (*ReadFromBCStmt) isStmt() {}

// BindStmt evaluates Value and binds it to Var.
type BindStmt struct {
	baseStmt
	Var   string
	Value Expr
}

func (*BindStmt) isStmt() {}

// StmtClause is one arm of a MatchStmt: binders from Pattern are visible
// in Body.
type StmtClause struct {
	Pattern Pattern
	Body    []Stmt
}

// MatchStmtStmt pattern-matches the variable Scrutinee against an ordered
// list of clauses, each contributing its own statement list to the
// summary (subject to the PCM spurious-conditional exception of
// spec.md §4.5).
type MatchStmtStmt struct {
	baseStmt
	Scrutinee string
	Clauses   []StmtClause
}

func (*MatchStmtStmt) isStmt() {}

// CallProcStmt invokes procedure Proc with the given arguments, folding
// its (translated) summary into the caller's (spec.md §4.5.1).
type CallProcStmt struct {
	baseStmt
	Proc string
	Args []Expr
}

func (*CallProcStmt) isStmt() {}

// IterateStmt iterates Proc over the elements of collection Var. Per
// spec.md §4.5 this always contributes AlwaysExclusive: the analysis does
// not attempt to reason about iteration bounds or per-element effects.
type IterateStmt struct {
	baseStmt
	Var  string
	Proc string
}

func (*IterateStmt) isStmt() {}

// ThrowStmt aborts the transaction, discarding any state changes made so
// far. Per spec.md §9 "Throws cancel effects", statements following a
// Throw within the same statement list are retained in the summary as a
// deliberate over-approximation; ThrowStmt itself contributes nothing.
type ThrowStmt struct {
	baseStmt
}

func (*ThrowStmt) isStmt() {}

// baseStmt factors out the embedded Node every statement variant carries.
type baseStmt struct {
	Node
}

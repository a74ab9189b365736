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
	"github.com/shardcheck/shardcheck/pkg/ast"
	"github.com/shardcheck/shardcheck/pkg/contrib"
	"github.com/shardcheck/shardcheck/pkg/env"
	"github.com/shardcheck/shardcheck/pkg/etype"
)

// analyzeMatchStmt implements spec.md §4.5's MatchStmt rule.
func (b *Builder) analyzeMatchStmt(e *env.Environment, cparams []string, sum *ComponentSummary, x *ast.MatchStmtStmt) (*env.Environment, *ComponentSummary, error) {
	scrutET := e.ExpressionType(x.Scrutinee)

	if some, none, ok := someNoneClauses(x.Clauses); ok && b.isSpuriousConditionalStmt(scrutET, some, none) {
		clauseEnv := bindBinders(e, cparams, some.Pattern, scrutET)

		_, clauseSum, err := b.Analyze(clauseEnv, cparams, some.Body)
		if err != nil {
			return nil, nil, err
		}

		return e, sum.Union(clauseSum), nil
	}

	cond := etype.Normalize(&etype.OpET{Op: contrib.Conditional, Inner: scrutET})

	if etype.IsUnknown(cond) {
		sum = sum.Add(AlwaysExclusiveOp{Location: x.Location(), Reason: "unsummarisable match condition on " + x.Scrutinee})
	} else {
		sum = sum.Add(ConditionOnOp{ET: cond})
	}

	for _, c := range x.Clauses {
		clauseEnv := bindBinders(e, cparams, c.Pattern, scrutET)

		_, clauseSum, err := b.Analyze(clauseEnv, cparams, c.Body)
		if err != nil {
			return nil, nil, err
		}

		sum = sum.Union(clauseSum)
	}

	return e, sum, nil
}

func bindBinders(e *env.Environment, cparams []string, p ast.Pattern, et etype.ET) *env.Environment {
	for _, name := range p.Binders() {
		e = e.Bind(name, &env.IdentSig{ExpressionType: et, Shadow: shadowStatusFor(name, cparams)})
	}

	return e
}

func someNoneClauses(clauses []ast.StmtClause) (some, none ast.StmtClause, ok bool) {
	if len(clauses) != 2 {
		return ast.StmtClause{}, ast.StmtClause{}, false
	}

	if _, isSome := ast.IsSomeOf(clauses[0].Pattern); isSome && ast.IsNone(clauses[1].Pattern) {
		return clauses[0], clauses[1], true
	}

	if _, isSome := ast.IsSomeOf(clauses[1].Pattern); isSome && ast.IsNone(clauses[0].Pattern) {
		return clauses[1], clauses[0], true
	}

	return ast.StmtClause{}, ast.StmtClause{}, false
}

// isSpuriousConditionalStmt recognizes spec.md §4.3's PCM-op-form
// statement idiom:
//
//	opt_x <- m[k1][k2];
//	match opt_x with
//	  Some x => q = op(x, d); m[k1][k2] := q
//	  None   => m[k1][k2] := d
func (b *Builder) isSpuriousConditionalStmt(scrutET etype.ET, some, none ast.StmtClause) bool {
	binder, ok := ast.IsSomeOf(some.Pattern)
	if !ok || !singlePseudofieldLinearNoOps(scrutET) {
		return false
	}

	if len(some.Body) != 2 {
		return false
	}

	bind, ok := some.Body[0].(*ast.BindStmt)
	if !ok {
		return false
	}

	somePF, someVal, ok := extractWrite(some.Body[1])
	if !ok || someVal != bind.Var {
		return false
	}

	nonePF, noneVal, ok := extractWrite(firstStmt(none.Body))
	if !ok || nonePF != somePF || len(none.Body) != 1 {
		return false
	}

	for _, p := range b.PCMs.List() {
		if p.IsOpExpr(bind.Value, binder, noneVal) {
			return true
		}
	}

	return false
}

func firstStmt(stmts []ast.Stmt) ast.Stmt {
	if len(stmts) == 0 {
		return nil
	}

	return stmts[0]
}

// extractWrite recognizes a statement that writes a bare-identifier
// value to a pseudofield, returning that pseudofield and the
// identifier's name.
func extractWrite(stmt ast.Stmt) (ast.Pseudofield, string, bool) {
	switch s := stmt.(type) {
	case *ast.StoreStmt:
		v, ok := s.Value.(*ast.VarExpr)
		if !ok {
			return ast.Pseudofield{}, "", false
		}

		return ast.NewPseudofield(s.Field), v.Name, true
	case *ast.MapUpdateStmt:
		v, ok := s.Value.(*ast.VarExpr)
		if !ok {
			return ast.Pseudofield{}, "", false
		}

		return ast.NewMapPseudofield(s.Map, s.Keys), v.Name, true
	default:
		return ast.Pseudofield{}, "", false
	}
}

// singlePseudofieldLinearNoOps reports whether et is exactly
// Val(Exactly, { pf -> (Linear, {}) }) for some single pseudofield pf,
// with no operators recorded — spec.md §4.3's precondition for the
// PCM-op-form statement idiom.
func singlePseudofieldLinearNoOps(et etype.ET) bool {
	v, ok := et.(*etype.ValET)
	if !ok || v.Known.Precision != contrib.Exactly || len(v.Known.Contributions) != 1 {
		return false
	}

	for src, s := range v.Known.Contributions {
		return src.Kind == contrib.PseudofieldSource && s.Cardinality == contrib.Linear && len(s.Ops) == 0
	}

	return false
}

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

// Package eval implements the Symbolic Expression Evaluator of spec.md
// §4.4: it walks an annotated expression against a persistent
// environment and a running de Bruijn level counter, producing an
// expression-type. It is purely structural — it never runs contract
// code, only traces how values flow.
package eval

import (
	"github.com/shardcheck/shardcheck/pkg/analysiserr"
	"github.com/shardcheck/shardcheck/pkg/ast"
	"github.com/shardcheck/shardcheck/pkg/contrib"
	"github.com/shardcheck/shardcheck/pkg/env"
	"github.com/shardcheck/shardcheck/pkg/etype"
	"github.com/shardcheck/shardcheck/pkg/pcm"
)

// sendsMoneyMarker is the designated SubsetOf/{} value meaning "this
// message's amount could not be proven zero" (spec.md §4.4, Message).
var sendsMoneyMarker = etype.Val(contrib.KnownContribution{Precision: contrib.SubsetOf, Contributions: contrib.NewContributions()})

// Evaluator threads the PCM registry through expression evaluation,
// needed for MatchExpr's spurious-conditional recognition.
type Evaluator struct {
	PCMs *pcm.Registry
}

// New constructs an Evaluator using the given PCM registry.
func New(registry *pcm.Registry) *Evaluator {
	return &Evaluator{PCMs: registry}
}

// Eval implements spec.md §4.4's per-form rules. fpCount is the de Bruijn
// level to assign to the next lambda parameter encountered.
func (ev *Evaluator) Eval(e *env.Environment, fpCount int, expr ast.Expr) (etype.ET, error) {
	switch x := expr.(type) {
	case *ast.LiteralExpr:
		return etype.Val(contrib.SingleKnown(contrib.NewConstantLiteral(x.Value), contrib.NewSummary(contrib.Linear, nil))), nil

	case *ast.VarExpr:
		return e.ExpressionType(x.Name), nil

	case *ast.BuiltinExpr:
		elems, err := ev.evalAll(e, fpCount, x.Args)
		if err != nil {
			return nil, err
		}

		return &etype.OpET{Op: contrib.BuiltinOp(x.Name), Inner: &etype.ComposeSequenceET{Elems: elems}}, nil

	case *ast.ConstrExpr:
		elems, err := ev.evalAll(e, fpCount, x.Args)
		if err != nil {
			return nil, err
		}

		return &etype.ComposeSequenceET{Elems: elems}, nil

	case *ast.LetExpr:
		return ev.evalLet(e, fpCount, x)

	case *ast.TFunExpr:
		return ev.Eval(e, fpCount, x.Body)

	case *ast.TAppExpr:
		return ev.Eval(e, fpCount, x.Fn)

	case *ast.FunExpr:
		return ev.evalFun(e, fpCount, x)

	case *ast.AppExpr:
		return ev.evalApp(e, fpCount, x)

	case *ast.MessageExpr:
		return ev.evalMessage(e, fpCount, x)

	case *ast.MatchExprExpr:
		return ev.evalMatch(e, fpCount, x)

	case *ast.FixpointExpr:
		return nil, analysiserr.New(x.Location(), "fixpoint expressions are not supported by the analysis")

	default:
		return nil, analysiserr.New(expr.Location(), "unrecognized expression form %T", expr)
	}
}

func (ev *Evaluator) evalAll(e *env.Environment, fpCount int, exprs []ast.Expr) ([]etype.ET, error) {
	out := make([]etype.ET, len(exprs))

	for i, x := range exprs {
		et, err := ev.Eval(e, fpCount, x)
		if err != nil {
			return nil, err
		}

		out[i] = et
	}

	return out, nil
}

func (ev *Evaluator) evalLet(e *env.Environment, fpCount int, x *ast.LetExpr) (etype.ET, error) {
	rhs, err := ev.Eval(e, fpCount, x.Rhs)
	if err != nil {
		return nil, err
	}

	rhs = etype.Normalize(rhs)

	return ev.Eval(e.Bind(x.Name, &env.IdentSig{ExpressionType: rhs}), fpCount, x.Body)
}

// evalFun implements spec.md §4.4's Fun rule: a function-typed parameter
// gets an opaque Fun descriptor rather than a Val, since its contribution
// cannot be known until the call site supplies the actual argument.
func (ev *Evaluator) evalFun(e *env.Environment, fpCount int, x *ast.FunExpr) (etype.ET, error) {
	var paramET etype.ET

	if ast.IsFunctionType(x.ParamType) {
		arity := len(x.ParamType.(*ast.FunctionType).Params)

		levels := make([]int, arity)
		for i := range levels {
			levels[i] = fpCount + i
		}

		paramET = &etype.FunET{Desc: etype.FunDesc{Levels: levels, Def: &etype.FormalParamDef{Index: fpCount}}}
	} else {
		paramET = etype.Val(contrib.SingleKnown(contrib.NewFormalParameter(fpCount), contrib.NewSummary(contrib.Linear, nil)))
	}

	bodyET, err := ev.Eval(e.Bind(x.Param, &env.IdentSig{ExpressionType: paramET}), fpCount+1, x.Body)
	if err != nil {
		return nil, err
	}

	return &etype.FunET{Desc: etype.FunDesc{Levels: []int{fpCount}, Def: &etype.ExprDef{Body: bodyET}}}, nil
}

// evalApp implements spec.md §4.4's App rule.
func (ev *Evaluator) evalApp(e *env.Environment, fpCount int, x *ast.AppExpr) (etype.ET, error) {
	fnET, err := ev.Eval(e, fpCount, x.Fn)
	if err != nil {
		return nil, err
	}

	args, err := ev.evalAll(e, fpCount, x.Args)
	if err != nil {
		return nil, err
	}

	var desc etype.FunDesc

	switch f := fnET.(type) {
	case *etype.FunET:
		desc = f.Desc
	case *etype.UnknownET:
		unk := etype.FabricateUnknownFunction(fpCount, len(x.Args))

		fn, ok := unk.(*etype.FunET)
		if !ok {
			return etype.Unknown, nil
		}

		desc = fn.Desc
	default:
		return nil, analysiserr.New(x.Location(), "application of a non-function expression-type %T", fnET)
	}

	return &etype.AppET{Desc: desc, Args: args}, nil
}

// evalMessage implements spec.md §4.4's Message rule.
func (ev *Evaluator) evalMessage(e *env.Environment, fpCount int, x *ast.MessageExpr) (etype.ET, error) {
	payload := make([]etype.ET, len(x.Fields))

	var amountET, recipientET etype.ET

	for i, f := range x.Fields {
		fet, err := ev.Eval(e, fpCount, f.Value)
		if err != nil {
			return nil, err
		}

		payload[i] = fet

		switch f.Label {
		case ast.ReservedAmountLabel:
			if isProvenZero(e, f.Value) {
				amountET = etype.Val(contrib.Nothing())
			} else {
				amountET = sendsMoneyMarker
			}
		case ast.ReservedRecipientLabel:
			recipientET = fet
		}
	}

	full := &etype.ComposeParallelET{Cond: etype.Val(contrib.Nothing()), Clauses: payload}

	special := etype.Val(contrib.Nothing())

	switch {
	case amountET != nil && recipientET != nil:
		special = &etype.ComposeSequenceET{Elems: []etype.ET{amountET, recipientET}}
	case amountET != nil:
		special = amountET
	case recipientET != nil:
		special = recipientET
	}

	return &etype.CompositeValET{Full: full, Special: special}, nil
}

// isProvenZero reports whether expr is a literal zero or an identifier
// known to be bound to some PCM's unit element — the "_amount" check of
// spec.md §4.4.
func isProvenZero(e *env.Environment, expr ast.Expr) bool {
	switch x := expr.(type) {
	case *ast.LiteralExpr:
		return x.Value.IsZero()
	case *ast.VarExpr:
		return e.IsBoundToUnit(x.Name)
	default:
		return false
	}
}

// evalMatch implements spec.md §4.4's MatchExpr rule.
func (ev *Evaluator) evalMatch(e *env.Environment, fpCount int, x *ast.MatchExprExpr) (etype.ET, error) {
	scrutET, err := ev.Eval(e, fpCount, x.Scrutinee)
	if err != nil {
		return nil, err
	}

	clauses := make([]etype.ET, len(x.Clauses))

	for i, c := range x.Clauses {
		clauseEnv := e
		for _, binder := range c.Pattern.Binders() {
			clauseEnv = clauseEnv.Bind(binder, &env.IdentSig{ExpressionType: scrutET})
		}

		cet, err := ev.Eval(clauseEnv, fpCount, c.Body)
		if err != nil {
			return nil, err
		}

		clauses[i] = cet
	}

	var cond etype.ET
	if ev.isSpuriousConditionalExpr(e, x.Scrutinee, x.Clauses) {
		cond = etype.Val(contrib.Nothing())
	} else {
		cond = &etype.OpET{Op: contrib.Conditional, Inner: scrutET}
	}

	return &etype.ComposeParallelET{Cond: cond, Clauses: clauses}, nil
}

// isSpuriousConditionalExpr recognizes the two PCM-spurious idioms of
// spec.md §4.3 for an expression-position match: `Some x => x | None =>
// unit` and `Some x => op(x, y) | None => y`.
func (ev *Evaluator) isSpuriousConditionalExpr(e *env.Environment, scrutinee ast.Expr, clauses []ast.ExprClause) bool {
	if len(clauses) != 2 {
		return false
	}

	some, none := clauses[0], clauses[1]

	binder, ok := ast.IsSomeOf(some.Pattern)
	if !ok {
		some, none = clauses[1], clauses[0]

		binder, ok = ast.IsSomeOf(some.Pattern)
		if !ok {
			return false
		}
	}

	if !ast.IsNone(none.Pattern) {
		return false
	}

	if v, ok := some.Body.(*ast.VarExpr); ok && v.Name == binder {
		for _, p := range ev.PCMs.List() {
			if p.IsUnit(e, none.Body) {
				return true
			}
		}

		return false
	}

	freeVar, ok := none.Body.(*ast.VarExpr)
	if !ok {
		return false
	}

	for _, p := range ev.PCMs.List() {
		if p.IsOpExpr(some.Body, binder, freeVar.Name) {
			return true
		}
	}

	return false
}

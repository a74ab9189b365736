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
	"github.com/shardcheck/shardcheck/pkg/analysiserr"
	"github.com/shardcheck/shardcheck/pkg/ast"
	"github.com/shardcheck/shardcheck/pkg/contrib"
	"github.com/shardcheck/shardcheck/pkg/env"
	"github.com/shardcheck/shardcheck/pkg/eval"
	"github.com/shardcheck/shardcheck/pkg/etype"
	"github.com/shardcheck/shardcheck/pkg/pcm"
	"github.com/shardcheck/shardcheck/pkg/util/source"
)

// Builder walks a component's statement list, producing its
// ComponentSummary. One Builder is reused across every component of a
// module; the per-component parameter list is supplied to Analyze.
type Builder struct {
	Eval *eval.Evaluator
	PCMs *pcm.Registry

	Module *ast.Module

	// ImplicitParams are the host-supplied implicit component parameter
	// names (spec.md §6), prepended to every component's own parameter
	// list and, by convention, passed through unchanged from caller to
	// callee at every CallProc site (spec.md §4.5.1 step 1): the host
	// supplies one value per implicit parameter uniformly for the whole
	// transaction, so a call site never textually re-supplies it.
	ImplicitParams []string
}

// NewBuilder constructs a Builder over module, evaluating expressions
// with ev and recognizing monoids registered in pcms.
func NewBuilder(ev *eval.Evaluator, pcms *pcm.Registry, module *ast.Module, implicitParams []string) *Builder {
	return &Builder{Eval: ev, PCMs: pcms, Module: module, ImplicitParams: implicitParams}
}

// Analyze implements spec.md §4.5: it walks body, threading e and an
// initially-empty ComponentSummary, and returns the final environment
// (bindings introduced by the body, discarded once the component's
// signature is frozen) and the accumulated summary.
func (b *Builder) Analyze(e *env.Environment, componentParams []string, body []ast.Stmt) (*env.Environment, *ComponentSummary, error) {
	sum := Empty()

	for _, stmt := range body {
		var err error

		e, sum, err = b.analyzeStmt(e, componentParams, sum, stmt)
		if err != nil {
			return nil, nil, err
		}
	}

	return e, sum, nil
}

func (b *Builder) analyzeStmt(e *env.Environment, cparams []string, sum *ComponentSummary, stmt ast.Stmt) (*env.Environment, *ComponentSummary, error) {
	switch x := stmt.(type) {
	case *ast.LoadStmt:
		return b.analyzeLoad(e, cparams, sum, x.Var, ast.NewPseudofield(x.Field), x.Location())

	case *ast.StoreStmt:
		return b.analyzeStore(e, sum, ast.NewPseudofield(x.Field), x.Value)

	case *ast.MapGetStmt:
		pf, ok := b.summarisablePseudofield(e, cparams, x.Map, x.Keys)
		if !ok {
			sum = sum.Add(AlwaysExclusiveOp{Location: x.Location(), Reason: "non-summarisable map read of " + x.Map})
			return e.Bind(x.Var, &env.IdentSig{ExpressionType: etype.Unknown, Shadow: shadowStatusFor(x.Var, cparams)}), sum, nil
		}

		return b.analyzeLoad(e, cparams, sum, x.Var, pf, x.Location())

	case *ast.MapUpdateStmt:
		pf, ok := b.summarisablePseudofield(e, cparams, x.Map, x.Keys)
		if !ok {
			return e, sum.Add(AlwaysExclusiveOp{Location: x.Location(), Reason: "non-summarisable map write of " + x.Map}), nil
		}

		if x.Value == nil {
			return e, sum.Add(WriteOp{Field: pf, ET: etype.Val(contrib.Nothing())}), nil
		}

		return b.analyzeStore(e, sum, pf, x.Value)

	case *ast.AcceptPaymentStmt:
		return e, sum.Add(AcceptMoneyOp{}), nil

	case *ast.SendMsgsStmt:
		et, err := b.evalNorm(e, x.Value)
		if err != nil {
			return nil, nil, err
		}

		return e, sum.Add(SendMessagesOp{ET: et}), nil

	case *ast.CreateEvntStmt:
		et, err := b.evalNorm(e, x.Value)
		if err != nil {
			return nil, nil, err
		}

		return e, sum.Add(EmitEventOp{ET: et}), nil

	case *ast.ReadFromBCStmt:
		return e.Bind(x.Var, &env.IdentSig{ExpressionType: etype.Val(contrib.Nothing()), Shadow: shadowStatusFor(x.Var, cparams)}), sum, nil

	case *ast.BindStmt:
		et, err := b.evalNorm(e, x.Value)
		if err != nil {
			return nil, nil, err
		}

		return e.Bind(x.Var, &env.IdentSig{ExpressionType: et, Shadow: shadowStatusFor(x.Var, cparams)}), sum, nil

	case *ast.MatchStmtStmt:
		return b.analyzeMatchStmt(e, cparams, sum, x)

	case *ast.CallProcStmt:
		return b.analyzeCallProc(e, cparams, sum, x)

	case *ast.IterateStmt:
		return e, sum.Add(AlwaysExclusiveOp{Location: x.Location(), Reason: "iteration over " + x.Var}), nil

	case *ast.ThrowStmt:
		return e, sum, nil

	default:
		return nil, nil, analysiserr.New(stmt.Location(), "unrecognized statement form %T", stmt)
	}
}

func (b *Builder) evalNorm(e *env.Environment, expr ast.Expr) (etype.ET, error) {
	et, err := b.Eval.Eval(e, 0, expr)
	if err != nil {
		return nil, err
	}

	return etype.Normalize(et), nil
}

// analyzeLoad implements the read-after-write rule shared by Load and
// MapGet (spec.md §4.5).
func (b *Builder) analyzeLoad(e *env.Environment, cparams []string, sum *ComponentSummary, varName string, pf ast.Pseudofield, loc *source.Span) (*env.Environment, *ComponentSummary, error) {
	if _, found := sum.WriteOf(pf); found {
		sum = sum.Add(AlwaysExclusiveOp{Location: loc, Reason: "read after write to " + pf.String()})
		return e.Bind(varName, &env.IdentSig{ExpressionType: etype.Unknown, Shadow: shadowStatusFor(varName, cparams)}), sum, nil
	}

	fet := etype.Val(contrib.SingleKnown(contrib.NewPseudofieldSource(pf), contrib.NewSummary(contrib.Linear, nil)))
	sum = sum.Add(ReadOp{Field: pf})

	return e.Bind(varName, &env.IdentSig{ExpressionType: fet, Shadow: shadowStatusFor(varName, cparams)}), sum, nil
}

func (b *Builder) analyzeStore(e *env.Environment, sum *ComponentSummary, pf ast.Pseudofield, value ast.Expr) (*env.Environment, *ComponentSummary, error) {
	et, err := b.evalNorm(e, value)
	if err != nil {
		return nil, nil, err
	}

	return e, sum.Add(WriteOp{Field: pf, ET: et}), nil
}

// summarisablePseudofield implements spec.md §4.5's MapGet/MapUpdate
// summarisability check: the access must be bottom-level, and every key
// identifier must resolve to a component parameter with no shadowing.
func (b *Builder) summarisablePseudofield(e *env.Environment, cparams []string, field string, keys []string) (ast.Pseudofield, bool) {
	f, ok := b.Module.FieldByName(field)
	if !ok || f.Depth() != len(keys) {
		return ast.Pseudofield{}, false
	}

	for _, k := range keys {
		if !isUnshadowedComponentParam(e, cparams, k) {
			return ast.Pseudofield{}, false
		}
	}

	return ast.NewMapPseudofield(field, keys), true
}

func isUnshadowedComponentParam(e *env.Environment, cparams []string, name string) bool {
	isParam := false

	for _, p := range cparams {
		if p == name {
			isParam = true
			break
		}
	}

	if !isParam {
		return false
	}

	id, ok := e.LookupIdent(name)

	return ok && id.Shadow == env.ComponentParameter
}

func shadowStatusFor(name string, cparams []string) env.ShadowStatus {
	return env.ShadowStatusFor(name, cparams)
}

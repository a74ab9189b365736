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
	"github.com/shardcheck/shardcheck/pkg/env"
	"github.com/shardcheck/shardcheck/pkg/etype"
)

// analyzeCallProc implements spec.md §4.5's CallProc rule by way of the
// §4.5.1 translation procedure: the callee's summary is rewritten into
// the caller's parameter space and unioned into sum.
func (b *Builder) analyzeCallProc(e *env.Environment, cparams []string, sum *ComponentSummary, x *ast.CallProcStmt) (*env.Environment, *ComponentSummary, error) {
	sig, ok := e.LookupComponent(x.Proc)
	if !ok {
		return nil, nil, analysiserr.New(x.Location(), "call to unbound procedure %q", x.Proc)
	}

	calleeSummary, ok := sig.Summary.(*ComponentSummary)
	if !ok {
		return nil, nil, analysiserr.New(x.Location(), "procedure %q has no computed summary", x.Proc)
	}

	argExprs := make([]ast.Expr, 0, len(b.ImplicitParams)+len(x.Args))
	for _, p := range b.ImplicitParams {
		argExprs = append(argExprs, &ast.VarExpr{Name: p})
	}

	argExprs = append(argExprs, x.Args...)

	argNames := make([]string, len(argExprs))
	argETs := make([]etype.ET, len(argExprs))

	for i, ae := range argExprs {
		if v, ok := ae.(*ast.VarExpr); ok {
			argNames[i] = v.Name
		}

		et, err := b.evalNorm(e, ae)
		if err != nil {
			return nil, nil, err
		}

		argETs[i] = et
	}

	paramIndex := make(map[string]int, len(sig.Params))
	for i, p := range sig.Params {
		paramIndex[p] = i
	}

	if !callGuardHolds(calleeSummary, paramIndex, argNames, cparams) {
		reason := "call to " + x.Proc + " could not be summarised: map-key argument is not a caller parameter"
		return e, sum.Add(AlwaysExclusiveOp{Location: x.Location(), Reason: reason}), nil
	}

	translated := translateSummary(calleeSummary, paramIndex, argNames, argETs)

	return e, sum.Union(translated), nil
}

// callGuardHolds implements spec.md §4.5.1 step 3: every map-key
// identifier the callee uses must be one of its own parameters (already
// guaranteed when the callee's own summary was built), and the caller-
// side argument at the corresponding position must itself name a
// caller component parameter.
func callGuardHolds(calleeSummary *ComponentSummary, paramIndex map[string]int, argNames []string, cparams []string) bool {
	for _, k := range mapKeyIdentifiers(calleeSummary) {
		idx, present := paramIndex[k]
		if !present || idx >= len(argNames) {
			return false
		}

		if !isCallerParam(argNames[idx], cparams) {
			return false
		}
	}

	return true
}

func isCallerParam(name string, cparams []string) bool {
	if name == "" {
		return false
	}

	for _, p := range cparams {
		if p == name {
			return true
		}
	}

	return false
}

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
package summary_test

import (
	"testing"

	"github.com/shardcheck/shardcheck/pkg/analysis"
	"github.com/shardcheck/shardcheck/pkg/ast"
	"github.com/shardcheck/shardcheck/pkg/ast/fixture"
	"github.com/shardcheck/shardcheck/pkg/pcm"
	"github.com/shardcheck/shardcheck/pkg/summary"
	"github.com/shardcheck/shardcheck/pkg/util/assert"
)

// callThroughHelper builds a module where a Transition's entire effect
// on a map field is mediated by calling a Procedure: the procedure reads
// and writes balances[who], keyed by its own parameter "who", and the
// transition calls it with its own parameter "target" as the argument.
// Translation (spec.md §4.5.1) must rewrite "who" to "target" throughout
// the callee's summary before it is folded into the caller's.
func callThroughHelper() *ast.Module {
	helperBody := []ast.Stmt{
		fixture.MapGet("v", "balances", "who"),
		fixture.Bind("one", fixture.IntLit(1)),
		fixture.Bind("v2", fixture.Add(fixture.Var("v"), fixture.Var("one"))),
		fixture.MapUpdate("balances", []string{"who"}, fixture.Var("v2")),
	}

	mainBody := []ast.Stmt{
		fixture.CallProc("Helper", fixture.Var("target")),
	}

	return fixture.NewModule("call_through_helper").
		Field("balances", fixture.Map(fixture.ByStr20, fixture.Uint128)).
		Component(fixture.Procedure("Helper", []ast.Param{fixture.P("who", fixture.ByStr20)}, helperBody...)).
		Component(fixture.Transition("Main", []ast.Param{fixture.P("target", fixture.ByStr20)}, mainBody...)).
		Build()
}

// TestCallProcTranslatesCalleeMapKeys covers spec.md §4.5.1: a call
// site's translated summary is rewritten entirely into the caller's own
// parameter names, never leaking the callee's local parameter names.
func TestCallProcTranslatesCalleeMapKeys(t *testing.T) {
	module := callThroughHelper()

	reports, err := analysis.AnalyzeModule(module, ast.ImplicitParams{}, pcm.NewDefaultRegistry())
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	assert.Equal(t, 1, len(reports))

	report := reports[0]
	assert.Equal(t, "Main", report.Name)

	targetField := ast.NewMapPseudofield("balances", []string{"target"})
	whoField := ast.NewMapPseudofield("balances", []string{"who"})

	var sawRead, sawWrite bool

	for _, op := range report.Summary.Ops() {
		switch o := op.(type) {
		case summary.ReadOp:
			assert.Equal(t, targetField, o.Field, "read should be translated to the caller's argument name")
			sawRead = true
		case summary.WriteOp:
			assert.Equal(t, targetField, o.Field, "write should be translated to the caller's argument name")
			sawWrite = true
		}

		if op.Key() == (summary.ReadOp{Field: whoField}).Key() {
			t.Fatalf("callee parameter name %q leaked into the caller's summary", "who")
		}
	}

	assert.True(t, sawRead, "expected a translated read in Main's summary")
	assert.True(t, sawWrite, "expected a translated write in Main's summary")
}

// TestCallProcNonParamMapKeyIsNotSummarisable covers the other half of
// spec.md §4.5.1 step 3: when a call passes an argument that is not
// itself a caller parameter at the position of a callee map key, the
// call cannot be translated and the caller falls back to
// AlwaysExclusive.
func TestCallProcNonParamMapKeyIsNotSummarisable(t *testing.T) {
	helperBody := []ast.Stmt{
		fixture.MapGet("v", "balances", "who"),
	}

	mainBody := []ast.Stmt{
		fixture.Bind("local", fixture.IntLit(0)),
		fixture.CallProc("Helper", fixture.Var("local")),
	}

	module := fixture.NewModule("call_non_param_key").
		Field("balances", fixture.Map(fixture.ByStr20, fixture.Uint128)).
		Component(fixture.Procedure("Helper", []ast.Param{fixture.P("who", fixture.ByStr20)}, helperBody...)).
		Component(fixture.Transition("Main", []ast.Param{fixture.P("target", fixture.ByStr20)}, mainBody...)).
		Build()

	reports, err := analysis.AnalyzeModule(module, ast.ImplicitParams{}, pcm.NewDefaultRegistry())
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	assert.Equal(t, 1, len(reports))
	assert.True(t, reports[0].Constraints.IsUnsat(), "a non-summarisable call should make the transition Unsat")
}

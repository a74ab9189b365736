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

// Package analysis implements the analyze_module orchestration of
// spec.md §2/§6: it wires the Contribution Algebra, Expression-Type
// Normalizer, PCM Registry, Symbolic Expression Evaluator, Statement
// Analyzer and Constraint Synthesizer together over a single contract
// module, and aggregates failures across its independent processing
// units.
package analysis

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/shardcheck/shardcheck/pkg/analysiserr"
	"github.com/shardcheck/shardcheck/pkg/ast"
	"github.com/shardcheck/shardcheck/pkg/contrib"
	"github.com/shardcheck/shardcheck/pkg/env"
	"github.com/shardcheck/shardcheck/pkg/etype"
	"github.com/shardcheck/shardcheck/pkg/eval"
	"github.com/shardcheck/shardcheck/pkg/pcm"
	"github.com/shardcheck/shardcheck/pkg/shard"
	"github.com/shardcheck/shardcheck/pkg/summary"
)

// TransitionReport is the output of spec.md §6 "Output": for each
// transition component, its name, its computed component summary (kept
// for diagnostics), and its synthesized sharding-constraint set.
type TransitionReport struct {
	Name        string
	Summary     *summary.ComponentSummary
	Constraints *shard.Set
}

// AnalyzeModule implements spec.md §2's analyze_module: fold built-ins,
// then external libraries in dependency order, then the contract
// library, then bind contract parameters, then compute each component's
// summary in source order (binding its signature into the environment
// before moving to the next component), finally synthesizing
// constraints for transitions only.
func AnalyzeModule(module *ast.Module, implicit ast.ImplicitParams, pcms *pcm.Registry) ([]TransitionReport, error) {
	ev := eval.New(pcms)

	e, err := foldBuiltins(env.New())
	if err != nil {
		return nil, err
	}

	e, err = foldExternalLibraries(ev, e, module.ExternalLibraries)
	if err != nil {
		return nil, err
	}

	e, err = foldLibraryEntries(ev, e, module.Library)
	if err != nil {
		return nil, err
	}

	e = bindContractParameters(e, implicit.ContractParams, module.ContractParams)

	implicitNames := paramNames(implicit.ComponentParams)
	builder := summary.NewBuilder(ev, pcms, module, implicitNames)
	synthesizer := shard.New(pcms)

	var (
		reports []TransitionReport
		errs    error
	)

	for _, c := range module.Components {
		log.Debug(fmt.Sprintf("analyzing component %q (%s)", c.Name, c.Kind))

		allParams := append(append([]string{}, implicitNames...), paramNames(c.Params)...)
		cenv := bindComponentParameters(e, allParams)

		_, sum, err := builder.Analyze(cenv, allParams, c.Body)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("component %q: %w", c.Name, err))
			continue
		}

		if sum.HasAlwaysExclusive() {
			log.Warn(fmt.Sprintf("component %q could not be fully summarised", c.Name))
		}

		e = e.Bind(c.Name, &env.ComponentSig{Params: allParams, Summary: sum})

		if c.Kind != ast.Transition {
			continue
		}

		constraints := synthesizer.Synthesize(sum)
		if constraints.IsUnsat() {
			log.Warn(fmt.Sprintf("transition %q has no admissible shard placement", c.Name))
		}

		reports = append(reports, TransitionReport{Name: c.Name, Summary: sum, Constraints: constraints})
	}

	if errs != nil {
		return nil, errs
	}

	return reports, nil
}

// foldBuiltins implements the first fold step of analyze_module. This
// repository's input AST (spec.md §6) carries no separate built-in value
// identifiers to bind — Option constructors and blockchain queries are
// recognized structurally by the evaluator and statement analyzer, not
// looked up by name — so this step is a documented no-op rather than an
// omission.
func foldBuiltins(e *env.Environment) (*env.Environment, error) {
	return e, nil
}

// foldExternalLibraries folds module's external-library dependency tree
// (spec.md §6), visiting each node's dependencies before the node itself
// and visiting a shared dependency at most once.
func foldExternalLibraries(ev *eval.Evaluator, e *env.Environment, libs []*ast.ExternalLibrary) (*env.Environment, error) {
	visited := map[*ast.ExternalLibrary]bool{}

	var fold func(*ast.ExternalLibrary) error

	fold = func(lib *ast.ExternalLibrary) error {
		if visited[lib] {
			return nil
		}

		visited[lib] = true

		for _, dep := range lib.Dependencies {
			if err := fold(dep); err != nil {
				return err
			}
		}

		log.Debug(fmt.Sprintf("folding external library %q", lib.Name))

		next, err := foldLibraryEntries(ev, e, lib.Entries)
		if err != nil {
			return err
		}

		e = next

		return nil
	}

	for _, lib := range libs {
		if err := fold(lib); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// foldLibraryEntries binds each value definition's evaluated, normalized
// expression-type and records each type definition's mere existence
// (spec.md §6: "opaque type definitions the analysis does not need to
// look inside").
func foldLibraryEntries(ev *eval.Evaluator, e *env.Environment, entries []ast.LibraryEntry) (*env.Environment, error) {
	for _, entry := range entries {
		switch x := entry.(type) {
		case *ast.ValueDef:
			et, err := ev.Eval(e, 0, x.Expr)
			if err != nil {
				return nil, err
			}

			e = e.Bind(x.Name, &env.IdentSig{ExpressionType: etype.Normalize(et), Shadow: env.DoesNotShadow})

		case *ast.TypeDef:
			// Recorded for completeness; nothing about a type definition's
			// structure feeds the analysis.

		default:
			return nil, analysiserr.New(nil, "unrecognized library entry form %T", entry)
		}
	}

	return e, nil
}

// bindContractParameters binds every contract-construction parameter
// (implicit, then explicit) to a ContractParameter source, immutable for
// the module's lifetime and never shadowed by a component parameter.
func bindContractParameters(e *env.Environment, implicit, explicit []ast.Param) *env.Environment {
	for _, p := range append(append([]ast.Param{}, implicit...), explicit...) {
		et := etype.Val(contrib.SingleKnown(contrib.NewContractParameter(p.Name), contrib.NewSummary(contrib.Linear, nil)))
		e = e.Bind(p.Name, &env.IdentSig{ExpressionType: et, Shadow: env.DoesNotShadow})
	}

	return e
}

// bindComponentParameters binds a component's full parameter list
// (implicit parameters prepended, per spec.md §6) to ProcParameter
// sources at their positional index, marked ComponentParameter so the
// statement analyzer's shadowing and map-key-summarisability checks can
// recognize them.
func bindComponentParameters(e *env.Environment, names []string) *env.Environment {
	for i, name := range names {
		et := etype.Val(contrib.SingleKnown(contrib.NewProcParameter(i), contrib.NewSummary(contrib.Linear, nil)))
		e = e.Bind(name, &env.IdentSig{ExpressionType: et, Shadow: env.ComponentParameter})
	}

	return e
}

func paramNames(params []ast.Param) []string {
	out := make([]string, len(params))
	for i, p := range params {
		out[i] = p.Name
	}

	return out
}

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
package pcm

import (
	"github.com/shardcheck/shardcheck/pkg/ast"
	"github.com/shardcheck/shardcheck/pkg/contrib"
)

const integerAddOpName = "add"

// integerAdd implements spec.md §4.3's built-in PCM: Integer-Addition over
// the fixed-width signed/unsigned integer types, with unit the zero
// literal and op the builtin add applied exactly once to each operand.
type integerAdd struct{}

// NewIntegerAdd constructs the built-in integer-addition PCM.
func NewIntegerAdd() PCM { return integerAdd{} }

// Identifier implements PCM.
func (integerAdd) Identifier() string { return "integer_add" }

// IsApplicableType implements PCM.
func (integerAdd) IsApplicableType(t ast.Type) bool { return ast.IsIntegerType(t) }

// IsUnitLiteral implements PCM.
func (integerAdd) IsUnitLiteral(lit ast.Literal) bool { return lit.IsZero() }

// IsUnit implements PCM: a literal zero, or an identifier the environment
// knows is permanently bound to a PCM's unit.
func (p integerAdd) IsUnit(env Env, expr ast.Expr) bool {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		return p.IsUnitLiteral(e.Value)
	case *ast.VarExpr:
		return env != nil && env.IsBoundToUnit(e.Name)
	default:
		return false
	}
}

// IsOp implements PCM.
func (integerAdd) IsOp(op contrib.Operator) bool {
	return op.Kind == contrib.BuiltinOpKind && op.Name == integerAddOpName
}

// IsOpExpr implements PCM: reports whether expr is builtin add applied to
// exactly two arguments which reference a and b, in either order, each
// exactly once.
func (integerAdd) IsOpExpr(expr ast.Expr, a, b string) bool {
	be, ok := expr.(*ast.BuiltinExpr)
	if !ok || be.Name != integerAddOpName || len(be.Args) != 2 {
		return false
	}

	names := make([]string, 0, 2)

	for _, arg := range be.Args {
		v, ok := arg.(*ast.VarExpr)
		if !ok {
			return false
		}

		names = append(names, v.Name)
	}

	return (names[0] == a && names[1] == b) || (names[0] == b && names[1] == a)
}

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
package fixture

import (
	"sort"

	"github.com/shardcheck/shardcheck/pkg/ast"
)

// Increment builds the "plain increment" scenario: a transition that
// reads counter, adds one, and writes it back. The write is recognized
// as commutative under integer-addition, so no MustOwn is expected.
func Increment() *ast.Module {
	body := []ast.Stmt{
		Load("v", "counter"),
		Bind("one", IntLit(1)),
		Bind("v2", Add(Var("v"), Var("one"))),
		Store("counter", Var("v2")),
	}

	return NewModule("increment").
		Field("counter", Int32).
		Component(Transition("Incr", nil, body...)).
		Build()
}

// ConditionalOwnership builds the "conditional ownership" scenario: a
// transition that reads balance[sender], matches on the option, and in
// the Some branch compares the value with a threshold and writes a new
// balance. The match on the read feeds a ConditionOn, forcing an owning
// Write.
func ConditionalOwnership() *ast.Module {
	body := []ast.Stmt{
		MapGet("opt", "balance", "sender"),
		MatchStmt("opt",
			StmtSomeClause("x",
				Bind("underThreshold", Lt(Var("x"), Var("threshold"))),
				MapUpdate("balance", []string{"sender"}, Var("newVal")),
			),
			StmtNoneClause(),
		),
	}

	return NewModule("conditional_ownership").
		Field("balance", Map(ByStr20, Uint128)).
		Component(Transition("Adjust", []ast.Param{P("sender", ByStr20), P("threshold", Uint128), P("newVal", Uint128)}, body...)).
		Build()
}

// Deposit builds the "accept money" scenario: a transition whose only
// effect is accepting the incoming payment.
func Deposit() *ast.Module {
	return NewModule("deposit").
		Component(Transition("Deposit", nil, AcceptPayment())).
		Build()
}

// Transfer builds the "send to parameter address" scenario: a transition
// parameterized by a recipient address, sending a zero-amount message to
// it.
func Transfer() *ast.Module {
	msg := Message(Recipient(Var("to")), Amount(IntLit(0)))

	return NewModule("transfer").
		Component(Transition("Pay", []ast.Param{P("to", ByStr20)}, SendMsgs(msg))).
		Build()
}

// Leak builds the "send to non-parameter address" scenario: the
// recipient is a contract-construction constant rather than a
// transition parameter, which the synthesizer cannot place under any
// shard.
func Leak() *ast.Module {
	msg := Message(Recipient(Var("treasury")), Amount(IntLit(0)))

	return NewModule("leak").
		ContractParam("treasury", ByStr20).
		Component(Transition("Sweep", nil, SendMsgs(msg))).
		Build()
}

// SpuriousOptionMatch builds the "spurious option match" scenario: a
// map entry is read, incremented via the PCM-op statement idiom, and
// written back, with the read recognized as spurious once the write is
// recognized as commutative.
func SpuriousOptionMatch() *ast.Module {
	body := []ast.Stmt{
		MapGet("opt", "counts", "k"),
		MatchStmt("opt",
			StmtSomeClause("x",
				Bind("y", Add(Var("x"), Var("d"))),
				MapUpdate("counts", []string{"k"}, Var("y")),
			),
			StmtNoneClause(
				MapUpdate("counts", []string{"k"}, Var("d")),
			),
		),
	}

	return NewModule("spurious_option_match").
		Field("counts", Map(ByStr20, Uint128)).
		Component(Transition("Bump", []ast.Param{P("k", ByStr20), P("d", Uint128)}, body...)).
		Build()
}

// registry maps every built-in demo fixture's name to its constructor,
// used by cmd/shardcheck's --fixture flag.
var registry = map[string]func() *ast.Module{
	"increment":               Increment,
	"conditional_ownership":   ConditionalOwnership,
	"deposit":                 Deposit,
	"transfer":                Transfer,
	"leak":                    Leak,
	"spurious_option_match":   SpuriousOptionMatch,
}

// ByName returns the built-in demo fixture registered under name.
func ByName(name string) (*ast.Module, bool) {
	ctor, ok := registry[name]
	if !ok {
		return nil, false
	}

	return ctor(), true
}

// Names returns every registered demo fixture name, sorted.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}

	sort.Strings(out)

	return out
}

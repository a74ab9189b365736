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
package shard_test

import (
	"testing"

	"github.com/shardcheck/shardcheck/pkg/analysis"
	"github.com/shardcheck/shardcheck/pkg/ast"
	"github.com/shardcheck/shardcheck/pkg/ast/fixture"
	"github.com/shardcheck/shardcheck/pkg/pcm"
	"github.com/shardcheck/shardcheck/pkg/shard"
	"github.com/shardcheck/shardcheck/pkg/util/assert"
)

func analyzeFixture(t *testing.T, name string) analysis.TransitionReport {
	t.Helper()

	module, ok := fixture.ByName(name)
	assert.True(t, ok, "unknown fixture %q", name)

	reports, err := analysis.AnalyzeModule(module, ast.ImplicitParams{}, pcm.NewDefaultRegistry())
	if err != nil {
		t.Fatalf("analyze %q: %v", name, err)
	}

	assert.Equal(t, 1, len(reports))

	return reports[0]
}

// TestDepositAcceptMoneyRequiresSenderShard covers S3: accepting a
// payment with no corresponding field effect still pins the transition
// to the sender's own shard (spec.md §4.6).
func TestDepositAcceptMoneyRequiresSenderShard(t *testing.T) {
	report := analyzeFixture(t, "deposit")

	assert.False(t, report.Constraints.IsUnsat())
	assert.Equal(t, 1, report.Constraints.Len())
	assert.Equal(t, "SenderShard", report.Constraints.Sorted()[0].Key())
}

// TestTransferToParameterRequiresNonContractAddress covers S4: sending
// to an address named by a procedure parameter is placeable, provided
// that parameter is constrained to a non-contract address at every call
// site.
func TestTransferToParameterRequiresNonContractAddress(t *testing.T) {
	report := analyzeFixture(t, "transfer")

	assert.False(t, report.Constraints.IsUnsat())
	assert.Equal(t, 1, report.Constraints.Len())
	assert.Equal(t, "AddrMustBeNonContract(0)", report.Constraints.Sorted()[0].Key())
}

// TestLeakToContractConstantIsUnsat covers S5: a message sent to an
// address that is not traceable to any procedure parameter (here, a
// contract-construction constant) has no admissible shard placement.
func TestLeakToContractConstantIsUnsat(t *testing.T) {
	report := analyzeFixture(t, "leak")

	assert.True(t, report.Constraints.IsUnsat())
}

// TestUnsatSetIsSingleton checks the canonical Unsat set carries exactly
// the Unsat constraint and nothing else.
func TestUnsatSetIsSingleton(t *testing.T) {
	s := shard.UnsatSet()

	assert.True(t, s.IsUnsat())
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, "Unsat", s.Sorted()[0].Key())
}

// TestSetAddDeduplicatesByKey checks that adding a constraint already
// present in a Set does not grow it.
func TestSetAddDeduplicatesByKey(t *testing.T) {
	s := shard.NewSet().Add(shard.SenderShard{}).Add(shard.SenderShard{})

	assert.Equal(t, 1, s.Len())
}

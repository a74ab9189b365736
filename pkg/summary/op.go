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

// Package summary implements the Statement Analyzer / Summary Builder of
// spec.md §4.5: it walks a component's statement list, threading a
// persistent environment and a growing Component Summary, and implements
// the inter-procedural call-translation step of §4.5.1.
package summary

import (
	"github.com/shardcheck/shardcheck/pkg/ast"
	"github.com/shardcheck/shardcheck/pkg/etype"
	"github.com/shardcheck/shardcheck/pkg/util/source"
)

// Op is the sealed sum type of component effect operations (spec.md §3).
// Key renders a canonical string two structurally-equal operations
// share, used both for set deduplication and deterministic iteration.
type Op interface {
	Key() string
	isOp()
}

// ReadOp records a read of a (possibly map-bottom-level) pseudofield.
type ReadOp struct {
	Field ast.Pseudofield
}

func (ReadOp) isOp() {}

// Key implements Op.
func (o ReadOp) Key() string { return "Read(" + o.Field.String() + ")" }

// WriteOp records a write of ET to a pseudofield.
type WriteOp struct {
	Field ast.Pseudofield
	ET    etype.ET
}

func (WriteOp) isOp() {}

// Key implements Op.
func (o WriteOp) Key() string { return "Write(" + o.Field.String() + "," + etype.Key(o.ET) + ")" }

// AcceptMoneyOp records that the component accepts the incoming
// message's attached payment.
type AcceptMoneyOp struct{}

func (AcceptMoneyOp) isOp() {}

// Key implements Op.
func (AcceptMoneyOp) Key() string { return "AcceptMoney" }

// ConditionOnOp records that subsequent effects are conditioned on ET.
type ConditionOnOp struct {
	ET etype.ET
}

func (ConditionOnOp) isOp() {}

// Key implements Op.
func (o ConditionOnOp) Key() string { return "ConditionOn(" + etype.Key(o.ET) + ")" }

// EmitEventOp records an emitted event carrying ET.
type EmitEventOp struct {
	ET etype.ET
}

func (EmitEventOp) isOp() {}

// Key implements Op.
func (o EmitEventOp) Key() string { return "EmitEvent(" + etype.Key(o.ET) + ")" }

// SendMessagesOp records an outgoing batch of messages carrying ET.
type SendMessagesOp struct {
	ET etype.ET
}

func (SendMessagesOp) isOp() {}

// Key implements Op.
func (o SendMessagesOp) Key() string { return "SendMessages(" + etype.Key(o.ET) + ")" }

// AlwaysExclusiveOp is the top of the effect lattice: the analysis could
// not summarize some effect at Location, for Reason, and the whole
// enclosing transition must therefore be treated as non-shardable.
type AlwaysExclusiveOp struct {
	Location *source.Span
	Reason   string
}

func (AlwaysExclusiveOp) isOp() {}

// Key implements Op.
func (o AlwaysExclusiveOp) Key() string { return "AlwaysExclusive(" + o.Reason + ")" }

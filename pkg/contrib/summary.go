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
package contrib

// Cardinality is the None < Linear < NonLinear lattice of spec.md §3.
type Cardinality uint8

const (
	// None means the source does not actually flow into the value (it
	// was only conditioned upon, or appeared on the absorbing side of a
	// product).
	None Cardinality = iota
	// Linear means the source flows in exactly once.
	Linear
	// NonLinear means the source flows in more than once, or its exact
	// multiplicity could not be tracked precisely.
	NonLinear
)

// String renders a Cardinality for diagnostics.
func (c Cardinality) String() string {
	switch c {
	case None:
		return "None"
	case Linear:
		return "Linear"
	default:
		return "NonLinear"
	}
}

// MaxCardinality is the lattice join: None ⊔ x = x; anything paired with
// NonLinear is NonLinear; otherwise Linear.
func MaxCardinality(a, b Cardinality) Cardinality {
	switch {
	case a == None:
		return b
	case b == None:
		return a
	case a == NonLinear || b == NonLinear:
		return NonLinear
	default:
		return Linear
	}
}

// ProductCardinality combines two cardinalities multiplicatively: None is
// absorbing, NonLinear dominates, otherwise Linear.
func ProductCardinality(a, b Cardinality) Cardinality {
	switch {
	case a == None || b == None:
		return None
	case a == NonLinear || b == NonLinear:
		return NonLinear
	default:
		return Linear
	}
}

// SumSeqCardinality combines two cardinalities sequentially: if either is
// None, the other is returned; otherwise two sequentially composed
// contributions from unrelated sources are (conservatively) assumed
// NonLinear, per spec.md §4.1.
func SumSeqCardinality(a, b Cardinality) Cardinality {
	switch {
	case a == None:
		return b
	case b == None:
		return a
	default:
		return NonLinear
	}
}

// OperatorKind discriminates the two forms of Operator.
type OperatorKind uint8

const (
	// BuiltinOpKind is a named builtin operator (add, sub, lt, …).
	BuiltinOpKind OperatorKind = iota
	// ConditionalOpKind marks that a contribution flowed in only under
	// some runtime condition.
	ConditionalOpKind
)

// Operator is one element of a contribution summary's operator set.
type Operator struct {
	Kind OperatorKind
	Name string // valid iff Kind == BuiltinOpKind
}

// BuiltinOp constructs the operator for builtin name.
func BuiltinOp(name string) Operator { return Operator{Kind: BuiltinOpKind, Name: name} }

// Conditional is the singleton operator marking a conditioned contribution.
var Conditional = Operator{Kind: ConditionalOpKind}

// String renders an Operator for diagnostics.
func (o Operator) String() string {
	if o.Kind == ConditionalOpKind {
		return "Conditional"
	}

	return o.Name
}

// OperatorSet is an immutable set of Operators. The empty value is the
// empty set.
type OperatorSet map[Operator]struct{}

// NewOperatorSet constructs an operator set containing exactly ops.
func NewOperatorSet(ops ...Operator) OperatorSet {
	s := make(OperatorSet, len(ops))
	for _, o := range ops {
		s[o] = struct{}{}
	}

	return s
}

// Contains reports whether op is a member of this set.
func (s OperatorSet) Contains(op Operator) bool {
	_, ok := s[op]
	return ok
}

// Union returns a new set containing every operator of s or t.
func (s OperatorSet) Union(t OperatorSet) OperatorSet {
	out := make(OperatorSet, len(s)+len(t))
	for o := range s {
		out[o] = struct{}{}
	}

	for o := range t {
		out[o] = struct{}{}
	}

	return out
}

// WithConditional returns a copy of s with Conditional added.
func (s OperatorSet) WithConditional() OperatorSet {
	return s.Union(NewOperatorSet(Conditional))
}

// OnlyConditional returns a copy of s restricted to {Conditional}, or the
// empty set if s does not contain Conditional. This implements the
// combine_product op-set restriction of spec.md §4.1: "if the resulting
// cardinality is None, the op set is restricted to at most {Conditional}".
func (s OperatorSet) OnlyConditional() OperatorSet {
	if s.Contains(Conditional) {
		return NewOperatorSet(Conditional)
	}

	return nil
}

// Summary is the (cardinality, operator-set) pair spec.md §3 calls a
// Contribution Summary.
type Summary struct {
	Cardinality Cardinality
	Ops         OperatorSet
}

// NewSummary constructs a Summary.
func NewSummary(card Cardinality, ops OperatorSet) Summary {
	return Summary{Cardinality: card, Ops: ops}
}

// CombineSeq implements spec.md §4.1's sequential summary composer:
// combine_seq = (sum_seq(card), union(ops)).
func CombineSeq(a, b Summary) Summary {
	return Summary{SumSeqCardinality(a.Cardinality, b.Cardinality), a.Ops.Union(b.Ops)}
}

// CombinePar implements spec.md §4.1's parallel summary composer:
// combine_par = (max(card), union(ops)).
func CombinePar(a, b Summary) Summary {
	return Summary{MaxCardinality(a.Cardinality, b.Cardinality), a.Ops.Union(b.Ops)}
}

// CombineProduct implements spec.md §4.1's product summary composer:
// combine_product = (product(card), filtered(ops)).
func CombineProduct(a, b Summary) Summary {
	card := ProductCardinality(a.Cardinality, b.Cardinality)
	ops := a.Ops.Union(b.Ops)

	if card == None {
		ops = ops.OnlyConditional()
	}

	return Summary{card, ops}
}

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

// Precision distinguishes whether a Known Contribution's source set is
// exhaustive (Exactly) or merely an over-approximating superset
// (SubsetOf), per spec.md §3.
type Precision uint8

const (
	// Exactly means these are exactly the sources that flow in.
	Exactly Precision = iota
	// SubsetOf means a subset of these sources do; the actual set may be
	// smaller (this is the conservative, give-up-some-precision form).
	SubsetOf
)

// MinPrecision implements spec.md §3: "Exactly iff both are Exactly".
func MinPrecision(a, b Precision) Precision {
	if a == Exactly && b == Exactly {
		return Exactly
	}

	return SubsetOf
}

// String renders a Precision for diagnostics.
func (p Precision) String() string {
	if p == Exactly {
		return "Exactly"
	}

	return "SubsetOf"
}

// KnownContribution pairs a Precision with the Contributions it describes.
// It is the payload of the Val(known_contribution) expression-type form.
type KnownContribution struct {
	Precision    Precision
	Contributions Contributions
}

// Nothing is the designated "nothing flows in" value: Val(Exactly, {}).
// spec.md §4.1 singles this value out as the identity for conditional
// lifting (a spurious, always-true/never-materialized condition) and as
// the seed the normalizer starts a sequential fold from without losing
// precision.
func Nothing() KnownContribution {
	return KnownContribution{Precision: Exactly, Contributions: NewContributions()}
}

// IsNothing reports whether k is exactly the designated nothing value.
func (k KnownContribution) IsNothing() bool {
	return k.Precision == Exactly && len(k.Contributions) == 0
}

// SingleKnown constructs a KnownContribution carrying exactly one source, with
// Exactly precision.
func SingleKnown(src Source, s Summary) KnownContribution {
	return KnownContribution{Precision: Exactly, Contributions: Single(src, s)}
}

// Compose implements spec.md §4.1's et_compose: a pointwise union of the
// two contributions with the supplied per-source merge, with the result's
// precision the min_precision of the inputs.
func Compose(a, b KnownContribution, merge Merge) KnownContribution {
	return KnownContribution{
		Precision:    MinPrecision(a.Precision, b.Precision),
		Contributions: Union(a.Contributions, b.Contributions, merge),
	}
}

// ComposeSeq composes a and b sequentially (spec.md §4.1).
func ComposeSeq(a, b KnownContribution) KnownContribution { return Compose(a, b, CombineSeq) }

// ComposePar composes a and b in parallel (spec.md §4.1).
func ComposePar(a, b KnownContribution) KnownContribution { return Compose(a, b, CombinePar) }

// ComposeProduct composes a and b multiplicatively (spec.md §4.1,
// used by capture-avoiding substitution — see pkg/etype).
func ComposeProduct(a, b KnownContribution) KnownContribution { return Compose(a, b, CombineProduct) }

// AddConditional implements spec.md §4.1's add_conditional(cond, body):
// marks body's contributions with the Conditional operator, conditioned
// on the sources appearing in cond.
//
//   - a source appearing only in cond is added to body with (None,
//     {Conditional});
//   - a source appearing in both gets Conditional unioned into its
//     existing operator set;
//   - the precision floor is SubsetOf, unless cond is exactly Nothing(),
//     in which case the conditional is spurious and body's own precision
//     is preserved unchanged.
func AddConditional(cond, body KnownContribution) KnownContribution {
	if cond.IsNothing() {
		return body
	}

	out := body.Contributions.Clone()

	for src := range cond.Contributions {
		if existing, ok := out[src]; ok {
			out[src] = Summary{existing.Cardinality, existing.Ops.WithConditional()}
		} else {
			out[src] = Summary{None, NewOperatorSet(Conditional)}
		}
	}

	return KnownContribution{Precision: SubsetOf, Contributions: out}
}

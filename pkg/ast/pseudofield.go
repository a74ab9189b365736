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
package ast

import "strings"

// Pseudofield is a reference to mutable contract state: a field identifier
// plus, for map-typed fields, an ordered list of key identifiers. Per
// spec.md §3, if keys are present they describe a bottom-level access: the
// number of keys equals the declared map nesting depth for that field.
//
// Pseudofield is comparable (Keys is stored as a single joined string) so
// it can be used directly as a map key inside Contributions and as a
// dedup key inside ComponentSummary.
type Pseudofield struct {
	Field string
	keys  string // joined form of Keys, for comparability
	depth int
}

// NewPseudofield constructs a top-level (no keys) pseudofield for field f.
func NewPseudofield(field string) Pseudofield {
	return Pseudofield{Field: field}
}

// NewMapPseudofield constructs a bottom-level pseudofield for a map field,
// identified by its ordered key identifiers.
func NewMapPseudofield(field string, keys []string) Pseudofield {
	return Pseudofield{Field: field, keys: strings.Join(keys, "\x00"), depth: len(keys)}
}

// Keys returns the ordered key identifiers of this pseudofield, or nil if
// it does not reference a map.
func (p Pseudofield) Keys() []string {
	if p.keys == "" {
		return nil
	}

	return strings.Split(p.keys, "\x00")
}

// IsMap reports whether this pseudofield carries key identifiers.
func (p Pseudofield) IsMap() bool {
	return p.keys != ""
}

// String renders this pseudofield for diagnostics and for the canonical
// sort key used by deterministic output (spec.md §9).
func (p Pseudofield) String() string {
	if !p.IsMap() {
		return p.Field
	}

	var b strings.Builder

	b.WriteString(p.Field)

	for _, k := range p.Keys() {
		b.WriteByte('[')
		b.WriteString(k)
		b.WriteByte(']')
	}

	return b.String()
}

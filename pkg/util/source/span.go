// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the specific language
// governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package source carries source-location information for AST nodes and
// the structural errors reported against them (spec.md §7). This
// repository has no lexer or parser of its own (its input is already a
// built ast.Module), so this package keeps only the Span value itself
// and drops the teacher's file/line source-map machinery built to
// support one.
package source

// Span represents a contiguous slice of an original source text, kept
// as physical character indices rather than a string slice.
type Span struct {
	start int
	end   int
}

// NewSpan constructs a new span, checking that start does not exceed end.
func NewSpan(start, end int) Span {
	if start > end {
		panic("invalid span")
	}

	return Span{start, end}
}

// Start returns the starting index of this span in the original string.
func (p *Span) Start() int { return p.start }

// End returns one past the last index of this span in the original string.
func (p *Span) End() int { return p.end }

// Length returns the number of characters covered by this span.
func (p *Span) Length() int { return p.end - p.start }

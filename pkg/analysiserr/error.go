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

// Package analysiserr defines the structural-failure error type shared by
// the evaluator, the statement analyzer and the top-level orchestrator
// (spec.md §7): a lookup of an identifier that must be bound but isn't, a
// non-function expression-type in function position, a fixpoint form in
// user code, and similar violations the type checker should already have
// ruled out. It is a leaf package so that pkg/eval, pkg/summary and
// pkg/analysis can all produce this error type without importing each
// other.
package analysiserr

import (
	"fmt"

	"github.com/shardcheck/shardcheck/pkg/util/source"
)

// AnalysisError is a structural failure: a human-readable message and an
// optional source location.
type AnalysisError struct {
	span *source.Span
	msg  string
}

// New constructs an AnalysisError at the given (possibly nil) location.
func New(span *source.Span, format string, args ...any) *AnalysisError {
	return &AnalysisError{span: span, msg: fmt.Sprintf(format, args...)}
}

// Span returns the location this error is attached to, or nil.
func (e *AnalysisError) Span() *source.Span { return e.span }

// Message returns the underlying message without location information.
func (e *AnalysisError) Message() string { return e.msg }

// Error implements the error interface.
func (e *AnalysisError) Error() string {
	if e.span == nil {
		return e.msg
	}

	return fmt.Sprintf("%d:%d: %s", e.span.Start(), e.span.End(), e.msg)
}

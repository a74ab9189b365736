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
package analysis

import "github.com/shardcheck/shardcheck/pkg/analysiserr"

// AnalysisError carries a structural-failure message and an optional
// source location (spec.md §7). It is an alias of pkg/analysiserr's type:
// eval and summary construct these errors without importing pkg/analysis
// (which would cycle back through them), while callers of AnalyzeModule
// are expected to import only this package.
type AnalysisError = analysiserr.AnalysisError

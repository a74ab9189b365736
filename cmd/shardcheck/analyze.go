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
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shardcheck/shardcheck/pkg/analysis"
	"github.com/shardcheck/shardcheck/pkg/ast"
	"github.com/shardcheck/shardcheck/pkg/ast/fixture"
	"github.com/shardcheck/shardcheck/pkg/pcm"
)

// analyzeCmd runs AnalyzeModule over a built-in demo fixture and prints
// the resulting per-transition constraint sets.
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a built-in demo fixture and report its sharding constraints",
	Run: func(cmd *cobra.Command, args []string) {
		name, _ := cmd.Flags().GetString("fixture")

		module, ok := fixture.ByName(name)
		if !ok {
			fmt.Printf("unknown fixture %q; available: %s\n", name, strings.Join(fixture.Names(), ", "))
			os.Exit(2)
		}

		reports, err := analysis.AnalyzeModule(module, ast.ImplicitParams{}, pcm.NewDefaultRegistry())
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		if getFlag(cmd, "json") {
			if err := printJSON(reports); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}

			return
		}

		printText(reports)
	},
}

func init() {
	names := strings.Join(fixture.Names(), ", ")
	analyzeCmd.Flags().String("fixture", "increment", "built-in demo fixture to analyze (one of: "+names+")")
}

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
	"sort"

	"github.com/segmentio/encoding/json"
	"github.com/spf13/cobra"

	"github.com/shardcheck/shardcheck/pkg/pcm"
)

// pcmCmd groups PCM-registry introspection subcommands.
var pcmCmd = &cobra.Command{
	Use:   "pcm",
	Short: "Inspect the registered partial-commutative-monoid modules",
}

// pcmListCmd lists every PCM this build registers by default.
var pcmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered PCM identifiers",
	Run: func(cmd *cobra.Command, args []string) {
		ids := make([]string, 0)
		for _, p := range pcm.NewDefaultRegistry().List() {
			ids = append(ids, p.Identifier())
		}

		sort.Strings(ids)

		if getFlag(cmd, "json") {
			bytes, err := json.MarshalIndent(ids, "", "  ")
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}

			fmt.Println(string(bytes))

			return
		}

		for _, id := range ids {
			fmt.Println(id)
		}
	},
}

func init() {
	pcmCmd.AddCommand(pcmListCmd)
}

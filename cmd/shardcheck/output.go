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
	"strings"

	"github.com/segmentio/encoding/json"

	"github.com/shardcheck/shardcheck/pkg/analysis"
)

// transitionJSON is the wire shape of a TransitionReport: Constraints is
// flattened to its sorted Key strings, since shard.Constraint itself
// carries no exported fields worth round-tripping.
type transitionJSON struct {
	Name        string   `json:"name"`
	Constraints []string `json:"constraints"`
	Unsat       bool     `json:"unsat"`
}

func printJSON(reports []analysis.TransitionReport) error {
	out := make([]transitionJSON, len(reports))

	for i, r := range reports {
		sorted := r.Constraints.Sorted()
		keys := make([]string, len(sorted))

		for j, c := range sorted {
			keys[j] = c.Key()
		}

		out[i] = transitionJSON{Name: r.Name, Constraints: keys, Unsat: r.Constraints.IsUnsat()}
	}

	bytes, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(bytes))

	return nil
}

func printText(reports []analysis.TransitionReport) {
	width := terminalWidth()

	for _, r := range reports {
		fmt.Println(r.Name)

		if r.Constraints.Len() == 0 {
			fmt.Println(wrapLine("  (no constraints)", width))
			continue
		}

		for _, c := range r.Constraints.Sorted() {
			fmt.Println(wrapLine("  "+c.Key(), width))
		}
	}
}

// wrapLine breaks line into width-bounded chunks on word boundaries,
// indenting continuation lines to match line's own leading whitespace.
func wrapLine(line string, width int) string {
	if width <= 0 || len(line) <= width {
		return line
	}

	indent := line[:len(line)-len(strings.TrimLeft(line, " "))]
	words := strings.Fields(line)

	var b strings.Builder

	col := 0

	for i, w := range words {
		prefix := indent
		if col > 0 {
			prefix = " "
		}

		if col > 0 && col+len(prefix)+len(w) > width {
			b.WriteString("\n" + indent)
			col = len(indent)
			prefix = ""
		} else if i == 0 {
			prefix = indent
		}

		b.WriteString(prefix + w)
		col += len(prefix) + len(w)
	}

	return b.String()
}

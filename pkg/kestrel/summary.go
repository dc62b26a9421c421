// kestrel
// (C) 2024, Deutsche Telekom IT GmbH
//
// Deutsche Telekom IT GmbH and all other contributors /
// copyright owners license this file to you under the Apache
// License, Version 2.0 (the "License"); you may not use this
// file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package kestrel

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/caas-team/kestrel/pkg/report"
)

// PrintSummary writes a per-server summary of the report to w,
// with at-risk servers colored red.
func PrintSummary(w io.Writer, rep report.Report) {
	green := color.New(color.FgGreen).FprintfFunc()
	red := color.New(color.FgRed, color.Bold).FprintfFunc()

	total := 0
	for _, g := range rep.Groups {
		danger := 0
		for _, t := range g.Tables {
			for _, row := range t.Rows {
				if row.Danger {
					danger++
				}
			}
		}
		total += danger

		if danger == 0 {
			green(w, "%-30s ok\n", g.Server.Name)
			continue
		}
		red(w, "%-30s %d at risk\n", g.Server.Name, danger)
	}

	fmt.Fprintf(w, "\n%d servers checked, %d rows at risk\n", len(rep.Groups), total)
}

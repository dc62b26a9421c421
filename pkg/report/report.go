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

// Package report composes check results into a single HTML document.
// The composition is three-level: check table, per-server group, report.
package report

import (
	"strings"
	"time"

	"github.com/caas-team/kestrel/pkg/checks"
	"github.com/caas-team/kestrel/pkg/inventory"
)

// Table is one rendered check result
type Table struct {
	// Title is the heading above the table
	Title string `json:"title"`
	// Header holds the column titles
	Header []string `json:"header"`
	// Rows are the result rows; danger rows get the highlight class
	Rows []checks.Row `json:"rows"`
}

// Group bundles the tables of one server
type Group struct {
	Server inventory.Server `json:"server"`
	Tables []Table          `json:"tables"`
}

// Report is the fully assembled document model
type Report struct {
	// Title is the headline of the document
	Title string `json:"title"`
	// Date is the generation timestamp
	Date time.Time `json:"date"`
	// Groups holds one entry per server, in inventory order
	Groups []Group `json:"groups"`
}

// DangerCount returns the number of danger rows across all groups
func (r Report) DangerCount() int {
	n := 0
	for _, g := range r.Groups {
		for _, t := range g.Tables {
			for _, row := range t.Rows {
				if row.Danger {
					n++
				}
			}
		}
	}
	return n
}

// groupID derives the html anchor for a server group
func groupID(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return "srv-" + strings.Trim(b.String(), "-")
}

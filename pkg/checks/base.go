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

package checks

import (
	"context"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/caas-team/kestrel/internal/helper"
	"github.com/caas-team/kestrel/pkg/inventory"
)

// DefaultRetry provides a default configuration for the retry mechanism
var DefaultRetry = helper.RetryConfig{
	Count: 3,
	Delay: time.Second,
}

// Check implementations query one operational signal of a single server
// and report normalized result rows.
//
//go:generate moq -out base_moq.go . Check
type Check interface {
	// Run executes the check against the given server once.
	// The returned result contains one row per inspected object.
	Run(ctx context.Context, srv inventory.Server) (Result, error)
	// Name returns the name of the check.
	Name() string
	// Title returns the human readable heading used for the check's report table.
	Title() string
	// Schema returns an openapi3.SchemaRef of the result type returned by the check.
	Schema() (*openapi3.SchemaRef, error)
	// GetMetricCollectors allows the check to provide prometheus metric collectors.
	GetMetricCollectors() []prometheus.Collector
}

// Result encapsulates the outcome of a check run against one server.
type Result struct {
	// Header holds the column titles of the result rows
	Header []string `json:"header"`
	// Rows contains one entry per inspected object
	Rows []Row `json:"rows"`
	// Timestamp is the UTC time the check was run
	Timestamp time.Time `json:"timestamp"`
}

// Row is one line of a check result.
type Row struct {
	// Columns are the rendered cell values, ordered like the result header
	Columns []string `json:"columns"`
	// Danger marks the row as requiring attention
	Danger bool `json:"danger"`
}

// DangerCount returns the number of rows flagged as danger
func (r Result) DangerCount() int {
	n := 0
	for _, row := range r.Rows {
		if row.Danger {
			n++
		}
	}
	return n
}

// ErrorResult builds a single-row result representing a failed check run.
// The driver renders it instead of aborting the server's remaining checks.
func ErrorResult(err error) Result {
	return Result{
		Header:    []string{"Error"},
		Rows:      []Row{{Columns: []string{err.Error()}, Danger: true}},
		Timestamp: time.Now().UTC(),
	}
}

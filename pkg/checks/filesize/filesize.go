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

package filesize

import (
	"context"
	"fmt"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/caas-team/kestrel/internal/logger"
	"github.com/caas-team/kestrel/pkg/agent"
	"github.com/caas-team/kestrel/pkg/checks"
	"github.com/caas-team/kestrel/pkg/inventory"
)

var _ checks.Check = (*check)(nil)

// CheckName is the base name; instances are named after their role tag
const CheckName = "filesize"

// timeFormat renders file modification times in the report
const timeFormat = "2006-01-02 15:04:05"

// check is the implementation of the file size check.
// It flags files that grew beyond the configured threshold.
type check struct {
	name    string
	config  Config
	client  *agent.Client
	metrics metrics
}

// NewCheck creates a new file size check instance
func NewCheck(name string, client *agent.Client, cfg Config) checks.Check {
	return &check{
		name:    name,
		config:  cfg,
		client:  client,
		metrics: newMetrics(name),
	}
}

// Run queries the watched file on the server
func (ch *check) Run(ctx context.Context, srv inventory.Server) (checks.Result, error) {
	log := logger.FromContext(ctx)
	log.Debug("Checking file size", "server", srv.Name, "path", ch.config.Path)

	info, err := ch.client.Stat(ctx, srv.Name, ch.config.Path)
	if err != nil {
		return checks.Result{}, fmt.Errorf("failed to stat %q on %q: %w", ch.config.Path, srv.Name, err)
	}

	ch.metrics.sizeBytes.WithLabelValues(srv.Name, info.Path).Set(float64(info.Size))

	return checks.Result{
		Header: []string{"File", "Size", "Modified"},
		Rows: []checks.Row{
			{
				Columns: []string{info.Path, checks.FormatBytes(info.Size), info.Modified.Format(timeFormat)},
				// a file exactly at the threshold is still healthy
				Danger: info.Size > ch.config.Threshold,
			},
		},
		Timestamp: time.Now().UTC(),
	}, nil
}

// Name returns the name of the check instance
func (ch *check) Name() string {
	return ch.name
}

// Title returns the report heading of the check instance
func (ch *check) Title() string {
	if ch.config.Title != "" {
		return ch.config.Title
	}
	return fmt.Sprintf("File size %q", ch.config.Path)
}

// Schema provides the schema of the data that will be provided by the check
func (*check) Schema() (*openapi3.SchemaRef, error) {
	return checks.ResultSchema()
}

// GetMetricCollectors returns all metric collectors of the check
func (ch *check) GetMetricCollectors() []prometheus.Collector {
	return []prometheus.Collector{
		ch.metrics.sizeBytes,
	}
}

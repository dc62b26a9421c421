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

package diskspace

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

const CheckName = "diskspace"

// check is the implementation of the disk space check.
// It flags disks whose free space dropped below the threshold.
type check struct {
	config  Config
	client  *agent.Client
	metrics metrics
}

// NewCheck creates a new instance of the disk space check
func NewCheck(client *agent.Client, cfg Config) checks.Check {
	return &check{
		config:  cfg,
		client:  client,
		metrics: newMetrics(),
	}
}

// Run queries the logical disks of the server
func (ch *check) Run(ctx context.Context, srv inventory.Server) (checks.Result, error) {
	log := logger.FromContext(ctx)
	log.Debug("Checking disk space", "server", srv.Name)

	disks, err := ch.client.Disks(ctx, srv.Name)
	if err != nil {
		return checks.Result{}, fmt.Errorf("failed to list disks of %q: %w", srv.Name, err)
	}

	res := checks.Result{
		Header:    []string{"Disk", "Size", "Free"},
		Timestamp: time.Now().UTC(),
	}
	for _, d := range disks {
		ch.metrics.freeBytes.WithLabelValues(srv.Name, d.Name).Set(float64(d.Free))
		res.Rows = append(res.Rows, checks.Row{
			Columns: []string{d.Name, checks.FormatBytes(d.Size), checks.FormatBytes(d.Free)},
			// a disk exactly at the threshold is still healthy
			Danger: d.Free < ch.config.Threshold,
		})
	}
	return res, nil
}

// Name returns the name of the check
func (*check) Name() string {
	return CheckName
}

// Title returns the report heading of the check
func (*check) Title() string {
	return "Disk space"
}

// Schema provides the schema of the data that will be provided by the check
func (*check) Schema() (*openapi3.SchemaRef, error) {
	return checks.ResultSchema()
}

// GetMetricCollectors returns all metric collectors of the check
func (ch *check) GetMetricCollectors() []prometheus.Collector {
	return []prometheus.Collector{
		ch.metrics.freeBytes,
	}
}

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

package reboot

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

const CheckName = "reboot"

// check is the implementation of the pending reboot check
type check struct {
	client  *agent.Client
	metrics metrics
}

// NewCheck creates a new instance of the pending reboot check
func NewCheck(client *agent.Client) checks.Check {
	return &check{
		client:  client,
		metrics: newMetrics(),
	}
}

// Run queries the pending reboot flag of the server
func (ch *check) Run(ctx context.Context, srv inventory.Server) (checks.Result, error) {
	log := logger.FromContext(ctx)
	log.Debug("Checking pending reboot", "server", srv.Name)

	pending, err := ch.client.PendingReboot(ctx, srv.Name)
	if err != nil {
		return checks.Result{}, fmt.Errorf("failed to query pending reboot of %q: %w", srv.Name, err)
	}

	state := "no"
	var up float64
	if pending {
		state = "yes"
		up = 1
	}
	ch.metrics.pending.WithLabelValues(srv.Name).Set(up)

	return checks.Result{
		Header: []string{"Pending reboot"},
		Rows: []checks.Row{
			{Columns: []string{state}, Danger: pending},
		},
		Timestamp: time.Now().UTC(),
	}, nil
}

// Name returns the name of the check
func (*check) Name() string {
	return CheckName
}

// Title returns the report heading of the check
func (*check) Title() string {
	return "Pending reboot"
}

// Schema provides the schema of the data that will be provided by the check
func (*check) Schema() (*openapi3.SchemaRef, error) {
	return checks.ResultSchema()
}

// GetMetricCollectors returns all metric collectors of the check
func (ch *check) GetMetricCollectors() []prometheus.Collector {
	return []prometheus.Collector{
		ch.metrics.pending,
	}
}

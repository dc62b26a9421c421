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

// Package valerts implements the vCenter alarm listing for the report.
// Alarm rows are informational and never carry a danger flag.
package valerts

import (
	"context"
	"fmt"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/caas-team/kestrel/internal/logger"
	"github.com/caas-team/kestrel/pkg/checks"
	"github.com/caas-team/kestrel/pkg/inventory"
	"github.com/caas-team/kestrel/pkg/vcenter"
)

var _ checks.Check = (*check)(nil)

const CheckName = "vcenter_alerts"

// timeFormat renders alarm trigger times in the report
const timeFormat = "2006-01-02 15:04:05"

// check is the implementation of the vCenter alarm listing
type check struct {
	client  *vcenter.Client
	metrics metrics
}

// NewCheck creates a new instance of the vCenter alarm check
func NewCheck(client *vcenter.Client) checks.Check {
	return &check{
		client:  client,
		metrics: newMetrics(),
	}
}

// Run lists the triggered alarms of the platform.
// The server the check runs for selects the report group the rows land in;
// the query itself always goes to the configured vCenter.
func (ch *check) Run(ctx context.Context, srv inventory.Server) (checks.Result, error) {
	log := logger.FromContext(ctx)
	log.Debug("Listing vCenter alarms", "server", srv.Name)

	alarms, err := ch.client.Alarms(ctx)
	if err != nil {
		return checks.Result{}, fmt.Errorf("failed to list vCenter alarms: %w", err)
	}

	acknowledged := 0
	res := checks.Result{
		Header:    []string{"Datacenter", "Alarm", "Object", "Time", "Acknowledged"},
		Timestamp: time.Now().UTC(),
	}
	for _, a := range alarms {
		ack := "no"
		if a.Acknowledged {
			ack = "yes"
			acknowledged++
		}
		res.Rows = append(res.Rows, checks.Row{
			Columns: []string{a.Datacenter, a.Name, a.Object, a.Time.Format(timeFormat), ack},
		})
	}

	ch.metrics.alarms.WithLabelValues("yes").Set(float64(acknowledged))
	ch.metrics.alarms.WithLabelValues("no").Set(float64(len(alarms) - acknowledged))
	return res, nil
}

// Name returns the name of the check
func (*check) Name() string {
	return CheckName
}

// Title returns the report heading of the check
func (*check) Title() string {
	return "vCenter alarms"
}

// Schema provides the schema of the data that will be provided by the check
func (*check) Schema() (*openapi3.SchemaRef, error) {
	return checks.ResultSchema()
}

// GetMetricCollectors returns all metric collectors of the check
func (ch *check) GetMetricCollectors() []prometheus.Collector {
	return []prometheus.Collector{
		ch.metrics.alarms,
	}
}

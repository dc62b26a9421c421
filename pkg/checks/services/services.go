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

package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/caas-team/kestrel/internal/logger"
	"github.com/caas-team/kestrel/pkg/agent"
	"github.com/caas-team/kestrel/pkg/checks"
	"github.com/caas-team/kestrel/pkg/inventory"
)

var _ checks.Check = (*check)(nil)

const (
	// CheckName is the base name; instances are named after their role tag
	CheckName = "services"

	startModeAutomatic = "automatic"
	stateRunning       = "running"
)

// check is the implementation of the service state check.
// One instance covers one group of services selected by a display name prefix.
type check struct {
	name    string
	config  Config
	client  *agent.Client
	metrics metrics
}

// NewCheck creates a new service state check instance.
// The name distinguishes instances in the report and the results API;
// it is usually the role tag that enables the instance.
func NewCheck(name string, client *agent.Client, cfg Config) checks.Check {
	return &check{
		name:    name,
		config:  cfg,
		client:  client,
		metrics: newMetrics(name),
	}
}

// Run queries the matching services of the server
func (ch *check) Run(ctx context.Context, srv inventory.Server) (checks.Result, error) {
	log := logger.FromContext(ctx)
	log.Debug("Checking services", "server", srv.Name, "prefix", ch.config.Prefix)

	services, err := ch.client.Services(ctx, srv.Name, ch.config.Prefix)
	if err != nil {
		return checks.Result{}, fmt.Errorf("failed to list services of %q: %w", srv.Name, err)
	}

	res := checks.Result{
		Header:    []string{"Service", "Start mode", "State"},
		Timestamp: time.Now().UTC(),
	}
	for _, s := range services {
		// the agent filters by prefix already; keep the contract local too
		if !strings.HasPrefix(s.DisplayName, ch.config.Prefix) {
			continue
		}
		danger := Dangerous(s)
		var up float64
		if !danger {
			up = 1
		}
		ch.metrics.up.WithLabelValues(srv.Name, s.Name).Set(up)
		res.Rows = append(res.Rows, checks.Row{
			Columns: []string{s.DisplayName, s.StartMode, s.State},
			Danger:  danger,
		})
	}
	return res, nil
}

// Dangerous reports whether a service needs attention.
// Only services configured to start automatically are held to the
// running requirement; a manual or disabled service is never flagged.
func Dangerous(s agent.Service) bool {
	return strings.EqualFold(s.StartMode, startModeAutomatic) &&
		!strings.EqualFold(s.State, stateRunning)
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
	return fmt.Sprintf("Services %q", ch.config.Prefix)
}

// Schema provides the schema of the data that will be provided by the check
func (*check) Schema() (*openapi3.SchemaRef, error) {
	return checks.ResultSchema()
}

// GetMetricCollectors returns all metric collectors of the check
func (ch *check) GetMetricCollectors() []prometheus.Collector {
	return []prometheus.Collector{
		ch.metrics.up,
	}
}

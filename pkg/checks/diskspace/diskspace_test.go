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
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caas-team/kestrel/internal/helper"
	"github.com/caas-team/kestrel/pkg/agent"
	"github.com/caas-team/kestrel/pkg/checks"
	"github.com/caas-team/kestrel/pkg/inventory"
)

func testAgent() *agent.Client {
	return agent.NewClient(agent.Config{
		Scheme:  "http",
		Port:    8090,
		Timeout: time.Second,
		Retry:   helper.RetryConfig{Count: 0, Delay: time.Millisecond},
	})
}

func TestCheck_Run(t *testing.T) {
	threshold := uint64(10 * checks.GiB)

	tests := []struct {
		name       string
		free       uint64
		wantDanger bool
	}{
		{name: "plenty of space", free: 50 * checks.GiB, wantDanger: false},
		{name: "exactly at the threshold", free: threshold, wantDanger: false},
		{name: "one byte below the threshold", free: threshold - 1, wantDanger: true},
		{name: "no space left", free: 0, wantDanger: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpmock.Activate()
			defer httpmock.DeactivateAndReset()

			httpmock.RegisterResponder(http.MethodGet, "http://srv01:8090/v1/disks",
				httpmock.NewStringResponder(http.StatusOK, fmt.Sprintf(
					`[{"name":"C:","size":%d,"free":%d}]`, 100*checks.GiB, tt.free,
				)),
			)

			ch := NewCheck(testAgent(), Config{Threshold: threshold})
			res, err := ch.Run(context.Background(), inventory.Server{Name: "srv01"})
			require.NoError(t, err)

			assert.Equal(t, []string{"Disk", "Size", "Free"}, res.Header)
			require.Len(t, res.Rows, 1)
			assert.Equal(t, "C:", res.Rows[0].Columns[0])
			assert.Equal(t, tt.wantDanger, res.Rows[0].Danger)
		})
	}
}

func TestCheck_Run_NoDisks(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodGet, "http://srv01:8090/v1/disks",
		httpmock.NewStringResponder(http.StatusOK, `[]`),
	)

	res, err := NewCheck(testAgent(), Config{Threshold: DefaultThreshold}).
		Run(context.Background(), inventory.Server{Name: "srv01"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Disk", "Size", "Free"}, res.Header)
	assert.Empty(t, res.Rows)
}

func TestCheck_Run_AgentUnreachable(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodGet, "http://srv01:8090/v1/disks",
		httpmock.NewErrorResponder(fmt.Errorf("connection refused")),
	)

	_, err := NewCheck(testAgent(), Config{Threshold: DefaultThreshold}).
		Run(context.Background(), inventory.Server{Name: "srv01"})
	assert.Error(t, err)
}

func TestCheck_Metadata(t *testing.T) {
	ch := NewCheck(testAgent(), Config{Threshold: DefaultThreshold})

	assert.Equal(t, CheckName, ch.Name())
	assert.Equal(t, "Disk space", ch.Title())
	assert.Len(t, ch.GetMetricCollectors(), 1)

	schema, err := ch.Schema()
	require.NoError(t, err)
	assert.NotNil(t, schema)
}

func TestConfig_Validate(t *testing.T) {
	cfg := Config{Threshold: DefaultThreshold}
	assert.NoError(t, cfg.Validate())

	cfg.Threshold = 0
	assert.Error(t, cfg.Validate())
}

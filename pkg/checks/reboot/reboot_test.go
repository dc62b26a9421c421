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
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caas-team/kestrel/internal/helper"
	"github.com/caas-team/kestrel/pkg/agent"
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
	tests := []struct {
		name     string
		pending  bool
		wantCell string
	}{
		{name: "reboot pending", pending: true, wantCell: "yes"},
		{name: "no reboot pending", pending: false, wantCell: "no"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpmock.Activate()
			defer httpmock.DeactivateAndReset()

			httpmock.RegisterResponder(http.MethodGet, "http://srv01:8090/v1/reboot",
				httpmock.NewStringResponder(http.StatusOK, fmt.Sprintf(`{"pending":%t}`, tt.pending)),
			)

			res, err := NewCheck(testAgent()).Run(context.Background(), inventory.Server{Name: "srv01"})
			require.NoError(t, err)

			assert.Equal(t, []string{"Pending reboot"}, res.Header)
			require.Len(t, res.Rows, 1)
			assert.Equal(t, []string{tt.wantCell}, res.Rows[0].Columns)
			assert.Equal(t, tt.pending, res.Rows[0].Danger)
		})
	}
}

func TestCheck_Run_AgentUnreachable(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodGet, "http://srv01:8090/v1/reboot",
		httpmock.NewErrorResponder(fmt.Errorf("connection refused")),
	)

	_, err := NewCheck(testAgent()).Run(context.Background(), inventory.Server{Name: "srv01"})
	assert.Error(t, err)
}

func TestCheck_Metadata(t *testing.T) {
	ch := NewCheck(testAgent())

	assert.Equal(t, CheckName, ch.Name())
	assert.Equal(t, "Pending reboot", ch.Title())
	assert.Len(t, ch.GetMetricCollectors(), 1)

	schema, err := ch.Schema()
	require.NoError(t, err)
	assert.NotNil(t, schema)
}

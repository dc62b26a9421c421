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

const watchedPath = `C:\PI\dat\piarcmem.dat`

func testAgent() *agent.Client {
	return agent.NewClient(agent.Config{
		Scheme:  "http",
		Port:    8090,
		Timeout: time.Second,
		Retry:   helper.RetryConfig{Count: 0, Delay: time.Millisecond},
	})
}

func TestCheck_Run(t *testing.T) {
	threshold := uint64(5 * checks.GiB)

	tests := []struct {
		name       string
		size       uint64
		wantDanger bool
	}{
		{name: "small file", size: checks.GiB, wantDanger: false},
		{name: "exactly at the threshold", size: threshold, wantDanger: false},
		{name: "one byte above the threshold", size: threshold + 1, wantDanger: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpmock.Activate()
			defer httpmock.DeactivateAndReset()

			httpmock.RegisterResponder(http.MethodGet, "http://srv01:8090/v1/files",
				httpmock.NewStringResponder(http.StatusOK, fmt.Sprintf(
					`{"path":"C:\\PI\\dat\\piarcmem.dat","size":%d,"modified":"2024-03-01T12:30:00Z"}`, tt.size,
				)),
			)

			ch := NewCheck("pi_local_db", testAgent(), Config{Path: watchedPath, Threshold: threshold})
			res, err := ch.Run(context.Background(), inventory.Server{Name: "srv01"})
			require.NoError(t, err)

			assert.Equal(t, []string{"File", "Size", "Modified"}, res.Header)
			require.Len(t, res.Rows, 1)
			assert.Equal(t, watchedPath, res.Rows[0].Columns[0])
			assert.Equal(t, "2024-03-01 12:30:00", res.Rows[0].Columns[2])
			assert.Equal(t, tt.wantDanger, res.Rows[0].Danger)
		})
	}
}

func TestCheck_Run_AgentUnreachable(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodGet, "http://srv01:8090/v1/files",
		httpmock.NewErrorResponder(fmt.Errorf("connection refused")),
	)

	_, err := NewCheck("pi_local_db", testAgent(), Config{Path: watchedPath, Threshold: DefaultThreshold}).
		Run(context.Background(), inventory.Server{Name: "srv01"})
	assert.Error(t, err)
}

func TestCheck_Metadata(t *testing.T) {
	ch := NewCheck("pi_local_db", testAgent(), Config{Path: watchedPath, Threshold: DefaultThreshold, Title: "PI local database"})

	assert.Equal(t, "pi_local_db", ch.Name())
	assert.Equal(t, "PI local database", ch.Title())
	assert.Len(t, ch.GetMetricCollectors(), 1)
}

func TestCheck_Title_Fallback(t *testing.T) {
	ch := NewCheck("pi_local_db", testAgent(), Config{Path: watchedPath, Threshold: DefaultThreshold})
	assert.Equal(t, fmt.Sprintf("File size %q", watchedPath), ch.Title())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "valid", cfg: Config{Path: watchedPath, Threshold: DefaultThreshold}},
		{name: "missing path", cfg: Config{Threshold: DefaultThreshold}, wantErr: true},
		{name: "zero threshold", cfg: Config{Path: watchedPath}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

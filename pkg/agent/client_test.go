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

package agent

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caas-team/kestrel/internal/helper"
)

func testConfig() Config {
	return Config{
		Scheme:  "http",
		Port:    8090,
		Timeout: time.Second,
		Retry:   helper.RetryConfig{Count: 1, Delay: time.Millisecond},
	}
}

func TestClient_Disks(t *testing.T) {
	c := NewClient(testConfig())
	httpmock.ActivateNonDefault(c.client)
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodGet, "http://srv01:8090/v1/disks",
		httpmock.NewStringResponder(http.StatusOK, `[
			{"name":"C:","size":107374182400,"free":32212254720},
			{"name":"D:","size":214748364800,"free":5368709120}
		]`),
	)

	disks, err := c.Disks(context.Background(), "srv01")
	require.NoError(t, err)
	require.Len(t, disks, 2)
	assert.Equal(t, Disk{Name: "C:", Size: 107374182400, Free: 32212254720}, disks[0])
	assert.Equal(t, Disk{Name: "D:", Size: 214748364800, Free: 5368709120}, disks[1])
}

func TestClient_Disks_AgentError(t *testing.T) {
	c := NewClient(testConfig())
	httpmock.ActivateNonDefault(c.client)
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodGet, "http://srv01:8090/v1/disks",
		httpmock.NewStringResponder(http.StatusInternalServerError, "boom"),
	)

	_, err := c.Disks(context.Background(), "srv01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	// one initial attempt plus one retry
	assert.Equal(t, 2, httpmock.GetTotalCallCount())
}

func TestClient_PendingReboot(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    bool
		wantErr bool
	}{
		{name: "pending", body: `{"pending":true}`, want: true},
		{name: "not pending", body: `{"pending":false}`, want: false},
		{name: "garbage body", body: `{]`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClient(testConfig())
			httpmock.ActivateNonDefault(c.client)
			defer httpmock.DeactivateAndReset()

			httpmock.RegisterResponder(http.MethodGet, "http://srv01:8090/v1/reboot",
				httpmock.NewStringResponder(http.StatusOK, tt.body),
			)

			pending, err := c.PendingReboot(context.Background(), "srv01")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, pending)
		})
	}
}

func TestClient_Services(t *testing.T) {
	c := NewClient(testConfig())
	httpmock.ActivateNonDefault(c.client)
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponderWithQuery(http.MethodGet, "http://srv01:8090/v1/services",
		url.Values{"prefix": []string{"VMware"}},
		httpmock.NewStringResponder(http.StatusOK, `[
			{"name":"vmtools","displayName":"VMware Tools","startMode":"automatic","state":"running"}
		]`),
	)

	services, err := c.Services(context.Background(), "srv01", "VMware")
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, Service{Name: "vmtools", DisplayName: "VMware Tools", StartMode: "automatic", State: "running"}, services[0])
}

func TestClient_Stat(t *testing.T) {
	c := NewClient(testConfig())
	httpmock.ActivateNonDefault(c.client)
	defer httpmock.DeactivateAndReset()

	modified := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	httpmock.RegisterResponderWithQuery(http.MethodGet, "http://srv01:8090/v1/files",
		url.Values{"path": []string{`C:\PI\dat\piarcmem.dat`}},
		httpmock.NewJsonResponderOrPanic(http.StatusOK, FileInfo{
			Path:     `C:\PI\dat\piarcmem.dat`,
			Size:     1024,
			Modified: modified,
		}),
	)

	info, err := c.Stat(context.Background(), "srv01", `C:\PI\dat\piarcmem.dat`)
	require.NoError(t, err)
	assert.Equal(t, `C:\PI\dat\piarcmem.dat`, info.Path)
	assert.EqualValues(t, 1024, info.Size)
	assert.True(t, info.Modified.Equal(modified))
}

func TestClient_BearerToken(t *testing.T) {
	cfg := testConfig()
	cfg.Token = "s3cret"
	c := NewClient(cfg)
	httpmock.ActivateNonDefault(c.client)
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodGet, "http://srv01:8090/v1/reboot",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "Bearer s3cret", req.Header.Get("Authorization"))
			return httpmock.NewStringResponse(http.StatusOK, `{"pending":false}`), nil
		},
	)

	_, err := c.PendingReboot(context.Background(), "srv01")
	require.NoError(t, err)
}

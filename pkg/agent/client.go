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

// Package agent implements the client for the management agent
// running on every server of the fleet.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/caas-team/kestrel/internal/helper"
	"github.com/caas-team/kestrel/internal/httpclient"
	"github.com/caas-team/kestrel/internal/logger"
)

// Config contains the configuration for the management agent client
type Config struct {
	// Scheme is http or https
	Scheme string `yaml:"scheme" mapstructure:"scheme"`
	// Port is the port the agent listens on
	Port int `yaml:"port" mapstructure:"port"`
	// Token is an optional bearer token the agent requires
	Token string `yaml:"token" mapstructure:"token"`
	// Timeout is the timeout for a single agent request
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// Retry configures the retries for failed agent requests
	Retry helper.RetryConfig `yaml:"retry" mapstructure:"retry"`
}

// Disk is one logical disk reported by the agent
type Disk struct {
	// Name is the drive identifier, e.g. "C:"
	Name string `json:"name"`
	// Size is the total size in bytes
	Size uint64 `json:"size"`
	// Free is the free space in bytes
	Free uint64 `json:"free"`
}

// Service is one system service reported by the agent
type Service struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	// StartMode is automatic, manual or disabled
	StartMode string `json:"startMode"`
	// State is running, stopped etc.
	State string `json:"state"`
}

// FileInfo describes a single file on the server
type FileInfo struct {
	Path string `json:"path"`
	// Size is the file length in bytes
	Size     uint64    `json:"size"`
	Modified time.Time `json:"modified"`
}

// Client queries the management agent of a server.
// All queries are synchronous; one request per call.
type Client struct {
	cfg    Config
	client *http.Client
}

// NewClient creates a new agent client
func NewClient(cfg Config) *Client {
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Disks returns the logical disks of the given server
func (c *Client) Disks(ctx context.Context, host string) ([]Disk, error) {
	var disks []Disk
	if err := c.get(ctx, host, "/v1/disks", nil, &disks); err != nil {
		return nil, err
	}
	return disks, nil
}

// PendingReboot reports whether the server has a reboot pending
func (c *Client) PendingReboot(ctx context.Context, host string) (bool, error) {
	var res struct {
		Pending bool `json:"pending"`
	}
	if err := c.get(ctx, host, "/v1/reboot", nil, &res); err != nil {
		return false, err
	}
	return res.Pending, nil
}

// Services returns the services whose display name starts with prefix.
// The prefix filter is applied by the agent.
func (c *Client) Services(ctx context.Context, host, prefix string) ([]Service, error) {
	var services []Service
	if err := c.get(ctx, host, "/v1/services", url.Values{"prefix": []string{prefix}}, &services); err != nil {
		return nil, err
	}
	return services, nil
}

// Stat returns the file info for the given path on the server
func (c *Client) Stat(ctx context.Context, host, path string) (FileInfo, error) {
	var info FileInfo
	if err := c.get(ctx, host, "/v1/files", url.Values{"path": []string{path}}, &info); err != nil {
		return FileInfo{}, err
	}
	return info, nil
}

// get performs one agent request with the configured retry policy
// and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, host, path string, query url.Values, out any) error {
	u := url.URL{
		Scheme:   c.cfg.Scheme,
		Host:     net.JoinHostPort(host, strconv.Itoa(c.cfg.Port)),
		Path:     path,
		RawQuery: query.Encode(),
	}

	return helper.Retry(func(ctx context.Context) error {
		return c.fetch(ctx, u.String(), out)
	}, c.cfg.Retry)(ctx)
}

// fetch performs a single request against the agent
func (c *Client) fetch(ctx context.Context, u string, out any) error {
	log := logger.FromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.cfg.Token))
	}

	resp, err := httpclient.FromContext(ctx, c.client).Do(req) //nolint:bodyclose // closed in defer
	if err != nil {
		return fmt.Errorf("failed to query agent: %w", err)
	}
	defer func(b io.ReadCloser) {
		if cErr := b.Close(); cErr != nil {
			log.Error("Failed to close response body", "error", cErr)
		}
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("agent returned status %d for %s", resp.StatusCode, u)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode agent response: %w", err)
	}
	return nil
}

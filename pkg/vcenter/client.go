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

// Package vcenter implements a minimal client for the vSphere Automation API.
// Only session handling and triggered alarms are needed by kestrel.
package vcenter

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/caas-team/kestrel/internal/httpclient"
	"github.com/caas-team/kestrel/internal/logger"
)

// sessionHeader carries the session token on authenticated requests
const sessionHeader = "vmware-api-session-id"

// Config contains the configuration for the vCenter client
type Config struct {
	// Url is the base url of the vCenter, e.g. https://vcenter.example.com
	Url string `yaml:"url" mapstructure:"url"`
	// Username and Password authenticate the session
	Username string `yaml:"username" mapstructure:"username"`
	Password string `yaml:"password" mapstructure:"password"`
	// Timeout is the timeout for a single request
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// InsecureSkipVerify disables certificate verification.
	// Many vCenters still run with self-signed certificates.
	InsecureSkipVerify bool `yaml:"insecureSkipVerify" mapstructure:"insecureSkipVerify"`
}

// Alarm is one triggered alarm of the platform
type Alarm struct {
	// Datacenter the alarm was raised in
	Datacenter string `json:"datacenter"`
	// Name of the alarm definition
	Name string `json:"name"`
	// Object the alarm triggered on
	Object string `json:"object"`
	// Time the alarm triggered
	Time time.Time `json:"time"`
	// Acknowledged reports whether an operator acknowledged the alarm
	Acknowledged bool `json:"acknowledged"`
}

// Client queries the vCenter REST API
type Client struct {
	cfg    Config
	client *http.Client
}

// NewClient creates a new vCenter client
func NewClient(cfg Config) *Client {
	c := &http.Client{Timeout: cfg.Timeout}
	if cfg.InsecureSkipVerify {
		c.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // explicit opt-in via config
		}
	}
	return &Client{cfg: cfg, client: c}
}

// Alarms returns the triggered alarms of the vCenter.
// A session is created for the call and closed before returning.
func (c *Client) Alarms(ctx context.Context) ([]Alarm, error) {
	token, err := c.createSession(ctx)
	if err != nil {
		return nil, err
	}
	defer c.deleteSession(ctx, token)

	var alarms []Alarm
	if err := c.do(ctx, http.MethodGet, "/api/vcenter/alarms", token, &alarms); err != nil {
		return nil, err
	}
	return alarms, nil
}

// createSession logs in and returns the session token
func (c *Client) createSession(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Url+"/api/session", http.NoBody)
	if err != nil {
		return "", fmt.Errorf("failed to create session request: %w", err)
	}
	req.SetBasicAuth(c.cfg.Username, c.cfg.Password)

	resp, err := httpclient.FromContext(ctx, c.client).Do(req) //nolint:bodyclose // closed in defer
	if err != nil {
		return "", fmt.Errorf("failed to create vCenter session: %w", err)
	}
	defer c.closeBody(ctx, resp.Body)

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("vCenter session creation returned status %d", resp.StatusCode)
	}

	var token string
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("failed to decode session token: %w", err)
	}
	if strings.TrimSpace(token) == "" {
		return "", fmt.Errorf("vCenter returned an empty session token")
	}
	return token, nil
}

// deleteSession closes the session; failures are only logged
func (c *Client) deleteSession(ctx context.Context, token string) {
	log := logger.FromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.cfg.Url+"/api/session", http.NoBody)
	if err != nil {
		log.Error("Failed to create session delete request", "error", err)
		return
	}
	req.Header.Set(sessionHeader, token)

	resp, err := httpclient.FromContext(ctx, c.client).Do(req) //nolint:bodyclose // closed below
	if err != nil {
		log.Warn("Failed to close vCenter session", "error", err)
		return
	}
	c.closeBody(ctx, resp.Body)
}

// do performs one authenticated request and decodes the JSON response into out
func (c *Client) do(ctx context.Context, method, path, token string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.Url+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(sessionHeader, token)

	resp, err := httpclient.FromContext(ctx, c.client).Do(req) //nolint:bodyclose // closed in defer
	if err != nil {
		return fmt.Errorf("failed to query vCenter: %w", err)
	}
	defer c.closeBody(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("vCenter returned status %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode vCenter response: %w", err)
	}
	return nil
}

func (c *Client) closeBody(ctx context.Context, b io.ReadCloser) {
	if err := b.Close(); err != nil {
		logger.FromContext(ctx).Error("Failed to close response body", "error", err)
	}
}

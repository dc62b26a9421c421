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

package config

import (
	"context"
	"fmt"
	"net/url"

	"github.com/caas-team/kestrel/internal/logger"
)

// Validate checks the config for missing or contradictory values
func (c *Config) Validate(ctx context.Context) error {
	log := logger.FromContext(ctx)

	ok := true
	switch c.Inventory.Type {
	case LoaderFile:
		if c.Inventory.Path == "" {
			ok = false
			log.ErrorContext(ctx, "The inventory path must be set", "inventory.type", c.Inventory.Type)
		}
	case LoaderGit:
		if _, err := url.ParseRequestURI(c.Inventory.Git.RepoURL); err != nil {
			ok = false
			log.ErrorContext(ctx, "The inventory git repo url is not a valid url", "inventory.git.repoUrl", c.Inventory.Git.RepoURL)
		}
		if c.Inventory.Path == "" {
			ok = false
			log.ErrorContext(ctx, "The inventory path within the repository must be set")
		}
	default:
		ok = false
		log.ErrorContext(ctx, "Unknown inventory type", "inventory.type", c.Inventory.Type)
	}

	if c.Report.Output == "" {
		ok = false
		log.ErrorContext(ctx, "The report output path must be set")
	}

	if c.Agent.Scheme != "http" && c.Agent.Scheme != "https" {
		ok = false
		log.ErrorContext(ctx, "The agent scheme must be http or https", "agent.scheme", c.Agent.Scheme)
	}
	if c.Agent.Port <= 0 || c.Agent.Port > 65535 {
		ok = false
		log.ErrorContext(ctx, "The agent port is out of range", "agent.port", c.Agent.Port)
	}

	if c.VCenter.Url != "" {
		if _, err := url.ParseRequestURI(c.VCenter.Url); err != nil {
			ok = false
			log.ErrorContext(ctx, "The vCenter url is not a valid url", "vcenter.url", c.VCenter.Url)
		}
	}

	if err := c.Checks.DiskSpace.Validate(); err != nil {
		ok = false
		log.ErrorContext(ctx, "Invalid disk space check config", "error", err)
	}
	for role, sc := range c.Checks.Services {
		cfg := sc
		if err := cfg.Validate(); err != nil {
			ok = false
			log.ErrorContext(ctx, "Invalid service check config", "role", role, "error", err)
		}
	}
	for role, fc := range c.Checks.FileSize {
		cfg := fc
		if err := cfg.Validate(); err != nil {
			ok = false
			log.ErrorContext(ctx, "Invalid file size check config", "role", role, "error", err)
		}
	}

	if !ok {
		return fmt.Errorf("validation of configuration failed")
	}
	return nil
}

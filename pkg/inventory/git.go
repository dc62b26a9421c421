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

package inventory

import (
	"context"
	"fmt"

	"github.com/go-git/go-billy/v5/memfs"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/storage/memory"

	"github.com/caas-team/kestrel/internal/logger"
)

var _ Loader = (*GitLoader)(nil)

// GitConfig contains the configuration for the git inventory loader
type GitConfig struct {
	// RepoURL is the URL of the git repository holding the inventory
	RepoURL string `yaml:"repoUrl" mapstructure:"repoUrl"`
	// Token is the personal access token used to authenticate with the repository
	Token string `yaml:"token" mapstructure:"token"`
}

// GitLoader fetches the inventory csv from a git repository.
// The repository is cloned into an in-memory filesystem on every load.
type GitLoader struct {
	cfg GitConfig
	// path is the location of the inventory csv within the repository
	path string
}

// NewGitLoader creates a git loader reading the csv at path inside the repository
func NewGitLoader(cfg GitConfig, path string) *GitLoader {
	return &GitLoader{cfg: cfg, path: path}
}

// Load clones the repository and parses the inventory file
func (g *GitLoader) Load(ctx context.Context) ([]Server, error) {
	log := logger.FromContext(ctx)
	log.Info("Reading inventory from git repository", "repo", g.cfg.RepoURL, "path", g.path)

	fs := memfs.New()
	opts := &git.CloneOptions{
		URL:          g.cfg.RepoURL,
		Depth:        1,
		SingleBranch: true,
	}
	if g.cfg.Token != "" {
		opts.Auth = &http.BasicAuth{
			Username: "kestrel",
			Password: g.cfg.Token,
		}
	}

	if _, err := git.CloneContext(ctx, memory.NewStorage(), fs, opts); err != nil {
		return nil, fmt.Errorf("failed to clone inventory repository: %w", err)
	}

	file, err := fs.Open(g.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open inventory file in repository: %w", err)
	}
	defer func() {
		if cErr := file.Close(); cErr != nil {
			log.Error("Failed to close inventory file", "error", cErr)
		}
	}()

	servers, err := parseCSV(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse inventory file %q: %w", g.path, err)
	}
	return servers, nil
}

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

package db

import (
	"sync"
	"time"

	"github.com/caas-team/kestrel/pkg/checks"
)

// DB holds the latest check results and the latest rendered report
// for the serve mode API.
type DB interface {
	SaveResult(server, check string, result checks.Result)
	GetResults(server string) (map[string]checks.Result, bool)
	ListResults() map[string]map[string]checks.Result
	SaveReport(doc []byte, generated time.Time)
	GetReport() (doc []byte, generated time.Time, ok bool)
}

var _ DB = (*InMemory)(nil)

// InMemory is the in-memory implementation of DB
type InMemory struct {
	// results maps server name to the results of its checks.
	// Stored values are immutable snapshot maps; a save replaces the snapshot.
	results sync.Map

	mu        sync.RWMutex
	report    []byte
	generated time.Time
}

// NewInMemory creates a new in-memory database
func NewInMemory() *InMemory {
	return &InMemory{}
}

// SaveResult stores the result of one check run for a server
func (i *InMemory) SaveResult(server, check string, result checks.Result) {
	next := map[string]checks.Result{check: result}
	if prev, ok := i.results.Load(server); ok {
		for name, res := range prev.(map[string]checks.Result) {
			if name != check {
				next[name] = res
			}
		}
	}
	i.results.Store(server, next)
}

// GetResults returns a copy of the stored results of one server
func (i *InMemory) GetResults(server string) (map[string]checks.Result, bool) {
	tmp, ok := i.results.Load(server)
	if !ok {
		return nil, false
	}

	snapshot := tmp.(map[string]checks.Result)
	results := make(map[string]checks.Result, len(snapshot))
	for name, res := range snapshot {
		results[name] = res
	}
	return results, true
}

// ListResults returns a copy of all stored results keyed by server name
func (i *InMemory) ListResults() map[string]map[string]checks.Result {
	all := make(map[string]map[string]checks.Result)
	i.results.Range(func(key, value any) bool {
		server := key.(string)
		snapshot := value.(map[string]checks.Result)

		results := make(map[string]checks.Result, len(snapshot))
		for name, res := range snapshot {
			results[name] = res
		}
		all[server] = results
		return true
	})
	return all
}

// SaveReport stores the latest rendered report document
func (i *InMemory) SaveReport(doc []byte, generated time.Time) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.report = make([]byte, len(doc))
	copy(i.report, doc)
	i.generated = generated
}

// GetReport returns the latest rendered report document
func (i *InMemory) GetReport() ([]byte, time.Time, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if i.report == nil {
		return nil, time.Time{}, false
	}
	doc := make([]byte, len(i.report))
	copy(doc, i.report)
	return doc, i.generated, true
}

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

package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/caas-team/kestrel/pkg/checks"
	"github.com/caas-team/kestrel/pkg/inventory"
)

func TestReport_DangerCount(t *testing.T) {
	rep := Report{
		Groups: []Group{
			{
				Server: inventory.Server{Name: "srv01"},
				Tables: []Table{
					{Rows: []checks.Row{{Danger: true}, {}}},
					{Rows: []checks.Row{{}}},
				},
			},
			{
				Server: inventory.Server{Name: "srv02"},
				Tables: []Table{
					{Rows: []checks.Row{{Danger: true}, {Danger: true}}},
				},
			},
		},
	}
	assert.Equal(t, 3, rep.DangerCount())
	assert.Equal(t, 0, Report{}.DangerCount())
}

func TestGroupID(t *testing.T) {
	tests := []struct {
		name   string
		server string
		want   string
	}{
		{name: "plain name", server: "srv01", want: "srv-srv01"},
		{name: "upper case is lowered", server: "SRV01", want: "srv-srv01"},
		{name: "fqdn", server: "srv01.example.com", want: "srv-srv01-example-com"},
		{name: "special characters", server: "srv 01/a", want: "srv-srv-01-a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, groupID(tt.server))
		})
	}
}

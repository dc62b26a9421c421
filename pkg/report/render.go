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
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"path/filepath"
	"time"

	"github.com/Masterminds/sprig/v3"
)

//go:embed templates/*.html
var defaultTemplates embed.FS

// template file names expected in the template directory
const (
	tmplTable  = "table.html"
	tmplGroup  = "group.html"
	tmplReport = "report.html"
)

// Renderer turns a report model into the final HTML document.
// Every value sourced from remote data passes through html/template
// and is therefore escaped.
type Renderer struct {
	table  *template.Template
	group  *template.Template
	report *template.Template
}

// tableData is the template context of one check table
type tableData struct {
	Title  string
	Header []string
	Rows   []tableRow
}

type tableRow struct {
	Columns []string
	Danger  bool
}

// groupData is the template context of one server group
type groupData struct {
	ID          string
	Title       string
	Location    string
	Description string
	Content     template.HTML
}

// reportData is the template context of the document
type reportData struct {
	Title   string
	Date    time.Time
	Content template.HTML
}

// NewRenderer loads the three templates from dir.
// An empty dir selects the embedded default templates.
func NewRenderer(dir string) (*Renderer, error) {
	r := &Renderer{}
	for _, t := range []struct {
		name string
		dst  **template.Template
	}{
		{tmplTable, &r.table},
		{tmplGroup, &r.group},
		{tmplReport, &r.report},
	} {
		tmpl, err := load(dir, t.name)
		if err != nil {
			return nil, err
		}
		*t.dst = tmpl
	}
	return r, nil
}

// load parses one template file from dir or from the embedded defaults
func load(dir, name string) (*template.Template, error) {
	base := template.New(name).Funcs(sprig.HtmlFuncMap())
	if dir == "" {
		tmpl, err := base.ParseFS(defaultTemplates, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse embedded template %q: %w", name, err)
		}
		return tmpl, nil
	}

	tmpl, err := base.ParseFiles(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %q: %w", name, err)
	}
	return tmpl, nil
}

// RenderTable renders one check table fragment
func (r *Renderer) RenderTable(t Table) (template.HTML, error) {
	rows := make([]tableRow, 0, len(t.Rows))
	for _, row := range t.Rows {
		rows = append(rows, tableRow{Columns: row.Columns, Danger: row.Danger})
	}

	var buf bytes.Buffer
	if err := r.table.Execute(&buf, tableData{Title: t.Title, Header: t.Header, Rows: rows}); err != nil {
		return "", fmt.Errorf("failed to render table %q: %w", t.Title, err)
	}
	return template.HTML(buf.String()), nil //nolint:gosec // output of html/template execution
}

// RenderGroup renders the tables of one server and wraps them in the group fragment
func (r *Renderer) RenderGroup(g Group) (template.HTML, error) {
	var content template.HTML
	for _, t := range g.Tables {
		frag, err := r.RenderTable(t)
		if err != nil {
			return "", err
		}
		content += frag
	}

	data := groupData{
		ID:          groupID(g.Server.Name),
		Title:       g.Server.Name,
		Location:    g.Server.Location,
		Description: g.Server.Description,
		Content:     content,
	}

	var buf bytes.Buffer
	if err := r.group.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render group %q: %w", g.Server.Name, err)
	}
	return template.HTML(buf.String()), nil //nolint:gosec // output of html/template execution
}

// Render assembles the full document
func (r *Renderer) Render(rep Report) ([]byte, error) {
	var content template.HTML
	for _, g := range rep.Groups {
		frag, err := r.RenderGroup(g)
		if err != nil {
			return nil, err
		}
		content += frag
	}

	var buf bytes.Buffer
	if err := r.report.Execute(&buf, reportData{Title: rep.Title, Date: rep.Date, Content: content}); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return buf.Bytes(), nil
}

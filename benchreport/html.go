// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchreport

import (
	"io"

	"github.com/google/safehtml/template"

	"github.com/3dcf-labs/dcfbench/benchagg"
)

var htmlTemplate = template.Must(template.New("").Parse(`
<table class='dcfbench'>
<caption>{{.Title}}</caption>
<thead>
<tr>{{range .Header}}<th>{{.}}{{end}}
</thead>
<tbody>
{{range .Rows -}}
<tr>{{range .}}<td>{{.}}{{end}}
{{end -}}
</tbody>
</table>
`))

type htmlTable struct {
	Title  string
	Header []string
	Rows   [][]string
}

func writeHTML(w io.Writer, title string, tab [][]string) error {
	return htmlTemplate.Execute(w, htmlTable{title, tab[0], tab[1:]})
}

// WriteRunsHTML writes the run-level table to w as an HTML table with
// the given caption. Cells match WriteRunsCSV.
func WriteRunsHTML(w io.Writer, title string, runs []benchagg.RunSummary) error {
	return writeHTML(w, title, RunsTable(runs))
}

// WriteBudgetsHTML writes the budget × bin table to w as an HTML table.
func WriteBudgetsHTML(w io.Writer, title string, t *benchagg.BudgetTable) error {
	return writeHTML(w, title, BudgetsTable(t))
}

// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/l3montree-dev/vulnstats/dtos"
	"github.com/l3montree-dev/vulnstats/utils"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

// render writes v as indented json or calls renderTable
func render(w io.Writer, output string, v any, renderTable func(io.Writer)) error {
	switch output {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputTable, "":
		renderTable(w)
		return nil
	}
	return fmt.Errorf("unknown output format %q, use %s or %s", output, outputTable, outputJSON)
}

func gradeColor(grade dtos.LetterGrade) text.Colors {
	switch grade {
	case dtos.LetterGradeA, dtos.LetterGradeB:
		return text.Colors{text.FgGreen}
	case dtos.LetterGradeC:
		return text.Colors{text.FgYellow}
	default:
		return text.Colors{text.FgRed}
	}
}

func printQuota(w io.Writer, status dtos.QuotaStatusDTO) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)

	allowance := "unbounded"
	if status.Allowance != nil {
		allowance = strconv.FormatInt(*status.Allowance, 10)
	}
	tw.AppendRows([]table.Row{
		{"Enabled", status.Enabled},
		{"Count", status.Count},
		{"Allowance", allowance},
		{"Critical", status.Critical},
		{"Full", status.Full},
		{"Exceeded", status.Exceeded},
	})
	tw.Render()
}

func printGrades(w io.Writer, grades []dtos.ProjectsGradeDTO) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Grade", "Projects", "IDs"})

	for _, grade := range grades {
		ids := strings.Join(utils.Map(grade.ProjectIDs, func(id int64) string { return strconv.FormatInt(id, 10) }), ", ")
		tw.AppendRow(table.Row{gradeColor(grade.LetterGrade).Sprint(strings.ToUpper(grade.LetterGrade.String())), len(grade.ProjectIDs), text.WrapSoft(ids, 60)})
	}
	tw.Render()
}

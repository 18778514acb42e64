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
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/l3montree-dev/vulnstats/dtos"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

// countsComparison puts the uncapped counts of the vulnerability reads next to
// the stored statistic of a project
type countsComparison struct {
	ProjectID int64               `json:"projectId"`
	Reads     dtos.SeverityCounts `json:"reads"`
	Statistic dtos.SeverityCounts `json:"statistic"`
}

func NewCountsCommand() *cobra.Command {
	counts := &cobra.Command{
		Use:   "counts <projectID>",
		Short: "Compares the exact vulnerability counts of a project with its stored statistic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			reads, err := a.vulnerabilityReadRepository.CountBySeverity(nil, ids[0])
			if err != nil {
				return fmt.Errorf("could not count vulnerability reads of project %d: %w", ids[0], err)
			}

			res := countsComparison{ProjectID: ids[0], Reads: reads}
			statistic, err := a.statisticsService.GetProjectStatistic(ids[0])
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			} else if err == nil {
				res.Statistic = statistic.SeverityCounts
			}

			return render(os.Stdout, viper.GetString("output"), res, func(w io.Writer) { printCounts(w, res) })
		},
	}
	counts.Flags().StringP("output", "o", outputTable, "output format: table or json")
	return counts
}

func printCounts(w io.Writer, c countsComparison) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Severity", "Reads", "Statistic"})
	for _, severity := range dtos.AllSeverities {
		tw.AppendRow(table.Row{severity, c.Reads.Get(severity), c.Statistic.Get(severity)})
	}
	tw.AppendFooter(table.Row{"Total", c.Reads.Sum(), c.Statistic.Sum()})
	tw.Render()
}

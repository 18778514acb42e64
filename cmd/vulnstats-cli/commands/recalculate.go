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
	"log/slog"
	"strconv"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid project id %q", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func NewRecalculateCommand() *cobra.Command {
	recalculate := &cobra.Command{
		Use:   "recalculate [projectID...]",
		Short: "Recalculates the vulnerability statistics from the vulnerability reads",
		Long:  `Without arguments every unarchived project is recalculated. Pass --all to make this explicit in scripts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			if len(ids) > 0 && viper.GetBool("all") {
				return fmt.Errorf("either pass project ids or --all")
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			start := time.Now()
			if len(ids) == 0 {
				if err := a.runner.RecalculateStatistics(cmd.Context()); err != nil {
					return err
				}
				slog.Info("recalculated all projects", "duration", time.Since(start))
				return nil
			}

			bar := progressbar.Default(int64(len(ids)))
			for _, id := range ids {
				statistic, err := a.statisticsService.RecalculateProject(cmd.Context(), id)
				if err != nil {
					return fmt.Errorf("could not recalculate project %d: %w", id, err)
				}
				slog.Debug("recalculated project", "projectID", id, "total", statistic.Total, "letterGrade", statistic.LetterGrade.String())
				bar.Add(1) // nolint
			}
			slog.Info("recalculated projects", "amount", len(ids), "duration", time.Since(start))
			return nil
		},
	}
	recalculate.Flags().Bool("all", false, "recalculate every unarchived project")
	return recalculate
}

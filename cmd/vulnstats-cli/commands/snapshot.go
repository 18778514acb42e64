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
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewSnapshotCommand() *cobra.Command {
	snapshot := &cobra.Command{
		Use:   "snapshot",
		Short: "Creates the historical statistics of a day",
		Long:  `Existing snapshots of the day are kept. Running the command twice for the same date is a no-op.`,
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := time.Now()
			if raw := viper.GetString("date"); raw != "" {
				parsed, err := time.Parse(time.DateOnly, raw)
				if err != nil {
					return err
				}
				date = parsed
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			inserted, err := a.statisticsService.SnapshotHistoricalStatistics(cmd.Context(), date)
			if err != nil {
				return err
			}
			slog.Info("created historical statistics", "date", date.Format(time.DateOnly), "amount", inserted)
			return nil
		},
	}
	snapshot.Flags().String("date", "", "the day to snapshot as YYYY-MM-DD (default today)")
	return snapshot
}

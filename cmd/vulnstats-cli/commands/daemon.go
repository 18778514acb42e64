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
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/l3montree-dev/vulnstats/shared"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	daemonRecalculate = "recalculate"
	daemonSnapshot    = "snapshot"
)

var knownDaemons = []string{daemonRecalculate, daemonSnapshot}

func NewDaemonCommand() *cobra.Command {
	daemon := &cobra.Command{
		Use:   "daemon",
		Short: "daemon",
	}

	daemon.AddCommand(newTriggerCommand())
	return daemon
}

func newTriggerCommand() *cobra.Command {
	trigger := &cobra.Command{
		Use:   "trigger",
		Short: "Will trigger the background jobs once, independent of the leader election",
		RunE: func(cmd *cobra.Command, args []string) error {
			daemons := viper.GetStringSlice("daemons")
			for _, d := range daemons {
				if !slices.Contains(knownDaemons, d) {
					return fmt.Errorf("unknown daemon %q, known daemons are %v", d, knownDaemons)
				}
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			return triggerDaemons(cmd.Context(), a.runner, daemons)
		},
	}

	trigger.Flags().StringSliceP("daemons", "d", knownDaemons, "List of daemons to trigger")
	return trigger
}

func emptyOrContains(daemons []string, daemon string) bool {
	return len(daemons) == 0 || slices.Contains(daemons, daemon)
}

// triggerDaemons runs the recalculation before the snapshot, so the snapshot
// of the day already contains the fresh counts
func triggerDaemons(ctx context.Context, runner shared.DaemonRunner, daemons []string) error {
	if emptyOrContains(daemons, daemonRecalculate) {
		start := time.Now()
		if err := runner.RecalculateStatistics(ctx); err != nil {
			return fmt.Errorf("could not recalculate statistics: %w", err)
		}
		slog.Info("statistics recalculated", "duration", time.Since(start))
	}

	if emptyOrContains(daemons, daemonSnapshot) {
		start := time.Now()
		if err := runner.SnapshotHistoricalStatistics(ctx); err != nil {
			return fmt.Errorf("could not snapshot statistics: %w", err)
		}
		slog.Info("historical statistics created", "duration", time.Since(start))
	}
	return nil
}

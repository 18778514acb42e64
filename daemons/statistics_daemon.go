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

package daemons

import (
	"context"
	"log/slog"
	"time"

	"github.com/l3montree-dev/vulnstats/monitoring"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const recalculateConcurrency = 10

// RecalculateStatistics counts the vulnerabilities of every unarchived project again.
// A failing project is logged and does not stop the others.
func (runner *DaemonRunner) RecalculateStatistics(ctx context.Context) error {
	start := time.Now()
	defer func() {
		monitoring.RecalculateStatisticsDuration.Observe(time.Since(start).Minutes())
	}()

	projectIDs, err := runner.projectRepository.ListUnarchivedIDs(nil)
	if err != nil {
		return errors.Wrap(err, "could not list projects")
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(recalculateConcurrency)
	for _, projectID := range projectIDs {
		g.Go(func() error {
			monitoring.RecalculateStatisticsProjectAmount.Inc()
			if _, err := runner.statisticsService.RecalculateProject(ctx, projectID); err != nil {
				slog.Error("could not recalculate statistic", "err", err, "projectID", projectID)
				return nil
			}
			monitoring.RecalculateStatisticsProjectSuccess.Inc()
			return nil
		})
	}
	return g.Wait()
}

func (runner *DaemonRunner) SnapshotHistoricalStatistics(ctx context.Context) error {
	start := time.Now()
	defer func() {
		monitoring.SnapshotStatisticsDuration.Observe(time.Since(start).Minutes())
	}()

	inserted, err := runner.statisticsService.SnapshotHistoricalStatistics(ctx, runner.now())
	if err != nil {
		return err
	}
	slog.Info("created historical statistics", "amount", inserted)
	return nil
}

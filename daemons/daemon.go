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

	"github.com/l3montree-dev/vulnstats/database"
	"github.com/l3montree-dev/vulnstats/database/models"
	"github.com/l3montree-dev/vulnstats/monitoring"
	"github.com/l3montree-dev/vulnstats/shared"
)

const (
	recalculateStatisticsKey = "daemons.recalculateStatistics"
	snapshotStatisticsKey    = "daemons.snapshotHistoricalStatistics"
	purgeKeyValueStoreKey    = "daemons.purgeKeyValueStore"

	recalculateInterval = 12 * time.Hour
	purgeInterval       = time.Hour
)

type lastRun struct {
	Time time.Time `json:"time"`
}

func getLastRunTime(configService shared.ConfigService, key string) (time.Time, error) {
	var last lastRun

	err := configService.GetJSONConfig(key, &last)
	if err != nil && !database.IsNotFound(err) {
		slog.Error("could not get last run time", "err", err, "key", key)
		return time.Time{}, err
	} else if database.IsNotFound(err) {
		slog.Info("no last run time found. Setting to 0", "key", key)
		return time.Time{}, nil
	}

	return last.Time, nil
}

func (runner *DaemonRunner) shouldRun(key string, interval time.Duration) bool {
	lastTime, err := getLastRunTime(runner.configService, key)
	if err != nil {
		return false
	}
	return runner.now().Sub(lastTime) > interval
}

// shouldSnapshot is true once per UTC day
func (runner *DaemonRunner) shouldSnapshot() bool {
	lastTime, err := getLastRunTime(runner.configService, snapshotStatisticsKey)
	if err != nil {
		return false
	}
	return models.SnapshotDate(lastTime).Before(models.SnapshotDate(runner.now()))
}

func (runner *DaemonRunner) markRun(key string) error {
	return runner.configService.SetJSONConfig(key, lastRun{Time: runner.now()})
}

func (runner *DaemonRunner) runDaemons(ctx context.Context) {
	daemonStart := time.Now()
	slog.Info("starting background jobs", "time", daemonStart)

	// recalculating first makes the snapshot of the day use fresh counts
	if runner.shouldRun(recalculateStatisticsKey, recalculateInterval) {
		start := time.Now()
		if err := runner.RecalculateStatistics(ctx); err != nil {
			monitoring.Alert("could not recalculate statistics", err)
		} else {
			if err := runner.markRun(recalculateStatisticsKey); err != nil {
				slog.Error("could not mark statistics as recalculated", "err", err)
			}
			slog.Info("statistics recalculated", "duration", time.Since(start))
		}
	}

	if runner.shouldSnapshot() {
		start := time.Now()
		if err := runner.SnapshotHistoricalStatistics(ctx); err != nil {
			monitoring.Alert("could not snapshot statistics", err)
		} else {
			if err := runner.markRun(snapshotStatisticsKey); err != nil {
				slog.Error("could not mark statistics as snapshotted", "err", err)
			}
			slog.Info("historical statistics snapshotted", "duration", time.Since(start))
		}
	}

	if purger, ok := runner.keyValueStore.(expiredEntriesPurger); ok && runner.shouldRun(purgeKeyValueStoreKey, purgeInterval) {
		purged, err := purger.PurgeExpired(ctx)
		if err != nil {
			slog.Error("could not purge expired key value entries", "err", err)
		} else {
			if err := runner.markRun(purgeKeyValueStoreKey); err != nil {
				slog.Error("could not mark key value store as purged", "err", err)
			}
			slog.Info("purged expired key value entries", "amount", purged)
		}
	}

	slog.Info("background jobs finished", "duration", time.Since(daemonStart))
}

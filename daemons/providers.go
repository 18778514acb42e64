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
	"github.com/l3montree-dev/vulnstats/shared"
	"go.uber.org/fx"
)

const tickInterval = 5 * time.Minute

// expiredEntriesPurger is implemented by key value stores which keep expired entries around
type expiredEntriesPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// DaemonRunner encapsulates daemon dependencies and lifecycle
type DaemonRunner struct {
	configService      shared.ConfigService
	projectRepository  shared.ProjectRepository
	statisticsService  shared.StatisticsService
	quotaService       shared.VulnerabilityQuotaService
	keyValueStore      shared.KeyValueStore
	broker             shared.PubSubBroker
	leaderElector      shared.LeaderElector
	featureFlagService shared.FeatureFlagService

	now func() time.Time
}

// NewDaemonRunner creates a new daemon runner with injected dependencies
func NewDaemonRunner(
	configService shared.ConfigService,
	projectRepository shared.ProjectRepository,
	statisticsService shared.StatisticsService,
	quotaService shared.VulnerabilityQuotaService,
	keyValueStore shared.KeyValueStore,
	broker shared.PubSubBroker,
	leaderElector shared.LeaderElector,
	featureFlagService shared.FeatureFlagService,
) *DaemonRunner {
	return &DaemonRunner{
		configService:      configService,
		projectRepository:  projectRepository,
		statisticsService:  statisticsService,
		quotaService:       quotaService,
		keyValueStore:      keyValueStore,
		broker:             broker,
		leaderElector:      leaderElector,
		featureFlagService: featureFlagService,
		now:                time.Now,
	}
}

// Start initiates all background daemons
func (runner *DaemonRunner) Start() {
	if err := runner.SubscribeQuotaValidation(context.Background()); err != nil {
		slog.Error("could not subscribe to statistic updates", "err", err)
	}

	go func() {
		runner.tick()
		ticker := time.NewTicker(tickInterval)
		defer ticker.Stop()
		for range ticker.C {
			runner.tick()
		}
	}()
}

func (runner *DaemonRunner) tick() {
	defer func() {
		monitoring.RecoverAndAlert("daemon tick panicked", recover())
	}()
	if runner.leaderElector.IsLeader() {
		slog.Info("this instance is the leader - running background jobs")
		runner.runDaemons(context.Background())
	} else {
		slog.Info("not the leader - skipping background jobs")
	}
}

var _ shared.DaemonRunner = (*DaemonRunner)(nil)

var Module = fx.Module("daemons",
	fx.Provide(fx.Annotate(NewDaemonRunner, fx.As(new(shared.DaemonRunner)))),
)

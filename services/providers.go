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

package services

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/l3montree-dev/vulnstats/common"
	"github.com/l3montree-dev/vulnstats/shared"
	"go.uber.org/fx"
)

const (
	quotaCacheSize   = 10_000
	quotaCacheMaxTTL = 24 * time.Hour
)

// Module provides all service-layer constructors
var Module = fx.Options(
	fx.Provide(fx.Annotate(NewConfigService, fx.As(new(shared.ConfigService)))),
	fx.Provide(newLeaderElector),
	fx.Provide(fx.Annotate(NewFeatureFlagService, fx.As(new(shared.FeatureFlagService)))),
	fx.Provide(fx.Annotate(NewQuotaLimitProvider, fx.As(new(shared.QuotaLimitProvider)))),
	fx.Provide(newKeyValueStore),
	fx.Provide(fx.Annotate(NewStatisticsService, fx.As(new(shared.StatisticsService)))),
	fx.Provide(fx.Annotate(NewProjectsGradeService, fx.As(new(shared.ProjectsGradeService)))),
	fx.Provide(fx.Annotate(NewVulnerabilityQuotaService, fx.As(new(shared.VulnerabilityQuotaService)))),
)

func newLeaderElector(lc fx.Lifecycle, configService shared.ConfigService) shared.LeaderElector {
	elector := NewDatabaseLeaderElector(configService)
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			elector.Start()
			return nil
		},
		OnStop: func(context.Context) error {
			elector.Stop()
			return nil
		},
	})
	return elector
}

// newKeyValueStore selects the quota cache through QUOTA_CACHE_BACKEND.
// "memory" keeps the entries in a replicated lru, everything else uses the database.
func newKeyValueStore(lc fx.Lifecycle, repository shared.KeyValueRepository, broker shared.PubSubBroker) shared.KeyValueStore {
	backend := os.Getenv("QUOTA_CACHE_BACKEND")
	slog.Info("using quota cache backend", "backend", backend)
	if backend != "memory" {
		return common.NewDatabaseStore(repository)
	}

	store := common.NewReplicatedStore(common.NewLRUStore(quotaCacheSize, quotaCacheMaxTTL), broker)
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return store.Start(ctx)
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
	return store
}

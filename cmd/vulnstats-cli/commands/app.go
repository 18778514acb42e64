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
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/l3montree-dev/vulnstats/common"
	"github.com/l3montree-dev/vulnstats/daemons"
	"github.com/l3montree-dev/vulnstats/database"
	"github.com/l3montree-dev/vulnstats/database/repositories"
	"github.com/l3montree-dev/vulnstats/services"
	"github.com/l3montree-dev/vulnstats/shared"
)

// app wires the services without fx, the commands are one shot processes
type app struct {
	pool *pgxpool.Pool
	db   shared.DB

	projectRepository            shared.ProjectRepository
	namespaceRepository          shared.NamespaceRepository
	applicationSettingRepository shared.ApplicationSettingRepository

	statisticsService shared.StatisticsService
	gradeService      shared.ProjectsGradeService
	quotaService      shared.VulnerabilityQuotaService
	featureFlags      shared.FeatureFlagService
	runner            shared.DaemonRunner

	vulnerabilityReadRepository shared.VulnerabilityReadRepository
}

func newApp() (*app, error) {
	shared.LoadConfig() // nolint
	pool := database.NewPgxConnPool(database.GetPoolConfigFromEnv())
	db := database.NewGormDB(pool)

	broker, err := database.NewPostgreSQLBroker(pool)
	if err != nil {
		return nil, err
	}

	projectRepository := repositories.NewProjectRepository(db)
	namespaceRepository := repositories.NewNamespaceRepository(db)
	applicationSettingRepository := repositories.NewApplicationSettingRepository(db)
	statisticRepository := repositories.NewVulnerabilityStatisticRepository(db)
	vulnerabilityReadRepository := repositories.NewVulnerabilityReadRepository(db)
	configService := services.NewConfigService(repositories.NewConfigRepository(db))

	statisticsService := services.NewStatisticsService(
		projectRepository,
		namespaceRepository,
		statisticRepository,
		repositories.NewVulnerabilityNamespaceStatisticRepository(db),
		repositories.NewVulnerabilityHistoricalStatisticRepository(db),
		vulnerabilityReadRepository,
		broker,
	)
	featureFlags := services.NewFeatureFlagService()
	// the in memory store would die with the process
	store := common.NewDatabaseStore(repositories.NewKeyValueRepository(db))
	quotaService := services.NewVulnerabilityQuotaService(
		featureFlags,
		services.NewQuotaLimitProvider(namespaceRepository, applicationSettingRepository),
		statisticRepository,
		projectRepository,
		store,
	)

	return &app{
		pool:                         pool,
		db:                           db,
		projectRepository:            projectRepository,
		namespaceRepository:          namespaceRepository,
		applicationSettingRepository: applicationSettingRepository,
		statisticsService:            statisticsService,
		gradeService:                 services.NewProjectsGradeService(statisticRepository, projectRepository),
		quotaService:                 quotaService,
		featureFlags:                 featureFlags,
		runner:                       daemons.NewDaemonRunner(configService, projectRepository, statisticsService, quotaService, store, broker, nil, featureFlags),
		vulnerabilityReadRepository:  vulnerabilityReadRepository,
	}, nil
}

func (a *app) Close() {
	a.pool.Close()
}

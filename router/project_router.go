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

package router

import (
	"github.com/l3montree-dev/vulnstats/controllers"
	"github.com/l3montree-dev/vulnstats/middlewares"
	"github.com/l3montree-dev/vulnstats/shared"
	"github.com/labstack/echo/v4"
)

type ProjectRouter struct {
	*echo.Group
}

func NewProjectRouter(
	apiV1Router APIV1Router,
	statisticController *controllers.VulnerabilityStatisticController,
	quotaController *controllers.VulnerabilityQuotaController,
	projectRepository shared.ProjectRepository,
) ProjectRouter {
	/**
	Project scoped router
	All routes below this line are scoped to a specific project.
	*/
	projectRouter := apiV1Router.Group.Group("/projects/:projectID", middlewares.ProjectMiddleware(projectRepository))

	projectRouter.GET("/vulnerability-statistic/", statisticController.GetProjectStatistic)
	projectRouter.PUT("/vulnerability-statistic/", statisticController.SetProjectCounts)
	projectRouter.POST("/vulnerability-statistic/recalculate/", statisticController.RecalculateProject)
	projectRouter.GET("/vulnerability-statistic/history/", statisticController.GetProjectHistory)

	projectRouter.GET("/vulnerability-quota/", quotaController.GetQuota)
	projectRouter.POST("/vulnerability-quota/validate/", quotaController.ValidateQuota)

	return ProjectRouter{
		Group: projectRouter,
	}
}

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
	"github.com/labstack/echo/v4"
)

// VulnerabilityStatisticsRouter holds the routes which span several projects
type VulnerabilityStatisticsRouter struct {
	*echo.Group
}

func NewVulnerabilityStatisticsRouter(
	apiV1Router APIV1Router,
	statisticController *controllers.VulnerabilityStatisticController,
	gradesController *controllers.VulnerabilityGradesController,
) VulnerabilityStatisticsRouter {
	apiV1Router.POST("/vulnerability-statistics/bulk/", statisticController.BulkSetCounts)
	apiV1Router.GET("/security-dashboard/vulnerability-grades/", gradesController.SecurityDashboardGrades)

	return VulnerabilityStatisticsRouter{
		Group: apiV1Router.Group,
	}
}

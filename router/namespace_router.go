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

type NamespaceRouter struct {
	*echo.Group
}

func NewNamespaceRouter(
	apiV1Router APIV1Router,
	statisticController *controllers.VulnerabilityStatisticController,
	gradesController *controllers.VulnerabilityGradesController,
	namespaceRepository shared.NamespaceRepository,
) NamespaceRouter {
	namespaceRouter := apiV1Router.Group.Group("/namespaces/:namespaceID", middlewares.NamespaceMiddleware(namespaceRepository))

	namespaceRouter.GET("/vulnerability-statistic/", statisticController.GetNamespaceStatistic)
	namespaceRouter.GET("/vulnerability-statistic/history/", statisticController.GetNamespaceHistory)
	namespaceRouter.GET("/vulnerability-grades/", gradesController.NamespaceGrades)

	return NamespaceRouter{
		Group: namespaceRouter,
	}
}

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

package middlewares

import (
	"github.com/l3montree-dev/vulnstats/database"
	"github.com/l3montree-dev/vulnstats/shared"
	"github.com/labstack/echo/v4"
)

// all middlewares which modify the current request context and fetch some data from the database

func ProjectMiddleware(repository shared.ProjectRepository) shared.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx shared.Context) error {
			projectID, err := shared.GetIDParam(ctx, "projectID")
			if err != nil {
				return echo.NewHTTPError(400, "invalid project id").WithInternal(err)
			}

			project, err := repository.Read(projectID)
			if err != nil {
				if database.IsNotFound(err) {
					return echo.NewHTTPError(404, "could not find project").WithInternal(err)
				}
				return echo.NewHTTPError(500, "could not fetch project").WithInternal(err)
			}

			shared.SetProject(ctx, project)
			return next(ctx)
		}
	}
}

func NamespaceMiddleware(repository shared.NamespaceRepository) shared.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx shared.Context) error {
			namespaceID, err := shared.GetIDParam(ctx, "namespaceID")
			if err != nil {
				return echo.NewHTTPError(400, "invalid namespace id").WithInternal(err)
			}

			namespace, err := repository.Read(namespaceID)
			if err != nil {
				if database.IsNotFound(err) {
					return echo.NewHTTPError(404, "could not find namespace").WithInternal(err)
				}
				return echo.NewHTTPError(500, "could not fetch namespace").WithInternal(err)
			}

			shared.SetNamespace(ctx, namespace)
			return next(ctx)
		}
	}
}

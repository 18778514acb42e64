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

package controllers

import (
	"github.com/l3montree-dev/vulnstats/shared"
	"github.com/l3montree-dev/vulnstats/transformer"
	"github.com/labstack/echo/v4"
)

type VulnerabilityGradesController struct {
	projectsGradeService shared.ProjectsGradeService
	projectRepository    shared.ProjectRepository
}

func NewVulnerabilityGradesController(projectsGradeService shared.ProjectsGradeService, projectRepository shared.ProjectRepository) *VulnerabilityGradesController {
	return &VulnerabilityGradesController{
		projectsGradeService: projectsGradeService,
		projectRepository:    projectRepository,
	}
}

func gradesOptions(ctx shared.Context) (shared.GradesOptions, bool, error) {
	filter, err := shared.GetLetterGradeQuery(ctx, "letterGrade")
	if err != nil {
		return shared.GradesOptions{}, false, err
	}
	includeSubgroups, err := shared.GetBoolQuery(ctx, "includeSubgroups", false)
	if err != nil {
		return shared.GradesOptions{}, false, err
	}
	withProjects, err := shared.GetBoolQuery(ctx, "withProjects", false)
	if err != nil {
		return shared.GradesOptions{}, false, err
	}
	return shared.GradesOptions{Filter: filter, IncludeSubgroups: includeSubgroups}, withProjects, nil
}

func (c *VulnerabilityGradesController) gradesFor(ctx shared.Context, scope shared.VulnerableScope, opts shared.GradesOptions, withProjects bool) error {
	result, err := c.projectsGradeService.GradesFor(ctx.Request().Context(), []shared.VulnerableScope{scope}, opts)
	if err != nil {
		return httpError(err, "could not fetch vulnerability grades")
	}

	res, err := transformer.ProjectsGradesToDTO(result[0].Grades, withProjects)
	if err != nil {
		return echo.NewHTTPError(500, "could not fetch graded projects").WithInternal(err)
	}
	return ctx.JSON(200, res)
}

func (c *VulnerabilityGradesController) NamespaceGrades(ctx shared.Context) error {
	opts, withProjects, err := gradesOptions(ctx)
	if err != nil {
		return echo.NewHTTPError(400, err.Error()).WithInternal(err)
	}
	return c.gradesFor(ctx, shared.NamespaceScope(shared.GetNamespace(ctx)), opts, withProjects)
}

// SecurityDashboardGrades grades the given projects. Unknown and archived projects are dropped.
func (c *VulnerabilityGradesController) SecurityDashboardGrades(ctx shared.Context) error {
	opts, withProjects, err := gradesOptions(ctx)
	if err != nil {
		return echo.NewHTTPError(400, err.Error()).WithInternal(err)
	}
	projectIDs, err := shared.GetIDListQuery(ctx, "projectIDs")
	if err != nil {
		return echo.NewHTTPError(400, err.Error()).WithInternal(err)
	}

	related, err := c.projectRepository.FilterRelated(nil, projectIDs)
	if err != nil {
		return echo.NewHTTPError(500, "could not fetch projects").WithInternal(err)
	}
	return c.gradesFor(ctx, shared.SecurityDashboardScope(related), opts, withProjects)
}

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
	"time"

	"github.com/l3montree-dev/vulnstats/dtos"
	"github.com/l3montree-dev/vulnstats/shared"
	"github.com/l3montree-dev/vulnstats/transformer"
	"github.com/l3montree-dev/vulnstats/utils"
	"github.com/labstack/echo/v4"
)

type VulnerabilityStatisticController struct {
	statisticsService shared.StatisticsService
	now               func() time.Time
}

func NewVulnerabilityStatisticController(statisticsService shared.StatisticsService) *VulnerabilityStatisticController {
	return &VulnerabilityStatisticController{
		statisticsService: statisticsService,
		now:               time.Now,
	}
}

func (c *VulnerabilityStatisticController) GetProjectStatistic(ctx shared.Context) error {
	project := shared.GetProject(ctx)

	statistic, err := c.statisticsService.GetProjectStatistic(project.ID)
	if err != nil {
		return httpError(err, "could not find vulnerability statistic")
	}
	return ctx.JSON(200, transformer.VulnerabilityStatisticToDTO(statistic))
}

func (c *VulnerabilityStatisticController) SetProjectCounts(ctx shared.Context) error {
	project := shared.GetProject(ctx)

	var req dtos.SetCountsRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "could not bind request").WithInternal(err)
	}

	statistic, err := c.statisticsService.SetLatestCounts(ctx.Request().Context(), project.ID, req.Counts, req.PipelineID)
	if err != nil {
		return httpError(err, "could not set vulnerability counts")
	}
	return ctx.JSON(200, transformer.VulnerabilityStatisticToDTO(statistic))
}

func (c *VulnerabilityStatisticController) RecalculateProject(ctx shared.Context) error {
	project := shared.GetProject(ctx)

	statistic, err := c.statisticsService.RecalculateProject(ctx.Request().Context(), project.ID)
	if err != nil {
		return httpError(err, "could not recalculate vulnerability statistic")
	}
	return ctx.JSON(200, transformer.VulnerabilityStatisticToDTO(statistic))
}

func (c *VulnerabilityStatisticController) GetProjectHistory(ctx shared.Context) error {
	project := shared.GetProject(ctx)

	start, end, err := shared.GetDateRangeQuery(ctx, c.now())
	if err != nil {
		return echo.NewHTTPError(400, err.Error()).WithInternal(err)
	}

	history, err := c.statisticsService.GetProjectHistory(project.ID, start, end)
	if err != nil {
		return httpError(err, "could not fetch vulnerability history")
	}
	return ctx.JSON(200, utils.Map(history, transformer.HistoricalStatisticToDTO))
}

func (c *VulnerabilityStatisticController) BulkSetCounts(ctx shared.Context) error {
	var req dtos.BulkSetCountsRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "could not bind request").WithInternal(err)
	}
	if err := shared.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, err.Error()).WithInternal(err)
	}

	statistics, err := c.statisticsService.BulkSetLatestCounts(ctx.Request().Context(), req.Items)
	if err != nil {
		return httpError(err, "could not set vulnerability counts")
	}
	return ctx.JSON(200, utils.Map(statistics, transformer.VulnerabilityStatisticToDTO))
}

func (c *VulnerabilityStatisticController) GetNamespaceStatistic(ctx shared.Context) error {
	namespace := shared.GetNamespace(ctx)

	statistic, err := c.statisticsService.GetNamespaceStatistic(namespace.ID)
	if err != nil {
		return httpError(err, "could not find vulnerability statistic")
	}
	return ctx.JSON(200, transformer.NamespaceStatisticToDTO(statistic))
}

func (c *VulnerabilityStatisticController) GetNamespaceHistory(ctx shared.Context) error {
	namespace := shared.GetNamespace(ctx)

	start, end, err := shared.GetDateRangeQuery(ctx, c.now())
	if err != nil {
		return echo.NewHTTPError(400, err.Error()).WithInternal(err)
	}

	history, err := c.statisticsService.GetNamespaceHistory(namespace.ID, start, end)
	if err != nil {
		return httpError(err, "could not fetch vulnerability history")
	}
	return ctx.JSON(200, utils.Map(history, transformer.NamespaceHistoricalStatisticToDTO))
}

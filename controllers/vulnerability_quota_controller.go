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

type VulnerabilityQuotaController struct {
	quotaService       shared.VulnerabilityQuotaService
	featureFlagService shared.FeatureFlagService
}

func NewVulnerabilityQuotaController(quotaService shared.VulnerabilityQuotaService, featureFlagService shared.FeatureFlagService) *VulnerabilityQuotaController {
	return &VulnerabilityQuotaController{
		quotaService:       quotaService,
		featureFlagService: featureFlagService,
	}
}

func (c *VulnerabilityQuotaController) quotaStatus(ctx shared.Context, validate bool) error {
	project := shared.GetProject(ctx)
	reqCtx := ctx.Request().Context()

	quota, err := c.quotaService.For(reqCtx, project)
	if err != nil {
		return httpError(err, "could not resolve vulnerability quota")
	}

	if validate {
		if err := quota.Validate(reqCtx); err != nil {
			return echo.NewHTTPError(500, "could not validate vulnerability quota").WithInternal(err)
		}
	}

	info, err := quota.Information(reqCtx)
	if err != nil {
		return echo.NewHTTPError(500, "could not fetch vulnerability quota").WithInternal(err)
	}
	return ctx.JSON(200, transformer.QuotaStatusToDTO(quota, info, c.featureFlagService.IsEnabled(shared.FeatureVulnerabilityQuota)))
}

func (c *VulnerabilityQuotaController) GetQuota(ctx shared.Context) error {
	return c.quotaStatus(ctx, false)
}

func (c *VulnerabilityQuotaController) ValidateQuota(ctx shared.Context) error {
	return c.quotaStatus(ctx, true)
}

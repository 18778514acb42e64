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

package repositories

import (
	"github.com/l3montree-dev/vulnstats/shared"
	"go.uber.org/fx"
)

// Module provides all repository constructors as their interfaces
var Module = fx.Options(
	fx.Provide(fx.Annotate(NewConfigRepository, fx.As(new(shared.ConfigRepository)))),
	fx.Provide(fx.Annotate(NewNamespaceRepository, fx.As(new(shared.NamespaceRepository)))),
	fx.Provide(fx.Annotate(NewProjectRepository, fx.As(new(shared.ProjectRepository)))),
	fx.Provide(fx.Annotate(NewApplicationSettingRepository, fx.As(new(shared.ApplicationSettingRepository)))),
	fx.Provide(fx.Annotate(NewVulnerabilityReadRepository, fx.As(new(shared.VulnerabilityReadRepository)))),
	fx.Provide(fx.Annotate(NewVulnerabilityStatisticRepository, fx.As(new(shared.VulnerabilityStatisticRepository)))),
	fx.Provide(fx.Annotate(NewVulnerabilityNamespaceStatisticRepository, fx.As(new(shared.VulnerabilityNamespaceStatisticRepository)))),
	fx.Provide(fx.Annotate(NewVulnerabilityHistoricalStatisticRepository, fx.As(new(shared.VulnerabilityHistoricalStatisticRepository)))),
	fx.Provide(fx.Annotate(NewKeyValueRepository, fx.As(new(shared.KeyValueRepository)))),
)

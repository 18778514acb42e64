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
	"github.com/l3montree-dev/vulnstats/database/models"
	"github.com/l3montree-dev/vulnstats/shared"
)

type quotaLimitProvider struct {
	namespaceRepository          shared.NamespaceRepository
	applicationSettingRepository shared.ApplicationSettingRepository
}

func NewQuotaLimitProvider(namespaceRepository shared.NamespaceRepository, applicationSettingRepository shared.ApplicationSettingRepository) *quotaLimitProvider {
	return &quotaLimitProvider{
		namespaceRepository:          namespaceRepository,
		applicationSettingRepository: applicationSettingRepository,
	}
}

func (p *quotaLimitProvider) ProjectLimit(project models.Project) *int64 {
	return project.MaxNumberOfVulnerabilities
}

func (p *quotaLimitProvider) NamespaceLimit(project models.Project) (*int64, error) {
	return p.namespaceRepository.NearestVulnerabilityLimit(nil, project.TraversalIDs)
}

func (p *quotaLimitProvider) ApplicationLimit() (*int64, error) {
	setting, err := p.applicationSettingRepository.Get(nil)
	if err != nil {
		return nil, err
	}
	return setting.MaxNumberOfVulnerabilitiesPerProject, nil
}

var _ shared.QuotaLimitProvider = (*quotaLimitProvider)(nil)

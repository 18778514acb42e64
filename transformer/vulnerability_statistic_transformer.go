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

package transformer

import (
	"time"

	"github.com/l3montree-dev/vulnstats/database/models"
	"github.com/l3montree-dev/vulnstats/dtos"
	"github.com/l3montree-dev/vulnstats/shared"
	"github.com/l3montree-dev/vulnstats/utils"
)

func VulnerabilityStatisticToDTO(statistic models.VulnerabilityStatistic) dtos.VulnerabilityStatisticDTO {
	grade := statistic.LetterGrade
	return dtos.VulnerabilityStatisticDTO{
		ProjectID:        utils.Ptr(statistic.ProjectID),
		Counts:           statistic.SeverityCounts,
		Total:            statistic.Total,
		LetterGrade:      &grade,
		TraversalIDs:     nonNilIDs(statistic.TraversalIDs),
		Archived:         statistic.Archived,
		LatestPipelineID: statistic.LatestPipelineID,
		UpdatedAt:        statistic.UpdatedAt,
	}
}

// a namespace has no letter grade of its own
func NamespaceStatisticToDTO(statistic models.VulnerabilityNamespaceStatistic) dtos.VulnerabilityStatisticDTO {
	return dtos.VulnerabilityStatisticDTO{
		NamespaceID:  utils.Ptr(statistic.NamespaceID),
		Counts:       statistic.SeverityCounts,
		Total:        statistic.Total,
		TraversalIDs: nonNilIDs(statistic.TraversalIDs),
		UpdatedAt:    statistic.UpdatedAt,
	}
}

func HistoricalStatisticToDTO(statistic models.VulnerabilityHistoricalStatistic) dtos.HistoricalStatisticDTO {
	grade := statistic.LetterGrade
	return dtos.HistoricalStatisticDTO{
		Date:        statistic.Date.Format(time.DateOnly),
		Counts:      statistic.SeverityCounts,
		Total:       statistic.Total,
		LetterGrade: &grade,
	}
}

func NamespaceHistoricalStatisticToDTO(statistic models.VulnerabilityNamespaceHistoricalStatistic) dtos.HistoricalStatisticDTO {
	return dtos.HistoricalStatisticDTO{
		Date:   statistic.Date.Format(time.DateOnly),
		Counts: statistic.SeverityCounts,
		Total:  statistic.Total,
	}
}

func GradedProjectToDTO(project models.Project) dtos.GradedProjectDTO {
	dto := dtos.GradedProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Slug:        project.Slug,
		NamespaceID: project.NamespaceID,
	}
	if project.VulnerabilityStatistic != nil {
		dto.Counts = project.VulnerabilityStatistic.SeverityCounts
		dto.Total = project.VulnerabilityStatistic.Total
	}
	return dto
}

// ProjectsGradesToDTO loads the projects of every grade if withProjects is set.
// Only the projects of the grade's scope are returned, the project ids stay untouched.
func ProjectsGradesToDTO(grades []*shared.ProjectsGrade, withProjects bool) ([]dtos.ProjectsGradeDTO, error) {
	res := make([]dtos.ProjectsGradeDTO, 0, len(grades))
	for _, grade := range grades {
		dto := dtos.ProjectsGradeDTO{
			LetterGrade: grade.LetterGrade,
			ProjectIDs:  grade.ProjectIDs,
		}
		if withProjects {
			projects, err := grade.Projects()
			if err != nil {
				return nil, err
			}
			dto.Projects = utils.Map(projects, GradedProjectToDTO)
		}
		res = append(res, dto)
	}
	return res, nil
}

func QuotaStatusToDTO(quota shared.VulnerabilityQuota, info dtos.QuotaInformationDTO, enabled bool) dtos.QuotaStatusDTO {
	dto := dtos.QuotaStatusDTO{
		QuotaInformationDTO: info,
		Enabled:             enabled,
		Count:               quota.Count(),
	}
	if allowance, ok := quota.Allowance(); ok {
		dto.Allowance = &allowance
	}
	return dto
}

func nonNilIDs(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}

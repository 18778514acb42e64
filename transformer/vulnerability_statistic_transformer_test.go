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
	"testing"
	"time"

	"github.com/l3montree-dev/vulnstats/database/models"
	databasetypes "github.com/l3montree-dev/vulnstats/database/types"
	"github.com/l3montree-dev/vulnstats/dtos"
	"github.com/l3montree-dev/vulnstats/mocks"
	"github.com/l3montree-dev/vulnstats/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVulnerabilityStatisticToDTO(t *testing.T) {
	t.Run("should carry the derived values", func(t *testing.T) {
		dto := VulnerabilityStatisticToDTO(models.VulnerabilityStatistic{
			ProjectID:      7,
			SeverityCounts: dtos.SeverityCounts{High: 2, Low: 1},
			Total:          3,
			LetterGrade:    dtos.LetterGradeD,
			TraversalIDs:   databasetypes.TraversalIDs{1, 5},
		})
		require.NotNil(t, dto.ProjectID)
		assert.Equal(t, int64(7), *dto.ProjectID)
		assert.Nil(t, dto.NamespaceID)
		assert.Equal(t, dtos.LetterGradeD, *dto.LetterGrade)
		assert.Equal(t, []int64{1, 5}, dto.TraversalIDs)
		assert.Equal(t, 3, dto.Total)
	})

	t.Run("should never return nil traversal ids", func(t *testing.T) {
		dto := NamespaceStatisticToDTO(models.VulnerabilityNamespaceStatistic{NamespaceID: 1})
		assert.NotNil(t, dto.TraversalIDs)
		assert.Nil(t, dto.LetterGrade)
	})
}

func TestHistoricalStatisticToDTO(t *testing.T) {
	dto := HistoricalStatisticToDTO(models.VulnerabilityHistoricalStatistic{
		Date:        time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC),
		LetterGrade: dtos.LetterGradeB,
		Total:       1,
	})
	assert.Equal(t, "2026-02-03", dto.Date)
	assert.Equal(t, dtos.LetterGradeB, *dto.LetterGrade)
}

func TestProjectsGradesToDTO(t *testing.T) {
	project := models.Project{
		Model:        models.Model{ID: 1},
		Name:         "a",
		TraversalIDs: databasetypes.TraversalIDs{1},
		VulnerabilityStatistic: &models.VulnerabilityStatistic{
			SeverityCounts: dtos.SeverityCounts{Critical: 1},
			Total:          1,
		},
	}
	loader := shared.NewProjectsLoader(func(ids []int64) ([]models.Project, error) {
		return []models.Project{project}, nil
	})
	scope := shared.NamespaceScope(models.Namespace{Model: models.Model{ID: 1}, TraversalIDs: databasetypes.TraversalIDs{1}})
	grades := []*shared.ProjectsGrade{
		shared.NewProjectsGrade(scope, dtos.LetterGradeF, []int64{1}, false, loader),
	}

	t.Run("should only add ids without projects", func(t *testing.T) {
		res, err := ProjectsGradesToDTO(grades, false)
		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, []int64{1}, res[0].ProjectIDs)
		assert.Nil(t, res[0].Projects)
	})

	t.Run("should add the projects with their counts", func(t *testing.T) {
		res, err := ProjectsGradesToDTO(grades, true)
		require.NoError(t, err)
		require.Len(t, res[0].Projects, 1)
		assert.Equal(t, 1, res[0].Projects[0].Counts.Critical)
	})
}

func TestQuotaStatusToDTO(t *testing.T) {
	t.Run("should leave the allowance empty for unbounded projects", func(t *testing.T) {
		quota := mocks.NewVulnerabilityQuota(t)
		quota.On("Count").Return(12)
		quota.On("Allowance").Return(int64(0), false)

		dto := QuotaStatusToDTO(quota, dtos.QuotaInformationDTO{Full: "false", Critical: "false", Exceeded: "false"}, true)
		assert.Nil(t, dto.Allowance)
		assert.Equal(t, 12, dto.Count)
		assert.Equal(t, "false", dto.Full)
	})

	t.Run("should set the allowance", func(t *testing.T) {
		quota := mocks.NewVulnerabilityQuota(t)
		quota.On("Count").Return(100)
		quota.On("Allowance").Return(int64(100), true)

		dto := QuotaStatusToDTO(quota, dtos.QuotaInformationDTO{Full: "true"}, true)
		require.NotNil(t, dto.Allowance)
		assert.Equal(t, int64(100), *dto.Allowance)
	})
}

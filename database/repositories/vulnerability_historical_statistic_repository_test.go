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

package repositories_test

import (
	"testing"
	"time"

	"github.com/l3montree-dev/vulnstats/database/models"
	"github.com/l3montree-dev/vulnstats/database/repositories"
	"github.com/l3montree-dev/vulnstats/dtos"
	"github.com/l3montree-dev/vulnstats/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVulnerabilityHistoricalStatisticRepository(t *testing.T) {
	db := tests.InitSQLiteDB(t)
	h := tests.CreateHierarchy(t, db)
	repo := repositories.NewVulnerabilityHistoricalStatisticRepository(db)

	day := time.Date(2026, 3, 14, 17, 30, 0, 0, time.UTC)

	t.Run("should store one snapshot per project and day", func(t *testing.T) {
		inserted, err := repo.CreateProjectSnapshots(nil, []models.VulnerabilityHistoricalStatistic{
			{ProjectID: h.A.ID, Date: day, SeverityCounts: dtos.SeverityCounts{High: 2, Info: 1}, LetterGrade: dtos.LetterGradeD},
			{ProjectID: h.B.ID, Date: day, SeverityCounts: dtos.SeverityCounts{}},
		})
		require.NoError(t, err)
		assert.EqualValues(t, 2, inserted)

		// a second run on the same day keeps the first snapshot
		inserted, err = repo.CreateProjectSnapshots(nil, []models.VulnerabilityHistoricalStatistic{
			{ProjectID: h.A.ID, Date: day.Add(3 * time.Hour), SeverityCounts: dtos.SeverityCounts{Critical: 9}},
		})
		require.NoError(t, err)
		assert.EqualValues(t, 0, inserted)

		history, err := repo.ListByProject(nil, h.A.ID, day.AddDate(0, 0, -1), day)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, dtos.SeverityCounts{High: 2, Info: 1}, history[0].SeverityCounts)
		assert.Equal(t, 3, history[0].Total)
		assert.True(t, models.SnapshotDate(day).Equal(history[0].Date.UTC()))
	})

	t.Run("should list a date range in order", func(t *testing.T) {
		for i := 1; i <= 3; i++ {
			_, err := repo.CreateProjectSnapshots(nil, []models.VulnerabilityHistoricalStatistic{
				{ProjectID: h.A.ID, Date: day.AddDate(0, 0, i), SeverityCounts: dtos.SeverityCounts{Low: i}},
			})
			require.NoError(t, err)
		}

		history, err := repo.ListByProject(nil, h.A.ID, day.AddDate(0, 0, 1), day.AddDate(0, 0, 2))
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, 1, history[0].Low)
		assert.Equal(t, 2, history[1].Low)
	})

	t.Run("should store namespace snapshots", func(t *testing.T) {
		inserted, err := repo.CreateNamespaceSnapshots(nil, []models.VulnerabilityNamespaceHistoricalStatistic{
			{NamespaceID: h.Root.ID, TraversalIDs: h.Root.TraversalIDs, Date: day, SeverityCounts: dtos.SeverityCounts{Medium: 4}},
		})
		require.NoError(t, err)
		assert.EqualValues(t, 1, inserted)

		history, err := repo.ListByNamespace(nil, h.Root.ID, day, day)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, 4, history[0].Total)
	})
}

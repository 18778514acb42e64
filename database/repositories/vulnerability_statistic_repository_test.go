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

	"github.com/l3montree-dev/vulnstats/database"
	"github.com/l3montree-dev/vulnstats/database/models"
	"github.com/l3montree-dev/vulnstats/database/repositories"
	"github.com/l3montree-dev/vulnstats/dtos"
	"github.com/l3montree-dev/vulnstats/shared"
	"github.com/l3montree-dev/vulnstats/tests"
	"github.com/l3montree-dev/vulnstats/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradeRowIDs(rows []shared.ProjectGradeRow) []int64 {
	return utils.Map(rows, func(r shared.ProjectGradeRow) int64 { return r.ProjectID })
}

func TestVulnerabilityStatisticUpsert(t *testing.T) {
	db := tests.InitSQLiteDB(t)
	h := tests.CreateHierarchy(t, db)
	repo := repositories.NewVulnerabilityStatisticRepository(db)

	t.Run("should derive total and letter grade on insert", func(t *testing.T) {
		statistic := models.VulnerabilityStatistic{
			ProjectID:      h.A.ID,
			TraversalIDs:   h.A.TraversalIDs,
			SeverityCounts: dtos.SeverityCounts{Medium: 2, Low: 1, Info: 4},
		}
		require.NoError(t, repo.Upsert(nil, &statistic))

		assert.NotZero(t, statistic.ID)
		assert.Equal(t, 7, statistic.Total)
		assert.Equal(t, dtos.LetterGradeC, statistic.LetterGrade)
	})

	t.Run("should replace the counts of an existing row", func(t *testing.T) {
		first, err := repo.FindByProjectID(nil, h.A.ID)
		require.NoError(t, err)

		pipelineID := int64(42)
		statistic := models.VulnerabilityStatistic{
			ProjectID:        h.A.ID,
			TraversalIDs:     h.A.TraversalIDs,
			SeverityCounts:   dtos.SeverityCounts{Critical: 1},
			LatestPipelineID: &pipelineID,
		}
		require.NoError(t, repo.Upsert(nil, &statistic))

		assert.Equal(t, first.ID, statistic.ID)
		assert.Equal(t, dtos.SeverityCounts{Critical: 1}, statistic.SeverityCounts)
		assert.Equal(t, 1, statistic.Total)
		assert.Equal(t, dtos.LetterGradeF, statistic.LetterGrade)
		require.NotNil(t, statistic.LatestPipelineID)
		assert.Equal(t, pipelineID, *statistic.LatestPipelineID)
	})

	t.Run("should reset everything to zero", func(t *testing.T) {
		statistic := models.VulnerabilityStatistic{ProjectID: h.A.ID, TraversalIDs: h.A.TraversalIDs}
		require.NoError(t, repo.Upsert(nil, &statistic))

		assert.Equal(t, dtos.SeverityCounts{}, statistic.SeverityCounts)
		assert.Equal(t, 0, statistic.Total)
		assert.Equal(t, dtos.LetterGradeA, statistic.LetterGrade)
	})

	t.Run("should reject negative counts", func(t *testing.T) {
		statistic := models.VulnerabilityStatistic{
			ProjectID:      h.B.ID,
			TraversalIDs:   h.B.TraversalIDs,
			SeverityCounts: dtos.SeverityCounts{High: -1},
		}
		err := repo.Upsert(nil, &statistic)
		require.Error(t, err)
		assert.True(t, database.IsCheckViolation(err))

		_, err = repo.FindByProjectID(nil, h.B.ID)
		assert.Error(t, err)
	})
}

func TestVulnerabilityStatisticUpsertBatch(t *testing.T) {
	items := func(h tests.Hierarchy) []models.VulnerabilityStatistic {
		return []models.VulnerabilityStatistic{
			{ProjectID: h.A.ID, TraversalIDs: h.A.TraversalIDs, SeverityCounts: dtos.SeverityCounts{Low: 3}},
			{ProjectID: h.B.ID, TraversalIDs: h.B.TraversalIDs, SeverityCounts: dtos.SeverityCounts{High: 1, Unknown: 2}},
			{ProjectID: h.C.ID, TraversalIDs: h.C.TraversalIDs, SeverityCounts: dtos.SeverityCounts{}},
			// a later entry of the same project wins
			{ProjectID: h.A.ID, TraversalIDs: h.A.TraversalIDs, SeverityCounts: dtos.SeverityCounts{Critical: 2, Info: 1}},
		}
	}

	t.Run("should produce the same rows as sequential upserts", func(t *testing.T) {
		bulkDB := tests.InitSQLiteDB(t)
		bulkHierarchy := tests.CreateHierarchy(t, bulkDB)
		bulkRepo := repositories.NewVulnerabilityStatisticRepository(bulkDB)
		require.NoError(t, bulkRepo.UpsertBatch(nil, items(bulkHierarchy)))

		seqDB := tests.InitSQLiteDB(t)
		seqHierarchy := tests.CreateHierarchy(t, seqDB)
		seqRepo := repositories.NewVulnerabilityStatisticRepository(seqDB)
		for _, item := range items(seqHierarchy) {
			require.NoError(t, seqRepo.Upsert(nil, &item))
		}

		bulk, err := bulkRepo.ListUnarchived(nil)
		require.NoError(t, err)
		seq, err := seqRepo.ListUnarchived(nil)
		require.NoError(t, err)

		require.Len(t, bulk, 3)
		require.Len(t, seq, 3)
		for i := range bulk {
			assert.Equal(t, seq[i].ProjectID, bulk[i].ProjectID)
			assert.Equal(t, seq[i].SeverityCounts, bulk[i].SeverityCounts)
			assert.Equal(t, seq[i].Total, bulk[i].Total)
			assert.Equal(t, seq[i].LetterGrade, bulk[i].LetterGrade)
			assert.Equal(t, bulk[i].Sum(), bulk[i].Total)
		}
		assert.Equal(t, dtos.LetterGradeF, bulk[0].LetterGrade)
		assert.Equal(t, 3, bulk[0].Total)
	})

	t.Run("should update rows written before", func(t *testing.T) {
		db := tests.InitSQLiteDB(t)
		h := tests.CreateHierarchy(t, db)
		repo := repositories.NewVulnerabilityStatisticRepository(db)
		tests.CreateStatistic(t, db, h.B, dtos.SeverityCounts{Critical: 10})

		require.NoError(t, repo.UpsertBatch(nil, items(h)))

		statistic, err := repo.FindByProjectID(nil, h.B.ID)
		require.NoError(t, err)
		assert.Equal(t, dtos.SeverityCounts{High: 1, Unknown: 2}, statistic.SeverityCounts)
		assert.Equal(t, dtos.LetterGradeD, statistic.LetterGrade)
	})

	t.Run("should do nothing without items", func(t *testing.T) {
		db := tests.InitSQLiteDB(t)
		repo := repositories.NewVulnerabilityStatisticRepository(db)
		assert.NoError(t, repo.UpsertBatch(nil, nil))
	})
}

func TestVulnerabilityStatisticGradeRows(t *testing.T) {
	db := tests.InitSQLiteDB(t)
	h := tests.CreateHierarchy(t, db)
	repo := repositories.NewVulnerabilityStatisticRepository(db)
	projectRepo := repositories.NewProjectRepository(db)

	tests.CreateStatistic(t, db, h.A, dtos.SeverityCounts{Critical: 1})
	tests.CreateStatistic(t, db, h.B, dtos.SeverityCounts{Low: 1})
	tests.CreateStatistic(t, db, h.C, dtos.SeverityCounts{Critical: 3})
	tests.CreateStatistic(t, db, h.D, dtos.SeverityCounts{Critical: 1})

	archived := tests.CreateProject(t, db, "archived", h.Root)
	tests.CreateStatistic(t, db, archived, dtos.SeverityCounts{Critical: 1})
	require.NoError(t, projectRepo.SetArchived(nil, &archived, true))
	require.NoError(t, repo.SyncProjectAttributes(nil, archived))

	t.Run("should only return direct projects without subgroups", func(t *testing.T) {
		rows, err := repo.GradeRows(nil, []shared.VulnerableScope{shared.NamespaceScope(h.Root)}, false, nil)
		require.NoError(t, err)
		assert.Equal(t, []int64{h.A.ID}, gradeRowIDs(rows))
	})

	t.Run("should return descendants with subgroups and skip archived projects", func(t *testing.T) {
		rows, err := repo.GradeRows(nil, []shared.VulnerableScope{shared.NamespaceScope(h.Root)}, true, nil)
		require.NoError(t, err)
		assert.ElementsMatch(t, []int64{h.A.ID, h.B.ID, h.C.ID}, gradeRowIDs(rows))
	})

	t.Run("should apply the letter grade filter", func(t *testing.T) {
		filter := dtos.LetterGradeF
		rows, err := repo.GradeRows(nil, []shared.VulnerableScope{shared.NamespaceScope(h.Root)}, true, &filter)
		require.NoError(t, err)
		assert.ElementsMatch(t, []int64{h.A.ID, h.C.ID}, gradeRowIDs(rows))
		for _, row := range rows {
			assert.Equal(t, dtos.LetterGradeF, row.LetterGrade)
		}
	})

	t.Run("should union several scopes", func(t *testing.T) {
		rows, err := repo.GradeRows(nil, []shared.VulnerableScope{
			shared.NamespaceScope(h.Child),
			shared.SecurityDashboardScope([]int64{h.D.ID, archived.ID}),
		}, false, nil)
		require.NoError(t, err)
		assert.ElementsMatch(t, []int64{h.B.ID, h.D.ID}, gradeRowIDs(rows))
	})

	t.Run("should return nothing for empty scopes", func(t *testing.T) {
		counter := tests.CountQueries(t, db)
		rows, err := repo.GradeRows(nil, []shared.VulnerableScope{shared.SecurityDashboardScope(nil)}, true, nil)
		require.NoError(t, err)
		assert.Empty(t, rows)
		assert.Zero(t, counter.Count())
	})
}

func TestVulnerabilityStatisticSumForTraversalIDs(t *testing.T) {
	db := tests.InitSQLiteDB(t)
	h := tests.CreateHierarchy(t, db)
	repo := repositories.NewVulnerabilityStatisticRepository(db)

	tests.CreateStatistic(t, db, h.A, dtos.SeverityCounts{Critical: 1, Info: 2})
	tests.CreateStatistic(t, db, h.B, dtos.SeverityCounts{High: 2})
	tests.CreateStatistic(t, db, h.C, dtos.SeverityCounts{High: 1, Low: 5})
	tests.CreateStatistic(t, db, h.D, dtos.SeverityCounts{Critical: 100})

	t.Run("should sum everything at or below the namespace", func(t *testing.T) {
		sum, err := repo.SumForTraversalIDs(nil, h.Root.TraversalIDs)
		require.NoError(t, err)
		assert.Equal(t, dtos.SeverityCounts{Critical: 1, High: 3, Low: 5, Info: 2}, sum)
	})

	t.Run("should sum a leaf namespace", func(t *testing.T) {
		sum, err := repo.SumForTraversalIDs(nil, h.Grandchild.TraversalIDs)
		require.NoError(t, err)
		assert.Equal(t, dtos.SeverityCounts{High: 1, Low: 5}, sum)
	})

	t.Run("should return zero for a namespace without statistics", func(t *testing.T) {
		empty := tests.CreateNamespace(t, db, "empty", nil)
		sum, err := repo.SumForTraversalIDs(nil, empty.TraversalIDs)
		require.NoError(t, err)
		assert.Equal(t, dtos.SeverityCounts{}, sum)
	})
}

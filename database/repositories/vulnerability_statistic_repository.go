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
	"strings"

	"github.com/l3montree-dev/vulnstats/database/models"
	databasetypes "github.com/l3montree-dev/vulnstats/database/types"
	"github.com/l3montree-dev/vulnstats/dtos"
	"github.com/l3montree-dev/vulnstats/grading"
	"github.com/l3montree-dev/vulnstats/shared"
	"github.com/l3montree-dev/vulnstats/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const vulnerabilityStatisticsTable = "vulnerability_statistics"

// inserted columns per statistic row
const statisticColumnCount = 14

var bucketColumns = []string{"critical", "high", "medium", "low", "unknown", "info"}

// totalSQL sums the buckets of the row proposed for insertion
var totalSQL = func() string {
	parts := make([]string, len(bucketColumns))
	for i, c := range bucketColumns {
		parts[i] = "excluded." + c
	}
	return strings.Join(parts, " + ")
}()

type vulnerabilityStatisticRepository struct {
	db *gorm.DB
	utils.Repository[int64, models.VulnerabilityStatistic, *gorm.DB]
}

func NewVulnerabilityStatisticRepository(db *gorm.DB) *vulnerabilityStatisticRepository {
	return &vulnerabilityStatisticRepository{
		db:         db,
		Repository: newGormRepository[int64, models.VulnerabilityStatistic](db),
	}
}

// upsertClause replaces the counts of an existing row. total and letter_grade
// are derived from the proposed row inside the statement, so a concurrent
// reader never sees buckets and derived columns out of sync.
func upsertClause() clause.OnConflict {
	assignments := clause.AssignmentColumns(append(slicesClone(bucketColumns), "traversal_ids", "archived", "latest_pipeline_id", "updated_at"))
	assignments = append(assignments,
		clause.Assignment{Column: clause.Column{Name: "total"}, Value: gorm.Expr(totalSQL)},
		clause.Assignment{Column: clause.Column{Name: "letter_grade"}, Value: gorm.Expr(grading.LetterGradeSQL("excluded", ""))},
	)
	return clause.OnConflict{
		Columns:   []clause.Column{{Name: "project_id"}},
		DoUpdates: assignments,
	}
}

func slicesClone(s []string) []string {
	return append([]string(nil), s...)
}

func derive(statistic *models.VulnerabilityStatistic) {
	statistic.Total = statistic.Sum()
	statistic.LetterGrade = grading.LetterGradeFor(statistic.SeverityCounts)
}

func (r *vulnerabilityStatisticRepository) Upsert(tx *gorm.DB, statistic *models.VulnerabilityStatistic) error {
	derive(statistic)
	db := r.GetDB(tx)
	if err := db.Clauses(upsertClause()).Create(statistic).Error; err != nil {
		return err
	}
	// reload to get the persisted id and creation time of an updated row
	var persisted models.VulnerabilityStatistic
	if err := db.First(&persisted, "project_id = ?", statistic.ProjectID).Error; err != nil {
		return err
	}
	*statistic = persisted
	return nil
}

// UpsertBatch writes all statistics with a single statement. If a project
// appears more than once the last entry wins, like it would with sequential upserts.
func (r *vulnerabilityStatisticRepository) UpsertBatch(tx *gorm.DB, statistics []models.VulnerabilityStatistic) error {
	if len(statistics) == 0 {
		return nil
	}
	statistics = utils.LastBy(statistics, func(s models.VulnerabilityStatistic) int64 { return s.ProjectID })
	for i := range statistics {
		derive(&statistics[i])
	}

	db := r.GetDB(tx).Clauses(upsertClause())
	for _, chunk := range utils.Chunk(statistics, batchSizeFor(statisticColumnCount)) {
		if err := db.Create(&chunk).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *vulnerabilityStatisticRepository) FindByProjectID(tx *gorm.DB, projectID int64) (models.VulnerabilityStatistic, error) {
	var statistic models.VulnerabilityStatistic
	err := r.GetDB(tx).First(&statistic, "project_id = ?", projectID).Error
	return statistic, err
}

func (r *vulnerabilityStatisticRepository) FindByProjectIDs(tx *gorm.DB, projectIDs []int64) ([]models.VulnerabilityStatistic, error) {
	if len(projectIDs) == 0 {
		return []models.VulnerabilityStatistic{}, nil
	}
	var statistics []models.VulnerabilityStatistic
	err := r.GetDB(tx).Where("project_id IN ?", projectIDs).Order("project_id").Find(&statistics).Error
	return statistics, err
}

func (r *vulnerabilityStatisticRepository) ListUnarchived(tx *gorm.DB) ([]models.VulnerabilityStatistic, error) {
	var statistics []models.VulnerabilityStatistic
	err := r.GetDB(tx).Where("archived = ?", false).Order("project_id").Find(&statistics).Error
	return statistics, err
}

func scopeCondition(scope shared.VulnerableScope, includeSubgroups bool) (clause.Expression, bool) {
	if scope.IsEmpty() {
		return nil, false
	}
	switch scope.Kind {
	case shared.VulnerableScopeNamespace:
		if includeSubgroups {
			return clause.Expr{SQL: "traversal_ids LIKE ?", Vars: []any{scope.Namespace.TraversalIDs.Prefix()}}, true
		}
		return clause.Expr{SQL: "traversal_ids = ?", Vars: []any{scope.Namespace.TraversalIDs.Path()}}, true
	case shared.VulnerableScopeSecurityDashboard:
		return clause.Expr{SQL: "project_id IN ?", Vars: []any{scope.ProjectIDs}}, true
	}
	return nil, false
}

func (r *vulnerabilityStatisticRepository) GradeRows(tx *gorm.DB, scopes []shared.VulnerableScope, includeSubgroups bool, filter *dtos.LetterGrade) ([]shared.ProjectGradeRow, error) {
	conditions := make([]clause.Expression, 0, len(scopes))
	for _, scope := range scopes {
		if cond, ok := scopeCondition(scope, includeSubgroups); ok {
			conditions = append(conditions, cond)
		}
	}
	if len(conditions) == 0 {
		return []shared.ProjectGradeRow{}, nil
	}

	q := r.GetDB(tx).Table(vulnerabilityStatisticsTable).
		Select("project_id", "letter_grade", "traversal_ids").
		Where("archived = ?", false).
		Where(clause.Or(conditions...))
	if filter != nil {
		q = q.Where(grading.LetterGradePredicate(vulnerabilityStatisticsTable, "", *filter))
	}

	var rows []shared.ProjectGradeRow
	err := q.Order("letter_grade").Order("project_id").Scan(&rows).Error
	return rows, err
}

func (r *vulnerabilityStatisticRepository) SumForTraversalIDs(tx *gorm.DB, traversalIDs databasetypes.TraversalIDs) (dtos.SeverityCounts, error) {
	var counts dtos.SeverityCounts
	if len(traversalIDs) == 0 {
		return counts, nil
	}

	selects := make([]string, len(bucketColumns))
	for i, c := range bucketColumns {
		selects[i] = "COALESCE(SUM(" + c + "), 0) AS " + c
	}
	err := r.GetDB(tx).Table(vulnerabilityStatisticsTable).
		Select(strings.Join(selects, ", ")).
		Where("archived = ? AND traversal_ids LIKE ?", false, traversalIDs.Prefix()).
		Scan(&counts).Error
	return counts, err
}

func (r *vulnerabilityStatisticRepository) SyncProjectAttributes(tx *gorm.DB, project models.Project) error {
	return r.GetDB(tx).Model(&models.VulnerabilityStatistic{}).
		Where("project_id = ?", project.ID).
		Updates(map[string]any{
			"archived":      project.Archived,
			"traversal_ids": project.TraversalIDs,
		}).Error
}

var _ shared.VulnerabilityStatisticRepository = (*vulnerabilityStatisticRepository)(nil)

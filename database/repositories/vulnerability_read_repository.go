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
	"fmt"
	"strings"

	"github.com/l3montree-dev/vulnstats/database/models"
	"github.com/l3montree-dev/vulnstats/dtos"
	"github.com/l3montree-dev/vulnstats/shared"
	"github.com/l3montree-dev/vulnstats/utils"
	"gorm.io/gorm"
)

type vulnerabilityReadRepository struct {
	db *gorm.DB
	utils.Repository[int64, models.VulnerabilityRead, *gorm.DB]
}

func NewVulnerabilityReadRepository(db *gorm.DB) *vulnerabilityReadRepository {
	return &vulnerabilityReadRepository{
		db:         db,
		Repository: newGormRepository[int64, models.VulnerabilityRead](db),
	}
}

type severityCountRow struct {
	Severity dtos.Severity
	Count    int
}

func toSeverityCounts(rows []severityCountRow) dtos.SeverityCounts {
	var counts dtos.SeverityCounts
	for _, row := range rows {
		counts.Increment(row.Severity, row.Count)
	}
	return counts
}

func (r *vulnerabilityReadRepository) CountBySeverity(tx *gorm.DB, projectID int64) (dtos.SeverityCounts, error) {
	var rows []severityCountRow
	err := r.GetDB(tx).Model(&models.VulnerabilityRead{}).
		Select("severity, COUNT(*) AS count").
		Where("project_id = ? AND archived = ? AND state IN ?", projectID, false, dtos.CountedVulnStates).
		Group("severity").
		Scan(&rows).Error
	if err != nil {
		return dtos.SeverityCounts{}, err
	}
	return toSeverityCounts(rows), nil
}

// CappedCountBySeverity stops counting a severity after limit rows. Each
// severity is its own limited subquery, so the index on (project_id, severity)
// is used and huge projects do not need a full scan.
func (r *vulnerabilityReadRepository) CappedCountBySeverity(tx *gorm.DB, projectID int64, limit int) (dtos.SeverityCounts, error) {
	if limit <= 0 {
		return dtos.SeverityCounts{}, fmt.Errorf("limit must be positive, got %d", limit)
	}

	parts := make([]string, 0, len(dtos.AllSeverities))
	args := make([]any, 0, len(dtos.AllSeverities)*5)
	for _, severity := range dtos.AllSeverities {
		// the severity names are constants, the alias is safe to inline
		parts = append(parts, fmt.Sprintf(
			"SELECT '%[1]s' AS severity, COUNT(*) AS count FROM (SELECT 1 FROM vulnerability_reads WHERE project_id = ? AND severity = ? AND archived = ? AND state IN ? LIMIT ?) AS capped_%[1]s",
			severity,
		))
		args = append(args, projectID, severity, false, dtos.CountedVulnStates, limit)
	}

	var rows []severityCountRow
	if err := r.GetDB(tx).Raw(strings.Join(parts, " UNION ALL "), args...).Scan(&rows).Error; err != nil {
		return dtos.SeverityCounts{}, err
	}
	return toSeverityCounts(rows), nil
}

func (r *vulnerabilityReadRepository) SyncProjectAttributes(tx *gorm.DB, project models.Project) error {
	return r.GetDB(tx).Model(&models.VulnerabilityRead{}).
		Where("project_id = ?", project.ID).
		Updates(map[string]any{
			"archived":      project.Archived,
			"traversal_ids": project.TraversalIDs,
		}).Error
}

var _ shared.VulnerabilityReadRepository = (*vulnerabilityReadRepository)(nil)

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
	"time"

	"github.com/l3montree-dev/vulnstats/database/models"
	"github.com/l3montree-dev/vulnstats/shared"
	"github.com/l3montree-dev/vulnstats/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type vulnerabilityHistoricalStatisticRepository struct {
	db *gorm.DB
}

func NewVulnerabilityHistoricalStatisticRepository(db *gorm.DB) *vulnerabilityHistoricalStatisticRepository {
	return &vulnerabilityHistoricalStatisticRepository{db: db}
}

func (r *vulnerabilityHistoricalStatisticRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// createIgnoringExisting inserts the rows in chunks and returns how many were
// actually written. Rows of a day which already has a snapshot are skipped.
func createIgnoringExisting[T any](db *gorm.DB, rows []T, columns int) (int64, error) {
	var inserted int64
	for _, chunk := range utils.Chunk(rows, batchSizeFor(columns)) {
		res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&chunk)
		if res.Error != nil {
			return inserted, res.Error
		}
		inserted += res.RowsAffected
	}
	return inserted, nil
}

func (r *vulnerabilityHistoricalStatisticRepository) CreateProjectSnapshots(tx *gorm.DB, snapshots []models.VulnerabilityHistoricalStatistic) (int64, error) {
	if len(snapshots) == 0 {
		return 0, nil
	}
	for i := range snapshots {
		snapshots[i].Date = models.SnapshotDate(snapshots[i].Date)
		snapshots[i].Total = snapshots[i].Sum()
	}
	return createIgnoringExisting(r.getDB(tx), snapshots, 11)
}

func (r *vulnerabilityHistoricalStatisticRepository) CreateNamespaceSnapshots(tx *gorm.DB, snapshots []models.VulnerabilityNamespaceHistoricalStatistic) (int64, error) {
	if len(snapshots) == 0 {
		return 0, nil
	}
	for i := range snapshots {
		snapshots[i].Date = models.SnapshotDate(snapshots[i].Date)
		snapshots[i].Total = snapshots[i].Sum()
	}
	return createIgnoringExisting(r.getDB(tx), snapshots, 11)
}

func (r *vulnerabilityHistoricalStatisticRepository) ListByProject(tx *gorm.DB, projectID int64, start, end time.Time) ([]models.VulnerabilityHistoricalStatistic, error) {
	var result []models.VulnerabilityHistoricalStatistic
	err := r.getDB(tx).
		Where("project_id = ? AND date >= ? AND date <= ?", projectID, models.SnapshotDate(start), models.SnapshotDate(end)).
		Order("date").
		Find(&result).Error
	return result, err
}

func (r *vulnerabilityHistoricalStatisticRepository) ListByNamespace(tx *gorm.DB, namespaceID int64, start, end time.Time) ([]models.VulnerabilityNamespaceHistoricalStatistic, error) {
	var result []models.VulnerabilityNamespaceHistoricalStatistic
	err := r.getDB(tx).
		Where("namespace_id = ? AND date >= ? AND date <= ?", namespaceID, models.SnapshotDate(start), models.SnapshotDate(end)).
		Order("date").
		Find(&result).Error
	return result, err
}

var _ shared.VulnerabilityHistoricalStatisticRepository = (*vulnerabilityHistoricalStatisticRepository)(nil)

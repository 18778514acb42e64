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
	"github.com/l3montree-dev/vulnstats/database/models"
	"github.com/l3montree-dev/vulnstats/shared"
	"github.com/l3montree-dev/vulnstats/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type vulnerabilityNamespaceStatisticRepository struct {
	db *gorm.DB
	utils.Repository[int64, models.VulnerabilityNamespaceStatistic, *gorm.DB]
}

func NewVulnerabilityNamespaceStatisticRepository(db *gorm.DB) *vulnerabilityNamespaceStatisticRepository {
	return &vulnerabilityNamespaceStatisticRepository{
		db:         db,
		Repository: newGormRepository[int64, models.VulnerabilityNamespaceStatistic](db),
	}
}

func (r *vulnerabilityNamespaceStatisticRepository) Upsert(tx *gorm.DB, statistic *models.VulnerabilityNamespaceStatistic) error {
	statistic.Total = statistic.Sum()
	db := r.GetDB(tx)
	err := db.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "namespace_id"}},
		DoUpdates: append(
			clause.AssignmentColumns(append(slicesClone(bucketColumns), "traversal_ids", "updated_at")),
			clause.Assignment{Column: clause.Column{Name: "total"}, Value: gorm.Expr(totalSQL)},
		),
	}).Create(statistic).Error
	if err != nil {
		return err
	}

	var persisted models.VulnerabilityNamespaceStatistic
	if err := db.First(&persisted, "namespace_id = ?", statistic.NamespaceID).Error; err != nil {
		return err
	}
	*statistic = persisted
	return nil
}

func (r *vulnerabilityNamespaceStatisticRepository) FindByNamespaceID(tx *gorm.DB, namespaceID int64) (models.VulnerabilityNamespaceStatistic, error) {
	var statistic models.VulnerabilityNamespaceStatistic
	err := r.GetDB(tx).First(&statistic, "namespace_id = ?", namespaceID).Error
	return statistic, err
}

var _ shared.VulnerabilityNamespaceStatisticRepository = (*vulnerabilityNamespaceStatisticRepository)(nil)

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
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type applicationSettingRepository struct {
	db *gorm.DB
}

func NewApplicationSettingRepository(db *gorm.DB) *applicationSettingRepository {
	return &applicationSettingRepository{db: db}
}

func (r *applicationSettingRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// Get returns the single settings row and creates it on first access
func (r *applicationSettingRepository) Get(tx *gorm.DB) (models.ApplicationSetting, error) {
	setting := models.ApplicationSetting{ID: models.ApplicationSettingID}
	err := r.getDB(tx).Where(models.ApplicationSetting{ID: models.ApplicationSettingID}).FirstOrCreate(&setting).Error
	return setting, err
}

func (r *applicationSettingRepository) SetMaxNumberOfVulnerabilitiesPerProject(tx *gorm.DB, limit *int64) error {
	setting := models.ApplicationSetting{
		ID:                                   models.ApplicationSettingID,
		MaxNumberOfVulnerabilitiesPerProject: limit,
		UpdatedAt:                            time.Now(),
	}
	return r.getDB(tx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"max_number_of_vulnerabilities_per_project", "updated_at"}),
	}).Create(&setting).Error
}

var _ shared.ApplicationSettingRepository = (*applicationSettingRepository)(nil)

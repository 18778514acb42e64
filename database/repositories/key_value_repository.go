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

type keyValueRepository struct {
	db *gorm.DB
}

func NewKeyValueRepository(db *gorm.DB) *keyValueRepository {
	return &keyValueRepository{db: db}
}

func (r *keyValueRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *keyValueRepository) Set(tx *gorm.DB, entry models.KeyValueEntry) error {
	return r.getDB(tx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at"}),
	}).Create(&entry).Error
}

func (r *keyValueRepository) Find(tx *gorm.DB, key string) (models.KeyValueEntry, error) {
	var entry models.KeyValueEntry
	err := r.getDB(tx).Where("key = ?", key).First(&entry).Error
	return entry, err
}

func (r *keyValueRepository) Delete(tx *gorm.DB, key string) error {
	return r.getDB(tx).Where("key = ?", key).Delete(&models.KeyValueEntry{}).Error
}

func (r *keyValueRepository) DeleteExpired(tx *gorm.DB, now time.Time) (int64, error) {
	res := r.getDB(tx).Where("expires_at IS NOT NULL AND expires_at <= ?", now).Delete(&models.KeyValueEntry{})
	return res.RowsAffected, res.Error
}

var _ shared.KeyValueRepository = (*keyValueRepository)(nil)

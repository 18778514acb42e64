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
	"slices"

	"github.com/gosimple/slug"
	"github.com/l3montree-dev/vulnstats/database/models"
	databasetypes "github.com/l3montree-dev/vulnstats/database/types"
	"github.com/l3montree-dev/vulnstats/shared"
	"github.com/l3montree-dev/vulnstats/utils"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type namespaceRepository struct {
	db *gorm.DB
	utils.Repository[int64, models.Namespace, *gorm.DB]
}

func NewNamespaceRepository(db *gorm.DB) *namespaceRepository {
	return &namespaceRepository{
		db:         db,
		Repository: newGormRepository[int64, models.Namespace](db),
	}
}

// Create inserts the namespace and derives its traversal ids from the parent.
// The id is only known after the insert, thus the path is written in a second statement.
func (r *namespaceRepository) Create(tx *gorm.DB, namespace *models.Namespace) error {
	db := r.GetDB(tx)

	var parentTraversal databasetypes.TraversalIDs
	if namespace.ParentID != nil {
		var parent models.Namespace
		if err := db.First(&parent, "id = ?", *namespace.ParentID).Error; err != nil {
			return errors.Wrap(err, "could not load parent namespace")
		}
		parentTraversal = parent.TraversalIDs
	}

	if namespace.Slug == "" {
		namespace.Slug = slug.Make(namespace.Name)
	}
	namespace.TraversalIDs = databasetypes.TraversalIDs{}
	if err := db.Omit(clause.Associations).Create(namespace).Error; err != nil {
		return err
	}

	namespace.TraversalIDs = parentTraversal.Append(namespace.ID)
	return db.Model(&models.Namespace{}).Where("id = ?", namespace.ID).Update("traversal_ids", namespace.TraversalIDs).Error
}

// Ancestors returns the ancestors from the root down to the direct parent
func (r *namespaceRepository) Ancestors(tx *gorm.DB, namespace models.Namespace) ([]models.Namespace, error) {
	if len(namespace.TraversalIDs) <= 1 {
		return []models.Namespace{}, nil
	}
	ancestorIDs := namespace.TraversalIDs[:len(namespace.TraversalIDs)-1]

	var ancestors []models.Namespace
	if err := r.GetDB(tx).Where("id IN ?", []int64(ancestorIDs)).Find(&ancestors).Error; err != nil {
		return nil, err
	}
	slices.SortFunc(ancestors, func(a, b models.Namespace) int {
		return slices.Index(ancestorIDs, a.ID) - slices.Index(ancestorIDs, b.ID)
	})
	return ancestors, nil
}

func (r *namespaceRepository) NearestVulnerabilityLimit(tx *gorm.DB, traversalIDs databasetypes.TraversalIDs) (*int64, error) {
	if len(traversalIDs) == 0 {
		return nil, nil
	}

	var overrides []models.Namespace
	err := r.GetDB(tx).
		Select("id", "max_number_of_vulnerabilities").
		Where("id IN ? AND max_number_of_vulnerabilities IS NOT NULL", []int64(traversalIDs)).
		Find(&overrides).Error
	if err != nil {
		return nil, err
	}

	var nearest *int64
	depth := -1
	for _, ns := range overrides {
		if d := slices.Index(traversalIDs, ns.ID); d > depth {
			depth = d
			nearest = ns.MaxNumberOfVulnerabilities
		}
	}
	return nearest, nil
}

func (r *namespaceRepository) SetVulnerabilityLimit(tx *gorm.DB, namespaceID int64, limit *int64) error {
	res := r.GetDB(tx).Model(&models.Namespace{}).Where("id = ?", namespaceID).Update("max_number_of_vulnerabilities", limit)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

var _ shared.NamespaceRepository = (*namespaceRepository)(nil)

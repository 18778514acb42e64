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
	"github.com/gosimple/slug"
	"github.com/l3montree-dev/vulnstats/database/models"
	"github.com/l3montree-dev/vulnstats/shared"
	"github.com/l3montree-dev/vulnstats/utils"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type projectRepository struct {
	db *gorm.DB
	utils.Repository[int64, models.Project, *gorm.DB]
}

func NewProjectRepository(db *gorm.DB) *projectRepository {
	return &projectRepository{
		db:         db,
		Repository: newGormRepository[int64, models.Project](db),
	}
}

func (r *projectRepository) Create(tx *gorm.DB, project *models.Project) error {
	db := r.GetDB(tx)

	var namespace models.Namespace
	if err := db.First(&namespace, "id = ?", project.NamespaceID).Error; err != nil {
		return errors.Wrap(err, "could not load namespace of project")
	}
	project.TraversalIDs = namespace.TraversalIDs
	if project.Slug == "" {
		project.Slug = slug.Make(project.Name)
	}
	return db.Omit(clause.Associations).Create(project).Error
}

func (r *projectRepository) ListWithStatistic(tx *gorm.DB, ids []int64) ([]models.Project, error) {
	if len(ids) == 0 {
		return []models.Project{}, nil
	}
	var projects []models.Project
	err := r.GetDB(tx).Preload("VulnerabilityStatistic").Where("id IN ?", ids).Order("id").Find(&projects).Error
	return projects, err
}

func (r *projectRepository) ListUnarchivedIDs(tx *gorm.DB) ([]int64, error) {
	var ids []int64
	err := r.GetDB(tx).Model(&models.Project{}).Where("archived = ?", false).Order("id").Pluck("id", &ids).Error
	return ids, err
}

func (r *projectRepository) DescendantIDs(tx *gorm.DB, namespace models.Namespace, includeSubgroups bool) ([]int64, error) {
	if len(namespace.TraversalIDs) == 0 {
		return []int64{}, nil
	}

	q := r.GetDB(tx).Model(&models.Project{}).Where("archived = ?", false)
	if includeSubgroups {
		q = q.Where("traversal_ids LIKE ?", namespace.TraversalIDs.Prefix())
	} else {
		q = q.Where("namespace_id = ?", namespace.ID)
	}

	var ids []int64
	err := q.Order("id").Pluck("id", &ids).Error
	return ids, err
}

func (r *projectRepository) FilterRelated(tx *gorm.DB, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return []int64{}, nil
	}
	var related []int64
	err := r.GetDB(tx).Model(&models.Project{}).
		Where("id IN ? AND archived = ?", ids, false).
		Order("id").
		Pluck("id", &related).Error
	return related, err
}

func (r *projectRepository) SetArchived(tx *gorm.DB, project *models.Project, archived bool) error {
	err := r.GetDB(tx).Model(&models.Project{}).Where("id = ?", project.ID).Update("archived", archived).Error
	if err != nil {
		return err
	}
	project.Archived = archived
	return nil
}

func (r *projectRepository) Move(tx *gorm.DB, project *models.Project, namespace models.Namespace) error {
	err := r.GetDB(tx).Model(&models.Project{}).Where("id = ?", project.ID).Updates(map[string]any{
		"namespace_id":  namespace.ID,
		"traversal_ids": namespace.TraversalIDs,
	}).Error
	if err != nil {
		return err
	}
	project.NamespaceID = namespace.ID
	project.TraversalIDs = namespace.TraversalIDs
	return nil
}

func (r *projectRepository) SetVulnerabilityLimit(tx *gorm.DB, projectID int64, limit *int64) error {
	res := r.GetDB(tx).Model(&models.Project{}).Where("id = ?", projectID).Update("max_number_of_vulnerabilities", limit)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

var _ shared.ProjectRepository = (*projectRepository)(nil)

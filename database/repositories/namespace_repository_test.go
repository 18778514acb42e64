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

	"github.com/l3montree-dev/vulnstats/database/models"
	"github.com/l3montree-dev/vulnstats/database/repositories"
	databasetypes "github.com/l3montree-dev/vulnstats/database/types"
	"github.com/l3montree-dev/vulnstats/dtos"
	"github.com/l3montree-dev/vulnstats/tests"
	"github.com/l3montree-dev/vulnstats/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNamespaceRepository(t *testing.T) {
	db := tests.InitSQLiteDB(t)
	h := tests.CreateHierarchy(t, db)
	repo := repositories.NewNamespaceRepository(db)

	t.Run("should derive the traversal ids from the parent", func(t *testing.T) {
		assert.Equal(t, databasetypes.TraversalIDs{h.Root.ID}, h.Root.TraversalIDs)
		assert.Equal(t, databasetypes.TraversalIDs{h.Root.ID, h.Child.ID, h.Grandchild.ID}, h.Grandchild.TraversalIDs)

		persisted, err := repo.Read(h.Grandchild.ID)
		require.NoError(t, err)
		assert.Equal(t, h.Grandchild.TraversalIDs, persisted.TraversalIDs)
	})

	t.Run("should copy the namespace traversal ids to projects", func(t *testing.T) {
		assert.Equal(t, h.Grandchild.TraversalIDs, h.C.TraversalIDs)
		assert.Equal(t, h.Root.TraversalIDs, h.A.TraversalIDs)
	})

	t.Run("should derive the slug from the name", func(t *testing.T) {
		namespace := models.Namespace{Name: "Security Team", ParentID: &h.Root.ID}
		require.NoError(t, repo.Create(nil, &namespace))
		assert.Equal(t, "security-team", namespace.Slug)

		project := models.Project{Name: "Web Frontend", NamespaceID: namespace.ID}
		require.NoError(t, repositories.NewProjectRepository(db).Create(nil, &project))
		assert.Equal(t, "web-frontend", project.Slug)

		custom := models.Project{Name: "Web Frontend", Slug: "frontend", NamespaceID: namespace.ID}
		require.NoError(t, repositories.NewProjectRepository(db).Create(nil, &custom))
		assert.Equal(t, "frontend", custom.Slug)
	})

	t.Run("should return the ancestors from the root down", func(t *testing.T) {
		ancestors, err := repo.Ancestors(nil, h.Grandchild)
		require.NoError(t, err)
		assert.Equal(t, []string{"root", "child"}, utils.Map(ancestors, func(n models.Namespace) string { return n.Name }))

		ancestors, err = repo.Ancestors(nil, h.Root)
		require.NoError(t, err)
		assert.Empty(t, ancestors)
	})

	t.Run("should resolve the deepest vulnerability limit", func(t *testing.T) {
		limit, err := repo.NearestVulnerabilityLimit(nil, h.Grandchild.TraversalIDs)
		require.NoError(t, err)
		assert.Nil(t, limit)

		require.NoError(t, repo.SetVulnerabilityLimit(nil, h.Root.ID, utils.Ptr(int64(100))))
		require.NoError(t, repo.SetVulnerabilityLimit(nil, h.Child.ID, utils.Ptr(int64(20))))

		limit, err = repo.NearestVulnerabilityLimit(nil, h.Grandchild.TraversalIDs)
		require.NoError(t, err)
		require.NotNil(t, limit)
		assert.EqualValues(t, 20, *limit)

		limit, err = repo.NearestVulnerabilityLimit(nil, h.Root.TraversalIDs)
		require.NoError(t, err)
		require.NotNil(t, limit)
		assert.EqualValues(t, 100, *limit)

		require.NoError(t, repo.SetVulnerabilityLimit(nil, h.Child.ID, nil))
		limit, err = repo.NearestVulnerabilityLimit(nil, h.Grandchild.TraversalIDs)
		require.NoError(t, err)
		require.NotNil(t, limit)
		assert.EqualValues(t, 100, *limit)
	})

	t.Run("should fail for unknown namespaces", func(t *testing.T) {
		err := repo.SetVulnerabilityLimit(nil, 9999, utils.Ptr(int64(1)))
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestProjectRepository(t *testing.T) {
	db := tests.InitSQLiteDB(t)
	h := tests.CreateHierarchy(t, db)
	repo := repositories.NewProjectRepository(db)

	t.Run("should list descendants with and without subgroups", func(t *testing.T) {
		ids, err := repo.DescendantIDs(nil, h.Root, true)
		require.NoError(t, err)
		assert.Equal(t, []int64{h.A.ID, h.B.ID, h.C.ID}, ids)

		ids, err = repo.DescendantIDs(nil, h.Root, false)
		require.NoError(t, err)
		assert.Equal(t, []int64{h.A.ID}, ids)
	})

	t.Run("should move a project with its traversal ids", func(t *testing.T) {
		project := tests.CreateProject(t, db, "moving", h.Root)
		require.NoError(t, repo.Move(nil, &project, h.Other))

		persisted, err := repo.Read(project.ID)
		require.NoError(t, err)
		assert.Equal(t, h.Other.ID, persisted.NamespaceID)
		assert.Equal(t, h.Other.TraversalIDs, persisted.TraversalIDs)
	})

	t.Run("should drop archived and unknown projects when filtering", func(t *testing.T) {
		project := tests.CreateProject(t, db, "archived", h.Root)
		require.NoError(t, repo.SetArchived(nil, &project, true))

		ids, err := repo.FilterRelated(nil, []int64{h.B.ID, project.ID, 9999})
		require.NoError(t, err)
		assert.Equal(t, []int64{h.B.ID}, ids)
	})

	t.Run("should preload the statistic", func(t *testing.T) {
		tests.CreateStatistic(t, db, h.C, dtos.SeverityCounts{High: 1})

		projects, err := repo.ListWithStatistic(nil, []int64{h.C.ID, h.D.ID})
		require.NoError(t, err)
		require.Len(t, projects, 2)
		require.NotNil(t, projects[0].VulnerabilityStatistic)
		assert.Equal(t, 1, projects[0].VulnerabilityStatistic.High)
		assert.Nil(t, projects[1].VulnerabilityStatistic)
	})
}

func TestApplicationSettingRepository(t *testing.T) {
	db := tests.InitSQLiteDB(t)
	repo := repositories.NewApplicationSettingRepository(db)

	setting, err := repo.Get(nil)
	require.NoError(t, err)
	assert.Nil(t, setting.MaxNumberOfVulnerabilitiesPerProject)

	require.NoError(t, repo.SetMaxNumberOfVulnerabilitiesPerProject(nil, utils.Ptr(int64(50))))
	setting, err = repo.Get(nil)
	require.NoError(t, err)
	require.NotNil(t, setting.MaxNumberOfVulnerabilitiesPerProject)
	assert.EqualValues(t, 50, *setting.MaxNumberOfVulnerabilitiesPerProject)

	require.NoError(t, repo.SetMaxNumberOfVulnerabilitiesPerProject(nil, nil))
	setting, err = repo.Get(nil)
	require.NoError(t, err)
	assert.Nil(t, setting.MaxNumberOfVulnerabilitiesPerProject)
}

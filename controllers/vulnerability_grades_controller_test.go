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

package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/l3montree-dev/vulnstats/database/models"
	"github.com/l3montree-dev/vulnstats/database/repositories"
	databasetypes "github.com/l3montree-dev/vulnstats/database/types"
	"github.com/l3montree-dev/vulnstats/dtos"
	"github.com/l3montree-dev/vulnstats/mocks"
	"github.com/l3montree-dev/vulnstats/shared"
	"github.com/l3montree-dev/vulnstats/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNamespaceGrades(t *testing.T) {
	namespace := models.Namespace{Model: models.Model{ID: 1}, TraversalIDs: databasetypes.TraversalIDs{1}}
	scope := shared.NamespaceScope(namespace)

	t.Run("should pass the query to the service", func(t *testing.T) {
		gradeService := mocks.NewProjectsGradeService(t)
		filter := dtos.LetterGradeC
		gradeService.On("GradesFor", mock.Anything, []shared.VulnerableScope{scope}, shared.GradesOptions{Filter: &filter, IncludeSubgroups: true}).
			Return([]shared.ScopeGrades{{
				Scope:  scope,
				Grades: []*shared.ProjectsGrade{shared.NewProjectsGrade(scope, dtos.LetterGradeC, []int64{4, 5}, true, nil)},
			}}, nil)

		ctx, rec := newJSONContext(http.MethodGet, "/?letterGrade=c&includeSubgroups=true", nil)
		shared.SetNamespace(ctx, namespace)

		require.NoError(t, NewVulnerabilityGradesController(gradeService, nil).NamespaceGrades(ctx))
		var res []dtos.ProjectsGradeDTO
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		require.Len(t, res, 1)
		assert.Equal(t, dtos.LetterGradeC, res[0].LetterGrade)
		assert.Equal(t, []int64{4, 5}, res[0].ProjectIDs)
	})

	t.Run("should reject an unknown letter grade", func(t *testing.T) {
		gradeService := mocks.NewProjectsGradeService(t)
		ctx, _ := newJSONContext(http.MethodGet, "/?letterGrade=e", nil)
		shared.SetNamespace(ctx, namespace)

		err := NewVulnerabilityGradesController(gradeService, nil).NamespaceGrades(ctx)
		assert.Equal(t, 400, httpCode(t, err))
	})
}

func TestSecurityDashboardGrades(t *testing.T) {
	db := tests.InitSQLiteDB(t)
	h := tests.CreateHierarchy(t, db)

	gradeService := mocks.NewProjectsGradeService(t)
	scope := shared.SecurityDashboardScope([]int64{h.A.ID, h.D.ID})
	gradeService.On("GradesFor", mock.Anything, []shared.VulnerableScope{scope}, shared.GradesOptions{}).
		Return([]shared.ScopeGrades{{Scope: scope, Grades: []*shared.ProjectsGrade{}}}, nil)

	ctx, rec := newJSONContext(http.MethodGet, "/?projectIDs=1,4,999", nil)

	controller := NewVulnerabilityGradesController(gradeService, repositories.NewProjectRepository(db))
	require.NoError(t, controller.SecurityDashboardGrades(ctx))
	assert.JSONEq(t, `[]`, rec.Body.String())
}

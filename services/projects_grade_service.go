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

package services

import (
	"context"
	"slices"
	"time"

	"github.com/l3montree-dev/vulnstats/database/models"
	"github.com/l3montree-dev/vulnstats/dtos"
	"github.com/l3montree-dev/vulnstats/monitoring"
	"github.com/l3montree-dev/vulnstats/shared"
	"github.com/pkg/errors"
)

type projectsGradeService struct {
	statisticRepository shared.VulnerabilityStatisticRepository
	projectRepository   shared.ProjectRepository
}

func NewProjectsGradeService(statisticRepository shared.VulnerabilityStatisticRepository, projectRepository shared.ProjectRepository) *projectsGradeService {
	return &projectsGradeService{
		statisticRepository: statisticRepository,
		projectRepository:   projectRepository,
	}
}

type gradeGroup struct {
	grade      dtos.LetterGrade
	projectIDs []int64
}

// groupByGrade keeps the order of the rows, which are sorted by grade and project id
func groupByGrade(rows []shared.ProjectGradeRow) []gradeGroup {
	groups := []gradeGroup{}
	for _, row := range rows {
		if n := len(groups); n > 0 && groups[n-1].grade == row.LetterGrade {
			groups[n-1].projectIDs = append(groups[n-1].projectIDs, row.ProjectID)
			continue
		}
		groups = append(groups, gradeGroup{grade: row.LetterGrade, projectIDs: []int64{row.ProjectID}})
	}
	return groups
}

// GradesFor groups the unarchived projects of the scopes by letter grade.
//
// By default every scope receives the grades of all requested scopes together,
// only ProjectsGrade.Projects narrows them down to the scope. With
// ScopeEachVulnerable the project ids of a scope only contain its own projects.
func (s *projectsGradeService) GradesFor(ctx context.Context, scopes []shared.VulnerableScope, opts shared.GradesOptions) ([]shared.ScopeGrades, error) {
	start := time.Now()
	defer func() {
		monitoring.ProjectsGradeDuration.Observe(time.Since(start).Seconds())
	}()

	if opts.Filter != nil && !opts.Filter.IsValid() {
		return nil, errors.Errorf("invalid letter grade filter %d", int16(*opts.Filter))
	}

	rows, err := s.statisticRepository.GradeRows(s.statisticRepository.GetDB(nil).WithContext(ctx), scopes, opts.IncludeSubgroups, opts.Filter)
	if err != nil {
		return nil, errors.Wrap(err, "could not load grade rows")
	}

	loader := shared.NewProjectsLoader(func(ids []int64) ([]models.Project, error) {
		return s.projectRepository.ListWithStatistic(nil, ids)
	})

	result := make([]shared.ScopeGrades, 0, len(scopes))
	union := groupByGrade(rows)
	for _, scope := range scopes {
		groups := union
		if opts.ScopeEachVulnerable {
			groups = groupByGrade(slices.DeleteFunc(slices.Clone(rows), func(row shared.ProjectGradeRow) bool {
				return !scope.Covers(row.ProjectID, row.TraversalIDs, opts.IncludeSubgroups)
			}))
		}
		result = append(result, shared.ScopeGrades{
			Scope:  scope,
			Grades: toProjectsGrades(scope, groups, opts.IncludeSubgroups, loader),
		})
	}
	return result, nil
}

func toProjectsGrades(scope shared.VulnerableScope, groups []gradeGroup, includeSubgroups bool, loader *shared.ProjectsLoader) []*shared.ProjectsGrade {
	grades := make([]*shared.ProjectsGrade, 0, len(groups))
	for _, group := range groups {
		grades = append(grades, shared.NewProjectsGrade(scope, group.grade, group.projectIDs, includeSubgroups, loader))
	}
	return grades
}

var _ shared.ProjectsGradeService = (*projectsGradeService)(nil)

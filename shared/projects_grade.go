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

package shared

import (
	"slices"
	"sync"

	"github.com/l3montree-dev/vulnstats/database/models"
	"github.com/l3montree-dev/vulnstats/dtos"
)

type GradesOptions struct {
	Filter           *dtos.LetterGrade
	IncludeSubgroups bool
	// ScopeEachVulnerable restricts the project ids of every scope to the
	// projects of that scope. Without it all scopes share the union of the
	// grades of every requested scope.
	ScopeEachVulnerable bool
}

type ProjectsGrade struct {
	Scope            VulnerableScope
	LetterGrade      dtos.LetterGrade
	ProjectIDs       []int64
	IncludeSubgroups bool

	loader *ProjectsLoader
}

type ScopeGrades struct {
	Scope  VulnerableScope
	Grades []*ProjectsGrade
}

func NewProjectsGrade(scope VulnerableScope, grade dtos.LetterGrade, projectIDs []int64, includeSubgroups bool, loader *ProjectsLoader) *ProjectsGrade {
	if loader != nil {
		loader.register(projectIDs)
	}
	return &ProjectsGrade{
		Scope:            scope,
		LetterGrade:      grade,
		ProjectIDs:       projectIDs,
		IncludeSubgroups: includeSubgroups,
		loader:           loader,
	}
}

func (g *ProjectsGrade) Count() int {
	return len(g.ProjectIDs)
}

// Projects returns the projects of the grade which belong to its scope,
// ordered by id, with their statistic preloaded. All grades created with the
// same loader are loaded together on first access.
func (g *ProjectsGrade) Projects() ([]models.Project, error) {
	if len(g.ProjectIDs) == 0 || g.loader == nil {
		return []models.Project{}, nil
	}
	byID, err := g.loader.get()
	if err != nil {
		return nil, err
	}

	res := make([]models.Project, 0, len(g.ProjectIDs))
	for _, id := range g.ProjectIDs {
		project, ok := byID[id]
		if !ok || project.Archived {
			continue
		}
		if !g.Scope.Covers(project.ID, project.TraversalIDs, g.IncludeSubgroups) {
			continue
		}
		res = append(res, project)
	}
	slices.SortFunc(res, func(a, b models.Project) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return res, nil
}

// ProjectsLoader collects the project ids of sibling grades and loads them
// with a single call of load.
type ProjectsLoader struct {
	mu   sync.Mutex
	ids  map[int64]struct{}
	once sync.Once
	load func(ids []int64) ([]models.Project, error)

	projects map[int64]models.Project
	err      error
}

func NewProjectsLoader(load func(ids []int64) ([]models.Project, error)) *ProjectsLoader {
	return &ProjectsLoader{
		ids:  make(map[int64]struct{}),
		load: load,
	}
}

func (l *ProjectsLoader) register(ids []int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, id := range ids {
		l.ids[id] = struct{}{}
	}
}

func (l *ProjectsLoader) get() (map[int64]models.Project, error) {
	l.once.Do(func() {
		l.mu.Lock()
		ids := make([]int64, 0, len(l.ids))
		for id := range l.ids {
			ids = append(ids, id)
		}
		l.mu.Unlock()
		slices.Sort(ids)

		projects, err := l.load(ids)
		if err != nil {
			l.err = err
			return
		}
		l.projects = make(map[int64]models.Project, len(projects))
		for _, p := range projects {
			l.projects[p.ID] = p
		}
	})
	return l.projects, l.err
}

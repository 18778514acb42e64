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

package tests

import (
	"fmt"
	"testing"

	"github.com/l3montree-dev/vulnstats/database/models"
	"github.com/l3montree-dev/vulnstats/database/repositories"
	"github.com/l3montree-dev/vulnstats/dtos"
	"github.com/l3montree-dev/vulnstats/shared"
	"github.com/stretchr/testify/require"
)

func CreateNamespace(t *testing.T, db shared.DB, name string, parent *models.Namespace) models.Namespace {
	t.Helper()
	namespace := models.Namespace{Name: name}
	if parent != nil {
		namespace.ParentID = &parent.ID
	}
	require.NoError(t, repositories.NewNamespaceRepository(db).Create(nil, &namespace))
	return namespace
}

func CreateProject(t *testing.T, db shared.DB, name string, namespace models.Namespace) models.Project {
	t.Helper()
	project := models.Project{Name: name, NamespaceID: namespace.ID}
	require.NoError(t, repositories.NewProjectRepository(db).Create(nil, &project))
	return project
}

// CreateStatistic stores the counts of the project as its latest statistic
func CreateStatistic(t *testing.T, db shared.DB, project models.Project, counts dtos.SeverityCounts) models.VulnerabilityStatistic {
	t.Helper()
	statistic := models.VulnerabilityStatistic{
		ProjectID:      project.ID,
		SeverityCounts: counts,
		TraversalIDs:   project.TraversalIDs,
		Archived:       project.Archived,
	}
	require.NoError(t, repositories.NewVulnerabilityStatisticRepository(db).Upsert(nil, &statistic))
	return statistic
}

// CreateVulnerabilityReads creates n reads of the severity in the given state
func CreateVulnerabilityReads(t *testing.T, db shared.DB, project models.Project, severity dtos.Severity, state dtos.VulnState, n int) {
	t.Helper()
	if n == 0 {
		return
	}
	reads := make([]models.VulnerabilityRead, n)
	for i := range reads {
		reads[i] = models.VulnerabilityRead{
			ProjectID:    project.ID,
			Severity:     severity,
			State:        state,
			Archived:     project.Archived,
			TraversalIDs: project.TraversalIDs,
		}
	}
	require.NoError(t, repositories.NewVulnerabilityReadRepository(db).CreateBatch(nil, reads), fmt.Sprintf("create %d %s reads", n, severity))
}

// Hierarchy is a small namespace tree used by most tests:
//
//	root
//	├── project a
//	└── child
//	    ├── project b
//	    └── grandchild
//	        └── project c
//	other
//	└── project d
type Hierarchy struct {
	Root       models.Namespace
	Child      models.Namespace
	Grandchild models.Namespace
	Other      models.Namespace

	A, B, C, D models.Project
}

func CreateHierarchy(t *testing.T, db shared.DB) Hierarchy {
	t.Helper()
	h := Hierarchy{}
	h.Root = CreateNamespace(t, db, "root", nil)
	h.Child = CreateNamespace(t, db, "child", &h.Root)
	h.Grandchild = CreateNamespace(t, db, "grandchild", &h.Child)
	h.Other = CreateNamespace(t, db, "other", nil)

	h.A = CreateProject(t, db, "a", h.Root)
	h.B = CreateProject(t, db, "b", h.Child)
	h.C = CreateProject(t, db, "c", h.Grandchild)
	h.D = CreateProject(t, db, "d", h.Other)
	return h
}

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
	"fmt"
	"slices"

	"github.com/l3montree-dev/vulnstats/database/models"
	databasetypes "github.com/l3montree-dev/vulnstats/database/types"
	"github.com/l3montree-dev/vulnstats/dtos"
)

type VulnerableScopeKind string

const (
	VulnerableScopeNamespace         VulnerableScopeKind = "namespace"
	VulnerableScopeSecurityDashboard VulnerableScopeKind = "securityDashboard"
)

// VulnerableScope is something whose projects can be graded: a namespace
// (group) or the instance security dashboard of a user, which is the list of
// projects the user added to it.
type VulnerableScope struct {
	Kind       VulnerableScopeKind
	Namespace  models.Namespace
	ProjectIDs []int64
}

func NamespaceScope(namespace models.Namespace) VulnerableScope {
	return VulnerableScope{Kind: VulnerableScopeNamespace, Namespace: namespace}
}

func SecurityDashboardScope(projectIDs []int64) VulnerableScope {
	return VulnerableScope{Kind: VulnerableScopeSecurityDashboard, ProjectIDs: projectIDs}
}

func (s VulnerableScope) Key() string {
	if s.Kind == VulnerableScopeNamespace {
		return fmt.Sprintf("namespace:%d", s.Namespace.ID)
	}
	return "securityDashboard"
}

// IsEmpty is true if the scope can never contain a project, e.g. a namespace
// without traversal ids.
func (s VulnerableScope) IsEmpty() bool {
	if s.Kind == VulnerableScopeNamespace {
		return len(s.Namespace.TraversalIDs) == 0
	}
	return len(s.ProjectIDs) == 0
}

// Covers reports whether a project with the given id and traversal ids belongs
// to the scope. includeSubgroups only affects namespace scopes.
func (s VulnerableScope) Covers(projectID int64, traversalIDs databasetypes.TraversalIDs, includeSubgroups bool) bool {
	if s.IsEmpty() {
		return false
	}
	switch s.Kind {
	case VulnerableScopeNamespace:
		if includeSubgroups {
			return s.Namespace.TraversalIDs.IsAncestorOf(traversalIDs)
		}
		return slices.Equal(s.Namespace.TraversalIDs, traversalIDs)
	case VulnerableScopeSecurityDashboard:
		return slices.Contains(s.ProjectIDs, projectID)
	}
	return false
}

// ProjectGradeRow is a single unarchived statistic row reduced to what grading needs.
type ProjectGradeRow struct {
	ProjectID    int64
	LetterGrade  dtos.LetterGrade
	TraversalIDs databasetypes.TraversalIDs
}

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

package models

import (
	databasetypes "github.com/l3montree-dev/vulnstats/database/types"
)

type Project struct {
	Model
	Name        string    `json:"name" gorm:"type:text;not null"`
	Slug        string    `json:"slug" gorm:"type:text;not null;default:''"`
	NamespaceID int64     `json:"namespaceId" gorm:"not null;index"`
	Namespace   Namespace `json:"-" gorm:"foreignKey:NamespaceID;references:ID;constraint:OnDelete:CASCADE;"`
	Archived    bool      `json:"archived" gorm:"not null;default:false"`
	// TraversalIDs are the traversal ids of the owning namespace
	TraversalIDs               databasetypes.TraversalIDs `json:"traversalIds" gorm:"type:text;not null;default:'/';index"`
	MaxNumberOfVulnerabilities *int64                     `json:"maxNumberOfVulnerabilities" gorm:"type:bigint"`

	VulnerabilityStatistic *VulnerabilityStatistic `json:"vulnerabilityStatistic,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE;"`
}

func (Project) TableName() string {
	return "projects"
}

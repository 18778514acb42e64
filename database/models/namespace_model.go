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

type Namespace struct {
	Model
	Name     string     `json:"name" gorm:"type:text;not null"`
	Slug     string     `json:"slug" gorm:"type:text;not null;default:''"`
	ParentID *int64     `json:"parentId" gorm:"index"`
	Parent   *Namespace `json:"-" gorm:"foreignKey:ParentID;references:ID;constraint:OnDelete:CASCADE;"`
	// TraversalIDs includes the id of the namespace itself as last element
	TraversalIDs databasetypes.TraversalIDs `json:"traversalIds" gorm:"type:text;not null;default:'/';index"`
	// nil means the namespace does not override the limit
	MaxNumberOfVulnerabilities *int64 `json:"maxNumberOfVulnerabilities" gorm:"type:bigint"`
}

func (Namespace) TableName() string {
	return "namespaces"
}

func (n Namespace) IsRoot() bool {
	return n.ParentID == nil
}

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
	"time"

	databasetypes "github.com/l3montree-dev/vulnstats/database/types"
	"github.com/l3montree-dev/vulnstats/dtos"
)

// VulnerabilityStatistic holds the latest counts of a single project.
// Total and LetterGrade are derived from the counts and never set directly.
type VulnerabilityStatistic struct {
	ID        int64 `json:"id" gorm:"primarykey"`
	ProjectID int64 `json:"projectId" gorm:"not null;uniqueIndex"`
	dtos.SeverityCounts
	Total            int                        `json:"total" gorm:"not null;default:0"`
	LetterGrade      dtos.LetterGrade           `json:"letterGrade" gorm:"type:smallint;not null;default:0;index"`
	TraversalIDs     databasetypes.TraversalIDs `json:"traversalIds" gorm:"type:text;not null;default:'/';index"`
	Archived         bool                       `json:"archived" gorm:"not null;default:false"`
	LatestPipelineID *int64                     `json:"latestPipelineId"`
	CreatedAt        time.Time                  `json:"createdAt"`
	UpdatedAt        time.Time                  `json:"updatedAt"`
}

func (VulnerabilityStatistic) TableName() string {
	return "vulnerability_statistics"
}

type VulnerabilityNamespaceStatistic struct {
	ID           int64                      `json:"id" gorm:"primarykey"`
	NamespaceID  int64                      `json:"namespaceId" gorm:"not null;uniqueIndex"`
	Namespace    Namespace                  `json:"-" gorm:"foreignKey:NamespaceID;references:ID;constraint:OnDelete:CASCADE;"`
	TraversalIDs databasetypes.TraversalIDs `json:"traversalIds" gorm:"type:text;not null;default:'/';index"`
	dtos.SeverityCounts
	Total     int       `json:"total" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (VulnerabilityNamespaceStatistic) TableName() string {
	return "vulnerability_namespace_statistics"
}

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

// VulnerabilityRead is the denormalized read model a scan pipeline writes its
// findings into. It is the source for recalculating statistics.
type VulnerabilityRead struct {
	ID           int64                      `json:"id" gorm:"primarykey"`
	ProjectID    int64                      `json:"projectId" gorm:"not null;index:idx_vulnerability_reads_project_severity"`
	Project      Project                    `json:"-" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE;"`
	Severity     dtos.Severity              `json:"severity" gorm:"type:text;not null;index:idx_vulnerability_reads_project_severity"`
	State        dtos.VulnState             `json:"state" gorm:"type:text;not null;default:'detected'"`
	Archived     bool                       `json:"archived" gorm:"not null;default:false"`
	TraversalIDs databasetypes.TraversalIDs `json:"traversalIds" gorm:"type:text;not null;default:'/'"`
	CreatedAt    time.Time                  `json:"createdAt"`
}

func (VulnerabilityRead) TableName() string {
	return "vulnerability_reads"
}

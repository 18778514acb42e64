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

// historical rows are append only, there is at most one row per owner and day

type VulnerabilityHistoricalStatistic struct {
	ID        int64     `json:"id" gorm:"primarykey"`
	ProjectID int64     `json:"projectId" gorm:"not null;uniqueIndex:idx_vulnerability_historical_statistics_project_date"`
	Date      time.Time `json:"date" gorm:"type:date;not null;uniqueIndex:idx_vulnerability_historical_statistics_project_date"`
	dtos.SeverityCounts
	Total       int              `json:"total" gorm:"not null;default:0"`
	LetterGrade dtos.LetterGrade `json:"letterGrade" gorm:"type:smallint;not null;default:0"`
	CreatedAt   time.Time        `json:"createdAt"`
}

func (VulnerabilityHistoricalStatistic) TableName() string {
	return "vulnerability_historical_statistics"
}

type VulnerabilityNamespaceHistoricalStatistic struct {
	ID           int64                      `json:"id" gorm:"primarykey"`
	NamespaceID  int64                      `json:"namespaceId" gorm:"not null;uniqueIndex:idx_vulnerability_namespace_historical_statistics_ns_date"`
	TraversalIDs databasetypes.TraversalIDs `json:"traversalIds" gorm:"type:text;not null;default:'/'"`
	Date         time.Time                  `json:"date" gorm:"type:date;not null;uniqueIndex:idx_vulnerability_namespace_historical_statistics_ns_date"`
	dtos.SeverityCounts
	Total     int       `json:"total" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"createdAt"`
}

func (VulnerabilityNamespaceHistoricalStatistic) TableName() string {
	return "vulnerability_namespace_historical_statistics"
}

// SnapshotDate truncates t to the UTC day the snapshot belongs to.
func SnapshotDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

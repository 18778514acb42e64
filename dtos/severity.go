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

package dtos

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityUnknown  Severity = "unknown"
	SeverityInfo     Severity = "info"
)

// AllSeverities is ordered from the highest to the lowest priority.
var AllSeverities = []Severity{
	SeverityCritical,
	SeverityHigh,
	SeverityMedium,
	SeverityLow,
	SeverityUnknown,
	SeverityInfo,
}

// SeverityCounts is the bucketed count vector shared by all statistic tables.
// It is embedded into the gorm models, thus the column names are the bucket names.
type SeverityCounts struct {
	Critical int `json:"critical" gorm:"not null;default:0;check:critical >= 0" validate:"gte=0"`
	High     int `json:"high" gorm:"not null;default:0;check:high >= 0" validate:"gte=0"`
	Medium   int `json:"medium" gorm:"not null;default:0;check:medium >= 0" validate:"gte=0"`
	Low      int `json:"low" gorm:"not null;default:0;check:low >= 0" validate:"gte=0"`
	Unknown  int `json:"unknown" gorm:"not null;default:0;check:unknown >= 0" validate:"gte=0"`
	Info     int `json:"info" gorm:"not null;default:0;check:info >= 0" validate:"gte=0"`
}

func (c SeverityCounts) Sum() int {
	return c.Critical + c.High + c.Medium + c.Low + c.Unknown + c.Info
}

func (c *SeverityCounts) Increment(severity Severity, n int) {
	switch severity {
	case SeverityCritical:
		c.Critical += n
	case SeverityHigh:
		c.High += n
	case SeverityMedium:
		c.Medium += n
	case SeverityLow:
		c.Low += n
	case SeverityUnknown:
		c.Unknown += n
	case SeverityInfo:
		c.Info += n
	}
}

// Get returns the count of a single bucket, 0 for unknown severities.
func (c SeverityCounts) Get(severity Severity) int {
	switch severity {
	case SeverityCritical:
		return c.Critical
	case SeverityHigh:
		return c.High
	case SeverityMedium:
		return c.Medium
	case SeverityLow:
		return c.Low
	case SeverityUnknown:
		return c.Unknown
	case SeverityInfo:
		return c.Info
	}
	return 0
}

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

import "time"

type VulnerabilityStatisticDTO struct {
	ProjectID        *int64         `json:"projectId,omitempty"`
	NamespaceID      *int64         `json:"namespaceId,omitempty"`
	Counts           SeverityCounts `json:"counts"`
	Total            int            `json:"total"`
	LetterGrade      *LetterGrade   `json:"letterGrade,omitempty"`
	TraversalIDs     []int64        `json:"traversalIds"`
	Archived         bool           `json:"archived"`
	LatestPipelineID *int64         `json:"latestPipelineId,omitempty"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

type HistoricalStatisticDTO struct {
	Date        string         `json:"date"`
	Counts      SeverityCounts `json:"counts"`
	Total       int            `json:"total"`
	LetterGrade *LetterGrade   `json:"letterGrade,omitempty"`
}

// SetCountsRequest replaces the latest counts of a single project.
type SetCountsRequest struct {
	Counts     SeverityCounts `json:"counts" validate:"required"`
	PipelineID *int64         `json:"pipelineId"`
}

type ProjectCounts struct {
	ProjectID  int64          `json:"projectId" validate:"required,gt=0"`
	PipelineID *int64         `json:"pipelineId"`
	Counts     SeverityCounts `json:"counts"`
}

type BulkSetCountsRequest struct {
	Items []ProjectCounts `json:"items" validate:"required,min=1,dive"`
}

type ProjectsGradeDTO struct {
	LetterGrade LetterGrade        `json:"letterGrade"`
	ProjectIDs  []int64            `json:"projectIds"`
	Projects    []GradedProjectDTO `json:"projects,omitempty"`
}

type GradedProjectDTO struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Slug        string         `json:"slug"`
	NamespaceID int64          `json:"namespaceId"`
	Counts      SeverityCounts `json:"counts"`
	Total       int            `json:"total"`
}

// QuotaInformationDTO mirrors the string typed payload the frontend expects.
type QuotaInformationDTO struct {
	Full     string `json:"full"`
	Critical string `json:"critical"`
	Exceeded string `json:"exceeded"`
}

type QuotaStatusDTO struct {
	QuotaInformationDTO
	Enabled   bool   `json:"enabled"`
	Count     int    `json:"count"`
	Allowance *int64 `json:"allowance"`
}

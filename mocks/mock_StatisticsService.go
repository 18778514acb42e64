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

package mocks

import (
	"context"
	"time"

	"github.com/l3montree-dev/vulnstats/database/models"
	databasetypes "github.com/l3montree-dev/vulnstats/database/types"
	"github.com/l3montree-dev/vulnstats/dtos"
	"github.com/l3montree-dev/vulnstats/shared"
	"github.com/stretchr/testify/mock"
)

// StatisticsService is a mock type for the StatisticsService type
type StatisticsService struct {
	mock.Mock
}

// SetLatestCounts provides a mock function with given fields: ctx, projectID, counts, pipelineID
func (_m *StatisticsService) SetLatestCounts(ctx context.Context, projectID int64, counts dtos.SeverityCounts, pipelineID *int64) (models.VulnerabilityStatistic, error) {
	ret := _m.Called(ctx, projectID, counts, pipelineID)

	if len(ret) == 0 {
		panic("no return value specified for SetLatestCounts")
	}

	var r0 models.VulnerabilityStatistic
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, int64, dtos.SeverityCounts, *int64) (models.VulnerabilityStatistic, error)); ok {
		return rf(ctx, projectID, counts, pipelineID)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int64, dtos.SeverityCounts, *int64) models.VulnerabilityStatistic); ok {
		r0 = rf(ctx, projectID, counts, pipelineID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(models.VulnerabilityStatistic)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, int64, dtos.SeverityCounts, *int64) error); ok {
		r1 = rf(ctx, projectID, counts, pipelineID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// BulkSetLatestCounts provides a mock function with given fields: ctx, items
func (_m *StatisticsService) BulkSetLatestCounts(ctx context.Context, items []dtos.ProjectCounts) ([]models.VulnerabilityStatistic, error) {
	ret := _m.Called(ctx, items)

	if len(ret) == 0 {
		panic("no return value specified for BulkSetLatestCounts")
	}

	var r0 []models.VulnerabilityStatistic
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, []dtos.ProjectCounts) ([]models.VulnerabilityStatistic, error)); ok {
		return rf(ctx, items)
	}
	if rf, ok := ret.Get(0).(func(context.Context, []dtos.ProjectCounts) []models.VulnerabilityStatistic); ok {
		r0 = rf(ctx, items)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]models.VulnerabilityStatistic)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, []dtos.ProjectCounts) error); ok {
		r1 = rf(ctx, items)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// RecalculateProject provides a mock function with given fields: ctx, projectID
func (_m *StatisticsService) RecalculateProject(ctx context.Context, projectID int64) (models.VulnerabilityStatistic, error) {
	ret := _m.Called(ctx, projectID)

	if len(ret) == 0 {
		panic("no return value specified for RecalculateProject")
	}

	var r0 models.VulnerabilityStatistic
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, int64) (models.VulnerabilityStatistic, error)); ok {
		return rf(ctx, projectID)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int64) models.VulnerabilityStatistic); ok {
		r0 = rf(ctx, projectID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(models.VulnerabilityStatistic)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, int64) error); ok {
		r1 = rf(ctx, projectID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// SyncNamespaceStatistics provides a mock function with given fields: tx, traversalIDs
func (_m *StatisticsService) SyncNamespaceStatistics(tx shared.DB, traversalIDs databasetypes.TraversalIDs) error {
	ret := _m.Called(tx, traversalIDs)

	if len(ret) == 0 {
		panic("no return value specified for SyncNamespaceStatistics")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(shared.DB, databasetypes.TraversalIDs) error); ok {
		r0 = rf(tx, traversalIDs)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// ArchiveProject provides a mock function with given fields: ctx, projectID, archived
func (_m *StatisticsService) ArchiveProject(ctx context.Context, projectID int64, archived bool) error {
	ret := _m.Called(ctx, projectID, archived)

	if len(ret) == 0 {
		panic("no return value specified for ArchiveProject")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, int64, bool) error); ok {
		r0 = rf(ctx, projectID, archived)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MoveProject provides a mock function with given fields: ctx, projectID, namespaceID
func (_m *StatisticsService) MoveProject(ctx context.Context, projectID int64, namespaceID int64) error {
	ret := _m.Called(ctx, projectID, namespaceID)

	if len(ret) == 0 {
		panic("no return value specified for MoveProject")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, int64, int64) error); ok {
		r0 = rf(ctx, projectID, namespaceID)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// SnapshotHistoricalStatistics provides a mock function with given fields: ctx, date
func (_m *StatisticsService) SnapshotHistoricalStatistics(ctx context.Context, date time.Time) (int64, error) {
	ret := _m.Called(ctx, date)

	if len(ret) == 0 {
		panic("no return value specified for SnapshotHistoricalStatistics")
	}

	var r0 int64
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, time.Time) (int64, error)); ok {
		return rf(ctx, date)
	}
	if rf, ok := ret.Get(0).(func(context.Context, time.Time) int64); ok {
		r0 = rf(ctx, date)
	} else {
		r0 = ret.Get(0).(int64)
	}

	if rf, ok := ret.Get(1).(func(context.Context, time.Time) error); ok {
		r1 = rf(ctx, date)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// GetProjectStatistic provides a mock function with given fields: projectID
func (_m *StatisticsService) GetProjectStatistic(projectID int64) (models.VulnerabilityStatistic, error) {
	ret := _m.Called(projectID)

	if len(ret) == 0 {
		panic("no return value specified for GetProjectStatistic")
	}

	var r0 models.VulnerabilityStatistic
	var r1 error
	if rf, ok := ret.Get(0).(func(int64) (models.VulnerabilityStatistic, error)); ok {
		return rf(projectID)
	}
	if rf, ok := ret.Get(0).(func(int64) models.VulnerabilityStatistic); ok {
		r0 = rf(projectID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(models.VulnerabilityStatistic)
		}
	}

	if rf, ok := ret.Get(1).(func(int64) error); ok {
		r1 = rf(projectID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// GetNamespaceStatistic provides a mock function with given fields: namespaceID
func (_m *StatisticsService) GetNamespaceStatistic(namespaceID int64) (models.VulnerabilityNamespaceStatistic, error) {
	ret := _m.Called(namespaceID)

	if len(ret) == 0 {
		panic("no return value specified for GetNamespaceStatistic")
	}

	var r0 models.VulnerabilityNamespaceStatistic
	var r1 error
	if rf, ok := ret.Get(0).(func(int64) (models.VulnerabilityNamespaceStatistic, error)); ok {
		return rf(namespaceID)
	}
	if rf, ok := ret.Get(0).(func(int64) models.VulnerabilityNamespaceStatistic); ok {
		r0 = rf(namespaceID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(models.VulnerabilityNamespaceStatistic)
		}
	}

	if rf, ok := ret.Get(1).(func(int64) error); ok {
		r1 = rf(namespaceID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// GetProjectHistory provides a mock function with given fields: projectID, start, end
func (_m *StatisticsService) GetProjectHistory(projectID int64, start time.Time, end time.Time) ([]models.VulnerabilityHistoricalStatistic, error) {
	ret := _m.Called(projectID, start, end)

	if len(ret) == 0 {
		panic("no return value specified for GetProjectHistory")
	}

	var r0 []models.VulnerabilityHistoricalStatistic
	var r1 error
	if rf, ok := ret.Get(0).(func(int64, time.Time, time.Time) ([]models.VulnerabilityHistoricalStatistic, error)); ok {
		return rf(projectID, start, end)
	}
	if rf, ok := ret.Get(0).(func(int64, time.Time, time.Time) []models.VulnerabilityHistoricalStatistic); ok {
		r0 = rf(projectID, start, end)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]models.VulnerabilityHistoricalStatistic)
		}
	}

	if rf, ok := ret.Get(1).(func(int64, time.Time, time.Time) error); ok {
		r1 = rf(projectID, start, end)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// GetNamespaceHistory provides a mock function with given fields: namespaceID, start, end
func (_m *StatisticsService) GetNamespaceHistory(namespaceID int64, start time.Time, end time.Time) ([]models.VulnerabilityNamespaceHistoricalStatistic, error) {
	ret := _m.Called(namespaceID, start, end)

	if len(ret) == 0 {
		panic("no return value specified for GetNamespaceHistory")
	}

	var r0 []models.VulnerabilityNamespaceHistoricalStatistic
	var r1 error
	if rf, ok := ret.Get(0).(func(int64, time.Time, time.Time) ([]models.VulnerabilityNamespaceHistoricalStatistic, error)); ok {
		return rf(namespaceID, start, end)
	}
	if rf, ok := ret.Get(0).(func(int64, time.Time, time.Time) []models.VulnerabilityNamespaceHistoricalStatistic); ok {
		r0 = rf(namespaceID, start, end)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]models.VulnerabilityNamespaceHistoricalStatistic)
		}
	}

	if rf, ok := ret.Get(1).(func(int64, time.Time, time.Time) error); ok {
		r1 = rf(namespaceID, start, end)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewStatisticsService creates a new instance of StatisticsService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewStatisticsService(t interface {
	mock.TestingT
	Cleanup(func())
}) *StatisticsService {
	mock := &StatisticsService{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}

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

	"github.com/l3montree-dev/vulnstats/database/models"
	"github.com/l3montree-dev/vulnstats/shared"
	"github.com/stretchr/testify/mock"
)

// VulnerabilityQuotaService is a mock type for the VulnerabilityQuotaService type
type VulnerabilityQuotaService struct {
	mock.Mock
}

// For provides a mock function with given fields: ctx, project
func (_m *VulnerabilityQuotaService) For(ctx context.Context, project models.Project) (shared.VulnerabilityQuota, error) {
	ret := _m.Called(ctx, project)

	if len(ret) == 0 {
		panic("no return value specified for For")
	}

	var r0 shared.VulnerabilityQuota
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, models.Project) (shared.VulnerabilityQuota, error)); ok {
		return rf(ctx, project)
	}
	if rf, ok := ret.Get(0).(func(context.Context, models.Project) shared.VulnerabilityQuota); ok {
		r0 = rf(ctx, project)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(shared.VulnerabilityQuota)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, models.Project) error); ok {
		r1 = rf(ctx, project)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// ValidateProjects provides a mock function with given fields: ctx, projectIDs
func (_m *VulnerabilityQuotaService) ValidateProjects(ctx context.Context, projectIDs []int64) error {
	ret := _m.Called(ctx, projectIDs)

	if len(ret) == 0 {
		panic("no return value specified for ValidateProjects")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, []int64) error); ok {
		r0 = rf(ctx, projectIDs)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewVulnerabilityQuotaService creates a new instance of VulnerabilityQuotaService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewVulnerabilityQuotaService(t interface {
	mock.TestingT
	Cleanup(func())
}) *VulnerabilityQuotaService {
	mock := &VulnerabilityQuotaService{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}

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
	"github.com/l3montree-dev/vulnstats/database/models"
	"github.com/stretchr/testify/mock"
)

// QuotaLimitProvider is a mock type for the QuotaLimitProvider type
type QuotaLimitProvider struct {
	mock.Mock
}

// ProjectLimit provides a mock function with given fields: project
func (_m *QuotaLimitProvider) ProjectLimit(project models.Project) *int64 {
	ret := _m.Called(project)

	if len(ret) == 0 {
		panic("no return value specified for ProjectLimit")
	}

	var r0 *int64
	if rf, ok := ret.Get(0).(func(models.Project) *int64); ok {
		r0 = rf(project)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*int64)
		}
	}

	return r0
}

// NamespaceLimit provides a mock function with given fields: project
func (_m *QuotaLimitProvider) NamespaceLimit(project models.Project) (*int64, error) {
	ret := _m.Called(project)

	if len(ret) == 0 {
		panic("no return value specified for NamespaceLimit")
	}

	var r0 *int64
	var r1 error
	if rf, ok := ret.Get(0).(func(models.Project) (*int64, error)); ok {
		return rf(project)
	}
	if rf, ok := ret.Get(0).(func(models.Project) *int64); ok {
		r0 = rf(project)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*int64)
		}
	}

	if rf, ok := ret.Get(1).(func(models.Project) error); ok {
		r1 = rf(project)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// ApplicationLimit provides a mock function
func (_m *QuotaLimitProvider) ApplicationLimit() (*int64, error) {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for ApplicationLimit")
	}

	var r0 *int64
	var r1 error
	if rf, ok := ret.Get(0).(func() (*int64, error)); ok {
		return rf()
	}
	if rf, ok := ret.Get(0).(func() *int64); ok {
		r0 = rf()
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*int64)
		}
	}

	if rf, ok := ret.Get(1).(func() error); ok {
		r1 = rf()
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewQuotaLimitProvider creates a new instance of QuotaLimitProvider. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewQuotaLimitProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *QuotaLimitProvider {
	mock := &QuotaLimitProvider{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}

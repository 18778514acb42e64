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

	"github.com/l3montree-dev/vulnstats/dtos"
	"github.com/stretchr/testify/mock"
)

// VulnerabilityQuota is a mock type for the VulnerabilityQuota type
type VulnerabilityQuota struct {
	mock.Mock
}

// Allowance provides a mock function
func (_m *VulnerabilityQuota) Allowance() (int64, bool) {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for Allowance")
	}

	var r0 int64
	var r1 bool
	if rf, ok := ret.Get(0).(func() (int64, bool)); ok {
		return rf()
	}
	if rf, ok := ret.Get(0).(func() int64); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(int64)
	}

	if rf, ok := ret.Get(1).(func() bool); ok {
		r1 = rf()
	} else {
		r1 = ret.Get(1).(bool)
	}

	return r0, r1
}

// Count provides a mock function
func (_m *VulnerabilityQuota) Count() int {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for Count")
	}

	var r0 int
	if rf, ok := ret.Get(0).(func() int); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(int)
	}

	return r0
}

// Validate provides a mock function with given fields: ctx
func (_m *VulnerabilityQuota) Validate(ctx context.Context) error {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for Validate")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context) error); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// IsCritical provides a mock function
func (_m *VulnerabilityQuota) IsCritical() bool {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for IsCritical")
	}

	var r0 bool
	if rf, ok := ret.Get(0).(func() bool); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(bool)
	}

	return r0
}

// IsFull provides a mock function
func (_m *VulnerabilityQuota) IsFull() bool {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for IsFull")
	}

	var r0 bool
	if rf, ok := ret.Get(0).(func() bool); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(bool)
	}

	return r0
}

// IsExceeded provides a mock function with given fields: ctx
func (_m *VulnerabilityQuota) IsExceeded(ctx context.Context) (bool, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for IsExceeded")
	}

	var r0 bool
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context) (bool, error)); ok {
		return rf(ctx)
	}
	if rf, ok := ret.Get(0).(func(context.Context) bool); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Get(0).(bool)
	}

	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Information provides a mock function with given fields: ctx
func (_m *VulnerabilityQuota) Information(ctx context.Context) (dtos.QuotaInformationDTO, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for Information")
	}

	var r0 dtos.QuotaInformationDTO
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context) (dtos.QuotaInformationDTO, error)); ok {
		return rf(ctx)
	}
	if rf, ok := ret.Get(0).(func(context.Context) dtos.QuotaInformationDTO); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(dtos.QuotaInformationDTO)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewVulnerabilityQuota creates a new instance of VulnerabilityQuota. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewVulnerabilityQuota(t interface {
	mock.TestingT
	Cleanup(func())
}) *VulnerabilityQuota {
	mock := &VulnerabilityQuota{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}

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
	"github.com/l3montree-dev/vulnstats/shared"
	"github.com/stretchr/testify/mock"
)

// FeatureFlagService is a mock type for the FeatureFlagService type
type FeatureFlagService struct {
	mock.Mock
}

// IsEnabled provides a mock function with given fields: flag
func (_m *FeatureFlagService) IsEnabled(flag shared.FeatureFlag) bool {
	ret := _m.Called(flag)

	if len(ret) == 0 {
		panic("no return value specified for IsEnabled")
	}

	var r0 bool
	if rf, ok := ret.Get(0).(func(shared.FeatureFlag) bool); ok {
		r0 = rf(flag)
	} else {
		r0 = ret.Get(0).(bool)
	}

	return r0
}

// NewFeatureFlagService creates a new instance of FeatureFlagService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewFeatureFlagService(t interface {
	mock.TestingT
	Cleanup(func())
}) *FeatureFlagService {
	mock := &FeatureFlagService{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}

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

	"github.com/l3montree-dev/vulnstats/shared"
	"github.com/stretchr/testify/mock"
)

// ProjectsGradeService is a mock type for the ProjectsGradeService type
type ProjectsGradeService struct {
	mock.Mock
}

// GradesFor provides a mock function with given fields: ctx, scopes, opts
func (_m *ProjectsGradeService) GradesFor(ctx context.Context, scopes []shared.VulnerableScope, opts shared.GradesOptions) ([]shared.ScopeGrades, error) {
	ret := _m.Called(ctx, scopes, opts)

	if len(ret) == 0 {
		panic("no return value specified for GradesFor")
	}

	var r0 []shared.ScopeGrades
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, []shared.VulnerableScope, shared.GradesOptions) ([]shared.ScopeGrades, error)); ok {
		return rf(ctx, scopes, opts)
	}
	if rf, ok := ret.Get(0).(func(context.Context, []shared.VulnerableScope, shared.GradesOptions) []shared.ScopeGrades); ok {
		r0 = rf(ctx, scopes, opts)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]shared.ScopeGrades)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, []shared.VulnerableScope, shared.GradesOptions) error); ok {
		r1 = rf(ctx, scopes, opts)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewProjectsGradeService creates a new instance of ProjectsGradeService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewProjectsGradeService(t interface {
	mock.TestingT
	Cleanup(func())
}) *ProjectsGradeService {
	mock := &ProjectsGradeService{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}

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

// PubSubBroker is a mock type for the PubSubBroker type
type PubSubBroker struct {
	mock.Mock
}

// Publish provides a mock function with given fields: ctx, message
func (_m *PubSubBroker) Publish(ctx context.Context, message shared.PubSubMessage) error {
	ret := _m.Called(ctx, message)

	if len(ret) == 0 {
		panic("no return value specified for Publish")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, shared.PubSubMessage) error); ok {
		r0 = rf(ctx, message)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Subscribe provides a mock function with given fields: topic
func (_m *PubSubBroker) Subscribe(topic shared.PubSubChannel) (<-chan map[string]any, error) {
	ret := _m.Called(topic)

	if len(ret) == 0 {
		panic("no return value specified for Subscribe")
	}

	var r0 <-chan map[string]any
	var r1 error
	if rf, ok := ret.Get(0).(func(shared.PubSubChannel) (<-chan map[string]any, error)); ok {
		return rf(topic)
	}
	if rf, ok := ret.Get(0).(func(shared.PubSubChannel) <-chan map[string]any); ok {
		r0 = rf(topic)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(<-chan map[string]any)
		}
	}

	if rf, ok := ret.Get(1).(func(shared.PubSubChannel) error); ok {
		r1 = rf(topic)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewPubSubBroker creates a new instance of PubSubBroker. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewPubSubBroker(t interface {
	mock.TestingT
	Cleanup(func())
}) *PubSubBroker {
	mock := &PubSubBroker{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}

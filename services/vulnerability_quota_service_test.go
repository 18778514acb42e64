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

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/l3montree-dev/vulnstats/common"
	"github.com/l3montree-dev/vulnstats/database/models"
	"github.com/l3montree-dev/vulnstats/database/repositories"
	"github.com/l3montree-dev/vulnstats/dtos"
	"github.com/l3montree-dev/vulnstats/mocks"
	"github.com/l3montree-dev/vulnstats/shared"
	"github.com/l3montree-dev/vulnstats/tests"
	"github.com/l3montree-dev/vulnstats/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func quotaWith(count int, allowance *int64, enabled bool, store shared.KeyValueStore) *vulnerabilityQuota {
	flags := NewStaticFeatureFlagService()
	if enabled {
		flags = NewStaticFeatureFlagService(shared.FeatureVulnerabilityQuota)
	}
	return &vulnerabilityQuota{
		project:      models.Project{Model: models.Model{ID: 1}},
		featureFlags: flags,
		allowance:    allowance,
		count:        count,
		store:        store,
	}
}

func TestAllowanceResolution(t *testing.T) {
	project := models.Project{Model: models.Model{ID: 1}}

	t.Run("should prefer the project override", func(t *testing.T) {
		limits := mocks.NewQuotaLimitProvider(t)
		limits.On("ProjectLimit", project).Return(utils.Ptr(int64(3)))

		s := &vulnerabilityQuotaService{limitProvider: limits}
		allowance, err := s.allowance(project)
		require.NoError(t, err)
		assert.EqualValues(t, 3, *allowance)
	})

	t.Run("should fall back to the namespace override", func(t *testing.T) {
		limits := mocks.NewQuotaLimitProvider(t)
		limits.On("ProjectLimit", project).Return(nil)
		limits.On("NamespaceLimit", project).Return(utils.Ptr(int64(2)), nil)

		s := &vulnerabilityQuotaService{limitProvider: limits}
		allowance, err := s.allowance(project)
		require.NoError(t, err)
		assert.EqualValues(t, 2, *allowance)
	})

	t.Run("should fall back to the application setting", func(t *testing.T) {
		limits := mocks.NewQuotaLimitProvider(t)
		limits.On("ProjectLimit", project).Return(nil)
		limits.On("NamespaceLimit", project).Return(nil, nil)
		limits.On("ApplicationLimit").Return(utils.Ptr(int64(1)), nil)

		s := &vulnerabilityQuotaService{limitProvider: limits}
		allowance, err := s.allowance(project)
		require.NoError(t, err)
		assert.EqualValues(t, 1, *allowance)
	})

	t.Run("should be unbounded without any limit", func(t *testing.T) {
		limits := mocks.NewQuotaLimitProvider(t)
		limits.On("ProjectLimit", project).Return(nil)
		limits.On("NamespaceLimit", project).Return(nil, nil)
		limits.On("ApplicationLimit").Return(nil, nil)

		s := &vulnerabilityQuotaService{limitProvider: limits}
		allowance, err := s.allowance(project)
		require.NoError(t, err)
		assert.Nil(t, allowance)
	})

	t.Run("should return the error of a provider", func(t *testing.T) {
		limits := mocks.NewQuotaLimitProvider(t)
		limits.On("ProjectLimit", project).Return(nil)
		limits.On("NamespaceLimit", project).Return(nil, errors.New("db down"))

		s := &vulnerabilityQuotaService{limitProvider: limits}
		_, err := s.allowance(project)
		assert.Error(t, err)
	})
}

func TestVulnerabilityQuotaPredicates(t *testing.T) {
	cases := []struct {
		name     string
		count    int
		critical bool
		full     bool
	}{
		{"far below the allowance", 10, false, false},
		{"right before the margin", 95, false, false},
		{"inside the margin", 96, true, false},
		{"one below the allowance", 99, true, false},
		{"at the allowance", 100, false, true},
		{"above the allowance", 150, false, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			quota := quotaWith(c.count, utils.Ptr(int64(100)), true, nil)
			assert.Equal(t, c.critical, quota.IsCritical())
			assert.Equal(t, c.full, quota.IsFull())
		})
	}

	t.Run("should never be critical or full when unbounded", func(t *testing.T) {
		quota := quotaWith(1_000_000, nil, true, nil)
		_, bounded := quota.Allowance()
		assert.False(t, bounded)
		assert.False(t, quota.IsCritical())
		assert.False(t, quota.IsFull())
	})
}

func TestVulnerabilityQuotaValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("should mark the project when the allowance is reached", func(t *testing.T) {
		store := common.NewLRUStore(10, 0)
		quota := quotaWith(100, utils.Ptr(int64(100)), true, store)

		require.NoError(t, quota.Validate(ctx))

		exceeded, err := quota.IsExceeded(ctx)
		require.NoError(t, err)
		assert.True(t, exceeded)

		info, err := quota.Information(ctx)
		require.NoError(t, err)
		assert.Equal(t, dtos.QuotaInformationDTO{Full: "true", Critical: "false", Exceeded: "true"}, info)
	})

	t.Run("should clear the mark when the count drops", func(t *testing.T) {
		store := common.NewLRUStore(10, 0)
		require.NoError(t, store.Set(ctx, shared.OverUsageKey(1), "101", 0))

		quota := quotaWith(96, utils.Ptr(int64(100)), true, store)
		require.NoError(t, quota.Validate(ctx))

		exceeded, err := quota.IsExceeded(ctx)
		require.NoError(t, err)
		assert.False(t, exceeded)

		info, err := quota.Information(ctx)
		require.NoError(t, err)
		assert.Equal(t, dtos.QuotaInformationDTO{Full: "false", Critical: "true", Exceeded: "false"}, info)
	})

	t.Run("should not touch the store when the flag is disabled", func(t *testing.T) {
		store := mocks.NewKeyValueStore(t)
		quota := quotaWith(101, utils.Ptr(int64(100)), false, store)

		require.NoError(t, quota.Validate(ctx))
		assert.False(t, quota.IsCritical())
		assert.False(t, quota.IsFull())

		exceeded, err := quota.IsExceeded(ctx)
		require.NoError(t, err)
		assert.False(t, exceeded)

		store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		store.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
	})

	t.Run("should return store errors", func(t *testing.T) {
		store := mocks.NewKeyValueStore(t)
		store.On("Set", mock.Anything, shared.OverUsageKey(1), "100", mock.Anything).Return(errors.New("store down"))

		quota := quotaWith(100, utils.Ptr(int64(100)), true, store)
		assert.Error(t, quota.Validate(ctx))
	})
}

func TestVulnerabilityQuotaServiceFor(t *testing.T) {
	ctx := context.Background()
	project := models.Project{Model: models.Model{ID: 1}}

	t.Run("should not resolve anything when the flag is disabled", func(t *testing.T) {
		flags := mocks.NewFeatureFlagService(t)
		flags.On("IsEnabled", shared.FeatureVulnerabilityQuota).Return(false)
		limits := mocks.NewQuotaLimitProvider(t)

		s := NewVulnerabilityQuotaService(flags, limits, nil, nil, common.NewLRUStore(10, 0))
		quota, err := s.For(ctx, project)
		require.NoError(t, err)

		_, bounded := quota.Allowance()
		assert.False(t, bounded)
		assert.Equal(t, 0, quota.Count())
		limits.AssertNotCalled(t, "ProjectLimit", mock.Anything)
	})

	t.Run("should follow the flag after the quota was built", func(t *testing.T) {
		db := tests.InitSQLiteDB(t)
		root := tests.CreateNamespace(t, db, "root", nil)
		p := tests.CreateProject(t, db, "a", root)
		tests.CreateStatistic(t, db, p, dtos.SeverityCounts{High: 5})

		flags := mocks.NewFeatureFlagService(t)
		flags.On("IsEnabled", shared.FeatureVulnerabilityQuota).Return(true).Once()
		limits := mocks.NewQuotaLimitProvider(t)
		limits.On("ProjectLimit", p).Return(utils.Ptr(int64(3)))
		store := mocks.NewKeyValueStore(t)

		s := NewVulnerabilityQuotaService(flags, limits, repositories.NewVulnerabilityStatisticRepository(db), nil, store)
		quota, err := s.For(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, 5, quota.Count())

		flags.On("IsEnabled", shared.FeatureVulnerabilityQuota).Return(false)
		assert.False(t, quota.IsFull())
		assert.False(t, quota.IsCritical())
		require.NoError(t, quota.Validate(ctx))
		exceeded, err := quota.IsExceeded(ctx)
		require.NoError(t, err)
		assert.False(t, exceeded)
		store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		store.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
	})

	t.Run("should skip validation of many projects when disabled", func(t *testing.T) {
		flags := mocks.NewFeatureFlagService(t)
		flags.On("IsEnabled", shared.FeatureVulnerabilityQuota).Return(false)

		s := NewVulnerabilityQuotaService(flags, nil, nil, nil, nil)
		assert.NoError(t, s.ValidateProjects(ctx, []int64{1, 2, 3}))
	})
}

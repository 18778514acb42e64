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

package daemons

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/l3montree-dev/vulnstats/common"
	"github.com/l3montree-dev/vulnstats/database/models"
	"github.com/l3montree-dev/vulnstats/database/repositories"
	"github.com/l3montree-dev/vulnstats/mocks"
	"github.com/l3montree-dev/vulnstats/pubsub"
	"github.com/l3montree-dev/vulnstats/shared"
	"github.com/l3montree-dev/vulnstats/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memoryConfigService struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemoryConfigService() *memoryConfigService {
	return &memoryConfigService{values: map[string]string{}}
}

func (m *memoryConfigService) GetJSONConfig(key string, v any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.values[key]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	return json.Unmarshal([]byte(val), v)
}

func (m *memoryConfigService) SetJSONConfig(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = string(b)
	return nil
}

func TestRecalculateStatistics(t *testing.T) {
	db := tests.InitSQLiteDB(t)
	h := tests.CreateHierarchy(t, db)
	projectRepository := repositories.NewProjectRepository(db)
	require.NoError(t, projectRepository.SetArchived(nil, &h.D, true))

	statisticsService := mocks.NewStatisticsService(t)
	for _, id := range []int64{h.A.ID, h.B.ID, h.C.ID} {
		statisticsService.On("RecalculateProject", mock.Anything, id).Return(models.VulnerabilityStatistic{ProjectID: id}, nil).Once()
	}

	runner := NewDaemonRunner(newMemoryConfigService(), projectRepository, statisticsService, nil, nil, nil, nil, nil)
	assert.NoError(t, runner.RecalculateStatistics(context.Background()))
	statisticsService.AssertNotCalled(t, "RecalculateProject", mock.Anything, h.D.ID)
}

func TestRecalculateStatisticsContinuesAfterAFailure(t *testing.T) {
	db := tests.InitSQLiteDB(t)
	h := tests.CreateHierarchy(t, db)

	statisticsService := mocks.NewStatisticsService(t)
	statisticsService.On("RecalculateProject", mock.Anything, h.A.ID).Return(models.VulnerabilityStatistic{}, gorm.ErrInvalidTransaction)
	statisticsService.On("RecalculateProject", mock.Anything, mock.MatchedBy(func(id int64) bool { return id != h.A.ID })).Return(models.VulnerabilityStatistic{}, nil).Times(3)

	runner := NewDaemonRunner(newMemoryConfigService(), repositories.NewProjectRepository(db), statisticsService, nil, nil, nil, nil, nil)
	assert.NoError(t, runner.RecalculateStatistics(context.Background()))
}

func TestRunDaemons(t *testing.T) {
	db := tests.InitSQLiteDB(t)
	tests.CreateHierarchy(t, db)

	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	statisticsService := mocks.NewStatisticsService(t)
	statisticsService.On("RecalculateProject", mock.Anything, mock.Anything).Return(models.VulnerabilityStatistic{}, nil)
	statisticsService.On("SnapshotHistoricalStatistics", mock.Anything, mock.Anything).Return(int64(4), nil)

	keyValueRepository := repositories.NewKeyValueRepository(db)
	store := common.NewDatabaseStore(keyValueRepository)
	require.NoError(t, store.Set(context.Background(), "expired", "1", time.Nanosecond))
	time.Sleep(time.Millisecond)

	config := newMemoryConfigService()
	runner := NewDaemonRunner(config, repositories.NewProjectRepository(db), statisticsService, nil, store, nil, nil, nil)
	runner.now = func() time.Time { return now }

	t.Run("should run every job on the first tick", func(t *testing.T) {
		runner.runDaemons(context.Background())
		statisticsService.AssertNumberOfCalls(t, "RecalculateProject", 4)
		statisticsService.AssertNumberOfCalls(t, "SnapshotHistoricalStatistics", 1)

		_, err := keyValueRepository.Find(nil, "expired")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("should not run again on the same day", func(t *testing.T) {
		now = now.Add(6 * time.Hour)
		runner.runDaemons(context.Background())
		statisticsService.AssertNumberOfCalls(t, "RecalculateProject", 4)
		statisticsService.AssertNumberOfCalls(t, "SnapshotHistoricalStatistics", 1)
	})

	t.Run("should snapshot again on the next day", func(t *testing.T) {
		now = now.Add(9 * time.Hour)
		runner.runDaemons(context.Background())
		statisticsService.AssertNumberOfCalls(t, "RecalculateProject", 8)
		statisticsService.AssertNumberOfCalls(t, "SnapshotHistoricalStatistics", 2)
		statisticsService.AssertCalled(t, "SnapshotHistoricalStatistics", mock.Anything, now)
	})
}

func TestQuotaValidationSubscription(t *testing.T) {
	t.Run("should validate the updated projects on the leader", func(t *testing.T) {
		broker := pubsub.NewInMemoryBroker()
		defer broker.Close()

		validated := make(chan []int64, 1)
		quotaService := mocks.NewVulnerabilityQuotaService(t)
		quotaService.On("ValidateProjects", mock.Anything, []int64{1, 2}).Run(func(args mock.Arguments) {
			validated <- args.Get(1).([]int64)
		}).Return(nil)
		leader := mocks.NewLeaderElector(t)
		leader.On("IsLeader").Return(true)
		flags := mocks.NewFeatureFlagService(t)
		flags.On("IsEnabled", shared.FeatureVulnerabilityQuota).Return(true)

		runner := NewDaemonRunner(nil, nil, nil, quotaService, nil, broker, leader, flags)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		require.NoError(t, runner.SubscribeQuotaValidation(ctx))

		require.NoError(t, broker.Publish(ctx, shared.NewSimplePubSubMessage(shared.VulnerabilityStatisticsUpdated, map[string]any{
			"projectIds": []any{float64(1), float64(2)},
		})))

		select {
		case ids := <-validated:
			assert.Equal(t, []int64{1, 2}, ids)
		case <-time.After(2 * time.Second):
			t.Fatal("quota was not validated")
		}
	})

	t.Run("should skip the validation on followers", func(t *testing.T) {
		leader := mocks.NewLeaderElector(t)
		leader.On("IsLeader").Return(false)
		quotaService := mocks.NewVulnerabilityQuotaService(t)

		runner := NewDaemonRunner(nil, nil, nil, quotaService, nil, nil, leader, nil)
		runner.handleStatisticsUpdated(context.Background(), map[string]any{"projectIds": []int64{1}})
	})

	t.Run("should not subscribe if the quota is disabled", func(t *testing.T) {
		flags := mocks.NewFeatureFlagService(t)
		flags.On("IsEnabled", shared.FeatureVulnerabilityQuota).Return(false)
		broker := mocks.NewPubSubBroker(t)

		runner := NewDaemonRunner(nil, nil, nil, nil, nil, broker, nil, flags)
		assert.NoError(t, runner.SubscribeQuotaValidation(context.Background()))
	})
}

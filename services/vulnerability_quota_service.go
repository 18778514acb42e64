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
	"log/slog"
	"strconv"

	"github.com/l3montree-dev/vulnstats/database/models"
	"github.com/l3montree-dev/vulnstats/dtos"
	"github.com/l3montree-dev/vulnstats/monitoring"
	"github.com/l3montree-dev/vulnstats/shared"
	"github.com/l3montree-dev/vulnstats/utils"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// QuotaCriticalMargin is the distance to the allowance from which on a quota is critical
const QuotaCriticalMargin = 4

// vulnerabilityQuota consults the feature flag on every call. Allowance and
// count are resolved once in For, a quota built while the flag was disabled
// stays unbounded.
type vulnerabilityQuota struct {
	project      models.Project
	featureFlags shared.FeatureFlagService
	allowance    *int64
	count        int
	store        shared.KeyValueStore
}

func (q *vulnerabilityQuota) enabled() bool {
	return q.featureFlags.IsEnabled(shared.FeatureVulnerabilityQuota)
}

func (q *vulnerabilityQuota) Allowance() (int64, bool) {
	if !q.enabled() || q.allowance == nil {
		return 0, false
	}
	return *q.allowance, true
}

func (q *vulnerabilityQuota) Count() int {
	return q.count
}

func (q *vulnerabilityQuota) IsFull() bool {
	allowance, bounded := q.Allowance()
	return bounded && int64(q.count) >= allowance
}

func (q *vulnerabilityQuota) IsCritical() bool {
	allowance, bounded := q.Allowance()
	if !bounded {
		return false
	}
	count := int64(q.count)
	return count >= allowance-QuotaCriticalMargin && count < allowance
}

// Validate marks the project as over its quota or clears the marker. It never
// fails because of the count itself.
func (q *vulnerabilityQuota) Validate(ctx context.Context) error {
	if !q.enabled() {
		return nil
	}
	monitoring.QuotaValidationAmount.Inc()

	key := shared.OverUsageKey(q.project.ID)
	if q.IsFull() {
		if err := q.store.Set(ctx, key, strconv.Itoa(q.count), 0); err != nil {
			return errors.Wrap(err, "could not mark over usage")
		}
		monitoring.QuotaOverUsageMarkedAmount.Inc()
		slog.Debug("project exceeds its vulnerability quota", "projectID", q.project.ID, "count", q.count, "allowance", *q.allowance)
		return nil
	}

	if err := q.store.Del(ctx, key); err != nil {
		return errors.Wrap(err, "could not clear over usage")
	}
	monitoring.QuotaOverUsageClearedAmount.Inc()
	return nil
}

func (q *vulnerabilityQuota) IsExceeded(ctx context.Context) (bool, error) {
	if !q.enabled() {
		return false, nil
	}
	return q.store.Exists(ctx, shared.OverUsageKey(q.project.ID))
}

func (q *vulnerabilityQuota) Information(ctx context.Context) (dtos.QuotaInformationDTO, error) {
	exceeded, err := q.IsExceeded(ctx)
	if err != nil {
		return dtos.QuotaInformationDTO{}, err
	}
	return dtos.QuotaInformationDTO{
		Full:     strconv.FormatBool(q.IsFull()),
		Critical: strconv.FormatBool(q.IsCritical()),
		Exceeded: strconv.FormatBool(exceeded),
	}, nil
}

type vulnerabilityQuotaService struct {
	featureFlagService  shared.FeatureFlagService
	limitProvider       shared.QuotaLimitProvider
	statisticRepository shared.VulnerabilityStatisticRepository
	projectRepository   shared.ProjectRepository
	store               shared.KeyValueStore
}

func NewVulnerabilityQuotaService(
	featureFlagService shared.FeatureFlagService,
	limitProvider shared.QuotaLimitProvider,
	statisticRepository shared.VulnerabilityStatisticRepository,
	projectRepository shared.ProjectRepository,
	store shared.KeyValueStore,
) *vulnerabilityQuotaService {
	return &vulnerabilityQuotaService{
		featureFlagService:  featureFlagService,
		limitProvider:       limitProvider,
		statisticRepository: statisticRepository,
		projectRepository:   projectRepository,
		store:               store,
	}
}

// allowance resolves the first limit set on the path project, nearest
// namespace, application. nil means unbounded.
func (s *vulnerabilityQuotaService) allowance(project models.Project) (*int64, error) {
	if limit := s.limitProvider.ProjectLimit(project); limit != nil {
		return limit, nil
	}
	namespaceLimit, err := s.limitProvider.NamespaceLimit(project)
	if err != nil {
		return nil, errors.Wrap(err, "could not resolve namespace limit")
	}
	if namespaceLimit != nil {
		return namespaceLimit, nil
	}
	applicationLimit, err := s.limitProvider.ApplicationLimit()
	if err != nil {
		return nil, errors.Wrap(err, "could not resolve application limit")
	}
	return applicationLimit, nil
}

// For builds the quota of the project. A disabled feature flag yields a quota
// which is unbounded and never critical, full or exceeded.
func (s *vulnerabilityQuotaService) For(ctx context.Context, project models.Project) (shared.VulnerabilityQuota, error) {
	quota := &vulnerabilityQuota{
		project:      project,
		featureFlags: s.featureFlagService,
		store:        s.store,
	}
	if !quota.enabled() {
		return quota, nil
	}

	allowance, err := s.allowance(project)
	if err != nil {
		return nil, err
	}
	quota.allowance = allowance

	statistic, err := s.statisticRepository.FindByProjectID(s.statisticRepository.GetDB(nil).WithContext(ctx), project.ID)
	switch {
	case err == nil:
		quota.count = statistic.Total
	case errors.Is(err, gorm.ErrRecordNotFound):
		quota.count = 0
	default:
		return nil, errors.Wrap(err, "could not load statistic")
	}
	return quota, nil
}

// ValidateProjects validates the quota of every project. A failing project
// does not stop the others, the first error is returned.
func (s *vulnerabilityQuotaService) ValidateProjects(ctx context.Context, projectIDs []int64) error {
	if !s.featureFlagService.IsEnabled(shared.FeatureVulnerabilityQuota) || len(projectIDs) == 0 {
		return nil
	}

	projects, err := s.projectRepository.List(utils.Uniq(projectIDs))
	if err != nil {
		return errors.Wrap(err, "could not load projects")
	}

	var firstErr error
	for _, project := range projects {
		quota, err := s.For(ctx, project)
		if err == nil {
			err = quota.Validate(ctx)
		}
		if err != nil {
			slog.Error("could not validate vulnerability quota", "projectID", project.ID, "err", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

var _ shared.VulnerabilityQuotaService = (*vulnerabilityQuotaService)(nil)

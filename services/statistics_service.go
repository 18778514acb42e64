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
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"time"

	"github.com/l3montree-dev/vulnstats/database/models"
	databasetypes "github.com/l3montree-dev/vulnstats/database/types"
	"github.com/l3montree-dev/vulnstats/dtos"
	"github.com/l3montree-dev/vulnstats/monitoring"
	"github.com/l3montree-dev/vulnstats/shared"
	"github.com/l3montree-dev/vulnstats/utils"
	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// SeverityCountLimit caps the per severity count when recalculating from the
// vulnerability reads of a project.
const SeverityCountLimit = 1001

var ErrInvalidCounts = errors.New("invalid severity counts")

type statisticsService struct {
	projectRepository            shared.ProjectRepository
	namespaceRepository          shared.NamespaceRepository
	statisticRepository          shared.VulnerabilityStatisticRepository
	namespaceStatisticRepository shared.VulnerabilityNamespaceStatisticRepository
	historicalRepository         shared.VulnerabilityHistoricalStatisticRepository
	vulnerabilityReadRepository  shared.VulnerabilityReadRepository
	broker                       shared.PubSubBroker

	recalculations singleflight.Group
}

func NewStatisticsService(
	projectRepository shared.ProjectRepository,
	namespaceRepository shared.NamespaceRepository,
	statisticRepository shared.VulnerabilityStatisticRepository,
	namespaceStatisticRepository shared.VulnerabilityNamespaceStatisticRepository,
	historicalRepository shared.VulnerabilityHistoricalStatisticRepository,
	vulnerabilityReadRepository shared.VulnerabilityReadRepository,
	broker shared.PubSubBroker,
) *statisticsService {
	return &statisticsService{
		projectRepository:            projectRepository,
		namespaceRepository:          namespaceRepository,
		statisticRepository:          statisticRepository,
		namespaceStatisticRepository: namespaceStatisticRepository,
		historicalRepository:         historicalRepository,
		vulnerabilityReadRepository:  vulnerabilityReadRepository,
		broker:                       broker,
	}
}

func validateCounts(counts dtos.SeverityCounts) error {
	if err := shared.V.Struct(counts); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCounts, err)
	}
	return nil
}

func statisticFor(project models.Project, counts dtos.SeverityCounts, pipelineID *int64) models.VulnerabilityStatistic {
	return models.VulnerabilityStatistic{
		ProjectID:        project.ID,
		SeverityCounts:   counts,
		TraversalIDs:     project.TraversalIDs,
		Archived:         project.Archived,
		LatestPipelineID: pipelineID,
	}
}

// namespacePaths returns the traversal ids of every namespace on the path,
// from the root down.
func namespacePaths(traversalIDs databasetypes.TraversalIDs) []databasetypes.TraversalIDs {
	paths := make([]databasetypes.TraversalIDs, 0, len(traversalIDs))
	for i := range traversalIDs {
		paths = append(paths, traversalIDs[:i+1])
	}
	return paths
}

// SetLatestCounts replaces the statistic of the project. The namespace roll
// ups of every ancestor are written in the same transaction.
func (s *statisticsService) SetLatestCounts(ctx context.Context, projectID int64, counts dtos.SeverityCounts, pipelineID *int64) (models.VulnerabilityStatistic, error) {
	if err := validateCounts(counts); err != nil {
		return models.VulnerabilityStatistic{}, err
	}

	project, err := s.projectRepository.Read(projectID)
	if err != nil {
		return models.VulnerabilityStatistic{}, errors.Wrap(err, "could not load project")
	}

	statistic := statisticFor(project, counts, pipelineID)
	err = s.statisticRepository.Transaction(func(tx shared.DB) error {
		tx = tx.WithContext(ctx)
		if err := s.statisticRepository.Upsert(tx, &statistic); err != nil {
			return errors.Wrap(err, "could not upsert statistic")
		}
		return s.SyncNamespaceStatistics(tx, project.TraversalIDs)
	})
	if err != nil {
		monitoring.VulnerabilityStatisticUpsertErrors.Inc()
		return models.VulnerabilityStatistic{}, err
	}

	monitoring.VulnerabilityStatisticUpsertAmount.WithLabelValues("single").Inc()
	s.publishUpdated(ctx, []int64{projectID})
	return statistic, nil
}

// BulkSetLatestCounts is all or nothing. The final state is the same as
// calling SetLatestCounts for every item in order.
func (s *statisticsService) BulkSetLatestCounts(ctx context.Context, items []dtos.ProjectCounts) ([]models.VulnerabilityStatistic, error) {
	if len(items) == 0 {
		return []models.VulnerabilityStatistic{}, nil
	}
	if err := shared.V.Struct(dtos.BulkSetCountsRequest{Items: items}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCounts, err)
	}

	projectIDs := utils.Uniq(utils.Map(items, func(i dtos.ProjectCounts) int64 { return i.ProjectID }))
	projects, err := s.projectRepository.List(projectIDs)
	if err != nil {
		return nil, errors.Wrap(err, "could not load projects")
	}
	projectsByID := make(map[int64]models.Project, len(projects))
	for _, p := range projects {
		projectsByID[p.ID] = p
	}

	statistics := make([]models.VulnerabilityStatistic, 0, len(items))
	for _, item := range items {
		project, ok := projectsByID[item.ProjectID]
		if !ok {
			return nil, errors.Wrapf(gorm.ErrRecordNotFound, "project %d", item.ProjectID)
		}
		statistics = append(statistics, statisticFor(project, item.Counts, item.PipelineID))
	}

	err = s.statisticRepository.Transaction(func(tx shared.DB) error {
		tx = tx.WithContext(ctx)
		if err := s.statisticRepository.UpsertBatch(tx, statistics); err != nil {
			return errors.Wrap(err, "could not upsert statistics")
		}
		return s.syncNamespaces(tx, utils.Map(projects, func(p models.Project) databasetypes.TraversalIDs { return p.TraversalIDs }))
	})
	if err != nil {
		monitoring.VulnerabilityStatisticUpsertErrors.Inc()
		return nil, err
	}

	persisted, err := s.statisticRepository.FindByProjectIDs(nil, projectIDs)
	if err != nil {
		return nil, err
	}
	monitoring.VulnerabilityStatisticUpsertAmount.WithLabelValues("bulk").Add(float64(len(persisted)))
	s.publishUpdated(ctx, projectIDs)
	return persisted, nil
}

// RecalculateProject counts the vulnerability reads of the project and stores
// the result. The pipeline reference of the statistic is kept. Concurrent
// calls for the same project share one recalculation.
func (s *statisticsService) RecalculateProject(ctx context.Context, projectID int64) (models.VulnerabilityStatistic, error) {
	v, err, _ := s.recalculations.Do(strconv.FormatInt(projectID, 10), func() (any, error) {
		return s.recalculateProject(ctx, projectID)
	})
	if err != nil {
		return models.VulnerabilityStatistic{}, err
	}
	return v.(models.VulnerabilityStatistic), nil
}

func (s *statisticsService) recalculateProject(ctx context.Context, projectID int64) (models.VulnerabilityStatistic, error) {
	project, err := s.projectRepository.Read(projectID)
	if err != nil {
		return models.VulnerabilityStatistic{}, errors.Wrap(err, "could not load project")
	}

	var pipelineID *int64
	if existing, err := s.statisticRepository.FindByProjectID(nil, projectID); err == nil {
		pipelineID = existing.LatestPipelineID
	}

	var statistic models.VulnerabilityStatistic
	err = s.statisticRepository.Transaction(func(tx shared.DB) error {
		tx = tx.WithContext(ctx)
		counts, err := s.vulnerabilityReadRepository.CappedCountBySeverity(tx, projectID, SeverityCountLimit)
		if err != nil {
			return errors.Wrap(err, "could not count vulnerabilities")
		}
		statistic = statisticFor(project, counts, pipelineID)
		if err := s.statisticRepository.Upsert(tx, &statistic); err != nil {
			return errors.Wrap(err, "could not upsert statistic")
		}
		return s.SyncNamespaceStatistics(tx, project.TraversalIDs)
	})
	if err != nil {
		monitoring.VulnerabilityStatisticUpsertErrors.Inc()
		return models.VulnerabilityStatistic{}, err
	}

	monitoring.VulnerabilityStatisticUpsertAmount.WithLabelValues("recalculate").Inc()
	s.publishUpdated(ctx, []int64{projectID})
	return statistic, nil
}

// SyncNamespaceStatistics recomputes the roll up of every namespace on the
// path. It must be called with the transaction of the statistic write.
func (s *statisticsService) SyncNamespaceStatistics(tx shared.DB, traversalIDs databasetypes.TraversalIDs) error {
	return s.syncNamespaces(tx, []databasetypes.TraversalIDs{traversalIDs})
}

func (s *statisticsService) syncNamespaces(tx shared.DB, traversalIDs []databasetypes.TraversalIDs) error {
	seen := make(map[int64]databasetypes.TraversalIDs)
	for _, t := range traversalIDs {
		for _, path := range namespacePaths(t) {
			seen[path[len(path)-1]] = path
		}
	}

	// parents first, the order does not change the result but keeps the
	// lock order stable between concurrent writers
	paths := utils.Values(seen)
	slices.SortFunc(paths, func(a, b databasetypes.TraversalIDs) int {
		if len(a) != len(b) {
			return cmp.Compare(len(a), len(b))
		}
		return cmp.Compare(a[len(a)-1], b[len(b)-1])
	})

	for _, path := range paths {
		counts, err := s.statisticRepository.SumForTraversalIDs(tx, path)
		if err != nil {
			return errors.Wrap(err, "could not sum statistics of namespace")
		}
		statistic := models.VulnerabilityNamespaceStatistic{
			NamespaceID:    path[len(path)-1],
			TraversalIDs:   path,
			SeverityCounts: counts,
		}
		if err := s.namespaceStatisticRepository.Upsert(tx, &statistic); err != nil {
			return errors.Wrap(err, "could not upsert namespace statistic")
		}
		monitoring.NamespaceStatisticSyncAmount.Inc()
	}
	return nil
}

// ArchiveProject flips the archived flag and keeps the statistic, the reads and
// the namespace roll ups in sync.
func (s *statisticsService) ArchiveProject(ctx context.Context, projectID int64, archived bool) error {
	project, err := s.projectRepository.Read(projectID)
	if err != nil {
		return errors.Wrap(err, "could not load project")
	}
	if project.Archived == archived {
		return nil
	}

	err = s.projectRepository.Transaction(func(tx shared.DB) error {
		tx = tx.WithContext(ctx)
		if err := s.projectRepository.SetArchived(tx, &project, archived); err != nil {
			return err
		}
		if err := s.syncProjectAttributes(tx, project); err != nil {
			return err
		}
		return s.SyncNamespaceStatistics(tx, project.TraversalIDs)
	})
	if err != nil {
		return err
	}

	s.publishUpdated(ctx, []int64{projectID})
	return nil
}

// MoveProject moves the project into another namespace. The roll ups of the
// old and the new ancestors are recomputed.
func (s *statisticsService) MoveProject(ctx context.Context, projectID int64, namespaceID int64) error {
	project, err := s.projectRepository.Read(projectID)
	if err != nil {
		return errors.Wrap(err, "could not load project")
	}
	if project.NamespaceID == namespaceID {
		return nil
	}
	namespace, err := s.namespaceRepository.Read(namespaceID)
	if err != nil {
		return errors.Wrap(err, "could not load namespace")
	}

	previous := project.TraversalIDs
	err = s.projectRepository.Transaction(func(tx shared.DB) error {
		tx = tx.WithContext(ctx)
		if err := s.projectRepository.Move(tx, &project, namespace); err != nil {
			return err
		}
		if err := s.syncProjectAttributes(tx, project); err != nil {
			return err
		}
		return s.syncNamespaces(tx, []databasetypes.TraversalIDs{previous, project.TraversalIDs})
	})
	if err != nil {
		return err
	}

	s.publishUpdated(ctx, []int64{projectID})
	return nil
}

func (s *statisticsService) syncProjectAttributes(tx shared.DB, project models.Project) error {
	if err := s.statisticRepository.SyncProjectAttributes(tx, project); err != nil {
		return errors.Wrap(err, "could not sync statistic attributes")
	}
	if err := s.vulnerabilityReadRepository.SyncProjectAttributes(tx, project); err != nil {
		return errors.Wrap(err, "could not sync vulnerability read attributes")
	}
	return nil
}

// SnapshotHistoricalStatistics appends the current statistics of every
// unarchived project and every namespace as snapshot of the day of date.
// Snapshots which already exist for that day are kept.
func (s *statisticsService) SnapshotHistoricalStatistics(ctx context.Context, date time.Time) (int64, error) {
	day := models.SnapshotDate(date)

	statistics, err := s.statisticRepository.ListUnarchived(nil)
	if err != nil {
		return 0, errors.Wrap(err, "could not list statistics")
	}
	namespaceStatistics, err := s.namespaceStatisticRepository.All()
	if err != nil {
		return 0, errors.Wrap(err, "could not list namespace statistics")
	}

	projectSnapshots := utils.Map(statistics, func(st models.VulnerabilityStatistic) models.VulnerabilityHistoricalStatistic {
		return models.VulnerabilityHistoricalStatistic{
			ProjectID:      st.ProjectID,
			Date:           day,
			SeverityCounts: st.SeverityCounts,
			LetterGrade:    st.LetterGrade,
		}
	})
	namespaceSnapshots := utils.Map(namespaceStatistics, func(st models.VulnerabilityNamespaceStatistic) models.VulnerabilityNamespaceHistoricalStatistic {
		return models.VulnerabilityNamespaceHistoricalStatistic{
			NamespaceID:    st.NamespaceID,
			TraversalIDs:   st.TraversalIDs,
			Date:           day,
			SeverityCounts: st.SeverityCounts,
		}
	})

	var projectRows, namespaceRows int64
	err = s.statisticRepository.Transaction(func(tx shared.DB) error {
		tx = tx.WithContext(ctx)
		var err error
		if projectRows, err = s.historicalRepository.CreateProjectSnapshots(tx, projectSnapshots); err != nil {
			return errors.Wrap(err, "could not create project snapshots")
		}
		if namespaceRows, err = s.historicalRepository.CreateNamespaceSnapshots(tx, namespaceSnapshots); err != nil {
			return errors.Wrap(err, "could not create namespace snapshots")
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	monitoring.HistoricalStatisticSnapshotAmount.WithLabelValues("project").Add(float64(projectRows))
	monitoring.HistoricalStatisticSnapshotAmount.WithLabelValues("namespace").Add(float64(namespaceRows))
	slog.Info("created historical statistics", "date", day.Format(time.DateOnly), "projects", projectRows, "namespaces", namespaceRows)
	return projectRows + namespaceRows, nil
}

func (s *statisticsService) GetProjectStatistic(projectID int64) (models.VulnerabilityStatistic, error) {
	return s.statisticRepository.FindByProjectID(nil, projectID)
}

func (s *statisticsService) GetNamespaceStatistic(namespaceID int64) (models.VulnerabilityNamespaceStatistic, error) {
	return s.namespaceStatisticRepository.FindByNamespaceID(nil, namespaceID)
}

func (s *statisticsService) GetProjectHistory(projectID int64, start, end time.Time) ([]models.VulnerabilityHistoricalStatistic, error) {
	return s.historicalRepository.ListByProject(nil, projectID, start, end)
}

func (s *statisticsService) GetNamespaceHistory(namespaceID int64, start, end time.Time) ([]models.VulnerabilityNamespaceHistoricalStatistic, error) {
	return s.historicalRepository.ListByNamespace(nil, namespaceID, start, end)
}

// publishUpdated runs after the commit, a failure does not undo the write
func (s *statisticsService) publishUpdated(ctx context.Context, projectIDs []int64) {
	if s.broker == nil {
		return
	}
	msg := shared.NewSimplePubSubMessage(shared.VulnerabilityStatisticsUpdated, map[string]any{
		"projectIds": projectIDs,
	})
	if err := s.broker.Publish(ctx, msg); err != nil {
		slog.Warn("could not publish statistics update", "err", err, "projectIDs", projectIDs)
	}
}

var _ shared.StatisticsService = (*statisticsService)(nil)

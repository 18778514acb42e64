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

package shared

import (
	"context"
	"time"

	"github.com/l3montree-dev/vulnstats/database/models"
	databasetypes "github.com/l3montree-dev/vulnstats/database/types"
	"github.com/l3montree-dev/vulnstats/dtos"
)

type DaemonRunner interface {
	RecalculateStatistics(ctx context.Context) error
	SnapshotHistoricalStatistics(ctx context.Context) error

	Start()
}

type LeaderElector interface {
	IsLeader() bool
}

type ConfigRepository interface {
	Save(tx DB, config *models.Config) error
	GetDB(tx DB) DB
}

type ConfigService interface {
	// retrieves the value for the given key and marshals it into v
	GetJSONConfig(key string, v any) error
	SetJSONConfig(key string, v any) error
}

type NamespaceRepository interface {
	// Create derives the traversal ids from the parent
	Create(tx DB, namespace *models.Namespace) error
	Read(id int64) (models.Namespace, error)
	List(ids []int64) ([]models.Namespace, error)
	Ancestors(tx DB, namespace models.Namespace) ([]models.Namespace, error)
	// NearestVulnerabilityLimit returns the limit of the deepest namespace on the
	// path which overrides it, nil if none does
	NearestVulnerabilityLimit(tx DB, traversalIDs databasetypes.TraversalIDs) (*int64, error)
	SetVulnerabilityLimit(tx DB, namespaceID int64, limit *int64) error
	GetDB(tx DB) DB
}

type ProjectRepository interface {
	// Create copies the traversal ids of the namespace
	Create(tx DB, project *models.Project) error
	Read(id int64) (models.Project, error)
	List(ids []int64) ([]models.Project, error)
	ListWithStatistic(tx DB, ids []int64) ([]models.Project, error)
	ListUnarchivedIDs(tx DB) ([]int64, error)
	// DescendantIDs returns the ids of the unarchived projects of the namespace
	DescendantIDs(tx DB, namespace models.Namespace, includeSubgroups bool) ([]int64, error)
	// FilterRelated drops every id which does not belong to an existing, unarchived project
	FilterRelated(tx DB, ids []int64) ([]int64, error)
	SetArchived(tx DB, project *models.Project, archived bool) error
	Move(tx DB, project *models.Project, namespace models.Namespace) error
	SetVulnerabilityLimit(tx DB, projectID int64, limit *int64) error
	Transaction(f func(tx DB) error) error
	GetDB(tx DB) DB
}

type ApplicationSettingRepository interface {
	Get(tx DB) (models.ApplicationSetting, error)
	SetMaxNumberOfVulnerabilitiesPerProject(tx DB, limit *int64) error
}

type VulnerabilityReadRepository interface {
	CreateBatch(tx DB, reads []models.VulnerabilityRead) error
	CountBySeverity(tx DB, projectID int64) (dtos.SeverityCounts, error)
	// CappedCountBySeverity counts at most limit vulnerabilities per severity
	CappedCountBySeverity(tx DB, projectID int64, limit int) (dtos.SeverityCounts, error)
	SyncProjectAttributes(tx DB, project models.Project) error
}

type VulnerabilityStatisticRepository interface {
	// Upsert writes the counts of the statistic, total and letter grade are
	// derived in the same statement
	Upsert(tx DB, statistic *models.VulnerabilityStatistic) error
	UpsertBatch(tx DB, statistics []models.VulnerabilityStatistic) error
	FindByProjectID(tx DB, projectID int64) (models.VulnerabilityStatistic, error)
	FindByProjectIDs(tx DB, projectIDs []int64) ([]models.VulnerabilityStatistic, error)
	ListUnarchived(tx DB) ([]models.VulnerabilityStatistic, error)
	// GradeRows returns the unarchived rows covered by any of the scopes
	GradeRows(tx DB, scopes []VulnerableScope, includeSubgroups bool, filter *dtos.LetterGrade) ([]ProjectGradeRow, error)
	// SumForTraversalIDs sums the unarchived statistics at or below the traversal ids
	SumForTraversalIDs(tx DB, traversalIDs databasetypes.TraversalIDs) (dtos.SeverityCounts, error)
	SyncProjectAttributes(tx DB, project models.Project) error
	Transaction(f func(tx DB) error) error
	GetDB(tx DB) DB
}

type VulnerabilityNamespaceStatisticRepository interface {
	Upsert(tx DB, statistic *models.VulnerabilityNamespaceStatistic) error
	FindByNamespaceID(tx DB, namespaceID int64) (models.VulnerabilityNamespaceStatistic, error)
	All() ([]models.VulnerabilityNamespaceStatistic, error)
}

type VulnerabilityHistoricalStatisticRepository interface {
	// CreateProjectSnapshots never overwrites an existing snapshot of the same day
	CreateProjectSnapshots(tx DB, snapshots []models.VulnerabilityHistoricalStatistic) (int64, error)
	CreateNamespaceSnapshots(tx DB, snapshots []models.VulnerabilityNamespaceHistoricalStatistic) (int64, error)
	ListByProject(tx DB, projectID int64, start, end time.Time) ([]models.VulnerabilityHistoricalStatistic, error)
	ListByNamespace(tx DB, namespaceID int64, start, end time.Time) ([]models.VulnerabilityNamespaceHistoricalStatistic, error)
}

type KeyValueRepository interface {
	Set(tx DB, entry models.KeyValueEntry) error
	Find(tx DB, key string) (models.KeyValueEntry, error)
	Delete(tx DB, key string) error
	DeleteExpired(tx DB, now time.Time) (int64, error)
}

type StatisticsService interface {
	SetLatestCounts(ctx context.Context, projectID int64, counts dtos.SeverityCounts, pipelineID *int64) (models.VulnerabilityStatistic, error)
	BulkSetLatestCounts(ctx context.Context, items []dtos.ProjectCounts) ([]models.VulnerabilityStatistic, error)
	RecalculateProject(ctx context.Context, projectID int64) (models.VulnerabilityStatistic, error)
	SyncNamespaceStatistics(tx DB, traversalIDs databasetypes.TraversalIDs) error
	ArchiveProject(ctx context.Context, projectID int64, archived bool) error
	MoveProject(ctx context.Context, projectID int64, namespaceID int64) error
	SnapshotHistoricalStatistics(ctx context.Context, date time.Time) (int64, error)

	GetProjectStatistic(projectID int64) (models.VulnerabilityStatistic, error)
	GetNamespaceStatistic(namespaceID int64) (models.VulnerabilityNamespaceStatistic, error)
	GetProjectHistory(projectID int64, start, end time.Time) ([]models.VulnerabilityHistoricalStatistic, error)
	GetNamespaceHistory(namespaceID int64, start, end time.Time) ([]models.VulnerabilityNamespaceHistoricalStatistic, error)
}

type ProjectsGradeService interface {
	// GradesFor returns the grades in the order of the scopes
	GradesFor(ctx context.Context, scopes []VulnerableScope, opts GradesOptions) ([]ScopeGrades, error)
}

type VulnerabilityQuota interface {
	// Allowance returns false if the project is unbounded
	Allowance() (int64, bool)
	Count() int
	Validate(ctx context.Context) error
	IsCritical() bool
	IsFull() bool
	IsExceeded(ctx context.Context) (bool, error)
	Information(ctx context.Context) (dtos.QuotaInformationDTO, error)
}

type VulnerabilityQuotaService interface {
	For(ctx context.Context, project models.Project) (VulnerabilityQuota, error)
	ValidateProjects(ctx context.Context, projectIDs []int64) error
}

// QuotaLimitProvider resolves the inputs of the allowance, each of them nil if not set
type QuotaLimitProvider interface {
	ProjectLimit(project models.Project) *int64
	NamespaceLimit(project models.Project) (*int64, error)
	ApplicationLimit() (*int64, error)
}

type FeatureFlagService interface {
	IsEnabled(flag FeatureFlag) bool
}

// KeyValueStore is an advisory, last writer wins cache
type KeyValueStore interface {
	// ttl <= 0 stores the value without expiry
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
	Del(ctx context.Context, key string) error
}

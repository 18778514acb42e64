// Copyright 2026 l3montree GmbH.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var VulnerabilityStatisticUpsertAmount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "vulnstats_vulnerability_statistic_upsert_amount",
	Help: "The total number of upserted project vulnerability statistics",
}, []string{"mode"})

var VulnerabilityStatisticUpsertErrors = promauto.NewCounter(prometheus.CounterOpts{
	Name: "vulnstats_vulnerability_statistic_upsert_errors",
	Help: "The total number of failed vulnerability statistic upserts",
})

var NamespaceStatisticSyncAmount = promauto.NewCounter(prometheus.CounterOpts{
	Name: "vulnstats_namespace_statistic_sync_amount",
	Help: "The total number of namespace statistic roll ups",
})

var HistoricalStatisticSnapshotAmount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "vulnstats_historical_statistic_snapshot_amount",
	Help: "The total number of historical statistic rows written",
}, []string{"owner"})

var ProjectsGradeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "vulnstats_projects_grade_duration_seconds",
	Help:    "Duration of computing grouped letter grades in seconds",
	Buckets: prometheus.DefBuckets,
})

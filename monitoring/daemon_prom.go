// Copyright 2026 l3montree GmbH.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var RecalculateStatisticsDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "vulnstats_daemon_recalculate_statistics_duration_minutes",
	Help:    "Duration of recalculating all project statistics in minutes",
	Buckets: prometheus.DefBuckets,
})

var RecalculateStatisticsProjectAmount = promauto.NewCounter(prometheus.CounterOpts{
	Name: "vulnstats_daemon_recalculate_statistics_project_amount",
	Help: "The total number of projects recalculated by the daemon",
})

var RecalculateStatisticsProjectSuccess = promauto.NewCounter(prometheus.CounterOpts{
	Name: "vulnstats_daemon_recalculate_statistics_project_success",
	Help: "The total number of projects successfully recalculated by the daemon",
})

var SnapshotStatisticsDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "vulnstats_daemon_snapshot_statistics_duration_minutes",
	Help:    "Duration of the daily historical snapshot in minutes",
	Buckets: prometheus.DefBuckets,
})

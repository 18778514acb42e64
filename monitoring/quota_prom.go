// Copyright 2026 l3montree GmbH.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var QuotaValidationAmount = promauto.NewCounter(prometheus.CounterOpts{
	Name: "vulnstats_quota_validation_amount",
	Help: "The total number of vulnerability quota validations",
})

var QuotaOverUsageMarkedAmount = promauto.NewCounter(prometheus.CounterOpts{
	Name: "vulnstats_quota_over_usage_marked_amount",
	Help: "The total number of projects marked as over their vulnerability quota",
})

var QuotaOverUsageClearedAmount = promauto.NewCounter(prometheus.CounterOpts{
	Name: "vulnstats_quota_over_usage_cleared_amount",
	Help: "The total number of projects whose over usage marker was removed",
})

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
	"log/slog"

	"github.com/l3montree-dev/vulnstats/shared"
)

// SubscribeQuotaValidation validates the quota of every project whose statistic changed.
// Only the leader validates, the key value store is shared between the replicas.
func (runner *DaemonRunner) SubscribeQuotaValidation(ctx context.Context) error {
	if !runner.featureFlagService.IsEnabled(shared.FeatureVulnerabilityQuota) {
		slog.Info("vulnerability quota disabled - not subscribing to statistic updates")
		return nil
	}

	ch, err := runner.broker.Subscribe(shared.VulnerabilityStatisticsUpdated)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case payload, ok := <-ch:
				if !ok {
					return
				}
				runner.handleStatisticsUpdated(ctx, payload)
			}
		}
	}()
	return nil
}

func (runner *DaemonRunner) handleStatisticsUpdated(ctx context.Context, payload map[string]any) {
	if !runner.leaderElector.IsLeader() {
		return
	}
	projectIDs := shared.ProjectIDsFromPayload(payload)
	if len(projectIDs) == 0 {
		return
	}
	if err := runner.quotaService.ValidateProjects(ctx, projectIDs); err != nil {
		slog.Error("could not validate vulnerability quotas", "err", err, "projectIDs", projectIDs)
	}
}

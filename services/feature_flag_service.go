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
	"log/slog"
	"os"
	"strings"

	"github.com/l3montree-dev/vulnstats/shared"
)

type featureFlagService struct {
	enabled map[shared.FeatureFlag]bool
}

func NewStaticFeatureFlagService(flags ...shared.FeatureFlag) *featureFlagService {
	enabled := make(map[shared.FeatureFlag]bool, len(flags))
	for _, f := range flags {
		enabled[f] = true
	}
	return &featureFlagService{enabled: enabled}
}

// NewFeatureFlagService reads the comma separated FEATURE_FLAGS variable. An
// unset variable enables the default flags, an empty one disables everything.
func NewFeatureFlagService() *featureFlagService {
	value, ok := os.LookupEnv("FEATURE_FLAGS")
	if !ok {
		return NewStaticFeatureFlagService(shared.DefaultFeatureFlags...)
	}

	var flags []shared.FeatureFlag
	for _, f := range strings.Split(value, ",") {
		if f = strings.TrimSpace(f); f != "" {
			flags = append(flags, shared.FeatureFlag(f))
		}
	}
	slog.Info("feature flags loaded", "flags", flags)
	return NewStaticFeatureFlagService(flags...)
}

func (s *featureFlagService) IsEnabled(flag shared.FeatureFlag) bool {
	return s.enabled[flag]
}

var _ shared.FeatureFlagService = (*featureFlagService)(nil)

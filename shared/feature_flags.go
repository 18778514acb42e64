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

import "fmt"

type FeatureFlag string

const (
	FeatureVulnerabilityQuota FeatureFlag = "vulnerability_quota"
)

// DefaultFeatureFlags are enabled when FEATURE_FLAGS is not set
var DefaultFeatureFlags = []FeatureFlag{FeatureVulnerabilityQuota}

// OverUsageKey is the key value store key marking a project as over its quota
func OverUsageKey(projectID int64) string {
	return fmt.Sprintf("projects:%d:vulnerability_quota:over_usage", projectID)
}

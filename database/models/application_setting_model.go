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

package models

import "time"

// ApplicationSettingID is the id of the single instance wide settings row.
const ApplicationSettingID int64 = 1

type ApplicationSetting struct {
	ID                                   int64     `json:"id" gorm:"primarykey"`
	MaxNumberOfVulnerabilitiesPerProject *int64    `json:"maxNumberOfVulnerabilitiesPerProject" gorm:"type:bigint"`
	UpdatedAt                            time.Time `json:"updatedAt"`
}

func (ApplicationSetting) TableName() string {
	return "application_settings"
}

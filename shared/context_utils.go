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
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/l3montree-dev/vulnstats/database/models"
	"github.com/l3montree-dev/vulnstats/dtos"
)

func GetParam(ctx Context, param string) string {
	v := ctx.Param(param)
	if v == "" {
		fallback, ok := ctx.Get(param).(string)
		if !ok {
			return ""
		}
		return fallback
	}
	return v
}

func GetIDParam(ctx Context, param string) (int64, error) {
	raw := SanitizeParam(GetParam(ctx, param))
	if raw == "" {
		return 0, fmt.Errorf("could not get %s", param)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", param, raw)
	}
	return id, nil
}

func SetProject(ctx Context, project models.Project) {
	ctx.Set("project", project)
}

func GetProject(ctx Context) models.Project {
	return ctx.Get("project").(models.Project)
}

func SetNamespace(ctx Context, namespace models.Namespace) {
	ctx.Set("namespace", namespace)
}

func GetNamespace(ctx Context) models.Namespace {
	return ctx.Get("namespace").(models.Namespace)
}

// GetLetterGradeQuery returns nil if the query parameter is absent
func GetLetterGradeQuery(ctx Context, name string) (*dtos.LetterGrade, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	grade, err := dtos.ParseLetterGrade(raw)
	if err != nil {
		return nil, err
	}
	return &grade, nil
}

func GetBoolQuery(ctx Context, name string, def bool) (bool, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	return strconv.ParseBool(raw)
}

// GetIDListQuery parses a comma separated list like "1,2,3"
func GetIDListQuery(ctx Context, name string) ([]int64, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return []int64{}, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q in %s", p, name)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// GetDateRangeQuery reads start and end as YYYY-MM-DD. The default range is the last 30 days.
func GetDateRangeQuery(ctx Context, now time.Time) (time.Time, time.Time, error) {
	end := models.SnapshotDate(now)
	start := end.AddDate(0, 0, -30)

	if raw := ctx.QueryParam("start"); raw != "" {
		t, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start date: %w", err)
		}
		start = t
	}
	if raw := ctx.QueryParam("end"); raw != "" {
		t, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end date: %w", err)
		}
		end = t
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end date %s is before start date %s", end.Format(time.DateOnly), start.Format(time.DateOnly))
	}
	return start, end, nil
}

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

package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/l3montree-dev/vulnstats/database/models"
	"github.com/l3montree-dev/vulnstats/dtos"
	"github.com/l3montree-dev/vulnstats/mocks"
	"github.com/l3montree-dev/vulnstats/services"
	"github.com/l3montree-dev/vulnstats/shared"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newJSONContext(method, target string, body any) (shared.Context, *httptest.ResponseRecorder) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	return he.Code
}

func TestSetProjectCounts(t *testing.T) {
	project := models.Project{Model: models.Model{ID: 3}}

	t.Run("should return the derived statistic", func(t *testing.T) {
		statisticsService := mocks.NewStatisticsService(t)
		counts := dtos.SeverityCounts{Critical: 1, Low: 2}
		statisticsService.On("SetLatestCounts", mock.Anything, int64(3), counts, (*int64)(nil)).Return(models.VulnerabilityStatistic{
			ProjectID:      3,
			SeverityCounts: counts,
			Total:          3,
			LetterGrade:    dtos.LetterGradeF,
		}, nil)

		ctx, rec := newJSONContext(http.MethodPut, "/", dtos.SetCountsRequest{Counts: counts})
		shared.SetProject(ctx, project)

		require.NoError(t, NewVulnerabilityStatisticController(statisticsService).SetProjectCounts(ctx))
		assert.Equal(t, 200, rec.Code)

		var res dtos.VulnerabilityStatisticDTO
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, 3, res.Total)
		assert.Equal(t, dtos.LetterGradeF, *res.LetterGrade)
	})

	t.Run("should map invalid counts to bad request", func(t *testing.T) {
		statisticsService := mocks.NewStatisticsService(t)
		statisticsService.On("SetLatestCounts", mock.Anything, int64(3), mock.Anything, mock.Anything).
			Return(models.VulnerabilityStatistic{}, fmt.Errorf("%w: critical", services.ErrInvalidCounts))

		ctx, _ := newJSONContext(http.MethodPut, "/", map[string]any{"counts": map[string]int{"critical": -1}})
		shared.SetProject(ctx, project)

		err := NewVulnerabilityStatisticController(statisticsService).SetProjectCounts(ctx)
		assert.Equal(t, 400, httpCode(t, err))
	})
}

func TestGetProjectStatistic(t *testing.T) {
	t.Run("should return not found without a statistic", func(t *testing.T) {
		statisticsService := mocks.NewStatisticsService(t)
		statisticsService.On("GetProjectStatistic", int64(3)).Return(models.VulnerabilityStatistic{}, gorm.ErrRecordNotFound)

		ctx, _ := newJSONContext(http.MethodGet, "/", nil)
		shared.SetProject(ctx, models.Project{Model: models.Model{ID: 3}})

		err := NewVulnerabilityStatisticController(statisticsService).GetProjectStatistic(ctx)
		assert.Equal(t, 404, httpCode(t, err))
	})
}

func TestBulkSetCounts(t *testing.T) {
	t.Run("should reject an empty request before calling the service", func(t *testing.T) {
		statisticsService := mocks.NewStatisticsService(t)
		ctx, _ := newJSONContext(http.MethodPost, "/", dtos.BulkSetCountsRequest{})

		err := NewVulnerabilityStatisticController(statisticsService).BulkSetCounts(ctx)
		assert.Equal(t, 400, httpCode(t, err))
	})

	t.Run("should return every statistic", func(t *testing.T) {
		statisticsService := mocks.NewStatisticsService(t)
		items := []dtos.ProjectCounts{
			{ProjectID: 1, Counts: dtos.SeverityCounts{High: 1}},
			{ProjectID: 2},
		}
		statisticsService.On("BulkSetLatestCounts", mock.Anything, items).Return([]models.VulnerabilityStatistic{
			{ProjectID: 1, SeverityCounts: dtos.SeverityCounts{High: 1}, Total: 1, LetterGrade: dtos.LetterGradeD},
			{ProjectID: 2},
		}, nil)

		ctx, rec := newJSONContext(http.MethodPost, "/", dtos.BulkSetCountsRequest{Items: items})
		require.NoError(t, NewVulnerabilityStatisticController(statisticsService).BulkSetCounts(ctx))

		var res []dtos.VulnerabilityStatisticDTO
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		require.Len(t, res, 2)
		assert.Equal(t, dtos.LetterGradeD, *res[0].LetterGrade)
	})

	t.Run("should return not found for unknown projects", func(t *testing.T) {
		statisticsService := mocks.NewStatisticsService(t)
		statisticsService.On("BulkSetLatestCounts", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("project 9: %w", gorm.ErrRecordNotFound))

		ctx, _ := newJSONContext(http.MethodPost, "/", dtos.BulkSetCountsRequest{Items: []dtos.ProjectCounts{{ProjectID: 9}}})
		err := NewVulnerabilityStatisticController(statisticsService).BulkSetCounts(ctx)
		assert.Equal(t, 404, httpCode(t, err))
	})
}

func TestGetProjectHistory(t *testing.T) {
	now := time.Date(2026, 5, 10, 15, 0, 0, 0, time.UTC)

	t.Run("should default to the last 30 days", func(t *testing.T) {
		statisticsService := mocks.NewStatisticsService(t)
		statisticsService.On("GetProjectHistory", int64(3), time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC), time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)).
			Return([]models.VulnerabilityHistoricalStatistic{{Date: time.Date(2026, 5, 9, 0, 0, 0, 0, time.UTC)}}, nil)

		ctx, rec := newJSONContext(http.MethodGet, "/", nil)
		shared.SetProject(ctx, models.Project{Model: models.Model{ID: 3}})

		controller := NewVulnerabilityStatisticController(statisticsService)
		controller.now = func() time.Time { return now }
		require.NoError(t, controller.GetProjectHistory(ctx))
		assert.Contains(t, rec.Body.String(), `"date":"2026-05-09"`)
	})

	t.Run("should reject an inverted range", func(t *testing.T) {
		statisticsService := mocks.NewStatisticsService(t)
		ctx, _ := newJSONContext(http.MethodGet, "/?start=2026-05-01&end=2026-04-01", nil)
		shared.SetProject(ctx, models.Project{Model: models.Model{ID: 3}})

		err := NewVulnerabilityStatisticController(statisticsService).GetProjectHistory(ctx)
		assert.Equal(t, 400, httpCode(t, err))
	})
}

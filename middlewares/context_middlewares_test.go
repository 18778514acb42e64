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

package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/l3montree-dev/vulnstats/database/repositories"
	"github.com/l3montree-dev/vulnstats/middlewares"
	"github.com/l3montree-dev/vulnstats/shared"
	"github.com/l3montree-dev/vulnstats/tests"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectMiddleware(t *testing.T) {
	db := tests.InitSQLiteDB(t)
	h := tests.CreateHierarchy(t, db)
	mw := middlewares.ProjectMiddleware(repositories.NewProjectRepository(db))

	newCtx := func(id string) shared.Context {
		ctx := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		ctx.SetParamNames("projectID")
		ctx.SetParamValues(id)
		return ctx
	}

	t.Run("should set the project", func(t *testing.T) {
		ctx := newCtx("2")
		called := false
		err := mw(func(ctx shared.Context) error {
			called = true
			assert.Equal(t, h.B.ID, shared.GetProject(ctx).ID)
			return nil
		})(ctx)
		require.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("should return 404 for an unknown project", func(t *testing.T) {
		err := mw(func(shared.Context) error { return nil })(newCtx("999"))
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, 404, he.Code)
	})

	t.Run("should return 400 for an invalid id", func(t *testing.T) {
		err := mw(func(shared.Context) error { return nil })(newCtx("abc"))
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, 400, he.Code)
	})
}

func TestNamespaceMiddleware(t *testing.T) {
	db := tests.InitSQLiteDB(t)
	h := tests.CreateHierarchy(t, db)
	mw := middlewares.NamespaceMiddleware(repositories.NewNamespaceRepository(db))

	ctx := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	ctx.SetParamNames("namespaceID")
	ctx.SetParamValues("3")

	err := mw(func(ctx shared.Context) error {
		namespace := shared.GetNamespace(ctx)
		assert.Equal(t, h.Grandchild.ID, namespace.ID)
		assert.Equal(t, []int64{h.Root.ID, h.Child.ID, h.Grandchild.ID}, []int64(namespace.TraversalIDs))
		return nil
	})(ctx)
	require.NoError(t, err)
}

func TestErrorHandler(t *testing.T) {
	e := middlewares.Server()
	e.GET("/boom/", func(shared.Context) error {
		panic("boom")
	})
	e.GET("/missing/", func(shared.Context) error {
		return echo.NewHTTPError(404, "could not find project")
	})

	t.Run("should recover from panics", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom/", nil))
		assert.Equal(t, 500, rec.Code)
	})

	t.Run("should wrap the message", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
		assert.Equal(t, 404, rec.Code)
		assert.JSONEq(t, `{"message":"could not find project"}`, rec.Body.String())
	})
}

func TestProfileEndpoints(t *testing.T) {
	e := middlewares.Server()
	middlewares.AddProfileEndpoints(e)

	req := httptest.NewRequest(http.MethodGet, "/debug/pprof/goroutine/?debug=1", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "goroutine")
}

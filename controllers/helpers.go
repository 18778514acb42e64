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
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/l3montree-dev/vulnstats/database"
	"github.com/l3montree-dev/vulnstats/services"
	"github.com/labstack/echo/v4"
)

// httpError maps the errors of the services to a status code
func httpError(err error, message string) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, services.ErrInvalidCounts), errors.As(err, &validationErrors):
		return echo.NewHTTPError(400, err.Error()).WithInternal(err)
	case database.IsNotFound(err):
		return echo.NewHTTPError(404, message).WithInternal(err)
	}
	return echo.NewHTTPError(500, message).WithInternal(err)
}

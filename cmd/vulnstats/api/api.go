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

package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/l3montree-dev/vulnstats/middlewares"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

var StartedAt = time.Now()

// Version is filled at build time
var Version = "dev"

type Server struct {
	Echo *echo.Echo
}

func listenAddress() string {
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	return ":8080"
}

// NewServer starts listening once the fx app started
func NewServer(lc fx.Lifecycle) Server {
	e := middlewares.Server()
	if os.Getenv("ENABLE_PROFILING") == "true" {
		middlewares.AddProfileEndpoints(e)
	}
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				addr := listenAddress()
				slog.Info("starting server", "addr", addr)
				if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					slog.Error("server stopped", "err", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return e.Shutdown(ctx)
		},
	})
	return Server{Echo: e}
}

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

package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/l3montree-dev/vulnstats/cmd/vulnstats/api"
	"github.com/l3montree-dev/vulnstats/controllers"
	"github.com/l3montree-dev/vulnstats/daemons"
	"github.com/l3montree-dev/vulnstats/database"
	"github.com/l3montree-dev/vulnstats/database/repositories"
	"github.com/l3montree-dev/vulnstats/router"
	"github.com/l3montree-dev/vulnstats/services"
	"github.com/l3montree-dev/vulnstats/shared"
	"go.uber.org/fx"

	_ "github.com/lib/pq"
)

var release string // Will be filled at build time

// @title		vulnstats API
// @version		v1
// @BasePath	/api/v1
func main() {
	if err := shared.LoadConfig(); err != nil {
		slog.Info("no .env file loaded", "err", err)
	}
	shared.InitLogger()

	if os.Getenv("ERROR_TRACKING_DSN") != "" {
		initSentry()

		// Catch panics
		defer func() {
			if err := recover(); err != nil {
				sentry.CurrentHub().Recover(err)
				// Wait for events to be send to server
				sentry.Flush(time.Second * 5)
			}
		}()
	}
	if release != "" {
		api.Version = release
	}

	pool := database.NewPgxConnPool(database.GetPoolConfigFromEnv())
	db := database.NewGormDB(pool)

	if err := database.Ping(context.Background(), pool); err != nil {
		slog.Error("could not reach the database", "err", err)
		panic(err)
	}

	if os.Getenv("DISABLE_AUTOMIGRATE") != "true" {
		slog.Info("running database migrations...")
		if err := database.RunMigrationsWithDB(db); err != nil {
			slog.Error("failed to run database migrations", "error", err)
			panic(errors.New("Failed to run database migrations"))
		}
	} else {
		slog.Info("automatic migrations disabled via DISABLE_AUTOMIGRATE=true")
	}

	fx.New(
		fx.Supply(pool),
		fx.Supply(db),
		fx.Provide(database.BrokerFactory),
		fx.Provide(api.NewServer),
		repositories.Module,
		services.Module,
		controllers.ControllerModule,
		router.RouterModule,
		daemons.Module,

		// we need to invoke all routers to register their routes
		fx.Invoke(func(router.ProjectRouter) {}),
		fx.Invoke(func(router.NamespaceRouter) {}),
		fx.Invoke(func(router.VulnerabilityStatisticsRouter) {}),
		fx.Invoke(func(runner shared.DaemonRunner) {
			if os.Getenv("DISABLE_BACKGROUND_JOBS") == "true" {
				slog.Info("background jobs disabled via DISABLE_BACKGROUND_JOBS=true")
				return
			}
			runner.Start()
		}),
		fx.Invoke(func(api.Server) {}),
	).Run()
}

func initSentry() {
	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "dev"
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         os.Getenv("ERROR_TRACKING_DSN"),
		Environment: environment,
		Release:     release,

		// In debug mode, the debug information is printed to stdout to help you
		// understand what Sentry is doing.
		Debug: environment == "dev",

		AttachStacktrace: true,
		SendDefaultPII:   false,
	})
	if err != nil {
		slog.Error("Failed to init logger", "err", err)
	}
}

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

package database

import (
	"context"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/l3montree-dev/vulnstats/pubsub"
	"github.com/l3montree-dev/vulnstats/shared"
	"go.uber.org/fx"
)

// BrokerFactory returns the LISTEN/NOTIFY broker. PUBSUB_BACKEND=memory selects
// an in process broker for single replica setups.
func BrokerFactory(lc fx.Lifecycle, pool *pgxpool.Pool) (shared.PubSubBroker, error) {
	if os.Getenv("PUBSUB_BACKEND") == "memory" {
		broker := pubsub.NewInMemoryBroker()
		lc.Append(fx.StopHook(broker.Close))
		return broker, nil
	}

	broker, err := NewPostgreSQLBroker(pool)
	if err != nil {
		return nil, err
	}
	// the quota validation runs on the leader, which might be the publisher
	broker.SetShouldReceiveOwnMessages(true)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			broker.Close()
			return nil
		},
	})
	return broker, nil
}

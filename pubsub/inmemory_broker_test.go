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

package pubsub

import (
	"context"
	"testing"

	"github.com/l3montree-dev/vulnstats/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryBroker(t *testing.T) {
	t.Run("should deliver a message to every subscriber of the topic", func(t *testing.T) {
		broker := NewInMemoryBroker()
		defer broker.Close()

		a, err := broker.Subscribe(shared.VulnerabilityStatisticsUpdated)
		require.NoError(t, err)
		b, err := broker.Subscribe(shared.VulnerabilityStatisticsUpdated)
		require.NoError(t, err)
		other, err := broker.Subscribe(shared.KeyValueStoreChanged)
		require.NoError(t, err)

		msg := shared.NewSimplePubSubMessage(shared.VulnerabilityStatisticsUpdated, map[string]any{"projectIds": []int64{1}})
		require.NoError(t, broker.Publish(context.Background(), msg))

		assert.Equal(t, msg.Payload, <-a)
		assert.Equal(t, msg.Payload, <-b)
		assert.Len(t, other, 0)
	})

	t.Run("should close all subscriber channels", func(t *testing.T) {
		broker := NewInMemoryBroker()
		ch, err := broker.Subscribe(shared.KeyValueStoreChanged)
		require.NoError(t, err)

		broker.Close()

		_, ok := <-ch
		assert.False(t, ok)
		// publishing after close is a no-op
		assert.NoError(t, broker.Publish(context.Background(), shared.NewSimplePubSubMessage(shared.KeyValueStoreChanged, nil)))
	})
}

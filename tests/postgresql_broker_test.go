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

package tests

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/l3montree-dev/vulnstats/database"
	"github.com/l3montree-dev/vulnstats/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgreSQLBroker(t *testing.T) {
	SkipIfShort(t)

	_, pool, terminate := InitDatabaseContainer()
	defer terminate()

	t.Run("PublishAndSubscribe", func(t *testing.T) {
		broker, err := database.NewPostgreSQLBroker(pool)
		require.NoError(t, err)
		broker.SetShouldReceiveOwnMessages(true)
		defer broker.Close()

		messagesCh, err := broker.Subscribe(shared.PubSubChannel("test_topic"))
		require.NoError(t, err)

		time.Sleep(100 * time.Millisecond)

		err = broker.Publish(context.Background(), shared.NewSimplePubSubMessage("test_topic", map[string]any{
			"test":   "data",
			"number": 42,
		}))
		require.NoError(t, err)

		select {
		case payload := <-messagesCh:
			assert.Equal(t, "data", payload["test"])
			assert.Equal(t, float64(42), payload["number"])
		case <-time.After(1 * time.Second):
			t.Error("message not received within timeout")
		}
	})

	t.Run("MultipleSubscribers", func(t *testing.T) {
		broker, err := database.NewPostgreSQLBroker(pool)
		require.NoError(t, err)
		broker.SetShouldReceiveOwnMessages(true)
		defer broker.Close()

		topic := shared.PubSubChannel("multi_topic")
		subscriber1, err := broker.Subscribe(topic)
		require.NoError(t, err)
		subscriber2, err := broker.Subscribe(topic)
		require.NoError(t, err)

		time.Sleep(100 * time.Millisecond)

		require.NoError(t, broker.Publish(context.Background(), shared.NewSimplePubSubMessage(topic, map[string]any{"multi": "test"})))

		for i, ch := range []<-chan map[string]any{subscriber1, subscriber2} {
			select {
			case payload := <-ch:
				assert.Equal(t, "test", payload["multi"])
			case <-time.After(1 * time.Second):
				t.Errorf("subscriber %d did not receive message", i+1)
			}
		}
	})

	t.Run("StatisticsUpdatedPayloadKeepsProjectIDs", func(t *testing.T) {
		broker, err := database.NewPostgreSQLBroker(pool)
		require.NoError(t, err)
		broker.SetShouldReceiveOwnMessages(true)
		defer broker.Close()

		messagesCh, err := broker.Subscribe(shared.VulnerabilityStatisticsUpdated)
		require.NoError(t, err)

		time.Sleep(100 * time.Millisecond)

		require.NoError(t, broker.Publish(context.Background(), shared.NewSimplePubSubMessage(shared.VulnerabilityStatisticsUpdated, map[string]any{
			"projectIds": []int64{1, 5, 9},
		})))

		select {
		case payload := <-messagesCh:
			assert.Equal(t, []int64{1, 5, 9}, shared.ProjectIDsFromPayload(payload))
		case <-time.After(1 * time.Second):
			t.Error("message not received within timeout")
		}
	})

	t.Run("OwnMessagesAreSkippedByDefault", func(t *testing.T) {
		broker, err := database.NewPostgreSQLBroker(pool)
		require.NoError(t, err)
		defer broker.Close()

		messagesCh, err := broker.Subscribe(shared.PubSubChannel("own_topic"))
		require.NoError(t, err)

		time.Sleep(100 * time.Millisecond)

		require.NoError(t, broker.Publish(context.Background(), shared.NewSimplePubSubMessage("own_topic", map[string]any{"a": "b"})))

		select {
		case <-messagesCh:
			t.Error("broker should not receive its own message")
		case <-time.After(500 * time.Millisecond):
		}
	})

	t.Run("PayloadTooLarge", func(t *testing.T) {
		broker, err := database.NewPostgreSQLBroker(pool)
		require.NoError(t, err)
		defer broker.Close()

		err = broker.Publish(context.Background(), shared.NewSimplePubSubMessage("large_topic", map[string]any{
			"data": strings.Repeat("x", 10_000),
		}))
		assert.ErrorContains(t, err, "exceeds the notify payload limit")
	})

	t.Run("GetActiveTopics", func(t *testing.T) {
		broker, err := database.NewPostgreSQLBroker(pool)
		require.NoError(t, err)
		defer broker.Close()

		assert.Empty(t, broker.GetActiveTopics())

		_, err = broker.Subscribe(shared.PubSubChannel("topic1"))
		require.NoError(t, err)
		_, err = broker.Subscribe(shared.PubSubChannel("topic2"))
		require.NoError(t, err)

		topics := broker.GetActiveTopics()
		assert.Len(t, topics, 2)
		assert.Contains(t, topics, shared.PubSubChannel("topic1"))
		assert.Contains(t, topics, shared.PubSubChannel("topic2"))
		assert.True(t, broker.IsHealthy(context.Background()))
	})

	t.Run("Close", func(t *testing.T) {
		broker, err := database.NewPostgreSQLBroker(pool)
		require.NoError(t, err)
		broker.SetShouldReceiveOwnMessages(true)

		messagesCh, err := broker.Subscribe(shared.PubSubChannel("unsub_topic"))
		require.NoError(t, err)

		time.Sleep(100 * time.Millisecond)
		broker.Close()

		_ = broker.Publish(context.Background(), shared.NewSimplePubSubMessage("unsub_topic", map[string]any{"test": "unsubscribed"}))

		select {
		case _, ok := <-messagesCh:
			assert.False(t, ok, "should not receive message after broker close")
		case <-time.After(500 * time.Millisecond):
		}
	})
}

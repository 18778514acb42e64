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

package services

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryConfigService map[string]string

func (m memoryConfigService) GetJSONConfig(key string, v any) error {
	val, ok := m[key]
	if !ok {
		return errors.New("record not found")
	}
	return json.Unmarshal([]byte(val), v)
}

func (m memoryConfigService) SetJSONConfig(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m[key] = string(b)
	return nil
}

func TestLeaderElection(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	config := memoryConfigService{}
	first := NewDatabaseLeaderElector(config)
	first.now = clock
	second := NewDatabaseLeaderElector(config)
	second.now = clock

	t.Run("should become leader if nobody is elected", func(t *testing.T) {
		first.elect()
		assert.True(t, first.IsLeader())

		var stored leaderElectionConfig
		require.NoError(t, config.GetJSONConfig(leaderElectionKey, &stored))
		assert.Equal(t, first.leaderElectorID, stored.LeaderID)
		assert.Equal(t, now.Unix(), stored.LastPing)
	})

	t.Run("should not take over an active lease", func(t *testing.T) {
		now = now.Add(leaderLease - time.Second)
		second.elect()
		assert.False(t, second.IsLeader())
	})

	t.Run("should renew the own lease", func(t *testing.T) {
		first.elect()
		assert.True(t, first.IsLeader())

		now = now.Add(leaderLease)
		second.elect()
		assert.False(t, second.IsLeader())
	})

	t.Run("should take over a stale lease", func(t *testing.T) {
		now = now.Add(time.Second)
		second.elect()
		assert.True(t, second.IsLeader())

		first.elect()
		assert.False(t, first.IsLeader())
	})
}

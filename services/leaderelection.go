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
	"log/slog"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/l3montree-dev/vulnstats/shared"
)

const leaderElectionKey = "leaderElection"

// a leader which did not ping for this long is considered dead
const leaderLease = 360 * time.Second

type leaderElectionConfig struct {
	LeaderID string `json:"leaderId"`
	LastPing int64  `json:"lastPing"`
}

// databaseLeaderElector elects one replica to run the daemons. The state is a
// single config row, every replica checks it in a random interval below the lease.
type databaseLeaderElector struct {
	leaderElectorID string
	configService   shared.ConfigService
	isLeader        atomic.Bool // updated by the daemon goroutine
	stop            chan struct{}
	now             func() time.Time
}

func NewDatabaseLeaderElector(configService shared.ConfigService) *databaseLeaderElector {
	return &databaseLeaderElector{
		configService:   configService,
		leaderElectorID: uuid.New().String(),
		stop:            make(chan struct{}),
		now:             time.Now,
	}
}

func randomNumberBetween(min, max int) int {
	return rand.Intn(max-min) + min // #nosec
}

// Start runs the election loop until Stop is called
func (e *databaseLeaderElector) Start() {
	go func() {
		for {
			e.elect()

			select {
			case <-e.stop:
				return
			case <-time.After(time.Duration(randomNumberBetween(60, 359)) * time.Second):
			}
		}
	}()
}

func (e *databaseLeaderElector) Stop() {
	close(e.stop)
}

func (e *databaseLeaderElector) elect() {
	isLeader, err := e.checkIfLeader()
	if err != nil {
		slog.Error("could not check if leader", "err", err)
	}
	e.isLeader.Store(isLeader)
}

func (e *databaseLeaderElector) IsLeader() bool {
	return e.isLeader.Load()
}

func (e *databaseLeaderElector) makeLeader() error {
	return e.configService.SetJSONConfig(leaderElectionKey, leaderElectionConfig{
		LeaderID: e.leaderElectorID,
		LastPing: e.now().Unix(),
	})
}

func (e *databaseLeaderElector) checkIfLeader() (bool, error) {
	var config leaderElectionConfig

	if err := e.configService.GetJSONConfig(leaderElectionKey, &config); err != nil {
		slog.Info("no leader elected yet", "err", err)
		return true, e.makeLeader()
	}

	if config.LeaderID == e.leaderElectorID {
		// renew the lease
		return true, e.makeLeader()
	}

	if e.now().Unix()-config.LastPing > int64(leaderLease.Seconds()) {
		slog.Info("leader did not ping in time, taking over", "previousLeader", config.LeaderID)
		return true, e.makeLeader()
	}
	return false, nil
}

var _ shared.LeaderElector = (*databaseLeaderElector)(nil)

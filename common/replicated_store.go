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

package common

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/l3montree-dev/vulnstats/shared"
)

const (
	opSet = "set"
	opDel = "del"
)

// ReplicatedStore is a LRUStore whose writes are fanned out to the other
// replicas through the broker. Replicas converge on the last write they
// received, the store stays advisory.
type ReplicatedStore struct {
	local  *LRUStore
	broker shared.PubSubBroker
	origin string
}

func NewReplicatedStore(local *LRUStore, broker shared.PubSubBroker) *ReplicatedStore {
	return &ReplicatedStore{
		local:  local,
		broker: broker,
		origin: uuid.New().String(),
	}
}

// Start applies the writes of other replicas until ctx is done
func (s *ReplicatedStore) Start(ctx context.Context) error {
	ch, err := s.broker.Subscribe(shared.KeyValueStoreChanged)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case payload, ok := <-ch:
				if !ok {
					return
				}
				s.apply(ctx, payload)
			}
		}
	}()
	return nil
}

func (s *ReplicatedStore) apply(ctx context.Context, payload map[string]any) {
	if origin, _ := payload["origin"].(string); origin == s.origin {
		return
	}
	key, _ := payload["key"].(string)
	if key == "" {
		slog.Warn("received key value change without key", "payload", payload)
		return
	}

	switch payload["op"] {
	case opSet:
		value, _ := payload["value"].(string)
		_ = s.local.Set(ctx, key, value, time.Duration(numberFromPayload(payload["ttlSeconds"]))*time.Second)
	case opDel:
		_ = s.local.Del(ctx, key)
	default:
		slog.Warn("received unknown key value change", "op", payload["op"])
	}
}

func numberFromPayload(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	}
	return 0
}

func (s *ReplicatedStore) publish(ctx context.Context, payload map[string]any) {
	payload["origin"] = s.origin
	if err := s.broker.Publish(ctx, shared.NewSimplePubSubMessage(shared.KeyValueStoreChanged, payload)); err != nil {
		slog.Warn("could not replicate key value change", "err", err, "key", payload["key"])
	}
}

func (s *ReplicatedStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if err := s.local.Set(ctx, key, value, ttl); err != nil {
		return err
	}
	s.publish(ctx, map[string]any{
		"op":         opSet,
		"key":        key,
		"value":      value,
		"ttlSeconds": int64(ttl.Seconds()),
	})
	return nil
}

func (s *ReplicatedStore) Exists(ctx context.Context, key string) (bool, error) {
	return s.local.Exists(ctx, key)
}

func (s *ReplicatedStore) Del(ctx context.Context, key string) error {
	if err := s.local.Del(ctx, key); err != nil {
		return err
	}
	s.publish(ctx, map[string]any{
		"op":  opDel,
		"key": key,
	})
	return nil
}

var _ shared.KeyValueStore = (*ReplicatedStore)(nil)

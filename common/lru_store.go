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
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/l3montree-dev/vulnstats/shared"
)

type lruEntry struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

// LRUStore is a process local key value store. The least recently used
// entries are evicted once size is reached.
type LRUStore struct {
	cache *expirable.LRU[string, lruEntry]
	now   func() time.Time
}

// NewLRUStore creates a store with at most size entries. maxTTL bounds the
// lifetime of every entry, zero keeps entries until they are evicted.
func NewLRUStore(size int, maxTTL time.Duration) *LRUStore {
	return &LRUStore{
		cache: expirable.NewLRU[string, lruEntry](size, nil, maxTTL),
		now:   time.Now,
	}
}

func (s *LRUStore) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	entry := lruEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = s.now().Add(ttl)
	}
	s.cache.Add(key, entry)
	return nil
}

func (s *LRUStore) Get(_ context.Context, key string) (string, bool) {
	entry, ok := s.cache.Get(key)
	if !ok {
		return "", false
	}
	if !entry.expiresAt.IsZero() && !entry.expiresAt.After(s.now()) {
		s.cache.Remove(key)
		return "", false
	}
	return entry.value, true
}

func (s *LRUStore) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := s.Get(ctx, key)
	return ok, nil
}

func (s *LRUStore) Del(_ context.Context, key string) error {
	s.cache.Remove(key)
	return nil
}

func (s *LRUStore) Len() int {
	return s.cache.Len()
}

var _ shared.KeyValueStore = (*LRUStore)(nil)

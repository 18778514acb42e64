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
	"errors"
	"time"

	"github.com/l3montree-dev/vulnstats/database/models"
	"github.com/l3montree-dev/vulnstats/shared"
	"gorm.io/gorm"
)

// DatabaseStore keeps the entries in the key_value_entries table. Expired rows
// are ignored on read and removed by PurgeExpired.
type DatabaseStore struct {
	repository shared.KeyValueRepository
	now        func() time.Time
}

func NewDatabaseStore(repository shared.KeyValueRepository) *DatabaseStore {
	return &DatabaseStore{
		repository: repository,
		now:        time.Now,
	}
}

func (s *DatabaseStore) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	entry := models.KeyValueEntry{Key: key, Value: value}
	if ttl > 0 {
		expiresAt := s.now().Add(ttl).UTC()
		entry.ExpiresAt = &expiresAt
	}
	return s.repository.Set(nil, entry)
}

func (s *DatabaseStore) Exists(_ context.Context, key string) (bool, error) {
	entry, err := s.repository.Find(nil, key)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !entry.Expired(s.now()), nil
}

func (s *DatabaseStore) Del(_ context.Context, key string) error {
	return s.repository.Delete(nil, key)
}

func (s *DatabaseStore) PurgeExpired(_ context.Context) (int64, error) {
	return s.repository.DeleteExpired(nil, s.now().UTC())
}

var _ shared.KeyValueStore = (*DatabaseStore)(nil)

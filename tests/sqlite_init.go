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
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/l3montree-dev/vulnstats/database/models"
	"github.com/l3montree-dev/vulnstats/shared"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitSQLiteDB returns an in memory database with the schema of all models.
// There is a single connection, queries must not be issued outside of an open
// transaction while it is running.
func InitSQLiteDB(t *testing.T) shared.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(models.All()...))
	require.NoError(t, db.Create(&models.ApplicationSetting{ID: models.ApplicationSettingID}).Error)
	return db
}

// QueryCounter counts the select statements issued through a gorm db
type QueryCounter struct {
	count atomic.Int64
}

func (q *QueryCounter) Count() int64 {
	return q.count.Load()
}

func (q *QueryCounter) Reset() {
	q.count.Store(0)
}

func CountQueries(t *testing.T, db shared.DB) *QueryCounter {
	t.Helper()
	counter := &QueryCounter{}
	inc := func(*gorm.DB) { counter.count.Add(1) }

	require.NoError(t, db.Callback().Query().After("gorm:query").Register("tests:count_query", inc))
	require.NoError(t, db.Callback().Row().After("gorm:row").Register("tests:count_row", inc))
	t.Cleanup(func() {
		_ = db.Callback().Query().Remove("tests:count_query")
		_ = db.Callback().Row().Remove("tests:count_row")
	})
	return counter
}

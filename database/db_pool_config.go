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
	"os"
	"strconv"
	"time"
)

type PoolConfig struct {
	User     string
	Password string
	Host     string
	Port     string
	DBName   string

	MaxOpenConns    int32
	MinConns        int32
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// GetPoolConfigFromEnv reads the connection and pool configuration.
//
// Environment variables:
//   - POSTGRES_USER, POSTGRES_PASSWORD, POSTGRES_HOST, POSTGRES_PORT, POSTGRES_DB
//   - DB_MAX_OPEN_CONNS (default 25), the bulk upserts and the recalculation
//     daemon share this limit
//   - DB_MIN_CONNS (default 5)
//   - DB_CONN_MAX_LIFETIME, e.g. "4h"
//   - DB_CONN_MAX_IDLE_TIME, e.g. "15m"
func GetPoolConfigFromEnv() PoolConfig {
	cfg := PoolConfig{
		MaxOpenConns:    25,
		MinConns:        5,
		ConnMaxLifetime: 4 * time.Hour,
		ConnMaxIdleTime: 15 * time.Minute,

		User:     os.Getenv("POSTGRES_USER"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		Host:     os.Getenv("POSTGRES_HOST"),
		Port:     getenvOr("POSTGRES_PORT", "5432"),
		DBName:   os.Getenv("POSTGRES_DB"),
	}

	if val, ok := positiveInt(os.Getenv("DB_MAX_OPEN_CONNS")); ok && val > 0 {
		cfg.MaxOpenConns = val
	}

	if val, ok := positiveInt(os.Getenv("DB_MIN_CONNS")); ok {
		cfg.MinConns = val
	}

	if lifetime := os.Getenv("DB_CONN_MAX_LIFETIME"); lifetime != "" {
		if val, err := time.ParseDuration(lifetime); err == nil {
			cfg.ConnMaxLifetime = val
		}
	}

	if idleTime := os.Getenv("DB_CONN_MAX_IDLE_TIME"); idleTime != "" {
		if val, err := time.ParseDuration(idleTime); err == nil {
			cfg.ConnMaxIdleTime = val
		}
	}

	// pgx refuses a pool whose minimum exceeds the maximum
	if cfg.MinConns > cfg.MaxOpenConns {
		cfg.MinConns = cfg.MaxOpenConns
	}

	return cfg
}

func getenvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func positiveInt(s string) (int32, bool) {
	if s == "" {
		return 0, false
	}
	val, err := strconv.ParseInt(s, 10, 32)
	if err != nil || val < 0 {
		return 0, false
	}
	return int32(val), true
}

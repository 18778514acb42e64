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


package dtos_test

import (
	"testing"

	"github.com/l3montree-dev/vulnstats/dtos"
	"github.com/stretchr/testify/assert"
)

func TestSeverityCountsGet(t *testing.T) {
	counts := dtos.SeverityCounts{Critical: 1, High: 2, Medium: 3, Low: 4, Unknown: 5, Info: 6}

	t.Run("should return the bucket of every severity", func(t *testing.T) {
		for i, severity := range dtos.AllSeverities {
			assert.Equal(t, i+1, counts.Get(severity), string(severity))
		}
	})

	t.Run("should agree with Increment", func(t *testing.T) {
		var c dtos.SeverityCounts
		for _, severity := range dtos.AllSeverities {
			c.Increment(severity, 2)
			assert.Equal(t, 2, c.Get(severity))
		}
		assert.Equal(t, 12, c.Sum())
	})

	t.Run("should return 0 for an unknown severity", func(t *testing.T) {
		assert.Equal(t, 0, counts.Get(dtos.Severity("bogus")))
	})
}

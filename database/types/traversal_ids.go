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
package databasetypes

import (
	"database/sql/driver"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// TraversalIDs is the ordered list of namespace ids from the root down to the
// owning namespace. It is persisted as a text path like "/1/5/9/" so that every
// descendant can be found with a single LIKE 'prefix%' comparison.
type TraversalIDs []int64

func (t TraversalIDs) Path() string {
	var sb strings.Builder
	sb.WriteByte('/')
	for _, id := range t {
		sb.WriteString(strconv.FormatInt(id, 10))
		sb.WriteByte('/')
	}
	return sb.String()
}

// Prefix is the LIKE pattern matching t and all of its descendants.
func (t TraversalIDs) Prefix() string {
	return t.Path() + "%"
}

func (t TraversalIDs) Contains(id int64) bool {
	return slices.Contains(t, id)
}

// IsAncestorOf reports whether other lies at or below t.
func (t TraversalIDs) IsAncestorOf(other TraversalIDs) bool {
	if len(other) < len(t) {
		return false
	}
	return slices.Equal(t, other[:len(t)])
}

func (t TraversalIDs) Parent() TraversalIDs {
	if len(t) == 0 {
		return nil
	}
	return slices.Clone(t[:len(t)-1])
}

// Append never mutates the receiver.
func (t TraversalIDs) Append(id int64) TraversalIDs {
	res := make(TraversalIDs, 0, len(t)+1)
	res = append(res, t...)
	return append(res, id)
}

func (t TraversalIDs) Root() (int64, bool) {
	if len(t) == 0 {
		return 0, false
	}
	return t[0], true
}

func ParseTraversalIDs(path string) (TraversalIDs, error) {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return TraversalIDs{}, nil
	}
	parts := strings.Split(trimmed, "/")
	res := make(TraversalIDs, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid traversal path %q: %w", path, err)
		}
		res = append(res, id)
	}
	return res, nil
}

func (t TraversalIDs) Value() (driver.Value, error) {
	return t.Path(), nil
}

func (t *TraversalIDs) Scan(value any) error {
	var path string
	switch v := value.(type) {
	case nil:
		*t = TraversalIDs{}
		return nil
	case string:
		path = v
	case []byte:
		path = string(v)
	default:
		return fmt.Errorf("cannot scan %T into TraversalIDs", value)
	}
	ids, err := ParseTraversalIDs(path)
	if err != nil {
		return err
	}
	*t = ids
	return nil
}

func (TraversalIDs) GormDataType() string {
	return "text"
}

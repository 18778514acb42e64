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

package utils

import (
	"cmp"
	"slices"
)

func Map[T, U any](s []T, f func(T) U) []U {
	r := make([]U, len(s))
	for i, v := range s {
		r[i] = f(v)
	}
	return r
}

// Uniq returns the sorted distinct values of s
func Uniq[T cmp.Ordered](s []T) []T {
	r := slices.Clone(s)
	slices.Sort(r)
	return slices.Compact(r)
}

// LastBy keeps the last element per key, in order of first appearance
func LastBy[T any, K comparable](s []T, key func(T) K) []T {
	idx := make(map[K]int, len(s))
	r := make([]T, 0, len(s))
	for _, v := range s {
		k := key(v)
		if i, ok := idx[k]; ok {
			r[i] = v
			continue
		}
		idx[k] = len(r)
		r = append(r, v)
	}
	return r
}

// Chunk splits s into slices of at most size elements
func Chunk[T any](s []T, size int) [][]T {
	if size <= 0 || len(s) == 0 {
		return nil
	}
	var r [][]T
	for chunk := range slices.Chunk(s, size) {
		r = append(r, chunk)
	}
	return r
}

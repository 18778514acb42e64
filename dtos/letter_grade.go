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

package dtos

import (
	"fmt"
	"strings"
)

// LetterGrade is persisted as its rank (smallint). The rank order is the
// severity order: a is the best grade, f the worst.
type LetterGrade int16

const (
	LetterGradeA LetterGrade = 0
	LetterGradeB LetterGrade = 1
	LetterGradeC LetterGrade = 2
	LetterGradeD LetterGrade = 3
	LetterGradeF LetterGrade = 4
)

var AllLetterGrades = []LetterGrade{
	LetterGradeA,
	LetterGradeB,
	LetterGradeC,
	LetterGradeD,
	LetterGradeF,
}

var letterGradeNames = map[LetterGrade]string{
	LetterGradeA: "a",
	LetterGradeB: "b",
	LetterGradeC: "c",
	LetterGradeD: "d",
	LetterGradeF: "f",
}

func (g LetterGrade) IsValid() bool {
	_, ok := letterGradeNames[g]
	return ok
}

func (g LetterGrade) String() string {
	if name, ok := letterGradeNames[g]; ok {
		return name
	}
	return fmt.Sprintf("LetterGrade(%d)", int16(g))
}

func ParseLetterGrade(s string) (LetterGrade, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for grade, name := range letterGradeNames {
		if name == needle {
			return grade, nil
		}
	}
	return 0, fmt.Errorf("unknown letter grade: %q", s)
}

func (g LetterGrade) MarshalText() ([]byte, error) {
	if !g.IsValid() {
		return nil, fmt.Errorf("invalid letter grade: %d", int16(g))
	}
	return []byte(g.String()), nil
}

func (g *LetterGrade) UnmarshalText(text []byte) error {
	grade, err := ParseLetterGrade(string(text))
	if err != nil {
		return err
	}
	*g = grade
	return nil
}

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

// Package grading maps severity count vectors to letter grades. Every rule
// exists twice: once in memory and once as generated SQL. Both must agree.
package grading

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/l3montree-dev/vulnstats/dtos"
	"gorm.io/gorm/clause"
)

type gradedBucket struct {
	severity dtos.Severity
	grade    dtos.LetterGrade
}

// gradedBuckets is checked in order, the first non empty bucket decides.
// unknown and info never influence the grade.
var gradedBuckets = []gradedBucket{
	{dtos.SeverityCritical, dtos.LetterGradeF},
	{dtos.SeverityHigh, dtos.LetterGradeD},
	{dtos.SeverityMedium, dtos.LetterGradeC},
	{dtos.SeverityLow, dtos.LetterGradeB},
}

func LetterGradeFor(counts dtos.SeverityCounts) dtos.LetterGrade {
	return LetterGradeExcluding(counts, dtos.SeverityCounts{})
}

// LetterGradeExcluding grades the difference target - excluded. A bucket only
// counts when the difference is strictly positive.
func LetterGradeExcluding(target, excluded dtos.SeverityCounts) dtos.LetterGrade {
	for _, b := range gradedBuckets {
		if target.Get(b.severity)-excluded.Get(b.severity) > 0 {
			return b.grade
		}
	}
	return dtos.LetterGradeA
}

var identifierRegexp = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

func ValidIdentifier(s string) bool {
	return identifierRegexp.MatchString(s)
}

func bucketCondition(target, excluded string, severity dtos.Severity) string {
	column := string(severity)
	if excluded == "" {
		return fmt.Sprintf("%s.%s > 0", target, column)
	}
	return fmt.Sprintf("(%s.%s - %s.%s) > 0", target, column, excluded, column)
}

// LetterGradeSQL returns a CASE expression yielding the rank of the grade.
// target and excluded are table names or aliases, excluded may be empty.
// It panics on anything which is not a plain identifier since the result is
// concatenated into a statement.
func LetterGradeSQL(target, excluded string) string {
	mustIdentifier(target)
	if excluded != "" {
		mustIdentifier(excluded)
	}

	var sb strings.Builder
	sb.WriteString("CASE")
	for _, b := range gradedBuckets {
		fmt.Fprintf(&sb, " WHEN %s THEN %d", bucketCondition(target, excluded, b.severity), int16(b.grade))
	}
	fmt.Fprintf(&sb, " ELSE %d END", int16(dtos.LetterGradeA))
	return sb.String()
}

func LetterGradeExpr(target, excluded string) clause.Expr {
	return clause.Expr{SQL: "(" + LetterGradeSQL(target, excluded) + ")"}
}

// LetterGradePredicate is true for rows whose computed grade equals grade.
func LetterGradePredicate(target, excluded string, grade dtos.LetterGrade) clause.Expr {
	return clause.Expr{
		SQL:  "(" + LetterGradeSQL(target, excluded) + ") = ?",
		Vars: []any{int16(grade)},
	}
}

func mustIdentifier(s string) {
	if !ValidIdentifier(s) {
		panic(fmt.Sprintf("grading: invalid sql identifier %q", s))
	}
}

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

package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/l3montree-dev/vulnstats/dtos"
	"github.com/l3montree-dev/vulnstats/shared"
	"github.com/l3montree-dev/vulnstats/transformer"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewGradesCommand() *cobra.Command {
	grades := &cobra.Command{
		Use:   "grades <namespaceID>",
		Short: "Prints the projects of a namespace grouped by letter grade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			opts := shared.GradesOptions{IncludeSubgroups: viper.GetBool("includeSubgroups")}
			if letter := viper.GetString("letterGrade"); letter != "" {
				grade, err := dtos.ParseLetterGrade(letter)
				if err != nil {
					return err
				}
				opts.Filter = &grade
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			namespace, err := a.namespaceRepository.Read(ids[0])
			if err != nil {
				return fmt.Errorf("could not find namespace %d: %w", ids[0], err)
			}
			scopeGrades, err := a.gradeService.GradesFor(cmd.Context(), []shared.VulnerableScope{shared.NamespaceScope(namespace)}, opts)
			if err != nil {
				return err
			}

			res, err := transformer.ProjectsGradesToDTO(scopeGrades[0].Grades, false)
			if err != nil {
				return err
			}
			return render(os.Stdout, viper.GetString("output"), res, func(w io.Writer) { printGrades(w, res) })
		},
	}
	grades.Flags().Bool("includeSubgroups", false, "include the projects of all subgroups")
	grades.Flags().String("letterGrade", "", "only print this grade (a, b, c, d or f)")
	grades.Flags().StringP("output", "o", outputTable, "output format: table or json")
	return grades
}

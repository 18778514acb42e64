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
	"log/slog"
	"os"

	"github.com/l3montree-dev/vulnstats/shared"
	"github.com/l3montree-dev/vulnstats/transformer"
	"github.com/l3montree-dev/vulnstats/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewQuotaCommand() *cobra.Command {
	quota := &cobra.Command{
		Use:   "quota",
		Short: "Inspect and manage the vulnerability quotas",
	}

	quota.AddCommand(newQuotaShowCommand())
	quota.AddCommand(newQuotaValidateCommand())
	quota.AddCommand(newQuotaLimitCommand())
	return quota
}

func newQuotaShowCommand() *cobra.Command {
	show := &cobra.Command{
		Use:   "show <projectID>",
		Short: "Prints the quota of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			project, err := a.projectRepository.Read(ids[0])
			if err != nil {
				return fmt.Errorf("could not find project %d: %w", ids[0], err)
			}
			quota, err := a.quotaService.For(cmd.Context(), project)
			if err != nil {
				return err
			}
			info, err := quota.Information(cmd.Context())
			if err != nil {
				return err
			}

			status := transformer.QuotaStatusToDTO(quota, info, a.featureFlags.IsEnabled(shared.FeatureVulnerabilityQuota))
			return render(os.Stdout, viper.GetString("output"), status, func(w io.Writer) { printQuota(w, status) })
		},
	}
	show.Flags().StringP("output", "o", outputTable, "output format: table or json")
	return show
}

func newQuotaValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [projectID...]",
		Short: "Marks or clears the over usage of the projects, all unarchived projects without arguments",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if len(ids) == 0 {
				if ids, err = a.projectRepository.ListUnarchivedIDs(nil); err != nil {
					return err
				}
			}
			if err := a.quotaService.ValidateProjects(cmd.Context(), ids); err != nil {
				return err
			}
			slog.Info("validated vulnerability quotas", "amount", len(ids))
			return nil
		},
	}
}

func newQuotaLimitCommand() *cobra.Command {
	limit := &cobra.Command{
		Use:   "limit",
		Short: "Sets the allowance of a project, a namespace or the whole application",
		Long: `Exactly one of --project, --namespace or --application selects the target.
Pass --unset to remove the override, the next level decides the allowance then.`,
		Args: cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID := viper.GetInt64("project")
			namespaceID := viper.GetInt64("namespace")
			application := viper.GetBool("application")

			targets := 0
			for _, set := range []bool{projectID > 0, namespaceID > 0, application} {
				if set {
					targets++
				}
			}
			if targets != 1 {
				return fmt.Errorf("exactly one of --project, --namespace or --application is required")
			}

			var value *int64
			if !viper.GetBool("unset") {
				v := viper.GetInt64("value")
				if v < 0 {
					return fmt.Errorf("the limit must not be negative")
				}
				value = utils.Ptr(v)
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			switch {
			case projectID > 0:
				err = a.projectRepository.SetVulnerabilityLimit(nil, projectID, value)
			case namespaceID > 0:
				err = a.namespaceRepository.SetVulnerabilityLimit(nil, namespaceID, value)
			default:
				err = a.applicationSettingRepository.SetMaxNumberOfVulnerabilitiesPerProject(nil, value)
			}
			if err != nil {
				return err
			}
			slog.Info("updated vulnerability limit", "project", projectID, "namespace", namespaceID, "application", application, "value", value)
			return nil
		},
	}
	limit.Flags().Int64("project", 0, "the project id")
	limit.Flags().Int64("namespace", 0, "the namespace id")
	limit.Flags().Bool("application", false, "change the application wide default")
	limit.Flags().Int64("value", 0, "the maximum number of vulnerabilities")
	limit.Flags().Bool("unset", false, "remove the limit")
	return limit
}

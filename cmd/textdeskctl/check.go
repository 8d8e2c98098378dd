package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kirillkom/textdesk/internal/core/domain"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Show which features can run and why not",
	Long: "Show which features can run and why not. With --feature only that feature is\n" +
		"reported and the command fails when it cannot run.",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("feature")
		features, err := selectFeatures(name)
		if err != nil {
			return err
		}
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		language := viper.GetString("language")
		snapshot := app.CapabilitiesUC.Snapshot(language)

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			selected := make(map[domain.Feature]domain.Availability, len(features))
			for _, f := range features {
				selected[f] = snapshot[f]
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(selected); err != nil {
				return err
			}
		} else {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "FEATURE\tUSABLE\tREASON\n")
			for _, f := range features {
				a := snapshot[f]
				reason := a.Reason
				if a.Usable {
					reason = "-"
				}
				fmt.Fprintf(tw, "%s\t%t\t%s\n", f, a.Usable, reason)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
		}

		if name != "" && !snapshot[features[0]].Usable {
			return fmt.Errorf("feature %s is unavailable", features[0])
		}
		return nil
	},
}

// selectFeatures resolves the --feature flag; empty means every feature.
func selectFeatures(name string) ([]domain.Feature, error) {
	if name == "" {
		return domain.Features(), nil
	}
	f, ok := domain.ParseFeature(strings.ToLower(strings.TrimSpace(name)))
	if !ok {
		names := make([]string, 0, len(domain.Features()))
		for _, f := range domain.Features() {
			names = append(names, string(f))
		}
		return nil, fmt.Errorf("unknown feature %q (want one of %s)", name, strings.Join(names, ", "))
	}
	return []domain.Feature{f}, nil
}

func init() {
	checkCmd.Flags().Bool("json", false, "output the snapshot as JSON")
	checkCmd.Flags().String("feature", "", "report a single feature and fail when it cannot run")
	rootCmd.AddCommand(checkCmd)
}
